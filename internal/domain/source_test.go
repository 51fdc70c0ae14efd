package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSource_Aliases(t *testing.T) {
	cases := map[string]Source{
		"work_orders": SourceWorkOrders,
		"Work-Orders": SourceWorkOrders,
		" wo ":        SourceWorkOrders,
		"deals":       SourceDeals,
		"DEAL":        SourceDeals,
	}
	for in, want := range cases {
		got, err := ParseSource(in)
		require.NoError(t, err, "input %q", in)
		assert.Equal(t, want, got, "input %q", in)
	}
}

func TestParseSource_Unknown(t *testing.T) {
	_, err := ParseSource("invoices")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown source")
}

func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "Work Orders", SourceWorkOrders.Label())
	assert.Equal(t, "Deals", SourceDeals.Label())
	assert.True(t, SourceDeals.Valid())
	assert.False(t, Source("x").Valid())
}

func TestRecentTurns(t *testing.T) {
	turns := make([]Turn, 9)
	for i := range turns {
		turns[i].Seq = i
	}

	got := RecentTurns(turns, 6)
	require.Len(t, got, 6)
	assert.Equal(t, 3, got[0].Seq)
	assert.Equal(t, 8, got[5].Seq)

	assert.Len(t, RecentTurns(turns[:2], 6), 2)
	assert.Nil(t, RecentTurns(turns, 0))
}

func TestConversationDisplayID(t *testing.T) {
	c := &Conversation{ID: "0f8e2a4c-1b2d-4e5f-8a9b-0c1d2e3f4a5b"}
	assert.Equal(t, "0f8e2a4c", c.DisplayID())
	assert.Equal(t, "abc", (&Conversation{ID: "abc"}).DisplayID())
}

func TestTurnRoleValid(t *testing.T) {
	assert.True(t, RoleUser.Valid())
	assert.True(t, RoleAssistant.Valid())
	assert.False(t, TurnRole("system").Valid())
}
