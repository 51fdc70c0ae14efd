package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bizpulse/internal/db"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// steppingClock advances one second per call.
func steppingClock(start time.Time) func() time.Time {
	next := start
	return func() time.Time {
		t := next
		next = next.Add(time.Second)
		return t
	}
}

func newTestRepo(t *testing.T) *SQLiteConversationRepo {
	t.Helper()
	repo := NewSQLiteConversationRepo(testutil.NewTestDB(t))
	repo.now = steppingClock(time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC))
	return repo
}

func TestConversationRepo_CreateAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	c := testutil.NewTestConversation(testutil.WithTitle("Pipeline review"))
	require.NoError(t, repo.Create(ctx, c))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, "Pipeline review", got.Title)
	assert.Equal(t, 0, got.TurnCount)
	assert.WithinDuration(t, c.StartedAt, got.StartedAt, time.Microsecond)
}

func TestConversationRepo_CreateAssignsIDAndTime(t *testing.T) {
	repo := newTestRepo(t)

	c := &domain.Conversation{}
	require.NoError(t, repo.Create(context.Background(), c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, time.Date(2026, 2, 14, 9, 0, 0, 0, time.UTC), c.StartedAt)
}

func TestConversationRepo_GetByID_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationRepo_AppendTurnAssignsSeq(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	q := testutil.NewTestTurn(c.ID, domain.RoleUser, "How's our pipeline looking?")
	a := testutil.NewTestTurn(c.ID, domain.RoleAssistant, "Pipeline is ₹50.00 L across 7 deals.")
	a.Source = "deterministic"
	require.NoError(t, repo.AppendTurn(ctx, q))
	require.NoError(t, repo.AppendTurn(ctx, a))

	assert.Equal(t, 1, q.Seq)
	assert.Equal(t, 2, a.Seq)
	assert.NotEmpty(t, q.ID)

	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "How's our pipeline looking?", turns[0].Content)
	assert.Equal(t, "", turns[0].Source)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "deterministic", turns[1].Source)
	assert.True(t, turns[1].CreatedAt.After(turns[0].CreatedAt))
}

func TestConversationRepo_FirstQuestionTitles(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.AppendTurn(ctx, testutil.NewTestTurn(c.ID, domain.RoleUser, "  Revenue   by sector? ")))
	require.NoError(t, repo.AppendTurn(ctx, testutil.NewTestTurn(c.ID, domain.RoleUser, "And deals?")))

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revenue by sector?", got.Title)
	assert.Equal(t, 2, got.TurnCount)
}

func TestConversationRepo_AppendTurn_UnknownConversation(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.AppendTurn(context.Background(), testutil.NewTestTurn("missing", domain.RoleUser, "hi"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationRepo_AppendTurn_RejectsUnknownRole(t *testing.T) {
	repo := newTestRepo(t)

	err := repo.AppendTurn(context.Background(), testutil.NewTestTurn("c", domain.TurnRole("system"), "hi"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestConversationRepo_AppendTurns_StoresExchange(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	q := testutil.NewTestTurn(c.ID, domain.RoleUser, "Pipeline by stage?")
	a := testutil.NewTestTurn(c.ID, domain.RoleAssistant, "Mostly proposals.")
	a.Source = "llm"
	require.NoError(t, repo.AppendTurns(ctx, q, a))

	assert.Equal(t, 1, q.Seq)
	assert.Equal(t, 2, a.Seq)
	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "llm", turns[1].Source)

	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pipeline by stage?", got.Title)
}

func TestConversationRepo_AppendTurns_RollsBackWholeExchange(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	boom := errors.New("disk full")
	// The reply's insert is the second turn insert of the transaction.
	repo.uow = &testutil.FailingExecUoW{Inner: db.NewSQLiteUnitOfWork(database), Prefix: "INSERT INTO turns", Skip: 1, Err: boom}

	err := repo.AppendTurns(ctx,
		testutil.NewTestTurn(c.ID, domain.RoleUser, "hi"),
		testutil.NewTestTurn(c.ID, domain.RoleAssistant, "hello"))
	require.ErrorIs(t, err, boom)

	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
	got, err := repo.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Title)
}

func TestConversationRepo_AppendTurns_RejectsBadRoleBeforeWriting(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	err := repo.AppendTurns(ctx,
		testutil.NewTestTurn(c.ID, domain.RoleUser, "hi"),
		testutil.NewTestTurn(c.ID, domain.TurnRole("system"), "x"))
	require.Error(t, err)

	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestConversationRepo_AppendTurn_RollsBackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	boom := errors.New("disk full")
	// The conversation update runs after the turn insert.
	repo.uow = &testutil.FailingExecUoW{Inner: db.NewSQLiteUnitOfWork(database), Prefix: "UPDATE conversations", Err: boom}

	err := repo.AppendTurn(ctx, testutil.NewTestTurn(c.ID, domain.RoleUser, "hi"))
	require.ErrorIs(t, err, boom)

	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)
}

func TestConversationRepo_LatestFollowsActivity(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	first := &domain.Conversation{}
	second := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, latest.ID)

	require.NoError(t, repo.AppendTurn(ctx, testutil.NewTestTurn(first.ID, domain.RoleUser, "back again")))
	latest, err = repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.ID, latest.ID)
}

func TestConversationRepo_ListLimit(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &domain.Conversation{}))
	}

	all, err := repo.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.True(t, !all[0].UpdatedAt.Before(all[1].UpdatedAt))

	two, err := repo.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, two, 2)
}

func TestConversationRepo_DeleteCascades(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.AppendTurn(ctx, testutil.NewTestTurn(c.ID, domain.RoleUser, "hi")))

	require.NoError(t, repo.Delete(ctx, c.ID))

	_, err := repo.GetByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	assert.Empty(t, turns)

	assert.ErrorIs(t, repo.Delete(ctx, c.ID), ErrNotFound)
}

func TestTitleFrom(t *testing.T) {
	assert.Equal(t, "What's our billing status?", titleFrom("What's our\nbilling status?"))

	long := strings.Repeat("pipeline ", 20)
	title := titleFrom(long)
	assert.True(t, strings.HasSuffix(title, "..."))
	assert.LessOrEqual(t, len([]rune(title)), maxTitleRunes)
}
