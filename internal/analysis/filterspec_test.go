package analysis

import (
	"testing"

	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSpec_SectorThenQuarter(t *testing.T) {
	spec := NewFilterSpec([]domain.Source{domain.SourceWorkOrders}, "renewables", DateRange{}).
		WithQuarter(Quarter{Year: 2026, Number: 1})

	got := spec.Apply(domain.SourceWorkOrders, testutil.WorkOrdersTable())

	assert.True(t, got.SectorApplied)
	assert.True(t, got.WindowApplied)
	assert.False(t, got.WindowDropped)
	assert.Equal(t, []string{"WO-002"}, got.Table.Values(table.ItemNameColumn))
}

func TestFilterSpec_EmptyWindowFallsBackToPreWindowRows(t *testing.T) {
	spec := NewFilterSpec([]domain.Source{domain.SourceWorkOrders}, "powerline", DateRange{}).
		WithQuarter(Quarter{Year: 2024, Number: 3})

	got := spec.Apply(domain.SourceWorkOrders, testutil.WorkOrdersTable())

	assert.True(t, got.WindowDropped)
	assert.False(t, got.WindowApplied)
	assert.Equal(t, []string{"WO-004"}, got.Table.Values(table.ItemNameColumn))
}

func TestFilterSpec_UnaffectedSourceUntouched(t *testing.T) {
	spec := NewFilterSpec([]domain.Source{domain.SourceWorkOrders}, "mining", DateRange{})
	got := spec.Apply(domain.SourceDeals, testutil.DealsTable())
	assert.False(t, got.SectorApplied)
	assert.Equal(t, 7, got.Table.Len())
}

func TestFilterSpec_ImmutableSources(t *testing.T) {
	sources := []domain.Source{domain.SourceDeals}
	spec := NewFilterSpec(sources, "", DateRange{})
	sources[0] = domain.SourceWorkOrders

	assert.True(t, spec.Affects(domain.SourceDeals))
	got := spec.Sources()
	got[0] = domain.SourceWorkOrders
	assert.True(t, spec.Affects(domain.SourceDeals))

	q := spec.WithQuarter(Quarter{Year: 2026, Number: 2})
	_, has := spec.Quarter()
	assert.False(t, has)
	qq, has := q.Quarter()
	require.True(t, has)
	assert.Equal(t, "Q2 2026", qq.String())
}

func TestFilterSpec_ApplyNeverReturnsInput(t *testing.T) {
	src := testutil.DealsTable()
	got := NewFilterSpec([]domain.Source{domain.SourceDeals}, "", DateRange{}).Apply(domain.SourceDeals, src)
	got.Table.Set(0, testutil.DealStatus, "changed")
	assert.Equal(t, "Open", src.Value(0, testutil.DealStatus))
}
