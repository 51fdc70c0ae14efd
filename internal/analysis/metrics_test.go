package analysis

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRevenueMetrics_ResolvesColumn(t *testing.T) {
	m, err := ComputeRevenueMetrics(testutil.WorkOrdersTable(), "")
	require.NoError(t, err)

	assert.Equal(t, testutil.WORevenue, m.ColumnUsed)
	assert.Equal(t, 2000000.0, m.Total)
	assert.Equal(t, 500000.0, m.Average)
	assert.Equal(t, 200000.0, m.Min)
	assert.Equal(t, 1000000.0, m.Max)
	assert.Equal(t, 4, m.Count)
}

func TestComputeRevenueMetrics_CountIsValidRowsNotTableLength(t *testing.T) {
	deals := testutil.DealsTable()
	m, err := ComputeRevenueMetrics(deals, testutil.DealValue)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Count)
	assert.Equal(t, 7, deals.Len())
	assert.Equal(t, NumericCoverage(deals, testutil.DealValue).Valid, m.Count)
	assert.InDelta(t, 1666666.67, m.Average, 0.01)
}

func TestComputeRevenueMetrics_Idempotent(t *testing.T) {
	wo := testutil.WorkOrdersTable()
	first, err1 := ComputeRevenueMetrics(wo, "")
	second, err2 := ComputeRevenueMetrics(wo, "")
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestComputeRevenueMetrics_NoColumn(t *testing.T) {
	_, err := ComputeRevenueMetrics(table.New([]string{"Item Name", "Owner"}), "")
	assert.ErrorIs(t, err, ErrNoColumn)

	_, err = ComputeRevenueMetrics(testutil.WorkOrdersTable(), "Nope")
	assert.ErrorIs(t, err, ErrNoColumn)
}

func TestComputeRevenueMetrics_NoNumericData(t *testing.T) {
	tbl := table.New([]string{"Deal value"}, table.Row{"Deal value": ""}, table.Row{"Deal value": "tbd"})
	_, err := ComputeRevenueMetrics(tbl, "")
	assert.ErrorIs(t, err, ErrNoNumericData)
}

func TestComputeRevenueMetrics_SkipsOutOfRangeCells(t *testing.T) {
	tbl := table.New([]string{table.ItemNameColumn, "Amount"},
		table.Row{table.ItemNameColumn: "a", "Amount": "1e400"},
		table.Row{table.ItemNameColumn: "b", "Amount": "1e-50000000"},
		table.Row{table.ItemNameColumn: "c", "Amount": "1e50000000"},
		table.Row{table.ItemNameColumn: "d", "Amount": "5"},
	)

	done := make(chan struct{})
	var (
		m   RevenueMetrics
		err error
	)
	go func() {
		defer close(done)
		m, err = ComputeRevenueMetrics(tbl, "Amount")
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("ComputeRevenueMetrics did not return")
	}

	require.NoError(t, err)
	assert.Equal(t, 1, m.Count)
	assert.Equal(t, 5.0, m.Total)
	_, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, Coverage{Valid: 1, Invalid: 3}, NumericCoverage(tbl, "Amount"))
}

func TestNumericCoverage(t *testing.T) {
	c := NumericCoverage(testutil.DealsTable(), testutil.DealValue)
	assert.Equal(t, Coverage{Valid: 3, Empty: 3, Invalid: 1}, c)
	assert.Equal(t, 4, c.Missing())
	assert.InDelta(t, 4.0/7.0, c.MissingFraction(), 1e-9)
	assert.Equal(t, 0.0, Coverage{}.MissingFraction())
}

func TestSumColumn(t *testing.T) {
	assert.Equal(t, 1350000.0, SumColumn(testutil.WorkOrdersTable(), testutil.WOBilled))
	assert.Equal(t, 0.0, SumColumn(testutil.WorkOrdersTable(), "Nope"))
}
