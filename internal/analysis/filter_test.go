package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFilterBySector_SubstringCaseInsensitive(t *testing.T) {
	wo := testutil.WorkOrdersTable()

	out := FilterBySector(wo, "RENEWABLES")

	require.Equal(t, 2, out.Len())
	assert.Equal(t, "WO-002", out.Value(0, table.ItemNameColumn))
	assert.Equal(t, "WO-003", out.Value(1, table.ItemNameColumn))
	assert.Equal(t, 6, wo.Len())
}

func TestFilterBySector_EveryRowContainsKeyword(t *testing.T) {
	for _, kw := range []string{"mining", "renew", "a", "urban", "missing"} {
		for _, src := range []*table.Table{testutil.WorkOrdersTable(), testutil.DealsTable()} {
			col, ok := Resolve(src, RoleSector)
			require.True(t, ok)
			out := FilterBySector(src, kw)
			for i := 0; i < out.Len(); i++ {
				v := out.Value(i, col)
				assert.NotEmpty(t, v)
				assert.Contains(t, strings.ToLower(v), kw)
			}
		}
	}
}

func TestFilterBySector_NoSectorColumnUnchanged(t *testing.T) {
	tbl := table.New([]string{"Item Name"}, table.Row{"Item Name": "x"})
	out := FilterBySector(tbl, "mining")
	assert.Equal(t, 1, out.Len())
}

func TestFilterByDateRange_Inclusive(t *testing.T) {
	wo := testutil.WorkOrdersTable()

	out := FilterByDateRange(wo, DateRange{Start: day(2026, 1, 1), End: day(2026, 3, 31)}, "")

	require.Equal(t, 3, out.Len())
	assert.Equal(t, []string{"WO-001", "WO-002", "WO-006"}, out.Values(table.ItemNameColumn))
}

func TestFilterByDateRange_OpenBounds(t *testing.T) {
	wo := testutil.WorkOrdersTable()

	after := FilterByDateRange(wo, DateRange{Start: day(2026, 3, 1)}, "")
	assert.Equal(t, []string{"WO-004", "WO-006"}, after.Values(table.ItemNameColumn))

	before := FilterByDateRange(wo, DateRange{End: day(2025, 12, 31)}, testutil.WODate)
	assert.Equal(t, []string{"WO-003"}, before.Values(table.ItemNameColumn))
}

func TestFilterByDateRange_UnparseableExcluded(t *testing.T) {
	wo := testutil.WorkOrdersTable()
	out := FilterByDateRange(wo, DateRange{Start: day(1900, 1, 1)}, "")
	assert.NotContains(t, out.Values(table.ItemNameColumn), "WO-005")
	assert.Equal(t, 5, out.Len())
}

func TestFilterByDateRange_NoDateColumnUnchanged(t *testing.T) {
	tbl := table.New([]string{"Item Name"}, table.Row{"Item Name": "x"})
	out := FilterByDateRange(tbl, DateRange{Start: day(2026, 1, 1)}, "")
	assert.Equal(t, 1, out.Len())

	out = FilterByDateRange(tbl, DateRange{Start: day(2026, 1, 1)}, "Nope")
	assert.Equal(t, 1, out.Len())
}
