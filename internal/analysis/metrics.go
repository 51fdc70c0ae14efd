package analysis

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoColumn means a semantic role matched no column.
	ErrNoColumn = errors.New("no matching column")

	// ErrNoNumericData means a resolved column had no parseable numbers.
	ErrNoNumericData = errors.New("no valid numeric values")
)

// RevenueMetrics aggregates the parseable values of one amount column.
// Count is the number of rows that held a number, not the table length.
type RevenueMetrics struct {
	Total      float64 `json:"total"`
	Average    float64 `json:"average"`
	Min        float64 `json:"min"`
	Max        float64 `json:"max"`
	Count      int     `json:"count"`
	ColumnUsed string  `json:"column_used"`
}

// ComputeRevenueMetrics sums, averages and bounds an amount column. An
// empty column name resolves the revenue role. Empty and unparseable cells
// are skipped, never counted as zero.
func ComputeRevenueMetrics(t *table.Table, column string) (RevenueMetrics, error) {
	if column == "" {
		var ok bool
		if column, ok = Resolve(t, RoleRevenue); !ok {
			return RevenueMetrics{}, fmt.Errorf("revenue: %w", ErrNoColumn)
		}
	}
	if !t.HasColumn(column) {
		return RevenueMetrics{}, fmt.Errorf("column %q: %w", column, ErrNoColumn)
	}

	var total, lo, hi decimal.Decimal
	count := 0
	for _, v := range t.Values(column) {
		n := table.ParseNumber(v)
		if !n.Valid() {
			continue
		}
		if count == 0 || n.Value.LessThan(lo) {
			lo = n.Value
		}
		if count == 0 || n.Value.GreaterThan(hi) {
			hi = n.Value
		}
		total = total.Add(n.Value)
		count++
	}
	if count == 0 {
		return RevenueMetrics{}, fmt.Errorf("column %q: %w", column, ErrNoNumericData)
	}

	avg := total.Div(decimal.NewFromInt(int64(count)))
	return RevenueMetrics{
		Total:      total.InexactFloat64(),
		Average:    avg.InexactFloat64(),
		Min:        lo.InexactFloat64(),
		Max:        hi.InexactFloat64(),
		Count:      count,
		ColumnUsed: column,
	}, nil
}

// Coverage counts how a column's cells read as numbers.
type Coverage struct {
	Valid   int
	Empty   int
	Invalid int
}

// Missing counts rows with no usable number: empty or unparseable.
func (c Coverage) Missing() int { return c.Empty + c.Invalid }

func (c Coverage) Rows() int { return c.Valid + c.Empty + c.Invalid }

// MissingFraction is Missing over Rows, zero for an empty table.
func (c Coverage) MissingFraction() float64 {
	if c.Rows() == 0 {
		return 0
	}
	return float64(c.Missing()) / float64(c.Rows())
}

// NumericCoverage classifies every cell of column.
func NumericCoverage(t *table.Table, column string) Coverage {
	var c Coverage
	for _, v := range t.Values(column) {
		switch table.ParseNumber(v).State {
		case table.CellValid:
			c.Valid++
		case table.CellEmpty:
			c.Empty++
		default:
			c.Invalid++
		}
	}
	return c
}

// SumColumn totals the parseable values of column; zero when none parse.
func SumColumn(t *table.Table, column string) float64 {
	var total decimal.Decimal
	for _, v := range t.Values(column) {
		if n := table.ParseNumber(v); n.Valid() {
			total = total.Add(n.Value)
		}
	}
	return total.InexactFloat64()
}
