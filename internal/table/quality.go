package table

import (
	"math"
	"sort"
)

// MissingData counts missing cells in one column.
type MissingData struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QualityReport summarizes how complete a table is.
type QualityReport struct {
	TotalRows   int                    `json:"total_rows"`
	Columns     int                    `json:"columns"`
	MissingData map[string]MissingData `json:"missing_data"`
	EmptyRows   int                    `json:"empty_rows"`
}

// Quality reports empty cells per column and rows whose every column other
// than the item name is empty.
func Quality(t *Table) QualityReport {
	report := QualityReport{
		TotalRows:   t.Len(),
		Columns:     len(t.columns),
		MissingData: map[string]MissingData{},
	}
	if t.Len() == 0 {
		return report
	}

	for _, col := range t.columns {
		missing := 0
		for _, r := range t.rows {
			if r[col] == "" {
				missing++
			}
		}
		if missing > 0 {
			report.MissingData[col] = MissingData{
				Count:      missing,
				Percentage: round1(float64(missing) / float64(t.Len()) * 100),
			}
		}
	}

	for _, r := range t.rows {
		empty, data := true, false
		for _, col := range t.columns {
			if col == ItemNameColumn {
				continue
			}
			data = true
			if r[col] != "" {
				empty = false
				break
			}
		}
		if data && empty {
			report.EmptyRows++
		}
	}
	return report
}

// WorstColumns returns up to n columns ordered by missing percentage,
// highest first, ties by name.
func (q QualityReport) WorstColumns(n int) []string {
	cols := make([]string, 0, len(q.MissingData))
	for c := range q.MissingData {
		cols = append(cols, c)
	}
	sort.Slice(cols, func(i, j int) bool {
		pi, pj := q.MissingData[cols[i]].Percentage, q.MissingData[cols[j]].Percentage
		if pi != pj {
			return pi > pj
		}
		return cols[i] < cols[j]
	})
	if n > 0 && len(cols) > n {
		cols = cols[:n]
	}
	return cols
}

// NumericStats are computed over the parseable cells of a column.
type NumericStats struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`
	Sum  float64 `json:"sum"`
}

// ColumnSummary describes one column's contents.
type ColumnSummary struct {
	Name         string        `json:"name"`
	TotalValues  int           `json:"total_values"`
	EmptyCount   int           `json:"empty_count"`
	NumericStats *NumericStats `json:"numeric_stats,omitempty"`
	UniqueValues []string      `json:"unique_values,omitempty"`
	UniqueCount  int           `json:"unique_count,omitempty"`
}

// maxListedUniques is the distinct-value count above which a summary
// reports a count instead of the values.
const maxListedUniques = 20

// SummarizeColumn describes a column. ok is false when the column does not
// exist.
func SummarizeColumn(t *Table, name string) (summary ColumnSummary, ok bool) {
	if !t.HasColumn(name) {
		return ColumnSummary{}, false
	}
	summary = ColumnSummary{Name: name, TotalValues: t.Len()}

	var uniques []string
	seen := map[string]bool{}
	var stats *NumericStats
	valid := 0
	for _, r := range t.rows {
		v := r[name]
		if v == "" {
			summary.EmptyCount++
			continue
		}
		if !seen[v] {
			seen[v] = true
			uniques = append(uniques, v)
		}
		n := ParseNumber(v)
		if !n.Valid() {
			continue
		}
		f := n.Float64()
		if stats == nil {
			stats = &NumericStats{Min: f, Max: f}
		}
		stats.Min = math.Min(stats.Min, f)
		stats.Max = math.Max(stats.Max, f)
		stats.Sum += f
		valid++
	}
	if stats != nil {
		stats.Mean = stats.Sum / float64(valid)
		summary.NumericStats = stats
	}

	if len(uniques) <= maxListedUniques {
		summary.UniqueValues = uniques
	} else {
		summary.UniqueCount = len(uniques)
	}
	return summary, true
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
