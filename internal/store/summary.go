package store

import (
	"context"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// SourceSummary describes one loaded source.
type SourceSummary struct {
	Source  domain.Source       `json:"-"`
	Count   int                 `json:"count"`
	Columns []string            `json:"columns"`
	Quality table.QualityReport `json:"quality"`

	// Numeric summarizes the columns whose names suggest amounts.
	Numeric []table.ColumnSummary `json:"numeric,omitempty"`
}

// Summary is keyed by source, marshalling as {"work_orders": ..., "deals": ...}.
type Summary map[domain.Source]SourceSummary

// Summary loads every source and reports its size, columns and quality.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	out := Summary{}
	for _, src := range domain.AllSources {
		t, err := s.Get(ctx, src, false)
		if err != nil {
			return nil, err
		}
		out[src] = Summarize(src, t)
	}
	return out, nil
}

// Summarize describes a single table.
func Summarize(src domain.Source, t *table.Table) SourceSummary {
	sum := SourceSummary{
		Source:  src,
		Count:   t.Len(),
		Columns: t.Columns(),
		Quality: table.Quality(t),
	}
	for _, col := range analysis.NumericColumns(t) {
		if cs, ok := table.SummarizeColumn(t, col); ok {
			sum.Numeric = append(sum.Numeric, cs)
		}
	}
	return sum
}

// Columns lists every source's columns in declared order.
func (s *Store) Columns(ctx context.Context) (map[domain.Source][]string, error) {
	out := map[domain.Source][]string{}
	for _, src := range domain.AllSources {
		t, err := s.Get(ctx, src, false)
		if err != nil {
			return nil, err
		}
		out[src] = t.Columns()
	}
	return out, nil
}
