package report

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
)

// PipelineOverview describes the deals board without filters.
type PipelineOverview struct {
	TotalDeals    int                `json:"total_deals"`
	UniqueSectors int                `json:"unique_sectors"`
	Sectors       []string           `json:"sectors"`
	Stages        analysis.Breakdown `json:"stages"`
	StageColumn   string             `json:"stage_column,omitempty"`
}

// Pipeline lists the deal sectors in first-seen order and counts deals per
// stage.
func (a *Assembler) Pipeline(ctx context.Context) (*PipelineOverview, error) {
	deals, err := a.tables.Get(ctx, domain.SourceDeals, false)
	if err != nil {
		return nil, err
	}
	cols := a.schema.deals(deals)

	out := &PipelineOverview{
		TotalDeals: deals.Len(),
		Sectors:    []string{},
		Stages:     analysis.Breakdown{},
	}
	if cols.sector != "" {
		seen := map[string]bool{}
		for _, v := range deals.Values(cols.sector) {
			if v != "" && !seen[v] {
				seen[v] = true
				out.Sectors = append(out.Sectors, v)
			}
		}
		out.UniqueSectors = len(out.Sectors)
	}

	stageCol := cols.stage
	if stageCol == "" {
		stageCol = cols.status
	}
	if stageCol != "" {
		out.StageColumn = stageCol
		out.Stages = nonNil(analysis.ValueCounts(deals, stageCol))
	}
	return out, nil
}

// BreakdownResult is a category count over one column of one board.
type BreakdownResult struct {
	Source    domain.Source      `json:"source"`
	Column    string             `json:"column"`
	Breakdown analysis.Breakdown `json:"breakdown"`
}

// Breakdown counts the values of the column playing role on src. It
// returns analysis.ErrNoColumn when no column resolves.
func (a *Assembler) Breakdown(ctx context.Context, src domain.Source, role analysis.Role) (*BreakdownResult, error) {
	t, err := a.tables.Get(ctx, src, false)
	if err != nil {
		return nil, err
	}
	col, ok := analysis.Resolve(t, role)
	if !ok {
		return nil, fmt.Errorf("%s %s: %w", src.Label(), role.Name, analysis.ErrNoColumn)
	}
	return &BreakdownResult{
		Source:    src,
		Column:    col,
		Breakdown: nonNil(analysis.ValueCounts(t, col)),
	}, nil
}
