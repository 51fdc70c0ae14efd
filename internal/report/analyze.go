package report

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/intent"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Analysis is the payload for an ad-hoc question. Key names are read by
// the answer prompt and must stay stable.
type Analysis struct {
	DataAnalyzed []string `json:"data_analyzed"`
	Metrics      Metrics  `json:"metrics"`
	Insights     []string `json:"insights"`
	Caveats      []string `json:"caveats"`
}

type Metrics struct {
	SectorFilter string            `json:"sector_filter,omitempty"`
	Quarter      string            `json:"quarter,omitempty"`
	WorkOrders   *WorkOrderMetrics `json:"work_orders,omitempty"`
	Deals        *DealMetrics      `json:"deals,omitempty"`
}

// WorkOrderMetrics leaves an amount nil when its column is missing or holds
// no numbers; InsufficientData names the amounts that had a column but no
// numbers.
type WorkOrderMetrics struct {
	TotalWorkOrders  int                `json:"total_work_orders"`
	TotalRevenue     *float64           `json:"total_revenue,omitempty"`
	AvgOrderValue    *float64           `json:"avg_order_value,omitempty"`
	TotalBilled      *float64           `json:"total_billed,omitempty"`
	StatusBreakdown  analysis.Breakdown `json:"status_breakdown,omitempty"`
	SectorBreakdown  analysis.Breakdown `json:"sector_breakdown,omitempty"`
	RevenueColumn    string             `json:"revenue_column,omitempty"`
	InsufficientData []string           `json:"insufficient_data,omitempty"`
}

type DealMetrics struct {
	TotalDeals         int                `json:"total_deals"`
	TotalPipelineValue *float64           `json:"total_pipeline_value,omitempty"`
	AvgDealValue       *float64           `json:"avg_deal_value,omitempty"`
	DealsWithValue     int                `json:"deals_with_value,omitempty"`
	StageBreakdown     analysis.Breakdown `json:"stage_breakdown,omitempty"`
	StatusBreakdown    analysis.Breakdown `json:"status_breakdown,omitempty"`
	SectorBreakdown    analysis.Breakdown `json:"sector_breakdown,omitempty"`
	ValueColumn        string             `json:"value_column,omitempty"`
	InsufficientData   []string           `json:"insufficient_data,omitempty"`
}

// Analyze loads the sources the question needs, narrows them by the
// intent's sector and quarter, and computes per-source metrics. Only
// ingestion failures are returned; missing columns and empty amounts
// degrade into caveats.
func (a *Assembler) Analyze(ctx context.Context, in intent.Intent) (*Analysis, error) {
	out := &Analysis{
		DataAnalyzed: []string{},
		Insights:     []string{},
		Caveats:      []string{},
	}
	spec := in.FilterSpec()
	if in.Sector != "" {
		out.Metrics.SectorFilter = in.Sector
	}
	q, hasQuarter := spec.Quarter()
	if hasQuarter {
		out.Metrics.Quarter = q.String()
	}

	for _, src := range domain.AllSources {
		if !in.Needs(src) {
			continue
		}
		full, err := a.tables.Get(ctx, src, false)
		if err != nil {
			return nil, err
		}
		applied := spec.Apply(src, full)
		out.DataAnalyzed = append(out.DataAnalyzed, src.Label())
		if applied.WindowDropped {
			out.Caveats = append(out.Caveats, fmt.Sprintf(
				"No %s dated in %s; showing all matching %s instead", src.Label(), q, src.Label()))
		}

		switch src {
		case domain.SourceWorkOrders:
			out.Metrics.WorkOrders = a.workOrderMetrics(applied.Table, out)
		case domain.SourceDeals:
			out.Metrics.Deals = a.dealMetrics(applied.Table, full, out)
		}
	}
	return out, nil
}

func (a *Assembler) workOrderMetrics(t *table.Table, out *Analysis) *WorkOrderMetrics {
	cols := a.schema.workOrders(t)
	m := &WorkOrderMetrics{TotalWorkOrders: t.Len()}

	if cols.revenue == "" {
		out.Caveats = append(out.Caveats, "No revenue column found on Work Orders")
	} else {
		m.RevenueColumn = cols.revenue
		out.Caveats = append(out.Caveats, fmt.Sprintf("Revenue data uses '%s' column", cols.revenue))
		if rm, err := analysis.ComputeRevenueMetrics(t, cols.revenue); err == nil {
			m.TotalRevenue = ptr(rm.Total)
			m.AvgOrderValue = ptr(rm.Average)
		} else {
			m.InsufficientData = append(m.InsufficientData, "total_revenue")
		}
	}

	if cols.billed != "" {
		if hasNumbers(t, cols.billed) {
			m.TotalBilled = ptr(analysis.SumColumn(t, cols.billed))
		} else {
			m.InsufficientData = append(m.InsufficientData, "total_billed")
		}
	}

	if cols.status != "" {
		m.StatusBreakdown = analysis.ValueCounts(t, cols.status)
	}
	if cols.sector != "" {
		m.SectorBreakdown = analysis.ValueCounts(t, cols.sector)
		if top, ok := m.SectorBreakdown.Top(); ok {
			out.Insights = append(out.Insights, fmt.Sprintf(
				"Most work orders are in %s (%d of %d)", top, m.SectorBreakdown.Get(top), m.SectorBreakdown.Total()))
		}
	}
	return m
}

// dealMetrics computes over the filtered table t. The missing-value caveat
// is measured on the full board so it describes data quality, not the
// filter.
func (a *Assembler) dealMetrics(t, full *table.Table, out *Analysis) *DealMetrics {
	cols := a.schema.deals(t)
	m := &DealMetrics{TotalDeals: t.Len()}

	if cols.value != "" {
		m.ValueColumn = cols.value
		if rm, err := analysis.ComputeRevenueMetrics(t, cols.value); err == nil {
			m.TotalPipelineValue = ptr(rm.Total)
			m.AvgDealValue = ptr(rm.Average)
			m.DealsWithValue = rm.Count
		} else {
			m.InsufficientData = append(m.InsufficientData, "total_pipeline_value")
		}
	}

	if cols.stage != "" {
		m.StageBreakdown = analysis.ValueCounts(t, cols.stage)
	}
	if cols.status != "" {
		m.StatusBreakdown = analysis.ValueCounts(t, cols.status)
	}
	if cols.sector != "" {
		m.SectorBreakdown = analysis.ValueCounts(t, cols.sector)
		if top, ok := m.SectorBreakdown.Top(); ok {
			out.Insights = append(out.Insights, fmt.Sprintf(
				"Most deals are in %s (%d of %d)", top, m.SectorBreakdown.Get(top), m.SectorBreakdown.Total()))
		}
	}

	fullValue := a.schema.deals(full).value
	if fullValue == "" {
		out.Caveats = append(out.Caveats, "No deal value column found on Deals")
		return m
	}
	cov := analysis.NumericCoverage(full, fullValue)
	if missing := cov.Missing(); missing > 0 {
		out.Caveats = append(out.Caveats, fmt.Sprintf(
			"Pipeline value: %d deals (%d%%) have no value recorded", missing, roundPercent(cov.MissingFraction())))
	}
	return m
}

func hasNumbers(t *table.Table, column string) bool {
	return analysis.NumericCoverage(t, column).Valid > 0
}

func roundPercent(fraction float64) int {
	return int(math.Round(fraction * 100))
}

func ptr(f float64) *float64 { return &f }
