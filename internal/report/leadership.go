package report

import (
	"context"
	"fmt"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
)

// Status labels the rollups count.
const (
	StatusCompleted      = "Completed"
	StatusOngoing        = "Ongoing"
	StatusExecutedToDate = "Executed until current month"

	DealWon  = "Won"
	DealLost = "Lost"
	DealOpen = "Open"
)

// missingValueConcern is the share of deals without a value above which the
// update raises a data-quality concern.
const missingValueConcern = 0.3

// LeadershipUpdate is the fixed-shape report over both unfiltered boards.
type LeadershipUpdate struct {
	Date              string            `json:"date"`
	ExecutiveSummary  ExecutiveSummary  `json:"executive_summary"`
	WorkOrdersSummary WorkOrdersSummary `json:"work_orders_summary"`
	PipelineSummary   PipelineSummary   `json:"pipeline_summary"`
	SectorInsights    SectorInsights    `json:"sector_insights"`
	Concerns          []string          `json:"concerns"`
	Recommendations   []string          `json:"recommendations"`
}

type ExecutiveSummary struct {
	OrderBook      string `json:"order_book"`
	BilledShare    string `json:"billed_share"`
	PipelineValue  string `json:"pipeline_value"`
	OpenDeals      int    `json:"open_deals"`
	WinRate        string `json:"win_rate"`
	ConcernsRaised int    `json:"concerns_raised"`
}

type WorkOrdersSummary struct {
	TotalOrders       int    `json:"total_orders"`
	TotalValue        string `json:"total_value"`
	BilledValue       string `json:"billed_value"`
	BillingPercentage string `json:"billing_percentage"`
	Completed         int    `json:"completed"`
	Ongoing           int    `json:"ongoing"`
}

type PipelineSummary struct {
	TotalDeals int                `json:"total_deals"`
	TotalValue string             `json:"total_value"`
	Won        int                `json:"won"`
	Lost       int                `json:"lost"`
	Open       int                `json:"open"`
	WinRate    string             `json:"win_rate"`
	Stages     analysis.Breakdown `json:"stages"`
}

type SectorInsights struct {
	WorkOrdersBySector  analysis.Breakdown `json:"work_orders_by_sector"`
	DealsBySector       analysis.Breakdown `json:"deals_by_sector"`
	TopSectorWorkOrders string             `json:"top_sector_work_orders"`
	TopSectorDeals      string             `json:"top_sector_deals"`
}

// LeadershipUpdate reports over both boards with no sector or time filter.
func (a *Assembler) LeadershipUpdate(ctx context.Context) (*LeadershipUpdate, error) {
	wo, err := a.tables.Get(ctx, domain.SourceWorkOrders, false)
	if err != nil {
		return nil, err
	}
	deals, err := a.tables.Get(ctx, domain.SourceDeals, false)
	if err != nil {
		return nil, err
	}

	woCols := a.schema.workOrders(wo)
	dealCols := a.schema.deals(deals)

	revenue := analysis.SumColumn(wo, woCols.revenue)
	billed := analysis.SumColumn(wo, woCols.billed)
	woStatus := analysis.ValueCounts(wo, woCols.status)

	up := &LeadershipUpdate{
		Date:            a.now().Format("January 02, 2006"),
		Concerns:        []string{},
		Recommendations: []string{},
	}
	up.WorkOrdersSummary = WorkOrdersSummary{
		TotalOrders:       wo.Len(),
		TotalValue:        FormatINR(revenue),
		BilledValue:       FormatINR(billed),
		BillingPercentage: Percent(billed, revenue),
		Completed:         woStatus.Get(StatusCompleted),
		Ongoing:           woStatus.Get(StatusOngoing) + woStatus.Get(StatusExecutedToDate),
	}

	dealValue := analysis.SumColumn(deals, dealCols.value)
	dealStatus := analysis.ValueCounts(deals, dealCols.status)
	won, lost := dealStatus.Get(DealWon), dealStatus.Get(DealLost)
	up.PipelineSummary = PipelineSummary{
		TotalDeals: deals.Len(),
		TotalValue: FormatINR(dealValue),
		Won:        won,
		Lost:       lost,
		Open:       dealStatus.Get(DealOpen),
		WinRate:    Percent(float64(won), float64(won+lost)),
		Stages:     nonNil(analysis.ValueCounts(deals, dealCols.stage)),
	}

	woSectors := nonNil(analysis.ValueCounts(wo, woCols.sector))
	dealSectors := nonNil(analysis.ValueCounts(deals, dealCols.sector))
	up.SectorInsights = SectorInsights{
		WorkOrdersBySector:  woSectors,
		DealsBySector:       dealSectors,
		TopSectorWorkOrders: topOrNA(woSectors),
		TopSectorDeals:      topOrNA(dealSectors),
	}

	if unbilled := revenue - billed; unbilled > 0 {
		up.Concerns = append(up.Concerns, fmt.Sprintf("Unbilled amount: %s pending billing", FormatINR(unbilled)))
		up.Recommendations = append(up.Recommendations,
			fmt.Sprintf("Follow up billing on %d completed work orders to reduce the unbilled amount", up.WorkOrdersSummary.Completed))
	}
	switch {
	case deals.Len() == 0:
	case dealCols.value == "":
		up.Concerns = append(up.Concerns, "No deal value column found on Deals - pipeline value cannot be computed")
		up.Recommendations = append(up.Recommendations, "Add a deal value column to the Deals board so the pipeline can be sized")
	default:
		cov := analysis.NumericCoverage(deals, dealCols.value)
		if missing := cov.Missing(); float64(missing) > float64(deals.Len())*missingValueConcern {
			up.Concerns = append(up.Concerns, fmt.Sprintf(
				"%d deals (%d%%) missing deal value - data quality issue", missing, roundPercent(cov.MissingFraction())))
			up.Recommendations = append(up.Recommendations, "Ask deal owners to record deal values so pipeline totals are complete")
		}
	}

	up.ExecutiveSummary = ExecutiveSummary{
		OrderBook:      up.WorkOrdersSummary.TotalValue,
		BilledShare:    up.WorkOrdersSummary.BillingPercentage,
		PipelineValue:  up.PipelineSummary.TotalValue,
		OpenDeals:      up.PipelineSummary.Open,
		WinRate:        up.PipelineSummary.WinRate,
		ConcernsRaised: len(up.Concerns),
	}
	return up, nil
}

func topOrNA(b analysis.Breakdown) string {
	if top, ok := b.Top(); ok {
		return top
	}
	return NotAvailable
}

func nonNil(b analysis.Breakdown) analysis.Breakdown {
	if b == nil {
		return analysis.Breakdown{}
	}
	return b
}
