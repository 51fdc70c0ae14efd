package assistant

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/report"
)

// Categories listed per breakdown before the rest are summarized.
const renderBreakdownLimit = 6

// RenderAnalysis writes an ad-hoc analysis as plain text.
func RenderAnalysis(a *report.Analysis) string {
	var b strings.Builder

	scope := []string{}
	if a.Metrics.SectorFilter != "" {
		scope = append(scope, "sector: "+a.Metrics.SectorFilter)
	}
	if a.Metrics.Quarter != "" {
		scope = append(scope, a.Metrics.Quarter)
	}
	fmt.Fprintf(&b, "Data analyzed: %s", strings.Join(a.DataAnalyzed, ", "))
	if len(scope) > 0 {
		fmt.Fprintf(&b, " (%s)", strings.Join(scope, ", "))
	}
	b.WriteString("\n")

	if wo := a.Metrics.WorkOrders; wo != nil {
		b.WriteString("\nWork Orders\n")
		fmt.Fprintf(&b, "- Work orders: %d\n", wo.TotalWorkOrders)
		if wo.TotalRevenue != nil {
			fmt.Fprintf(&b, "- Total revenue: %s (average %s)\n",
				report.FormatINR(*wo.TotalRevenue), report.FormatOptionalINR(wo.AvgOrderValue))
		}
		if wo.TotalBilled != nil {
			fmt.Fprintf(&b, "- Billed: %s\n", report.FormatINR(*wo.TotalBilled))
		}
		writeBreakdown(&b, "By status", wo.StatusBreakdown)
		writeBreakdown(&b, "By sector", wo.SectorBreakdown)
		writeInsufficient(&b, wo.InsufficientData)
	}

	if d := a.Metrics.Deals; d != nil {
		b.WriteString("\nDeals\n")
		fmt.Fprintf(&b, "- Deals: %d\n", d.TotalDeals)
		if d.TotalPipelineValue != nil {
			fmt.Fprintf(&b, "- Pipeline value: %s across %d deals with a value (average %s)\n",
				report.FormatINR(*d.TotalPipelineValue), d.DealsWithValue, report.FormatOptionalINR(d.AvgDealValue))
		}
		writeBreakdown(&b, "By stage", d.StageBreakdown)
		writeBreakdown(&b, "By status", d.StatusBreakdown)
		writeBreakdown(&b, "By sector", d.SectorBreakdown)
		writeInsufficient(&b, d.InsufficientData)
	}

	writeList(&b, "Insights", a.Insights)
	writeList(&b, "Caveats", a.Caveats)
	return strings.TrimRight(b.String(), "\n")
}

// RenderLeadership writes a leadership update as plain text.
func RenderLeadership(u *report.LeadershipUpdate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Leadership update (%s)\n", u.Date)

	es := u.ExecutiveSummary
	b.WriteString("\nExecutive Summary\n")
	fmt.Fprintf(&b, "- Order book %s, %s billed\n", es.OrderBook, es.BilledShare)
	fmt.Fprintf(&b, "- Pipeline %s with %d open deals, win rate %s\n", es.PipelineValue, es.OpenDeals, es.WinRate)

	wo := u.WorkOrdersSummary
	b.WriteString("\nKey Metrics\n")
	fmt.Fprintf(&b, "- Work orders: %d (%d completed, %d ongoing)\n", wo.TotalOrders, wo.Completed, wo.Ongoing)
	fmt.Fprintf(&b, "- Order value %s, billed %s (%s)\n", wo.TotalValue, wo.BilledValue, wo.BillingPercentage)
	p := u.PipelineSummary
	fmt.Fprintf(&b, "- Deals: %d (%d open, %d won, %d lost), value %s\n", p.TotalDeals, p.Open, p.Won, p.Lost, p.TotalValue)
	writeBreakdown(&b, "Stages", p.Stages)

	s := u.SectorInsights
	b.WriteString("\nNotable Insights\n")
	fmt.Fprintf(&b, "- Top work order sector: %s\n", s.TopSectorWorkOrders)
	fmt.Fprintf(&b, "- Top deal sector: %s\n", s.TopSectorDeals)

	writeList(&b, "Areas of Concern", u.Concerns)
	writeList(&b, "Recommendations", u.Recommendations)
	return strings.TrimRight(b.String(), "\n")
}

func writeBreakdown(b *strings.Builder, label string, bd analysis.Breakdown) {
	if len(bd) == 0 {
		return
	}
	shown := bd
	if len(shown) > renderBreakdownLimit {
		shown = shown[:renderBreakdownLimit]
	}
	parts := make([]string, len(shown))
	for i, lc := range shown {
		parts[i] = fmt.Sprintf("%s %d", lc.Label, lc.Count)
	}
	line := strings.Join(parts, ", ")
	if rest := len(bd) - len(shown); rest > 0 {
		line += fmt.Sprintf(", +%d more", rest)
	}
	fmt.Fprintf(b, "- %s: %s\n", label, line)
}

func writeInsufficient(b *strings.Builder, fields []string) {
	if len(fields) == 0 {
		return
	}
	fmt.Fprintf(b, "- Insufficient data for: %s\n", strings.Join(fields, ", "))
}

func writeList(b *strings.Builder, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s\n", title)
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
}
