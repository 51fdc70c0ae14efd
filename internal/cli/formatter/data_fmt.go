package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/alexanderramin/bizpulse/internal/store"
	"github.com/dustin/go-humanize"
)

const coverageWidth = 12

// FormatSummary renders row counts, column completeness and numeric
// statistics for every source in sum.
func FormatSummary(sum store.Summary) string {
	var sections []string
	for _, src := range domain.AllSources {
		s, ok := sum[src]
		if !ok {
			continue
		}
		sections = append(sections, formatSourceSummary(src, s))
	}
	return strings.Join(sections, "\n")
}

func formatSourceSummary(src domain.Source, s store.SourceSummary) string {
	var b strings.Builder
	b.WriteString(Header(src.Label() + " board"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s records · %d columns · %d empty rows\n\n",
		humanize.Comma(int64(s.Count)), len(s.Columns), s.Quality.EmptyRows)

	rows := make([][]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		md := s.Quality.MissingData[col]
		rows = append(rows, []string{
			col,
			strconv.Itoa(md.Count),
			RenderCoverage(100-md.Percentage, coverageWidth),
		})
	}
	b.WriteString(RenderTable([]string{"Column", "Missing", "Filled"}, rows))

	if len(s.Numeric) > 0 {
		b.WriteString("\n")
		numRows := make([][]string, 0, len(s.Numeric))
		for _, cs := range s.Numeric {
			if cs.NumericStats == nil {
				numRows = append(numRows, []string{cs.Name, "-", "-", "-", "-"})
				continue
			}
			st := cs.NumericStats
			numRows = append(numRows, []string{
				cs.Name,
				humanize.CommafWithDigits(st.Sum, 2),
				humanize.CommafWithDigits(st.Mean, 2),
				humanize.CommafWithDigits(st.Min, 2),
				humanize.CommafWithDigits(st.Max, 2),
			})
		}
		b.WriteString(RenderTable([]string{"Numeric column", "Sum", "Mean", "Min", "Max"}, numRows))
	}
	return b.String()
}

// FormatColumns lists each source's columns followed by the columns its
// semantic roles resolve to.
func FormatColumns(sources []domain.Source, columns map[domain.Source][]string, roles map[domain.Source]map[string]string) string {
	var sections []string
	for _, src := range sources {
		var b strings.Builder
		b.WriteString(Header(src.Label() + " columns"))
		b.WriteString("\n")
		for i, col := range columns[src] {
			fmt.Fprintf(&b, "%3d. %s\n", i+1, col)
		}

		resolved := roles[src]
		if len(resolved) > 0 {
			names := make([]string, 0, len(resolved))
			for name := range resolved {
				names = append(names, name)
			}
			sort.Strings(names)
			b.WriteString("\n")
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{name, resolved[name]}
			}
			b.WriteString(RenderTable([]string{"Role", "Column"}, rows))
		}
		sections = append(sections, b.String())
	}
	return strings.Join(sections, "\n")
}

// FormatPipeline renders the deals pipeline overview.
func FormatPipeline(p *report.PipelineOverview) string {
	var b strings.Builder
	b.WriteString(Header("Pipeline"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s deals across %d sectors\n", humanize.Comma(int64(p.TotalDeals)), p.UniqueSectors)
	if len(p.Sectors) > 0 {
		fmt.Fprintf(&b, "%s %s\n", Dim("Sectors:"), strings.Join(p.Sectors, ", "))
	}
	if len(p.Stages) > 0 {
		b.WriteString("\n")
		b.WriteString(formatCounts(p.StageColumn, p.Stages))
	}
	return b.String()
}

// FormatBreakdown renders one category count with shares.
func FormatBreakdown(r *report.BreakdownResult) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s by %s", r.Source.Label(), r.Column)))
	b.WriteString("\n")
	if len(r.Breakdown) == 0 {
		b.WriteString(Dim("No values recorded."))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(formatCounts(r.Column, r.Breakdown))
	return b.String()
}

func formatCounts(column string, bd analysis.Breakdown) string {
	total := float64(bd.Total())
	rows := make([][]string, 0, len(bd))
	for _, lc := range bd {
		rows = append(rows, []string{
			lc.Label,
			strconv.Itoa(lc.Count),
			report.Percent(float64(lc.Count), total),
		})
	}
	return RenderTable([]string{column, "Count", "Share"}, rows)
}
