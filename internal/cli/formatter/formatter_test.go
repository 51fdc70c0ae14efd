package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/intent"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/alexanderramin/bizpulse/internal/store"
	"github.com/alexanderramin/bizpulse/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	got := stripANSI(RenderTable(
		[]string{"Col", "N"},
		[][]string{{"abc", "1"}, {"x", "22"}},
	))

	want := "Col  N\n" +
		"───  ──\n" +
		"abc  1\n" +
		"x    22\n"
	assert.Equal(t, want, got)
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"a"}}))
}

func TestRenderCoverage(t *testing.T) {
	assert.Equal(t, "[█████░░░░░]  50%", stripANSI(RenderCoverage(50, 10)))
	assert.Equal(t, "[██████████] 100%", stripANSI(RenderCoverage(140, 10)))
	assert.Equal(t, "[░░]   0%", stripANSI(RenderCoverage(-3, 1)))
}

func TestMissingStyle(t *testing.T) {
	assert.Equal(t, StyleRed, MissingStyle(42.9))
	assert.Equal(t, StyleYellow, MissingStyle(16.7))
	assert.Equal(t, StyleGreen, MissingStyle(0))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("  short ", 10))
	assert.Equal(t, "How's our...", Truncate("How's our pipeline looking?", 12))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "just now", RelativeTime(now.Add(-10*time.Second), now))
	assert.Equal(t, "3 hours ago", RelativeTime(now.Add(-3*time.Hour), now))
}

func TestFormatAnswer_Deterministic(t *testing.T) {
	q := analysis.Quarter{Year: 2026, Number: 1}
	ans := &assistant.Answer{
		Text:   "Data analyzed: Deals\n",
		Source: assistant.SourceDeterministic,
		Intent: intent.Intent{
			Sources: []domain.Source{domain.SourceDeals},
			Sector:  "mining",
			Quarter: &q,
		},
	}

	got := stripANSI(FormatAnswer(ans))
	assert.True(t, strings.HasPrefix(got, "Data analyzed: Deals\n\n"))
	assert.Contains(t, got, "Data: Deals · sector mining · Q1 2026 · computed summary (language model disabled)")
	assert.NotContains(t, got, "To sharpen")
}

func TestFormatAnswer_LLMWithClarifications(t *testing.T) {
	ans := &assistant.Answer{
		Text:           "Revenue is ₹20.00 L.",
		Source:         assistant.SourceLLM,
		Model:          "gpt-4o",
		Intent:         intent.Intent{Sources: domain.AllSources},
		Clarifications: []string{"What time period would you like to analyze?"},
	}

	got := stripANSI(FormatAnswer(ans))
	assert.Contains(t, got, "Data: Work Orders + Deals · answered by gpt-4o")
	assert.Contains(t, got, "To sharpen this answer:\n  - What time period would you like to analyze?\n")
}

func TestFormatSummary_Fixtures(t *testing.T) {
	sum := store.Summary{
		domain.SourceWorkOrders: store.Summarize(domain.SourceWorkOrders, testutil.WorkOrdersTable()),
		domain.SourceDeals:      store.Summarize(domain.SourceDeals, testutil.DealsTable()),
	}

	got := stripANSI(FormatSummary(sum))
	assert.Contains(t, got, "WORK ORDERS BOARD")
	assert.Contains(t, got, "6 records · 7 columns · 0 empty rows")
	assert.Contains(t, got, "7 records · 7 columns · 0 empty rows")
	assert.Contains(t, got, "Numeric column")
	assert.Less(t, strings.Index(got, "WORK ORDERS BOARD"), strings.Index(got, "DEALS BOARD"))
}

func TestFormatColumns(t *testing.T) {
	deals := testutil.DealsTable()
	got := stripANSI(FormatColumns(
		[]domain.Source{domain.SourceDeals},
		map[domain.Source][]string{domain.SourceDeals: deals.Columns()},
		map[domain.Source]map[string]string{domain.SourceDeals: analysis.ResolveRoles(deals)},
	))

	assert.Contains(t, got, "DEALS COLUMNS")
	assert.Contains(t, got, "  2. Deal Status\n")
	assert.Contains(t, got, "stage    Deal Stage")
	assert.NotContains(t, got, "WORK ORDERS")
}

func TestFormatPipelineAndBreakdown(t *testing.T) {
	p := &report.PipelineOverview{
		TotalDeals:    7,
		UniqueSectors: 3,
		Sectors:       []string{"Mining", "Renewables", "Powerline"},
		Stages:        analysis.Breakdown{{Label: "H. Work Order Received", Count: 2}, {Label: "A. Lead Generated", Count: 2}},
		StageColumn:   "Deal Stage",
	}
	got := stripANSI(FormatPipeline(p))
	assert.Contains(t, got, "7 deals across 3 sectors")
	assert.Contains(t, got, "Sectors: Mining, Renewables, Powerline")
	assert.Contains(t, got, "50.0%")

	empty := stripANSI(FormatBreakdown(&report.BreakdownResult{Source: domain.SourceDeals, Column: "Deal Status"}))
	assert.Contains(t, empty, "DEALS BY DEAL STATUS")
	assert.Contains(t, empty, "No values recorded.")
}

func TestFormatConversationList(t *testing.T) {
	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	convs := []*domain.Conversation{
		{ID: "0f8e2a4c-1b2d", Title: "Revenue by sector?", TurnCount: 4, UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "abc", TurnCount: 0, UpdatedAt: now},
	}

	got := stripANSI(FormatConversationList(convs, now))
	assert.Contains(t, got, "0f8e2a4c")
	assert.Contains(t, got, "Revenue by sector?")
	assert.Contains(t, got, "2 hours ago")
	assert.Contains(t, got, "(untitled)")

	assert.Contains(t, stripANSI(FormatConversationList(nil, now)), "No saved conversations")
}

func TestFormatTranscript(t *testing.T) {
	c := &domain.Conversation{ID: "c1", Title: "Pipeline", StartedAt: time.Now()}
	turns := []domain.Turn{
		{Role: domain.RoleUser, Content: "How's our pipeline?"},
		{Role: domain.RoleAssistant, Content: "Seven deals.\n"},
	}

	got := stripANSI(FormatTranscript(c, turns))
	assert.Contains(t, got, "PIPELINE")
	assert.Contains(t, got, "You: How's our pipeline?\n")
	assert.Contains(t, got, "BizPulse: Seven deals.\n")
}

func TestFormatChatWelcome(t *testing.T) {
	got := stripANSI(FormatChatWelcome(false))
	require.Contains(t, got, "Language model disabled")
	assert.Contains(t, got, "Leadership Brief: "+assistant.LeadershipQuestion)
	assert.NotContains(t, stripANSI(FormatChatWelcome(true)), "disabled")
}

func TestFormatChatHelp_Boxed(t *testing.T) {
	out := stripANSI(FormatChatHelp())

	assert.Contains(t, out, "CHAT COMMANDS")
	assert.Contains(t, out, "/refresh")
	assert.Contains(t, out, "prepare the leadership update")
	assert.True(t, strings.HasPrefix(out, "╭"))
}
