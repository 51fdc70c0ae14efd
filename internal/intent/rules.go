package intent

import "github.com/alexanderramin/bizpulse/internal/domain"

// sourceRule marks sources relevant when any keyword occurs in the question.
type sourceRule struct {
	name     string
	keywords []string
	sources  []domain.Source
}

// sourceRules are evaluated in order; every matching rule contributes its
// sources. No match at all selects every source.
var sourceRules = []sourceRule{
	{
		name:     "work_orders",
		keywords: []string{"work order", "project", "execution", "billing", "billed", "revenue", "collected"},
		sources:  []domain.Source{domain.SourceWorkOrders},
	},
	{
		name:     "deals",
		keywords: []string{"deal", "pipeline", "sales", "prospect", "opportunity", "stage"},
		sources:  []domain.Source{domain.SourceDeals},
	},
	{
		name:     "overall",
		keywords: []string{"overall", "business", "company", "everything", "summary", "leadership", "update"},
		sources:  domain.AllSources,
	},
}

// sectorKeywords are scanned in order; the first one present wins.
var sectorKeywords = []string{"mining", "energy", "renewables", "powerline", "urban", "infrastructure", "agriculture"}

// sectorSynonyms override the scan whenever their key appears.
var sectorSynonyms = []struct{ word, sector string }{
	{"energy", "renewables"},
}

var (
	timeTriggers    = []string{"quarter", "q1", "q2", "q3", "q4"}
	currentQuarter  = []string{"this quarter", "current quarter"}
	quarterTokens   = []string{"q1", "q2", "q3", "q4"}
	leadershipWords = []string{"leadership", "update", "summary", "report", "board meeting", "executive"}
)

// Years before and after the reference year a question may name.
const (
	yearsBack  = 2
	yearsAhead = 1
)

var (
	vagueTimeWords = []string{"recently", "lately"}
	amountPhrases  = []string{"how much", "what is the"}
	metricWords    = []string{"revenue", "billed", "value", "deals", "orders"}
)

const (
	clarifyPeriod = "What time period would you like to analyze? (e.g., last month, this quarter, this year)"
	clarifyMetric = "Are you looking for revenue, billed amount, deal pipeline value, or something else?"
)
