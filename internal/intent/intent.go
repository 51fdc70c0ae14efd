// Package intent turns a free-text question into the sources, sector and
// time window an answer should be computed over.
package intent

import (
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
)

// Flow selects the shape of the assembled report.
type Flow string

const (
	FlowAdHoc      Flow = "ad_hoc"
	FlowLeadership Flow = "leadership"
)

// Intent is what a question asks for. Quarter is nil when the question sets
// no time window.
type Intent struct {
	Question string            `json:"question"`
	Sources  []domain.Source   `json:"sources"`
	Sector   string            `json:"sector,omitempty"`
	Quarter  *analysis.Quarter `json:"quarter,omitempty"`
	Flow     Flow              `json:"flow"`
	Rules    []string          `json:"rules,omitempty"`
}

// Needs reports whether src is relevant to the question.
func (i Intent) Needs(src domain.Source) bool {
	for _, s := range i.Sources {
		if s == src {
			return true
		}
	}
	return false
}

// FilterSpec converts the intent into filters over its sources.
func (i Intent) FilterSpec() analysis.FilterSpec {
	spec := analysis.NewFilterSpec(i.Sources, i.Sector, analysis.DateRange{})
	if i.Quarter != nil {
		spec = spec.WithQuarter(*i.Quarter)
	}
	return spec
}

// Classifier resolves relative time expressions against a fixed reference
// date.
type Classifier struct {
	ref time.Time
}

func NewClassifier(ref time.Time) *Classifier {
	return &Classifier{ref: ref}
}

// Reference returns the date "this quarter" is resolved against.
func (c *Classifier) Reference() time.Time { return c.ref }

func (c *Classifier) Classify(question string) Intent {
	return Classify(question, c.ref)
}

// Classify is pure: the same question and reference date always yield the
// same intent.
func Classify(question string, ref time.Time) Intent {
	q := strings.ToLower(question)

	in := Intent{Question: question, Flow: FlowAdHoc}
	in.Sources, in.Rules = classifySources(q)
	in.Sector = classifySector(q)
	in.Quarter = classifyQuarter(q, ref)
	if containsAny(q, leadershipWords) {
		in.Flow = FlowLeadership
	}
	return in
}

func classifySources(q string) ([]domain.Source, []string) {
	wanted := map[domain.Source]bool{}
	var matched []string
	for _, r := range sourceRules {
		if !containsAny(q, r.keywords) {
			continue
		}
		matched = append(matched, r.name)
		for _, s := range r.sources {
			wanted[s] = true
		}
	}

	var out []domain.Source
	for _, s := range domain.AllSources {
		if len(wanted) == 0 || wanted[s] {
			out = append(out, s)
		}
	}
	return out, matched
}

func classifySector(q string) string {
	sector := ""
	for _, kw := range sectorKeywords {
		if strings.Contains(q, kw) {
			sector = kw
			break
		}
	}
	for _, syn := range sectorSynonyms {
		if strings.Contains(q, syn.word) {
			sector = syn.sector
		}
	}
	return sector
}

// classifyQuarter returns nil unless the question names a quarter that can
// be resolved. A bare "quarter" without "this"/"current" or a q-token sets
// no window.
func classifyQuarter(q string, ref time.Time) *analysis.Quarter {
	if !containsAny(q, timeTriggers) {
		return nil
	}

	number := 0
	if containsAny(q, currentQuarter) {
		number = analysis.QuarterOf(ref).Number
	} else {
		for i, tok := range quarterTokens {
			if strings.Contains(q, tok) {
				number = i + 1
				break
			}
		}
	}
	if number == 0 {
		return nil
	}

	year := ref.Year()
	for y := ref.Year() - yearsBack; y <= ref.Year()+yearsAhead; y++ {
		if strings.Contains(q, strconv.Itoa(y)) {
			year = y
			break
		}
	}
	return &analysis.Quarter{Year: year, Number: number}
}

// Clarifications lists follow-up questions for vague wording. An empty
// result means the question is specific enough.
func Clarifications(question string) []string {
	q := strings.ToLower(question)
	var out []string
	if containsAny(q, vagueTimeWords) {
		out = append(out, clarifyPeriod)
	}
	if containsAny(q, amountPhrases) && !containsAny(q, metricWords) {
		out = append(out, clarifyMetric)
	}
	return out
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
