package assistant

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/store"
)

// Columns listed per board in the system prompt before eliding the rest.
const promptColumnLimit = 15

// Worst columns per board named in the data quality notes.
const qualityNoteColumns = 3

func buildSystemPrompt(sum store.Summary, ref time.Time) string {
	var b strings.Builder
	b.WriteString("You are a Business Intelligence Agent for monday.com data. You help founders and executives get quick, accurate answers to business questions.\n\n")
	b.WriteString("You have access to two data sources:\n\n")

	descriptions := map[domain.Source]string{
		domain.SourceWorkOrders: "Project execution data, billing, revenue, status",
		domain.SourceDeals:      "Sales pipeline, deal stages, values, sectors",
	}
	for i, src := range domain.AllSources {
		s := sum[src]
		cols := s.Columns
		more := ""
		if len(cols) > promptColumnLimit {
			cols, more = cols[:promptColumnLimit], "..."
		}
		fmt.Fprintf(&b, "%d. **%s Board** (%d records):\n", i+1, src.Label(), s.Count)
		fmt.Fprintf(&b, "   - Columns: %s%s\n", strings.Join(cols, ", "), more)
		fmt.Fprintf(&b, "   - Contains: %s\n\n", descriptions[src])
	}

	b.WriteString("IMPORTANT DATA QUALITY NOTES:\n")
	for _, src := range domain.AllSources {
		q := sum[src].Quality
		worst := q.WorstColumns(qualityNoteColumns)
		if len(worst) == 0 {
			fmt.Fprintf(&b, "- %s have no missing values\n", src.Label())
			continue
		}
		parts := make([]string, len(worst))
		for i, col := range worst {
			parts[i] = fmt.Sprintf("%s (%.1f%%)", col, q.MissingData[col].Percentage)
		}
		fmt.Fprintf(&b, "- %s have missing data in: %s\n", src.Label(), strings.Join(parts, ", "))
	}
	b.WriteString("- Always mention data quality caveats when relevant\n\n")

	b.WriteString("When answering questions:\n")
	b.WriteString("1. Interpret business intent, not just literal words\n")
	b.WriteString("2. Provide insights, not just raw numbers\n")
	b.WriteString("3. Mention any data quality issues\n")
	fmt.Fprintf(&b, "4. For queries about \"this quarter\", use the current date (%s, %s)\n",
		ref.Format("January 2006"), analysis.QuarterOf(ref))
	b.WriteString("5. If data is insufficient, explain what's missing and what you CAN provide\n\n")

	b.WriteString("For numerical answers, format large amounts in lakhs and crores with the rupee sign (e.g., ₹12.35 L, ₹1.20 Cr) and counts with commas.\n\n")
	b.WriteString("If asked to prepare leadership updates, structure the response with:\n")
	b.WriteString("- Executive Summary\n- Key Metrics\n- Notable Insights\n- Areas of Concern\n")
	return b.String()
}

const answerInstructions = `Please provide a clear, insightful answer based on this data. Include:
1. Direct answer to the question
2. Key metrics with formatted numbers
3. Any relevant insights or patterns
4. Data quality caveats if relevant

Keep the response concise but comprehensive.`

func buildUserPrompt(question, heading string, payload any) (string, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s: %w", strings.ToLower(heading), err)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	fmt.Fprintf(&b, "%s:\n%s\n\n", heading, data)
	b.WriteString(answerInstructions)
	return b.String(), nil
}
