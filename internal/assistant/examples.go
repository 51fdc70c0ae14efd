package assistant

// Example is a canned question offered by the chat front-end.
type Example struct {
	Title    string
	Question string
}

// QuickActions are the three one-press summaries.
var QuickActions = []Example{
	{Title: "Pipeline Overview", Question: "Give me an overview of the current pipeline"},
	{Title: "Revenue Summary", Question: "What's our total revenue and billing status?"},
	{Title: "Leadership Brief", Question: LeadershipQuestion},
}

var exampleQuestions = []string{
	"How's our pipeline looking?",
	"What's the revenue breakdown by sector?",
	"Pipeline status for energy sector?",
	"How many deals are in each stage?",
	"Generate a leadership update",
	"What's our billing status?",
}

// Examples lists the quick actions followed by the example questions.
func Examples() []Example {
	out := make([]Example, 0, len(QuickActions)+len(exampleQuestions))
	out = append(out, QuickActions...)
	for _, q := range exampleQuestions {
		out = append(out, Example{Title: q, Question: q})
	}
	return out
}
