package formatter

import (
	"strings"

	"github.com/alexanderramin/bizpulse/internal/assistant"
)

// FormatAnswer renders an answer with where it came from and any
// clarifying questions.
func FormatAnswer(ans *assistant.Answer) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(ans.Text))
	b.WriteString("\n\n")
	b.WriteString(Dim(answerSourceLine(ans)))
	b.WriteString("\n")

	if len(ans.Clarifications) > 0 {
		b.WriteString("\n")
		b.WriteString(StyleYellow.Render("To sharpen this answer:"))
		b.WriteString("\n")
		b.WriteString(Bullets(ans.Clarifications))
	}
	return b.String()
}

func answerSourceLine(ans *assistant.Answer) string {
	scope := []string{}
	for _, src := range ans.Intent.Sources {
		scope = append(scope, src.Label())
	}
	line := "Data: " + strings.Join(scope, " + ")
	if ans.Intent.Sector != "" {
		line += " · sector " + ans.Intent.Sector
	}
	if ans.Intent.Quarter != nil {
		line += " · " + ans.Intent.Quarter.String()
	}

	switch ans.Source {
	case assistant.SourceLLM:
		if ans.Model != "" {
			return line + " · answered by " + ans.Model
		}
		return line + " · answered by the language model"
	default:
		return line + " · computed summary (language model disabled)"
	}
}

// FormatFailure renders a user-facing failure message.
func FormatFailure(msg string) string {
	return StyleRed.Render(msg)
}
