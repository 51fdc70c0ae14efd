package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/assistant"
)

// FormatChatWelcome greets the user and lists the quick actions.
func FormatChatWelcome(usesLLM bool) string {
	var b strings.Builder
	b.WriteString(StyleHeader.Render("BizPulse"))
	b.WriteString(Dim(" · business intelligence over Work Orders and Deals"))
	b.WriteString("\n")
	if !usesLLM {
		b.WriteString(StyleYellow.Render("Language model disabled: answers are computed summaries."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(Dim("Try one of these, or ask your own question:"))
	b.WriteString("\n")
	for _, ex := range assistant.QuickActions {
		fmt.Fprintf(&b, "  %s %s\n", StyleGreen.Render(ex.Title+":"), ex.Question)
	}
	b.WriteString(Dim("Commands: /examples /report /refresh /clear /help /quit"))
	b.WriteString("\n")
	return b.String()
}

// FormatChatHelp lists the chat commands.
func FormatChatHelp() string {
	rows := [][]string{
		{"/examples", "pick an example question"},
		{"/report", "prepare the leadership update"},
		{"/refresh", "refetch both boards on the next question"},
		{"/clear", "start a new conversation"},
		{"/help", "show this list"},
		{"/quit", "leave the chat"},
	}
	return RenderBox("Chat commands", strings.TrimRight(RenderTable([]string{"Command", "Does"}, rows), "\n"))
}
