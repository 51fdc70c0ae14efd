package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/bizpulse/internal/domain"
)

const titleWidth = 48

// FormatConversationList renders saved conversations, newest first.
func FormatConversationList(convs []*domain.Conversation, now time.Time) string {
	if len(convs) == 0 {
		return Dim("No saved conversations yet. Start one with `bizpulse chat`.") + "\n"
	}
	rows := make([][]string, len(convs))
	for i, c := range convs {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		rows[i] = []string{
			c.DisplayID(),
			Truncate(title, titleWidth),
			strconv.Itoa(c.TurnCount),
			RelativeTime(c.UpdatedAt, now),
		}
	}
	return RenderTable([]string{"ID", "Title", "Turns", "Last active"}, rows)
}

// FormatTranscript renders every turn of a conversation.
func FormatTranscript(c *domain.Conversation, turns []domain.Turn) string {
	var b strings.Builder
	title := c.Title
	if title == "" {
		title = "Conversation " + c.DisplayID()
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s\n\n", Dim("Started "+c.StartedAt.Local().Format("Jan 2, 2006 15:04")))
	if len(turns) == 0 {
		b.WriteString(Dim("No turns recorded."))
		b.WriteString("\n")
	}
	for _, t := range turns {
		b.WriteString(FormatTurn(t))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatTurn renders one transcript entry.
func FormatTurn(t domain.Turn) string {
	if t.Role == domain.RoleUser {
		return StyleBlue.Render("You: ") + t.Content
	}
	return StylePurple.Render("BizPulse: ") + strings.TrimSpace(t.Content) + "\n"
}
