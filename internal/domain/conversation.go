package domain

import "time"

type TurnRole string

const (
	RoleUser      TurnRole = "user"
	RoleAssistant TurnRole = "assistant"
)

// Turn is one message of a chat transcript.
type Turn struct {
	ID             string
	ConversationID string
	Seq            int
	Role           TurnRole
	Content        string
	// Source records how an assistant turn was produced (llm or
	// deterministic); empty for user turns.
	Source    string
	CreatedAt time.Time
}

// Conversation groups the turns of one chat session. Title is taken from
// the first question asked.
type Conversation struct {
	ID        string
	Title     string
	StartedAt time.Time
	UpdatedAt time.Time
	TurnCount int
}

// DisplayID shortens the conversation ID for listings.
func (c *Conversation) DisplayID() string {
	if len(c.ID) > 8 {
		return c.ID[:8]
	}
	return c.ID
}

// Valid reports whether r is a known turn role.
func (r TurnRole) Valid() bool {
	return r == RoleUser || r == RoleAssistant
}

// RecentTurns returns at most n trailing turns, preserving order.
func RecentTurns(turns []Turn, n int) []Turn {
	if n <= 0 || len(turns) == 0 {
		return nil
	}
	if len(turns) <= n {
		return turns
	}
	return turns[len(turns)-n:]
}
