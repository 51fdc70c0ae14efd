package testutil

import (
	"time"

	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/google/uuid"
)

// ConversationOption customizes NewTestConversation.
type ConversationOption func(*domain.Conversation)

func WithStartedAt(t time.Time) ConversationOption {
	return func(c *domain.Conversation) {
		c.StartedAt = t
	}
}

func WithTitle(title string) ConversationOption {
	return func(c *domain.Conversation) {
		c.Title = title
	}
}

// NewTestConversation returns an unsaved conversation with a fresh ID.
func NewTestConversation(opts ...ConversationOption) *domain.Conversation {
	c := &domain.Conversation{
		ID:        uuid.New().String(),
		StartedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewTestTurn returns an unsaved turn of conversationID.
func NewTestTurn(conversationID string, role domain.TurnRole, content string) *domain.Turn {
	return &domain.Turn{ConversationID: conversationID, Role: role, Content: content}
}
