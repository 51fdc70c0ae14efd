package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/bizpulse/internal/domain"
)

// ErrNotFound is wrapped by lookups that match no row.
var ErrNotFound = errors.New("not found")

// ConversationRepo stores chat transcripts.
type ConversationRepo interface {
	Create(ctx context.Context, c *domain.Conversation) error
	GetByID(ctx context.Context, id string) (*domain.Conversation, error)
	Latest(ctx context.Context) (*domain.Conversation, error)
	List(ctx context.Context, limit int) ([]*domain.Conversation, error)
	AppendTurn(ctx context.Context, t *domain.Turn) error
	AppendTurns(ctx context.Context, turns ...*domain.Turn) error
	ListTurns(ctx context.Context, conversationID string) ([]domain.Turn, error)
	Delete(ctx context.Context, id string) error
}
