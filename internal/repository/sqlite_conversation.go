package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/bizpulse/internal/db"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/google/uuid"
)

// SQLiteConversationRepo implements ConversationRepo using a SQLite database.
type SQLiteConversationRepo struct {
	conn *sql.DB
	uow  db.UnitOfWork
	now  func() time.Time
}

// NewSQLiteConversationRepo creates a new SQLiteConversationRepo.
func NewSQLiteConversationRepo(conn *sql.DB) *SQLiteConversationRepo {
	return &SQLiteConversationRepo{
		conn: conn,
		uow:  db.NewSQLiteUnitOfWork(conn),
		now:  time.Now,
	}
}

const conversationColumns = `c.id, c.title, c.started_at, c.updated_at,
	(SELECT COUNT(*) FROM turns t WHERE t.conversation_id = c.id)`

// Create inserts c, assigning an ID and timestamps when unset.
func (r *SQLiteConversationRepo) Create(ctx context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.StartedAt.IsZero() {
		c.StartedAt = r.now().UTC()
	}
	c.UpdatedAt = c.StartedAt

	_, err := r.conn.ExecContext(ctx,
		`INSERT INTO conversations (id, title, started_at, updated_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.Title, formatTime(c.StartedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return fmt.Errorf("inserting conversation: %w", err)
	}
	return nil
}

func (r *SQLiteConversationRepo) GetByID(ctx context.Context, id string) (*domain.Conversation, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations c WHERE c.id = ?`, id)
	return scanConversation(row)
}

// Latest returns the most recently active conversation.
func (r *SQLiteConversationRepo) Latest(ctx context.Context) (*domain.Conversation, error) {
	row := r.conn.QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations c ORDER BY c.updated_at DESC, c.rowid DESC LIMIT 1`)
	return scanConversation(row)
}

// List returns conversations, most recently active first. limit <= 0
// returns all of them.
func (r *SQLiteConversationRepo) List(ctx context.Context, limit int) ([]*domain.Conversation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.conn.QueryContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations c ORDER BY c.updated_at DESC, c.rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var out []*domain.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating conversations: %w", err)
	}
	return out, nil
}

// AppendTurn stores t as the next turn of its conversation, filling in ID,
// Seq and CreatedAt. The first user turn also titles the conversation.
func (r *SQLiteConversationRepo) AppendTurn(ctx context.Context, t *domain.Turn) error {
	return r.AppendTurns(ctx, t)
}

// AppendTurns stores turns in order within one transaction. Either every
// turn is written or none is.
func (r *SQLiteConversationRepo) AppendTurns(ctx context.Context, turns ...*domain.Turn) error {
	now := r.now().UTC()
	for _, t := range turns {
		if !t.Role.Valid() {
			return fmt.Errorf("appending turn: unknown role %q", t.Role)
		}
		if t.ID == "" {
			t.ID = uuid.New().String()
		}
		t.CreatedAt = now
	}

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		for _, t := range turns {
			if err := appendTurn(ctx, tx, t); err != nil {
				return err
			}
		}
		return nil
	})
}

func appendTurn(ctx context.Context, tx db.DBTX, t *domain.Turn) error {
	created := formatTime(t.CreatedAt)

	var title string
	err := tx.QueryRowContext(ctx, `SELECT title FROM conversations WHERE id = ?`, t.ConversationID).Scan(&title)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("conversation %s: %w", t.ConversationID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("loading conversation: %w", err)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM turns WHERE conversation_id = ?`, t.ConversationID,
	).Scan(&t.Seq); err != nil {
		return fmt.Errorf("allocating turn seq: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO turns (id, conversation_id, seq, role, content, answer_source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ConversationID, t.Seq, string(t.Role), t.Content, t.Source, created,
	); err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}

	if title == "" && t.Role == domain.RoleUser {
		title = titleFrom(t.Content)
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE conversations SET title = ?, updated_at = ? WHERE id = ?`,
		title, created, t.ConversationID,
	); err != nil {
		return fmt.Errorf("touching conversation: %w", err)
	}
	return nil
}

// ListTurns returns the transcript oldest first.
func (r *SQLiteConversationRepo) ListTurns(ctx context.Context, conversationID string) ([]domain.Turn, error) {
	rows, err := r.conn.QueryContext(ctx,
		`SELECT id, conversation_id, seq, role, content, answer_source, created_at
		FROM turns WHERE conversation_id = ? ORDER BY seq`, conversationID)
	if err != nil {
		return nil, fmt.Errorf("listing turns: %w", err)
	}
	defer rows.Close()

	var turns []domain.Turn
	for rows.Next() {
		var t domain.Turn
		var role, createdAt string
		if err := rows.Scan(&t.ID, &t.ConversationID, &t.Seq, &role, &t.Content, &t.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn row: %w", err)
		}
		t.Role = domain.TurnRole(role)
		if t.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}
	return turns, nil
}

// Delete removes a conversation and its turns.
func (r *SQLiteConversationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.conn.ExecContext(ctx, `DELETE FROM conversations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("conversation %s: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*domain.Conversation, error) {
	var c domain.Conversation
	var startedAt, updatedAt string
	err := row.Scan(&c.ID, &c.Title, &startedAt, &updatedAt, &c.TurnCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("conversation: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning conversation: %w", err)
	}
	if c.StartedAt, err = parseTime("started_at", startedAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

var _ ConversationRepo = (*SQLiteConversationRepo)(nil)
