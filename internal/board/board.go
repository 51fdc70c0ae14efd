// Package board fetches boards from the monday.com GraphQL API.
//
// A fetch is fully paginated and materialized before it returns; callers
// never see a partial board.
package board

import (
	"context"
	"errors"
)

// ErrIngestion marks any failure to retrieve a board: transport errors,
// non-200 responses and protocol-level error lists alike.
var ErrIngestion = errors.New("board ingestion failed")

// Column describes one board column.
type Column struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Type  string `json:"type"`
}

// ColumnValue is one cell of an item. Text is nil when the API returns null.
type ColumnValue struct {
	ID   string  `json:"id"`
	Text *string `json:"text"`
}

// Item is one board row.
type Item struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []ColumnValue `json:"column_values"`
}

// Board is a fully paginated board.
type Board struct {
	ID      string
	Name    string
	Columns []Column
	Items   []Item
}

// Fetcher retrieves a complete board by its identifier.
type Fetcher interface {
	FetchBoard(ctx context.Context, boardID string) (*Board, error)
}
