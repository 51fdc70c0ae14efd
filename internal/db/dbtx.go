package db

import (
	"context"
	"database/sql"
)

// DBTX is the query surface repositories write against. Passing the
// connection runs a statement on its own; passing a tx from WithinTx
// enlists it in that transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
