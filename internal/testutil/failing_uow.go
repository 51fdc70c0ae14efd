package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/db"
)

// FailingExecUoW wraps a UnitOfWork and makes a statement inside the
// transaction that starts with Prefix fail with Err. The first Skip matches
// run normally. Matching is case insensitive and ignores leading
// whitespace. Reads are never failed.
type FailingExecUoW struct {
	Inner  db.UnitOfWork
	Prefix string
	Skip   int
	Err    error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return u.Inner.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &failingExec{DBTX: tx, prefix: strings.ToUpper(u.Prefix), skip: u.Skip, err: u.Err})
	})
}

type failingExec struct {
	db.DBTX
	prefix string
	skip   int
	err    error
	fired  bool
}

func (f *failingExec) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if !f.fired && strings.HasPrefix(strings.ToUpper(strings.TrimSpace(query)), f.prefix) {
		if f.skip > 0 {
			f.skip--
		} else {
			f.fired = true
			return nil, f.err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
