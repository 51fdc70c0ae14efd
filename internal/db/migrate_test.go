package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"conversations", "turns"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_AddsAnswerSourceColumn(t *testing.T) {
	db := openTestDB(t)

	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM pragma_table_info('turns') WHERE name = 'answer_source'`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenDB_ForeignKeysEnforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO turns (id, conversation_id, seq, role, content, created_at)
		VALUES ('t1', 'missing', 1, 'user', 'hi', '2026-02-14T00:00:00Z')`)
	assert.Error(t, err)
}

func TestOpenDB_RejectsUnknownRole(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO conversations (id, started_at, updated_at) VALUES ('c1', 'x', 'x')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO turns (id, conversation_id, seq, role, content, created_at)
		VALUES ('t1', 'c1', 1, 'system', 'hi', 'x')`)
	assert.Error(t, err)
}

func TestOpenDB_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history.db")

	db, err := OpenDB(path)
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	assert.Equal(t, "wal", mode)
}
