package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/bizpulse/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a private transcript store for one test, schema
// included.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err, "opening transcript store")
	t.Cleanup(func() { _ = database.Close() })
	return database
}
