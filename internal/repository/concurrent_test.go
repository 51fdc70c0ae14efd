package repository

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/alexanderramin/bizpulse/internal/db"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A file-backed database shares state across pooled connections, unlike
// :memory:, so readers and the writer really run side by side under WAL.
func TestConcurrentAccess_ReadDuringAppend(t *testing.T) {
	database, err := db.OpenDB(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	repo := NewSQLiteConversationRepo(database)
	ctx := context.Background()
	c := &domain.Conversation{}
	require.NoError(t, repo.Create(ctx, c))

	const appends = 20
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < appends; i++ {
			turn := &domain.Turn{ConversationID: c.ID, Role: domain.RoleUser, Content: fmt.Sprintf("q%d", i)}
			if err := repo.AppendTurn(ctx, turn); err != nil {
				t.Errorf("append %d: %v", i, err)
				return
			}
		}
	}()

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func(reader int) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				turns, err := repo.ListTurns(ctx, c.ID)
				if err != nil {
					t.Errorf("reader %d: %v", reader, err)
					return
				}
				for j, turn := range turns {
					if turn.Seq != j+1 {
						t.Errorf("reader %d: gap in seq at %d", reader, j)
						return
					}
				}
			}
		}(r)
	}
	wg.Wait()

	turns, err := repo.ListTurns(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, turns, appends)
}
