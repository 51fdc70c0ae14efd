package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/intent"
	"github.com/alexanderramin/bizpulse/internal/store"
	"github.com/alexanderramin/bizpulse/internal/table"
	"github.com/alexanderramin/bizpulse/internal/testutil"
)

var refDate = time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return refDate }

func newFixtureAssembler(t *testing.T) (*Assembler, *testutil.FakeFetcher) {
	t.Helper()
	f := testutil.NewFakeFetcher()
	s := store.New(f, testutil.BoardIDs(), store.Options{})
	return NewAssembler(s, DefaultSchema(), fixedNow), f
}

func analyze(t *testing.T, a *Assembler, question string) *Analysis {
	t.Helper()
	out, err := a.Analyze(context.Background(), intent.Classify(question, refDate))
	if err != nil {
		t.Fatalf("Analyze(%q): %v", question, err)
	}
	return out
}

// fakeTables serves fixed tables without a fetcher.
type fakeTables struct {
	tables map[domain.Source]*table.Table
	err    error
}

func (f fakeTables) Get(_ context.Context, src domain.Source, _ bool) (*table.Table, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.tables[src]
	if !ok {
		return nil, board.ErrIngestion
	}
	return t.Clone(), nil
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return string(data)
}
