// Package store caches one table per data source, fetched lazily from the
// board API.
package store

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Options tune how fetched boards become tables.
type Options struct {
	// NormalizeDates rewrites parseable cells of date-like columns as
	// YYYY-MM-DD when a board is loaded.
	NormalizeDates bool

	Logger *slog.Logger
	Now    func() time.Time
}

type entry struct {
	table     *table.Table
	fetchedAt time.Time
}

// Store memoizes one table per source. Get and Invalidate are safe for
// concurrent use; two concurrent misses may both fetch, and the later
// result wins.
type Store struct {
	fetcher  board.Fetcher
	boardIDs map[domain.Source]string
	opts     Options

	mu    sync.Mutex
	cache map[domain.Source]entry
}

func New(fetcher board.Fetcher, boardIDs map[domain.Source]string, opts Options) *Store {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	ids := make(map[domain.Source]string, len(boardIDs))
	for k, v := range boardIDs {
		ids[k] = v
	}
	return &Store{
		fetcher:  fetcher,
		boardIDs: ids,
		opts:     opts,
		cache:    map[domain.Source]entry{},
	}
}

// Get returns an independent copy of src's table, fetching it on a miss or
// when force is set. A failed fetch leaves the cache as it was.
func (s *Store) Get(ctx context.Context, src domain.Source, force bool) (*table.Table, error) {
	if !force {
		s.mu.Lock()
		e, ok := s.cache[src]
		s.mu.Unlock()
		if ok {
			return e.table.Clone(), nil
		}
	}

	t, err := s.load(ctx, src)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cache[src] = entry{table: t, fetchedAt: s.opts.Now()}
	s.mu.Unlock()
	return t.Clone(), nil
}

func (s *Store) load(ctx context.Context, src domain.Source) (*table.Table, error) {
	if !src.Valid() {
		return nil, fmt.Errorf("unknown source %q", src)
	}
	id, ok := s.boardIDs[src]
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: no board configured for %s", board.ErrIngestion, src.Label())
	}

	start := time.Now()
	b, err := s.fetcher.FetchBoard(ctx, id)
	if err != nil {
		s.opts.Logger.Debug("store_fetch", "source", string(src), "board_id", id, "success", false, "error", err.Error())
		return nil, fmt.Errorf("load %s: %w", src.Label(), err)
	}

	t := table.FromBoard(b)
	if s.opts.NormalizeDates {
		t = table.NormalizeDates(t, analysis.ResolveAll(t, analysis.RoleDateLike))
	}
	s.opts.Logger.Debug("store_fetch",
		"source", string(src),
		"board_id", id,
		"rows", t.Len(),
		"columns", len(t.Columns()),
		"duration_ms", time.Since(start).Milliseconds(),
		"success", true,
	)
	return t, nil
}

// Invalidate drops every cached source.
func (s *Store) Invalidate() {
	s.mu.Lock()
	n := len(s.cache)
	s.cache = map[domain.Source]entry{}
	s.mu.Unlock()
	s.opts.Logger.Debug("store_invalidate", "dropped", n)
}

// FetchedAt reports when src was last loaded; ok is false when it is not
// cached.
func (s *Store) FetchedAt(src domain.Source) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.cache[src]
	return e.fetchedAt, ok
}
