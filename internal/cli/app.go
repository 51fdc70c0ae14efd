package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/alexanderramin/bizpulse/internal/repository"
	"github.com/alexanderramin/bizpulse/internal/store"
	"github.com/alexanderramin/bizpulse/internal/table"
)

// Assistant answers questions.
type Assistant interface {
	Answer(ctx context.Context, question string, history []domain.Turn) (*assistant.Answer, error)
	Report(ctx context.Context) (*assistant.Answer, error)
	Refresh()
	UsesLLM() bool
}

// Data is the board cache as the commands read it.
type Data interface {
	Get(ctx context.Context, src domain.Source, force bool) (*table.Table, error)
	Summary(ctx context.Context) (store.Summary, error)
	Columns(ctx context.Context) (map[domain.Source][]string, error)
}

// Reports computes the unfiltered board reports.
type Reports interface {
	Pipeline(ctx context.Context) (*report.PipelineOverview, error)
	Breakdown(ctx context.Context, src domain.Source, role analysis.Role) (*report.BreakdownResult, error)
}

// App holds everything the commands use.
type App struct {
	Assistant Assistant
	Data      Data
	Reports   Reports

	// History persists chat transcripts; nil disables saving and resuming.
	History repository.ConversationRepo

	// IsInteractive reports whether stdin is a terminal. nil means it is not.
	IsInteractive func() bool

	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
