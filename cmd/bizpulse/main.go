package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/board"
	"github.com/alexanderramin/bizpulse/internal/cli"
	"github.com/alexanderramin/bizpulse/internal/db"
	"github.com/alexanderramin/bizpulse/internal/intent"
	"github.com/alexanderramin/bizpulse/internal/llm"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/alexanderramin/bizpulse/internal/repository"
	"github.com/alexanderramin/bizpulse/internal/store"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("BIZPULSE_LOG_LEVEL")),
	}))

	ref, err := referenceDate(os.Getenv("BIZPULSE_REFERENCE_DATE"))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Transcript store: env var or default ~/.bizpulse/bizpulse.db
	dbPath := os.Getenv("BIZPULSE_DB")
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			return err
		}
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	boardCfg := board.LoadConfig()
	if missing := boardCfg.Missing(); len(missing) > 0 {
		logger.Warn("monday.com settings missing; questions will fail until they are set",
			"missing", strings.Join(missing, ","))
	}
	data := store.New(board.NewClient(boardCfg, logger), boardCfg.BoardIDs, store.Options{
		NormalizeDates: true,
		Logger:         logger,
	})
	assembler := report.NewAssembler(data, report.LoadSchema(), func() time.Time { return ref })

	// Language model is optional; without it answers are computed summaries.
	var client llm.LLMClient
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(logger)
		}
		client, err = llm.NewClient(ctx, llmCfg, observer)
		if err != nil {
			return fmt.Errorf("configuring language model: %w", err)
		}
	}

	svc := assistant.NewService(data, assembler, intent.NewClassifier(ref), client,
		assistant.NewLogUseCaseObserver(logger))

	app := &cli.App{
		Assistant: svc,
		Data:      data,
		Reports:   assembler,
		History:   repository.NewSQLiteConversationRepo(database),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// referenceDate pins "today" for quarter and year defaults. Unset means
// the wall clock at start-up.
func referenceDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("BIZPULSE_REFERENCE_DATE %q: want YYYY-MM-DD", s)
	}
	return t, nil
}
