package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/spf13/cobra"
)

// answerError shows the user-facing failure text while keeping the cause
// reachable with errors.Is.
type answerError struct {
	err error
}

func (e answerError) Error() string { return assistant.FailureMessage(e.err) }
func (e answerError) Unwrap() error { return e.err }

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// withSpinner runs fn behind a spinner on stderr when attached to a
// terminal.
func withSpinner(cmd *cobra.Command, app *App, message string, fn func() error) error {
	if !app.interactive() {
		return fn()
	}
	stop := formatter.StartSpinner(cmd.ErrOrStderr(), message)
	defer stop()
	return fn()
}
