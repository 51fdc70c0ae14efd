package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/assistant"
	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newAskCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Answer one business question",
		Example: `  bizpulse ask "How's our pipeline looking for energy this quarter?"
  bizpulse ask --json What is our billing status`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("question is empty")
			}

			var ans *assistant.Answer
			err := withSpinner(cmd, app, "Analyzing data...", func() error {
				var err error
				ans, err = app.Assistant.Answer(cmd.Context(), question, nil)
				return err
			})
			if err != nil {
				return answerError{err: err}
			}
			return printAnswer(cmd, ans, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the structured data the answer is grounded on")
	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Prepare the leadership update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var ans *assistant.Answer
			err := withSpinner(cmd, app, "Preparing leadership update...", func() error {
				var err error
				ans, err = app.Assistant.Report(cmd.Context())
				return err
			})
			if err != nil {
				return answerError{err: err}
			}
			return printAnswer(cmd, ans, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the leadership data instead of the narrative")
	return cmd
}

func printAnswer(cmd *cobra.Command, ans *assistant.Answer, asJSON bool) error {
	out := cmd.OutOrStdout()
	if !asJSON {
		_, err := fmt.Fprint(out, formatter.FormatAnswer(ans))
		return err
	}
	if ans.Leadership != nil {
		return writeJSON(out, ans.Leadership)
	}
	return writeJSON(out, ans.Analysis)
}
