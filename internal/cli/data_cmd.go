package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/analysis"
	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/report"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show record counts and data quality for both boards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sum, err := app.Data.Summary(cmd.Context())
			if err != nil {
				return answerError{err: err}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), sum)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSummary(sum))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

func newColumnsCmd(app *App) *cobra.Command {
	var source sourceFlag

	cmd := &cobra.Command{
		Use:   "columns",
		Short: "List board columns and the columns each role resolves to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			columns := map[domain.Source][]string{}
			roles := map[domain.Source]map[string]string{}
			for _, src := range source.Sources() {
				t, err := app.Data.Get(ctx, src, false)
				if err != nil {
					return answerError{err: err}
				}
				columns[src] = t.Columns()
				roles[src] = analysis.ResolveRoles(t)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatColumns(source.Sources(), columns, roles))
			return nil
		},
	}
	addSourceFlag(cmd.Flags(), &source)
	return cmd
}

func newPipelineCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Show deal sectors and the count of deals per stage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Reports.Pipeline(cmd.Context())
			if err != nil {
				return answerError{err: err}
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), p)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPipeline(p))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the overview as JSON")
	return cmd
}

func newBreakdownCmd(app *App) *cobra.Command {
	var source sourceFlag
	roleNames := make([]string, len(analysis.BoardRoles))
	for i, r := range analysis.BoardRoles {
		roleNames[i] = r.Name
	}

	cmd := &cobra.Command{
		Use:       "breakdown <role>",
		Short:     "Count records per value of a column role (" + strings.Join(roleNames, ", ") + ")",
		Example:   "  bizpulse breakdown sector --source deals",
		Args:      cobra.ExactArgs(1),
		ValidArgs: roleNames,
		RunE: func(cmd *cobra.Command, args []string) error {
			role, ok := analysis.RoleByName(args[0])
			if !ok {
				return fmt.Errorf("unknown role %q (want one of %s)", args[0], strings.Join(roleNames, ", "))
			}

			var results []*report.BreakdownResult
			for _, src := range source.Sources() {
				r, err := app.Reports.Breakdown(cmd.Context(), src, role)
				if errors.Is(err, analysis.ErrNoColumn) {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim(fmt.Sprintf("%s has no %s column", src.Label(), role.Name)))
					continue
				}
				if err != nil {
					return answerError{err: err}
				}
				results = append(results, r)
			}
			if len(results) == 0 {
				return fmt.Errorf("no board has a %s column", role.Name)
			}
			for i, r := range results {
				if i > 0 {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatBreakdown(r))
			}
			return nil
		},
	}
	addSourceFlag(cmd.Flags(), &source)
	return cmd
}
