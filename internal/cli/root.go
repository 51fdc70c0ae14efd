// Package cli is the bizpulse command tree and interactive chat.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "bizpulse" command. Run without a
// subcommand on a terminal it opens the chat.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "bizpulse",
		Short: "Business intelligence answers over the monday.com Work Orders and Deals boards",
		Long: `bizpulse answers founder-level questions about the Work Orders and Deals
boards: revenue, billing, pipeline, sectors and quarters. Run it without a
command on a terminal to start a chat.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runChat(cmd, app, chatOptions{})
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newAskCmd(app),
		newReportCmd(app),
		newSummaryCmd(app),
		newColumnsCmd(app),
		newPipelineCmd(app),
		newBreakdownCmd(app),
		newChatCmd(app),
		newHistoryCmd(app),
	)
	return root
}
