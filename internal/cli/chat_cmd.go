package cli

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

type chatOptions struct {
	resume bool
	id     string
	pick   bool

	// initial is asked as soon as the chat opens.
	initial string
}

func newChatCmd(app *App) *cobra.Command {
	var opts chatOptions

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat",
		Long: `Start an interactive chat. Conversations are saved and the last six turns
accompany each question. Inside the chat: /examples, /report, /refresh,
/clear, /help and /quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, app, opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.resume, "resume", "r", false, "continue the most recent conversation")
	cmd.Flags().StringVar(&opts.id, "id", "", "continue the conversation with this ID or ID prefix")
	cmd.Flags().BoolVar(&opts.pick, "pick", false, "choose an example question to start with")
	return cmd
}

func runChat(cmd *cobra.Command, app *App, opts chatOptions) error {
	ctx := cmd.Context()

	if opts.pick {
		var question string
		err := newExamplePicker(&question).RunWithContext(ctx)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		opts.initial = question
	}

	m, err := newChatModel(ctx, app, opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithAltScreen(),
	)
	_, err = p.Run()
	return err
}
