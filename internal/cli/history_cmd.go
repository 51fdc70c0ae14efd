package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/bizpulse/internal/cli/formatter"
	"github.com/alexanderramin/bizpulse/internal/domain"
	"github.com/alexanderramin/bizpulse/internal/repository"
	"github.com/spf13/cobra"
)

var errNoHistory = errors.New("transcript history is not available")

func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show or delete saved chat conversations",
	}
	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryShowCmd(app),
		newHistoryDeleteCmd(app),
	)
	return cmd
}

func newHistoryListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conversations, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errNoHistory
			}
			convs, err := app.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConversationList(convs, app.now()))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum conversations to list (0 for all)")
	return cmd
}

func newHistoryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Print a conversation transcript (ID prefixes work)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errNoHistory
			}
			ctx := cmd.Context()
			c, err := resolveConversation(ctx, app.History, args[0])
			if err != nil {
				return err
			}
			turns, err := app.History.ListTurns(ctx, c.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTranscript(c, turns))
			return nil
		},
	}
}

func newHistoryDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a conversation and its turns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.History == nil {
				return errNoHistory
			}
			ctx := cmd.Context()
			c, err := resolveConversation(ctx, app.History, args[0])
			if err != nil {
				return err
			}
			if err := app.History.Delete(ctx, c.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted conversation %s\n", c.DisplayID())
			return nil
		},
	}
}

// resolveConversation accepts a full ID or an unambiguous prefix.
func resolveConversation(ctx context.Context, repo repository.ConversationRepo, ref string) (*domain.Conversation, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, fmt.Errorf("conversation id is empty")
	}
	c, err := repo.GetByID(ctx, ref)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	all, err := repo.List(ctx, 0)
	if err != nil {
		return nil, err
	}
	var matches []*domain.Conversation
	for _, c := range all {
		if strings.HasPrefix(c.ID, ref) {
			matches = append(matches, c)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("conversation %q: %w", ref, repository.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("conversation prefix %q matches %d conversations", ref, len(matches))
	}
}
