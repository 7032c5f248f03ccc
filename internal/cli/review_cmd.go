package cli

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

func newReviewCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review due flashcards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return errors.New("review needs an interactive terminal; use `studyfocus review list` to see due cards")
			}
			ctx := cmd.Context()
			p := tea.NewProgram(newReviewView(ctx, app), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err := p.Run()
			return err
		},
	}

	cmd.AddCommand(
		newReviewListCmd(app),
		newReviewRateCmd(app),
	)
	return cmd
}

func newReviewListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cards due for review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			q := app.reviewQueue()
			if err := q.Load(ctx); err != nil {
				return err
			}
			names, _ := subjectNames(ctx, app)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDueCards(q.Cards(), names, app.now()))
			return nil
		},
	}
}

// newReviewRateCmd rates the head of a freshly loaded queue without a UI,
// for working through cards from scripts.
func newReviewRateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rate hard|good|easy",
		Short: "Rate the next due card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := domain.ParseRating(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			q := app.reviewQueue()
			if err := q.Load(ctx); err != nil {
				return err
			}
			head, ok := q.Head()
			if !ok {
				return domain.ErrEmptyQueue
			}
			if err := q.RateWith(ctx, r); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderNotice(formatter.NoticeSuccess,
				fmt.Sprintf("Rated %q as %s; %d left", formatter.Truncate(head.Front, 40), r, q.Len())))
			return nil
		},
	}
}
