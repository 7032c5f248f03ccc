package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

func newCardCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage flashcards",
	}

	cmd.AddCommand(newCardAddCmd(app))
	return cmd
}

func newCardAddCmd(app *App) *cobra.Command {
	var subjectRef string
	var draft cardDraft

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a flashcard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Backend.Cards == nil {
				return errors.New("this backend does not support adding cards")
			}
			ctx := cmd.Context()

			if subjectRef != "" {
				s, err := resolveSubject(ctx, app, subjectRef)
				if err != nil {
					return err
				}
				draft.SubjectID = s.ID
			}

			if strings.TrimSpace(draft.Front) == "" || strings.TrimSpace(draft.Back) == "" {
				if !app.interactive() {
					return errors.New("--front and --back are required")
				}
				var subjects []domain.Subject
				if subjectRef == "" {
					_, subjects = subjectNames(ctx, app)
				}
				if err := wizardCard(subjects, &draft).Run(); err != nil {
					return err
				}
			}

			card := &domain.Flashcard{
				Front:     strings.TrimSpace(draft.Front),
				Back:      strings.TrimSpace(draft.Back),
				SubjectID: draft.SubjectID,
			}
			if err := app.Backend.Cards.CreateFlashcard(ctx, card); err != nil {
				return fmt.Errorf("adding card: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderNotice(formatter.NoticeSuccess,
				fmt.Sprintf("Added card %s", formatter.TruncID(card.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectRef, "subject", "", "subject id or name")
	cmd.Flags().StringVar(&draft.Front, "front", "", "question side")
	cmd.Flags().StringVar(&draft.Back, "back", "", "answer side")
	return cmd
}
