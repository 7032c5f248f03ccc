package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/service"
)

const defaultHistoryDays = 30

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect saved focus sessions",
	}

	cmd.AddCommand(
		newSessionListCmd(app),
		newSessionStatsCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func validateDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}
	return nil
}

func newSessionListCmd(app *App) *cobra.Command {
	var days int
	var subjectRef string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDays(days); err != nil {
				return err
			}
			ctx := cmd.Context()

			var subject domain.Subject
			if subjectRef != "" {
				s, err := resolveSubject(ctx, app, subjectRef)
				if err != nil {
					return err
				}
				subject = s
			}

			records, err := app.Backend.History.ListRecent(ctx, days)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			if subject.ID != "" {
				filtered := records[:0]
				for _, r := range records {
					if r.SubjectID == subject.ID {
						filtered = append(filtered, r)
					}
				}
				records = filtered
			}

			names, _ := subjectNames(ctx, app)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionList(records, names, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultHistoryDays, "how many days back to list")
	cmd.Flags().StringVar(&subjectRef, "subject", "", "only sessions for this subject (id or name)")
	return cmd
}

func newSessionStatsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show time and focus totals per subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateDays(days); err != nil {
				return err
			}
			ctx := cmd.Context()

			records, err := app.Backend.History.ListRecent(ctx, days)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}
			_, subjects := subjectNames(ctx, app)
			stats := service.SummarizeSessions(records, subjects)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSubjectStats(stats, days, app.now()))
			if len(stats) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim(fmt.Sprintf("Total: %s", formatter.FormatMinutes(service.TotalMinutes(records)))))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", defaultHistoryDays, "how many days back to summarize")
	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a saved session (local backend)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SessionRemover == nil {
				return errors.New("session remove is only available with the local backend")
			}
			if err := app.SessionRemover.Delete(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("removing session: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderNotice(formatter.NoticeSuccess, "Session removed"))
			return nil
		},
	}
}
