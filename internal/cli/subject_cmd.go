package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

func newSubjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subject",
		Short: "Manage study subjects",
	}

	cmd.AddCommand(
		newSubjectListCmd(app),
		newSubjectAddCmd(app),
	)

	return cmd
}

func newSubjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List subjects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			subjects, err := app.Backend.Subjects.ListSubjects(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing subjects: %w", err)
			}
			if len(subjects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No subjects yet. Add one with `studyfocus subject add`."))
				return nil
			}
			now := app.now()
			rows := make([][]string, 0, len(subjects))
			for _, s := range subjects {
				added := formatter.Dim("--")
				if !s.CreatedAt.IsZero() {
					added = formatter.HumanDateFrom(s.CreatedAt, now)
				}
				rows = append(rows, []string{formatter.TruncID(s.ID), s.Name, added})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"ID", "NAME", "ADDED"}, rows))
			return nil
		},
	}
}

func newSubjectAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subject",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.SubjectWriter == nil {
				return errors.New("this backend does not support adding subjects")
			}
			if strings.TrimSpace(name) == "" {
				if !app.interactive() {
					return errors.New("--name is required")
				}
				if err := wizardSubjectName(&name).Run(); err != nil {
					return err
				}
			}

			s := &domain.Subject{
				ID:        uuid.New().String(),
				Name:      strings.TrimSpace(name),
				CreatedAt: app.now().UTC(),
			}
			if err := app.SubjectWriter.CreateSubject(cmd.Context(), s); err != nil {
				return fmt.Errorf("adding subject: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.RenderNotice(formatter.NoticeSuccess,
				fmt.Sprintf("Added subject %s (%s)", s.Name, formatter.TruncID(s.ID))))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "subject name")
	return cmd
}
