package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

// studyHuhTheme returns a huh theme using the formatter's Gruvbox palette.
func studyHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// wizardSubjectName asks for the name of a new subject.
func wizardSubjectName(result *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Subject name").
				Placeholder("Linear Algebra").
				CharLimit(100).
				Value(result).
				Validate(requiredText("name")),
		),
	).WithTheme(studyHuhTheme()).WithShowHelp(false)
}

// cardDraft is the value set the card form fills in.
type cardDraft struct {
	SubjectID string
	Front     string
	Back      string
}

// wizardCard asks for the front and back of a new card, and for its subject
// when subjects exist.
func wizardCard(subjects []domain.Subject, draft *cardDraft) *huh.Form {
	fields := make([]huh.Field, 0, 3)
	if len(subjects) > 0 {
		options := make([]huh.Option[string], 0, len(subjects)+1)
		options = append(options, huh.NewOption("(none)", ""))
		for _, s := range subjects {
			options = append(options, huh.NewOption(s.Name, s.ID))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Subject").
			Options(options...).
			Value(&draft.SubjectID))
	}
	fields = append(fields,
		huh.NewText().
			Title("Front").
			Placeholder("What is an eigenvector?").
			Value(&draft.Front).
			Validate(requiredText("front")),
		huh.NewText().
			Title("Back").
			Value(&draft.Back).
			Validate(requiredText("back")),
	)
	return huh.NewForm(huh.NewGroup(fields...)).WithTheme(studyHuhTheme()).WithShowHelp(false)
}
