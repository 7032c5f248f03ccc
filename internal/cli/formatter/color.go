package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen      = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow     = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed        = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue       = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple     = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim        = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg         = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader     = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold       = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleYellowBold = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
)

// ModeColor gives focus modes a warm color and breaks a cool one.
func ModeColor(id domain.ModeID) lipgloss.Style {
	switch id {
	case domain.ModePomodoro:
		return StyleRed
	case domain.ModeDeepWork:
		return StylePurple
	case domain.ModeShortBreak, domain.ModeLongBreak:
		return StyleGreen
	default:
		return StyleFg
	}
}

// RunStatePill returns a colored indicator such as "● Running".
func RunStatePill(s domain.RunState) string {
	switch s {
	case domain.RunRunning:
		return StyleGreen.Render("● Running")
	case domain.RunPaused:
		return StyleYellow.Render("○ Paused")
	case domain.RunCompleted:
		return StyleBlue.Render("✔ Completed")
	case domain.RunIdle:
		return StyleDim.Render("◌ Ready")
	default:
		return StyleDim.Render(string(s))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
