package cli

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewFocus ViewID = iota
	ViewReview
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string
}

// noticeTTL is how long a transient notice stays on screen.
const noticeTTL = 3 * time.Second

// noticeExpiredMsg clears the notice it was scheduled for. Newer notices
// carry a higher seq and survive it.
type noticeExpiredMsg struct{ seq int }

// noticeLine is the single inline message slot shared by both views.
type noticeLine struct {
	kind   formatter.NoticeKind
	text   string
	seq    int
	sticky bool
}

// flash shows text and schedules its removal.
func (n *noticeLine) flash(kind formatter.NoticeKind, text string) tea.Cmd {
	n.kind = kind
	n.text = text
	n.sticky = false
	n.seq++
	seq := n.seq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// pin shows text until the next notice replaces it.
func (n *noticeLine) pin(kind formatter.NoticeKind, text string) {
	n.kind = kind
	n.text = text
	n.sticky = true
	n.seq++
}

func (n *noticeLine) expire(msg noticeExpiredMsg) {
	if msg.seq == n.seq && !n.sticky {
		n.text = ""
	}
}

func (n *noticeLine) fail(err error) tea.Cmd {
	return n.flash(formatter.NoticeError, formatter.Notice(err))
}

func (n noticeLine) View() string {
	return formatter.RenderNotice(n.kind, n.text)
}

func helpBar(h help.Model, v View) string {
	return h.ShortHelpView(v.ShortHelp())
}
