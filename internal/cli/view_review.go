package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/service"
)

// dueLoadedMsg carries one fetch of the due list back to the owner.
type dueLoadedMsg struct {
	ticket service.LoadTicket
	cards  []domain.Flashcard
	err    error
}

// reviewDoneMsg carries one review submission result back to the owner.
type reviewDoneMsg struct {
	ticket service.ReviewTicket
	err    error
}

var ratingKeys = map[string]domain.Rating{
	"1": domain.RatingHard,
	"2": domain.RatingGood,
	"3": domain.RatingEasy,
}

// reviewView is the flashcard review screen. All queue mutations happen in
// Update; fetches and submissions run as Cmds.
type reviewView struct {
	app      *App
	ctx      context.Context
	queue    *service.ReviewQueue
	subjects map[string]string
	loading  bool

	notice noticeLine
	help   help.Model
}

func newReviewView(ctx context.Context, app *App) *reviewView {
	return &reviewView{
		app:      app,
		ctx:      ctx,
		queue:    app.reviewQueue(),
		subjects: map[string]string{},
		help:     help.New(),
	}
}

func (v *reviewView) ID() ViewID { return ViewReview }

func (v *reviewView) Title() string { return "Review" }

func (v *reviewView) ShortHelp() []key.Binding {
	if v.queue.Len() == 0 {
		return []key.Binding{
			key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "check again")),
			key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		}
	}
	return []key.Binding{
		key.NewBinding(key.WithKeys(" ", "f"), key.WithHelp("space", "flip")),
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "hard")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "good")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "easy")),
		key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "reload")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *reviewView) Init() tea.Cmd {
	return tea.Batch(v.loadSubjects(), v.load())
}

func (v *reviewView) load() tea.Cmd {
	v.loading = true
	t := v.queue.BeginLoad()
	q := v.queue
	ctx := v.ctx
	return func() tea.Msg {
		cards, err := q.Fetch(ctx)
		return dueLoadedMsg{ticket: t, cards: cards, err: err}
	}
}

func (v *reviewView) loadSubjects() tea.Cmd {
	dir := v.app.Backend.Subjects
	if dir == nil {
		return nil
	}
	ctx := v.ctx
	return func() tea.Msg {
		subjects, err := dir.ListSubjects(ctx)
		return subjectsLoadedMsg{subjects: subjects, err: err}
	}
}

func (v *reviewView) rate(r domain.Rating) tea.Cmd {
	t, err := v.queue.BeginRate(r.Quality())
	switch {
	case errors.Is(err, service.ErrReviewInFlight):
		return nil
	case err != nil:
		return v.notice.fail(err)
	}
	q := v.queue
	ctx := v.ctx
	return func() tea.Msg {
		return reviewDoneMsg{ticket: t, err: q.Submit(ctx, t)}
	}
}

func (v *reviewView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.help.Width = msg.Width
		return v, nil

	case subjectsLoadedMsg:
		// Names are decoration; a failed lookup leaves cards unlabeled.
		for _, s := range msg.subjects {
			v.subjects[s.ID] = s.Name
		}
		return v, nil

	case dueLoadedMsg:
		err := v.queue.CompleteLoad(msg.ticket, msg.cards, msg.err)
		if errors.Is(err, service.ErrStaleResult) {
			return v, nil
		}
		v.loading = false
		if err != nil {
			return v, v.notice.fail(err)
		}
		return v, nil

	case reviewDoneMsg:
		err := v.queue.CompleteRate(msg.ticket, msg.err)
		if errors.Is(err, service.ErrStaleResult) {
			return v, nil
		}
		if err != nil {
			return v, v.notice.fail(err)
		}
		return v, nil

	case noticeExpiredMsg:
		v.notice.expire(msg)
		return v, nil

	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "q", "ctrl+c", "esc":
			return v, tea.Quit
		case " ", "space", "f":
			v.queue.Flip()
			return v, nil
		case "l":
			return v, v.load()
		case "1", "2", "3":
			return v, v.rate(ratingKeys[k])
		}
	}
	return v, nil
}

func (v *reviewView) View() string {
	var lines []string

	switch {
	case v.loading && !v.queue.Loaded():
		lines = append(lines, formatter.Dim("Loading due cards..."))

	case v.queue.Slot() == domain.SlotEmpty:
		lines = append(lines,
			formatter.Header("All caught up"),
			"",
			"No cards due. Check again later.",
		)

	default:
		head, _ := v.queue.Head()
		flipped := v.queue.Slot() == domain.SlotShowingBack
		lines = append(lines,
			formatter.ReviewHeader(v.queue.Len()),
			"",
			formatter.FormatCardFace(head, flipped, v.subjects[head.SubjectID]),
		)
		if flipped {
			lines = append(lines, strings.Join([]string{
				formatter.StyleRed.Render("1 Hard"),
				formatter.StyleYellow.Render("2 Good"),
				formatter.StyleGreen.Render("3 Easy"),
			}, "   "))
		} else {
			lines = append(lines, formatter.Dim("space to show the answer"))
		}
		if v.queue.InFlight() {
			lines = append(lines, formatter.Dim("Saving review..."))
		}
	}

	if n := v.notice.View(); n != "" {
		lines = append(lines, "", n)
	}
	lines = append(lines, "", helpBar(v.help, v))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
