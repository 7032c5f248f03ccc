package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/studyfocus/internal/cli/formatter"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/service"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

const completedNotice = "Session Completed! Take a break."

// subjectsLoadedMsg carries the subject directory fetched at startup.
type subjectsLoadedMsg struct {
	subjects []domain.Subject
	err      error
}

// sessionSavedMsg reports the outcome of one submit. token is the timer
// session the record was built from.
type sessionSavedMsg struct {
	rec   *domain.SessionRecord
	token uint64
	err   error
}

type focusOptions struct {
	Mode      domain.ModeID
	Subject   string
	Stopwatch bool
}

// focusView is the interactive timer screen.
type focusView struct {
	app      *App
	ctx      context.Context
	timer    *timer.Timer
	clock    *teaClock
	recorder *service.SessionRecorder
	policy   timer.StartPolicy

	subjects    []domain.Subject
	subjectIdx  int
	wantSubject string

	// completed is set by the timer's completion handler during Tick.
	completed *timer.Completion
	saving    bool

	notice   noticeLine
	progress progress.Model
	help     help.Model
	width    int
}

func newFocusView(ctx context.Context, app *App, opts focusOptions) *focusView {
	cfg := app.config()
	v := &focusView{
		app:         app,
		ctx:         ctx,
		clock:       newTeaClock(app.tickPeriod()),
		recorder:    app.recorder(),
		policy:      timer.StartPolicy{RequireSubject: cfg.Timer.RequireSubject},
		subjectIdx:  -1,
		wantSubject: strings.TrimSpace(opts.Subject),
		progress:    progress.New(progress.WithSolidFill(string(formatter.ColorHeader)), progress.WithoutPercentage()),
		help:        help.New(),
	}
	mode := opts.Mode
	if mode == "" {
		mode = domain.ModePomodoro
	}
	v.timer = timer.New(v.clock,
		timer.WithMode(mode),
		timer.WithNow(app.now),
		timer.WithDriftCorrection(cfg.Timer.DriftCorrection),
		timer.WithCompletionHandler(func(c timer.Completion) { v.completed = &c }),
	)
	if opts.Stopwatch {
		v.timer.SelectCountMode(domain.CountUp)
	}
	return v
}

func (v *focusView) ID() ViewID { return ViewFocus }

func (v *focusView) Title() string { return "Focus" }

func (v *focusView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "mode")),
		key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "stopwatch")),
		key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "subject")),
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *focusView) Init() tea.Cmd {
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

func (v *focusView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.help.Width = msg.Width
		return v, nil

	case subjectsLoadedMsg:
		if msg.err != nil {
			return v, v.notice.fail(msg.err)
		}
		v.subjects = msg.subjects
		return v, v.applySubjectHint()

	case tickMsg:
		if !v.timer.Tick(msg.tick) {
			return v, nil
		}
		if v.completed != nil {
			c := *v.completed
			v.completed = nil
			v.notice.pin(formatter.NoticeSuccess, completedNotice)
			return v, v.notify(c)
		}
		return v, v.clock.next()

	case sessionSavedMsg:
		v.saving = false
		if msg.err != nil {
			return v, v.notice.fail(msg.err)
		}
		v.timer.ResetSession(msg.token)
		return v, v.notice.flash(formatter.NoticeSuccess,
			fmt.Sprintf("Session saved (%s)", formatter.FormatMinutes(msg.rec.DurationMinutes)))

	case noticeExpiredMsg:
		v.notice.expire(msg)
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *focusView) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	prev := v.clock.gen

	switch k := msg.String(); k {
	case "q", "ctrl+c":
		v.timer.Pause()
		return v, tea.Quit

	case " ", "space":
		if err := v.timer.Toggle(v.startPolicy()); err != nil {
			return v, v.notice.fail(err)
		}
		return v, v.clock.rearmed(prev)

	case "r":
		v.timer.Reset()
		return v, nil

	case "1", "2", "3", "4":
		modes := domain.AllModes()
		i := int(k[0] - '1')
		if i < len(modes) {
			if err := v.timer.SelectMode(modes[i].ID); err != nil {
				return v, v.notice.fail(err)
			}
		}
		return v, nil

	case "w":
		next := domain.CountUp
		if v.timer.Snapshot().CountMode == domain.CountUp {
			next = domain.CountDown
		}
		v.timer.SelectCountMode(next)
		return v, nil

	case "s":
		if len(v.subjects) == 0 {
			return v, v.notice.flash(formatter.NoticeInfo, "No subjects yet. Add one with `studyfocus subject add`.")
		}
		v.subjectIdx = (v.subjectIdx + 1) % len(v.subjects)
		return v, nil

	case "enter":
		return v, v.save()
	}
	return v, nil
}

// save builds the record now and submits it off the update loop. The timer
// keeps running; the reset on success only applies to the session that was
// saved.
func (v *focusView) save() tea.Cmd {
	if v.saving {
		return nil
	}
	rec, err := v.recorder.Build(v.timer.Snapshot(), v.subjectID())
	if err != nil {
		return v.notice.fail(err)
	}
	v.saving = true
	token := v.timer.SessionToken()
	recorder := v.recorder
	ctx := v.ctx
	return func() tea.Msg {
		err := recorder.Submit(ctx, rec)
		return sessionSavedMsg{rec: rec, token: token, err: err}
	}
}

func (v *focusView) notify(c timer.Completion) tea.Cmd {
	n := v.app.notifier()
	ctx := v.ctx
	return func() tea.Msg {
		n.Notify(ctx, c)
		return nil
	}
}

func (v *focusView) applySubjectHint() tea.Cmd {
	if v.wantSubject == "" {
		return nil
	}
	for i, s := range v.subjects {
		if s.ID == v.wantSubject || strings.EqualFold(s.Name, v.wantSubject) {
			v.subjectIdx = i
			return nil
		}
	}
	return v.notice.flash(formatter.NoticeError, fmt.Sprintf("Unknown subject %q", v.wantSubject))
}

func (v *focusView) subjectID() string {
	if v.subjectIdx < 0 || v.subjectIdx >= len(v.subjects) {
		return ""
	}
	return v.subjects[v.subjectIdx].ID
}

func (v *focusView) subjectName() string {
	if v.subjectIdx < 0 || v.subjectIdx >= len(v.subjects) {
		return ""
	}
	return v.subjects[v.subjectIdx].Name
}

func (v *focusView) startPolicy() timer.StartPolicy {
	p := v.policy
	p.SubjectID = v.subjectID()
	return p
}

func (v *focusView) View() string {
	snap := v.timer.Snapshot()

	tabs := make([]string, 0, 4)
	for i, m := range domain.AllModes() {
		label := fmt.Sprintf("%d %s", i+1, m.Label)
		if m.ID == snap.Mode.ID {
			tabs = append(tabs, formatter.ModeColor(m.ID).Bold(true).Underline(true).Render(label))
		} else {
			tabs = append(tabs, formatter.Dim(label))
		}
	}

	counting := "Countdown"
	if snap.CountMode == domain.CountUp {
		counting = "Stopwatch"
	}

	subject := formatter.Dim("none (s to choose)")
	if name := v.subjectName(); name != "" {
		subject = formatter.StylePurple.Render(name)
	}

	lines := []string{
		strings.Join(tabs, "   "),
		"",
		formatter.ModeColor(snap.Mode.ID).Bold(true).Render(formatter.FormatClock(snap.DisplaySeconds())),
	}
	if snap.CountMode == domain.CountDown {
		lines = append(lines, v.progress.ViewAs(snap.Progress()))
	}
	lines = append(lines,
		"",
		formatter.RunStatePill(snap.RunState)+formatter.Dim("  ·  "+counting),
		"Subject: "+subject,
	)
	if v.saving {
		lines = append(lines, formatter.Dim("Saving session..."))
	}
	if n := v.notice.View(); n != "" {
		lines = append(lines, n)
	}
	lines = append(lines, "", helpBar(v.help, v))

	return lipgloss.NewStyle().Padding(1, 2).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
