// Package timer implements the focus timer state machine.
//
// A Timer is owned by one goroutine: the TUI update loop or the headless run
// loop. Ticks, user actions and save resets must be serialized by that owner.
package timer

import (
	"time"

	"github.com/alexanderramin/studyfocus/internal/clock"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

// Clock is the tick source a Timer arms while running. Every tick the source
// produces must carry the generation it was armed with.
type Clock interface {
	Arm(gen uint64)
	Disarm()
}

// StartPolicy carries the caller's subject rule into Start.
type StartPolicy struct {
	RequireSubject bool
	SubjectID      string
}

// Completion is raised once when a countdown reaches zero.
type Completion struct {
	Mode           domain.ModeDescriptor
	ElapsedSeconds int
	At             time.Time
}

// Snapshot is a read-only copy of the timer state.
type Snapshot struct {
	Mode             domain.ModeDescriptor
	CountMode        domain.CountMode
	RunState         domain.RunState
	RemainingSeconds int
	ElapsedSeconds   int
	Session          uint64
}

// Progress is the completed fraction of a countdown, 0 for count-up.
func (s Snapshot) Progress() float64 {
	if s.CountMode != domain.CountDown || s.Mode.DurationSeconds <= 0 {
		return 0
	}
	return float64(s.Mode.DurationSeconds-s.RemainingSeconds) / float64(s.Mode.DurationSeconds)
}

// DisplaySeconds is what the clock face shows: remaining time when counting
// down, elapsed time when counting up.
func (s Snapshot) DisplaySeconds() int {
	if s.CountMode == domain.CountUp {
		return s.ElapsedSeconds
	}
	return s.RemainingSeconds
}

type Option func(*Timer)

// WithMode selects the initial mode. Unknown ids fall back to pomodoro.
func WithMode(id domain.ModeID) Option {
	return func(t *Timer) {
		if d, err := domain.LookupMode(id); err == nil {
			t.mode = d
		}
	}
}

func WithNow(now func() time.Time) Option {
	return func(t *Timer) { t.now = now }
}

// WithDriftCorrection recomputes elapsed time from the wall clock on each
// tick so a stalled consumer does not fall behind.
func WithDriftCorrection(enabled bool) Option {
	return func(t *Timer) { t.drift = enabled }
}

func WithCompletionHandler(fn func(Completion)) Option {
	return func(t *Timer) { t.onComplete = fn }
}

type Timer struct {
	clock      Clock
	now        func() time.Time
	drift      bool
	onComplete func(Completion)

	mode      domain.ModeDescriptor
	countMode domain.CountMode
	state     domain.RunState
	remaining int
	elapsed   int

	gen          uint64
	armed        bool
	armedAt      time.Time
	elapsedAtArm int

	session uint64
}

// New returns an IDLE timer in pomodoro mode unless an option says otherwise.
func New(c Clock, opts ...Option) *Timer {
	t := &Timer{
		clock: c,
		now:   time.Now,
		mode:  domain.MustMode(domain.ModePomodoro),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.countMode = t.mode.CountMode
	t.state = domain.RunIdle
	t.remaining = t.mode.DurationSeconds
	return t
}

// SelectMode switches to id from any state. Reselecting the current mode
// while IDLE and untouched is a no-op.
func (t *Timer) SelectMode(id domain.ModeID) error {
	d, err := domain.LookupMode(id)
	if err != nil {
		return err
	}
	if d.ID == t.mode.ID && t.pristine() && t.countMode == d.CountMode {
		return nil
	}
	t.disarm()
	t.mode = d
	t.countMode = d.CountMode
	t.zero()
	return nil
}

// SelectCountMode toggles between countdown and stopwatch. Like a mode
// switch it discards the current session.
func (t *Timer) SelectCountMode(cm domain.CountMode) {
	if cm != domain.CountDown && cm != domain.CountUp {
		return
	}
	if cm == t.countMode && t.pristine() {
		return
	}
	t.disarm()
	t.countMode = cm
	t.zero()
}

// Start arms the clock. Starting a paused timer resumes it and starting a
// running timer does nothing.
func (t *Timer) Start(p StartPolicy) error {
	switch t.state {
	case domain.RunRunning:
		return nil
	case domain.RunPaused:
		t.Resume()
		return nil
	case domain.RunCompleted:
		return &domain.PreconditionError{Op: "start", Reason: "session completed; reset or save it first"}
	}
	if t.countMode == domain.CountDown && p.RequireSubject && p.SubjectID == "" {
		return &domain.PreconditionError{Op: "start", Reason: "Please select a subject first!"}
	}
	t.arm()
	t.state = domain.RunRunning
	return nil
}

func (t *Timer) Pause() {
	if t.state != domain.RunRunning {
		return
	}
	t.disarm()
	t.state = domain.RunPaused
}

func (t *Timer) Resume() {
	if t.state != domain.RunPaused {
		return
	}
	t.arm()
	t.state = domain.RunRunning
}

// Toggle is the single start/pause key: IDLE or PAUSED starts, RUNNING pauses.
func (t *Timer) Toggle(p StartPolicy) error {
	if t.state == domain.RunRunning {
		t.Pause()
		return nil
	}
	return t.Start(p)
}

// Tick applies one clock pulse. It reports false when the tick was ignored:
// the timer is not running or the tick belongs to an earlier arming.
func (t *Timer) Tick(tk clock.Tick) bool {
	if t.state != domain.RunRunning || !t.armed || tk.Gen != t.gen {
		return false
	}

	t.elapsed++
	if t.drift && !tk.At.IsZero() {
		if wall := t.elapsedAtArm + int(tk.At.Sub(t.armedAt)/time.Second); wall > t.elapsed {
			t.elapsed = wall
		}
	}

	if t.countMode == domain.CountDown {
		if t.elapsed > t.mode.DurationSeconds {
			t.elapsed = t.mode.DurationSeconds
		}
		t.remaining = t.mode.DurationSeconds - t.elapsed
		if t.remaining <= 0 {
			t.remaining = 0
			t.complete(tk.At)
		}
	}
	return true
}

func (t *Timer) complete(at time.Time) {
	t.disarm()
	t.state = domain.RunCompleted
	if at.IsZero() {
		at = t.now()
	}
	if t.onComplete != nil {
		t.onComplete(Completion{Mode: t.mode, ElapsedSeconds: t.elapsed, At: at})
	}
}

// Reset returns to IDLE with the full duration of the current mode.
func (t *Timer) Reset() {
	t.disarm()
	t.zero()
}

// ResetSession resets only if no reset or mode switch happened since token
// was taken. It reports whether the reset was applied.
func (t *Timer) ResetSession(token uint64) bool {
	if token != t.session {
		return false
	}
	t.Reset()
	return true
}

func (t *Timer) SessionToken() uint64 { return t.session }

func (t *Timer) State() domain.RunState { return t.state }

func (t *Timer) Elapsed() int { return t.elapsed }

func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Mode:             t.mode,
		CountMode:        t.countMode,
		RunState:         t.state,
		RemainingSeconds: t.remaining,
		ElapsedSeconds:   t.elapsed,
		Session:          t.session,
	}
}

func (t *Timer) pristine() bool {
	return t.state == domain.RunIdle && t.elapsed == 0
}

func (t *Timer) zero() {
	t.remaining = t.mode.DurationSeconds
	t.elapsed = 0
	t.state = domain.RunIdle
	t.session++
}

func (t *Timer) arm() {
	t.gen++
	t.armed = true
	t.armedAt = t.now()
	t.elapsedAtArm = t.elapsed
	t.clock.Arm(t.gen)
}

func (t *Timer) disarm() {
	if !t.armed {
		return
	}
	t.gen++
	t.armed = false
	t.clock.Disarm()
}
