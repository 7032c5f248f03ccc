// Package notify delivers the focus-timer completion signal. Sinks are
// fire-and-forget: they never block the timer and never return errors.
package notify

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/alexanderramin/studyfocus/internal/timer"
)

// Sink matches service.Notifier.
type Sink interface {
	Notify(ctx context.Context, c timer.Completion)
}

// Bell rings the terminal bell.
type Bell struct {
	mu     sync.Mutex
	w      io.Writer
	logger *slog.Logger
}

func NewBell(w io.Writer, logger *slog.Logger) *Bell {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bell{w: w, logger: logger}
}

func (b *Bell) Notify(ctx context.Context, _ timer.Completion) {
	if b == nil || b.w == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		b.logger.WarnContext(ctx, "bell failed", "error", err)
	}
}

// Log records completions as structured log lines.
type Log struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, c timer.Completion) {
	l.logger.InfoContext(ctx, "session_completed",
		"mode", string(c.Mode.ID),
		"label", c.Mode.Label,
		"elapsed_seconds", c.ElapsedSeconds,
		"at", c.At,
	)
}

// Multi fans a completion out to every sink in order.
type Multi []Sink

func (m Multi) Notify(ctx context.Context, c timer.Completion) {
	for _, s := range m {
		if s != nil {
			s.Notify(ctx, c)
		}
	}
}

// Func adapts a plain function.
type Func func(ctx context.Context, c timer.Completion)

func (f Func) Notify(ctx context.Context, c timer.Completion) {
	if f != nil {
		f(ctx, c)
	}
}
