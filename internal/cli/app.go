package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/studyfocus/internal/config"
	"github.com/alexanderramin/studyfocus/internal/devserver"
	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/service"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

// SubjectWriter creates subjects. Both backends provide one.
type SubjectWriter interface {
	CreateSubject(ctx context.Context, s *domain.Subject) error
}

// SessionRemover deletes saved sessions. Only the local backend provides one.
type SessionRemover interface {
	Delete(ctx context.Context, id string) error
}

// App holds the stores and collaborators used by CLI commands.
type App struct {
	Config *config.Config
	Logger *slog.Logger

	Backend        service.Backend
	SubjectWriter  SubjectWriter
	SessionRemover SessionRemover

	// Serve is set when the local SQLite stores are open; `serve` needs it.
	Serve *devserver.Deps

	Observer service.UseCaseObserver
	Notifier service.Notifier
	Scorer   service.FocusScorer
	Now      func() time.Time

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// Configure loads config and wires the backend once flags are parsed.
	// Tests leave it nil and fill the fields directly.
	Configure func(cmd *cobra.Command) error

	// TickPeriod overrides the one-second clock period.
	TickPeriod time.Duration
}

func (a *App) config() *config.Config {
	if a.Config != nil {
		return a.Config
	}
	return &config.Config{
		Backend: domain.BackendLocal,
		Timer:   config.TimerConfig{RequireSubject: true, Bell: true},
		Review:  config.ReviewConfig{RequeueAfter: 24 * time.Hour},
		Server:  config.ServerConfig{Addr: ":5000"},
	}
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) observer() service.UseCaseObserver {
	if a.Observer != nil {
		return a.Observer
	}
	return service.NewLogUseCaseObserver(a.logger())
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) tickPeriod() time.Duration {
	if a.TickPeriod > 0 {
		return a.TickPeriod
	}
	return time.Second
}

func (a *App) recorder() *service.SessionRecorder {
	opts := []service.RecorderOption{
		service.WithClock(a.now),
		service.WithRecorderObserver(a.observer()),
	}
	if a.Scorer != nil {
		opts = append(opts, service.WithScorer(a.Scorer))
	}
	return service.NewSessionRecorder(a.Backend.Sessions, opts...)
}

func (a *App) reviewQueue() *service.ReviewQueue {
	return service.NewReviewQueue(a.Backend.Flashcards, service.WithQueueObserver(a.observer()))
}

// notifier returns the configured sink, or a no-op.
func (a *App) notifier() service.Notifier {
	if a.Notifier != nil {
		return a.Notifier
	}
	return nopNotifier{}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, timer.Completion) {}
