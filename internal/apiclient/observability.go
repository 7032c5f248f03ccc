package apiclient

import (
	"context"
	"log/slog"
)

// CallEvent records metadata about a single backend request.
type CallEvent struct {
	Method    string
	Path      string
	Status    int
	Attempts  int
	LatencyMs int64
	Success   bool
	ErrorCode string
}

// Observer receives events about backend calls for logging and metrics.
type Observer interface {
	OnCallComplete(event CallEvent)
}

// LogObserver writes call events as slog records.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnCallComplete(e CallEvent) {
	level := slog.LevelInfo
	if !e.Success {
		level = slog.LevelWarn
	}
	o.logger.Log(context.Background(), level, "api_call",
		"method", e.Method,
		"path", e.Path,
		"status", e.Status,
		"attempts", e.Attempts,
		"latency_ms", e.LatencyMs,
		"error_code", e.ErrorCode,
	)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(CallEvent) {}
