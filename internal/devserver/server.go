// Package devserver serves the remote study API from the local SQLite
// stores. It exists so the REST backend can be exercised without the
// hosted service.
package devserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

type SubjectStore interface {
	CreateSubject(ctx context.Context, s *domain.Subject) error
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
}

type SessionStore interface {
	SubmitSession(ctx context.Context, rec *domain.SessionRecord) error
	ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error)
}

type FlashcardStore interface {
	CreateFlashcard(ctx context.Context, c *domain.Flashcard) error
	FetchDue(ctx context.Context) ([]domain.Flashcard, error)
	SubmitReview(ctx context.Context, review domain.ReviewSubmission) error
}

type Deps struct {
	Subjects   SubjectStore
	Sessions   SessionStore
	Flashcards FlashcardStore
}

type Options struct {
	// JWTSecret enables bearer auth when non-empty.
	JWTSecret string
	Logger    *slog.Logger
	Now       func() time.Time
}

type Server struct {
	deps     Deps
	opts     Options
	logger   *slog.Logger
	now      func() time.Time
	validate *validator.Validate
}

func New(deps Deps, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Server{
		deps:     deps,
		opts:     opts,
		logger:   logger,
		now:      now,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Handler builds the router. All routes live under /api/v1.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		if s.opts.JWTSecret != "" {
			r.Use(s.authenticate)
		}

		r.Get("/subjects", s.listSubjects)
		r.Post("/subjects", s.createSubject)

		r.Get("/sessions", s.listSessions)
		r.Post("/sessions", s.submitSession)

		r.Get("/flashcards/due", s.fetchDue)
		r.Post("/flashcards", s.createFlashcard)
		r.Post("/flashcards/{id}/review", s.submitReview)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondMessage(w, http.StatusNotFound, "Route not found")
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		level := slog.LevelInfo
		if ww.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		s.logger.Log(r.Context(), level, "http_request",
			"request_id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
