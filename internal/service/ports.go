package service

import (
	"context"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

// SessionStore accepts finished focus sessions.
type SessionStore interface {
	SubmitSession(ctx context.Context, rec *domain.SessionRecord) error
}

// SessionHistory lists saved sessions.
type SessionHistory interface {
	ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error)
}

// FlashcardStore serves due cards and accepts reviews.
type FlashcardStore interface {
	FetchDue(ctx context.Context) ([]domain.Flashcard, error)
	SubmitReview(ctx context.Context, review domain.ReviewSubmission) error
}

// FlashcardWriter creates cards.
type FlashcardWriter interface {
	CreateFlashcard(ctx context.Context, card *domain.Flashcard) error
}

// SubjectDirectory is the read-only list of subjects a session can be bound to.
type SubjectDirectory interface {
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
}

// Notifier receives the timer completion signal. Implementations must not
// block and must not fail the caller.
type Notifier interface {
	Notify(ctx context.Context, c timer.Completion)
}

// Backend bundles the stores one backend (local SQLite or remote REST) provides.
type Backend struct {
	Sessions   SessionStore
	History    SessionHistory
	Flashcards FlashcardStore
	Cards      FlashcardWriter
	Subjects   SubjectDirectory
}
