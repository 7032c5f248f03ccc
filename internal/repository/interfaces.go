package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

type SessionRepo interface {
	SubmitSession(ctx context.Context, rec *domain.SessionRecord) error
	GetByID(ctx context.Context, id string) (*domain.SessionRecord, error)
	ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error)
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.SessionRecord, error)
	Delete(ctx context.Context, id string) error
}

type SubjectRepo interface {
	CreateSubject(ctx context.Context, s *domain.Subject) error
	GetByID(ctx context.Context, id string) (*domain.Subject, error)
	ListSubjects(ctx context.Context) ([]domain.Subject, error)
	Delete(ctx context.Context, id string) error
}

type FlashcardRepo interface {
	CreateFlashcard(ctx context.Context, c *domain.Flashcard) error
	GetByID(ctx context.Context, id string) (*domain.Flashcard, error)
	FetchDue(ctx context.Context) ([]domain.Flashcard, error)
	FetchDueAt(ctx context.Context, at time.Time) ([]domain.Flashcard, error)
	SubmitReview(ctx context.Context, review domain.ReviewSubmission) error
	SubmitReviewAt(ctx context.Context, review domain.ReviewSubmission, at time.Time) error
	Delete(ctx context.Context, id string) error
}
