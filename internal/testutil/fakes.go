package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

// FakeSessionStore records submitted sessions. Set Err to fail submissions.
type FakeSessionStore struct {
	mu        sync.Mutex
	Err       error
	Submitted []*domain.SessionRecord
}

func (f *FakeSessionStore) SubmitSession(_ context.Context, rec *domain.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	cp := *rec
	f.Submitted = append(f.Submitted, &cp)
	return nil
}

func (f *FakeSessionStore) ListRecent(context.Context, int) ([]*domain.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.SessionRecord, len(f.Submitted))
	copy(out, f.Submitted)
	return out, nil
}

func (f *FakeSessionStore) SetErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Err = err
}

func (f *FakeSessionStore) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Submitted)
}

// FakeFlashcardStore serves Due and records reviews. A confirmed review
// removes the card from Due, the way the backend stops listing it.
type FakeFlashcardStore struct {
	mu        sync.Mutex
	Due       []domain.Flashcard
	FetchErr  error
	ReviewErr error
	Reviews   []domain.ReviewSubmission
	Created   []*domain.Flashcard
	Fetches   int
}

func (f *FakeFlashcardStore) FetchDue(context.Context) ([]domain.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Fetches++
	if f.FetchErr != nil {
		return nil, f.FetchErr
	}
	out := make([]domain.Flashcard, len(f.Due))
	copy(out, f.Due)
	return out, nil
}

func (f *FakeFlashcardStore) SubmitReview(_ context.Context, r domain.ReviewSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReviewErr != nil {
		return f.ReviewErr
	}
	f.Reviews = append(f.Reviews, r)
	for i, c := range f.Due {
		if c.ID == r.CardID {
			f.Due = append(f.Due[:i:i], f.Due[i+1:]...)
			break
		}
	}
	return nil
}

func (f *FakeFlashcardStore) CreateFlashcard(_ context.Context, c *domain.Flashcard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.Created = append(f.Created, &cp)
	return nil
}

func (f *FakeFlashcardStore) SetDue(cards []domain.Flashcard) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Due = cards
}

func (f *FakeFlashcardStore) SetReviewErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ReviewErr = err
}

func (f *FakeFlashcardStore) ReviewCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Reviews)
}

// FakeSubjectDirectory is an in-memory subject list.
type FakeSubjectDirectory struct {
	mu       sync.Mutex
	Subjects []domain.Subject
	Err      error
}

func (f *FakeSubjectDirectory) ListSubjects(context.Context) ([]domain.Subject, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return nil, f.Err
	}
	out := make([]domain.Subject, len(f.Subjects))
	copy(out, f.Subjects)
	return out, nil
}

func (f *FakeSubjectDirectory) CreateSubject(_ context.Context, s *domain.Subject) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Err != nil {
		return f.Err
	}
	f.Subjects = append(f.Subjects, *s)
	return nil
}

// RecordingNotifier keeps every completion it was told about.
type RecordingNotifier struct {
	mu          sync.Mutex
	Completions []timer.Completion
}

func (n *RecordingNotifier) Notify(_ context.Context, c timer.Completion) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Completions = append(n.Completions, c)
}

func (n *RecordingNotifier) Count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.Completions)
}
