package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

var cardCounter atomic.Int64

// Subject options
type SubjectOption func(*domain.Subject)

func NewTestSubject(name string, opts ...SubjectOption) *domain.Subject {
	s := &domain.Subject{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Flashcard options
type FlashcardOption func(*domain.Flashcard)

func WithCardID(id string) FlashcardOption {
	return func(c *domain.Flashcard) { c.ID = id }
}

func WithDueAt(t time.Time) FlashcardOption {
	return func(c *domain.Flashcard) { c.DueAt = t }
}

// NewTestFlashcard returns a card due an hour ago.
func NewTestFlashcard(subjectID string, opts ...FlashcardOption) *domain.Flashcard {
	n := cardCounter.Add(1)
	now := time.Now().UTC()
	c := &domain.Flashcard{
		ID:        uuid.New().String(),
		Front:     fmt.Sprintf("Question %d", n),
		Back:      fmt.Sprintf("Answer %d", n),
		SubjectID: subjectID,
		DueAt:     now.Add(-time.Hour),
		CreatedAt: now.Add(-2 * time.Hour),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cards builds queue-ready cards with the given ids, in order.
func Cards(ids ...string) []domain.Flashcard {
	out := make([]domain.Flashcard, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Flashcard{ID: id, Front: "front " + id, Back: "back " + id})
	}
	return out
}

// Session record options
type SessionOption func(*domain.SessionRecord)

func WithDurationMinutes(m int) SessionOption {
	return func(r *domain.SessionRecord) {
		r.DurationMinutes = m
		r.StartTime = r.EndTime.Add(-time.Duration(m) * time.Minute)
	}
}

// WithEndTime moves the whole session so it ends at t.
func WithEndTime(t time.Time) SessionOption {
	return func(r *domain.SessionRecord) {
		d := r.EndTime.Sub(r.StartTime)
		r.EndTime = t.UTC()
		r.StartTime = r.EndTime.Add(-d)
	}
}

func WithFocusScore(score int) SessionOption {
	return func(r *domain.SessionRecord) { r.FocusScore = score }
}

// NewTestSessionRecord returns a 25-minute pomodoro that ended now.
func NewTestSessionRecord(subjectID string, opts ...SessionOption) *domain.SessionRecord {
	end := time.Now().UTC().Truncate(time.Second)
	r := &domain.SessionRecord{
		ID:              uuid.New().String(),
		SubjectID:       subjectID,
		Mode:            domain.ModePomodoro,
		StartTime:       end.Add(-25 * time.Minute),
		EndTime:         end,
		DurationMinutes: 25,
		FocusScore:      80,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
