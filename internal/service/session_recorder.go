package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/timer"
)

// SessionRecorder turns a stopped or running timer into a saved Session Record.
type SessionRecorder struct {
	store    SessionStore
	scorer   FocusScorer
	now      func() time.Time
	observer UseCaseObserver
}

type RecorderOption func(*SessionRecorder)

func WithScorer(s FocusScorer) RecorderOption {
	return func(r *SessionRecorder) {
		if s != nil {
			r.scorer = s
		}
	}
}

func WithClock(now func() time.Time) RecorderOption {
	return func(r *SessionRecorder) {
		if now != nil {
			r.now = now
		}
	}
}

func WithRecorderObserver(obs UseCaseObserver) RecorderOption {
	return func(r *SessionRecorder) {
		if obs != nil {
			r.observer = obs
		}
	}
}

func NewSessionRecorder(store SessionStore, opts ...RecorderOption) *SessionRecorder {
	r := &SessionRecorder{
		store:    store,
		scorer:   NewPlaceholderScorer(nil),
		now:      time.Now,
		observer: NoopUseCaseObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build checks admission and assembles the record without submitting it.
// Elapsed time is checked before the subject.
func (r *SessionRecorder) Build(snap timer.Snapshot, subjectID string) (*domain.SessionRecord, error) {
	if snap.ElapsedSeconds < domain.MinSessionSeconds {
		return nil, domain.ErrTooShort
	}
	subjectID = strings.TrimSpace(subjectID)
	if subjectID == "" {
		return nil, domain.ErrMissingSubject
	}

	end := r.now().UTC()
	rec := &domain.SessionRecord{
		ID:              uuid.New().String(),
		SubjectID:       subjectID,
		Mode:            snap.Mode.ID,
		StartTime:       end.Add(-time.Duration(snap.ElapsedSeconds) * time.Second),
		EndTime:         end,
		DurationMinutes: snap.ElapsedSeconds / 60,
		FocusScore:      r.scorer.Score(snap),
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session record: %w", err)
	}
	return rec, nil
}

// Submit sends rec to the store. Failures come back as *domain.StoreError.
func (r *SessionRecorder) Submit(ctx context.Context, rec *domain.SessionRecord) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, r.observer, "submit-session", startedAt, map[string]any{
			"subject":  rec.SubjectID,
			"duration": rec.DurationMinutes,
		}, err)
	}()

	if err = r.store.SubmitSession(ctx, rec); err != nil {
		err = domain.NewStoreError("submit session", err)
		return err
	}
	return nil
}

// TrySave builds, submits and then resets the timer session it saved. On any
// failure the timer keeps its elapsed time so the user can retry.
func (r *SessionRecorder) TrySave(ctx context.Context, tm *timer.Timer, subjectID string) (*domain.SessionRecord, error) {
	rec, err := r.Build(tm.Snapshot(), subjectID)
	if err != nil {
		return nil, err
	}
	token := tm.SessionToken()
	if err := r.Submit(ctx, rec); err != nil {
		return nil, err
	}
	tm.ResetSession(token)
	return rec, nil
}
