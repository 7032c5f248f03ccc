package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

var (
	// ErrReviewInFlight rejects a rating while the previous one is unconfirmed.
	ErrReviewInFlight = errors.New("a review is already being submitted")

	// ErrStaleResult marks a completion that belongs to a superseded load.
	ErrStaleResult = errors.New("result belongs to a superseded queue")
)

// LoadTicket identifies one fetch of the due list.
type LoadTicket struct {
	Gen uint64
}

// ReviewTicket identifies one in-flight review submission.
type ReviewTicket struct {
	Gen     uint64
	Seq     uint64
	CardID  string
	Quality domain.Quality
}

// ReviewQueue holds the due flashcards in server order. The head is removed
// only after the store confirms its review.
//
// The queue is owned by a single goroutine. Network calls can run elsewhere
// through Fetch and Submit; their results come back through CompleteLoad and
// CompleteRate on the owner.
type ReviewQueue struct {
	store    FlashcardStore
	observer UseCaseObserver

	cards    []domain.Flashcard
	flipped  bool
	loaded   bool
	gen      uint64
	seq      uint64
	inFlight *ReviewTicket
}

type QueueOption func(*ReviewQueue)

func WithQueueObserver(obs UseCaseObserver) QueueOption {
	return func(q *ReviewQueue) {
		if obs != nil {
			q.observer = obs
		}
	}
}

func NewReviewQueue(store FlashcardStore, opts ...QueueOption) *ReviewQueue {
	q := &ReviewQueue{store: store, observer: NoopUseCaseObserver{}}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Head returns the next card to review.
func (q *ReviewQueue) Head() (domain.Flashcard, bool) {
	if len(q.cards) == 0 {
		return domain.Flashcard{}, false
	}
	return q.cards[0], true
}

func (q *ReviewQueue) Cards() []domain.Flashcard {
	out := make([]domain.Flashcard, len(q.cards))
	copy(out, q.cards)
	return out
}

func (q *ReviewQueue) Len() int { return len(q.cards) }

func (q *ReviewQueue) Flipped() bool { return q.flipped }

// Loaded reports whether at least one fetch has completed.
func (q *ReviewQueue) Loaded() bool { return q.loaded }

func (q *ReviewQueue) InFlight() bool { return q.inFlight != nil }

func (q *ReviewQueue) Slot() domain.SlotState {
	switch {
	case len(q.cards) == 0:
		return domain.SlotEmpty
	case q.flipped:
		return domain.SlotShowingBack
	default:
		return domain.SlotShowingFront
	}
}

// Flip toggles between front and back of the head. It never touches the store.
// An empty queue still toggles; Slot reports SlotEmpty regardless.
func (q *ReviewQueue) Flip() {
	q.flipped = !q.flipped
}

// BeginLoad supersedes any earlier load or review still in flight.
func (q *ReviewQueue) BeginLoad() LoadTicket {
	q.gen++
	return LoadTicket{Gen: q.gen}
}

// Fetch calls the store. It is safe to run off the owning goroutine.
func (q *ReviewQueue) Fetch(ctx context.Context) (cards []domain.Flashcard, err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, q.observer, "fetch-due", startedAt, map[string]any{"count": len(cards)}, err)
	}()
	cards, err = q.store.FetchDue(ctx)
	if err != nil {
		return nil, domain.NewStoreError("fetch due flashcards", err)
	}
	return cards, nil
}

// CompleteLoad replaces the queue wholesale. A failed fetch keeps the
// previous queue.
func (q *ReviewQueue) CompleteLoad(t LoadTicket, cards []domain.Flashcard, err error) error {
	if t.Gen != q.gen {
		return ErrStaleResult
	}
	if err != nil {
		return domain.NewStoreError("fetch due flashcards", err)
	}
	q.cards = dedupeCards(cards)
	q.flipped = false
	q.loaded = true
	q.inFlight = nil
	return nil
}

// Load fetches the due list and replaces the queue.
func (q *ReviewQueue) Load(ctx context.Context) error {
	t := q.BeginLoad()
	cards, err := q.Fetch(ctx)
	return q.CompleteLoad(t, cards, err)
}

// BeginRate reserves the head for a review submission.
func (q *ReviewQueue) BeginRate(quality domain.Quality) (ReviewTicket, error) {
	head, ok := q.Head()
	if !ok {
		return ReviewTicket{}, domain.ErrEmptyQueue
	}
	if !quality.Valid() {
		return ReviewTicket{}, domain.ErrInvalidQuality
	}
	if q.inFlight != nil {
		return ReviewTicket{}, ErrReviewInFlight
	}
	q.seq++
	t := ReviewTicket{Gen: q.gen, Seq: q.seq, CardID: head.ID, Quality: quality}
	q.inFlight = &t
	return t, nil
}

// Submit sends the reviewed card to the store. It is safe to run off the
// owning goroutine.
func (q *ReviewQueue) Submit(ctx context.Context, t ReviewTicket) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, q.observer, "submit-review", startedAt, map[string]any{
			"card":    t.CardID,
			"quality": int(t.Quality),
		}, err)
	}()
	err = q.store.SubmitReview(ctx, domain.ReviewSubmission{CardID: t.CardID, Quality: t.Quality})
	if err != nil {
		return domain.NewStoreError("submit review", err)
	}
	return nil
}

// CompleteRate removes the head on success. On failure the head and flip
// state are left as they were so the same card can be rated again.
func (q *ReviewQueue) CompleteRate(t ReviewTicket, err error) error {
	if q.inFlight != nil && q.inFlight.Seq == t.Seq {
		q.inFlight = nil
	}
	if t.Gen != q.gen {
		return ErrStaleResult
	}
	if err != nil {
		return domain.NewStoreError("submit review", err)
	}
	if len(q.cards) > 0 && q.cards[0].ID == t.CardID {
		q.cards = q.cards[1:]
		q.flipped = false
	}
	return nil
}

// Rate submits quality for the head and waits for confirmation.
func (q *ReviewQueue) Rate(ctx context.Context, quality domain.Quality) error {
	t, err := q.BeginRate(quality)
	if err != nil {
		return err
	}
	return q.CompleteRate(t, q.Submit(ctx, t))
}

func (q *ReviewQueue) RateWith(ctx context.Context, r domain.Rating) error {
	return q.Rate(ctx, r.Quality())
}

func dedupeCards(cards []domain.Flashcard) []domain.Flashcard {
	seen := make(map[string]struct{}, len(cards))
	out := make([]domain.Flashcard, 0, len(cards))
	for _, c := range cards {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
