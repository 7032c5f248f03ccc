package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/testutil"
)

func ids(cards []domain.Flashcard) []string {
	out := make([]string, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.ID)
	}
	return out
}

func loadedQueue(t *testing.T, store *testutil.FakeFlashcardStore) *ReviewQueue {
	t.Helper()
	q := NewReviewQueue(store)
	require.NoError(t, q.Load(context.Background()))
	return q
}

func TestReviewQueue_EmptyBeforeLoad(t *testing.T) {
	q := NewReviewQueue(&testutil.FakeFlashcardStore{})
	assert.Equal(t, domain.SlotEmpty, q.Slot())
	assert.False(t, q.Loaded())
	_, ok := q.Head()
	assert.False(t, ok)
}

func TestRate_SuccessRemovesHeadAndResetsFlip(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B", "C")}
	q := loadedQueue(t, store)
	q.Flip()
	require.Equal(t, domain.SlotShowingBack, q.Slot())

	require.NoError(t, q.Rate(context.Background(), 4))

	assert.Equal(t, []string{"B", "C"}, ids(q.Cards()))
	assert.False(t, q.Flipped())
	assert.Equal(t, domain.SlotShowingFront, q.Slot())
	require.Len(t, store.Reviews, 1)
	assert.Equal(t, domain.ReviewSubmission{CardID: "A", Quality: 4}, store.Reviews[0])
}

func TestRate_FailureKeepsQueueAndFlip(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B", "C"), ReviewErr: errors.New("card locked")}
	q := loadedQueue(t, store)
	q.Flip()

	err := q.Rate(context.Background(), 3)
	require.Error(t, err)
	var se *domain.StoreError
	require.ErrorAs(t, err, &se)
	assert.Contains(t, err.Error(), "card locked")

	assert.Equal(t, []string{"A", "B", "C"}, ids(q.Cards()))
	assert.True(t, q.Flipped())
	assert.False(t, q.InFlight())

	store.SetReviewErr(nil)
	require.NoError(t, q.Rate(context.Background(), 3))
	assert.Equal(t, []string{"B", "C"}, ids(q.Cards()))
}

func TestRate_EmptyQueue(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{})
	err := q.Rate(context.Background(), 4)
	assert.ErrorIs(t, err, domain.ErrEmptyQueue)
}

func TestRate_InvalidQuality(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{Due: testutil.Cards("A")})
	assert.ErrorIs(t, q.Rate(context.Background(), 0), domain.ErrInvalidQuality)
	assert.ErrorIs(t, q.Rate(context.Background(), 6), domain.ErrInvalidQuality)
	assert.Equal(t, 1, q.Len())
}

func TestRateWith_MapsRatings(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B", "C")}
	q := loadedQueue(t, store)

	require.NoError(t, q.RateWith(context.Background(), domain.RatingHard))
	require.NoError(t, q.RateWith(context.Background(), domain.RatingGood))
	require.NoError(t, q.RateWith(context.Background(), domain.RatingEasy))

	require.Len(t, store.Reviews, 3)
	assert.Equal(t, domain.Quality(3), store.Reviews[0].Quality)
	assert.Equal(t, domain.Quality(4), store.Reviews[1].Quality)
	assert.Equal(t, domain.Quality(5), store.Reviews[2].Quality)
}

func TestBeginRate_RejectsWhileInFlight(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")})

	first, err := q.BeginRate(5)
	require.NoError(t, err)
	assert.True(t, q.InFlight())

	_, err = q.BeginRate(5)
	assert.ErrorIs(t, err, ErrReviewInFlight)

	require.NoError(t, q.CompleteRate(first, nil))
	assert.Equal(t, []string{"B"}, ids(q.Cards()))
	assert.False(t, q.InFlight())
}

func TestLoad_EmptyResponseThenRepopulates(t *testing.T) {
	store := &testutil.FakeFlashcardStore{}
	q := loadedQueue(t, store)
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, domain.SlotEmpty, q.Slot())

	store.SetDue(testutil.Cards("X", "Y"))
	require.NoError(t, q.Load(context.Background()))
	assert.Equal(t, []string{"X", "Y"}, ids(q.Cards()))
}

func TestLoad_ReplacesWholesaleAndResetsFlip(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")}
	q := loadedQueue(t, store)
	q.Flip()

	store.SetDue(testutil.Cards("C"))
	require.NoError(t, q.Load(context.Background()))
	assert.Equal(t, []string{"C"}, ids(q.Cards()))
	assert.False(t, q.Flipped())
}

func TestLoad_IdempotentOnUnchangedStore(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")}
	q := loadedQueue(t, store)
	require.NoError(t, q.Load(context.Background()))
	assert.Equal(t, []string{"A", "B"}, ids(q.Cards()))
}

func TestLoad_DropsDuplicateIDs(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B", "A")})
	assert.Equal(t, []string{"A", "B"}, ids(q.Cards()))
}

func TestLoad_FailureKeepsPreviousQueue(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")}
	q := loadedQueue(t, store)

	store.FetchErr = errors.New("timeout")
	err := q.Load(context.Background())
	require.Error(t, err)
	var se *domain.StoreError
	assert.ErrorAs(t, err, &se)
	assert.Equal(t, []string{"A", "B"}, ids(q.Cards()))
}

func TestCompleteLoad_StaleTicketIgnored(t *testing.T) {
	q := NewReviewQueue(&testutil.FakeFlashcardStore{})
	old := q.BeginLoad()
	current := q.BeginLoad()

	require.NoError(t, q.CompleteLoad(current, testutil.Cards("new"), nil))
	err := q.CompleteLoad(old, testutil.Cards("old"), nil)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Equal(t, []string{"new"}, ids(q.Cards()))
}

func TestCompleteRate_StaleAfterReloadDoesNotRemoveHead(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")})
	review, err := q.BeginRate(4)
	require.NoError(t, err)

	reload := q.BeginLoad()
	require.NoError(t, q.CompleteLoad(reload, testutil.Cards("A", "B"), nil))
	assert.False(t, q.InFlight())

	err = q.CompleteRate(review, nil)
	assert.ErrorIs(t, err, ErrStaleResult)
	assert.Equal(t, []string{"A", "B"}, ids(q.Cards()))
}

func TestCompleteRate_StaleDoesNotClearNewerInFlight(t *testing.T) {
	q := loadedQueue(t, &testutil.FakeFlashcardStore{Due: testutil.Cards("A", "B")})
	old, err := q.BeginRate(4)
	require.NoError(t, err)

	reload := q.BeginLoad()
	require.NoError(t, q.CompleteLoad(reload, testutil.Cards("A", "B"), nil))
	newer, err := q.BeginRate(5)
	require.NoError(t, err)

	assert.ErrorIs(t, q.CompleteRate(old, nil), ErrStaleResult)
	assert.True(t, q.InFlight())

	require.NoError(t, q.CompleteRate(newer, nil))
	assert.Equal(t, []string{"B"}, ids(q.Cards()))
}

func TestFlip_EmptyQueueTogglesButStaysEmpty(t *testing.T) {
	store := &testutil.FakeFlashcardStore{}
	q := NewReviewQueue(store)
	q.Flip()
	assert.True(t, q.Flipped())
	assert.Equal(t, domain.SlotEmpty, q.Slot())

	store.SetDue(testutil.Cards("A"))
	require.NoError(t, q.Load(context.Background()))
	assert.False(t, q.Flipped(), "a load always shows the front")
	assert.Equal(t, domain.SlotShowingFront, q.Slot())
}

func TestFlip_TogglesWithoutStoreCalls(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("A")}
	q := loadedQueue(t, store)
	q.Flip()
	q.Flip()
	assert.False(t, q.Flipped())
	assert.Equal(t, 1, store.Fetches)
	assert.Equal(t, 0, store.ReviewCount())
}

// E2E: [c1,c2], rate 5, rate 3, then reload picks up the latest due list.
func TestE2E_DrainQueueAndReload(t *testing.T) {
	store := &testutil.FakeFlashcardStore{Due: testutil.Cards("c1", "c2")}
	q := loadedQueue(t, store)

	require.NoError(t, q.Rate(context.Background(), 5))
	assert.Equal(t, []string{"c2"}, ids(q.Cards()))

	require.NoError(t, q.Rate(context.Background(), 3))
	assert.Equal(t, 0, q.Len())
	assert.Equal(t, domain.SlotEmpty, q.Slot())

	store.SetDue(testutil.Cards("c3"))
	require.NoError(t, q.Load(context.Background()))
	assert.Equal(t, []string{"c3"}, ids(q.Cards()))
}

func TestReviewQueue_ObserverSeesFetchAndSubmit(t *testing.T) {
	obs := &recordingObserver{}
	q := NewReviewQueue(&testutil.FakeFlashcardStore{Due: testutil.Cards("A")}, WithQueueObserver(obs))
	require.NoError(t, q.Load(context.Background()))
	require.NoError(t, q.Rate(context.Background(), 4))

	require.Len(t, obs.events, 2)
	assert.Equal(t, "fetch-due", obs.events[0].Name)
	assert.Equal(t, 1, obs.events[0].Fields["count"])
	assert.Equal(t, "submit-review", obs.events[1].Name)
}
