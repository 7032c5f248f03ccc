package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/service"
	"github.com/alexanderramin/studyfocus/internal/teatest"
	"github.com/alexanderramin/studyfocus/internal/testutil"
)

func newReviewFixture(t *testing.T, cards []domain.Flashcard) (*App, *testutil.FakeFlashcardStore) {
	t.Helper()
	store := &testutil.FakeFlashcardStore{Due: cards}
	app := &App{
		Backend: service.Backend{
			Flashcards: store,
			Cards:      store,
			Subjects: &testutil.FakeSubjectDirectory{Subjects: []domain.Subject{
				{ID: "bio", Name: "Biology"},
			}},
		},
		Observer: service.NoopUseCaseObserver{},
	}
	return app, store
}

func reviewDriver(t *testing.T, app *App) (*teatest.Driver, *reviewView) {
	t.Helper()
	v := newReviewView(context.Background(), app)
	d := teatest.New(t, v, teatest.WithSize(100, 30))
	d.DrainInit()
	return d, v
}

func TestReviewView_LoadsAndShowsFront(t *testing.T) {
	cards := testutil.Cards("a", "b", "c")
	cards[0].SubjectID = "bio"
	app, _ := newReviewFixture(t, cards)
	d, v := reviewDriver(t, app)

	assert.Equal(t, 3, v.queue.Len())
	view := d.View()
	assert.Contains(t, view, "Reviewing 3 cards today")
	assert.Contains(t, view, "front a")
	assert.NotContains(t, view, "back a")
	assert.Contains(t, view, "Biology")
}

func TestReviewView_FlipTogglesFace(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a"))
	d, v := reviewDriver(t, app)

	d.Press("space")
	assert.Equal(t, domain.SlotShowingBack, v.queue.Slot())
	assert.Contains(t, d.View(), "back a")
	assert.Contains(t, d.View(), "1 Hard")

	d.Press("f")
	assert.Equal(t, domain.SlotShowingFront, v.queue.Slot())
	assert.Equal(t, 0, store.ReviewCount(), "flipping never reaches the store")
}

func TestReviewView_RateRemovesHead(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b"))
	d, v := reviewDriver(t, app)

	d.Press("space")
	d.Press("2")

	require.Equal(t, 1, store.ReviewCount())
	assert.Equal(t, "a", store.Reviews[0].CardID)
	assert.Equal(t, domain.Quality(4), store.Reviews[0].Quality)

	head, ok := v.queue.Head()
	require.True(t, ok)
	assert.Equal(t, "b", head.ID)
	assert.False(t, v.queue.Flipped())
	assert.Contains(t, d.View(), "Reviewing 1 card today")
}

func TestReviewView_RatingKeysMapToQuality(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b", "c"))
	d, _ := reviewDriver(t, app)

	d.Press("1")
	d.Press("3")
	d.Press("2")

	require.Equal(t, 3, store.ReviewCount())
	assert.Equal(t, domain.Quality(3), store.Reviews[0].Quality)
	assert.Equal(t, domain.Quality(5), store.Reviews[1].Quality)
	assert.Equal(t, domain.Quality(4), store.Reviews[2].Quality)
	assert.Contains(t, d.View(), "No cards due. Check again later.")
}

func TestReviewView_RateFailureKeepsHeadAndFlip(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b"))
	store.SetReviewErr(&domain.StoreError{Op: "submit review", Message: "Flashcard not found"})
	d, v := reviewDriver(t, app)

	d.Press("space")
	d.Press("3")

	assert.Equal(t, 2, v.queue.Len())
	head, _ := v.queue.Head()
	assert.Equal(t, "a", head.ID)
	assert.True(t, v.queue.Flipped())
	assert.False(t, v.queue.InFlight())
	assert.Contains(t, d.View(), "Flashcard not found")

	store.SetReviewErr(nil)
	d.Press("3")
	assert.Equal(t, 1, v.queue.Len())
}

func TestReviewView_RateWhileInFlightIgnored(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b"))
	_, v := reviewDriver(t, app)

	_, first := v.Update(teatest.KeyMsg("1"))
	require.NotNil(t, first)
	_, second := v.Update(teatest.KeyMsg("2"))
	assert.Nil(t, second)
	assert.Contains(t, v.View(), "Saving review...")

	v.Update(first())
	assert.Equal(t, 1, store.ReviewCount())
	head, _ := v.queue.Head()
	assert.Equal(t, "b", head.ID)
}

func TestReviewView_ReloadSupersedesInFlightReview(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b"))
	_, v := reviewDriver(t, app)

	_, rate := v.Update(teatest.KeyMsg("2"))
	require.NotNil(t, rate)
	_, load := v.Update(teatest.KeyMsg("l"))
	require.NotNil(t, load)

	// The review lands after the reload began; its result is stale.
	v.Update(rate())
	assert.Equal(t, 1, store.ReviewCount())
	assert.Equal(t, 2, v.queue.Len())

	v.Update(load())
	assert.Equal(t, 1, v.queue.Len(), "the store no longer lists the reviewed card")
	head, _ := v.queue.Head()
	assert.Equal(t, "b", head.ID)
	assert.False(t, v.queue.InFlight())
}

func TestReviewView_EmptyQueueCheckAgain(t *testing.T) {
	app, store := newReviewFixture(t, nil)
	d, v := reviewDriver(t, app)

	view := d.View()
	assert.Contains(t, view, "All caught up")
	assert.Contains(t, view, "check again")

	d.Press("1")
	assert.Contains(t, d.View(), "No flashcard to review")

	store.SetDue(testutil.Cards("x"))
	d.Press("l")
	assert.Equal(t, 1, v.queue.Len())
	assert.Contains(t, d.View(), "front x")
}

func TestReviewView_LoadFailureKeepsQueue(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a", "b"))
	d, v := reviewDriver(t, app)

	store.FetchErr = &domain.StoreError{Op: "fetch due flashcards", Message: "Server unavailable"}
	d.Press("l")

	assert.Equal(t, 2, v.queue.Len())
	assert.Contains(t, d.View(), "Server unavailable")
}

func TestReviewView_StaleLoadIgnored(t *testing.T) {
	app, store := newReviewFixture(t, testutil.Cards("a"))
	_, v := reviewDriver(t, app)

	_, older := v.Update(teatest.KeyMsg("l"))
	store.SetDue(testutil.Cards("x", "y"))
	_, newer := v.Update(teatest.KeyMsg("l"))

	v.Update(newer())
	store.SetDue(testutil.Cards("z"))
	v.Update(older())

	cards := v.queue.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, "x", cards[0].ID)
}

func TestReviewView_Quit(t *testing.T) {
	app, _ := newReviewFixture(t, nil)
	d, _ := reviewDriver(t, app)

	d.Press("q")

	assert.True(t, d.Quitting)
}
