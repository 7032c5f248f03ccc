package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupMode_BuiltIns(t *testing.T) {
	cases := map[ModeID]struct {
		secs  int
		label string
	}{
		ModePomodoro:   {1500, "Focus"},
		ModeShortBreak: {300, "Short Break"},
		ModeLongBreak:  {900, "Long Break"},
		ModeDeepWork:   {3600, "Deep Work"},
	}
	for id, want := range cases {
		d, err := LookupMode(id)
		require.NoError(t, err, id)
		assert.Equal(t, want.secs, d.DurationSeconds, id)
		assert.Equal(t, want.label, d.Label, id)
		assert.Equal(t, CountDown, d.CountMode, id)
	}
}

func TestLookupMode_Unknown(t *testing.T) {
	_, err := LookupMode("siesta")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestAllModes_DisplayOrder(t *testing.T) {
	all := AllModes()
	require.Len(t, all, 4)
	assert.Equal(t, ModePomodoro, all[0].ID)
	assert.Equal(t, ModeDeepWork, all[3].ID)
}

func TestParseModeID_AcceptsUnderscores(t *testing.T) {
	id, err := ParseModeID("short_break")
	require.NoError(t, err)
	assert.Equal(t, ModeShortBreak, id)

	id, err = ParseModeID("focus")
	require.NoError(t, err)
	assert.Equal(t, ModePomodoro, id)

	_, err = ParseModeID("nap")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestRatingQuality(t *testing.T) {
	assert.Equal(t, Quality(3), RatingHard.Quality())
	assert.Equal(t, Quality(4), RatingGood.Quality())
	assert.Equal(t, Quality(5), RatingEasy.Quality())
	assert.False(t, Rating("meh").Quality().Valid())
}

func TestParseRating(t *testing.T) {
	r, err := ParseRating(" Easy ")
	require.NoError(t, err)
	assert.Equal(t, RatingEasy, r)

	_, err = ParseRating("perfect")
	assert.ErrorIs(t, err, ErrInvalidQuality)
}

func TestQualityValid(t *testing.T) {
	assert.False(t, Quality(0).Valid())
	assert.True(t, Quality(1).Valid())
	assert.True(t, Quality(5).Valid())
	assert.False(t, Quality(6).Valid())
}

func TestSessionRecordValidate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	valid := SessionRecord{
		ID:              "rec-1",
		SubjectID:       "s1",
		StartTime:       now.Add(-25 * time.Minute),
		EndTime:         now,
		DurationMinutes: 25,
		FocusScore:      80,
	}
	require.NoError(t, valid.Validate())

	zeroMinutes := valid
	zeroMinutes.DurationMinutes = 0
	assert.Error(t, zeroMinutes.Validate())

	badScore := valid
	badScore.FocusScore = 101
	assert.Error(t, badScore.Validate())

	inverted := valid
	inverted.EndTime = inverted.StartTime.Add(-time.Second)
	assert.Error(t, inverted.Validate())

	noSubject := valid
	noSubject.SubjectID = ""
	assert.Error(t, noSubject.Validate())
}

func TestStoreError_MessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &StoreError{Op: "submit session", Message: "database offline", Err: cause}
	assert.Contains(t, err.Error(), "database offline")
	assert.ErrorIs(t, err, cause)

	bare := &StoreError{Op: "fetch due"}
	assert.Equal(t, "fetch due: store failure", bare.Error())
}

func TestNewStoreError_DoesNotDoubleWrap(t *testing.T) {
	inner := &StoreError{Op: "submit review", Message: "card not found"}
	wrapped := NewStoreError("rate", fmt.Errorf("call: %w", inner))

	var se *StoreError
	require.ErrorAs(t, wrapped, &se)
	assert.Equal(t, "submit review", se.Op)

	assert.NoError(t, NewStoreError("noop", nil))
}

func TestIsPrecondition(t *testing.T) {
	err := fmt.Errorf("start: %w", &PreconditionError{Op: "start", Reason: "Please select a subject first!"})
	assert.True(t, IsPrecondition(err))
	assert.False(t, IsPrecondition(ErrTooShort))
}
