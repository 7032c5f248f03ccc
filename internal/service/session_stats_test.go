package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/studyfocus/internal/domain"
	"github.com/alexanderramin/studyfocus/internal/testutil"
)

func TestSummarizeSessions_PerSubjectTotals(t *testing.T) {
	day := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	records := []*domain.SessionRecord{
		testutil.NewTestSessionRecord("math", testutil.WithDurationMinutes(25), testutil.WithFocusScore(80), testutil.WithEndTime(day)),
		testutil.NewTestSessionRecord("math", testutil.WithDurationMinutes(50), testutil.WithFocusScore(90), testutil.WithEndTime(day.Add(2*time.Hour))),
		testutil.NewTestSessionRecord("bio", testutil.WithDurationMinutes(15), testutil.WithFocusScore(70), testutil.WithEndTime(day)),
		nil,
	}
	subjects := []domain.Subject{{ID: "math", Name: "Mathematics"}}

	got := SummarizeSessions(records, subjects)
	require.Len(t, got, 2)

	assert.Equal(t, "Mathematics", got[0].SubjectName)
	assert.Equal(t, 2, got[0].Sessions)
	assert.Equal(t, 75, got[0].TotalMinutes)
	assert.InDelta(t, 85.0, got[0].AvgFocusScore, 1e-9)
	assert.Equal(t, day.Add(2*time.Hour).Add(-50*time.Minute), got[0].LastSessionDate)

	assert.Equal(t, "bio", got[1].SubjectName, "unknown subject falls back to id")
	assert.Equal(t, 15, got[1].TotalMinutes)

	assert.Equal(t, 90, TotalMinutes(records))
}

func TestSummarizeSessions_Empty(t *testing.T) {
	assert.Empty(t, SummarizeSessions(nil, nil))
}
