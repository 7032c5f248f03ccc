package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

var fmtNow = time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)

func TestFormatSessionList(t *testing.T) {
	recs := []*domain.SessionRecord{
		{ID: "r1", SubjectID: "math", Mode: domain.ModePomodoro, StartTime: fmtNow.Add(-time.Hour), DurationMinutes: 25, FocusScore: 90},
		{ID: "r2", SubjectID: "gone", Mode: domain.ModeDeepWork, StartTime: fmtNow.Add(-26 * time.Hour), DurationMinutes: 60, FocusScore: 65},
	}
	out := FormatSessionList(recs, map[string]string{"math": "Mathematics"}, fmtNow)

	assert.Contains(t, out, "Mathematics")
	assert.Contains(t, out, "gone")
	assert.Contains(t, out, "Focus")
	assert.Contains(t, out, "Deep Work")
	assert.Contains(t, out, "Today 17:00")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "2 sessions, 1h 25m total")
}

func TestFormatSessionList_Empty(t *testing.T) {
	assert.Contains(t, FormatSessionList(nil, nil, fmtNow), "No sessions recorded yet.")
}

func TestFormatSubjectStats(t *testing.T) {
	out := FormatSubjectStats([]domain.SubjectSummary{
		{SubjectID: "m", SubjectName: "Math", Sessions: 3, TotalMinutes: 95, AvgFocusScore: 81.6, LastSessionDate: fmtNow},
	}, 7, fmtNow)
	assert.Contains(t, out, "LAST 7 DAYS")
	assert.Contains(t, out, "Math")
	assert.Contains(t, out, "1h 35m")
	assert.Contains(t, out, "82")

	assert.Contains(t, FormatSubjectStats(nil, 14, fmtNow), "No sessions in the last 14 days.")
}

func TestReviewHeader(t *testing.T) {
	assert.Contains(t, ReviewHeader(1), "Reviewing 1 card today")
	assert.Contains(t, ReviewHeader(3), "Reviewing 3 cards today")
}

func TestFormatDueCards(t *testing.T) {
	cards := []domain.Flashcard{
		{ID: "c1", Front: "What is entropy?", SubjectID: "phys", DueAt: fmtNow.Add(-48 * time.Hour), ReviewCount: 2},
		{ID: "c2", Front: "Define a monad"},
	}
	out := FormatDueCards(cards, map[string]string{"phys": "Physics"}, fmtNow)
	assert.Contains(t, out, "Reviewing 2 cards today")
	assert.Contains(t, out, "Physics")
	assert.Contains(t, out, "What is entropy?")
	assert.Contains(t, out, "2d ago")

	assert.Contains(t, FormatDueCards(nil, nil, fmtNow), "No cards due")
}

func TestFormatCardFace(t *testing.T) {
	c := domain.Flashcard{Front: "2+2?", Back: "4"}
	front := FormatCardFace(c, false, "Math")
	assert.Contains(t, front, "QUESTION")
	assert.Contains(t, front, "2+2?")
	assert.NotContains(t, front, "4\n")

	back := FormatCardFace(c, true, "")
	assert.Contains(t, back, "ANSWER")
	assert.Contains(t, back, "4")
}
