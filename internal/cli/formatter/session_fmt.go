package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// FocusScore colors a 0-100 score.
func FocusScore(score int) string {
	text := fmt.Sprintf("%d", score)
	switch {
	case score >= 85:
		return StyleGreen.Render(text)
	case score >= 70:
		return StyleYellow.Render(text)
	default:
		return StyleRed.Render(text)
	}
}

// FormatSessionList renders saved sessions newest first, with a total line.
func FormatSessionList(records []*domain.SessionRecord, subjects map[string]string, now time.Time) string {
	if len(records) == 0 {
		return Dim("No sessions recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(records))
	total := 0
	for _, r := range records {
		name := subjects[r.SubjectID]
		if name == "" {
			name = r.SubjectID
		}
		mode := Dim("--")
		if d, err := domain.LookupMode(r.Mode); err == nil {
			mode = ModeColor(d.ID).Render(d.Label)
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			HumanDateFrom(r.StartTime, now) + " " + r.StartTime.In(now.Location()).Format("15:04"),
			name,
			mode,
			FormatMinutes(r.DurationMinutes),
			FocusScore(r.FocusScore),
		})
		total += r.DurationMinutes
	}
	var b strings.Builder
	b.WriteString(Table{
		Headers: []string{"ID", "STARTED", "SUBJECT", "MODE", "DURATION", "FOCUS"},
		Rows:    rows,
		Right:   []int{4, 5},
	}.Render())
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d sessions, %s total", len(records), FormatMinutes(total))))
	b.WriteString("\n")
	return b.String()
}

// FormatSubjectStats renders per-subject totals for `session stats`.
func FormatSubjectStats(stats []domain.SubjectSummary, days int, now time.Time) string {
	if len(stats) == 0 {
		return Dim(fmt.Sprintf("No sessions in the last %d days.", days)) + "\n"
	}
	rows := make([][]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, []string{
			s.SubjectName,
			fmt.Sprintf("%d", s.Sessions),
			FormatMinutes(s.TotalMinutes),
			fmt.Sprintf("%.0f", s.AvgFocusScore),
			RelativeDateFrom(s.LastSessionDate, now),
		})
	}
	table := Table{
		Headers: []string{"SUBJECT", "SESSIONS", "TIME", "AVG FOCUS", "LAST"},
		Rows:    rows,
		Right:   []int{1, 2, 3},
	}.Render()
	return RenderBox(fmt.Sprintf("Last %d days", days), strings.TrimRight(table, "\n"))
}
