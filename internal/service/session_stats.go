package service

import (
	"sort"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// SummarizeSessions totals records per subject, most studied first. Subjects
// missing from the directory are reported under their id.
func SummarizeSessions(records []*domain.SessionRecord, subjects []domain.Subject) []domain.SubjectSummary {
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}

	byID := make(map[string]*domain.SubjectSummary)
	scoreSums := make(map[string]int)
	for _, rec := range records {
		if rec == nil {
			continue
		}
		sum, ok := byID[rec.SubjectID]
		if !ok {
			name := names[rec.SubjectID]
			if name == "" {
				name = rec.SubjectID
			}
			sum = &domain.SubjectSummary{SubjectID: rec.SubjectID, SubjectName: name}
			byID[rec.SubjectID] = sum
		}
		sum.Sessions++
		sum.TotalMinutes += rec.DurationMinutes
		scoreSums[rec.SubjectID] += rec.FocusScore
		if rec.StartTime.After(sum.LastSessionDate) {
			sum.LastSessionDate = rec.StartTime
		}
	}

	out := make([]domain.SubjectSummary, 0, len(byID))
	for id, sum := range byID {
		sum.AvgFocusScore = float64(scoreSums[id]) / float64(sum.Sessions)
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalMinutes != out[j].TotalMinutes {
			return out[i].TotalMinutes > out[j].TotalMinutes
		}
		return out[i].SubjectName < out[j].SubjectName
	})
	return out
}

// TotalMinutes sums DurationMinutes over records.
func TotalMinutes(records []*domain.SessionRecord) int {
	total := 0
	for _, r := range records {
		if r != nil {
			total += r.DurationMinutes
		}
	}
	return total
}
