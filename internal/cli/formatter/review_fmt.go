package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

// ReviewHeader is the line above the card, e.g. "Reviewing 3 cards today".
func ReviewHeader(n int) string {
	noun := "cards"
	if n == 1 {
		noun = "card"
	}
	return StyleHeader.Render(fmt.Sprintf("Reviewing %d %s today", n, noun))
}

// FormatCardFace renders the visible side of a card in a box.
func FormatCardFace(c domain.Flashcard, showBack bool, subjectName string) string {
	title := "Question"
	body := c.Front
	if showBack {
		title = "Answer"
		body = c.Front + "\n\n" + StyleDim.Render(strings.Repeat("─", 20)) + "\n\n" + StyleBold.Render(c.Back)
	}
	if subjectName != "" {
		body = StylePurple.Render(subjectName) + "\n\n" + body
	}
	return RenderBox(title, body)
}

// FormatDueCards renders the due list for `review list`.
func FormatDueCards(cards []domain.Flashcard, subjects map[string]string, now time.Time) string {
	if len(cards) == 0 {
		return Dim("No cards due. Check again later.") + "\n"
	}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		subject := subjects[c.SubjectID]
		if subject == "" {
			subject = Dim("--")
		}
		due := Dim("--")
		if !c.DueAt.IsZero() {
			due = RelativeDateFrom(c.DueAt, now)
		}
		rows = append(rows, []string{
			TruncID(c.ID),
			subject,
			Truncate(c.Front, 48),
			due,
			fmt.Sprintf("%d", c.ReviewCount),
		})
	}
	var b strings.Builder
	b.WriteString(ReviewHeader(len(cards)))
	b.WriteString("\n\n")
	b.WriteString(Table{
		Headers: []string{"ID", "SUBJECT", "FRONT", "DUE", "REVIEWS"},
		Rows:    rows,
		Right:   []int{4},
	}.Render())
	return b.String()
}
