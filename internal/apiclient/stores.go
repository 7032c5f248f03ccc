package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/alexanderramin/studyfocus/internal/domain"
)

func (c *Client) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	var out []domain.Subject
	if err := c.call(ctx, "list subjects", http.MethodGet, "/subjects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

type createSubjectBody struct {
	Name string `json:"name"`
}

func (c *Client) CreateSubject(ctx context.Context, s *domain.Subject) error {
	return c.call(ctx, "create subject", http.MethodPost, "/subjects", createSubjectBody{Name: s.Name}, s)
}

func (c *Client) SubmitSession(ctx context.Context, rec *domain.SessionRecord) error {
	var saved domain.SessionRecord
	if err := c.call(ctx, "submit session", http.MethodPost, "/sessions", rec, &saved); err != nil {
		return err
	}
	if !saved.CreatedAt.IsZero() {
		rec.CreatedAt = saved.CreatedAt
	}
	return nil
}

func (c *Client) ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error) {
	q := url.Values{}
	q.Set("days", strconv.Itoa(days))
	var out []*domain.SessionRecord
	if err := c.call(ctx, "list sessions", http.MethodGet, "/sessions?"+q.Encode(), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) FetchDue(ctx context.Context) ([]domain.Flashcard, error) {
	out := []domain.Flashcard{}
	if err := c.call(ctx, "fetch due flashcards", http.MethodGet, "/flashcards/due", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitReview(ctx context.Context, review domain.ReviewSubmission) error {
	path := "/flashcards/" + url.PathEscape(review.CardID) + "/review"
	return c.call(ctx, "submit review", http.MethodPost, path, review, nil)
}

type createFlashcardBody struct {
	SubjectID string `json:"subjectId,omitempty"`
	Front     string `json:"front"`
	Back      string `json:"back"`
}

func (c *Client) CreateFlashcard(ctx context.Context, card *domain.Flashcard) error {
	body := createFlashcardBody{SubjectID: card.SubjectID, Front: card.Front, Back: card.Back}
	return c.call(ctx, "create flashcard", http.MethodPost, "/flashcards", body, card)
}
