package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyfocus/internal/db"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

// DefaultRequeueAfter is how far a reviewed card's due date moves when no
// other value is configured.
const DefaultRequeueAfter = 24 * time.Hour

// SQLiteFlashcardRepo is the local Flashcard Store. A review pushes the
// card's due date forward by a fixed requeueAfter; it does not schedule.
type SQLiteFlashcardRepo struct {
	db           db.DBTX
	uow          db.UnitOfWork
	requeueAfter time.Duration
}

func NewSQLiteFlashcardRepo(database db.DBTX, uow db.UnitOfWork, requeueAfter time.Duration) *SQLiteFlashcardRepo {
	if requeueAfter <= 0 {
		requeueAfter = DefaultRequeueAfter
	}
	return &SQLiteFlashcardRepo{db: database, uow: uow, requeueAfter: requeueAfter}
}

const flashcardColumns = `id, subject_id, front, back, due_at, review_count, created_at`

func (r *SQLiteFlashcardRepo) CreateFlashcard(ctx context.Context, c *domain.Flashcard) error {
	c.Front = strings.TrimSpace(c.Front)
	c.Back = strings.TrimSpace(c.Back)
	if c.Front == "" || c.Back == "" {
		return errors.New("flashcard front and back are required")
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := nowUTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.DueAt.IsZero() {
		c.DueAt = c.CreatedAt
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO flashcards (id, subject_id, front, back, due_at, review_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, nullableString(c.SubjectID), c.Front, c.Back,
		formatTime(c.DueAt), c.ReviewCount, formatTime(c.CreatedAt), formatTime(now))
	if isForeignKeyViolation(err) {
		return fmt.Errorf("subject %q: %w", c.SubjectID, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("inserting flashcard: %w", err)
	}
	return nil
}

func (r *SQLiteFlashcardRepo) GetByID(ctx context.Context, id string) (*domain.Flashcard, error) {
	return getFlashcard(ctx, r.db, id)
}

func (r *SQLiteFlashcardRepo) FetchDue(ctx context.Context) ([]domain.Flashcard, error) {
	return r.FetchDueAt(ctx, time.Now())
}

// FetchDueAt lists cards due at or before at, oldest due first.
func (r *SQLiteFlashcardRepo) FetchDueAt(ctx context.Context, at time.Time) ([]domain.Flashcard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+flashcardColumns+` FROM flashcards
		WHERE due_at <= ?
		ORDER BY due_at, created_at, id`, formatTime(at))
	if err != nil {
		return nil, fmt.Errorf("listing due flashcards: %w", err)
	}
	defer rows.Close()

	out := []domain.Flashcard{}
	for rows.Next() {
		c, err := scanFlashcard(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating flashcards: %w", err)
	}
	return out, nil
}

func (r *SQLiteFlashcardRepo) SubmitReview(ctx context.Context, review domain.ReviewSubmission) error {
	return r.SubmitReviewAt(ctx, review, time.Now())
}

// SubmitReviewAt records the review and requeues the card in one transaction.
func (r *SQLiteFlashcardRepo) SubmitReviewAt(ctx context.Context, review domain.ReviewSubmission, at time.Time) error {
	if !review.Quality.Valid() {
		return domain.ErrInvalidQuality
	}
	at = at.UTC().Truncate(time.Second)

	return r.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := getFlashcard(ctx, tx, review.CardID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO flashcard_reviews (id, flashcard_id, quality, reviewed_at) VALUES (?, ?, ?, ?)`,
			uuid.New().String(), review.CardID, int(review.Quality), formatTime(at)); err != nil {
			return fmt.Errorf("inserting flashcard review: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE flashcards SET due_at = ?, review_count = review_count + 1, updated_at = ? WHERE id = ?`,
			formatTime(at.Add(r.requeueAfter)), formatTime(at), review.CardID); err != nil {
			return fmt.Errorf("requeueing flashcard: %w", err)
		}
		return nil
	})
}

// CountReviews returns how many reviews were recorded for the card.
func (r *SQLiteFlashcardRepo) CountReviews(ctx context.Context, cardID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM flashcard_reviews WHERE flashcard_id = ?`, cardID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting flashcard reviews: %w", err)
	}
	return n, nil
}

func (r *SQLiteFlashcardRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM flashcards WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting flashcard: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("flashcard %q: %w", id, ErrNotFound)
	}
	return nil
}

func getFlashcard(ctx context.Context, q db.DBTX, id string) (*domain.Flashcard, error) {
	row := q.QueryRowContext(ctx, `SELECT `+flashcardColumns+` FROM flashcards WHERE id = ?`, id)
	c, err := scanFlashcard(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("flashcard %q: %w", id, ErrNotFound)
	}
	return c, err
}

func scanFlashcard(s rowScanner) (*domain.Flashcard, error) {
	var c domain.Flashcard
	var subject sql.NullString
	var dueAt, createdAt string

	if err := s.Scan(&c.ID, &subject, &c.Front, &c.Back, &dueAt, &c.ReviewCount, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning flashcard: %w", err)
	}
	c.SubjectID = stringFromNull(subject)

	var err error
	if c.DueAt, err = parseTime(dueAt, "due_at"); err != nil {
		return nil, err
	}
	if c.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &c, nil
}
