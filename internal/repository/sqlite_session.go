package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/studyfocus/internal/db"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

// SQLiteSessionRepo is the local Session Store.
type SQLiteSessionRepo struct {
	db db.DBTX
}

func NewSQLiteSessionRepo(db db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: db}
}

const sessionColumns = `id, subject_id, mode, started_at, ended_at, duration_min, focus_score, created_at`

func (r *SQLiteSessionRepo) SubmitSession(ctx context.Context, rec *domain.SessionRecord) error {
	if err := rec.Validate(); err != nil {
		return fmt.Errorf("invalid session record: %w", err)
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = nowUTC()
	}

	query := `INSERT INTO study_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.SubjectID,
		string(rec.Mode),
		formatTime(rec.StartTime),
		formatTime(rec.EndTime),
		rec.DurationMinutes,
		rec.FocusScore,
		formatTime(rec.CreatedAt),
	)
	switch {
	case isForeignKeyViolation(err):
		return fmt.Errorf("subject %q: %w", rec.SubjectID, ErrNotFound)
	case isUniqueViolation(err):
		return fmt.Errorf("session %q: %w", rec.ID, ErrDuplicate)
	case err != nil:
		return fmt.Errorf("inserting study session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

// ListRecent returns sessions started within the last days days, newest first.
func (r *SQLiteSessionRepo) ListRecent(ctx context.Context, days int) ([]*domain.SessionRecord, error) {
	return r.ListSince(ctx, time.Now().UTC().AddDate(0, 0, -days))
}

func (r *SQLiteSessionRepo) ListSince(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE started_at >= ?
		ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, formatTime(since))
	if err != nil {
		return nil, fmt.Errorf("listing recent sessions: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListBySubject(ctx context.Context, subjectID string) ([]*domain.SessionRecord, error) {
	query := `SELECT ` + sessionColumns + ` FROM study_sessions
		WHERE subject_id = ?
		ORDER BY started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by subject: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM study_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting study session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("study session %q: %w", id, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.SessionRecord, error) {
	rec, err := scanSessionRow(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("study session: %w", ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.SessionRecord, error) {
	var out []*domain.SessionRecord
	for rows.Next() {
		rec, err := scanSessionRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return out, nil
}

func scanSessionRow(s rowScanner) (*domain.SessionRecord, error) {
	var rec domain.SessionRecord
	var mode, startedAt, endedAt, createdAt string

	err := s.Scan(&rec.ID, &rec.SubjectID, &mode, &startedAt, &endedAt,
		&rec.DurationMinutes, &rec.FocusScore, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scanning study session: %w", err)
	}

	rec.Mode = domain.ModeID(mode)
	if rec.StartTime, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if rec.EndTime, err = parseTime(endedAt, "ended_at"); err != nil {
		return nil, err
	}
	if rec.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &rec, nil
}
