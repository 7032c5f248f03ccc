package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/alexanderramin/studyfocus/internal/db"
	"github.com/alexanderramin/studyfocus/internal/domain"
)

// SQLiteSubjectRepo is the local Subject Directory.
type SQLiteSubjectRepo struct {
	db db.DBTX
}

func NewSQLiteSubjectRepo(db db.DBTX) *SQLiteSubjectRepo {
	return &SQLiteSubjectRepo{db: db}
}

func (r *SQLiteSubjectRepo) CreateSubject(ctx context.Context, s *domain.Subject) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return errors.New("subject name is required")
	}
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = nowUTC()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subjects (id, name, created_at) VALUES (?, ?, ?)`,
		s.ID, s.Name, formatTime(s.CreatedAt))
	if isUniqueViolation(err) {
		return fmt.Errorf("subject %q: %w", s.Name, ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

func (r *SQLiteSubjectRepo) GetByID(ctx context.Context, id string) (*domain.Subject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM subjects WHERE id = ?`, id)
	s, err := scanSubject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return s, err
}

// ListSubjects returns every subject ordered by name.
func (r *SQLiteSubjectRepo) ListSubjects(ctx context.Context) ([]domain.Subject, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM subjects ORDER BY name COLLATE NOCASE`)
	if err != nil {
		return nil, fmt.Errorf("listing subjects: %w", err)
	}
	defer rows.Close()

	var out []domain.Subject
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subjects: %w", err)
	}
	return out, nil
}

// Delete removes the subject and, by cascade, its sessions.
func (r *SQLiteSubjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting subject: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subject %q: %w", id, ErrNotFound)
	}
	return nil
}

func scanSubject(s rowScanner) (*domain.Subject, error) {
	var subj domain.Subject
	var createdAt string
	if err := s.Scan(&subj.ID, &subj.Name, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning subject: %w", err)
	}
	var err error
	if subj.CreatedAt, err = parseTime(createdAt, "created_at"); err != nil {
		return nil, err
	}
	return &subj, nil
}
