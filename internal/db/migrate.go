package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_subjects_name ON subjects(name COLLATE NOCASE)`,

	`CREATE TABLE IF NOT EXISTS study_sessions (
		id           TEXT PRIMARY KEY,
		subject_id   TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		mode         TEXT NOT NULL DEFAULT '',
		started_at   TEXT NOT NULL,
		ended_at     TEXT NOT NULL,
		duration_min INTEGER NOT NULL CHECK(duration_min >= 1),
		focus_score  INTEGER NOT NULL CHECK(focus_score BETWEEN 0 AND 100),
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_sessions_subject ON study_sessions(subject_id)`,
	`CREATE INDEX IF NOT EXISTS idx_sessions_started ON study_sessions(started_at)`,

	`CREATE TABLE IF NOT EXISTS flashcards (
		id         TEXT PRIMARY KEY,
		subject_id TEXT REFERENCES subjects(id) ON DELETE SET NULL,
		front      TEXT NOT NULL,
		back       TEXT NOT NULL,
		due_at     TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_flashcards_due ON flashcards(due_at)`,

	`CREATE TABLE IF NOT EXISTS flashcard_reviews (
		id           TEXT PRIMARY KEY,
		flashcard_id TEXT NOT NULL REFERENCES flashcards(id) ON DELETE CASCADE,
		quality      INTEGER NOT NULL CHECK(quality BETWEEN 1 AND 5),
		reviewed_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_reviews_flashcard ON flashcard_reviews(flashcard_id)`,

	// review counter shown in `review list`
	`ALTER TABLE flashcards ADD COLUMN review_count INTEGER NOT NULL DEFAULT 0`,
}
