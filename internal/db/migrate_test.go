package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range []string{"subjects", "study_sessions", "flashcards", "flashcard_reviews"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_subjects_name",
		"idx_sessions_subject",
		"idx_sessions_started",
		"idx_flashcards_due",
		"idx_reviews_flashcard",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_AddsReviewCount(t *testing.T) {
	db := openTestDB(t)

	rows, err := db.Query(`PRAGMA table_info(flashcards)`)
	require.NoError(t, err)
	defer rows.Close()

	found := false
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		require.NoError(t, rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk))
		if name == "review_count" {
			found = true
		}
	}
	require.NoError(t, rows.Err())
	assert.True(t, found)
}

func TestForeignKeys_Enforced(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO study_sessions (id, subject_id, started_at, ended_at, duration_min, focus_score, created_at)
		VALUES ('s1', 'missing', 'x', 'x', 5, 80, 'x')`)
	assert.Error(t, err)
}

func TestCheckConstraints(t *testing.T) {
	db := openTestDB(t)
	_, err := db.Exec(`INSERT INTO subjects (id, name, created_at) VALUES ('sub', 'Math', 'x')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO study_sessions (id, subject_id, started_at, ended_at, duration_min, focus_score, created_at)
		VALUES ('s1', 'sub', 'x', 'x', 0, 80, 'x')`)
	assert.Error(t, err, "zero-minute session rejected")

	_, err = db.Exec(`INSERT INTO study_sessions (id, subject_id, started_at, ended_at, duration_min, focus_score, created_at)
		VALUES ('s2', 'sub', 'x', 'x', 5, 101, 'x')`)
	assert.Error(t, err, "focus score above 100 rejected")

	_, err = db.Exec(`INSERT INTO subjects (id, name, created_at) VALUES ('sub2', 'math', 'x')`)
	assert.Error(t, err, "subject names are unique ignoring case")
}
