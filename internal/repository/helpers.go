package repository

import (
	"database/sql"
	"strings"
	"time"
)

// Timestamps are stored as RFC3339 UTC strings so they sort lexically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &parseError{column: column, err: err}
	}
	return t, nil
}

type parseError struct {
	column string
	err    error
}

func (e *parseError) Error() string { return "parsing " + e.column + ": " + e.err.Error() }
func (e *parseError) Unwrap() error { return e.err }

// nullableString maps "" to SQL NULL.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func stringFromNull(s sql.NullString) string {
	if !s.Valid {
		return ""
	}
	return s.String
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// nowUTC returns the current UTC time truncated to the stored precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
