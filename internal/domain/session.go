package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// MinSessionSeconds is the admission floor for saving a session.
const MinSessionSeconds = 60

// SessionRecord is the summary of one saved focus session. It is built once
// by the recorder and never mutated after submission.
type SessionRecord struct {
	ID              string    `json:"id" validate:"required"`
	SubjectID       string    `json:"subject" validate:"required"`
	Mode            ModeID    `json:"mode,omitempty"`
	StartTime       time.Time `json:"startTime" validate:"required"`
	EndTime         time.Time `json:"endTime" validate:"required,gtefield=StartTime"`
	DurationMinutes int       `json:"duration" validate:"min=1"`
	FocusScore      int       `json:"focusScore" validate:"min=0,max=100"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
}

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the record's field constraints.
func (r *SessionRecord) Validate() error {
	return recordValidator.Struct(r)
}

// SubjectSummary aggregates saved sessions for one subject.
type SubjectSummary struct {
	SubjectID       string
	SubjectName     string
	Sessions        int
	TotalMinutes    int
	AvgFocusScore   float64
	LastSessionDate time.Time
}
