package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMode indicates a mode id outside the built-in table.
	ErrUnknownMode = errors.New("unknown timer mode")

	// ErrTooShort indicates a session below the one-minute admission floor.
	ErrTooShort = errors.New("session too short to save (min 1 min)")

	// ErrMissingSubject indicates a save attempt with no subject bound.
	ErrMissingSubject = errors.New("select a subject to save session")

	// ErrEmptyQueue indicates a rating with no card at the head of the queue.
	ErrEmptyQueue = errors.New("no flashcard to review")

	ErrInvalidQuality = errors.New("quality must be between 1 and 5")
)

// PreconditionError reports a missing selection or an operation attempted
// from a state that does not allow it. State is left untouched.
type PreconditionError struct {
	Op     string
	Reason string
}

func (e *PreconditionError) Error() string {
	if e.Op == "" {
		return e.Reason
	}
	return e.Op + ": " + e.Reason
}

// StoreError wraps a failure from a Session or Flashcard Store. Message is
// the backend's own message when it supplied one.
type StoreError struct {
	Op      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Message != "":
		return e.Op + ": " + e.Message
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": store failure"
	}
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewStoreError wraps err unless it already is a StoreError.
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func IsPrecondition(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}
