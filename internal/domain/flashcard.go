package domain

import (
	"fmt"
	"strings"
	"time"
)

type Flashcard struct {
	ID          string    `json:"_id"`
	Front       string    `json:"front"`
	Back        string    `json:"back"`
	SubjectID   string    `json:"subject,omitempty"`
	DueAt       time.Time `json:"nextReview,omitzero"`
	ReviewCount int       `json:"reviewCount,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
}

// Quality is the 1-5 score a review is submitted with.
type Quality int

const (
	MinQuality Quality = 1
	MaxQuality Quality = 5
)

func (q Quality) Valid() bool {
	return q >= MinQuality && q <= MaxQuality
}

// Rating is the user-facing self-assessment after seeing the back of a card.
type Rating string

const (
	RatingHard Rating = "hard"
	RatingGood Rating = "good"
	RatingEasy Rating = "easy"
)

// Quality maps a rating onto the backend's quality scale.
func (r Rating) Quality() Quality {
	switch r {
	case RatingHard:
		return 3
	case RatingGood:
		return 4
	case RatingEasy:
		return 5
	default:
		return 0
	}
}

func ParseRating(s string) (Rating, error) {
	switch Rating(strings.ToLower(strings.TrimSpace(s))) {
	case RatingHard:
		return RatingHard, nil
	case RatingGood:
		return RatingGood, nil
	case RatingEasy:
		return RatingEasy, nil
	}
	return "", fmt.Errorf("%w: unknown rating %q", ErrInvalidQuality, s)
}

// ReviewSubmission is the request sent to the flashcard store for one rated card.
type ReviewSubmission struct {
	CardID  string  `json:"-"`
	Quality Quality `json:"quality"`
}

type Subject struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
}
