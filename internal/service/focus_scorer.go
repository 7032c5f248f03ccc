package service

import (
	"math/rand/v2"
	"sync"

	"github.com/alexanderramin/studyfocus/internal/timer"
)

// FocusScorer rates a finished session on a 0-100 scale.
type FocusScorer interface {
	Score(snap timer.Snapshot) int
}

// PlaceholderScorer returns a uniform value in [60,100]. It does not measure
// anything and exists until a real focus signal is available.
type PlaceholderScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewPlaceholderScorer draws from src, or from the global source when src is nil.
func NewPlaceholderScorer(src rand.Source) *PlaceholderScorer {
	s := &PlaceholderScorer{}
	if src != nil {
		s.rng = rand.New(src)
	}
	return s
}

func (s *PlaceholderScorer) Score(timer.Snapshot) int {
	const lo, hi = 60, 100
	if s.rng == nil {
		return lo + rand.IntN(hi-lo+1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}

// FixedScorer always returns the same score.
type FixedScorer int

func (f FixedScorer) Score(timer.Snapshot) int { return int(f) }
