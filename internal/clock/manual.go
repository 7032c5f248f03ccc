package clock

import (
	"sync"
	"time"
)

// Manual is a tick source driven by the caller. Tests use it to deliver
// ticks deterministically.
type Manual struct {
	mu       sync.Mutex
	gen      uint64
	armed    bool
	arms     int
	disarms  int
	lastTick time.Time
}

func NewManual() *Manual { return &Manual{} }

func (m *Manual) Arm(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen = gen
	m.armed = true
	m.arms++
}

func (m *Manual) Disarm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.armed {
		m.disarms++
	}
	m.armed = false
}

// Fire returns a tick for the current arming. ok is false while disarmed.
func (m *Manual) Fire(at time.Time) (tick Tick, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.armed {
		return Tick{}, false
	}
	m.lastTick = at
	return Tick{Gen: m.gen, At: at}, true
}

// Next fires one second after the previous tick.
func (m *Manual) Next() (Tick, bool) {
	m.mu.Lock()
	at := m.lastTick
	m.mu.Unlock()
	if at.IsZero() {
		at = time.Unix(0, 0).UTC()
	}
	return m.Fire(at.Add(time.Second))
}

func (m *Manual) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.armed
}

func (m *Manual) Gen() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gen
}

// Arms and Disarms count calls that changed the armed state.
func (m *Manual) Arms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.arms
}

func (m *Manual) Disarms() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.disarms
}
