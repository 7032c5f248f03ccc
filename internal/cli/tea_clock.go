package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/studyfocus/internal/clock"
)

// tickMsg delivers one clock pulse to the focus view.
type tickMsg struct{ tick clock.Tick }

// teaClock is the timer's Clock inside a bubbletea program. Arm and Disarm
// only record state; the view turns an armed clock into a tea.Tick chain
// with next, one pulse at a time. A pulse from an earlier arming is
// rejected by the timer and not rescheduled, so at most one chain per
// arming stays alive.
type teaClock struct {
	period time.Duration
	gen    uint64
	armed  bool
}

func newTeaClock(period time.Duration) *teaClock {
	if period <= 0 {
		period = time.Second
	}
	return &teaClock{period: period}
}

func (c *teaClock) Arm(gen uint64) {
	c.gen = gen
	c.armed = true
}

func (c *teaClock) Disarm() {
	c.armed = false
}

// next schedules the pulse for the current arming, or nil when disarmed.
func (c *teaClock) next() tea.Cmd {
	if !c.armed {
		return nil
	}
	gen := c.gen
	return tea.Tick(c.period, func(at time.Time) tea.Msg {
		return tickMsg{tick: clock.Tick{Gen: gen, At: at}}
	})
}

// rearmed starts a chain if the clock was armed since prev was read.
func (c *teaClock) rearmed(prev uint64) tea.Cmd {
	if c.gen == prev {
		return nil
	}
	return c.next()
}
