// Package clock provides the 1 Hz tick sources that drive the focus timer.
// A source is armed with a generation number and every tick it produces
// carries that number, so a consumer can discard ticks from an earlier arming.
package clock

import (
	"sync"
	"time"

	"github.com/sourcegraph/conc"
)

// Tick is one clock pulse.
type Tick struct {
	Gen uint64
	At  time.Time
}

// Ticker is a goroutine-backed tick source. At most one producer runs at a
// time; ticks the consumer is not ready for are dropped rather than queued,
// so there is never any catch-up after a stall.
type Ticker struct {
	period time.Duration
	out    chan Tick

	mu   sync.Mutex
	stop chan struct{}
	wg   *conc.WaitGroup
}

// NewTicker returns a disarmed Ticker. A non-positive period defaults to one second.
func NewTicker(period time.Duration) *Ticker {
	if period <= 0 {
		period = time.Second
	}
	return &Ticker{
		period: period,
		out:    make(chan Tick, 1),
	}
}

// C is the channel ticks are delivered on.
func (t *Ticker) C() <-chan Tick { return t.out }

// Arm starts producing ticks tagged with gen. Arming an armed ticker
// replaces the running producer.
func (t *Ticker) Arm(gen uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.disarmLocked()

	stop := make(chan struct{})
	wg := conc.NewWaitGroup()
	t.stop = stop
	t.wg = wg
	wg.Go(func() { t.run(gen, stop) })
}

// Disarm stops the producer and waits for it to exit. No tick from the
// stopped arming is left on C afterwards.
func (t *Ticker) Disarm() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.disarmLocked()
}

// Armed reports whether a producer is running.
func (t *Ticker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

func (t *Ticker) disarmLocked() {
	if t.stop == nil {
		return
	}
	close(t.stop)
	t.wg.Wait()
	t.stop = nil
	t.wg = nil

	select {
	case <-t.out:
	default:
	}
}

func (t *Ticker) run(gen uint64, stop <-chan struct{}) {
	tk := time.NewTicker(t.period)
	defer tk.Stop()

	for {
		select {
		case <-stop:
			return
		case at := <-tk.C:
			select {
			case t.out <- Tick{Gen: gen, At: at}:
			case <-stop:
				return
			default:
				// consumer still holds the previous tick
			}
		}
	}
}
