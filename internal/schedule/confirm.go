package schedule

import (
	"sync"
	"time"
)

// Outcome is the result of a confirmation request.
type Outcome int

const (
	// Armed means the request was recorded and must be repeated to commit.
	Armed Outcome = iota
	// Committed means the request confirmed an armed action.
	Committed
)

func (o Outcome) String() string {
	if o == Committed {
		return "committed"
	}
	return "armed"
}

// DefaultConfirmWindow is how long an armed action waits for its second click.
const DefaultConfirmWindow = 3 * time.Second

// Confirm is a two-step confirmation machine for destructive actions:
// idle -> armed (expires after a window) -> committed.
type Confirm struct {
	sched  Scheduler
	window time.Duration

	mu     sync.Mutex
	armed  string
	cancel CancelFunc
	gen    uint64
}

// NewConfirm returns an idle confirmation machine.
func NewConfirm(sched Scheduler, window time.Duration) *Confirm {
	if sched == nil {
		sched = RealScheduler{}
	}
	if window <= 0 {
		window = DefaultConfirmWindow
	}
	return &Confirm{sched: sched, window: window}
}

// Request arms key, or commits it when key is already armed. Requesting a
// different key re-arms with that key.
func (c *Confirm) Request(key string) Outcome {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.armed == key && key != "" {
		c.resetLocked()
		return Committed
	}

	c.resetLocked()
	c.armed = key
	gen := c.gen
	c.cancel = c.sched.Schedule(c.window, func() { c.expire(gen) })
	return Armed
}

// ArmedKey returns the currently armed key, or "" when idle.
func (c *Confirm) ArmedKey() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Reset returns to idle.
func (c *Confirm) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetLocked()
}

func (c *Confirm) expire(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == c.gen {
		c.armed = ""
		c.cancel = nil
	}
}

func (c *Confirm) resetLocked() {
	c.gen++
	c.armed = ""
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
