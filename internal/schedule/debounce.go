package schedule

import (
	"sync"
	"time"
)

// Debouncer runs fn once after a quiet period following the last Trigger.
// Each Trigger cancels the pending run and schedules a new one; a run that
// was superseded never executes, even if its timer already fired.
type Debouncer struct {
	sched Scheduler
	delay time.Duration
	fn    func()

	mu      sync.Mutex
	gen     uint64
	cancel  CancelFunc
	pending bool
	stopped bool
}

// NewDebouncer returns a debouncer that calls fn delay after the last Trigger.
func NewDebouncer(sched Scheduler, delay time.Duration, fn func()) *Debouncer {
	if sched == nil {
		sched = RealScheduler{}
	}
	return &Debouncer{sched: sched, delay: delay, fn: fn}
}

// Trigger (re)starts the quiet period.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.cancelLocked()
	d.pending = true
	gen := d.gen
	d.cancel = d.sched.Schedule(d.delay, func() { d.fire(gen) })
}

// Flush runs a pending call immediately. It is a no-op if nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.cancelLocked()
	d.pending = false
	d.mu.Unlock()

	d.fn()
}

// Cancel drops a pending call without running it and reports whether one
// was pending. Later triggers work as usual.
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	was := d.pending
	d.pending = false
	d.cancelLocked()
	return was
}

// Stop cancels any pending call and ignores future triggers.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = false
	d.cancelLocked()
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	d.pending = false
	d.cancel = nil
	d.mu.Unlock()

	d.fn()
}

// cancelLocked invalidates the scheduled run. Bumping gen covers timers
// that fired but are still waiting on d.mu.
func (d *Debouncer) cancelLocked() {
	d.gen++
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}
