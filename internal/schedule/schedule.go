// Package schedule provides cancellable deferred tasks, a debouncer built
// on them, and a fake clock for driving both deterministically in tests.
package schedule

import (
	"sort"
	"sync"
	"time"
)

// CancelFunc cancels a scheduled task. It reports whether the task was
// still pending. Calling it more than once is safe.
type CancelFunc func() bool

// Scheduler runs fn once after delay unless cancelled first.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) CancelFunc
}

// RealScheduler schedules on the wall clock.
type RealScheduler struct{}

// Schedule implements Scheduler with time.AfterFunc.
func (RealScheduler) Schedule(delay time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(delay, fn)
	return t.Stop
}

// FakeClock is a manually advanced Scheduler.
type FakeClock struct {
	mu    sync.Mutex
	now   time.Duration
	seq   int
	tasks []*fakeTask
}

type fakeTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
}

// NewFakeClock returns a clock at time zero with nothing scheduled.
func NewFakeClock() *FakeClock {
	return &FakeClock{}
}

// Schedule implements Scheduler.
func (c *FakeClock) Schedule(delay time.Duration, fn func()) CancelFunc {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	task := &fakeTask{at: c.now + delay, seq: c.seq, fn: fn}
	c.tasks = append(c.tasks, task)

	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if task.canceled || !c.pendingLocked(task) {
			return false
		}
		task.canceled = true
		c.removeLocked(task)
		return true
	}
}

// Advance moves the clock forward by d, running every task that comes due
// in deadline order. Tasks scheduled by a running task are honored if they
// fall inside the window.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d
	c.mu.Unlock()

	for {
		c.mu.Lock()
		next := c.nextDueLocked(target)
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		c.now = next.at
		c.removeLocked(next)
		c.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of scheduled tasks that have not run.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tasks)
}

// Now returns the elapsed fake time.
func (c *FakeClock) Now() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *FakeClock) nextDueLocked(target time.Duration) *fakeTask {
	sort.SliceStable(c.tasks, func(i, j int) bool {
		if c.tasks[i].at == c.tasks[j].at {
			return c.tasks[i].seq < c.tasks[j].seq
		}
		return c.tasks[i].at < c.tasks[j].at
	})
	if len(c.tasks) == 0 || c.tasks[0].at > target {
		return nil
	}
	return c.tasks[0]
}

func (c *FakeClock) pendingLocked(task *fakeTask) bool {
	for _, t := range c.tasks {
		if t == task {
			return true
		}
	}
	return false
}

func (c *FakeClock) removeLocked(task *fakeTask) {
	for i, t := range c.tasks {
		if t == task {
			c.tasks = append(c.tasks[:i], c.tasks[i+1:]...)
			return
		}
	}
}
