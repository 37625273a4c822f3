package clock

import (
	"sort"
	"sync"
	"time"
)

// FakeClock is a deterministic Clock. Time stands still until Advance is
// called; AfterFunc callbacks run synchronously inside Advance in deadline
// order, ties broken by registration order.
//
// Callbacks may register new timers. A timer registered during Advance
// whose deadline falls inside the advanced window fires in the same call.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	seq     uint64
	waiters []*fakeWaiter
}

type fakeWaiter struct {
	deadline time.Time
	seq      uint64
	callback func()
	stopped  bool
	fired    bool
}

// Fake returns a FakeClock set to initial.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to run once the clock reaches now+d.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) *Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	if d < 0 {
		d = 0
	}
	c.seq++
	w := &fakeWaiter{
		deadline: c.current.Add(d),
		seq:      c.seq,
		callback: f,
	}
	c.waiters = append(c.waiters, w)

	return &Timer{stopFunc: func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		if w.stopped || w.fired {
			return false
		}
		w.stopped = true
		return true
	}}
}

// Advance moves the clock forward by d and fires every timer whose
// deadline is not after the new time. While a callback runs, Now reports
// that timer's deadline. Advance(0) flushes zero-delay timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.current.Add(d)
	c.mu.Unlock()

	for {
		w := c.nextExpired(target)
		if w == nil {
			break
		}
		w.callback()
	}

	c.mu.Lock()
	c.current = target
	c.mu.Unlock()
}

// nextExpired pops the earliest expired, live waiter.
func (c *FakeClock) nextExpired(target time.Time) *fakeWaiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.waiters[:0]
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			live = append(live, w)
		}
	}
	c.waiters = live

	sort.SliceStable(c.waiters, func(i, j int) bool {
		if c.waiters[i].deadline.Equal(c.waiters[j].deadline) {
			return c.waiters[i].seq < c.waiters[j].seq
		}
		return c.waiters[i].deadline.Before(c.waiters[j].deadline)
	})

	if len(c.waiters) == 0 || c.waiters[0].deadline.After(target) {
		return nil
	}
	w := c.waiters[0]
	w.fired = true
	c.waiters = c.waiters[1:]
	if w.deadline.After(c.current) {
		c.current = w.deadline
	}
	return w
}

// Pending returns the number of timers that have neither fired nor been
// stopped.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			n++
		}
	}
	return n
}

// Deadlines returns the delay from now to each pending timer, in firing
// order.
func (c *FakeClock) Deadlines() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	var pending []*fakeWaiter
	for _, w := range c.waiters {
		if !w.stopped && !w.fired {
			pending = append(pending, w)
		}
	}
	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].deadline.Equal(pending[j].deadline) {
			return pending[i].seq < pending[j].seq
		}
		return pending[i].deadline.Before(pending[j].deadline)
	})
	out := make([]time.Duration, len(pending))
	for i, w := range pending {
		out[i] = w.deadline.Sub(c.current)
	}
	return out
}
