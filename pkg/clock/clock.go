// Package clock abstracts timers so animation scheduling can run against
// the wall clock in the terminal host and against a deterministic fake in
// tests.
//
// Production code injects Real(); tests inject Fake() and move time with
// Advance:
//
//	c := clock.Fake(time.Unix(0, 0))
//	tree, _ := menu.Build(doc, root, opts, menu.WithClock(c))
//	tree.Open(id, false, false)
//	c.Advance(200 * time.Millisecond) // fires the reveal deterministically
package clock

import "time"

// Clock is the subset of the time package the menu needs.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for d, then calls f. The returned Timer cancels the
	// pending call. A non-positive d still defers f (real clock) or runs it
	// on the next Advance (fake clock); it never runs f before returning.
	AfterFunc(d time.Duration, f func()) *Timer
}

// Timer is a pending AfterFunc call.
type Timer struct {
	stopFunc func() bool
}

// Stop prevents the timer from firing. Returns true if the call stopped
// the timer, false if it already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.stopFunc == nil {
		return false
	}
	return t.stopFunc()
}

// Synchronous reports whether c runs AfterFunc callbacks on the goroutine
// that advances it. Only FakeClock does; the real clock runs each callback
// on a goroutine of its own.
func Synchronous(c Clock) bool {
	_, ok := c.(*FakeClock)
	return ok
}

type realClock struct{}

// Real returns a Clock backed by the time package.
func Real() Clock { return realClock{} }

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) *Timer {
	if d < 0 {
		d = 0
	}
	t := time.AfterFunc(d, f)
	return &Timer{stopFunc: t.Stop}
}
