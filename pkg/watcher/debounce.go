package watcher

import (
	"sync"
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
)

// DefaultDebounceDuration covers the burst of events an editor produces
// for a single save.
const DefaultDebounceDuration = 200 * time.Millisecond

// Debouncer runs the most recently triggered function once triggers stop
// for its duration.
type Debouncer struct {
	clock    clock.Clock
	duration time.Duration

	mu    sync.Mutex
	timer *clock.Timer
}

// NewDebouncer returns a debouncer on c. A non-positive duration selects
// DefaultDebounceDuration.
func NewDebouncer(c clock.Clock, d time.Duration) *Debouncer {
	if d <= 0 {
		d = DefaultDebounceDuration
	}
	return &Debouncer{clock: c, duration: d}
}

// Trigger restarts the quiet period with f as the pending function.
func (d *Debouncer) Trigger(f func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Stop()
	d.timer = d.clock.AfterFunc(d.duration, f)
}

// Cancel drops the pending function.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timer.Stop()
	d.timer = nil
}

// Duration returns the quiet period.
func (d *Debouncer) Duration() time.Duration {
	return d.duration
}
