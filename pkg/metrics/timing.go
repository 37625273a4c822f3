// Package metrics provides in-process instrumentation for openmenu.
//
// It records how long tree construction and href resolution take and how
// many open/close requests the state machine accepted or rejected.
// Collection is enabled by default and can be disabled via
// OPENMENU_METRICS=0. Values are kept with atomic operations because the
// terminal host reads them from its render loop while timers fire on
// their own goroutines.
//
// Usage:
//
//	func Build() {
//	    defer metrics.Timer(metrics.TreeBuild)()
//	}
package metrics

import (
	"os"
	"sync/atomic"
	"time"
)

// enabled controls whether metrics are collected.
var enabled = os.Getenv("OPENMENU_METRICS") != "0"

// Enabled returns whether metrics collection is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of metrics collection.
func SetEnabled(e bool) {
	enabled = e
}

// TimingMetric tracks timing statistics for a named operation.
type TimingMetric struct {
	name    string
	count   int64
	totalNs int64
	maxNs   int64
}

func newTimingMetric(name string) *TimingMetric {
	return &TimingMetric{name: name}
}

// Record records a single timing measurement.
func (m *TimingMetric) Record(d time.Duration) {
	if !enabled {
		return
	}
	ns := d.Nanoseconds()

	atomic.AddInt64(&m.count, 1)
	atomic.AddInt64(&m.totalNs, ns)

	for {
		old := atomic.LoadInt64(&m.maxNs)
		if ns <= old || atomic.CompareAndSwapInt64(&m.maxNs, old, ns) {
			break
		}
	}
}

// Name returns the metric name.
func (m *TimingMetric) Name() string {
	return m.name
}

// Count returns the number of recorded measurements.
func (m *TimingMetric) Count() int64 {
	return atomic.LoadInt64(&m.count)
}

// Stats returns a snapshot of the metric.
func (m *TimingMetric) Stats() TimingStats {
	count := atomic.LoadInt64(&m.count)
	totalNs := atomic.LoadInt64(&m.totalNs)
	maxNs := atomic.LoadInt64(&m.maxNs)

	var avgNs int64
	if count > 0 {
		avgNs = totalNs / count
	}

	return TimingStats{
		Name:    m.name,
		Count:   count,
		TotalMs: float64(totalNs) / 1e6,
		AvgMs:   float64(avgNs) / 1e6,
		MaxMs:   float64(maxNs) / 1e6,
	}
}

// Reset clears all recorded measurements.
func (m *TimingMetric) Reset() {
	atomic.StoreInt64(&m.count, 0)
	atomic.StoreInt64(&m.totalNs, 0)
	atomic.StoreInt64(&m.maxNs, 0)
}

// TimingStats holds a snapshot of timing statistics.
type TimingStats struct {
	Name    string  `json:"name"`
	Count   int64   `json:"count"`
	TotalMs float64 `json:"total_ms"`
	AvgMs   float64 `json:"avg_ms"`
	MaxMs   float64 `json:"max_ms"`
}

// Counter is a monotonically increasing event count.
type Counter struct {
	name  string
	value int64
}

func newCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc adds one to the counter.
func (c *Counter) Inc() {
	if !enabled {
		return
	}
	atomic.AddInt64(&c.value, 1)
}

// Value returns the current count.
func (c *Counter) Value() int64 {
	return atomic.LoadInt64(&c.value)
}

// Name returns the counter name.
func (c *Counter) Name() string {
	return c.name
}

// Reset sets the counter back to zero.
func (c *Counter) Reset() {
	atomic.StoreInt64(&c.value, 0)
}

// Timer returns a function that records elapsed time when called.
//
//	defer metrics.Timer(metrics.TreeBuild)()
func Timer(m *TimingMetric) func() {
	if !enabled || m == nil {
		return func() {}
	}
	start := time.Now()
	return func() {
		m.Record(time.Since(start))
	}
}

// Global metrics.
var (
	TreeBuild       = newTimingMetric("tree_build")
	HrefResolve     = newTimingMetric("href_resolve")
	UIRender        = newTimingMetric("ui_render")
	OpenAccepted    = newCounter("open_accepted")
	OpenRejected    = newCounter("open_rejected")
	CloseAccepted   = newCounter("close_accepted")
	CloseRejected   = newCounter("close_rejected")
	EffectsStarted  = newCounter("effects_started")
	EffectsCanceled = newCounter("effects_canceled")
)

// AllTimingMetrics returns all registered timing metrics.
func AllTimingMetrics() []*TimingMetric {
	return []*TimingMetric{TreeBuild, HrefResolve, UIRender}
}

// AllCounters returns all registered counters.
func AllCounters() []*Counter {
	return []*Counter{
		OpenAccepted, OpenRejected,
		CloseAccepted, CloseRejected,
		EffectsStarted, EffectsCanceled,
	}
}

// ResetAll resets every metric.
func ResetAll() {
	for _, m := range AllTimingMetrics() {
		m.Reset()
	}
	for _, c := range AllCounters() {
		c.Reset()
	}
}

// Snapshot is the serializable view of all metrics.
type Snapshot struct {
	Timings  []TimingStats    `json:"timings"`
	Counters map[string]int64 `json:"counters"`
}

// TakeSnapshot returns stats for timing metrics with data and every
// counter.
func TakeSnapshot() Snapshot {
	s := Snapshot{Counters: make(map[string]int64)}
	for _, m := range AllTimingMetrics() {
		if m.Count() > 0 {
			s.Timings = append(s.Timings, m.Stats())
		}
	}
	for _, c := range AllCounters() {
		s.Counters[c.Name()] = c.Value()
	}
	return s
}
