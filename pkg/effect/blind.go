// Package effect runs blind up/down effects against a clock. It performs no
// drawing itself: renderers ask for the progress of a container and clip it
// to that fraction of its rows.
package effect

import (
	"math"
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/menu"
)

// TickInterval is the re-render interval while any effect runs.
const TickInterval = 33 * time.Millisecond

// Visibility shows and hides containers. menu.Document satisfies it.
type Visibility interface {
	Show(h menu.Handle)
	Hide(h menu.Handle)
}

// run is one in-flight effect.
type run struct {
	dir      menu.Direction
	start    time.Time
	duration time.Duration
	timer    *clock.Timer
}

// Blind is a menu.Animator. Expanding shows the container at once and
// grows it; collapsing shrinks it and hides it at the end.
//
// Like menu.Tree, a Blind belongs to one goroutine. Completion is routed
// through the dispatcher so it lands on that goroutine.
type Blind struct {
	clock    clock.Clock
	vis      Visibility
	dispatch func(func())
	ease     func(float64) float64
	runs     map[menu.Handle]*run
}

var _ menu.Animator = (*Blind)(nil)

// Option customizes a Blind.
type Option func(*Blind)

// WithDispatcher routes completions through d.
func WithDispatcher(d func(func())) Option {
	return func(b *Blind) { b.dispatch = d }
}

// WithEasing replaces the default swing curve.
func WithEasing(ease func(float64) float64) Option {
	return func(b *Blind) { b.ease = ease }
}

// NewBlind returns an effect engine driven by c.
func NewBlind(c clock.Clock, vis Visibility, opts ...Option) *Blind {
	b := &Blind{
		clock:    c,
		vis:      vis,
		dispatch: func(f func()) { f() },
		ease:     Swing,
		runs:     make(map[menu.Handle]*run),
	}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Animate starts an effect on h. A previous effect on h is replaced
// without completing.
func (b *Blind) Animate(h menu.Handle, dir menu.Direction, d time.Duration, done func()) menu.Effect {
	if prev, ok := b.runs[h]; ok {
		prev.timer.Stop()
	}
	if dir == menu.Expand {
		b.vis.Show(h)
	}

	r := &run{dir: dir, start: b.clock.Now(), duration: d}
	b.runs[h] = r
	r.timer = b.clock.AfterFunc(d, func() {
		b.dispatch(func() {
			if b.runs[h] != r {
				return
			}
			delete(b.runs, h)
			if dir == menu.Collapse {
				b.vis.Hide(h)
			}
			debug.Log("effect: %s finished", dir)
			done()
		})
	})
	debug.Log("effect: %s started for %v", dir, d)
	return &handleEffect{blind: b, h: h, r: r}
}

type handleEffect struct {
	blind *Blind
	h     menu.Handle
	r     *run
}

// Cancel stops the effect where it is. The container keeps its current
// visibility and done is never called.
func (e *handleEffect) Cancel() {
	e.r.timer.Stop()
	if e.blind.runs[e.h] == e.r {
		delete(e.blind.runs, e.h)
	}
}

// Running reports whether h has an effect in flight.
func (b *Blind) Running(h menu.Handle) bool {
	_, ok := b.runs[h]
	return ok
}

// Active reports whether any effect is in flight, meaning the renderer
// should keep ticking.
func (b *Blind) Active() bool { return len(b.runs) > 0 }

// Progress returns the visible fraction of h at now: 0 is fully rolled
// up, 1 is fully shown. Containers without an effect report 1; whether
// they are shown at all is up to their visibility.
func (b *Blind) Progress(h menu.Handle, now time.Time) float64 {
	r, ok := b.runs[h]
	if !ok {
		return 1
	}
	p := 1.0
	if r.duration > 0 {
		p = float64(now.Sub(r.start)) / float64(r.duration)
	}
	p = b.ease(math.Max(0, math.Min(1, p)))
	if r.dir == menu.Collapse {
		return 1 - p
	}
	return p
}

// Linear is the identity easing.
func Linear(p float64) float64 { return p }

// Swing eases in and out along half a cosine period.
func Swing(p float64) float64 { return 0.5 - math.Cos(p*math.Pi)/2 }
