package menu

import (
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
)

// scheduler is the per-item animation slot: at most one pending timer and
// at most one running effect. generation is the cancellation token; every
// new request or cancellation bumps it, and callbacks carrying an older
// generation are ignored. pending is set before the timer is armed, so it
// does not depend on when the timer handle is stored.
type scheduler struct {
	generation uint64
	pending    bool
	timer      *clock.Timer
	effect     Effect
}

// cancelAnimation invalidates the pending timer and the running effect of
// id. A canceled effect clears the animating overlay at once.
func (t *Tree) cancelAnimation(id ItemID) {
	it := t.at(id)
	s := &it.anim
	s.generation++
	s.pending = false

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.effect != nil {
		s.effect.Cancel()
		s.effect = nil
		metrics.EffectsCanceled.Inc()
		if next, ok := it.state.Next(EventEffectEnd); ok {
			it.state = next
		}
		debug.Log("menu: effect on %d canceled", id)
	}
}

// scheduleAnimation cancels whatever id has in flight and arranges for a
// dir effect to start after delay.
func (t *Tree) scheduleAnimation(id ItemID, delay time.Duration, dir Direction) {
	t.cancelAnimation(id)

	s := &t.at(id).anim
	generation := s.generation
	s.pending = true
	timer := t.clock.AfterFunc(delay, func() {
		t.dispatch(func() { t.startEffect(id, generation, dir) })
	})
	if s.pending && s.generation == generation {
		s.timer = timer
	}
	debug.Log("menu: %s of %d scheduled in %v", dir, id, delay)
}

func (t *Tree) startEffect(id ItemID, generation uint64, dir Direction) {
	it := t.at(id)
	s := &it.anim
	if s.generation != generation || !s.pending {
		return
	}
	s.pending = false
	s.timer = nil

	next, ok := it.state.Next(EventEffectStart)
	if !ok {
		return
	}
	it.state = next
	metrics.EffectsStarted.Inc()
	debug.Log("menu: %s of %d started", dir, id)

	effect := t.animator.Animate(it.holder, dir, t.opts.OpenDuration, func() {
		t.dispatch(func() { t.finishEffect(id, generation) })
	})

	// The animator may have completed synchronously.
	if s.generation == generation && it.state.Animating() {
		s.effect = effect
	}
}

func (t *Tree) finishEffect(id ItemID, generation uint64) {
	it := t.at(id)
	s := &it.anim
	if s.generation != generation || !it.state.Animating() {
		return
	}
	s.effect = nil
	if next, ok := it.state.Next(EventEffectEnd); ok {
		it.state = next
	}
	debug.Log("menu: effect on %d finished, state %s", id, it.state)
}

// Pending reports whether id has a scheduled effect that has not started.
func (t *Tree) Pending(id ItemID) bool {
	return t.at(id).anim.pending
}
