package effect

import (
	"math"
	"testing"
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/markup"
	"github.com/vanderheijden86/openmenu/pkg/menu"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

type box struct{ name string }

func (*box) AddClass(string)      {}
func (*box) RemoveClass(string)   {}
func (*box) HasClass(string) bool { return false }

type recorder struct {
	hidden map[menu.Handle]bool
	shows  int
	hides  int
}

func newRecorder() *recorder { return &recorder{hidden: make(map[menu.Handle]bool)} }

func (r *recorder) Show(h menu.Handle) { r.hidden[h] = false; r.shows++ }
func (r *recorder) Hide(h menu.Handle) { r.hidden[h] = true; r.hides++ }

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestBlindExpand(t *testing.T) {
	c := clock.Fake(epoch)
	vis := newRecorder()
	b := NewBlind(c, vis, WithEasing(Linear))
	h := &box{"ul"}
	vis.hidden[h] = true

	done := 0
	b.Animate(h, menu.Expand, 200*time.Millisecond, func() { done++ })

	if vis.hidden[h] {
		t.Fatal("expand should show the container immediately")
	}
	if !b.Running(h) || !b.Active() {
		t.Fatal("effect should be running")
	}
	if p := b.Progress(h, c.Now()); !near(p, 0) {
		t.Errorf("progress at start = %v, want 0", p)
	}

	c.Advance(50 * time.Millisecond)
	if p := b.Progress(h, c.Now()); !near(p, 0.25) {
		t.Errorf("progress at 50ms = %v, want 0.25", p)
	}

	c.Advance(150 * time.Millisecond)
	if done != 1 {
		t.Fatalf("done called %d times, want 1", done)
	}
	if b.Running(h) || b.Active() {
		t.Error("effect should be finished")
	}
	if p := b.Progress(h, c.Now()); p != 1 {
		t.Errorf("idle progress = %v, want 1", p)
	}
}

func TestBlindCollapseHidesAtEnd(t *testing.T) {
	c := clock.Fake(epoch)
	vis := newRecorder()
	b := NewBlind(c, vis, WithEasing(Linear))
	h := &box{"ul"}

	done := false
	b.Animate(h, menu.Collapse, 100*time.Millisecond, func() { done = true })

	c.Advance(25 * time.Millisecond)
	if p := b.Progress(h, c.Now()); !near(p, 0.75) {
		t.Errorf("progress at 25ms = %v, want 0.75", p)
	}
	if vis.hides != 0 {
		t.Error("collapse must not hide before it ends")
	}

	c.Advance(75 * time.Millisecond)
	if !done || !vis.hidden[h] {
		t.Errorf("done=%v hidden=%v, want both", done, vis.hidden[h])
	}
}

func TestBlindCancel(t *testing.T) {
	c := clock.Fake(epoch)
	vis := newRecorder()
	b := NewBlind(c, vis)
	h := &box{"ul"}

	called := false
	e := b.Animate(h, menu.Collapse, 100*time.Millisecond, func() { called = true })
	e.Cancel()
	c.Advance(time.Second)

	if called {
		t.Error("done must not run after Cancel")
	}
	if vis.hides != 0 {
		t.Error("canceled collapse must not hide")
	}
	if b.Running(h) {
		t.Error("canceled effect still running")
	}
}

func TestBlindReplacesEffectOnSameHandle(t *testing.T) {
	c := clock.Fake(epoch)
	vis := newRecorder()
	b := NewBlind(c, vis)
	h := &box{"ul"}

	var got []string
	b.Animate(h, menu.Expand, 100*time.Millisecond, func() { got = append(got, "expand") })
	c.Advance(50 * time.Millisecond)
	b.Animate(h, menu.Collapse, 100*time.Millisecond, func() { got = append(got, "collapse") })
	c.Advance(time.Second)

	if len(got) != 1 || got[0] != "collapse" {
		t.Errorf("completions = %v, want [collapse]", got)
	}
}

func TestBlindDispatchesCompletion(t *testing.T) {
	c := clock.Fake(epoch)
	vis := newRecorder()
	var queued []func()
	b := NewBlind(c, vis, WithDispatcher(func(f func()) { queued = append(queued, f) }))
	h := &box{"ul"}

	done := false
	b.Animate(h, menu.Collapse, 10*time.Millisecond, func() { done = true })
	c.Advance(10 * time.Millisecond)
	if done || vis.hides != 0 || len(queued) != 1 {
		t.Fatalf("completion should be queued: done=%v hides=%d queued=%d", done, vis.hides, len(queued))
	}
	queued[0]()
	if !done || !vis.hidden[h] {
		t.Error("queued completion should hide and call done")
	}
}

func TestSwing(t *testing.T) {
	for _, tt := range []struct{ in, want float64 }{{0, 0}, {0.5, 0.5}, {1, 1}} {
		if got := Swing(tt.in); !near(got, tt.want) {
			t.Errorf("Swing(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if Swing(0.25) >= 0.25 {
		t.Error("swing should start slower than linear")
	}
}

func TestBlindDrivesMenuTree(t *testing.T) {
	doc, err := markup.ParseString(`<ul id="m"><li><a href="/a">A</a><ul><li><a href="/a/b">B</a><ul><li><a href="/a/b/c">C</a></li></ul></li></ul></li></ul>`)
	if err != nil {
		t.Fatal(err)
	}
	root, err := doc.Root("#m")
	if err != nil {
		t.Fatal(err)
	}
	c := clock.Fake(epoch)
	blind := NewBlind(c, doc)
	tree, err := menu.Build(doc, root, menu.DefaultOptions(), menu.WithClock(c), menu.WithAnimator(blind))
	if err != nil {
		t.Fatal(err)
	}
	a := tree.Children(menu.RootID)[0]
	b := tree.Children(a)[0]

	tree.Open(b, false, false)
	c.Advance(0)
	if tree.State(a) != menu.Opening || doc.Hidden(tree.Holder(a)) {
		t.Fatalf("A should be revealing, state %s", tree.State(a))
	}
	if !doc.Hidden(tree.Holder(b)) {
		t.Fatal("B waits one duration before its reveal")
	}

	c.Advance(200 * time.Millisecond)
	if tree.State(a) != menu.Open || tree.State(b) != menu.Opening {
		t.Fatalf("states A=%s B=%s, want open/opening", tree.State(a), tree.State(b))
	}
	c.Advance(200 * time.Millisecond)
	if tree.State(b) != menu.Open || blind.Active() {
		t.Fatalf("B should settle open, state %s", tree.State(b))
	}

	tree.Close(a, false)
	c.Advance(0)
	if tree.State(a) != menu.Closing || !blind.Running(tree.Holder(a)) {
		t.Fatalf("A should be collapsing, state %s", tree.State(a))
	}
	c.Advance(200 * time.Millisecond)
	if tree.State(a) != menu.Closed || !doc.Hidden(tree.Holder(a)) {
		t.Errorf("A should end hidden, state %s", tree.State(a))
	}
}
