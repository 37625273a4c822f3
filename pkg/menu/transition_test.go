package menu

import (
	"reflect"
	"sort"
	"testing"
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
)

// chainMenu is root → A → B → C → D.
func chainMenu() *fakeElem {
	return list(
		entry("A", "/a",
			entry("B", "/a/b",
				entry("C", "/a/b/c",
					entry("D", "/a/b/c/d"),
				),
			),
		),
	)
}

// siblingMenu is root → A → {B1 → X, B2 → Y}.
func siblingMenu() *fakeElem {
	return list(
		entry("A", "/a",
			entry("B1", "/a/b1", entry("X", "/a/b1/x")),
			entry("B2", "/a/b2", entry("Y", "/a/b2/y")),
		),
	)
}

func mustFixture(t *testing.T, root *fakeElem, opts Options) *fixture {
	t.Helper()
	f, err := newFixture(root, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return f
}

func TestOpenMarksClasses(t *testing.T) {
	opts := animatedOptions()
	opts.Animate = false
	f := mustFixture(t, siblingMenu(), opts)
	b1 := f.byLabel("B1")

	f.tree.Open(b1, false, false)

	if !f.elem(b1).HasClass("opened") || !f.tree.Anchor(b1).HasClass("opened") {
		t.Error("opened class should be on item and anchor")
	}
	if !f.tree.Widget(b1).HasClass("expanded") {
		t.Error("widget should be marked expanded")
	}
	if f.elem(b1).HasClass("active") {
		t.Error("active class requires makeActive")
	}
	if f.holder(b1).hidden {
		t.Error("unanimated open shows the container immediately")
	}
	if f.clock.Pending() != 0 {
		t.Error("unanimated open must not schedule anything")
	}
}

func TestOpenMakeActiveMarksAncestorsButNotRoot(t *testing.T) {
	opts := animatedOptions()
	opts.Animate = false
	f := mustFixture(t, chainMenu(), opts)
	c := f.byLabel("C")

	f.tree.Open(c, true, true)

	for _, label := range []string{"A", "B", "C"} {
		id := f.byLabel(label)
		if !f.elem(id).HasClass("active") || !f.tree.Anchor(id).HasClass("active") {
			t.Errorf("%s should be active", label)
		}
	}
	if f.elem(f.byLabel("D")).HasClass("active") {
		t.Error("descendants must not become active")
	}
	if f.root.HasClass("active") || f.root.HasClass("opened") {
		t.Error("root handle must not be marked")
	}
}

func TestOpenCascadesToAncestors(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	c := f.byLabel("C")

	f.tree.Open(c, false, false)

	for _, label := range []string{"A", "B", "C"} {
		if !f.tree.Opened(f.byLabel(label)) {
			t.Errorf("%s should be opened synchronously", label)
		}
	}
	if f.tree.Opened(f.byLabel("D")) {
		t.Error("D should stay closed")
	}
}

func TestOpenStaggersRevealByClosedAncestors(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	a, b, c := f.byLabel("A"), f.byLabel("B"), f.byLabel("C")

	f.tree.Open(c, false, false)

	want := []time.Duration{0, 200 * time.Millisecond, 400 * time.Millisecond}
	if got := f.clock.Deadlines(); !reflect.DeepEqual(got, want) {
		t.Fatalf("scheduled delays = %v, want %v", got, want)
	}

	f.settle()

	if len(f.animator.calls) != 3 {
		t.Fatalf("expected 3 reveal effects, got %d", len(f.animator.calls))
	}
	order := map[*fakeElem]time.Duration{}
	for _, call := range f.animator.calls {
		if call.dir != Expand {
			t.Errorf("unexpected %s effect", call.dir)
		}
		if call.duration != 200*time.Millisecond {
			t.Errorf("effect duration = %v, want 200ms", call.duration)
		}
		order[call.holder] = call.at.Sub(testEpoch)
	}
	if order[f.holder(a)] != 0 || order[f.holder(b)] != 200*time.Millisecond || order[f.holder(c)] != 400*time.Millisecond {
		t.Errorf("reveal start times = A:%v B:%v C:%v, want 0/200ms/400ms",
			order[f.holder(a)], order[f.holder(b)], order[f.holder(c)])
	}
	for _, id := range []ItemID{a, b, c} {
		if f.tree.State(id) != Open {
			t.Errorf("item %d state %s after settling, want open", id, f.tree.State(id))
		}
	}
}

func TestOpenNoStaggerUnderOpenParent(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	b, c := f.byLabel("B"), f.byLabel("C")

	f.tree.Open(b, false, false)
	f.settle()
	f.tree.Open(c, false, false)

	if got := f.clock.Deadlines(); !reflect.DeepEqual(got, []time.Duration{0}) {
		t.Errorf("scheduled delays = %v, want [0]", got)
	}
}

func TestDistanceToClosestOpenedAncestor(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	a, b, c, d := f.byLabel("A"), f.byLabel("B"), f.byLabel("C"), f.byLabel("D")

	tests := []struct {
		id   ItemID
		want int
	}{
		{a, 0},
		{b, 1},
		{c, 2},
		{d, 3},
		{RootID, -1},
	}
	for _, tt := range tests {
		if got := f.tree.DistanceToClosestOpenedAncestor(tt.id); got != tt.want {
			t.Errorf("distance(%d) = %d, want %d", tt.id, got, tt.want)
		}
	}

	f.tree.Open(b, true, false)
	if got := f.tree.DistanceToClosestOpenedAncestor(d); got != 1 {
		t.Errorf("distance(D) with B open = %d, want 1", got)
	}
}

func TestSingleModeClosesSiblings(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())
	b1, b2 := f.byLabel("B1"), f.byLabel("B2")

	f.tree.Open(b1, true, false)
	f.tree.Open(b2, true, false)

	if f.tree.Opened(b1) {
		t.Error("B1 should close when B2 opens in single mode")
	}
	if !f.tree.Opened(b2) {
		t.Error("B2 should be open")
	}
	if f.elem(b1).HasClass("opened") || f.tree.Widget(b1).HasClass("expanded") {
		t.Error("B1 indicators should be cleared")
	}
	if !f.holder(b1).hidden || f.holder(b2).hidden {
		t.Error("B1 container hidden and B2 container shown expected")
	}
}

func TestMultiModeKeepsSiblingsOpen(t *testing.T) {
	opts := animatedOptions()
	opts.SingleMode = false
	f := mustFixture(t, siblingMenu(), opts)
	b1, b2 := f.byLabel("B1"), f.byLabel("B2")

	f.tree.Open(b1, true, false)
	f.tree.Open(b2, true, false)

	if !f.tree.Opened(b1) || !f.tree.Opened(b2) {
		t.Error("both siblings should stay open without single mode")
	}
}

func TestCloseAnimatedCollapseHasNoDelay(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())
	b1 := f.byLabel("B1")
	f.tree.Open(b1, true, false)

	f.tree.Close(b1, false)

	if f.tree.State(b1) != Closed {
		t.Fatalf("state = %s, want closed", f.tree.State(b1))
	}
	if got := f.clock.Deadlines(); !reflect.DeepEqual(got, []time.Duration{0}) {
		t.Fatalf("collapse delays = %v, want [0]", got)
	}

	f.clock.Advance(0)
	if f.tree.State(b1) != Closing || !f.tree.Animating(b1) {
		t.Fatalf("state = %s, want closing", f.tree.State(b1))
	}
	if f.holder(b1).hidden {
		t.Error("container stays visible while the collapse runs")
	}

	f.clock.Advance(200 * time.Millisecond)
	if f.tree.State(b1) != Closed || f.tree.Animating(b1) {
		t.Errorf("state = %s, want closed", f.tree.State(b1))
	}
	if !f.holder(b1).hidden {
		t.Error("container should be hidden after the collapse")
	}
}

func TestCloseRootIsNoop(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())

	f.tree.Close(RootID, true)
	f.tree.Toggle(RootID)

	if f.tree.State(RootID) != Open {
		t.Errorf("root state = %s, want open", f.tree.State(RootID))
	}
	if f.root.hidden {
		t.Error("root container must stay visible")
	}
}

func TestToggle(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())
	a := f.byLabel("A")

	f.tree.Toggle(a)
	if !f.tree.Opened(a) {
		t.Fatal("toggle should open a closed item")
	}
	if f.clock.Pending() != 1 {
		t.Errorf("toggle should animate by default, %d pending", f.clock.Pending())
	}
	f.settle()

	f.tree.Toggle(a)
	if f.tree.Opened(a) {
		t.Fatal("toggle should close an open item")
	}
}

type treeSnapshot struct {
	States  []State
	Classes [][]string
	Hidden  []bool
}

func snapshotOf(f *fixture) treeSnapshot {
	var s treeSnapshot
	classes := func(h Handle) []string {
		if h == nil {
			return nil
		}
		var out []string
		for name := range h.(*fakeElem).classes {
			out = append(out, name)
		}
		sort.Strings(out)
		return out
	}
	for i := 0; i < f.tree.Len(); i++ {
		id := ItemID(i)
		s.States = append(s.States, f.tree.State(id))
		s.Classes = append(s.Classes, classes(f.tree.Handle(id)), classes(f.tree.Anchor(id)), classes(f.tree.Widget(id)))
		if h := f.tree.Holder(id); h != nil {
			s.Hidden = append(s.Hidden, h.(*fakeElem).hidden)
		}
	}
	return s
}

func TestOpenTwiceEqualsOnce(t *testing.T) {
	once := mustFixture(t, chainMenu(), animatedOptions())
	twice := mustFixture(t, chainMenu(), animatedOptions())
	c := once.byLabel("C")

	once.tree.Open(c, false, false)
	twice.tree.Open(c, false, false)
	twice.tree.Open(c, false, true)

	if !reflect.DeepEqual(snapshotOf(once), snapshotOf(twice)) {
		t.Fatal("second immediate open changed state")
	}
	if !reflect.DeepEqual(once.clock.Deadlines(), twice.clock.Deadlines()) {
		t.Fatal("second immediate open changed the schedule")
	}

	// Let C's reveal start, then repeat while it is in flight.
	once.clock.Advance(400 * time.Millisecond)
	twice.clock.Advance(400 * time.Millisecond)
	if !twice.tree.Animating(c) {
		t.Fatalf("expected C to be animating, state %s", twice.tree.State(c))
	}
	twice.tree.Open(c, false, true)
	twice.tree.Close(c, true)

	if !reflect.DeepEqual(snapshotOf(once), snapshotOf(twice)) {
		t.Error("requests during an in-flight reveal must be dropped")
	}
}

func TestOpenWhileClosingDropsMakeActive(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())
	b1 := f.byLabel("B1")
	f.tree.Open(b1, true, false)
	f.tree.Close(b1, false)
	f.clock.Advance(0)

	f.tree.Open(b1, true, true)

	if f.tree.State(b1) != Closing {
		t.Errorf("state = %s, want closing", f.tree.State(b1))
	}
	if f.elem(b1).HasClass("active") || f.elem(b1).HasClass("opened") {
		t.Error("rejected open must not touch classes")
	}
}

func TestUnanimatedCloseCancelsPendingReveal(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	c := f.byLabel("C")

	f.tree.Open(c, false, false)
	f.tree.Close(c, true)
	f.settle()

	if !f.holder(c).hidden {
		t.Error("a delayed reveal must not re-show a container closed afterwards")
	}
	for _, call := range f.animator.calls {
		if call.holder == f.holder(c) {
			t.Errorf("unexpected %s effect on C", call.dir)
		}
	}
	if f.tree.State(c) != Closed {
		t.Errorf("state = %s, want closed", f.tree.State(c))
	}
}

func TestCloseReplacesPendingReveal(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	c := f.byLabel("C")

	f.tree.Open(c, false, false)
	f.tree.Close(c, false)
	f.settle()

	var dirs []Direction
	for _, call := range f.animator.calls {
		if call.holder == f.holder(c) {
			dirs = append(dirs, call.dir)
		}
	}
	if !reflect.DeepEqual(dirs, []Direction{Collapse}) {
		t.Errorf("effects on C = %v, want only collapse", dirs)
	}
	if f.tree.State(c) != Closed || !f.holder(c).hidden {
		t.Errorf("C should end closed and hidden, state %s", f.tree.State(c))
	}
}

func TestCancelRunningEffectClearsAnimating(t *testing.T) {
	f := mustFixture(t, siblingMenu(), animatedOptions())
	a := f.byLabel("A")
	f.tree.Open(a, false, false)
	f.clock.Advance(0)
	if f.tree.State(a) != Opening {
		t.Fatalf("state = %s, want opening", f.tree.State(a))
	}

	f.tree.cancelAnimation(a)

	if f.tree.State(a) != Open {
		t.Errorf("state = %s, want open right after cancel", f.tree.State(a))
	}
	if f.animator.canceled != 1 {
		t.Errorf("canceled = %d, want 1", f.animator.canceled)
	}
	f.settle()
	if f.tree.State(a) != Open {
		t.Errorf("state = %s after settling, want open", f.tree.State(a))
	}
}

func TestInstantAnimatorCompletesSynchronously(t *testing.T) {
	c := clock.Fake(testEpoch)
	root := chainMenu()
	tree, err := Build(fakeDoc{}, root, animatedOptions(), WithClock(c))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := tree.Children(RootID)[0]

	tree.Open(a, false, false)
	if !tree.Pending(a) {
		t.Fatal("reveal should be pending until the timer fires")
	}
	c.Advance(0)

	if tree.State(a) != Open || tree.Pending(a) {
		t.Errorf("state = %s pending=%v, want open and idle", tree.State(a), tree.Pending(a))
	}
	if tree.Holder(a).(*fakeElem).hidden {
		t.Error("instant expand should show the container")
	}
}

func TestDispatcherReceivesCallbacks(t *testing.T) {
	c := clock.Fake(testEpoch)
	var queued []func()
	tree, err := Build(fakeDoc{}, chainMenu(), animatedOptions(),
		WithClock(c),
		WithDispatcher(func(f func()) { queued = append(queued, f) }))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := tree.Children(RootID)[0]

	tree.Open(a, false, false)
	c.Advance(0)
	if tree.State(a) != Open || len(queued) != 1 {
		t.Fatalf("timer callback should be queued, not run: state %s, queued %d", tree.State(a), len(queued))
	}

	queued[0]()
	if tree.State(a) != Opening {
		t.Errorf("completion should wait for the dispatcher; state %s", tree.State(a))
	}
	if len(queued) != 2 {
		t.Fatalf("expected the completion to be queued, got %d", len(queued))
	}
	queued[1]()
	if tree.Animating(a) {
		t.Error("item should settle after the dispatched completion")
	}
}

func TestCloseClosesOpenDescendants(t *testing.T) {
	f := mustFixture(t, chainMenu(), animatedOptions())
	a, b, c := f.byLabel("A"), f.byLabel("B"), f.byLabel("C")
	f.tree.Open(c, false, false)
	f.clock.Advance(400 * time.Millisecond)
	if !f.tree.Animating(c) {
		t.Fatalf("expected C mid-reveal, state %s", f.tree.State(c))
	}

	f.tree.Close(a, false)

	for _, id := range []ItemID{b, c} {
		if f.tree.Opened(id) || f.tree.Animating(id) {
			t.Errorf("item %d state %s, want closed", id, f.tree.State(id))
		}
		if f.elem(id).HasClass("opened") {
			t.Errorf("item %d keeps the opened class", id)
		}
	}
	if !f.holder(b).hidden || !f.holder(c).hidden {
		t.Error("descendant containers should be hidden at once")
	}
	f.settle()
	if f.tree.Opened(a) || !f.holder(a).hidden {
		t.Error("A should end closed and hidden")
	}
}

func TestRealClockCallbacksRunThroughDispatcher(t *testing.T) {
	queue := make(chan func(), 16)
	tree, err := Build(fakeDoc{}, list(entry("A", "/a", entry("B", "/a/b"))), animatedOptions(),
		WithClock(clock.Real()),
		WithDispatcher(func(f func()) { queue <- f }))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a := tree.Children(RootID)[0]

	tree.Open(a, false, false)
	if !tree.Pending(a) {
		t.Fatal("zero-delay reveal should be pending until dispatched")
	}

	// Every state change happens here, on the goroutine owning the tree.
	timeout := time.After(2 * time.Second)
	for tree.Pending(a) || tree.Animating(a) {
		select {
		case f := <-queue:
			f()
		case <-timeout:
			t.Fatalf("reveal did not settle: state %s pending=%v", tree.State(a), tree.Pending(a))
		}
	}
	if tree.State(a) != Open {
		t.Errorf("state = %s, want open", tree.State(a))
	}
	if tree.Holder(a).(*fakeElem).hidden {
		t.Error("container should be shown after the reveal")
	}
}
