package menu

import (
	"time"

	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
)

// Toggle closes id if it is open and opens it otherwise, using the
// configured animation policy.
func (t *Tree) Toggle(id ItemID) {
	if t.Opened(id) {
		t.Close(id, false)
	} else {
		t.Open(id, false, false)
	}
}

// Open opens id and every closed ancestor. With SingleMode, the siblings
// of each opened item are closed. makeActive additionally marks id and
// the ancestors opened by this call as active.
//
// Open is a no-op unless id is Closed; a request that arrives while an
// effect for id is still in flight is dropped entirely, makeActive
// included.
func (t *Tree) Open(id ItemID, noAnimation, makeActive bool) {
	it := t.at(id)
	next, ok := it.state.Next(EventOpen)
	if !ok {
		debug.Log("menu: open %d rejected in state %s", id, it.state)
		metrics.OpenRejected.Inc()
		return
	}
	metrics.OpenAccepted.Inc()

	if makeActive && it.anchor != nil {
		it.handle.AddClass(t.opts.ActiveClass)
		it.anchor.AddClass(t.opts.ActiveClass)
	}
	it.handle.AddClass(t.opts.OpenedClass)
	if it.anchor != nil {
		it.anchor.AddClass(t.opts.OpenedClass)
	}
	if it.widget != nil {
		it.widget.AddClass(t.opts.WidgetExpandedClass)
	}

	animate := t.opts.Animate && !noAnimation
	// Measured before this item and its ancestors open, so deeper items
	// wait one OpenDuration for each level that opens above them.
	delay := time.Duration(t.DistanceToClosestOpenedAncestor(id)) * t.opts.OpenDuration

	it.state = next
	debug.Log("menu: open %d (level %d, animate=%v, delay=%v)", id, it.level, animate, delay)

	if it.parent != NoItem {
		t.Open(it.parent, noAnimation, makeActive)

		if t.opts.SingleMode {
			for _, sibling := range t.at(it.parent).children {
				if sibling != id {
					t.Close(sibling, noAnimation)
				}
			}
		}
	}

	if len(it.children) == 0 {
		return
	}
	if !animate {
		t.cancelAnimation(id)
		t.doc.Show(it.holder)
		return
	}
	t.scheduleAnimation(id, delay, Expand)
}

// Close closes id and any open descendants. Descendants close without
// animation since they disappear with id's container, so no hidden item
// stays opened. Reopening id therefore shows its children collapsed; the
// branches that were open below it are not restored.
//
// Close is a no-op unless id is Open, and the root never closes.
func (t *Tree) Close(id ItemID, noAnimation bool) {
	it := t.at(id)
	next, ok := it.state.Next(EventClose)
	if !ok || it.parent == NoItem {
		debug.Log("menu: close %d rejected in state %s", id, it.state)
		metrics.CloseRejected.Inc()
		return
	}
	metrics.CloseAccepted.Inc()

	animate := t.opts.Animate && !noAnimation

	it.handle.RemoveClass(t.opts.OpenedClass)
	if it.anchor != nil {
		it.anchor.RemoveClass(t.opts.OpenedClass)
	}
	if it.widget != nil {
		it.widget.RemoveClass(t.opts.WidgetExpandedClass)
	}

	it.state = next
	debug.Log("menu: close %d (animate=%v)", id, animate)

	for _, child := range it.children {
		if t.at(child).state.Opened() {
			t.cancelAnimation(child)
			t.Close(child, true)
		}
	}

	if len(it.children) == 0 {
		return
	}
	if !animate {
		t.cancelAnimation(id)
		t.doc.Hide(it.holder)
		return
	}
	// Collapse never staggers.
	t.scheduleAnimation(id, 0, Collapse)
}
