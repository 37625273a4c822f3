package menu

import (
	"fmt"

	"github.com/vanderheijden86/openmenu/pkg/clock"
)

// ItemID addresses an item in a Tree. IDs are assigned in pre-order, so
// the root is always RootID.
type ItemID int

const (
	// RootID is the synthetic top-level item.
	RootID ItemID = 0
	// NoItem is the parent of the root.
	NoItem ItemID = -1
)

// item is one node of the arena.
type item struct {
	handle   Handle
	anchor   Handle // nil for the root
	widget   Handle // nil unless the item has children and is not the root
	holder   Handle // child container; nil for a leaf without one
	parent   ItemID
	children []ItemID
	level    int
	state    State
	anim     scheduler
}

// Tree is a built menu. Node identity and edges are fixed at Build; only
// item states change afterwards, and only through Open, Close and Toggle.
type Tree struct {
	items    []item
	opts     Options
	doc      Document
	animator Animator
	clock    clock.Clock
	dispatch Dispatcher
}

// Dispatcher runs f on the goroutine that owns the tree.
type Dispatcher func(f func())

func inline(f func()) { f() }

// Options returns the options the tree was built with.
func (t *Tree) Options() Options { return t.opts }

// Len returns the number of items including the root.
func (t *Tree) Len() int { return len(t.items) }

func (t *Tree) at(id ItemID) *item {
	if id < 0 || int(id) >= len(t.items) {
		panic(fmt.Sprintf("menu: item %d out of range [0,%d)", id, len(t.items)))
	}
	return &t.items[id]
}

// IsRoot reports whether id is the root.
func (t *Tree) IsRoot(id ItemID) bool { return t.at(id).parent == NoItem }

// Parent returns the parent of id, or NoItem for the root.
func (t *Tree) Parent(id ItemID) ItemID { return t.at(id).parent }

// Children returns the children of id in source order.
func (t *Tree) Children(id ItemID) []ItemID {
	return append([]ItemID(nil), t.at(id).children...)
}

// Level returns the depth of id; the root is level 0.
func (t *Tree) Level(id ItemID) int { return t.at(id).level }

// State returns the current state of id.
func (t *Tree) State(id ItemID) State { return t.at(id).state }

// Opened reports whether id is open (including while its reveal runs).
func (t *Tree) Opened(id ItemID) bool { return t.at(id).state.Opened() }

// Animating reports whether an effect for id is in flight.
func (t *Tree) Animating(id ItemID) bool { return t.at(id).state.Animating() }

// HasChildren reports whether id has at least one child.
func (t *Tree) HasChildren(id ItemID) bool { return len(t.at(id).children) > 0 }

// HasWidget reports whether id has a toggle affordance.
func (t *Tree) HasWidget(id ItemID) bool { return t.at(id).widget != nil }

// Handle returns the element of id.
func (t *Tree) Handle(id ItemID) Handle { return t.at(id).handle }

// Anchor returns the link element of id; nil for the root.
func (t *Tree) Anchor(id ItemID) Handle { return t.at(id).anchor }

// Widget returns the toggle affordance of id, or nil.
func (t *Tree) Widget(id ItemID) Handle { return t.at(id).widget }

// Holder returns the child container of id, or nil.
func (t *Tree) Holder(id ItemID) Handle { return t.at(id).holder }

// Descendants returns the subtree of id in pre-order: id itself (unless it
// is the root) followed by each child's descendants in child order.
func (t *Tree) Descendants(id ItemID) []ItemID {
	var out []ItemID
	var walk func(ItemID)
	walk = func(cur ItemID) {
		if !t.IsRoot(cur) {
			out = append(out, cur)
		}
		for _, child := range t.at(cur).children {
			walk(child)
		}
	}
	walk(id)
	return out
}

// DistanceToClosestOpenedAncestor walks parent links from id (inclusive)
// to the nearest open item and returns id's level minus that item's level
// minus one. It is zero when the parent is the nearest open item.
func (t *Tree) DistanceToClosestOpenedAncestor(id ItemID) int {
	cur := id
	for cur != NoItem && !t.at(cur).state.Opened() {
		cur = t.at(cur).parent
	}
	diff := t.at(id).level
	if cur != NoItem {
		diff -= t.at(cur).level
	}
	return diff - 1
}
