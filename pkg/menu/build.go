package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
)

// StructuralError reports source markup that cannot form a menu.
type StructuralError struct {
	// Path holds the child indices from the root to the offending item.
	Path   []int
	Reason string
}

func (e *StructuralError) Error() string {
	parts := make([]string, len(e.Path))
	for i, p := range e.Path {
		parts[i] = strconv.Itoa(p)
	}
	return fmt.Sprintf("menu: item %s: %s", strings.Join(parts, "/"), e.Reason)
}

// ErrNoDispatcher is returned by Build for an animated tree whose clock
// fires callbacks on other goroutines when no Dispatcher was given.
var ErrNoDispatcher = errors.New("menu: animation on a concurrent clock requires WithDispatcher")

// BuildOption customizes Build.
type BuildOption func(*Tree)

// WithClock sets the clock used to defer effects. The default is
// clock.Real().
func WithClock(c clock.Clock) BuildOption {
	return func(t *Tree) { t.clock = c }
}

// WithAnimator sets the effect engine. The default applies the final
// visibility immediately.
func WithAnimator(a Animator) BuildOption {
	return func(t *Tree) { t.animator = a }
}

// WithDispatcher sets how timer and effect callbacks reach the goroutine
// that owns the tree. It is required when Options.Animate is set and the
// clock is not synchronous (see clock.Synchronous).
func WithDispatcher(d Dispatcher) BuildOption {
	return func(t *Tree) { t.dispatch = d }
}

// Build constructs the item tree from root and its descendants. root
// becomes the always-open root item and is its own child container. Every
// other item must contain a link; an item without one fails the build with
// a *StructuralError. An animated tree on the real clock without a
// Dispatcher fails with ErrNoDispatcher.
func Build(doc Document, root Handle, opts Options, buildOpts ...BuildOption) (*Tree, error) {
	defer metrics.Timer(metrics.TreeBuild)()
	defer debug.LogEnterExit("menu.Build")()

	t := &Tree{
		opts:  opts.withDefaults(),
		doc:   doc,
		clock: clock.Real(),
	}
	for _, o := range buildOpts {
		o(t)
	}
	if t.dispatch == nil {
		if t.opts.Animate && !clock.Synchronous(t.clock) {
			return nil, ErrNoDispatcher
		}
		t.dispatch = inline
	}
	if t.animator == nil {
		t.animator = instantAnimator{doc: doc}
	}

	if _, err := t.add(root, NoItem, nil); err != nil {
		return nil, err
	}
	debug.Log("menu: built %d items", len(t.items))
	return t, nil
}

// add appends the item for h and, recursively, its children. IDs are
// assigned in pre-order.
func (t *Tree) add(h Handle, parent ItemID, path []int) (ItemID, error) {
	id := ItemID(len(t.items))
	it := item{
		handle: h,
		parent: parent,
		state:  Closed,
	}

	if parent == NoItem {
		it.state = Open
		it.holder = h
	} else {
		it.level = t.items[parent].level + 1

		anchor, ok := t.doc.FirstLink(h)
		if !ok {
			return NoItem, &StructuralError{
				Path:   append([]int(nil), path...),
				Reason: "item has no link",
			}
		}
		it.anchor = anchor

		if holder, ok := t.doc.ChildHolder(h, t.opts.ChildHolderSelector); ok {
			it.holder = holder
			t.doc.Hide(holder)
		}
	}
	t.items = append(t.items, it)

	if t.items[id].holder == nil {
		return id, nil
	}

	var children []ItemID
	for i, child := range t.doc.DirectChildren(t.items[id].holder, t.opts.ChildSelector) {
		childID, err := t.add(child, id, append(path, i))
		if err != nil {
			return NoItem, err
		}
		children = append(children, childID)
	}
	t.items[id].children = children

	if len(children) > 0 && parent != NoItem {
		t.items[id].widget = t.doc.AttachWidget(h, t.opts.WidgetClass, func() { t.Toggle(id) })
		h.AddClass(t.opts.ParentClass)
	}
	return id, nil
}
