package menu

import "time"

// Handle is an opaque reference to an element owned by the rendering
// layer. The menu never creates elements; it only flips indicator classes.
type Handle interface {
	AddClass(name string)
	RemoveClass(name string)
	HasClass(name string) bool
}

// Document is the query and rendering collaborator.
type Document interface {
	// FirstLink returns the first link descendant of h.
	FirstLink(h Handle) (Handle, bool)
	// ChildHolder returns the first descendant of h matching selector.
	ChildHolder(h Handle, selector string) (Handle, bool)
	// DirectChildren returns the immediate children of holder that match
	// selector, in source order.
	DirectChildren(holder Handle, selector string) []Handle
	// Href returns the link target of a link handle as written in the
	// source.
	Href(link Handle) string
	// AttachWidget inserts a toggle affordance as the first child of h and
	// arranges for onActivate to run when it is activated.
	AttachWidget(h Handle, class string, onActivate func()) Handle
	// Show and Hide change visibility synchronously.
	Show(h Handle)
	Hide(h Handle)
}

// Direction selects the kind of effect.
type Direction int

const (
	// Expand reveals a container (blind down).
	Expand Direction = iota
	// Collapse hides a container (blind up).
	Collapse
)

func (d Direction) String() string {
	if d == Expand {
		return "expand"
	}
	return "collapse"
}

// Animator runs visual effects.
type Animator interface {
	// Animate starts an effect on h lasting d. done is called once on
	// natural completion and never after Cancel.
	Animate(h Handle, dir Direction, d time.Duration, done func()) Effect
}

// Effect is an in-flight animation.
type Effect interface {
	Cancel()
}

// instantAnimator applies the end state of an effect immediately. It is
// the default when no Animator is configured.
type instantAnimator struct {
	doc Document
}

func (a instantAnimator) Animate(h Handle, dir Direction, _ time.Duration, done func()) Effect {
	if dir == Expand {
		a.doc.Show(h)
	} else {
		a.doc.Hide(h)
	}
	done()
	return noEffect{}
}

type noEffect struct{}

func (noEffect) Cancel() {}
