package menu

import (
	"time"

	"github.com/vanderheijden86/openmenu/pkg/clock"
)

var testEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// fakeElem is a minimal element tree; selectors match tag names.
type fakeElem struct {
	tag        string
	label      string
	href       string
	classes    map[string]bool
	children   []*fakeElem
	hidden     bool
	onActivate func()
}

func newElem(tag string) *fakeElem {
	return &fakeElem{tag: tag, classes: make(map[string]bool)}
}

func (e *fakeElem) AddClass(name string)      { e.classes[name] = true }
func (e *fakeElem) RemoveClass(name string)   { delete(e.classes, name) }
func (e *fakeElem) HasClass(name string) bool { return e.classes[name] }

func (e *fakeElem) append(children ...*fakeElem) *fakeElem {
	e.children = append(e.children, children...)
	return e
}

// list builds a <ul> holding the given entries.
func list(entries ...*fakeElem) *fakeElem {
	return newElem("ul").append(entries...)
}

// entry builds <li><a href>label</a><ul>sub...</ul></li>; the <ul> is only
// present when sub is non-empty.
func entry(label, href string, sub ...*fakeElem) *fakeElem {
	li := newElem("li")
	li.label = label
	a := newElem("a")
	a.href = href
	a.label = label
	li.append(a)
	if len(sub) > 0 {
		li.append(list(sub...))
	}
	return li
}

type fakeDoc struct{}

func (fakeDoc) find(h Handle, tag string) (*fakeElem, bool) {
	var walk func(*fakeElem) *fakeElem
	walk = func(e *fakeElem) *fakeElem {
		for _, c := range e.children {
			if c.tag == tag {
				return c
			}
			if found := walk(c); found != nil {
				return found
			}
		}
		return nil
	}
	found := walk(h.(*fakeElem))
	return found, found != nil
}

func (d fakeDoc) FirstLink(h Handle) (Handle, bool) {
	e, ok := d.find(h, "a")
	if !ok {
		return nil, false
	}
	return e, true
}

func (d fakeDoc) ChildHolder(h Handle, selector string) (Handle, bool) {
	e, ok := d.find(h, selector)
	if !ok {
		return nil, false
	}
	return e, true
}

func (fakeDoc) DirectChildren(holder Handle, selector string) []Handle {
	var out []Handle
	for _, c := range holder.(*fakeElem).children {
		if c.tag == selector {
			out = append(out, c)
		}
	}
	return out
}

func (fakeDoc) Href(link Handle) string { return link.(*fakeElem).href }

func (fakeDoc) AttachWidget(h Handle, class string, onActivate func()) Handle {
	e := h.(*fakeElem)
	w := newElem("div")
	w.AddClass(class)
	w.onActivate = onActivate
	e.children = append([]*fakeElem{w}, e.children...)
	return w
}

func (fakeDoc) Show(h Handle) { h.(*fakeElem).hidden = false }
func (fakeDoc) Hide(h Handle) { h.(*fakeElem).hidden = true }

type animCall struct {
	holder   *fakeElem
	dir      Direction
	duration time.Duration
	at       time.Time
}

// fakeAnimator shows on expand start, hides on collapse end, and completes
// after the requested duration on the fake clock.
type fakeAnimator struct {
	clock    *clock.FakeClock
	doc      fakeDoc
	calls    []animCall
	canceled int
}

type fakeEffect struct {
	a     *fakeAnimator
	timer *clock.Timer
}

func (e *fakeEffect) Cancel() {
	if e.timer.Stop() {
		e.a.canceled++
	}
}

func (a *fakeAnimator) Animate(h Handle, dir Direction, d time.Duration, done func()) Effect {
	a.calls = append(a.calls, animCall{holder: h.(*fakeElem), dir: dir, duration: d, at: a.clock.Now()})
	if dir == Expand {
		a.doc.Show(h)
	}
	return &fakeEffect{a: a, timer: a.clock.AfterFunc(d, func() {
		if dir == Collapse {
			a.doc.Hide(h)
		}
		done()
	})}
}

type fixture struct {
	tree     *Tree
	root     *fakeElem
	clock    *clock.FakeClock
	animator *fakeAnimator
}

func newFixture(root *fakeElem, opts Options) (*fixture, error) {
	c := clock.Fake(testEpoch)
	a := &fakeAnimator{clock: c}
	tree, err := Build(fakeDoc{}, root, opts, WithClock(c), WithAnimator(a))
	if err != nil {
		return nil, err
	}
	return &fixture{tree: tree, root: root, clock: c, animator: a}, nil
}

// settle runs every pending timer and effect to completion.
func (f *fixture) settle() {
	for i := 0; i < 64 && f.clock.Pending() > 0; i++ {
		f.clock.Advance(time.Hour)
	}
}

// byLabel finds the item whose link text is label.
func (f *fixture) byLabel(label string) ItemID {
	for _, id := range f.tree.Descendants(RootID) {
		if f.tree.Anchor(id).(*fakeElem).label == label {
			return id
		}
	}
	panic("no item labeled " + label)
}

func (f *fixture) elem(id ItemID) *fakeElem {
	return f.tree.Handle(id).(*fakeElem)
}

func (f *fixture) holder(id ItemID) *fakeElem {
	return f.tree.Holder(id).(*fakeElem)
}

func animatedOptions() Options {
	opts := DefaultOptions()
	opts.OpenDuration = 200 * time.Millisecond
	return opts
}
