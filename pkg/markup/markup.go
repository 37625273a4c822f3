// Package markup adapts an HTML document to the menu's query and rendering
// contract. Elements are located with CSS selectors, indicator classes live
// in the class attribute, and hidden elements carry an inline
// "display: none" declaration, so the mutated document can be written back
// out as HTML.
package markup

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vanderheijden86/openmenu/pkg/menu"
)

// ErrNoRoot is returned when the root selector matches nothing.
var ErrNoRoot = errors.New("markup: root selector matched no element")

// Element is a menu.Handle backed by an HTML node.
type Element struct {
	sel *goquery.Selection
}

func (e *Element) AddClass(name string)      { e.sel.AddClass(name) }
func (e *Element) RemoveClass(name string)   { e.sel.RemoveClass(name) }
func (e *Element) HasClass(name string) bool { return e.sel.HasClass(name) }

// Node returns the underlying HTML node.
func (e *Element) Node() *html.Node { return e.sel.Get(0) }

// Text returns the element's text with surrounding whitespace removed.
func (e *Element) Text() string { return strings.TrimSpace(e.sel.Text()) }

// Attr returns the value of the named attribute.
func (e *Element) Attr(name string) (string, bool) { return e.sel.Attr(name) }

// Document is a parsed HTML document. It implements menu.Document.
type Document struct {
	doc      *goquery.Document
	elements map[*html.Node]*Element
	widgets  map[*html.Node]func()
}

var _ menu.Document = (*Document)(nil)

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("markup: parse: %w", err)
	}
	return &Document{
		doc:      doc,
		elements: make(map[*html.Node]*Element),
		widgets:  make(map[*html.Node]func()),
	}, nil
}

// ParseString is Parse for an in-memory document.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ValidateSelector reports whether s is a usable CSS selector.
func ValidateSelector(s string) error {
	if _, err := cascadia.Compile(s); err != nil {
		return fmt.Errorf("markup: selector %q: %w", s, err)
	}
	return nil
}

// Root returns the first element matching selector.
func (d *Document) Root(selector string) (*Element, error) {
	if err := ValidateSelector(selector); err != nil {
		return nil, err
	}
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoRoot, selector)
	}
	return d.element(sel.Get(0)), nil
}

// element returns the cached Element for n so that a node always maps to
// the same handle.
func (d *Document) element(n *html.Node) *Element {
	if e, ok := d.elements[n]; ok {
		return e
	}
	e := &Element{sel: d.doc.FindNodes(n)}
	if e.sel.Length() == 0 {
		e.sel = goquery.NewDocumentFromNode(n).Selection
	}
	d.elements[n] = e
	return e
}

func (d *Document) selection(h menu.Handle) *goquery.Selection {
	return h.(*Element).sel
}

// FirstLink returns the first <a> descendant of h.
func (d *Document) FirstLink(h menu.Handle) (menu.Handle, bool) {
	a := d.selection(h).Find("a").First()
	if a.Length() == 0 {
		return nil, false
	}
	return d.element(a.Get(0)), true
}

// ChildHolder returns the first descendant of h matching selector.
func (d *Document) ChildHolder(h menu.Handle, selector string) (menu.Handle, bool) {
	holder := d.selection(h).Find(selector).First()
	if holder.Length() == 0 {
		return nil, false
	}
	return d.element(holder.Get(0)), true
}

// DirectChildren returns the element children of holder matching selector.
func (d *Document) DirectChildren(holder menu.Handle, selector string) []menu.Handle {
	var out []menu.Handle
	d.selection(holder).ChildrenFiltered(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.element(s.Get(0)))
	})
	return out
}

// Href returns the href attribute of link as written.
func (d *Document) Href(link menu.Handle) string {
	href, _ := d.selection(link).Attr("href")
	return href
}

// AttachWidget prepends a <span class="class"> to h and registers
// onActivate as its click handler.
func (d *Document) AttachWidget(h menu.Handle, class string, onActivate func()) menu.Handle {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     atom.Span.String(),
		DataAtom: atom.Span,
	}
	d.selection(h).PrependNodes(n)
	w := d.element(n)
	w.AddClass(class)
	d.widgets[n] = onActivate
	return w
}

// Click activates the widget h. It reports false when h is not a widget.
func (d *Document) Click(h menu.Handle) bool {
	e, ok := h.(*Element)
	if !ok {
		return false
	}
	onActivate, ok := d.widgets[e.Node()]
	if !ok {
		return false
	}
	onActivate()
	return true
}

// IsWidget reports whether h was created by AttachWidget.
func (d *Document) IsWidget(h menu.Handle) bool {
	e, ok := h.(*Element)
	if !ok {
		return false
	}
	_, ok = d.widgets[e.Node()]
	return ok
}

// Show removes the display declaration hiding h.
func (d *Document) Show(h menu.Handle) {
	setDisplayNone(d.selection(h), false)
}

// Hide adds "display: none" to the inline style of h.
func (d *Document) Hide(h menu.Handle) {
	setDisplayNone(d.selection(h), true)
}

// Visible reports whether h and all its ancestors are displayed.
func (d *Document) Visible(h menu.Handle) bool {
	for n := h.(*Element).Node(); n != nil; n = n.Parent {
		if n.Type == html.ElementNode && hiddenStyle(attr(n, "style")) {
			return false
		}
	}
	return true
}

// Hidden reports whether h itself carries "display: none".
func (d *Document) Hidden(h menu.Handle) bool {
	style, _ := d.selection(h).Attr("style")
	return hiddenStyle(style)
}

// HTML renders the whole document.
func (d *Document) HTML() (string, error) {
	return goquery.OuterHtml(d.doc.Selection)
}

// OuterHTML renders h and its descendants.
func (d *Document) OuterHTML(h menu.Handle) (string, error) {
	return goquery.OuterHtml(d.selection(h))
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
