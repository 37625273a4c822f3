package ui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/openmenu/pkg/effect"
	"github.com/vanderheijden86/openmenu/pkg/markup"
	"github.com/vanderheijden86/openmenu/pkg/menu"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
)

const leafGlyph = "•"

// Row is one visible line of the menu.
type Row struct {
	ID        menu.ItemID
	Depth     int    // 0 for top-level items
	Prefix    string // branch characters, unstyled
	Glyph     string
	Label     string
	Target    string // link target resolved against the location
	HasWidget bool
	Opened    bool
	Active    bool
	Animating bool
}

// Zone is the part of a row under the pointer.
type Zone int

const (
	ZoneNone Zone = iota
	ZoneWidget
	ZoneLabel
)

// MenuView lays out the visible part of a menu. Containers hidden in the
// document are skipped; containers with a running blind effect show the
// fraction of their rows the effect has revealed.
type MenuView struct {
	tree     *menu.Tree
	doc      *markup.Document
	blind    *effect.Blind
	theme    Theme
	location string

	collapsedGlyph string
	expandedGlyph  string
	width          int
}

// NewMenuView returns a view of tree. blind may be nil when effects are
// applied instantly.
func NewMenuView(tree *menu.Tree, doc *markup.Document, blind *effect.Blind, theme Theme) *MenuView {
	return &MenuView{
		tree:           tree,
		doc:            doc,
		blind:          blind,
		theme:          theme,
		collapsedGlyph: "▸",
		expandedGlyph:  "▾",
	}
}

// SetGlyphs overrides the affordance glyphs. Empty values keep the current
// ones.
func (v *MenuView) SetGlyphs(collapsed, expanded string) {
	if collapsed != "" {
		v.collapsedGlyph = collapsed
	}
	if expanded != "" {
		v.expandedGlyph = expanded
	}
}

// SetLocation sets the URL link targets are resolved against.
func (v *MenuView) SetLocation(location string) { v.location = location }

// SetWidth sets the render width; zero disables truncation.
func (v *MenuView) SetWidth(width int) { v.width = width }

// Tree returns the menu being displayed.
func (v *MenuView) Tree() *menu.Tree { return v.tree }

// Animating reports whether any effect is still running.
func (v *MenuView) Animating() bool {
	return v.blind != nil && v.blind.Active()
}

// Rows returns the visible rows at now.
func (v *MenuView) Rows(now time.Time) []Row {
	return v.rows(menu.RootID, 0, nil, now)
}

func (v *MenuView) rows(parent menu.ItemID, depth int, pipes []bool, now time.Time) []Row {
	children := v.tree.Children(parent)
	var out []Row
	for i, id := range children {
		last := i == len(children)-1
		out = append(out, v.row(id, depth, pipes, last))

		holder := v.tree.Holder(id)
		if holder == nil || v.doc.Hidden(holder) {
			continue
		}
		var next []bool
		if depth > 0 {
			next = append(append([]bool(nil), pipes...), !last)
		}
		sub := v.rows(id, depth+1, next, now)
		out = append(out, clip(sub, v.progress(holder, now))...)
	}
	return out
}

func (v *MenuView) row(id menu.ItemID, depth int, pipes []bool, last bool) Row {
	opts := v.tree.Options()
	r := Row{
		ID:        id,
		Depth:     depth,
		HasWidget: v.tree.HasWidget(id),
		Opened:    v.tree.Opened(id),
		Active:    v.tree.Handle(id).HasClass(opts.ActiveClass),
		Animating: v.tree.Animating(id),
		Target:    v.tree.Target(id, v.location),
	}
	if anchor, ok := v.tree.Anchor(id).(*markup.Element); ok {
		r.Label = collapseSpace(anchor.Text())
	}
	if r.Label == "" {
		r.Label = r.Target
	}

	if depth > 0 {
		var b strings.Builder
		for _, pipe := range pipes {
			if pipe {
				b.WriteString(branchPipe)
			} else {
				b.WriteString(branchBlank)
			}
		}
		if last {
			b.WriteString(branchElbow)
		} else {
			b.WriteString(branchTee)
		}
		r.Prefix = b.String()
	}

	switch {
	case !r.HasWidget:
		r.Glyph = leafGlyph
	case v.tree.Widget(id).HasClass(opts.WidgetExpandedClass):
		r.Glyph = v.expandedGlyph
	default:
		r.Glyph = v.collapsedGlyph
	}
	return r
}

func (v *MenuView) progress(holder menu.Handle, now time.Time) float64 {
	if v.blind == nil {
		return 1
	}
	return v.blind.Progress(holder, now)
}

// clip keeps the leading fraction p of rows, rounding up so a started
// reveal always shows something.
func clip(rows []Row, p float64) []Row {
	if p >= 1 {
		return rows
	}
	n := int(math.Ceil(p * float64(len(rows))))
	if n < 0 {
		n = 0
	}
	return rows[:n]
}

// Render lays out rows, one per line.
func (v *MenuView) Render(rows []Row) string {
	defer metrics.Timer(metrics.UIRender)()

	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = v.renderRow(r)
	}
	return strings.Join(lines, "\n")
}

func (v *MenuView) renderRow(r Row) string {
	t := v.theme

	glyphStyle := t.Leaf
	if r.HasWidget {
		glyphStyle = t.Widget
		if r.Opened {
			glyphStyle = t.WidgetOpen
		}
	}

	labelStyle := t.Label
	switch {
	case r.Active:
		labelStyle = t.ActiveLabel
	case r.Opened:
		labelStyle = t.OpenedLabel
	}
	if r.Animating {
		labelStyle = labelStyle.Foreground(t.Animating)
	}

	label := r.Label
	if v.width > 0 {
		used := runewidth.StringWidth(r.Prefix) + runewidth.StringWidth(r.Glyph) + SpaceXS
		label = truncate(label, v.width-used)
	}

	return t.Branch.Render(r.Prefix) +
		glyphStyle.Render(r.Glyph) +
		strings.Repeat(" ", SpaceXS) +
		labelStyle.Render(label)
}

// RenderPlain lays out rows without styling, for piping and golden tests.
func RenderPlain(rows []Row) string {
	lines := make([]string, len(rows))
	for i, r := range rows {
		lines[i] = r.Prefix + r.Glyph + " " + r.Label
	}
	return strings.Join(lines, "\n")
}

// HitTest reports which part of r is at column x.
func (v *MenuView) HitTest(r Row, x int) Zone {
	start := runewidth.StringWidth(r.Prefix)
	glyphEnd := start + runewidth.StringWidth(r.Glyph)
	if x >= start && x < glyphEnd {
		if r.HasWidget {
			return ZoneWidget
		}
		return ZoneNone
	}
	labelStart := glyphEnd + SpaceXS
	if x >= labelStart && x < labelStart+lipgloss.Width(r.Label) {
		return ZoneLabel
	}
	return ZoneNone
}

// Activate clicks the toggle affordance of id.
func (v *MenuView) Activate(id menu.ItemID) bool {
	w := v.tree.Widget(id)
	if w == nil {
		return false
	}
	return v.doc.Click(w)
}
