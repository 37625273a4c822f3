// Package testutil provides menu markup generators and golden file helpers.
// All generators produce deterministic output for reproducible tests.
package testutil

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
)

// MenuFixture is generated menu markup plus facts about it.
type MenuFixture struct {
	Description string
	HTML        string   // full document; the menu is <ul id="menu">
	Hrefs       []string // every link in pre-order
	Depth       int      // deepest item level, 1 for a flat menu
}

// Items returns the number of menu items.
func (f MenuFixture) Items() int { return len(f.Hrefs) }

// GeneratorConfig controls markup generation.
type GeneratorConfig struct {
	Seed       int64  // Random seed for Random (0 = 42)
	HrefPrefix string // Prepended to every generated href
	Absolute   string // Origin for absolute links, e.g. "https://example.com"
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{Seed: 42}
}

// Generator creates menu fixtures with various shapes.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

// NewDefault creates a Generator with default config.
func NewDefault() *Generator {
	return New(DefaultConfig())
}

// node is an item before rendering. path holds 1-based child indices.
type node struct {
	path     []int
	children []*node
}

func (n *node) label() string {
	parts := make([]string, len(n.path))
	for i, p := range n.path {
		parts[i] = strconv.Itoa(p)
	}
	return "Item " + strings.Join(parts, ".")
}

func (g *Generator) href(n *node) string {
	var b strings.Builder
	b.WriteString(g.cfg.Absolute)
	b.WriteString(g.cfg.HrefPrefix)
	for _, p := range n.path {
		b.WriteString("/")
		b.WriteString(strconv.Itoa(p))
	}
	b.WriteString("/")
	return b.String()
}

func child(parent *node, i int) *node {
	path := append(append([]int(nil), parent.path...), i)
	c := &node{path: path}
	parent.children = append(parent.children, c)
	return c
}

// Flat creates size top-level items without children.
func (g *Generator) Flat(size int) MenuFixture {
	root := &node{}
	for i := 1; i <= size; i++ {
		child(root, i)
	}
	return g.render(root, fmt.Sprintf("Flat menu of %d items", size))
}

// Chain creates one item per level: Item 1 > Item 1.1 > Item 1.1.1 ...
func (g *Generator) Chain(depth int) MenuFixture {
	if depth < 1 {
		depth = 1
	}
	root := &node{}
	cur := root
	for d := 0; d < depth; d++ {
		cur = child(cur, 1)
	}
	return g.render(root, fmt.Sprintf("Chain of %d levels", depth))
}

// Tree creates a complete tree: every item above depth has breadth
// children.
func (g *Generator) Tree(depth, breadth int) MenuFixture {
	if depth < 1 {
		depth = 1
	}
	if breadth < 1 {
		breadth = 1
	}
	root := &node{}
	var grow func(n *node, level int)
	grow = func(n *node, level int) {
		if level > depth {
			return
		}
		for b := 1; b <= breadth; b++ {
			grow(child(n, b), level+1)
		}
	}
	grow(root, 1)
	return g.render(root, fmt.Sprintf("Tree with depth=%d, breadth=%d", depth, breadth))
}

// Random creates an irregular tree up to maxDepth levels with at most
// maxBreadth children per item.
func (g *Generator) Random(maxDepth, maxBreadth int) MenuFixture {
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxBreadth < 1 {
		maxBreadth = 1
	}
	root := &node{}
	var grow func(n *node, level int)
	grow = func(n *node, level int) {
		if level > maxDepth {
			return
		}
		count := 1 + g.rng.Intn(maxBreadth)
		for b := 1; b <= count; b++ {
			c := child(n, b)
			if g.rng.Intn(2) == 0 {
				grow(c, level+1)
			}
		}
	}
	grow(root, 1)
	return g.render(root, fmt.Sprintf("Random tree (seed=%d, depth<=%d, breadth<=%d)", g.cfg.Seed, maxDepth, maxBreadth))
}

func (g *Generator) render(root *node, description string) MenuFixture {
	f := MenuFixture{Description: description}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><body>\n<nav>\n<ul id=\"menu\">\n")
	var walk func(n *node, indent string)
	walk = func(n *node, indent string) {
		for _, c := range n.children {
			href := g.href(c)
			f.Hrefs = append(f.Hrefs, href)
			if len(c.path) > f.Depth {
				f.Depth = len(c.path)
			}

			fmt.Fprintf(&b, "%s<li><a href=%q>%s</a>", indent, href, c.label())
			if len(c.children) > 0 {
				fmt.Fprintf(&b, "\n%s  <ul>\n", indent)
				walk(c, indent+"    ")
				fmt.Fprintf(&b, "%s  </ul>\n%s", indent, indent)
			}
			b.WriteString("</li>\n")
		}
	}
	walk(root, "  ")
	b.WriteString("</ul>\n</nav>\n</body></html>\n")

	f.HTML = b.String()
	return f
}
