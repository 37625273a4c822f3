package testutil

import (
	"strings"
	"testing"
)

func TestFlat(t *testing.T) {
	f := NewDefault().Flat(3)
	if f.Items() != 3 || f.Depth != 1 {
		t.Errorf("Flat(3): %d items, depth %d", f.Items(), f.Depth)
	}
	if strings.Count(f.HTML, "<ul") != 1 {
		t.Error("flat menu should have no nested lists")
	}
	want := []string{"/1/", "/2/", "/3/"}
	for i, h := range want {
		if f.Hrefs[i] != h {
			t.Errorf("href %d = %q, want %q", i, f.Hrefs[i], h)
		}
	}
}

func TestChain(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		depth     int
		wantItems int
		wantLast  string
	}{
		{0, 1, "/1/"},
		{1, 1, "/1/"},
		{3, 3, "/1/1/1/"},
		{5, 5, "/1/1/1/1/1/"},
	}

	for _, tt := range tests {
		f := gen.Chain(tt.depth)
		if f.Items() != tt.wantItems {
			t.Errorf("Chain(%d) items = %d, want %d", tt.depth, f.Items(), tt.wantItems)
		}
		if f.Depth != tt.wantItems {
			t.Errorf("Chain(%d) depth = %d, want %d", tt.depth, f.Depth, tt.wantItems)
		}
		if last := f.Hrefs[len(f.Hrefs)-1]; last != tt.wantLast {
			t.Errorf("Chain(%d) last href = %q, want %q", tt.depth, last, tt.wantLast)
		}
	}
}

func TestTree(t *testing.T) {
	gen := NewDefault()

	tests := []struct {
		depth, breadth int
		wantItems      int
	}{
		{1, 1, 1},
		{1, 4, 4},
		{2, 2, 6},
		{3, 2, 14},
		{3, 3, 39},
	}

	for _, tt := range tests {
		f := gen.Tree(tt.depth, tt.breadth)
		if f.Items() != tt.wantItems {
			t.Errorf("Tree(%d,%d) items = %d, want %d", tt.depth, tt.breadth, f.Items(), tt.wantItems)
		}
		if f.Depth != tt.depth {
			t.Errorf("Tree(%d,%d) depth = %d", tt.depth, tt.breadth, f.Depth)
		}
		if got := strings.Count(f.HTML, "<li>"); got != tt.wantItems {
			t.Errorf("Tree(%d,%d) has %d <li>, want %d", tt.depth, tt.breadth, got, tt.wantItems)
		}
	}
}

func TestTreeMarkup(t *testing.T) {
	f := NewDefault().Tree(2, 1)
	want := `<!DOCTYPE html>
<html><body>
<nav>
<ul id="menu">
  <li><a href="/1/">Item 1</a>
    <ul>
      <li><a href="/1/1/">Item 1.1</a></li>
    </ul>
  </li>
</ul>
</nav>
</body></html>
`
	if f.HTML != want {
		t.Errorf("markup:\n%s\nwant:\n%s", f.HTML, want)
	}
}

func TestRandomIsDeterministic(t *testing.T) {
	a := New(GeneratorConfig{Seed: 7}).Random(4, 3)
	b := New(GeneratorConfig{Seed: 7}).Random(4, 3)
	if a.HTML != b.HTML {
		t.Error("same seed should produce the same menu")
	}
	if a.Depth > 4 || a.Items() == 0 {
		t.Errorf("Random(4,3): %d items, depth %d", a.Items(), a.Depth)
	}
}

func TestHrefConfig(t *testing.T) {
	f := New(GeneratorConfig{HrefPrefix: "/site", Absolute: "https://example.com"}).Chain(2)
	if f.Hrefs[1] != "https://example.com/site/1/1/" {
		t.Errorf("href = %q", f.Hrefs[1])
	}
}
