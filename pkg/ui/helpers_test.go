package ui

import (
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestTruncate_WidthSafe(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{name: "zero max", input: "hello", maxWidth: 0, want: ""},
		{name: "fits", input: "hello", maxWidth: 10, want: "hello"},
		{name: "exact", input: "hello", maxWidth: 5, want: "hello"},
		{name: "ellipsis", input: "documentation", maxWidth: 6, want: "docum…"},
		{name: "wide runes", input: "日本語のメニュー", maxWidth: 7, want: "日本語…"},
		{name: "only ellipsis fits", input: "menu", maxWidth: 1, want: "…"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Fatalf("truncate(%q, %d) = %q; want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Fatalf("truncate output is not valid UTF-8: %q", got)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Fatalf("truncate output is %d cells wide; max %d", w, tt.maxWidth)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("日本", 3); got != "日本" {
		t.Errorf("padRight should not shrink wide text, got %q", got)
	}
}

func TestCollapseSpace(t *testing.T) {
	if got := collapseSpace("  Getting\n\t started  "); got != "Getting started" {
		t.Errorf("collapseSpace = %q", got)
	}
}
