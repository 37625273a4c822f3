package ui

import (
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns the given hex color for ANSI256+ terminals and a safe
// ANSI white (color 7) for 16-color or lower terminals.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

type Theme struct {
	Renderer *lipgloss.Renderer

	// Colors
	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor

	// Menu states
	Opened    lipgloss.AdaptiveColor
	Active    lipgloss.AdaptiveColor
	Animating lipgloss.AdaptiveColor

	// UI Elements
	Border    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor

	// Styles
	Base   lipgloss.Style
	Header lipgloss.Style

	// Pre-computed row styles, created once instead of per frame.
	Branch      lipgloss.Style // Tree prefix
	Widget      lipgloss.Style // Collapsed affordance
	WidgetOpen  lipgloss.Style // Expanded affordance
	Leaf        lipgloss.Style // Leaf bullet
	Label       lipgloss.Style
	OpenedLabel lipgloss.Style
	ActiveLabel lipgloss.Style
	MutedText   lipgloss.Style
	StatusOK    lipgloss.Style
	StatusErr   lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive)
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		// Dracula / Light Mode equivalent
		Primary:   lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}, // Purple
		Secondary: lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"}, // Gray
		Subtext:   lipgloss.AdaptiveColor{Light: "#666666", Dark: "#BFBFBF"}, // Dim

		Opened:    lipgloss.AdaptiveColor{Light: "#006080", Dark: "#8BE9FD"}, // Cyan
		Active:    lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}, // Green
		Animating: lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}, // Orange

		Border:    lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"},
		Highlight: lipgloss.AdaptiveColor{Light: "#E0E0E0", Dark: "#44475A"},
		Muted:     lipgloss.AdaptiveColor{Light: "#555555", Dark: "#6272A4"},
	}

	t.Base = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#F8F8F2"})

	t.Header = r.NewStyle().
		Background(t.Primary).
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#282A36"}).
		Bold(true).
		Padding(0, 1)

	t.Branch = r.NewStyle().Foreground(t.Muted)
	t.Widget = r.NewStyle().Foreground(t.Secondary).Bold(true)
	t.WidgetOpen = r.NewStyle().Foreground(t.Primary).Bold(true)
	t.Leaf = r.NewStyle().Foreground(t.Muted)
	t.Label = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#E8E8E8"})
	t.OpenedLabel = r.NewStyle().Foreground(t.Opened)
	t.ActiveLabel = r.NewStyle().Foreground(t.Active).Bold(true).Underline(true)
	t.MutedText = r.NewStyle().Foreground(t.Muted)
	t.StatusOK = r.NewStyle().Foreground(t.Active)
	t.StatusErr = r.NewStyle().Foreground(ThemeFg("#FF5555")).Bold(true)

	return t
}

// NewRenderer returns a renderer on stdout with the background forced for
// the "dark" and "light" theme names. Any other name keeps detection.
func NewRenderer(themeName string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(os.Stdout)
	switch strings.ToLower(themeName) {
	case "dark":
		r.SetHasDarkBackground(true)
	case "light":
		r.SetHasDarkBackground(false)
	}
	return r
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
