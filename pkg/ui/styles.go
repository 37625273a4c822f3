package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
)

// Tree prefix segments. Every segment is four cells wide.
const (
	branchPipe  = "│   "
	branchBlank = "    "
	branchTee   = "├── "
	branchElbow = "└── "
)

// RenderDivider renders a horizontal divider line
func RenderDivider(t Theme, width int) string {
	if width <= 0 {
		return ""
	}
	return t.Renderer.NewStyle().
		Foreground(t.Border).
		Render(strings.Repeat("─", width))
}

// RenderModal wraps content in the rounded modal frame used by overlays.
func RenderModal(t Theme, title, content, footer string, width int) string {
	r := t.Renderer

	var b strings.Builder
	b.WriteString(r.NewStyle().Bold(true).Foreground(t.Primary).Render(title))
	b.WriteString("\n")
	b.WriteString(RenderDivider(t, width-4))
	b.WriteString("\n")
	b.WriteString(content)
	if footer != "" {
		b.WriteString("\n")
		b.WriteString(r.NewStyle().Foreground(t.Muted).Italic(true).Render(footer))
	}

	return r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Secondary).
		Padding(0, SpaceXS).
		Width(width).
		Render(b.String())
}
