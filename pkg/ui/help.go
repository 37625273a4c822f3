package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

const helpMarkdown = `# openmenu

**Mouse**

- Click ` + "`▸`" + ` to expand an entry, ` + "`▾`" + ` to collapse it.
- Click a label to copy its link target.
- Scroll with the wheel.

**Keys**

| Key | Action |
|-----|--------|
| ↑/↓, pgup/pgdn | Scroll |
| ? | Toggle this help |
| esc | Close help |
| q | Quit |

Opening an entry opens its parents; in single mode its siblings close.
`

// renderHelp renders the help text as markdown. Rendering errors fall
// back to the raw source.
func renderHelp(dark bool, width int) string {
	style := "light"
	if dark {
		style = "dark"
	}
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown)
	if err != nil {
		return helpMarkdown
	}
	// Strip trailing whitespace/newlines that glamour adds
	return strings.TrimRight(out, " \n")
}
