package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the host key bindings. Menu items are driven by the
// mouse; the keyboard only scrolls, shows help and quits.
type KeyMap struct {
	Help  key.Binding
	Close key.Binding
	Quit  key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
