package ui

import tea "github.com/charmbracelet/bubbletea"

// dispatchMsg carries a callback onto the Bubble Tea goroutine.
type dispatchMsg struct{ f func() }

// Bridge moves timer and effect callbacks onto the goroutine running the
// program, which owns the menu. Pass Dispatch to menu.WithDispatcher and
// effect.WithDispatcher.
type Bridge struct {
	ch chan func()
}

// NewBridge returns a Bridge with room for a burst of pending callbacks.
func NewBridge() *Bridge {
	return &Bridge{ch: make(chan func(), 256)}
}

// Dispatch queues f. It is safe to call from any goroutine.
func (b *Bridge) Dispatch(f func()) { b.ch <- f }

// Wait returns a command that delivers the next queued callback.
func (b *Bridge) Wait() tea.Cmd {
	return func() tea.Msg {
		return dispatchMsg{f: <-b.ch}
	}
}
