package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/effect"
	"github.com/vanderheijden86/openmenu/pkg/watcher"
)

// headerHeight and footerHeight frame the menu body.
const (
	headerHeight = 1
	footerHeight = 1
)

// tickMsg re-renders running effects.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(effect.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ReadyTimeoutMsg is sent after a short delay to ensure the UI becomes ready
// even if the terminal doesn't send WindowSizeMsg promptly.
type ReadyTimeoutMsg struct{}

// ReadyTimeoutCmd returns a command that sends ReadyTimeoutMsg after 100ms.
func ReadyTimeoutCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return ReadyTimeoutMsg{}
	})
}

// FileChangedMsg is sent when the watched menu file changes.
type FileChangedMsg struct{}

// WatchFileCmd returns a command that waits for the next change of w.
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Options configures the host model.
type Options struct {
	Title string
	Clock clock.Clock
	// Bridge delivers timer callbacks; nil when the menu dispatches inline.
	Bridge *Bridge
	// Copy writes to the clipboard; defaults to clipboard.WriteAll.
	Copy func(string) error
	// Watcher reports source changes; Reload then builds the new view.
	// Open state starts over from the location match.
	Watcher *watcher.Watcher
	Reload  func() (*MenuView, error)
}

// Model is the Bubble Tea model hosting one menu.
type Model struct {
	view   *MenuView
	keys   KeyMap
	clock  clock.Clock
	bridge *Bridge
	copy   func(string) error
	title  string

	watcher *watcher.Watcher
	reload  func() (*MenuView, error)

	viewport viewport.Model
	rows     []Row

	width  int
	height int
	ready  bool

	showHelp bool
	helpVP   viewport.Model

	ticking       bool
	statusMsg     string
	statusIsError bool
}

// NewModel returns a model rendering view.
func NewModel(view *MenuView, opts Options) Model {
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	if opts.Copy == nil {
		opts.Copy = clipboard.WriteAll
	}
	if opts.Title == "" {
		opts.Title = "openmenu"
	}
	m := Model{
		view:     view,
		keys:     DefaultKeyMap,
		clock:    opts.Clock,
		bridge:   opts.Bridge,
		copy:     opts.Copy,
		title:    opts.Title,
		watcher:  opts.Watcher,
		reload:   opts.Reload,
		viewport: viewport.New(80, 22),
		helpVP:   viewport.New(60, 20),
		width:    80,
		height:   24,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ReadyTimeoutCmd()}
	if m.bridge != nil {
		cmds = append(cmds, m.bridge.Wait())
	}
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	if m.view.Animating() {
		cmds = append(cmds, tickCmd())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.ready = true

	case ReadyTimeoutMsg:
		m.ready = true

	case dispatchMsg:
		msg.f()
		m.refresh()
		if m.bridge != nil {
			cmds = append(cmds, m.bridge.Wait())
		}
		cmds = append(cmds, m.startTicking())

	case FileChangedMsg:
		m.reloadView()
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}
		cmds = append(cmds, m.startTicking())

	case tickMsg:
		m.refresh()
		if m.view.Animating() {
			cmds = append(cmds, tickCmd())
		} else {
			m.ticking = false
		}

	case tea.KeyMsg:
		if m.showHelp {
			switch {
			case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Quit):
				m.showHelp = false
			default:
				var cmd tea.Cmd
				m.helpVP, cmd = m.helpVP.Update(msg)
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.openHelp()
		case key.Matches(msg, m.keys.Close):
			m.statusMsg = ""
			m.statusIsError = false
		default:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))
	}

	return m, tea.Batch(cmds...)
}

// handleMouse toggles on affordance clicks and copies on label clicks.
func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.showHelp {
		var cmd tea.Cmd
		m.helpVP, cmd = m.helpVP.Update(msg)
		return cmd
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd
	case tea.MouseButtonLeft:
		if msg.Action != tea.MouseActionPress {
			return nil
		}
	default:
		return nil
	}

	index := msg.Y - headerHeight + m.viewport.YOffset
	if msg.Y < headerHeight || msg.Y >= m.height-footerHeight || index < 0 || index >= len(m.rows) {
		return nil
	}
	row := m.rows[index]

	switch m.view.HitTest(row, msg.X) {
	case ZoneWidget:
		wasOpen := row.Opened
		m.view.Activate(row.ID)
		m.statusIsError = false
		switch now := m.view.Tree().Opened(row.ID); {
		case now == wasOpen:
			m.statusMsg = fmt.Sprintf("%s is still animating", row.Label)
		case now:
			m.statusMsg = fmt.Sprintf("Expanded %s", row.Label)
		default:
			m.statusMsg = fmt.Sprintf("Collapsed %s", row.Label)
		}
		debug.Log("ui: toggled %d (%s)", row.ID, m.view.Tree().State(row.ID))
		m.refresh()
		return m.startTicking()

	case ZoneLabel:
		if row.Target == "" {
			return nil
		}
		if err := m.copy(row.Target); err != nil {
			m.statusMsg = fmt.Sprintf("Clipboard error: %v", err)
			m.statusIsError = true
		} else {
			m.statusMsg = fmt.Sprintf("Copied %s to clipboard", row.Target)
			m.statusIsError = false
		}
	}
	return nil
}

// reloadView swaps in a freshly built view. On error the current menu
// stays up.
func (m *Model) reloadView() {
	if m.reload == nil {
		return
	}
	view, err := m.reload()
	if err != nil {
		debug.Log("ui: reload failed: %v", err)
		m.statusMsg = fmt.Sprintf("Reload failed: %v", err)
		m.statusIsError = true
		return
	}
	view.SetWidth(m.width - 1)
	m.view = view
	m.statusMsg = "Menu reloaded"
	m.statusIsError = false
	m.refresh()
}

// startTicking starts the render tick if an effect runs and no tick is
// pending.
func (m *Model) startTicking() tea.Cmd {
	if m.ticking || !m.view.Animating() {
		return nil
	}
	m.ticking = true
	return tickCmd()
}

func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	bodyHeight := height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	m.viewport.Width = width
	m.viewport.Height = bodyHeight
	m.view.SetWidth(width - 1)
	if m.showHelp {
		m.openHelp()
	}
	m.refresh()
}

func (m *Model) refresh() {
	m.rows = m.view.Rows(m.clock.Now())
	m.viewport.SetContent(m.view.Render(m.rows))
}

func (m *Model) openHelp() {
	width := m.width - 8
	if width > 70 {
		width = 70
	}
	height := m.height - 6
	if height < 3 {
		height = 3
	}
	m.helpVP = viewport.New(width, height)
	m.helpVP.SetContent(renderHelp(m.view.theme.Renderer.HasDarkBackground(), width-2))
	m.showHelp = true
}

// Rows returns the rows currently on screen.
func (m Model) Rows() []Row { return m.rows }

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

// ShowingHelp reports whether the help overlay is open.
func (m Model) ShowingHelp() bool { return m.showHelp }

func (m Model) View() string {
	if !m.ready {
		return "Initializing…"
	}
	t := m.view.theme

	header := t.Header.Width(m.width).Render(truncate(m.title, m.width-2))

	if m.showHelp {
		modal := RenderModal(t, "Help", m.helpVP.View(), "esc to close", m.helpVP.Width+4)
		body := lipgloss.Place(m.width, m.viewport.Height, lipgloss.Center, lipgloss.Center, modal)
		return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), m.renderFooter())
}

func (m Model) renderFooter() string {
	t := m.view.theme
	if m.statusMsg != "" {
		style := t.StatusOK
		if m.statusIsError {
			style = t.StatusErr
		}
		return style.Render(padRight(truncate(m.statusMsg, m.width), m.width))
	}
	hints := []string{"click ▸/▾ toggle", "click label copy", "? help", "q quit"}
	return t.MutedText.Render(truncate(strings.Join(hints, " • "), m.width))
}
