// Command openmenu renders a collapsible navigation menu from HTML markup.
//
// The menu is an HTML list (by default the first <ul> of the document).
// Interactive mode shows it in the terminal, where clicking an entry's
// affordance expands or collapses it. The print and robot modes write the
// menu's state after the initial location has been resolved.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	_ "github.com/vanderheijden86/openmenu/pkg/agents"
	"github.com/vanderheijden86/openmenu/pkg/clock"
	"github.com/vanderheijden86/openmenu/pkg/config"
	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/effect"
	"github.com/vanderheijden86/openmenu/pkg/markup"
	"github.com/vanderheijden86/openmenu/pkg/menu"
	"github.com/vanderheijden86/openmenu/pkg/ui"
	"github.com/vanderheijden86/openmenu/pkg/version"
	"github.com/vanderheijden86/openmenu/pkg/watcher"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	configPath    string
	root          string
	location      string
	pathPrefix    string
	noAnimate     bool
	animateOnLoad bool
	multi         bool
	duration      time.Duration
	watch         bool
	print         bool
	html          bool
	robotState    bool
	robotMetrics  bool
	version       bool
	help          bool

	set   map[string]bool
	input string
}

// static reports whether the menu is written once instead of run
// interactively.
func (o options) static() bool {
	return o.print || o.html || o.robotState || o.robotMetrics
}

func parseFlags(args []string, stderr io.Writer) (options, *flag.FlagSet, error) {
	var o options
	fs := flag.NewFlagSet("openmenu", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/openmenu/config.yaml)")
	fs.StringVar(&o.root, "root", "", "CSS selector of the menu root (default \"ul\")")
	fs.StringVar(&o.location, "location", "", "Current page URL; the entry linking to it starts open and active")
	fs.StringVar(&o.pathPrefix, "path-prefix", "", "Prefix prepended to every href before matching")
	fs.BoolVar(&o.noAnimate, "no-animate", false, "Open and close without effects")
	fs.BoolVar(&o.animateOnLoad, "animate-on-load", false, "Animate the entry opened for --location")
	fs.BoolVar(&o.multi, "multi", false, "Allow several open siblings (disables single mode)")
	fs.DurationVar(&o.duration, "duration", 0, "Effect length and stagger unit (default 200ms)")
	fs.BoolVar(&o.watch, "watch", false, "Rebuild the menu when the file changes (interactive only)")
	fs.BoolVar(&o.print, "print", false, "Print the visible menu once and exit")
	fs.BoolVar(&o.html, "html", false, "Print the menu markup with its classes and exit")
	fs.BoolVar(&o.robotState, "robot-state", false, "Output every item's state as JSON")
	fs.BoolVar(&o.robotMetrics, "robot-metrics", false, "Output build and transition metrics as JSON")
	fs.BoolVar(&o.version, "version", false, "Show version")
	fs.BoolVar(&o.help, "help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return o, fs, err
	}

	o.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	switch fs.NArg() {
	case 0:
		o.input = "-"
	case 1:
		o.input = fs.Arg(0)
	default:
		return o, fs, fmt.Errorf("expected one menu file, got %d", fs.NArg())
	}
	return o, fs, nil
}

// applyFlags overlays explicitly set flags on cfg.
func applyFlags(cfg config.Config, o options) config.Config {
	if o.set["root"] {
		cfg.Source.RootSelector = o.root
	}
	if o.set["location"] {
		cfg.Source.Location = o.location
	}
	if o.set["path-prefix"] {
		cfg.Menu.PathPrefix = o.pathPrefix
	}
	if o.set["no-animate"] {
		cfg.Menu.Animate = !o.noAnimate
	}
	if o.set["animate-on-load"] {
		cfg.Menu.AnimateOnLoad = o.animateOnLoad
	}
	if o.set["multi"] {
		cfg.Menu.SingleMode = !o.multi
	}
	if o.set["duration"] {
		cfg.Menu.OpenDuration = o.duration
	}
	if o.set["watch"] {
		cfg.UI.Watch = o.watch
	}
	return cfg
}

func loadConfig(o options) (config.Config, error) {
	if o.configPath != "" {
		return config.LoadFrom(o.configPath)
	}
	return config.Load()
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o, fs, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if o.help {
		fmt.Fprintln(stdout, "Usage: openmenu [options] [menu.html|-]")
		fmt.Fprintln(stdout, "\nA collapsible navigation menu for the terminal.")
		fmt.Fprintln(stdout, "Reads the menu from stdin when no file is given.")
		fmt.Fprintln(stdout)
		fs.SetOutput(stdout)
		fs.PrintDefaults()
		return 0
	}
	if o.version {
		fmt.Fprintf(stdout, "openmenu %s\n", version.Version)
		return 0
	}

	cfg, err := loadConfig(o)
	if err != nil {
		if o.configPath != "" {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
		// Non-fatal: continue without config
		fmt.Fprintf(stderr, "Warning: %v (using defaults)\n", err)
		cfg = config.DefaultConfig()
	}
	cfg = applyFlags(cfg, o)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	doc, root, err := loadDocument(o.input, stdin, cfg.Source.RootSelector)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	interactive := !o.static() && isTerminal(stdout)
	if !interactive {
		if err := runStatic(o, cfg, doc, root, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := runInteractive(o, cfg, doc, root); err != nil {
		fmt.Fprintf(stderr, "Error running openmenu: %v\n", err)
		return 1
	}
	return 0
}

func loadDocument(path string, stdin io.Reader, rootSelector string) (*markup.Document, *markup.Element, error) {
	r := stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, fmt.Errorf("opening menu: %w", err)
		}
		defer f.Close()
		r = f
	}

	doc, err := markup.Parse(r)
	if err != nil {
		return nil, nil, err
	}
	root, err := doc.Root(rootSelector)
	if err != nil {
		return nil, nil, err
	}
	return doc, root, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// runStatic resolves the initial state without effects and writes it once.
func runStatic(o options, cfg config.Config, doc *markup.Document, root *markup.Element, w io.Writer) error {
	opts := cfg.Menu
	opts.Animate = false

	tree, err := menu.New(doc, root, cfg.Source.Location, opts)
	if err != nil {
		return err
	}

	view := ui.NewMenuView(tree, doc, nil, ui.DefaultTheme(ui.NewRenderer(cfg.UI.Theme)))
	view.SetGlyphs(cfg.UI.CollapsedGlyph, cfg.UI.ExpandedGlyph)
	view.SetLocation(cfg.Source.Location)

	switch {
	case o.robotState:
		return writeJSON(w, robotState(tree, doc, cfg.Source.Location))
	case o.robotMetrics:
		view.Render(view.Rows(time.Now()))
		return writeJSON(w, robotMetrics())
	case o.html:
		out, err := doc.OuterHTML(root)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	default:
		_, err := fmt.Fprintln(w, ui.RenderPlain(view.Rows(time.Now())))
		return err
	}
}

// host holds what every interactive build of the menu shares.
type host struct {
	cfg    config.Config
	clock  clock.Clock
	bridge *ui.Bridge
	theme  ui.Theme
}

// buildView builds an animated menu over doc.
func (h host) buildView(doc *markup.Document, root *markup.Element) (*ui.MenuView, error) {
	blind := effect.NewBlind(h.clock, doc, effect.WithDispatcher(h.bridge.Dispatch))

	tree, err := menu.New(doc, root, h.cfg.Source.Location, h.cfg.Menu,
		menu.WithClock(h.clock),
		menu.WithAnimator(blind),
		menu.WithDispatcher(h.bridge.Dispatch),
	)
	if err != nil {
		return nil, err
	}
	debug.Log("openmenu: built %d items", tree.Len()-1)

	view := ui.NewMenuView(tree, doc, blind, h.theme)
	view.SetGlyphs(h.cfg.UI.CollapsedGlyph, h.cfg.UI.ExpandedGlyph)
	view.SetLocation(h.cfg.Source.Location)
	return view, nil
}

// reload reads path again and builds a fresh view.
func (h host) reload(path string) (*ui.MenuView, error) {
	doc, root, err := loadDocument(path, nil, h.cfg.Source.RootSelector)
	if err != nil {
		return nil, err
	}
	return h.buildView(doc, root)
}

func runInteractive(o options, cfg config.Config, doc *markup.Document, root *markup.Element) error {
	h := host{
		cfg:    cfg,
		clock:  clock.Real(),
		bridge: ui.NewBridge(),
		theme:  ui.DefaultTheme(ui.NewRenderer(cfg.UI.Theme)),
	}
	view, err := h.buildView(doc, root)
	if err != nil {
		return err
	}

	title := "openmenu"
	if o.input != "-" {
		title += " · " + filepath.Base(o.input)
	}
	modelOpts := ui.Options{Title: title, Clock: h.clock, Bridge: h.bridge}

	if cfg.UI.Watch && o.input != "-" {
		w, err := watcher.New(o.input, watcher.WithOnError(func(err error) {
			debug.Log("openmenu: watch %s: %v", o.input, err)
		}))
		if err != nil {
			return err
		}
		if err := w.Start(context.Background()); err != nil {
			return fmt.Errorf("watching %s: %w", o.input, err)
		}
		defer w.Stop()
		modelOpts.Watcher = w
		modelOpts.Reload = func() (*ui.MenuView, error) { return h.reload(o.input) }
	}
	m := ui.NewModel(view, modelOpts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithoutSignalHandler()}
	if cfg.MouseEnabled() {
		progOpts = append(progOpts, tea.WithMouseCellMotion())
	}
	if o.input == "-" {
		// The menu came in on stdin; read keys from the terminal instead.
		progOpts = append(progOpts, tea.WithInputTTY())
	}
	return runTUIProgram(m, progOpts...)
}

func runTUIProgram(m ui.Model, opts ...tea.ProgramOption) error {
	p := tea.NewProgram(m, opts...)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// Optional auto-quit for automated tests: set OPENMENU_TUI_AUTOCLOSE_MS.
	if v := os.Getenv("OPENMENU_TUI_AUTOCLOSE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			go func() {
				timer := time.NewTimer(time.Duration(ms) * time.Millisecond)
				defer timer.Stop()

				select {
				case <-runDone:
					return
				case <-timer.C:
				}

				p.Quit()
			}()
		}
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
