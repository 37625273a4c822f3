// Package config handles loading and saving openmenu configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/openmenu/config.yaml
//
// Values are layered: DefaultConfig, then the config file, then command
// line flags (applied by the caller).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/openmenu/pkg/markup"
	"github.com/vanderheijden86/openmenu/pkg/menu"
)

// SourceConfig locates the menu inside a document.
type SourceConfig struct {
	RootSelector string `yaml:"root_selector,omitempty"` // CSS selector of the menu root
	Location     string `yaml:"location,omitempty"`      // URL the initial state resolves against
}

// UIConfig holds terminal host settings.
type UIConfig struct {
	Theme          string `yaml:"theme,omitempty"` // auto, dark, light
	Mouse          *bool  `yaml:"mouse,omitempty"`
	CollapsedGlyph string `yaml:"collapsed_glyph,omitempty"`
	ExpandedGlyph  string `yaml:"expanded_glyph,omitempty"`
	// Watch rebuilds the menu when its source file changes.
	Watch          bool   `yaml:"watch,omitempty"`
}

// Config is the top-level configuration for openmenu.
type Config struct {
	Menu   menu.Options `yaml:"menu"`
	Source SourceConfig `yaml:"source,omitempty"`
	UI     UIConfig     `yaml:"ui,omitempty"`
}

// Themes lists the accepted UI.Theme values.
var Themes = []string{"auto", "dark", "light"}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Menu: menu.DefaultOptions(),
		Source: SourceConfig{
			RootSelector: "ul",
		},
		UI: UIConfig{
			Theme:          "auto",
			CollapsedGlyph: "▸",
			ExpandedGlyph:  "▾",
		},
	}
}

// ConfigDir returns the XDG config directory for openmenu.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "openmenu")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "openmenu")
}

// ConfigPath returns the full path to config.yaml. OPENMENU_CONFIG
// overrides the XDG location.
func ConfigPath() string {
	if path := os.Getenv("OPENMENU_CONFIG"); path != "" {
		return expandHome(path)
	}
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(expandHome(path))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	path = expandHome(path)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks selectors, the duration and the theme name.
func (c Config) Validate() error {
	var errs []error
	for name, sel := range map[string]string{
		"source.root_selector":       c.Source.RootSelector,
		"menu.child_holder_selector": c.Menu.ChildHolderSelector,
		"menu.child_selector":        c.Menu.ChildSelector,
	} {
		if sel == "" {
			continue
		}
		if err := markup.ValidateSelector(sel); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if c.Menu.OpenDuration < 0 {
		errs = append(errs, fmt.Errorf("menu.open_duration: negative duration %v", c.Menu.OpenDuration))
	}
	if c.UI.Theme != "" && !validTheme(c.UI.Theme) {
		errs = append(errs, fmt.Errorf("ui.theme: %q is not one of %s", c.UI.Theme, strings.Join(Themes, ", ")))
	}
	return errors.Join(errs...)
}

// MouseEnabled reports whether the host should capture mouse clicks.
// Mouse support is on unless disabled explicitly.
func (c Config) MouseEnabled() bool {
	return c.UI.Mouse == nil || *c.UI.Mouse
}

func validTheme(name string) bool {
	for _, t := range Themes {
		if strings.EqualFold(t, name) {
			return true
		}
	}
	return false
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
