package menu

import "time"

// Options configures how a menu is built and how it behaves.
type Options struct {
	// ChildHolderSelector locates an item's child container.
	ChildHolderSelector string `yaml:"child_holder_selector,omitempty"`
	// ChildSelector matches direct child items inside a container.
	ChildSelector string `yaml:"child_selector,omitempty"`
	// OpenDuration is both the stagger unit and the effect length.
	OpenDuration time.Duration `yaml:"open_duration,omitempty"`
	// Animate is the default animation policy.
	Animate bool `yaml:"animate"`

	ActiveClass         string `yaml:"active_class,omitempty"`
	OpenedClass         string `yaml:"opened_class,omitempty"`
	WidgetClass         string `yaml:"widget_class,omitempty"`
	WidgetExpandedClass string `yaml:"widget_expanded_class,omitempty"`
	ParentClass         string `yaml:"parent_class,omitempty"`

	// SingleMode keeps at most one open child per item.
	SingleMode bool `yaml:"single_mode"`
	// AnimateOnLoad animates the initial href match.
	AnimateOnLoad bool `yaml:"animate_on_load"`
	// PathPrefix is prepended to every href during normalization.
	PathPrefix string `yaml:"path_prefix,omitempty"`
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		ChildHolderSelector: "ul",
		ChildSelector:       "li",
		OpenDuration:        200 * time.Millisecond,
		Animate:             true,
		ActiveClass:         "active",
		OpenedClass:         "opened",
		WidgetClass:         "widget",
		WidgetExpandedClass: "expanded",
		ParentClass:         "parent",
		SingleMode:          true,
		AnimateOnLoad:       false,
		PathPrefix:          "",
	}
}

// withDefaults fills empty selector and class names from DefaultOptions.
// Booleans and the prefix are taken as given.
func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.ChildHolderSelector == "" {
		o.ChildHolderSelector = d.ChildHolderSelector
	}
	if o.ChildSelector == "" {
		o.ChildSelector = d.ChildSelector
	}
	if o.OpenDuration < 0 {
		o.OpenDuration = 0
	}
	if o.ActiveClass == "" {
		o.ActiveClass = d.ActiveClass
	}
	if o.OpenedClass == "" {
		o.OpenedClass = d.OpenedClass
	}
	if o.WidgetClass == "" {
		o.WidgetClass = d.WidgetClass
	}
	if o.WidgetExpandedClass == "" {
		o.WidgetExpandedClass = d.WidgetExpandedClass
	}
	if o.ParentClass == "" {
		o.ParentClass = d.ParentClass
	}
	return o
}
