package main

import (
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/openmenu/pkg/markup"
	"github.com/vanderheijden86/openmenu/pkg/menu"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
	"github.com/vanderheijden86/openmenu/pkg/version"
)

// ItemState is one menu item in --robot-state output.
type ItemState struct {
	ID        int    `json:"id"`
	Parent    int    `json:"parent"`
	Level     int    `json:"level"`
	Label     string `json:"label"`
	Href      string `json:"href"`
	Target    string `json:"target,omitempty"`
	State     string `json:"state"`
	Opened    bool   `json:"opened"`
	Active    bool   `json:"active"`
	Visible   bool   `json:"visible"`
	HasWidget bool   `json:"has_widget"`
}

// StateOutput is the --robot-state document.
type StateOutput struct {
	Version  string      `json:"version"`
	Location string      `json:"location,omitempty"`
	Active   *int        `json:"active_item"`
	Items    []ItemState `json:"items"`
}

// MetricsOutput is the --robot-metrics document.
type MetricsOutput struct {
	Version string           `json:"version"`
	Enabled bool             `json:"enabled"`
	Metrics metrics.Snapshot `json:"metrics"`
}

func robotState(tree *menu.Tree, doc *markup.Document, location string) StateOutput {
	opts := tree.Options()
	out := StateOutput{Version: version.Version, Location: location, Items: []ItemState{}}

	for _, id := range tree.Descendants(menu.RootID) {
		s := ItemState{
			ID:        int(id),
			Parent:    int(tree.Parent(id)),
			Level:     tree.Level(id),
			Target:    tree.Target(id, location),
			State:     tree.State(id).String(),
			Opened:    tree.Opened(id),
			Active:    tree.Handle(id).HasClass(opts.ActiveClass),
			Visible:   doc.Visible(tree.Handle(id)),
			HasWidget: tree.HasWidget(id),
		}
		if anchor := tree.Anchor(id); anchor != nil {
			s.Href = doc.Href(anchor)
			if e, ok := anchor.(*markup.Element); ok {
				s.Label = e.Text()
			}
		}
		if s.Active {
			active := s.ID
			out.Active = &active
		}
		out.Items = append(out.Items, s)
	}
	return out
}

func robotMetrics() MetricsOutput {
	return MetricsOutput{
		Version: version.Version,
		Enabled: metrics.Enabled(),
		Metrics: metrics.TakeSnapshot(),
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
