package menu

import (
	"net/url"
	"regexp"

	"github.com/vanderheijden86/openmenu/pkg/debug"
	"github.com/vanderheijden86/openmenu/pkg/metrics"
)

// originPattern matches a scheme and host, e.g. "https://example.com".
var originPattern = regexp.MustCompile(`.+?://[^/]+`)

// Normalize makes href comparable across hosts and protocols: the first
// scheme+host prefix is removed and prefix is prepended.
func Normalize(prefix, href string) string {
	if loc := originPattern.FindStringIndex(href); loc != nil {
		href = href[:loc[0]] + href[loc[1]:]
	}
	return prefix + href
}

// Target returns the link target of id resolved against base, the way a
// browser reports a link's href. The root has no target. An empty href has
// none either: Document.Href reports a missing attribute and href="" the
// same way, so neither resolves to base and neither matches a location.
func (t *Tree) Target(id ItemID, base string) string {
	anchor := t.at(id).anchor
	if anchor == nil {
		return ""
	}
	return resolveAgainst(base, t.doc.Href(anchor))
}

func resolveAgainst(base, href string) string {
	if href == "" || base == "" {
		return href
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

// ResolveInitial opens the item whose link targets location. When several
// items match, the last one in pre-order wins. The match is opened without
// animation unless AnimateOnLoad is set, and is marked active.
func (t *Tree) ResolveInitial(location string) (ItemID, bool) {
	defer metrics.Timer(metrics.HrefResolve)()

	want := Normalize(t.opts.PathPrefix, location)
	match := NoItem
	for _, id := range t.Descendants(RootID) {
		if Normalize(t.opts.PathPrefix, t.Target(id, location)) == want {
			match = id
		}
	}
	if match == NoItem {
		debug.Log("menu: no item links to %q", want)
		return NoItem, false
	}

	debug.Log("menu: %q resolves to item %d", want, match)
	t.Open(match, !t.opts.AnimateOnLoad, true)
	return match, true
}

// New builds the menu rooted at root and opens the item linking to
// location.
func New(doc Document, root Handle, location string, opts Options, buildOpts ...BuildOption) (*Tree, error) {
	t, err := Build(doc, root, opts, buildOpts...)
	if err != nil {
		return nil, err
	}
	if location != "" {
		t.ResolveInitial(location)
	}
	return t, nil
}
