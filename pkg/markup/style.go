package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// declarations splits an inline style into trimmed "prop: value" pairs,
// dropping empty entries.
func declarations(style string) []string {
	var out []string
	for _, decl := range strings.Split(style, ";") {
		if decl = strings.TrimSpace(decl); decl != "" {
			out = append(out, decl)
		}
	}
	return out
}

func property(decl string) (name, value string) {
	name, value, _ = strings.Cut(decl, ":")
	return strings.ToLower(strings.TrimSpace(name)), strings.ToLower(strings.TrimSpace(value))
}

func hiddenStyle(style string) bool {
	for _, decl := range declarations(style) {
		if name, value := property(decl); name == "display" && value == "none" {
			return true
		}
	}
	return false
}

// setDisplayNone adds or removes the display declaration of s, keeping the
// rest of its inline style.
func setDisplayNone(s *goquery.Selection, hidden bool) {
	style, _ := s.Attr("style")
	var kept []string
	for _, decl := range declarations(style) {
		if name, _ := property(decl); name != "display" {
			kept = append(kept, decl)
		}
	}
	if hidden {
		kept = append(kept, "display: none")
	}
	if len(kept) == 0 {
		s.RemoveAttr("style")
		return
	}
	s.SetAttr("style", strings.Join(kept, "; "))
}
