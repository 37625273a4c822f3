package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
)

// Golden file helpers

// GoldenFile handles golden file comparisons.
type GoldenFile struct {
	t      *testing.T
	dir    string
	name   string
	update bool
}

// NewGoldenFile creates a golden file helper.
// If GENERATE_GOLDEN env var is set, golden files will be updated.
func NewGoldenFile(t *testing.T, dir, name string) *GoldenFile {
	t.Helper()
	return &GoldenFile{
		t:      t,
		dir:    dir,
		name:   name,
		update: os.Getenv("GENERATE_GOLDEN") != "",
	}
}

// Path returns the full path to the golden file.
func (g *GoldenFile) Path() string {
	return filepath.Join(g.dir, g.name)
}

// Assert compares actual content against the golden file.
// If GENERATE_GOLDEN is set, updates the golden file instead.
func (g *GoldenFile) Assert(actual string) {
	g.t.Helper()

	path := g.Path()

	if g.update {
		if err := os.MkdirAll(g.dir, 0o755); err != nil {
			g.t.Fatalf("failed to create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(actual), 0o644); err != nil {
			g.t.Fatalf("failed to write golden file: %v", err)
		}
		g.t.Logf("updated golden file: %s", path)
		return
	}

	expected, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			g.t.Fatalf("golden file does not exist: %s\nRun with GENERATE_GOLDEN=1 to create it", path)
		}
		g.t.Fatalf("failed to read golden file: %v", err)
	}

	if string(expected) != actual {
		// Find first difference for helpful error message
		expectedLines := strings.Split(string(expected), "\n")
		actualLines := strings.Split(actual, "\n")

		for i := 0; i < len(expectedLines) || i < len(actualLines); i++ {
			var expLine, actLine string
			if i < len(expectedLines) {
				expLine = expectedLines[i]
			}
			if i < len(actualLines) {
				actLine = actualLines[i]
			}
			if expLine != actLine {
				g.t.Errorf("golden file mismatch at line %d:\nexpected: %s\nactual:   %s\n\nFull diff (expected vs actual):\n%s\nvs\n%s",
					i+1, expLine, actLine, string(expected), actual)
				return
			}
		}
		g.t.Errorf("golden file mismatch (length differs)")
	}
}

// AssertJSON compares actual value as JSON against the golden file.
func (g *GoldenFile) AssertJSON(actual any) {
	g.t.Helper()

	data, err := json.MarshalIndent(actual, "", "  ")
	if err != nil {
		g.t.Fatalf("failed to marshal actual value: %v", err)
	}

	g.Assert(string(data))
}

// WriteMenuFile writes html to name inside a fresh temp directory and
// returns its path.
func WriteMenuFile(t *testing.T, name, html string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		t.Fatalf("failed to write menu file: %v", err)
	}
	return path
}
