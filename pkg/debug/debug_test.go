package debug

import (
	"bytes"
	"strings"
	"testing"
)

func TestLogDisabledWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetEnabled(false)

	Log("hidden %d", 1)
	LogIf(true, "hidden")
	LogEnterExit("hidden")()

	if buf.Len() != 0 {
		t.Errorf("expected no output while disabled, got %q", buf.String())
	}
}

func TestLogEnabled(t *testing.T) {
	var buf bytes.Buffer
	SetEnabled(true)
	SetOutput(&buf)
	defer SetEnabled(false)

	Log("open %d", 3)
	LogIf(false, "skipped")
	LogEnterExit("Build")()

	out := buf.String()
	if !strings.Contains(out, "open 3") {
		t.Errorf("missing log line, got %q", out)
	}
	if strings.Contains(out, "skipped") {
		t.Errorf("LogIf(false) wrote output: %q", out)
	}
	if !strings.Contains(out, "-> Build") || !strings.Contains(out, "<- Build") {
		t.Errorf("missing enter/exit lines, got %q", out)
	}
}
