// Package agents prepares the process for non-interactive invocations:
// scripts and coding agents that consume the --robot-* output.
//
// Import it for its side effect before any package that touches the
// terminal.
package agents

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal (and before any TUI starts).
//
// Lipgloss and termenv probe the terminal for its background color when
// a renderer is first used, which writes OSC/DSR control sequences to
// stdout. In captured output those sequences corrupt the JSON of the
// robot modes.
//
// Robot-mode invocations are non-interactive, so CI=1 is set early. Termenv
// uses CI to disable TTY probing.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("OPENMENU_ROBOT") == "1", os.Getenv("OPENMENU_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--robot-") || strings.HasPrefix(arg, "-robot-") {
			return true
		}
		switch arg {
		case "--version", "--help", "-version", "-help", "-h", "--print", "-print", "--html", "-html":
			return true
		}
	}

	return false
}
