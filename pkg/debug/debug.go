// Package debug provides conditional debug logging for openmenu.
//
// Debug logging is enabled by setting the OPENMENU_DEBUG environment
// variable:
//
//	OPENMENU_DEBUG=1 openmenu menu.html 2>menu.log
//
// When enabled, messages are written to stderr with timestamps. When
// disabled (default), every function is a no-op, so the menu core can log
// each transition without cost.
//
// Usage:
//
//	debug.Log("open %d rejected in state %s", id, state)
//	defer debug.LogEnterExit("Build")()
package debug

import (
	"io"
	"log"
	"os"
	"time"
)

const envVar = "OPENMENU_DEBUG"

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv(envVar) != "" {
		enabled = true
		logger = newLogger(os.Stderr)
	}
}

func newLogger(w io.Writer) *log.Logger {
	return log.New(w, "[OPENMENU_DEBUG] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger(os.Stderr)
	}
}

// SetOutput redirects debug output. Tests use it to capture the log.
func SetOutput(w io.Writer) {
	logger = newLogger(w)
}

// Log writes a debug message if debug logging is enabled.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogIf writes a debug message only if the condition is true.
func LogIf(cond bool, format string, args ...any) {
	if !enabled || !cond {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogEnterExit logs function entry and exit with timing.
//
//	func Build() {
//	    defer debug.LogEnterExit("Build")()
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}
