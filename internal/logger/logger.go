// Package logger provides verbose logging for lexai.
// When verbose mode is enabled via the --verbose flag, debug, info and
// warning messages are printed to stderr to trace quota checks, source
// dispatch and fallbacks. Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Level is the severity of a log line.
type Level int

// Severity levels, lowest first.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the tag printed before each line.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

var (
	mu      sync.Mutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return verbose
}

// SetOutput sets the output writer. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// Enabled reports whether lines at level are currently printed.
func Enabled(level Level) bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled(level)
}

// enabled must be called with mu held.
func enabled(level Level) bool {
	return verbose || level >= LevelError
}

func logf(level Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !enabled(level) {
		return
	}
	fmt.Fprintf(output, "[%s] %s\n", level, fmt.Sprintf(format, args...))
}

// Debug traces internal decisions.
func Debug(format string, args ...any) { logf(LevelDebug, format, args...) }

// Info reports notable events such as payments and reloads.
func Info(format string, args ...any) { logf(LevelInfo, format, args...) }

// Warn reports recoverable problems.
func Warn(format string, args ...any) { logf(LevelWarn, format, args...) }

// Error reports failures regardless of verbose mode.
func Error(format string, args ...any) { logf(LevelError, format, args...) }

// Section prints a header separating the trace of one operation.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}
