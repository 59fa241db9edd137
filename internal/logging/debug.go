package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	verbose bool
	logger  = newLogger(os.Stderr, DebugEnabled())
)

// DebugEnabled returns true if debug mode is enabled via MT_DEBUG or SetVerbose.
func DebugEnabled() bool {
	return verbose || os.Getenv("MT_DEBUG") != ""
}

// SetVerbose switches debug logging on or off (the --verbose flag).
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	logger = newLogger(os.Stderr, DebugEnabled())
}

// SetOutput redirects log output. Used by tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(w, DebugEnabled())
}

// Logger returns the process logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Debugf logs a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	Logger().Debug(fmt.Sprintf(format, args...))
}
