// Package logging writes errors and trace events to a log file. The terminal
// belongs to the TUI, so nothing is ever written to stdout.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const defaultLogFile = "pkgsorter.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	configured   bool
	logPath      = defaultLogFile
	out          io.WriteCloser
	logger       = newLogger()
)

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.TraceLevel)
	l.SetOutput(io.Discard)
	return l
}

// Error records err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	if !ensureOutput() {
		return
	}
	logger.WithError(err).Error("error")
}

// Warn records a formatted warning.
func Warn(format string, args ...interface{}) {
	if !ensureOutput() {
		return
	}
	logger.Warnf(format, args...)
}

// SetTraceEnabled toggles emission of trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are emitted.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured entry when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	if !ensureOutput() {
		return
	}
	entry := logger.WithField("event", event)
	if payload != nil {
		entry = entry.WithField("payload", payload)
	}
	entry.Trace(event)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeOutputLocked()
	configured = true
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Close flushes and releases the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeOutputLocked()
}

// ensureOutput opens the log file on first use. Until Configure has been
// called every entry is dropped.
func ensureOutput() bool {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		return true
	}
	if !configured {
		return false
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return false
	}
	out = f
	logger.SetOutput(f)
	return true
}

func closeOutputLocked() {
	if out == nil {
		return
	}
	_ = out.Close()
	out = nil
	logger.SetOutput(io.Discard)
}
