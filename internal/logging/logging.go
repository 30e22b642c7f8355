// Package logging provides a shared, structured logger for the cli-gearing
// application.
//
// It wraps the standard library's [log/slog] package and provides a single
// initialization point so all components share the same output handler and
// log level. The log level can be controlled at startup via the
// GEARING_LOG_LEVEL environment variable (debug, info, warn, error) or with
// [SetLevel]. If unset, the default level is INFO.
//
// Usage:
//
//	log := logging.New("store")       // creates a logger tagged with component="store"
//	log.Info("opened store", "path", p)
//	log.Error("failed to save", "error", err)
//
// Output goes to stderr until [UseFile] is called. The terminal UI owns the
// screen, so the interactive mode redirects logs into a rotating file.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// LogFileName is the name of the log file inside the log directory.
	LogFileName = "gearing.log"

	maxLogSizeMB  = 10
	maxLogBackups = 3
)

var (
	level = new(slog.LevelVar)

	// output is swapped by UseFile; every logger writes through it so
	// loggers created at package init follow the redirect.
	output = &switchWriter{w: os.Stderr}

	initLogger sync.Once
	baseLogger *slog.Logger
)

func base() *slog.Logger {
	initLogger.Do(func() {
		level.Set(parseLevel(os.Getenv("GEARING_LOG_LEVEL")))
		baseLogger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
			Level: level,
		}))
	})
	return baseLogger
}

// New returns a structured logger scoped to the given component name.
//
// If component is empty, the base logger is returned without any additional
// attributes.
func New(component string) *slog.Logger {
	l := base()
	if component == "" {
		return l
	}
	return l.With("component", component)
}

// SetLevel overrides the level taken from the environment.
func SetLevel(l slog.Level) {
	base()
	level.Set(l)
}

// UseFile redirects all log output to a size-rotated file in dir and returns
// the file path. The returned closer flushes and closes the file.
func UseFile(dir string) (string, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, err
	}
	path := filepath.Join(dir, LogFileName)
	lj := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
	}
	output.set(lj)
	return path, lj, nil
}

type switchWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *switchWriter) set(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w = w
}

func (s *switchWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// parseLevel converts a human-readable log level string to a [slog.Level].
//
// Recognized values (case-insensitive, whitespace-trimmed):
//   - "debug"           → slog.LevelDebug
//   - "warn", "warning" → slog.LevelWarn
//   - "error"           → slog.LevelError
//   - anything else     → slog.LevelInfo (the default)
func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
