package app

import (
	"log/slog"

	"github.com/treykane/cli-gearing/internal/logging"
)

// appLog is the package-level structured logger for the app package.
//
// The terminal UI owns the screen, so in interactive runs the logging
// package is pointed at a rotating file before the program starts.
var appLog = logging.New("app")

// setStatusError updates the status bar with a user-facing error message and
// simultaneously logs a structured error entry with full context.
//
// Usage:
//
//	m.setStatusError("Clipboard copy failed", err)
func (m *Model) setStatusError(status string, err error, attrs ...any) {
	m.status = status
	appLog.Error(status, statusFields(err, attrs)...)
}

// setStatusWarn is setStatusError for failures the app recovers from, such
// as a store write that did not land.
func (m *Model) setStatusWarn(status string, err error, attrs ...any) {
	m.status = status
	appLog.Warn(status, statusFields(err, attrs)...)
}

func statusFields(err error, attrs []any) []any {
	fields := make([]any, 0, len(attrs)+2)
	fields = append(fields, slog.Any("error", err))
	return append(fields, attrs...)
}
