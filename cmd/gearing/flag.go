package main

import (
	"fmt"
	"log/slog"
	"strings"
)

type logLevelFlag struct {
	value slog.Level
	set   bool
}

func (l logLevelFlag) String() string {
	return strings.ToLower(l.value.String())
}

func (l *logLevelFlag) Set(value string) error {
	m := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"WARN":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"ERROR":   slog.LevelError,
	}
	v, ok := m[strings.ToUpper(strings.TrimSpace(value))]
	if !ok {
		return fmt.Errorf("unknown log level %q", value)
	}
	l.value = v
	l.set = true
	return nil
}
