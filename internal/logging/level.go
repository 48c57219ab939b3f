package logging

import (
	"log/slog"
	"strings"
)

// DefaultLevel applies when no level is configured or the configured value
// is not recognized.
const DefaultLevel = slog.LevelInfo

var levelNames = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// ParseLevel maps a config string ("debug", "info", "warn", "error", any
// case) to its slog.Level. Unrecognized input yields (DefaultLevel, false).
func ParseLevel(s string) (level slog.Level, ok bool) {
	level, ok = levelNames[strings.ToLower(s)]
	if !ok {
		return DefaultLevel, false
	}
	return level, true
}

// ParseLevelOrDefault is ParseLevel for callers that silently accept the
// default on bad input.
func ParseLevelOrDefault(s string) slog.Level {
	level, _ := ParseLevel(s)
	return level
}
