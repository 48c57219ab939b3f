package logging

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// RotatingFileLogger returns a JSON logger writing to a size-rotated file.
// Used by the native host command, which may be spawned by the browser many
// times a day for years with nobody watching its log grow.
func RotatingFileLogger(path string, maxSizeMB, maxBackups int, level slog.Level) *slog.Logger {
	sink := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}

	handler := slog.NewJSONHandler(sink, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
