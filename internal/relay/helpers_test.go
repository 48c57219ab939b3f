package relay

import (
	"io"
	"log/slog"
)

// discardLogger returns a logger that drops everything; watcher tests only
// care about control flow.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
