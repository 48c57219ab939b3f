package logging

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// SwappableHandler is a slog.Handler whose backing handler can be replaced
// atomically. Loggers are handed to components before config is loaded, so
// the bootstrap-to-full transition must not invalidate any of them.
type SwappableHandler struct {
	handler atomic.Pointer[slog.Handler]
}

// NewSwappableHandler wraps the given initial handler.
func NewSwappableHandler(initial slog.Handler) *SwappableHandler {
	h := &SwappableHandler{}
	h.handler.Store(&initial)
	return h
}

// Swap replaces the backing handler. Safe to call concurrently with logging.
func (h *SwappableHandler) Swap(next slog.Handler) {
	h.handler.Store(&next)
}

func (h *SwappableHandler) load() slog.Handler {
	return *h.handler.Load()
}

// Enabled reports whether the backing handler handles records at the given level.
func (h *SwappableHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.load().Enabled(ctx, level)
}

// Handle passes the record to the backing handler.
func (h *SwappableHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.load().Handle(ctx, r)
}

// WithAttrs wraps the backing handler's WithAttrs result. The returned
// handler no longer tracks later swaps; attrs are only attached after the
// upgrade in practice.
func (h *SwappableHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return NewSwappableHandler(h.load().WithAttrs(attrs))
}

// WithGroup wraps the backing handler's WithGroup result.
func (h *SwappableHandler) WithGroup(name string) slog.Handler {
	return NewSwappableHandler(h.load().WithGroup(name))
}
