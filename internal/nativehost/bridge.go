// Package nativehost implements the registered native-messaging host: the
// process the browser spawns to consume relay frames. It reads length-framed
// messages from its stdin and forwards each URL to the running TurboGet
// engine over HTTP.
//
// Stdout belongs to the native-messaging protocol and is never written to;
// all diagnostics go to the log file.
package nativehost

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
	"github.com/dariusconca170-prog/turboget-bridge/internal/urlutil"
)

// Engine accepts hand-off URLs. *engineclient.Client satisfies it.
type Engine interface {
	AddDownload(ctx context.Context, msg relay.Message) error
}

// Bridge forwards framed messages from the browser to the engine.
type Bridge struct {
	engine Engine
	logger *slog.Logger
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger for the bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		b.logger = logger
	}
}

// New creates a Bridge forwarding to engine.
func New(engine Engine, opts ...Option) *Bridge {
	b := &Bridge{
		engine: engine,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Run consumes frames from in until the browser closes the port (clean EOF)
// or the stream becomes unreadable. A hand-off the engine declines is logged
// and skipped; the port stays open for the next message.
func (b *Bridge) Run(ctx context.Context, in io.Reader) error {
	for {
		payload, err := relay.ReadFrame(in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				b.logger.Info("browser closed the messaging port")
				return nil
			}
			return err
		}

		msg, err := relay.DecodeMessage(payload)
		if err != nil {
			b.logger.Warn("dropping undecodable message", "error", err)
			continue
		}

		b.logger.Info("received url from browser",
			"url", msg.URL,
			"filename", urlutil.DefaultFilename(msg.URL),
			"valid_url", urlutil.IsValid(msg.URL),
		)

		if err := b.engine.AddDownload(ctx, msg); err != nil {
			b.logger.Warn("failed to hand url to engine", "url", msg.URL, "error", err)
			continue
		}
	}
}
