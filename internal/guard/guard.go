// Package guard implements download interception: it observes transfer
// creation notifications and, for transfers still in flight, cancels the
// native transfer and hands the URL to the relay channel.
package guard

import (
	"context"
	"log/slog"

	"github.com/dariusconca170-prog/turboget-bridge/internal/browser"
	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
)

// Relayer is the relay side of the guard. *relay.Channel satisfies it.
type Relayer interface {
	Relay(ctx context.Context, msg relay.Message) relay.Result
}

// DownloadGuard intercepts browser transfers. Handler invocations for
// distinct events are independent; the guard holds no mutable state, so no
// synchronization is required between overlapping invocations.
type DownloadGuard struct {
	downloads browser.Downloads
	channel   Relayer
	logger    *slog.Logger
}

// Option configures a DownloadGuard.
type Option func(*DownloadGuard)

// WithLogger sets the logger for the guard.
func WithLogger(logger *slog.Logger) Option {
	return func(g *DownloadGuard) {
		g.logger = logger
	}
}

// New creates a DownloadGuard cancelling through downloads and relaying
// through channel.
func New(downloads browser.Downloads, channel Relayer, opts ...Option) *DownloadGuard {
	g := &DownloadGuard{
		downloads: downloads,
		channel:   channel,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// OnTransferCreated handles one transfer-creation notification. Transfers in
// the in-progress state get exactly one best-effort cancellation and exactly
// one relay attempt; the relay is not gated on the cancellation outcome.
// Transfers already in a terminal state (instantly resolved data: URIs and
// the like) are ignored.
func (g *DownloadGuard) OnTransferCreated(ctx context.Context, transfer browser.TransferEvent) {
	if transfer.State != browser.TransferInProgress {
		g.logger.Debug("ignoring transfer not in progress",
			"id", transfer.ID,
			"state", transfer.State,
		)
		return
	}

	// Cancellation is dispatched before the relay is initiated but its
	// completion is never awaited and its failure never surfaced.
	cancelCtx := context.WithoutCancel(ctx)
	go func() {
		if err := g.downloads.Cancel(cancelCtx, transfer.ID); err != nil {
			g.logger.Warn("failed to cancel native transfer",
				"id", transfer.ID,
				"error", err,
			)
		}
	}()

	if transfer.FinalURL == "" {
		// Certain redirect/blocked states resolve to an empty URL; it is
		// relayed unchanged.
		g.logger.Debug("relaying empty resolved url", "id", transfer.ID)
	}

	g.channel.Relay(ctx, relay.NewMessage(transfer.FinalURL))
}

// Attach subscribes the guard to transfer.created events on the bus.
// Returns the unsubscribe function. Registration is performed once during
// initialization; no teardown is required during normal operation.
func (g *DownloadGuard) Attach(bus events.Bus) func() {
	return bus.Subscribe(events.TransferCreated, func(event events.Event) {
		transfer, ok := event.Payload.(browser.TransferEvent)
		if !ok {
			g.logger.Error("unexpected transfer.created payload", "payload", event.Payload)
			return
		}
		g.OnTransferCreated(context.Background(), transfer)
	})
}
