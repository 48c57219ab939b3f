package relay

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"time"

	"github.com/google/uuid"

	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
)

// DefaultConnectTimeout bounds connection establishment plus the single
// frame write. It does not bound the host process itself, which outlives
// the relay call to finish the hand-off; only a host that never drains its
// stdin gets killed.
const DefaultConnectTimeout = 10 * time.Second

// Status is the discriminated outcome of a relay attempt.
type Status string

const (
	// StatusSent means the frame was written to the external process.
	// It does not imply the process read or acted on the message.
	StatusSent Status = "sent"

	// StatusConnectionFailed means the external process could not be
	// reached or the frame could not be written.
	StatusConnectionFailed Status = "connection_failed"
)

// Result reports the outcome of one relay attempt.
type Result struct {
	Status Status

	// Reason is a non-empty diagnostic when Status is StatusConnectionFailed.
	Reason string

	// AttemptID correlates this attempt across log lines and events.
	AttemptID string
}

// Sent reports whether the frame was written.
func (r Result) Sent() bool {
	return r.Status == StatusSent
}

// DisconnectObserver receives the diagnostic for a failed connection. Used
// purely for diagnostics; it is never consulted for retry decisions.
type DisconnectObserver func(reason string)

// Channel relays messages to the external retrieval engine over native
// messaging. Every Relay call spawns one fresh connection; connections are
// never pooled or reused.
type Channel struct {
	hostName       string
	resolver       *Resolver
	connectTimeout time.Duration
	logger         *slog.Logger
	bus            events.Bus
	observer       DisconnectObserver
}

// ChannelOption configures a Channel.
type ChannelOption func(*Channel)

// WithLogger sets the logger for the channel.
func WithLogger(logger *slog.Logger) ChannelOption {
	return func(c *Channel) {
		c.logger = logger
	}
}

// WithBus sets the event bus for publishing relay.sent / relay.failed events.
func WithBus(bus events.Bus) ChannelOption {
	return func(c *Channel) {
		c.bus = bus
	}
}

// WithConnectTimeout overrides DefaultConnectTimeout.
func WithConnectTimeout(d time.Duration) ChannelOption {
	return func(c *Channel) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

// WithDisconnectObserver registers a diagnostics callback invoked on
// connection failure.
func WithDisconnectObserver(observer DisconnectObserver) ChannelOption {
	return func(c *Channel) {
		c.observer = observer
	}
}

// NewChannel creates a relay channel for the external process registered
// under hostName.
func NewChannel(hostName string, resolver *Resolver, opts ...ChannelOption) *Channel {
	c := &Channel{
		hostName:       hostName,
		resolver:       resolver,
		connectTimeout: DefaultConnectTimeout,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// HostName returns the fixed external-process identifier.
func (c *Channel) HostName() string {
	return c.hostName
}

// Relay transmits one message to the external process. It never panics and
// never returns an error: every failure is terminal here, reported through
// the Result, the disconnect observer, and the log. At most one delivery
// attempt is made; there is no acknowledgement and no retry.
func (c *Channel) Relay(ctx context.Context, msg Message) Result {
	attemptID := uuid.NewString()

	manifest, err := c.resolver.Resolve(c.hostName)
	if err != nil {
		return c.fail(ctx, msg, attemptID, err.Error())
	}

	payload, err := msg.Encode()
	if err != nil {
		return c.fail(ctx, msg, attemptID, err.Error())
	}

	// One fresh process per attempt; the origin argument mirrors how the
	// browser launches native hosts. The process is deliberately not tied to
	// this call's lifetime: it must keep running after Relay returns to
	// consume the frame and perform the hand-off.
	cmd := exec.Command(manifest.Path, c.hostName)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return c.fail(ctx, msg, attemptID, "failed to open host stdin: "+err.Error())
	}

	if err := cmd.Start(); err != nil {
		return c.fail(ctx, msg, attemptID, "failed to launch host process: "+err.Error())
	}

	// Only the frame write is bounded by the connect timeout. Killing the
	// host on timeout or cancellation unblocks the writer with EPIPE.
	writeCh := make(chan error, 1)
	go func() {
		werr := WriteFrame(stdin, payload)
		if cerr := stdin.Close(); cerr != nil && werr == nil {
			c.logger.Debug("failed to close host stdin", "attempt_id", attemptID, "error", cerr)
		}
		writeCh <- werr
	}()

	timer := time.NewTimer(c.connectTimeout)
	defer timer.Stop()

	var writeErr error
	select {
	case writeErr = <-writeCh:
	case <-timer.C:
		_ = cmd.Process.Kill()
		<-writeCh
		writeErr = fmt.Errorf("frame write timed out after %s", c.connectTimeout)
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-writeCh
		writeErr = ctx.Err()
	}

	// Reap in the background; the host exits on its own once it has handled
	// the frame.
	go func() {
		if err := cmd.Wait(); err != nil {
			c.logger.Debug("host process exited with error", "attempt_id", attemptID, "error", err)
		}
	}()

	if writeErr != nil {
		return c.fail(ctx, msg, attemptID, "failed to write relay frame: "+writeErr.Error())
	}

	c.logger.Info("relayed url to external engine",
		"host", c.hostName,
		"url", msg.URL,
		"attempt_id", attemptID,
	)
	if c.bus != nil {
		_ = c.bus.Publish(ctx, events.NewRelaySent(msg.URL, attemptID))
	}

	return Result{Status: StatusSent, AttemptID: attemptID}
}

// fail records a connection failure. The diagnostic is logged and surfaced
// to the observer, never to an end-user surface.
func (c *Channel) fail(ctx context.Context, msg Message, attemptID, reason string) Result {
	c.logger.Warn("relay connection failed",
		"host", c.hostName,
		"url", msg.URL,
		"attempt_id", attemptID,
		"reason", reason,
	)

	if c.observer != nil {
		c.observer(reason)
	}
	if c.bus != nil {
		_ = c.bus.Publish(ctx, events.NewRelayFailed(msg.URL, attemptID, reason))
	}

	return Result{Status: StatusConnectionFailed, Reason: reason, AttemptID: attemptID}
}
