// Package events provides an in-process pub/sub event bus connecting the
// host-runtime event feed to the interception handlers.
package events

import (
	"time"

	"github.com/dariusconca170-prog/turboget-bridge/internal/browser"
)

// EventType identifies the type of event being published.
type EventType string

const (
	// TransferCreated is published for each download-creation notification
	// from the host runtime.
	TransferCreated EventType = "transfer.created"

	// MenuClicked is published when a context-menu entry is activated.
	MenuClicked EventType = "menu.clicked"

	// RelaySent is published after a relay frame was written to the
	// external process. Delivery beyond the write is unacknowledged.
	RelaySent EventType = "relay.sent"

	// RelayFailed is published when the relay connection could not be
	// established or the frame could not be written.
	RelayFailed EventType = "relay.failed"

	// ConfigReloaded is published when configuration is successfully reloaded.
	ConfigReloaded EventType = "config.reloaded"

	// ConfigReloadFailed is published when configuration reload fails.
	ConfigReloadFailed EventType = "config.reload_failed"
)

// Event represents a published event in the system.
type Event struct {
	// Type identifies the event type.
	Type EventType

	// Timestamp is when the event was created.
	Timestamp time.Time

	// Payload contains event-specific data.
	Payload any
}

// NewEvent creates a new event with the given type and payload.
func NewEvent(eventType EventType, payload any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// EventHandler is a function that processes events.
type EventHandler func(event Event)

// RelayResult contains data for relay.sent and relay.failed events.
type RelayResult struct {
	// URL is the relayed target URL (may be empty, relayed as-is).
	URL string

	// AttemptID correlates log lines for one relay attempt.
	AttemptID string

	// Reason is the disconnect diagnostic for relay.failed events.
	Reason string
}

// NewTransferCreated creates a TransferCreated event.
func NewTransferCreated(transfer browser.TransferEvent) Event {
	return NewEvent(TransferCreated, transfer)
}

// NewMenuClicked creates a MenuClicked event.
func NewMenuClicked(click browser.MenuClick) Event {
	return NewEvent(MenuClicked, click)
}

// NewRelaySent creates a RelaySent event.
func NewRelaySent(url, attemptID string) Event {
	return NewEvent(RelaySent, RelayResult{URL: url, AttemptID: attemptID})
}

// NewRelayFailed creates a RelayFailed event.
func NewRelayFailed(url, attemptID, reason string) Event {
	return NewEvent(RelayFailed, RelayResult{URL: url, AttemptID: attemptID, Reason: reason})
}

// ConfigReloadedPayload contains data for config.reloaded events.
type ConfigReloadedPayload struct {
	// ChangedSections lists the top-level config sections that changed.
	ChangedSections []string

	// Reloadable indicates whether all changes took effect without a restart.
	Reloadable bool
}

// NewConfigReloaded creates a ConfigReloaded event.
func NewConfigReloaded(changedSections []string, reloadable bool) Event {
	return NewEvent(ConfigReloaded, ConfigReloadedPayload{
		ChangedSections: changedSections,
		Reloadable:      reloadable,
	})
}

// ConfigReloadFailedPayload contains data for config.reload_failed events.
type ConfigReloadFailedPayload struct {
	Error string
}

// NewConfigReloadFailed creates a ConfigReloadFailed event.
func NewConfigReloadFailed(err error) Event {
	payload := ConfigReloadFailedPayload{}
	if err != nil {
		payload.Error = err.Error()
	}
	return NewEvent(ConfigReloadFailed, payload)
}
