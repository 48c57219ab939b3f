// Package menus implements the context-menu capture path: a single
// link-scoped menu entry registered once at install time, whose activation
// relays the clicked link to the external engine.
package menus

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dariusconca170-prog/turboget-bridge/internal/browser"
	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
)

// Defaults for the registered menu entry. The id must stay globally unique
// within the extension's menu namespace.
const (
	DefaultEntryID    = "download-with-turboget"
	DefaultEntryTitle = "Download with TurboGet"
)

// DefaultEntry returns the process-wide singleton entry: link contexts only,
// created once, never mutated or removed during normal operation.
func DefaultEntry() browser.MenuEntry {
	return browser.MenuEntry{
		ID:       DefaultEntryID,
		Title:    DefaultEntryTitle,
		Contexts: []string{"link"},
	}
}

// Relayer is the relay side of the capture. *relay.Channel satisfies it.
type Relayer interface {
	Relay(ctx context.Context, msg relay.Message) relay.Result
}

// Capture registers the menu entry and relays activations.
type Capture struct {
	menus   browser.Menus
	channel Relayer
	entry   browser.MenuEntry
	logger  *slog.Logger
}

// Option configures a Capture.
type Option func(*Capture)

// WithEntry overrides the registered menu entry.
func WithEntry(entry browser.MenuEntry) Option {
	return func(c *Capture) {
		c.entry = entry
	}
}

// WithLogger sets the logger for the capture.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capture) {
		c.logger = logger
	}
}

// New creates a Capture registering through menus and relaying through
// channel.
func New(menus browser.Menus, channel Relayer, opts ...Option) *Capture {
	c := &Capture{
		menus:   menus,
		channel: channel,
		entry:   DefaultEntry(),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Entry returns the entry this capture registers.
func (c *Capture) Entry() browser.MenuEntry {
	return c.entry
}

// EnsureEntry idempotently ensures exactly one menu entry with the
// configured id exists. Safe to invoke on every install/update event;
// repeated calls never create duplicates.
func (c *Capture) EnsureEntry() error {
	if c.menus.Exists(c.entry.ID) {
		c.logger.Debug("menu entry already registered", "id", c.entry.ID)
		return nil
	}

	if err := c.menus.Create(c.entry); err != nil {
		return fmt.Errorf("failed to register menu entry %q; %w", c.entry.ID, err)
	}

	c.logger.Info("registered context menu entry", "id", c.entry.ID, "title", c.entry.Title)
	return nil
}

// OnClicked handles one menu-activation notification. Activations of other
// entries are ignored. Rapid repeated activations each open an independent
// relay connection; no deduplication or debouncing is applied.
func (c *Capture) OnClicked(ctx context.Context, click browser.MenuClick) {
	if click.MenuEntryID != c.entry.ID {
		return
	}

	c.channel.Relay(ctx, relay.NewMessage(click.LinkURL))
}

// Attach subscribes the capture to menu.clicked events on the bus. Returns
// the unsubscribe function.
func (c *Capture) Attach(bus events.Bus) func() {
	return bus.Subscribe(events.MenuClicked, func(event events.Event) {
		click, ok := event.Payload.(browser.MenuClick)
		if !ok {
			c.logger.Error("unexpected menu.clicked payload", "payload", event.Payload)
			return
		}
		c.OnClicked(context.Background(), click)
	})
}
