package browser

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Feed line kinds and action verbs for the JSON-lines host runtime protocol.
const (
	KindTransfer = "transfer"
	KindMenu     = "menu"

	ActionCancel     = "cancel"
	ActionCreateMenu = "create_menu"
)

// feedLine is one inbound notification on the JSON-lines feed.
type feedLine struct {
	Kind     string         `json:"kind"`
	Transfer *TransferEvent `json:"transfer,omitempty"`
	Click    *MenuClick     `json:"click,omitempty"`
}

// command is one outbound instruction to the host runtime.
type command struct {
	Action string     `json:"action"`
	ID     int32      `json:"id,omitempty"`
	Entry  *MenuEntry `json:"entry,omitempty"`
}

// Conn adapts a JSON-lines host-runtime connection to the Downloads and
// Menus interfaces. Inbound notifications arrive one JSON object per line;
// outbound commands are written the same way. Menu registrations are
// tracked locally so Exists() answers without a round trip.
type Conn struct {
	logger *slog.Logger

	writeMu sync.Mutex
	enc     *json.Encoder

	menuMu sync.Mutex
	menus  map[string]bool
}

// NewConn creates a connection writing outbound commands to w.
func NewConn(w io.Writer, logger *slog.Logger) *Conn {
	if logger == nil {
		logger = slog.Default()
	}
	return &Conn{
		logger: logger,
		enc:    json.NewEncoder(w),
		menus:  make(map[string]bool),
	}
}

// Cancel writes a cancel command for the given download id.
func (c *Conn) Cancel(ctx context.Context, id int32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return c.write(command{Action: ActionCancel, ID: id})
}

// Create writes a menu registration command and records the entry locally.
func (c *Conn) Create(entry MenuEntry) error {
	c.menuMu.Lock()
	defer c.menuMu.Unlock()

	if c.menus[entry.ID] {
		return fmt.Errorf("menu entry %q already exists", entry.ID)
	}

	if err := c.write(command{Action: ActionCreateMenu, Entry: &entry}); err != nil {
		return err
	}

	c.menus[entry.ID] = true
	return nil
}

// Exists reports whether a menu entry with the given id was registered
// through this connection.
func (c *Conn) Exists(id string) bool {
	c.menuMu.Lock()
	defer c.menuMu.Unlock()
	return c.menus[id]
}

func (c *Conn) write(cmd command) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.enc.Encode(cmd); err != nil {
		return fmt.Errorf("failed to write command; %w", err)
	}
	return nil
}

// ReadEvents consumes the inbound notification feed until EOF or context
// cancellation, dispatching each line to the matching callback. Undecodable
// lines and unknown kinds are logged and skipped.
func (c *Conn) ReadEvents(ctx context.Context, r io.Reader, onTransfer func(TransferEvent), onClick func(MenuClick)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var line feedLine
		if err := json.Unmarshal(raw, &line); err != nil {
			c.logger.Warn("skipping undecodable feed line", "error", err)
			continue
		}

		switch line.Kind {
		case KindTransfer:
			if line.Transfer == nil {
				c.logger.Warn("transfer line missing payload")
				continue
			}
			if onTransfer != nil {
				onTransfer(*line.Transfer)
			}
		case KindMenu:
			if line.Click == nil {
				c.logger.Warn("menu line missing payload")
				continue
			}
			if onClick != nil {
				onClick(*line.Click)
			}
		default:
			c.logger.Warn("unknown feed line kind", "kind", line.Kind)
		}
	}

	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("feed read failed; %w", err)
	}

	c.logger.Info("host runtime feed closed")
	return nil
}
