// Package browser models the host-runtime boundary: the download-lifecycle
// notifications, the cancellation operation, and the context-menu APIs the
// interception core consumes. All values here are owned by the host runtime
// and are read-only to the core; events exist only for the duration of a
// single dispatch.
package browser

import "context"

// TransferState is the lifecycle state of a browser download.
type TransferState string

const (
	// TransferInProgress is the "actively transferring" state. Only
	// transfers observed in this state are intercepted.
	TransferInProgress TransferState = "in_progress"

	// TransferComplete is a terminal state; completed transfers are ignored.
	TransferComplete TransferState = "complete"

	// TransferInterrupted is a terminal state; interrupted transfers are ignored.
	TransferInterrupted TransferState = "interrupted"
)

// TransferEvent is a download-creation notification from the host runtime.
// Instantly resolved transfers (data: URIs and the like) may already carry a
// terminal state at notification time.
type TransferEvent struct {
	// ID is the host-assigned download identifier.
	ID int32 `json:"id"`

	// State is the lifecycle state at notification time.
	State TransferState `json:"state"`

	// FinalURL is the resolved target URL. May be empty for certain
	// redirect or blocked states.
	FinalURL string `json:"finalUrl"`
}

// Downloads is the host-level download API consumed by the guard.
type Downloads interface {
	// Cancel aborts the native transfer with the given id. Best effort;
	// the host may decline or the transfer may already be gone.
	Cancel(ctx context.Context, id int32) error
}

// MenuEntry describes a context-menu registration. Created once at
// install/update, never mutated afterwards.
type MenuEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Contexts []string `json:"contexts"`
}

// MenuClick is a menu-activation notification from the host runtime.
type MenuClick struct {
	// MenuEntryID identifies which registered entry was activated.
	MenuEntryID string `json:"menuItemId"`

	// LinkURL is the hyperlink the menu was opened on.
	LinkURL string `json:"linkUrl"`
}

// Menus is the host-level context-menu registration API.
type Menus interface {
	// Create registers a menu entry. Registering an id that already
	// exists is an error on the host side, so callers query Exists first.
	Create(entry MenuEntry) error

	// Exists reports whether an entry with the given id is registered.
	Exists(id string) bool
}
