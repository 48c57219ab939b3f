package config

import (
	"context"
	"log/slog"
	"reflect"
	"sync"

	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
)

// eventBusMu protects eventBus
var eventBusMu sync.RWMutex

// eventBus is the event bus instance for publishing config events.
// Set via SetEventBus().
var eventBus events.Bus

// SetEventBus sets the event bus instance for publishing config reload events.
// Must be called before config reload events will be published.
func SetEventBus(bus events.Bus) {
	eventBusMu.Lock()
	defer eventBusMu.Unlock()
	eventBus = bus
}

// ReloadableSections lists the config sections that can be hot-reloaded.
// The relay host name and menu entry are fixed for the life of the process;
// changes to them require a restart.
var ReloadableSections = []string{"log_level", "log_file", "engine"}

// detectChangedSections compares old and new configs and returns a list of changed sections.
func detectChangedSections(old, updated *Config) []string {
	var changed []string

	if old.LogLevel != updated.LogLevel {
		changed = append(changed, "log_level")
	}
	if old.LogFile != updated.LogFile {
		changed = append(changed, "log_file")
	}
	if !reflect.DeepEqual(old.Relay, updated.Relay) {
		changed = append(changed, "relay")
	}
	if !reflect.DeepEqual(old.Engine, updated.Engine) {
		changed = append(changed, "engine")
	}
	if !reflect.DeepEqual(old.Host, updated.Host) {
		changed = append(changed, "host")
	}
	if !reflect.DeepEqual(old.Menu, updated.Menu) {
		changed = append(changed, "menu")
	}
	if !reflect.DeepEqual(old.Metrics, updated.Metrics) {
		changed = append(changed, "metrics")
	}

	return changed
}

// isReloadable checks if all changed sections are hot-reloadable.
func isReloadable(changedSections []string) bool {
	reloadableSet := make(map[string]bool)
	for _, s := range ReloadableSections {
		reloadableSet[s] = true
	}

	for _, section := range changedSections {
		if !reloadableSet[section] {
			return false
		}
	}

	return true
}

// publishConfigReloaded publishes a config.reloaded event.
func publishConfigReloaded(old, updated *Config) {
	eventBusMu.RLock()
	bus := eventBus
	eventBusMu.RUnlock()

	if bus == nil || old == nil || updated == nil {
		return
	}

	changedSections := detectChangedSections(old, updated)
	reloadable := isReloadable(changedSections)

	if !reloadable {
		slog.Warn("config reload includes non-reloadable sections; some changes require a restart",
			"changed_sections", changedSections)
	}

	event := events.NewConfigReloaded(changedSections, reloadable)
	if err := bus.Publish(context.Background(), event); err != nil {
		slog.Error("failed to publish config reload event", "error", err)
	}
}

// publishConfigReloadFailed publishes a config.reload_failed event.
func publishConfigReloadFailed(err error) {
	eventBusMu.RLock()
	bus := eventBus
	eventBusMu.RUnlock()

	if bus == nil {
		return
	}

	event := events.NewConfigReloadFailed(err)
	if pubErr := bus.Publish(context.Background(), event); pubErr != nil {
		slog.Error("failed to publish config reload failed event", "error", pubErr)
	}
}
