package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
)

func TestDetectChangedSections(t *testing.T) {
	old := validConfig()

	updated := validConfig()
	updated.LogLevel = "debug"
	updated.Engine.BaseURL = "http://127.0.0.1:4321"

	changed := detectChangedSections(old, updated)
	want := []string{"log_level", "engine"}
	if !reflect.DeepEqual(changed, want) {
		t.Errorf("detectChangedSections() = %v, want %v", changed, want)
	}
}

func TestDetectChangedSections_NoChanges(t *testing.T) {
	old := validConfig()
	updated := validConfig()

	if changed := detectChangedSections(old, updated); len(changed) != 0 {
		t.Errorf("detectChangedSections() = %v, want empty", changed)
	}
}

func TestIsReloadable(t *testing.T) {
	tests := []struct {
		name     string
		sections []string
		want     bool
	}{
		{"empty", nil, true},
		{"log level only", []string{"log_level"}, true},
		{"engine only", []string{"engine"}, true},
		{"relay requires restart", []string{"relay"}, false},
		{"menu requires restart", []string{"log_level", "menu"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReloadable(tt.sections); got != tt.want {
				t.Errorf("isReloadable(%v) = %v, want %v", tt.sections, got, tt.want)
			}
		})
	}
}

func TestReload_PublishesConfigReloaded(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		StopSignalHandler()
		SetEventBus(nil)
		Reset()
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: info\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", dir)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	bus := events.NewBus()
	defer func() { _ = bus.Close() }()
	SetEventBus(bus)

	received := make(chan events.Event, 1)
	unsub := bus.Subscribe(events.ConfigReloaded, func(e events.Event) {
		received <- e
	})
	defer unsub()

	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0644); err != nil {
		t.Fatalf("failed to rewrite config file: %v", err)
	}

	if err := Reload(); err != nil {
		t.Fatalf("Reload() error = %v", err)
	}

	select {
	case e := <-received:
		payload, ok := e.Payload.(events.ConfigReloadedPayload)
		if !ok {
			t.Fatalf("payload type = %T, want ConfigReloadedPayload", e.Payload)
		}
		if !reflect.DeepEqual(payload.ChangedSections, []string{"log_level"}) {
			t.Errorf("ChangedSections = %v, want [log_level]", payload.ChangedSections)
		}
		if !payload.Reloadable {
			t.Error("Reloadable = false, want true")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config.reloaded event")
	}

	if got := GetString("log_level"); got != "debug" {
		t.Errorf("log_level after reload = %q, want %q", got, "debug")
	}
}

func TestReload_InvalidFile_RetainsPreviousAndPublishesFailure(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		StopSignalHandler()
		SetEventBus(nil)
		Reset()
	})

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", dir)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	bus := events.NewBus()
	defer func() { _ = bus.Close() }()
	SetEventBus(bus)

	received := make(chan events.Event, 1)
	unsub := bus.Subscribe(events.ConfigReloadFailed, func(e events.Event) {
		received <- e
	})
	defer unsub()

	if err := os.WriteFile(path, []byte("relay: [broken"), 0644); err != nil {
		t.Fatalf("failed to rewrite config file: %v", err)
	}

	if err := Reload(); err == nil {
		t.Fatal("Reload() should fail on invalid YAML")
	}

	select {
	case <-received:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for config.reload_failed event")
	}

	// Previous value retained
	if got := GetString("log_level"); got != "warn" {
		t.Errorf("log_level after failed reload = %q, want %q", got, "warn")
	}
}
