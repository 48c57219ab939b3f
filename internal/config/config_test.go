package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeConfigFile writes a config.yaml into a temp dir and points
// TURBOGET_BRIDGE_CONFIG_DIR at it.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", dir)
	return path
}

func TestInit_NoConfigFile_UsesDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := ConfigFilePath(); got != "" {
		t.Errorf("ConfigFilePath() = %q, want empty", got)
	}
	if got := GetString("relay.host_name"); got != DefaultRelayHostName {
		t.Errorf("relay.host_name = %q, want %q", got, DefaultRelayHostName)
	}
	if got := GetString("engine.base_url"); got != DefaultEngineBaseURL {
		t.Errorf("engine.base_url = %q, want %q", got, DefaultEngineBaseURL)
	}
	if got := GetInt("relay.connect_timeout"); got != DefaultRelayConnectTimeout {
		t.Errorf("relay.connect_timeout = %d, want %d", got, DefaultRelayConnectTimeout)
	}
	if got := GetString("menu.id"); got != DefaultMenuID {
		t.Errorf("menu.id = %q, want %q", got, DefaultMenuID)
	}
}

func TestInit_ReadsConfigFile(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		StopSignalHandler()
		Reset()
	})

	path := writeConfigFile(t, `
log_level: debug
relay:
  host_name: com.example.other
  connect_timeout: 3
engine:
  base_url: http://127.0.0.1:4321
`)

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := ConfigFilePath(); got != path {
		t.Errorf("ConfigFilePath() = %q, want %q", got, path)
	}
	if got := GetString("relay.host_name"); got != "com.example.other" {
		t.Errorf("relay.host_name = %q, want %q", got, "com.example.other")
	}
	if got := GetInt("relay.connect_timeout"); got != 3 {
		t.Errorf("relay.connect_timeout = %d, want 3", got)
	}
	// Untouched keys keep defaults
	if got := GetString("menu.title"); got != DefaultMenuTitle {
		t.Errorf("menu.title = %q, want %q", got, DefaultMenuTitle)
	}
}

func TestInit_InvalidYAML_ReturnsError(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	writeConfigFile(t, "relay: [unclosed")

	if err := Init(); err == nil {
		t.Error("Init() should fail on invalid YAML")
	}
}

func TestInit_EnvOverride(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("TURBOGET_BRIDGE_RELAY_HOST_NAME", "com.example.envhost")
	t.Setenv("TURBOGET_BRIDGE_ENGINE_BASE_URL", "http://127.0.0.1:9999")

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if got := GetString("relay.host_name"); got != "com.example.envhost" {
		t.Errorf("relay.host_name = %q, want env override", got)
	}
	if got := GetString("engine.base_url"); got != "http://127.0.0.1:9999" {
		t.Errorf("engine.base_url = %q, want env override", got)
	}
}

func TestGetPath_ExpandsHome(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", t.TempDir())

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	Set("host.log_file", "~/logs/host.log")

	want := filepath.Join(home, "logs", "host.log")
	if got := GetPath("host.log_file"); got != want {
		t.Errorf("GetPath() = %q, want %q", got, want)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"/abs/path", "/abs/path"},
		{"relative/path", "relative/path"},
		{"~", home},
		{"~/x", filepath.Join(home, "x")},
		{"~user/x", "~user/x"},
	}

	for _, tt := range tests {
		if got := expandHome(tt.input); got != tt.want {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestLoad_TypedConfig(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	writeConfigFile(t, `
log_level: warn
relay:
  manifest_dirs:
    - /opt/chrome/hosts
host:
  log_max_size_mb: 10
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
	if len(cfg.Relay.ManifestDirs) != 1 || cfg.Relay.ManifestDirs[0] != "/opt/chrome/hosts" {
		t.Errorf("Relay.ManifestDirs = %v, want [/opt/chrome/hosts]", cfg.Relay.ManifestDirs)
	}
	if cfg.Host.LogMaxSizeMB != 10 {
		t.Errorf("Host.LogMaxSizeMB = %d, want 10", cfg.Host.LogMaxSizeMB)
	}
	// Defaults fill the rest
	if cfg.Relay.HostName != DefaultRelayHostName {
		t.Errorf("Relay.HostName = %q, want default", cfg.Relay.HostName)
	}
	if cfg.Engine.Timeout != DefaultEngineTimeout {
		t.Errorf("Engine.Timeout = %d, want default", cfg.Engine.Timeout)
	}
}

func TestLoad_ValidationFailure(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	writeConfigFile(t, `
relay:
  host_name: ""
engine:
  base_url: "not a url"
`)

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail validation")
	}
	if !IsValidationError(err) {
		t.Errorf("error should be a validation error, got %T: %v", err, err)
	}
	if !strings.Contains(err.Error(), "relay.host_name") {
		t.Errorf("error should mention relay.host_name, got: %v", err)
	}
	if !strings.Contains(err.Error(), "engine.base_url") {
		t.Errorf("error should mention engine.base_url, got: %v", err)
	}
}
