// Package testutil provides testing utilities for isolated test environments.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dariusconca170-prog/turboget-bridge/internal/config"
)

// TestEnv provides an isolated test environment with its own config directory.
type TestEnv struct {
	t         *testing.T
	ConfigDir string
}

// NewTestEnv creates an isolated test environment.
// It uses environment variables to override all paths, ensuring complete
// isolation even when tests run in parallel across packages.
// Cleanup is automatic via t.Cleanup.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	// Create temp directory for this test's config
	configDir := filepath.Join(t.TempDir(), "config")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create test config dir: %v", err)
	}

	// Use t.Setenv for automatic cleanup - this is test-scoped
	// These env vars override viper settings via AutomaticEnv()
	t.Setenv("TURBOGET_BRIDGE_CONFIG_DIR", configDir)
	t.Setenv("TURBOGET_BRIDGE_LOG_FILE", filepath.Join(configDir, "bridge.log"))
	t.Setenv("TURBOGET_BRIDGE_HOST_LOG_FILE", filepath.Join(configDir, "host.log"))
	t.Setenv("TURBOGET_BRIDGE_RELAY_MANIFEST_DIRS", filepath.Join(configDir, "hosts"))

	// Reset and reinitialize config with new env vars
	config.Reset()
	if err := config.Init(); err != nil {
		t.Fatalf("failed to initialize test config: %v", err)
	}

	env := &TestEnv{
		t:         t,
		ConfigDir: configDir,
	}

	// Register cleanup to reset config state
	t.Cleanup(func() {
		config.Reset()
	})

	return env
}

// ManifestDir returns the directory the test environment uses for
// native messaging host manifests.
func (e *TestEnv) ManifestDir() string {
	return filepath.Join(e.ConfigDir, "hosts")
}

// WriteConfigFile writes a config.yaml into the test config directory.
// Returns the absolute path to the written file.
func (e *TestEnv) WriteConfigFile(content string) string {
	e.t.Helper()

	path := filepath.Join(e.ConfigDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to write test config file: %v", err)
	}
	return path
}

// CreateTestFile creates a test file with the given content.
// Returns the absolute path to the created file.
func (e *TestEnv) CreateTestFile(dir, name, content string) string {
	e.t.Helper()

	filePath := filepath.Join(dir, name)
	if err := os.WriteFile(filePath, []byte(content), 0644); err != nil {
		e.t.Fatalf("failed to create test file %s: %v", filePath, err)
	}
	return filePath
}
