package logging

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewManager_BootstrapMode(t *testing.T) {
	mgr := NewManager()
	defer func() { _ = mgr.Close() }()

	if mgr == nil {
		t.Fatal("NewManager() returned nil")
	}

	logger := mgr.Logger()
	if logger == nil {
		t.Fatal("Manager.Logger() returned nil")
	}
}

func TestManager_Logger_Stable(t *testing.T) {
	mgr := NewManager()
	defer func() { _ = mgr.Close() }()

	logger1 := mgr.Logger()
	logger2 := mgr.Logger()

	if logger1 != logger2 {
		t.Error("Manager.Logger() should return the same instance")
	}
}

func TestManager_Upgrade_CreatesLogFile(t *testing.T) {
	mgr := NewManager()
	defer func() { _ = mgr.Close() }()

	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "bridge.log")

	err := mgr.Upgrade(logFile, slog.LevelInfo)
	if err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	mgr.Logger().Info("test message", "key", "value")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	// File output must be JSON
	line := strings.TrimSpace(strings.Split(string(content), "\n")[0])
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("log file line is not JSON: %v (%s)", err, line)
	}
	if record["msg"] != "test message" {
		t.Errorf("log msg = %v, want %q", record["msg"], "test message")
	}
	if record["key"] != "value" {
		t.Errorf("log attr key = %v, want %q", record["key"], "value")
	}
}

func TestManager_Upgrade_CreatesParentDirs(t *testing.T) {
	mgr := NewManager()
	defer func() { _ = mgr.Close() }()

	logFile := filepath.Join(t.TempDir(), "nested", "dir", "bridge.log")
	if err := mgr.Upgrade(logFile, slog.LevelDebug); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	if _, err := os.Stat(filepath.Dir(logFile)); err != nil {
		t.Errorf("expected parent directories to exist: %v", err)
	}
}

func TestManager_Upgrade_RespectsLevel(t *testing.T) {
	mgr := NewManager()
	defer func() { _ = mgr.Close() }()

	logFile := filepath.Join(t.TempDir(), "bridge.log")
	if err := mgr.Upgrade(logFile, slog.LevelWarn); err != nil {
		t.Fatalf("Upgrade() error = %v", err)
	}

	mgr.Logger().Info("should be filtered")
	mgr.Logger().Warn("should appear")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if strings.Contains(string(content), "should be filtered") {
		t.Error("info record written despite warn level")
	}
	if !strings.Contains(string(content), "should appear") {
		t.Error("warn record missing")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input  string
		want   slog.Level
		wantOK bool
	}{
		{"debug", slog.LevelDebug, true},
		{"info", slog.LevelInfo, true},
		{"warn", slog.LevelWarn, true},
		{"error", slog.LevelError, true},
		{"ERROR", slog.LevelError, true},
		{"verbose", DefaultLevel, false},
		{"", DefaultLevel, false},
	}

	for _, tt := range tests {
		got, ok := ParseLevel(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLevel(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestRotatingFileLogger(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "host.log")

	logger := RotatingFileLogger(logFile, 5, 2, slog.LevelInfo)
	logger.Info("received url from browser", "url", "https://x/a.bin")

	content, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &record); err != nil {
		t.Fatalf("rotating log line is not JSON: %v", err)
	}
	if record["url"] != "https://x/a.bin" {
		t.Errorf("log attr url = %v, want %q", record["url"], "https://x/a.bin")
	}
}
