package relay

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testHostName = "io.github.dariusconca170-prog.turboget"

// writeManifest registers a host manifest pointing at a stub binary inside dir.
func writeManifest(t *testing.T, dir, name string, mutate func(*HostManifest)) string {
	t.Helper()

	binPath := filepath.Join(dir, "host-stub")
	if err := os.WriteFile(binPath, []byte("#!/bin/sh\nexit 0\n"), 0755); err != nil {
		t.Fatalf("failed to write host stub: %v", err)
	}

	manifest := HostManifest{
		Name:           name,
		Description:    "test host",
		Path:           binPath,
		Type:           "stdio",
		AllowedOrigins: []string{"chrome-extension://abcdefghijklmnop/"},
	}
	if mutate != nil {
		mutate(&manifest)
	}

	data, err := json.Marshal(manifest)
	if err != nil {
		t.Fatalf("failed to marshal manifest: %v", err)
	}

	manifestPath := filepath.Join(dir, name+".json")
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	return manifestPath
}

func TestResolverFindsRegisteredHost(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, testHostName, nil)

	resolver := NewResolver([]string{dir})
	manifest, err := resolver.Resolve(testHostName)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if manifest.Name != testHostName {
		t.Errorf("manifest name = %q, want %q", manifest.Name, testHostName)
	}
	if manifest.Type != "stdio" {
		t.Errorf("manifest type = %q, want stdio", manifest.Type)
	}
}

func TestResolverSearchesDirectoriesInOrder(t *testing.T) {
	empty := t.TempDir()
	populated := t.TempDir()
	writeManifest(t, populated, testHostName, nil)

	resolver := NewResolver([]string{empty, populated})
	if _, err := resolver.Resolve(testHostName); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
}

func TestResolverUnregisteredHost(t *testing.T) {
	resolver := NewResolver([]string{t.TempDir()})

	_, err := resolver.Resolve(testHostName)
	if err == nil {
		t.Fatal("expected error for unregistered host")
	}
	if !errors.Is(err, ErrHostNotRegistered) {
		t.Errorf("expected ErrHostNotRegistered, got %v", err)
	}
}

func TestResolverRejectsNameMismatch(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, testHostName, func(m *HostManifest) {
		m.Name = "some.other.host"
	})

	if _, err := NewResolver([]string{dir}).Resolve(testHostName); err == nil {
		t.Fatal("expected error for manifest name mismatch")
	}
}

func TestResolverRejectsNonStdioType(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, testHostName, func(m *HostManifest) {
		m.Type = "tcp"
	})

	if _, err := NewResolver([]string{dir}).Resolve(testHostName); err == nil {
		t.Fatal("expected error for non-stdio manifest type")
	}
}

func TestResolverRejectsMissingBinary(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, testHostName, func(m *HostManifest) {
		m.Path = filepath.Join(dir, "does-not-exist")
	})

	if _, err := NewResolver([]string{dir}).Resolve(testHostName); err == nil {
		t.Fatal("expected error for missing host binary")
	}
}

func TestResolverRejectsMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, testHostName+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}

	if _, err := NewResolver([]string{dir}).Resolve(testHostName); err == nil {
		t.Fatal("expected error for malformed manifest")
	}
}
