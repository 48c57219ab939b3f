package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ErrHostNotRegistered indicates no native-messaging host manifest matching
// the configured host name was found in any manifest directory.
var ErrHostNotRegistered = errors.New("native messaging host is not registered")

// HostManifest is the registered description of a native-messaging host,
// stored as <host name>.json inside a browser's NativeMessagingHosts
// directory.
type HostManifest struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	Path           string   `json:"path"`
	Type           string   `json:"type"`
	AllowedOrigins []string `json:"allowed_origins"`
}

// Resolver locates host manifests across a set of manifest directories.
type Resolver struct {
	dirs []string
}

// NewResolver creates a resolver searching the given directories in order.
// An empty list falls back to DefaultManifestDirs.
func NewResolver(dirs []string) *Resolver {
	if len(dirs) == 0 {
		dirs = DefaultManifestDirs()
	}
	return &Resolver{dirs: dirs}
}

// Dirs returns the directories the resolver searches.
func (r *Resolver) Dirs() []string {
	return r.dirs
}

// Resolve finds the manifest registered under the given host name. Returns
// ErrHostNotRegistered (wrapped) when no directory holds a matching
// manifest.
func (r *Resolver) Resolve(name string) (*HostManifest, error) {
	for _, dir := range r.dirs {
		path := filepath.Join(dir, name+".json")

		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read host manifest %q; %w", path, err)
		}

		var manifest HostManifest
		if err := json.Unmarshal(data, &manifest); err != nil {
			return nil, fmt.Errorf("failed to parse host manifest %q; %w", path, err)
		}

		if manifest.Name != name {
			return nil, fmt.Errorf("host manifest %q declares name %q, expected %q", path, manifest.Name, name)
		}
		if manifest.Type != "stdio" {
			return nil, fmt.Errorf("host manifest %q has unsupported type %q", path, manifest.Type)
		}
		if manifest.Path == "" {
			return nil, fmt.Errorf("host manifest %q has an empty path", path)
		}
		if _, err := os.Stat(manifest.Path); err != nil {
			return nil, fmt.Errorf("host binary %q from manifest %q is not accessible; %w", manifest.Path, path, err)
		}

		return &manifest, nil
	}

	return nil, fmt.Errorf("%w: %q (searched %d directories)", ErrHostNotRegistered, name, len(r.dirs))
}

// DefaultManifestDirs returns the per-user NativeMessagingHosts directories
// for the current platform. Chrome and Chromium layouts are both included on
// Linux.
func DefaultManifestDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		return []string{
			filepath.Join(home, "Library", "Application Support", "Google", "Chrome", "NativeMessagingHosts"),
			filepath.Join(home, "Library", "Application Support", "Chromium", "NativeMessagingHosts"),
		}
	default:
		return []string{
			filepath.Join(home, ".config", "google-chrome", "NativeMessagingHosts"),
			filepath.Join(home, ".config", "chromium", "NativeMessagingHosts"),
		}
	}
}
