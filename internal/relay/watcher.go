package relay

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ManifestWatcher watches the manifest directories and logs when the
// external engine's host registration appears or disappears. A missing
// registration means intercepted transfers are silently dropped, so the log
// line is the only breadcrumb an operator gets.
type ManifestWatcher struct {
	hostName  string
	resolver  *Resolver
	fsWatcher *fsnotify.Watcher
	logger    *slog.Logger

	stopOnce sync.Once
	started  bool
	doneCh   chan struct{}
}

// NewManifestWatcher creates a watcher for the host's manifest file across
// the resolver's directories. Directories that do not exist are skipped;
// at least one must be watchable.
func NewManifestWatcher(hostName string, resolver *Resolver, logger *slog.Logger) (*ManifestWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher; %w", err)
	}

	watched := 0
	for _, dir := range resolver.Dirs() {
		if err := fsw.Add(dir); err != nil {
			logger.Debug("skipping unwatchable manifest directory", "dir", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = fsw.Close()
		return nil, fmt.Errorf("no watchable manifest directories among %d configured", len(resolver.Dirs()))
	}

	return &ManifestWatcher{
		hostName:  hostName,
		resolver:  resolver,
		fsWatcher: fsw,
		logger:    logger,
		doneCh:    make(chan struct{}),
	}, nil
}

// Start processes manifest directory events until ctx is cancelled or the
// watcher is stopped.
func (w *ManifestWatcher) Start(ctx context.Context) {
	manifestFile := w.hostName + ".json"
	w.started = true

	go func() {
		defer close(w.doneCh)
		for {
			select {
			case event, ok := <-w.fsWatcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != manifestFile {
					continue
				}
				w.handleEvent(event)
			case err, ok := <-w.fsWatcher.Errors:
				if !ok {
					return
				}
				w.logger.Warn("manifest watcher error", "error", err)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// handleEvent logs registration changes for the watched host manifest.
func (w *ManifestWatcher) handleEvent(event fsnotify.Event) {
	switch {
	case event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Write):
		if _, err := w.resolver.Resolve(w.hostName); err != nil {
			w.logger.Warn("host manifest changed but does not resolve",
				"host", w.hostName, "path", event.Name, "error", err)
			return
		}
		w.logger.Info("external engine host registered", "host", w.hostName, "path", event.Name)
	case event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename):
		w.logger.Warn("external engine host unregistered; intercepted transfers will be dropped",
			"host", w.hostName, "path", event.Name)
	}
}

// Stop closes the watcher and waits for the event loop to exit.
func (w *ManifestWatcher) Stop() {
	w.stopOnce.Do(func() {
		_ = w.fsWatcher.Close()
		if w.started {
			<-w.doneCh
		}
	})
}
