package config

import (
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// reloadMu serializes reload attempts; a SIGHUP arriving mid-reload is dropped.
var reloadMu sync.Mutex

var (
	// handlerMu protects handler
	handlerMu sync.Mutex

	// handler is the running SIGHUP listener, if any
	handler *sighupHandler
)

type sighupHandler struct {
	signals chan os.Signal
	stop    chan struct{}
	done    chan struct{}
}

// SetupSignalHandler starts the SIGHUP listener that hot-reloads the config.
// Safe to call multiple times; each call replaces the previous listener.
func SetupSignalHandler() {
	h := &sighupHandler{
		signals: make(chan os.Signal, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}

	handlerMu.Lock()
	prev := handler
	handler = h
	handlerMu.Unlock()

	if prev != nil {
		prev.shutdown()
	}

	signal.Notify(h.signals, syscall.SIGHUP)
	go h.run()
}

func (h *sighupHandler) run() {
	defer close(h.done)
	for {
		select {
		case <-h.signals:
			// A signal during an in-flight reload is dropped, not queued
			if reloadMu.TryLock() {
				slog.Info("received SIGHUP; reloading config")
				_ = Reload() // failure keeps the previous config; logged inside
				reloadMu.Unlock()
			} else {
				slog.Debug("SIGHUP received during reload; ignoring")
			}
		case <-h.stop:
			signal.Stop(h.signals)
			return
		}
	}
}

func (h *sighupHandler) shutdown() {
	close(h.stop)
	<-h.done
}

// StopSignalHandler stops the SIGHUP listener and waits for it to exit.
func StopSignalHandler() {
	handlerMu.Lock()
	h := handler
	handler = nil
	handlerMu.Unlock()

	if h != nil {
		h.shutdown()
	}
}
