package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dariusconca170-prog/turboget-bridge/internal/browser"
	"github.com/dariusconca170-prog/turboget-bridge/internal/config"
	"github.com/dariusconca170-prog/turboget-bridge/internal/events"
	"github.com/dariusconca170-prog/turboget-bridge/internal/guard"
	"github.com/dariusconca170-prog/turboget-bridge/internal/menus"
	"github.com/dariusconca170-prog/turboget-bridge/internal/metrics"
	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
)

// WatchCmd runs the interception pipeline against a host-runtime feed.
//
// The feed is JSON lines on stdin: download-creation notifications and
// context-menu clicks. Outbound commands (transfer cancellation, menu
// registration) are written as JSON lines to stdout.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the browser feed and relay intercepted downloads",
	Long: "Watch the browser feed and relay intercepted downloads.\n\n" +
		"Consumes download-creation and menu-click notifications as JSON lines on stdin. " +
		"In-progress transfers are cancelled in the browser and their URLs relayed to the " +
		"registered native messaging host; clicks on the bridge's context-menu entry relay " +
		"the clicked link the same way. The menu entry is registered once at startup.",
	Example: `  # Attach the bridge to a browser connector
  browser-connector | turboget-bridge watch

  # Replay a captured feed
  turboget-bridge watch < feed.jsonl`,
	PreRunE: validateWatch,
	RunE:    runWatch,
}

func validateWatch(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := slog.Default()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := events.NewBus(events.WithLogger(logger))
	defer func() { _ = bus.Close() }()

	// Config reloads (SIGHUP) surface on the bus
	config.SetEventBus(bus)
	defer config.SetEventBus(nil)

	hostName := config.GetString("relay.host_name")
	resolver := relay.NewResolver(config.GetStringSlice("relay.manifest_dirs"))

	channel := relay.NewChannel(hostName, resolver,
		relay.WithLogger(logger),
		relay.WithBus(bus),
		relay.WithConnectTimeout(time.Duration(config.GetInt("relay.connect_timeout"))*time.Second),
	)

	// Stdout carries commands back to the host runtime
	conn := browser.NewConn(os.Stdout, logger)

	g := guard.New(conn, channel, guard.WithLogger(logger))
	unsubGuard := g.Attach(bus)
	defer unsubGuard()

	capture := menus.New(conn, channel,
		menus.WithEntry(browser.MenuEntry{
			ID:       config.GetString("menu.id"),
			Title:    config.GetString("menu.title"),
			Contexts: []string{"link"},
		}),
		menus.WithLogger(logger),
	)
	if err := capture.EnsureEntry(); err != nil {
		return fmt.Errorf("failed to register context menu entry; %w", err)
	}
	unsubMenu := capture.Attach(bus)
	defer unsubMenu()

	unsubMetrics := metrics.Attach(bus)
	defer unsubMetrics()

	if addr := config.GetString("metrics.listen"); addr != "" {
		go func() {
			if serveErr := metrics.Serve(ctx, addr, logger); serveErr != nil {
				logger.Error("metrics endpoint failed", "error", serveErr)
			}
		}()
	}

	// Log manifest registration changes while running
	watcher, err := relay.NewManifestWatcher(hostName, resolver, logger)
	if err != nil {
		logger.Warn("manifest watcher unavailable", "error", err)
	} else {
		watcher.Start(ctx)
		defer watcher.Stop()
	}

	logger.Info("watching host runtime feed",
		"host_name", hostName,
		"menu_id", capture.Entry().ID,
	)

	err = conn.ReadEvents(ctx, os.Stdin,
		func(e browser.TransferEvent) {
			if pubErr := bus.Publish(ctx, events.NewTransferCreated(e)); pubErr != nil {
				logger.Error("failed to publish transfer event", "error", pubErr)
			}
		},
		func(c browser.MenuClick) {
			if pubErr := bus.Publish(ctx, events.NewMenuClicked(c)); pubErr != nil {
				logger.Error("failed to publish menu click", "error", pubErr)
			}
		},
	)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("feed error; %w", err)
	}

	return nil
}
