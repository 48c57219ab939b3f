package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	hostcmd "github.com/dariusconca170-prog/turboget-bridge/cmd/host"
	sendcmd "github.com/dariusconca170-prog/turboget-bridge/cmd/send"
	versioncmd "github.com/dariusconca170-prog/turboget-bridge/cmd/version"
	watchcmd "github.com/dariusconca170-prog/turboget-bridge/cmd/watch"
	"github.com/dariusconca170-prog/turboget-bridge/internal/config"
	"github.com/dariusconca170-prog/turboget-bridge/internal/logging"
)

// logManager is the global logging manager, created in init() and upgraded after config loads
var logManager *logging.Manager

var bridgeCmd = &cobra.Command{
	Use:   "turboget-bridge",
	Short: "Browser download interception bridge for the TurboGet engine",
	Long: "TurboGet Bridge intercepts browser downloads and hands them to the TurboGet retrieval engine.\n\n" +
		"The bridge watches the browser's download-creation feed, cancels transfers the browser has already started, " +
		"and relays their URLs through the registered native messaging host. It also registers a context-menu entry " +
		"so individual links can be sent to the engine directly.\n\n",
	PersistentPreRunE: runInitialize,
}

func init() {
	// Create logging Manager in bootstrap mode (stderr text only)
	logManager = logging.NewManager()

	bridgeCmd.AddCommand(hostcmd.HostCmd)
	bridgeCmd.AddCommand(watchcmd.WatchCmd)
	bridgeCmd.AddCommand(sendcmd.SendCmd)
	bridgeCmd.AddCommand(versioncmd.VersionCmd)
}

func runInitialize(cmd *cobra.Command, args []string) error {
	logger := logManager.Logger()

	// Initialize config subsystem
	if err := config.Init(); err != nil {
		return err
	}

	// Upgrade logging after config is available
	logFile := config.GetPath("log_file")
	levelStr := config.GetString("log_level")
	level, ok := logging.ParseLevel(levelStr)
	if !ok {
		level = logging.DefaultLevel
		if levelStr != "" {
			logger.Warn("invalid log level configured, using default", "configured", levelStr, "default", "info")
		}
	}

	if err := logManager.Upgrade(logFile, level); err != nil {
		logger.Warn("failed to enable file logging, continuing with stderr only", "error", err)
		// Don't return error - continue with bootstrap mode
	}

	// Subcommands log through the slog default
	slog.SetDefault(logger)

	return nil
}

func Execute() error {
	bridgeCmd.SilenceErrors = true
	bridgeCmd.SilenceUsage = true

	// Ensure logging is properly closed on exit
	defer func() { _ = logManager.Close() }()

	err := bridgeCmd.Execute()

	if err != nil {
		cmd, _, _ := bridgeCmd.Find(os.Args[1:])
		if cmd == nil {
			cmd = bridgeCmd
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if !cmd.SilenceUsage {
			fmt.Fprintf(os.Stderr, "\n")
			cmd.SetOut(os.Stderr)
			_ = cmd.Usage()
		}

		return err
	}

	return nil
}
