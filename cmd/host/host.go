package host

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dariusconca170-prog/turboget-bridge/internal/config"
	"github.com/dariusconca170-prog/turboget-bridge/internal/engineclient"
	"github.com/dariusconca170-prog/turboget-bridge/internal/logging"
	"github.com/dariusconca170-prog/turboget-bridge/internal/nativehost"
)

// HostCmd runs the native messaging host.
//
// The browser spawns this process itself and speaks the length-framed
// messaging protocol on stdin/stdout, so the command must never print to
// stdout. Diagnostics go to a rotated log file.
var HostCmd = &cobra.Command{
	Use:   "host",
	Short: "Run the native messaging host (spawned by the browser)",
	Long: "Run the native messaging host.\n\n" +
		"This command is the target of the registered native messaging manifest; the browser " +
		"launches it and exchanges length-framed JSON messages over stdin/stdout. Each received " +
		"message carries a URL, which is forwarded to the TurboGet engine's local HTTP endpoint. " +
		"The process exits when the browser closes the messaging port.",
	Example: `  # Normally launched by the browser via the registered manifest.
  # For manual testing, pipe framed messages to stdin:
  turboget-bridge host < frames.bin`,
	PreRunE: validateHost,
	RunE:    runHost,
}

func validateHost(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runHost(cmd *cobra.Command, args []string) error {
	// Host diagnostics go to a rotated file; the browser reaps stderr
	// and stdout carries the protocol.
	logger := logging.RotatingFileLogger(
		config.GetPath("host.log_file"),
		config.GetInt("host.log_max_size_mb"),
		config.GetInt("host.log_max_backups"),
		logging.ParseLevelOrDefault(config.GetString("log_level")),
	)

	engine := engineclient.New(
		config.GetString("engine.base_url"),
		engineclient.WithTimeout(time.Duration(config.GetInt("engine.timeout"))*time.Second),
	)

	bridge := nativehost.New(engine, nativehost.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("native messaging host started",
		"engine", engine.BaseURL(),
		"pid", os.Getpid(),
	)

	if err := bridge.Run(ctx, os.Stdin); err != nil {
		logger.Error("host terminated with error", "error", err)
		return fmt.Errorf("host error; %w", err)
	}

	logger.Info("native messaging host exiting")
	return nil
}
