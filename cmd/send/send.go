package send

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/dariusconca170-prog/turboget-bridge/internal/config"
	"github.com/dariusconca170-prog/turboget-bridge/internal/relay"
	"github.com/dariusconca170-prog/turboget-bridge/internal/urlutil"
)

// SendCmd relays a single URL through the native messaging host.
var SendCmd = &cobra.Command{
	Use:   "send <url>",
	Short: "Relay a single URL to the TurboGet engine",
	Long: "Relay a single URL to the TurboGet engine.\n\n" +
		"Performs a one-shot hand-off through the registered native messaging host, " +
		"exactly as the interception pipeline would. Useful for scripting and for " +
		"verifying the host registration end to end.",
	Example: `  # Hand a direct download link to the engine
  turboget-bridge send https://example.com/big-file.iso`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateSend,
	RunE:    runSend,
}

func validateSend(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	return nil
}

func runSend(cmd *cobra.Command, args []string) error {
	logger := slog.Default()
	url := args[0]

	// The relay accepts any URL as-is; an odd-looking one is worth a note.
	if !urlutil.IsValid(url) {
		logger.Warn("url has no scheme or host, relaying as-is", "url", url)
	}

	resolver := relay.NewResolver(config.GetStringSlice("relay.manifest_dirs"))
	channel := relay.NewChannel(config.GetString("relay.host_name"), resolver,
		relay.WithLogger(logger),
		relay.WithConnectTimeout(time.Duration(config.GetInt("relay.connect_timeout"))*time.Second),
	)

	result := channel.Relay(context.Background(), relay.NewMessage(url))
	if !result.Sent() {
		return fmt.Errorf("relay failed: %s", result.Reason)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "sent %s (filename %s)\n", url, urlutil.DefaultFilename(url))
	return nil
}
