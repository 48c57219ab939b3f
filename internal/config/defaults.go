package config

import "github.com/spf13/viper"

// Default configuration values.
const (
	DefaultLogLevel = "info"
	DefaultLogFile  = "~/.config/turboget-bridge/bridge.log"

	// Relay defaults. The host name must match the registered native
	// messaging manifest byte for byte.
	DefaultRelayHostName       = "io.github.dariusconca170-prog.turboget"
	DefaultRelayConnectTimeout = 10 // seconds

	// Engine defaults. The port must match the one the engine GUI
	// listens on.
	DefaultEngineBaseURL = "http://127.0.0.1:9876"
	DefaultEngineTimeout = 5 // seconds

	// Native host logging defaults.
	DefaultHostLogFile       = "~/.config/turboget-bridge/host.log"
	DefaultHostLogMaxSizeMB  = 5
	DefaultHostLogMaxBackups = 3

	// Context menu entry defaults.
	DefaultMenuID    = "download-with-turboget"
	DefaultMenuTitle = "Download with TurboGet"

	// Metrics endpoint default. Empty disables it.
	DefaultMetricsListen = ""
)

// setDefaults registers all default configuration values with viper.
// Called during Init() before reading config files.
func setDefaults() {
	viper.SetDefault("log_level", DefaultLogLevel)
	viper.SetDefault("log_file", DefaultLogFile)

	// Relay defaults; manifest_dirs defaults to the platform layout,
	// resolved lazily by the relay package.
	viper.SetDefault("relay.host_name", DefaultRelayHostName)
	viper.SetDefault("relay.manifest_dirs", []string{})
	viper.SetDefault("relay.connect_timeout", DefaultRelayConnectTimeout)

	// Engine defaults
	viper.SetDefault("engine.base_url", DefaultEngineBaseURL)
	viper.SetDefault("engine.timeout", DefaultEngineTimeout)

	// Native host defaults
	viper.SetDefault("host.log_file", DefaultHostLogFile)
	viper.SetDefault("host.log_max_size_mb", DefaultHostLogMaxSizeMB)
	viper.SetDefault("host.log_max_backups", DefaultHostLogMaxBackups)

	// Menu defaults
	viper.SetDefault("menu.id", DefaultMenuID)
	viper.SetDefault("menu.title", DefaultMenuTitle)

	// Metrics defaults
	viper.SetDefault("metrics.listen", DefaultMetricsListen)
}
