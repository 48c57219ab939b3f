package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load reads and returns the typed configuration.
// It searches for configuration files in priority order:
//  1. Directory specified by TURBOGET_BRIDGE_CONFIG_DIR environment variable
//  2. ~/.config/turboget-bridge/
//  3. Current working directory (.)
//
// If no config file is found, defaults are used.
// If a config file exists but is invalid, returns a validation error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TURBOGET_BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v)

	if envPath := os.Getenv("TURBOGET_BRIDGE_CONFIG_DIR"); envPath != "" {
		v.AddConfigPath(envPath)
	}

	if home := os.Getenv("HOME"); home != "" {
		v.AddConfigPath(filepath.Join(home, ".config", "turboget-bridge"))
	}

	v.AddConfigPath(".")

	err := v.ReadInConfig()
	if err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config; %w", err)
		}
		// No file; defaults and env vars apply.
	}

	return unmarshalConfig(v)
}

// LoadFromPath reads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TURBOGET_BRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setViperDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to read config from %s; %w", path, err)
	}

	return unmarshalConfig(v)
}

// unmarshalConfig converts viper config to typed Config struct.
func unmarshalConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config; %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setViperDefaults registers all default configuration values with a viper instance.
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_file", DefaultLogFile)

	v.SetDefault("relay.host_name", DefaultRelayHostName)
	v.SetDefault("relay.manifest_dirs", []string{})
	v.SetDefault("relay.connect_timeout", DefaultRelayConnectTimeout)

	v.SetDefault("engine.base_url", DefaultEngineBaseURL)
	v.SetDefault("engine.timeout", DefaultEngineTimeout)

	v.SetDefault("host.log_file", DefaultHostLogFile)
	v.SetDefault("host.log_max_size_mb", DefaultHostLogMaxSizeMB)
	v.SetDefault("host.log_max_backups", DefaultHostLogMaxBackups)

	v.SetDefault("menu.id", DefaultMenuID)
	v.SetDefault("menu.title", DefaultMenuTitle)

	v.SetDefault("metrics.listen", DefaultMetricsListen)
}
