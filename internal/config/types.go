package config

// Config is the root configuration structure for the bridge.
type Config struct {
	LogLevel string        `yaml:"log_level" mapstructure:"log_level"`
	LogFile  string        `yaml:"log_file" mapstructure:"log_file"`
	Relay    RelayConfig   `yaml:"relay" mapstructure:"relay"`
	Engine   EngineConfig  `yaml:"engine" mapstructure:"engine"`
	Host     HostConfig    `yaml:"host" mapstructure:"host"`
	Menu     MenuConfig    `yaml:"menu" mapstructure:"menu"`
	Metrics  MetricsConfig `yaml:"metrics" mapstructure:"metrics"`
}

// RelayConfig holds native-messaging relay configuration.
type RelayConfig struct {
	// HostName is the fixed external-process identifier. It must match
	// the name in the registered host manifest.
	HostName string `yaml:"host_name" mapstructure:"host_name"`

	// ManifestDirs overrides the platform NativeMessagingHosts search
	// directories. Empty means platform defaults.
	ManifestDirs []string `yaml:"manifest_dirs,flow" mapstructure:"manifest_dirs"`

	// ConnectTimeout bounds one connection attempt, in seconds.
	ConnectTimeout int `yaml:"connect_timeout" mapstructure:"connect_timeout"`
}

// EngineConfig holds the retrieval engine's local control endpoint.
type EngineConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Timeout int    `yaml:"timeout" mapstructure:"timeout"` // seconds
}

// HostConfig holds native host logging configuration. The host logs to a
// rotated file only; its stdout carries the messaging protocol.
type HostConfig struct {
	LogFile       string `yaml:"log_file" mapstructure:"log_file"`
	LogMaxSizeMB  int    `yaml:"log_max_size_mb" mapstructure:"log_max_size_mb"`
	LogMaxBackups int    `yaml:"log_max_backups" mapstructure:"log_max_backups"`
}

// MenuConfig holds the context-menu entry registration.
type MenuConfig struct {
	ID    string `yaml:"id" mapstructure:"id"`
	Title string `yaml:"title" mapstructure:"title"`
}

// MetricsConfig holds the optional Prometheus endpoint settings.
type MetricsConfig struct {
	// Listen is the metrics listen address (e.g. "127.0.0.1:9877").
	// Empty disables the endpoint.
	Listen string `yaml:"listen" mapstructure:"listen"`
}
