package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a config validation failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var b strings.Builder
	b.WriteString("config validation failed:\n")
	for _, err := range e {
		b.WriteString("  - ")
		b.WriteString(err.Error())
		b.WriteString("\n")
	}
	return b.String()
}

// validLogLevels lists recognized log levels.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks the configuration for errors.
// Returns ValidationErrors if validation fails.
func Validate(cfg *Config) error {
	var errs ValidationErrors

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		errs = append(errs, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("must be one of: debug, info, warn, error; got %q", cfg.LogLevel),
		})
	}

	// Validate relay config
	if cfg.Relay.HostName == "" {
		errs = append(errs, ValidationError{
			Field:   "relay.host_name",
			Message: "must not be empty",
		})
	} else if strings.ContainsAny(cfg.Relay.HostName, "/\\") {
		// The host name doubles as the manifest file name.
		errs = append(errs, ValidationError{
			Field:   "relay.host_name",
			Message: fmt.Sprintf("must not contain path separators, got %q", cfg.Relay.HostName),
		})
	}

	if cfg.Relay.ConnectTimeout < 1 {
		errs = append(errs, ValidationError{
			Field:   "relay.connect_timeout",
			Message: fmt.Sprintf("must be at least 1 second, got %d", cfg.Relay.ConnectTimeout),
		})
	}

	// Validate engine config
	if cfg.Engine.BaseURL == "" {
		errs = append(errs, ValidationError{
			Field:   "engine.base_url",
			Message: "must not be empty",
		})
	} else if u, err := url.Parse(cfg.Engine.BaseURL); err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		errs = append(errs, ValidationError{
			Field:   "engine.base_url",
			Message: fmt.Sprintf("must be an http or https URL, got %q", cfg.Engine.BaseURL),
		})
	}

	if cfg.Engine.Timeout < 1 {
		errs = append(errs, ValidationError{
			Field:   "engine.timeout",
			Message: fmt.Sprintf("must be at least 1 second, got %d", cfg.Engine.Timeout),
		})
	}

	// Validate host config
	if cfg.Host.LogFile == "" {
		errs = append(errs, ValidationError{
			Field:   "host.log_file",
			Message: "must not be empty",
		})
	}

	if cfg.Host.LogMaxSizeMB < 1 {
		errs = append(errs, ValidationError{
			Field:   "host.log_max_size_mb",
			Message: fmt.Sprintf("must be at least 1, got %d", cfg.Host.LogMaxSizeMB),
		})
	}

	if cfg.Host.LogMaxBackups < 0 {
		errs = append(errs, ValidationError{
			Field:   "host.log_max_backups",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Host.LogMaxBackups),
		})
	}

	// Validate menu config
	if cfg.Menu.ID == "" {
		errs = append(errs, ValidationError{
			Field:   "menu.id",
			Message: "must not be empty",
		})
	}

	if cfg.Menu.Title == "" {
		errs = append(errs, ValidationError{
			Field:   "menu.title",
			Message: "must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	var ve ValidationError
	var ves ValidationErrors
	return errors.As(err, &ve) || errors.As(err, &ves)
}
