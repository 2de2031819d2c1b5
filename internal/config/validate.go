package config

import (
	"fmt"

	"github.com/delorenj/imi/internal/errors"
)

// validLogLevels enumerates the log levels accepted by LogLevel.
var validLogLevels = map[string]struct{}{ //nolint:gochecknoglobals // static lookup table
	"trace": {},
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	if cfg.GitSettings.DefaultBranch == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git_settings.default_branch must not be empty")
	}

	if cfg.GitSettings.RemoteName == "" {
		return errors.Wrap(errors.ErrConfigInvalid, "git_settings.remote_name must not be empty")
	}

	if cfg.MonitoringSettings.RefreshIntervalMS <= 0 {
		return errors.Wrapf(errors.ErrConfigInvalid,
			"monitoring_settings.refresh_interval_ms must be positive, got %d", cfg.MonitoringSettings.RefreshIntervalMS)
	}

	if cfg.LogLevel != "" {
		if _, ok := validLogLevels[cfg.LogLevel]; !ok {
			return errors.Wrapf(errors.ErrConfigInvalid, "log_level %q is not recognized", cfg.LogLevel)
		}
	}

	return nil
}

// FormatValidationError wraps an underlying validation error with additional
// context, matching the teacher's pattern of prefixing failures by section.
func FormatValidationError(section string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("validate %s: %w", section, err)
}
