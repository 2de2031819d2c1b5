package config

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/delorenj/imi/internal/constants"
	"github.com/delorenj/imi/internal/errors"
)

// envPrefix is the environment variable prefix consulted for configuration
// overrides, e.g. IMI_ROOT_PATH.
const envPrefix = "IMI"

// Load reads configuration from all available sources with proper precedence,
// searching upward from startDir for a project marker directory. Pass the
// empty string to skip project-config discovery (e.g. commands that run
// outside any repository).
//
// The context parameter is accepted for API consistency and future use, but
// is not currently used for cancellation since config file reads are fast
// local I/O operations.
func Load(_ context.Context, startDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := loadGlobalConfig(v); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(v, startDir); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	applyEnvRootOverride(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// applyEnvRootOverride honors IMI_ROOT as a direct override of root_path,
// matching the convention documented alongside the IMI_* family.
func applyEnvRootOverride(cfg *Config) {
	if root := os.Getenv("IMI_ROOT"); root != "" {
		cfg.RootPath = root
	}
}

// loadGlobalConfig attempts to load the global config file
// ($XDG_CONFIG_HOME/imi/config.toml or ~/.config/imi/config.toml).
// Returns nil if the file doesn't exist or the config directory cannot be determined.
func loadGlobalConfig(v *viper.Viper) error {
	path, err := GlobalConfigPath()
	if err != nil {
		return nil //nolint:nilerr // home directory unavailable; proceed with defaults
	}
	if !fileExists(path) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read global config file")
		}
	}
	return nil
}

// loadProjectConfig attempts to load the nearest ancestor project config
// file (<ancestor>/.imi/config.toml), searching upward from startDir.
// Returns nil if startDir is empty or no marker directory is found.
func loadProjectConfig(v *viper.Viper, startDir string) error {
	if startDir == "" {
		return nil
	}

	path, ok := FindProjectConfigPath(startDir)
	if !ok {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return errors.Wrap(err, "failed to read project config file")
		}
	}
	return nil
}

// fileExists returns true if the file at path exists.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LoadFromPaths loads configuration from specific file paths, bypassing
// environment discovery. Used by tests and by the CLI's --config override.
func LoadFromPaths(_ context.Context, projectConfigPath, globalConfigPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if globalConfigPath != "" {
		v.SetConfigFile(globalConfigPath)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "failed to read global config: %s", globalConfigPath)
			}
		}
	}

	if projectConfigPath != "" {
		v.SetConfigFile(projectConfigPath)
		if err := v.MergeInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !stderrors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, errors.Wrapf(err, "failed to read project config: %s", projectConfigPath)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := Validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// setDefaults configures all default values on the Viper instance. Keys must
// match the mapstructure tag names exactly for proper decoding.
func setDefaults(v *viper.Viper) {
	v.SetDefault("database_path", "")
	v.SetDefault("root_path", "")

	v.SetDefault("sync_settings.enabled", true)
	v.SetDefault("sync_settings.global_sync_path", filepath.Join(constants.SyncRepoDirName, constants.SyncGlobalDirName))
	v.SetDefault("sync_settings.repo_sync_path", filepath.Join(constants.SyncRepoDirName, "repo"))

	v.SetDefault("git_settings.default_branch", "main")
	v.SetDefault("git_settings.remote_name", constants.DefaultRemote)
	v.SetDefault("git_settings.auto_fetch", true)
	v.SetDefault("git_settings.prune_on_fetch", false)

	v.SetDefault("monitoring_settings.enabled", true)
	v.SetDefault("monitoring_settings.watch_file_changes", true)
	v.SetDefault("monitoring_settings.track_agent_activity", true)
	v.SetDefault("monitoring_settings.refresh_interval_ms", int(constants.MonitorSummaryInterval.Milliseconds()))

	v.SetDefault("symlink_files", []string{".env"})

	v.SetDefault("github_settings.default_owner", "")

	v.SetDefault("log_level", "info")
}

// viperDecoderOption returns the decoder options for Viper unmarshal. This
// configures mapstructure to handle time.Duration conversion from strings
// and to reject keys that match no Config field.
func viperDecoderOption() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
		dc.ErrorUnused = true
	}
}
