// Package config provides TOML-based configuration for theme-pulse.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config is the complete configuration, read once at startup.
type Config struct {
	General     GeneralConfig     `toml:"general"`
	Theme       ThemeConfig       `toml:"theme"`
	Environment EnvironmentConfig `toml:"environment"`
	Keys        KeysConfig        `toml:"keys"`
}

// GeneralConfig holds logging and state locations.
type GeneralConfig struct {
	LogLevel string `toml:"log_level"` // debug|info|warn|error
	LogFile  string `toml:"log_file"`  // empty means <state_dir>/theme-pulse.log
	StateDir string `toml:"state_dir"` // preferences.yaml and document.toml live here
}

// ThemeConfig controls the theme controller.
type ThemeConfig struct {
	Enabled        bool   `toml:"enabled"`
	Default        string `toml:"default"`
	Persist        bool   `toml:"persist"`
	FollowSystem   bool   `toml:"follow_system"`
	AutoFallback   string `toml:"auto_fallback"` // light|dark
	StorageKey     string `toml:"storage_key"`
	RegistryFile   string `toml:"registry_file"` // optional TOML registry; empty uses the built-ins
	MirrorDocument bool   `toml:"mirror_document"`
}

// EnvironmentConfig controls the "prefers dark" environment signal.
type EnvironmentConfig struct {
	PollInterval Duration `toml:"poll_interval"` // 0 disables polling
	Detectors    []string `toml:"detectors"`
}

// KeysConfig binds the theme shortcuts.
type KeysConfig struct {
	Cycle  []string `toml:"cycle"`
	Toggle []string `toml:"toggle"`
	Menu   []string `toml:"menu"`
}

// LogFilePath returns the configured log file or the default inside the
// state directory.
func (c *Config) LogFilePath() string {
	if c.General.LogFile != "" {
		return c.General.LogFile
	}
	return joinState(c.General.StateDir, "theme-pulse.log")
}

// SlogLevel maps LogLevel to a slog level. Unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.General.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// String summarises the theme settings for debug logging.
func (t ThemeConfig) String() string {
	return fmt.Sprintf("default=%s persist=%t follow_system=%t auto_fallback=%s",
		t.Default, t.Persist, t.FollowSystem, t.AutoFallback)
}
