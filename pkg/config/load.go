package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
)

// AppName names the config, state and log directories.
const AppName = "theme-pulse"

// Load reads configuration from the standard config path.
// Search order:
//  1. $XDG_CONFIG_HOME/theme-pulse/config.toml
//  2. ~/.config/theme-pulse/config.toml
//
// If no file exists, returns DefaultConfig() with environment overrides.
func Load() (*Config, error) {
	for _, p := range configSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	cfg := DefaultConfig()
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields the defaults.
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := applyEnvOverrides(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes TOML over the defaults and applies environment
// overrides. An explicitly empty state_dir means the default.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.General.StateDir) == "" {
		cfg.General.StateDir = defaultStateDir()
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
			StateDir: defaultStateDir(),
		},
		Theme: ThemeConfig{
			Enabled:        true,
			Default:        "auto",
			Persist:        true,
			FollowSystem:   true,
			AutoFallback:   "light",
			StorageKey:     prefstore.DefaultKey,
			MirrorDocument: true,
		},
		Environment: EnvironmentConfig{
			PollInterval: Duration{5 * time.Second},
			Detectors:    append([]string(nil), envsignal.DefaultDetectorNames...),
		},
		Keys: KeysConfig{
			Cycle:  []string{"ctrl+t"},
			Toggle: []string{"ctrl+d"},
			Menu:   []string{"t"},
		},
	}
}

// applyEnvOverrides checks environment variables and overrides config values.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("THEME_PULSE_THEME"); v != "" {
		cfg.Theme.Default = v
	}
	if v := os.Getenv("THEME_PULSE_LOG_LEVEL"); v != "" {
		cfg.General.LogLevel = v
	}
	bools := []struct {
		env string
		dst *bool
	}{
		{"THEME_PULSE_ENABLED", &cfg.Theme.Enabled},
		{"THEME_PULSE_PERSIST", &cfg.Theme.Persist},
		{"THEME_PULSE_FOLLOW_SYSTEM", &cfg.Theme.FollowSystem},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config: %s=%q: %w", b.env, v, err)
		}
		*b.dst = parsed
	}
	return nil
}

// configSearchPaths returns the ordered list of config file paths to try.
func configSearchPaths() []string {
	home, _ := os.UserHomeDir()
	var paths []string

	xdg := xdgConfigHome(home)
	paths = append(paths, filepath.Join(xdg, AppName, "config.toml"))

	// If XDG_CONFIG_HOME was explicitly set, also try the fallback default.
	defaultXDG := filepath.Join(home, ".config")
	if xdg != defaultXDG {
		paths = append(paths, filepath.Join(defaultXDG, AppName, "config.toml"))
	}

	return paths
}

// xdgConfigHome returns XDG_CONFIG_HOME or ~/.config as fallback.
func xdgConfigHome(home string) string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".config")
}

// xdgStateHome returns XDG_STATE_HOME or ~/.local/state as fallback.
func xdgStateHome(home string) string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	return filepath.Join(home, ".local", "state")
}

// defaultStateDir is $XDG_STATE_HOME/theme-pulse.
func defaultStateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(xdgStateHome(home), AppName)
}

func joinState(stateDir, name string) string {
	if stateDir == "" {
		stateDir = defaultStateDir()
	}
	return filepath.Join(stateDir, name)
}
