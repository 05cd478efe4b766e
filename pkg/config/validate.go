package config

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/envsignal"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// Validate checks the configuration for values that cannot work regardless
// of the theme registry. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.General.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("general.log_level: unknown level %q", c.General.LogLevel))
	}

	if strings.TrimSpace(c.Theme.Default) == "" {
		errs = append(errs, errors.New("theme.default: must not be empty"))
	}
	switch c.Theme.AutoFallback {
	case string(theme.Light), string(theme.Dark):
	default:
		errs = append(errs, fmt.Errorf("theme.auto_fallback: must be light or dark, got %q", c.Theme.AutoFallback))
	}
	if c.Theme.StorageKey == "" {
		errs = append(errs, errors.New("theme.storage_key: must not be empty"))
	}

	if c.Environment.PollInterval.Duration < 0 {
		errs = append(errs, errors.New("environment.poll_interval: must not be negative"))
	}
	for _, name := range c.Environment.Detectors {
		if !envsignal.KnownDetector(name) {
			errs = append(errs, fmt.Errorf("environment.detectors: unknown detector %q", name))
		}
	}

	for _, k := range []struct {
		name string
		keys []string
	}{
		{"keys.cycle", c.Keys.Cycle},
		{"keys.toggle", c.Keys.Toggle},
		{"keys.menu", c.Keys.Menu},
	} {
		if len(k.keys) == 0 {
			errs = append(errs, fmt.Errorf("%s: at least one key required", k.name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// ValidateThemes checks that the configured theme ids exist in reg.
func (c *Config) ValidateThemes(reg *theme.Registry) error {
	var errs []error
	if !reg.Has(theme.ID(c.Theme.Default)) {
		errs = append(errs, fmt.Errorf("theme.default: %w", &theme.UnknownThemeError{ID: theme.ID(c.Theme.Default)}))
	}
	if !reg.Has(theme.ID(c.Theme.AutoFallback)) {
		errs = append(errs, fmt.Errorf("theme.auto_fallback: %w", &theme.UnknownThemeError{ID: theme.ID(c.Theme.AutoFallback)}))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
