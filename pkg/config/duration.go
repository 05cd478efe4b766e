package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Duration is a non-negative interval read from TOML. It accepts Go
// duration strings ("5s", "1m30s"), bare integers as seconds ("10"), and
// "off" or "" for zero, which disables the timer it configures.
type Duration struct {
	time.Duration
}

// Off reports whether the interval disables its timer.
func (d Duration) Off() bool { return d.Duration <= 0 }

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch strings.ToLower(s) {
	case "", "off", "0":
		d.Duration = 0
		return nil
	}

	if secs, err := strconv.Atoi(s); err == nil {
		if secs < 0 {
			return fmt.Errorf("negative interval %q", s)
		}
		d.Duration = time.Duration(secs) * time.Second
		return nil
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("interval %q: want a duration like 5s, seconds, or off: %w", s, err)
	}
	if parsed < 0 {
		return fmt.Errorf("negative interval %q", s)
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler. Zero encodes as "off".
func (d Duration) MarshalText() ([]byte, error) {
	if d.Off() {
		return []byte("off"), nil
	}
	return []byte(d.Duration.String()), nil
}
