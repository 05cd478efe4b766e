// Package starship generates a single-line theme segment for use as a
// starship custom module. It reads the mirrored document file and the
// preferences file directly and never starts the controller, so a prompt
// render does not pay for environment detection.
package starship

import (
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// Config controls which segments appear in the starship output.
type Config struct {
	StateDir      string          // where document.toml and preferences.yaml live
	StorageKey    string          // preference key holding the requested theme
	Registry      *theme.Registry // labels and icons; nil means the builtin set
	ShowRequested bool            // add a segment naming the requested theme when it differs
	MaxWidth      int             // max visible width (default 40)
}

// Segment represents a single piece of the status line.
type Segment struct {
	Icon  string // emoji or nerd font icon
	Text  string // the actual content
	Color string // ANSI color code
}

// ssDefaultMaxWidth is the default maximum visible width for the
// starship output line.
const ssDefaultMaxWidth = 40

// Render produces a single-line starship module string. It returns an
// empty string when no theme has been mirrored yet (starship hides empty
// modules).
func Render(cfg Config) string {
	maxWidth := cfg.MaxWidth
	if maxWidth <= 0 {
		maxWidth = ssDefaultMaxWidth
	}
	reg := cfg.Registry
	if reg == nil {
		reg = theme.Builtin()
	}

	effective := ssEffectiveSegment(reg, cfg.StateDir)
	if effective == nil {
		return ""
	}
	segments := []*Segment{effective}

	if cfg.ShowRequested {
		if seg := ssRequestedSegment(reg, cfg.StateDir, cfg.StorageKey, effective.Text); seg != nil {
			segments = append(segments, seg)
		}
	}

	return ssFormatLine(segments, maxWidth)
}
