package envsignal

import (
	"os"
	"strconv"
	"strings"
)

const (
	// OverrideEnv forces the signal: "1"/"true"/"dark" or "0"/"false"/"light".
	OverrideEnv = "THEME_PULSE_PREFERS_DARK"

	priorityOverride  = 100
	priorityOS        = 50
	priorityGTK       = 20
	priorityColorFGBG = 15
	priorityTerminal  = 10
)

// OverrideDetector reads THEME_PULSE_PREFERS_DARK.
type OverrideDetector struct{}

// NewOverrideDetector returns the explicit override detector.
func NewOverrideDetector() *OverrideDetector { return &OverrideDetector{} }

func (*OverrideDetector) Name() string  { return "override" }
func (*OverrideDetector) Priority() int { return priorityOverride }

func (*OverrideDetector) Available() bool {
	return os.Getenv(OverrideEnv) != ""
}

func (*OverrideDetector) Detect() (prefersDark, ok bool) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(OverrideEnv)))
	switch v {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// GTKThemeDetector detects the preference from the GTK_THEME variable.
type GTKThemeDetector struct{}

// NewGTKThemeDetector returns a GTK_THEME detector.
func NewGTKThemeDetector() *GTKThemeDetector { return &GTKThemeDetector{} }

func (*GTKThemeDetector) Name() string  { return "gtk" }
func (*GTKThemeDetector) Priority() int { return priorityGTK }

func (*GTKThemeDetector) Available() bool {
	return os.Getenv("GTK_THEME") != ""
}

// Detect reports dark when GTK_THEME mentions "dark" (e.g. Adwaita:dark).
func (*GTKThemeDetector) Detect() (prefersDark, ok bool) {
	gtkTheme := os.Getenv("GTK_THEME")
	if gtkTheme == "" {
		return false, false
	}
	return strings.Contains(strings.ToLower(gtkTheme), "dark"), true
}

// ColorFGBGDetector reads the rxvt-style COLORFGBG variable ("fg;bg" or
// "fg;default;bg") that several terminals export.
type ColorFGBGDetector struct{}

// NewColorFGBGDetector returns a COLORFGBG detector.
func NewColorFGBGDetector() *ColorFGBGDetector { return &ColorFGBGDetector{} }

func (*ColorFGBGDetector) Name() string  { return "colorfgbg" }
func (*ColorFGBGDetector) Priority() int { return priorityColorFGBG }

func (*ColorFGBGDetector) Available() bool {
	return os.Getenv("COLORFGBG") != ""
}

// Detect classifies the background palette index: 0-6 and 8 are dark,
// 7 and 9-15 are light.
func (*ColorFGBGDetector) Detect() (prefersDark, ok bool) {
	fields := strings.Split(os.Getenv("COLORFGBG"), ";")
	if len(fields) < 2 {
		return false, false
	}
	bg, err := strconv.Atoi(strings.TrimSpace(fields[len(fields)-1]))
	if err != nil || bg < 0 || bg > 15 {
		return false, false
	}
	return bg < 7 || bg == 8, true
}
