package chrome

import (
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// Palette is the handful of colours the chrome itself needs.
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: lipgloss.Color("#1F2937"),
		Background: lipgloss.Color("#F9FAFB"),
		Accent:     lipgloss.Color("#7C3AED"),
		Muted:      lipgloss.Color("#6B7280"),
	}
	darkPalette = Palette{
		Foreground: lipgloss.Color("#E5E7EB"),
		Background: lipgloss.Color("#111827"),
		Accent:     lipgloss.Color("#A78BFA"),
		Muted:      lipgloss.Color("#9CA3AF"),
	}
	highContrastPalette = Palette{
		Foreground: lipgloss.Color("#FFFFFF"),
		Background: lipgloss.Color("#000000"),
		Accent:     lipgloss.Color("#FFFF00"),
		Muted:      lipgloss.Color("#FFFFFF"),
	}
)

// PaletteFor picks the chrome palette for an effective theme. Themes
// without a dedicated palette use the light or dark one by family.
func PaletteFor(reg *theme.Registry, effective theme.ID) Palette {
	switch effective {
	case theme.Light:
		return lightPalette
	case theme.Dark:
		return darkPalette
	case theme.HighContrast:
		return highContrastPalette
	}
	if reg != nil && reg.IsDarkFamily(effective) {
		return darkPalette
	}
	return lightPalette
}

// styles are derived from a Palette on every render.
type styles struct {
	button     lipgloss.Style
	menu       lipgloss.Style
	item       lipgloss.Style
	cursorItem lipgloss.Style
	marker     lipgloss.Style
}

func newStyles(p Palette) styles {
	return styles{
		button: lipgloss.NewStyle().
			Foreground(p.Foreground).
			Background(p.Background).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		menu: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.Muted).
			Padding(0, 1),
		item:       lipgloss.NewStyle().Foreground(p.Foreground),
		cursorItem: lipgloss.NewStyle().Foreground(p.Accent).Bold(true),
		marker:     lipgloss.NewStyle().Foreground(p.Accent),
	}
}
