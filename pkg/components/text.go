// Package components holds ANSI-aware text helpers shared by the host view
// and the one-shot command output. Widths are measured in terminal cells,
// so emoji theme icons count as two.
package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells, ignoring
// ANSI escape sequences.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most maxWidth cells, keeping escape sequences that
// precede the cut.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "")
}

// TruncateWithTail is Truncate with tail (e.g. "…") appended when s is cut.
// The tail counts toward maxWidth.
func TruncateWithTail(s string, maxWidth int, tail string) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, tail)
}

// PadRight pads s with trailing spaces to width cells. Wider strings are
// returned unchanged.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// FitLine truncates or pads s to exactly width cells.
func FitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return PadRight(TruncateWithTail(s, width, "…"), width)
}
