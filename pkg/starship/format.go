package starship

import (
	"strings"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/components"
)

// ssAnsiReset is the ANSI escape sequence to reset all text attributes.
const ssAnsiReset = "\033[0m"

// ssSeparator is the dim separator character placed between segments.
const ssSeparator = "\033[2m│\033[0m"

// ssColorize wraps text in the given ANSI color code and appends a reset
// sequence. If color is empty, text is returned unmodified.
func ssColorize(text, color string) string {
	if color == "" {
		return text
	}
	return color + text + ssAnsiReset
}

// ssFormatLine joins the given segments with a dim separator, applies ANSI
// colors, and drops rightmost segments if the total visible width exceeds
// maxWidth. Returns an empty string if segments is empty.
func ssFormatLine(segments []*Segment, maxWidth int) string {
	if len(segments) == 0 {
		return ""
	}
	if maxWidth <= 0 {
		maxWidth = ssDefaultMaxWidth
	}

	// Separator plus its surrounding spaces.
	const sepWidth = 3

	var b strings.Builder
	total := 0
	for i, seg := range segments {
		colored := ssColorize(seg.Icon+" "+seg.Text, seg.Color)
		needed := components.VisibleLen(colored)
		if i > 0 {
			needed += sepWidth
		}
		if total+needed > maxWidth {
			break
		}
		if i > 0 {
			b.WriteString(" " + ssSeparator + " ")
		}
		b.WriteString(colored)
		total += needed
	}
	return b.String()
}
