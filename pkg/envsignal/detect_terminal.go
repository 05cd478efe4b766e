package envsignal

import (
	"os"

	"github.com/muesli/termenv"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/terminal"
)

// TerminalDetector asks the terminal for its background colour (OSC 11).
// The query writes to the terminal and reads the reply from stdin, which
// conflicts with a running UI, so the answer is sampled once on first use
// and reused afterwards.
type TerminalDetector struct {
	query   func() bool
	enabled func() bool

	sampled bool
	dark    bool
}

// NewTerminalDetector returns a detector backed by termenv. It is only
// available when stdio is a terminal that answers background queries.
func NewTerminalDetector() *TerminalDetector {
	return &TerminalDetector{
		query: func() bool {
			return termenv.NewOutput(os.Stdout).HasDarkBackground()
		},
		enabled: func() bool {
			return terminal.DetectCapabilities().BackgroundQuery
		},
	}
}

func (*TerminalDetector) Name() string  { return "terminal" }
func (*TerminalDetector) Priority() int { return priorityTerminal }

func (d *TerminalDetector) Available() bool {
	return d.sampled || d.enabled()
}

func (d *TerminalDetector) Detect() (prefersDark, ok bool) {
	if !d.sampled {
		if !d.enabled() {
			return false, false
		}
		d.dark = d.query()
		d.sampled = true
	}
	return d.dark, true
}
