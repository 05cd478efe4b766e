package terminal

import (
	"os"
	"sync"

	"github.com/charmbracelet/x/term"
	"github.com/mattn/go-isatty"
)

// Capabilities is the cached terminal summary for the current session.
type Capabilities struct {
	Term            Terminal // Detected terminal emulator
	TTY             bool     // stdin and stdout are both terminals
	TrueColor       bool     // 24-bit colour support
	Mouse           bool     // SGR mouse reporting can be enabled
	BackgroundQuery bool     // OSC 11 background query is worth attempting
	SSH             bool     // Running over SSH
	Tmux            bool     // Inside tmux
	Mux             bool     // Inside any multiplexer (tmux, screen, zellij)
}

var (
	cached     *Capabilities
	detectOnce sync.Once
	mu         sync.Mutex // guards ForceRefresh reset

	// stdioIsTTY is replaced in tests; go test never runs on a terminal.
	stdioIsTTY = func() bool {
		return IsTerminal(os.Stdout) && term.IsTerminal(os.Stdin.Fd())
	}
)

// IsTerminal reports whether f is attached to a terminal, including the
// Cygwin/MSYS pseudo terminals isatty recognises.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// DetectCapabilities performs detection once and caches the result. Safe
// to call from multiple goroutines.
func DetectCapabilities() *Capabilities {
	detectOnce.Do(func() {
		cached = detect()
	})
	return cached
}

// ForceRefresh re-detects terminal capabilities, replacing the cached
// value. Use this after attaching to or detaching from a multiplexer.
func ForceRefresh() *Capabilities {
	mu.Lock()
	defer mu.Unlock()

	detectOnce = sync.Once{}
	detectOnce.Do(func() {
		cached = detect()
	})
	return cached
}

// Cached returns the previously cached capabilities without re-detection.
// Returns nil if DetectCapabilities has not been called yet.
func Cached() *Capabilities {
	return cached
}

func detect() *Capabilities {
	t := Detect()
	tty := stdioIsTTY()
	tmux := os.Getenv("TMUX") != ""
	screen := os.Getenv("STY") != ""
	zellij := os.Getenv("ZELLIJ") != ""
	dumb := os.Getenv("TERM") == "dumb"

	trueColor := t.SupportsTrueColor()
	if !trueColor {
		ct := os.Getenv("COLORTERM")
		trueColor = ct == "truecolor" || ct == "24bit"
	}

	return &Capabilities{
		Term:            t,
		TTY:             tty,
		TrueColor:       trueColor,
		Mouse:           tty && !dumb && t.SupportsMouseSGR(),
		BackgroundQuery: tty && !dumb && t.SupportsBackgroundQuery(),
		SSH:             isSSH(),
		Tmux:            tmux,
		Mux:             tmux || screen || zellij,
	}
}

// isSSH reports whether the current session is running over SSH.
func isSSH() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CONNECTION") != "" ||
		os.Getenv("SSH_CLIENT") != ""
}
