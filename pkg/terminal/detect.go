// Package terminal identifies the terminal emulator hosting the session and
// summarises the capabilities the theme chrome depends on: whether stdio is
// a TTY, whether the emulator answers an OSC 11 background-colour query,
// and whether SGR mouse reporting can be enabled for the toggle button.
//
// Detection only inspects environment variables and file descriptors. It
// never writes query sequences to the terminal.
package terminal

import (
	"os"
	"strings"
)

// Terminal identifies the terminal emulator in use.
type Terminal int

const (
	TermUnknown   Terminal = iota
	TermGhostty            // Ghostty
	TermKitty              // Kitty
	TermWezTerm            // WezTerm
	TermITerm2             // iTerm2
	TermAlacritty          // Alacritty
	TermTilix              // Tilix (VTE)
	TermGNOME              // GNOME Terminal (VTE)
	TermTmux               // tmux multiplexer
	TermScreen             // GNU Screen multiplexer
	TermVSCode             // VS Code integrated terminal
	TermEmacs              // Emacs vterm/eat
	TermGeneric            // Anything else
)

var terminalNames = [...]string{
	TermUnknown:   "unknown",
	TermGhostty:   "ghostty",
	TermKitty:     "kitty",
	TermWezTerm:   "wezterm",
	TermITerm2:    "iterm2",
	TermAlacritty: "alacritty",
	TermTilix:     "tilix",
	TermGNOME:     "gnome-terminal",
	TermTmux:      "tmux",
	TermScreen:    "screen",
	TermVSCode:    "vscode",
	TermEmacs:     "emacs",
	TermGeneric:   "generic",
}

// String returns the human-readable name of the terminal.
func (t Terminal) String() string {
	if t >= 0 && int(t) < len(terminalNames) {
		return terminalNames[t]
	}
	return "unknown"
}

// SupportsTrueColor reports whether the terminal renders 24-bit colour.
func (t Terminal) SupportsTrueColor() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermTilix, TermGNOME, TermVSCode:
		return true
	default:
		return false
	}
}

// SupportsMouseSGR reports whether the terminal supports SGR mouse
// encoding (1006 mode). The theme toggle is only clickable when it does.
func (t Terminal) SupportsMouseSGR() bool {
	switch t {
	case TermGhostty, TermKitty, TermWezTerm, TermITerm2,
		TermAlacritty, TermTilix, TermGNOME, TermVSCode, TermTmux:
		return true
	default:
		return false
	}
}

// SupportsBackgroundQuery reports whether the terminal answers an OSC 11
// background-colour query. Emulators that swallow the query make the
// caller wait for a timeout, so they are excluded.
func (t Terminal) SupportsBackgroundQuery() bool {
	switch t {
	case TermScreen, TermEmacs, TermUnknown:
		return false
	default:
		return true
	}
}

// termProgramNames maps lower-cased TERM_PROGRAM values to terminals.
var termProgramNames = map[string]Terminal{
	"ghostty":   TermGhostty,
	"kitty":     TermKitty,
	"wezterm":   TermWezTerm,
	"iterm.app": TermITerm2,
	"vscode":    TermVSCode,
	"alacritty": TermAlacritty,
	"tmux":      TermTmux,
}

// Detect identifies the terminal emulator from environment variables,
// checking signals in order of reliability:
//
//  1. TERM_PROGRAM
//  2. TERM (xterm-ghostty, xterm-kitty, alacritty, screen*)
//  3. emulator-specific variables (KITTY_WINDOW_ID, ITERM_SESSION_ID, ...)
//  4. VTE_VERSION for GNOME Terminal and Tilix
//  5. INSIDE_EMACS
//  6. TMUX / STY
//  7. LC_TERMINAL=iTerm2 forwarded over SSH
func Detect() Terminal {
	return detectFrom(os.Getenv)
}

func detectFrom(getenv func(string) string) Terminal {
	if tp := getenv("TERM_PROGRAM"); tp != "" {
		if term, ok := termProgramNames[strings.ToLower(tp)]; ok {
			return term
		}
	}

	switch term := getenv("TERM"); {
	case term == "xterm-ghostty":
		return TermGhostty
	case term == "xterm-kitty":
		return TermKitty
	case strings.HasPrefix(term, "alacritty"):
		return TermAlacritty
	case strings.HasPrefix(term, "screen") && getenv("STY") != "":
		return TermScreen
	}

	switch {
	case getenv("KITTY_WINDOW_ID") != "":
		return TermKitty
	case getenv("ITERM_SESSION_ID") != "":
		return TermITerm2
	case getenv("WEZTERM_EXECUTABLE") != "":
		return TermWezTerm
	case getenv("VTE_VERSION") != "":
		if getenv("TILIX_ID") != "" {
			return TermTilix
		}
		return TermGNOME
	case getenv("INSIDE_EMACS") != "":
		return TermEmacs
	case getenv("TMUX") != "":
		return TermTmux
	case getenv("STY") != "":
		return TermScreen
	case getenv("LC_TERMINAL") == "iTerm2":
		return TermITerm2
	}
	return TermGeneric
}
