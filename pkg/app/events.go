// Package app is the theme-pulse composition root. It builds the registry,
// preference store, environment signal, document and controller from the
// configuration, and defines the Bubbletea messages shared by the UI
// components.
package app

import (
	"os"
	"time"
)

// TickEvent is sent periodically to re-sample the environment signal.
type TickEvent struct {
	Time time.Time
}

// PokeEvent is delivered when a refresh signal (SIGUSR1) arrives.
type PokeEvent struct {
	Signal os.Signal
}

// StatusEvent replaces the status bar message.
type StatusEvent struct {
	Text string
}
