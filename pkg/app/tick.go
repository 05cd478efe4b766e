package app

import (
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd returns a bubbletea Cmd that sends a TickEvent after the given
// duration. Receivers re-arm it to keep the environment poll running.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}

// WaitForSignal returns a Cmd that blocks until ch delivers and reports it
// as a PokeEvent. A closed channel ends the wait without a message.
//
// Usage:
//
//	ch := make(chan os.Signal, 1)
//	signal.Notify(ch, envsignal.RefreshSignals()...)
//	cmd := WaitForSignal(ch)
func WaitForSignal(ch <-chan os.Signal) tea.Cmd {
	return func() tea.Msg {
		sig, ok := <-ch
		if !ok {
			return nil
		}
		return PokeEvent{Signal: sig}
	}
}
