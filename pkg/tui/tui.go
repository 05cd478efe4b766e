// Package tui is the full-screen host for the theme chrome. It shows the
// requested and effective theme, the environment signal, the document
// attributes and a short history of change events.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/app"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/chrome"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
)

// historySize is how many change events the body lists.
const historySize = 8

// Options configures the host Model.
type Options struct {
	Chrome chrome.Options
}

type hostKeys struct {
	Quit key.Binding
	Help key.Binding
	Back key.Binding
}

func defaultHostKeys() hostKeys {
	return hostKeys{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// history is shared by copies of the Model so the subscription appends
// to the list the view renders.
type history struct {
	events []controller.ChangeEvent
}

func (h *history) add(ev controller.ChangeEvent) {
	h.events = append(h.events, ev)
	if len(h.events) > historySize {
		h.events = h.events[len(h.events)-historySize:]
	}
}

// Model is the root Bubbletea model.
type Model struct {
	app      *app.App
	chrome   chrome.Model
	chromeOn bool
	keys     hostKeys

	history *history
	unsub   func()

	width    int
	height   int
	ready    bool
	showHelp bool
	status   string
}

// New builds the host around a. The chrome is always subscribed so
// environment refreshes keep running, but its shortcuts and button are
// only active when theme.enabled is set.
func New(a *app.App, opts Options) Model {
	copts := opts.Chrome
	if copts.Logger == nil {
		copts.Logger = a.Logger
	}
	if copts.Signal == nil && a.Signal != nil {
		copts.Signal = a.Signal
	}
	if len(copts.Keys.Cycle.Keys()) == 0 {
		k := a.Config.Keys
		copts.Keys = chrome.NewKeyMap(k.Cycle, k.Toggle, k.Menu)
	}

	h := &history{}
	m := Model{
		app:      a,
		chrome:   chrome.NewModel(a.Controller, copts),
		chromeOn: a.Config.Theme.Enabled,
		keys:     defaultHostKeys(),
		history:  h,
	}
	m.unsub = a.Controller.Subscribe(h.add)
	return m
}

// Init starts the chrome's refresh commands.
func (m Model) Init() tea.Cmd {
	return m.chrome.Init()
}

// Update routes messages to the chrome first. Keys the chrome does not
// consume are host shortcuts.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.chrome, _, _ = m.chrome.Update(msg)
		return m, nil

	case app.StatusEvent:
		m.status = msg.Text
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back) {
				m.showHelp = false
				return m, nil
			}
		}
		if m.chromeOn {
			var cmd tea.Cmd
			var handled bool
			m.chrome, cmd, handled = m.chrome.Update(msg)
			if handled {
				return m, cmd
			}
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
		return m, nil

	case tea.MouseMsg:
		if !m.chromeOn {
			return m, nil
		}
		var cmd tea.Cmd
		m.chrome, cmd, _ = m.chrome.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.chrome, cmd, _ = m.chrome.Update(msg)
	return m, cmd
}

// View renders the header, body and status bar, or the help overlay.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return tuiRenderHelp(m.helpLines(), m.width, m.height)
	}
	return m.chrome.Scan(m.render())
}

// Close releases the host and chrome subscriptions. It is safe to call
// more than once.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
	m.chrome.Close()
}

// Width returns the last known terminal width.
func (m Model) Width() int { return m.width }

// Height returns the last known terminal height.
func (m Model) Height() int { return m.height }

// Ready reports whether a WindowSizeMsg has been received.
func (m Model) Ready() bool { return m.ready }

// ShowHelp reports whether the help overlay is visible.
func (m Model) ShowHelp() bool { return m.showHelp }

// ChromeEnabled reports whether the theme chrome is shown.
func (m Model) ChromeEnabled() bool { return m.chromeOn }

// Chrome returns the embedded chrome component.
func (m Model) Chrome() chrome.Model { return m.chrome }

// History returns the recent change events, oldest first.
func (m Model) History() []controller.ChangeEvent {
	out := make([]controller.ChangeEvent, len(m.history.events))
	copy(out, m.history.events)
	return out
}

// Status returns the last status message.
func (m Model) Status() string { return m.status }
