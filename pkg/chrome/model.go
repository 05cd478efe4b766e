// Package chrome is the theme toggle button and option menu shown in the
// terminal UI. It holds no theme state of its own: every action goes
// through the controller, and the rendered labels come from the change
// events the controller delivers.
package chrome

import (
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/app"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/theme"
)

// Zone ids for mouse hit testing.
const (
	ToggleZoneID = "theme-toggle"
	optionPrefix = "theme-option-"
)

// OptionZoneID returns the zone id of the menu entry for id.
func OptionZoneID(id theme.ID) string {
	return optionPrefix + string(id)
}

// ThemeController is the part of the controller the chrome uses.
type ThemeController interface {
	SetTheme(id theme.ID) error
	CycleTheme() error
	ToggleLightDark() error
	CurrentTheme() theme.ID
	EffectiveTheme() theme.ID
	Registry() *theme.Registry
	Subscribe(fn func(controller.ChangeEvent)) func()
}

// Refresher re-samples the environment signal.
type Refresher interface {
	Refresh() bool
}

// HitFunc reports whether a mouse event falls inside the named zone.
type HitFunc func(id string, msg tea.MouseMsg) bool

// Options configures a Model.
type Options struct {
	Keys         KeyMap
	Signal       Refresher     // re-sampled on ticks and pokes; may be nil
	PollInterval time.Duration // 0 disables the refresh tick
	Poke         <-chan os.Signal
	Mouse        bool // enable click handling through bubblezone
	Hit          HitFunc
	Logger       *slog.Logger
}

// viewState is shared by every copy of the Model so the controller
// subscription keeps writing into the state the UI renders.
type viewState struct {
	requested theme.ID
	effective theme.ID
	changes   int
	status    string
	closed    bool
}

// Model is the chrome component. It is a value type like other Bubbletea
// components; copies share the subscription state.
type Model struct {
	ctrl   ThemeController
	signal Refresher
	keys   KeyMap
	help   help.Model
	zones  *zone.Manager
	hit    HitFunc
	logger *slog.Logger

	pollInterval time.Duration
	poke         <-chan os.Signal

	state  *viewState
	unsub  func()
	open   bool
	cursor int
}

// NewModel builds the chrome and subscribes it to ctrl. Call Close to
// release the subscription.
func NewModel(ctrl ThemeController, opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	keys := opts.Keys
	if len(keys.Cycle.Keys()) == 0 {
		keys = DefaultKeyMap()
	}

	m := Model{
		ctrl:         ctrl,
		signal:       opts.Signal,
		keys:         keys,
		help:         help.New(),
		hit:          opts.Hit,
		logger:       logger,
		pollInterval: opts.PollInterval,
		poke:         opts.Poke,
		state: &viewState{
			requested: ctrl.CurrentTheme(),
			effective: ctrl.EffectiveTheme(),
		},
	}
	if opts.Mouse {
		m.zones = zone.New()
		if m.hit == nil {
			zm := m.zones
			m.hit = func(id string, msg tea.MouseMsg) bool {
				z := zm.Get(id)
				return z != nil && z.InBounds(msg)
			}
		}
	}

	state := m.state
	m.unsub = ctrl.Subscribe(func(ev controller.ChangeEvent) {
		state.requested = ev.Requested
		state.effective = ev.Theme
		state.changes++
	})
	return m
}

// Init starts the environment refresh tick and the poke waiter.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.signal != nil && m.pollInterval > 0 {
		cmds = append(cmds, app.TickCmd(m.pollInterval))
	}
	if m.poke != nil {
		cmds = append(cmds, app.WaitForSignal(m.poke))
	}
	return tea.Batch(cmds...)
}

// Update handles shortcuts, menu navigation, clicks and environment
// refresh messages. handled is true when the message was consumed and the
// host must not act on it.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil, false
	case app.TickEvent:
		m.refresh("tick")
		if m.pollInterval <= 0 {
			return m, nil, true
		}
		return m, app.TickCmd(m.pollInterval), true
	case app.PokeEvent:
		m.refresh("signal")
		if m.poke == nil {
			return m, nil, true
		}
		return m, app.WaitForSignal(m.poke), true
	}
	return m, nil, false
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	if m.open {
		switch {
		case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
			m.open = false
			return m, nil, true
		case key.Matches(msg, m.keys.Up):
			m.cursor = (m.cursor - 1 + m.ctrl.Registry().Len()) % m.ctrl.Registry().Len()
			return m, nil, true
		case key.Matches(msg, m.keys.Down):
			m.cursor = (m.cursor + 1) % m.ctrl.Registry().Len()
			return m, nil, true
		case key.Matches(msg, m.keys.Select):
			ids := m.ctrl.Registry().IDs()
			m.open = false
			m.apply("select", m.ctrl.SetTheme(ids[m.cursor]))
			return m, nil, true
		}
	}

	switch {
	case key.Matches(msg, m.keys.Cycle):
		m.apply("cycle", m.ctrl.CycleTheme())
		return m, nil, true
	case key.Matches(msg, m.keys.Toggle):
		m.apply("toggle", m.ctrl.ToggleLightDark())
		return m, nil, true
	case key.Matches(msg, m.keys.Menu):
		m = m.openMenu()
		return m, nil, true
	}
	return m, nil, false
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd, bool) {
	if m.hit == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil, false
	}
	if m.hit(ToggleZoneID, msg) {
		if m.open {
			m.open = false
		} else {
			m = m.openMenu()
		}
		return m, nil, true
	}
	if !m.open {
		return m, nil, false
	}
	for _, id := range m.ctrl.Registry().IDs() {
		if m.hit(OptionZoneID(id), msg) {
			m.open = false
			m.apply("click", m.ctrl.SetTheme(id))
			return m, nil, true
		}
	}
	// Click outside the chrome closes the menu and passes through.
	m.open = false
	return m, nil, false
}

func (m Model) openMenu() Model {
	m.open = true
	m.cursor = m.ctrl.Registry().Index(m.state.requested)
	if m.cursor < 0 {
		m.cursor = 0
	}
	return m
}

func (m Model) apply(action string, err error) {
	if err != nil {
		m.state.status = err.Error()
		m.logger.Warn("theme action failed", "action", action, "error", err)
		return
	}
	m.state.status = ""
	m.logger.Debug("theme action", "action", action,
		"requested", m.state.requested, "effective", m.state.effective)
}

func (m Model) refresh(reason string) {
	if m.signal == nil {
		return
	}
	dark := m.signal.Refresh()
	m.logger.Debug("environment refreshed", "reason", reason, "prefers_dark", dark)
}

// Open reports whether the option menu is shown.
func (m Model) Open() bool { return m.open }

// Cursor returns the highlighted menu index.
func (m Model) Cursor() int { return m.cursor }

// Requested returns the requested theme from the last change event.
func (m Model) Requested() theme.ID { return m.state.requested }

// Effective returns the effective theme from the last change event.
func (m Model) Effective() theme.ID { return m.state.effective }

// Changes counts change events received.
func (m Model) Changes() int { return m.state.changes }

// Status is the last action error, or "".
func (m Model) Status() string { return m.state.status }

// Keys returns the key bindings.
func (m Model) Keys() KeyMap { return m.keys }

// Close releases the controller subscription and the zone manager. It is
// safe to call more than once.
func (m Model) Close() {
	if m.state.closed {
		return
	}
	m.state.closed = true
	if m.unsub != nil {
		m.unsub()
	}
	if m.zones != nil {
		m.zones.Close()
	}
}
