package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/theme-pulse/pkg/chrome"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/components"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/controller"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/document"
	"gitlab.com/tinyland/lab/theme-pulse/pkg/prefstore"
)

// render composes header, body panel and status bar into one frame of
// exactly m.height lines.
func (m Model) render() string {
	var header string
	if m.chromeOn {
		header = m.chrome.View()
	}
	status := tuiRenderStatusBar(m.statusText(), m.hints(), m.width)

	bodyH := m.height - lipgloss.Height(status)
	if header != "" {
		bodyH -= lipgloss.Height(header)
	}
	palette := chrome.PaletteFor(m.app.Registry, m.app.Controller.EffectiveTheme())
	body := tuiRenderBody(m.fields(), m.historyLines(), palette, m.width, bodyH)

	parts := make([]string, 0, 3)
	if header != "" {
		parts = append(parts, header)
	}
	parts = append(parts, body, status)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) fields() []components.Field {
	ctrl := m.app.Controller
	reg := m.app.Registry

	family := "light"
	if ctrl.IsDarkFamily() {
		family = "dark"
	}

	env := "unavailable"
	if s := m.app.Signal; s != nil && s.Available() {
		env = fmt.Sprintf("prefers dark=%t (%s)", s.Current(), s.Source())
	}
	if !ctrl.Settings().FollowSystem {
		env += ", not followed"
	}

	label := string(ctrl.CurrentTheme())
	if d, ok := reg.Get(ctrl.CurrentTheme()); ok {
		label = d.Label
	}

	fields := []components.Field{
		{Label: "Requested", Value: fmt.Sprintf("%s (%s)", ctrl.CurrentTheme(), label)},
		{Label: "Effective", Value: string(ctrl.EffectiveTheme())},
		{Label: "Family", Value: family},
		{Label: "Environment", Value: env},
	}
	for _, name := range m.app.Document.Names() {
		v, _ := m.app.Document.Attribute(name)
		fields = append(fields, components.Field{Label: name, Value: v})
	}

	prefs := "memory (not persisted)"
	if fs, ok := m.app.Store.(*prefstore.FileStore); ok {
		prefs = fs.Path()
	}
	fields = append(fields, components.Field{Label: "Preferences", Value: prefs})
	if m.app.Config.Theme.MirrorDocument {
		fields = append(fields, components.Field{
			Label: "Document",
			Value: filepath.Join(m.app.Config.General.StateDir, document.FileName),
		})
	}
	return fields
}

func (m Model) historyLines() []string {
	events := m.history.events
	if len(events) == 0 {
		return []string{"no changes yet"}
	}
	lines := make([]string, 0, len(events))
	for i := len(events) - 1; i >= 0; i-- {
		lines = append(lines, tuiFormatEvent(events[i]))
	}
	return lines
}

func (m Model) statusText() string {
	if m.status != "" {
		return m.status
	}
	if m.chromeOn {
		return m.chrome.Status()
	}
	return ""
}

func (m Model) hints() string {
	if !m.chromeOn {
		return "?:help  q:quit"
	}
	k := m.chrome.Keys()
	return fmt.Sprintf("%s:cycle  %s:light/dark  %s:menu  ?:help  q:quit",
		k.Cycle.Help().Key, k.Toggle.Help().Key, k.Menu.Help().Key)
}

func (m Model) helpLines() []string {
	lines := []string{"theme-pulse", ""}
	if m.chromeOn {
		lines = append(lines, m.chrome.HelpView(), "")
	}
	lines = append(lines, "?  toggle this help", "q  quit", "", "esc to close")
	return lines
}

// tuiFormatEvent renders one change event for the history list.
func tuiFormatEvent(ev controller.ChangeEvent) string {
	if ev.Requested == ev.Theme {
		return fmt.Sprintf("%-11s %s", ev.Cause, ev.Theme)
	}
	return fmt.Sprintf("%-11s %s → %s", ev.Cause, ev.Requested, ev.Theme)
}

// tuiRenderBody renders the status fields and change history inside a
// rounded border sized to width x height.
func tuiRenderBody(fields []components.Field, history []string, p chrome.Palette, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	innerW := width - 4 // border and one cell of padding per side
	if innerW < 1 {
		innerW = 1
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	lines := components.Fields(fields, innerW)
	lines = append(lines, "", lipgloss.NewStyle().Foreground(p.Accent).Render("Recent changes"))
	for _, h := range history {
		lines = append(lines, components.FitLine(h, innerW))
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Muted).
		Padding(0, 1).
		Width(width - 2).
		Height(innerH).
		Render(strings.Join(lines, "\n"))
}

// tuiRenderStatusBar renders a one-line status bar with key hints. It pads
// or truncates to exactly width cells.
func tuiRenderStatusBar(msg, hints string, width int) string {
	if width <= 0 {
		return ""
	}
	if msg != "" {
		hints = msg + "  |  " + hints
	}
	return lipgloss.NewStyle().Faint(true).Render(components.FitLine(hints, width))
}

// tuiRenderHelp centers the help panel in a width x height area.
func tuiRenderHelp(lines []string, width, height int) string {
	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
