package chrome

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View renders the toggle button and, when open, the option menu below it.
// Hosts that enable mouse support must pass their final frame through Scan.
func (m Model) View() string {
	st := newStyles(PaletteFor(m.ctrl.Registry(), m.state.effective))
	button := m.mark(ToggleZoneID, st.button.Render(m.ButtonLabel()))
	if !m.open {
		return button
	}
	return lipgloss.JoinVertical(lipgloss.Left, button, m.menuView(st))
}

// ButtonLabel is the icon and label of the requested theme.
func (m Model) ButtonLabel() string {
	d, ok := m.ctrl.Registry().Get(m.state.requested)
	if !ok {
		return string(m.state.requested)
	}
	if d.Icon == "" {
		return d.Label
	}
	return d.Icon + " " + d.Label
}

func (m Model) menuView(st styles) string {
	descs := m.ctrl.Registry().Descriptors()
	lines := make([]string, 0, len(descs))
	for i, d := range descs {
		marker := "  "
		if d.ID == m.state.requested {
			marker = st.marker.Render("✓ ")
		}
		label := d.Label
		if d.Icon != "" {
			label = d.Icon + " " + label
		}
		style := st.item
		if i == m.cursor {
			style = st.cursorItem
			label = "› " + label
		} else {
			label = "  " + label
		}
		lines = append(lines, m.mark(OptionZoneID(d.ID), marker+style.Render(label)))
	}
	return st.menu.Render(strings.Join(lines, "\n"))
}

// HelpView renders the key hints for the current menu state.
func (m Model) HelpView() string {
	if m.open {
		return m.help.View(menuHelp{keys: m.keys})
	}
	return m.help.View(m.keys)
}

// Scan records zone positions in a full frame and strips the markers.
// Without mouse support it returns view unchanged.
func (m Model) Scan(view string) string {
	if m.zones == nil {
		return view
	}
	return m.zones.Scan(view)
}

func (m Model) mark(id, s string) string {
	if m.zones == nil {
		return s
	}
	return m.zones.Mark(id, s)
}
