package chrome

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the theme shortcuts and the menu navigation keys.
type KeyMap struct {
	Cycle  key.Binding
	Toggle key.Binding
	Menu   key.Binding
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap([]string{"ctrl+t"}, []string{"ctrl+d"}, []string{"t"})
}

// NewKeyMap builds a KeyMap with configurable shortcut keys. Menu
// navigation keys are fixed.
func NewKeyMap(cycle, toggle, menu []string) KeyMap {
	return KeyMap{
		Cycle: key.NewBinding(
			key.WithKeys(cycle...),
			key.WithHelp(strings.Join(cycle, "/"), "cycle theme"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(toggle...),
			key.WithHelp(strings.Join(toggle, "/"), "light/dark"),
		),
		Menu: key.NewBinding(
			key.WithKeys(menu...),
			key.WithHelp(strings.Join(menu, "/"), "theme menu"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close menu"),
		),
	}
}

// ShortHelp returns the shortcuts shown while the menu is closed.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cycle, k.Toggle, k.Menu}
}

// FullHelp returns every binding, shortcuts first.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Cycle, k.Toggle, k.Menu},
		{k.Up, k.Down, k.Select, k.Close},
	}
}

// menuHelp is the help shown while the menu is open.
type menuHelp struct{ keys KeyMap }

func (h menuHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.keys.Up, h.keys.Down, h.keys.Select, h.keys.Close}
}

func (h menuHelp) FullHelp() [][]key.Binding {
	return h.keys.FullHelp()
}
