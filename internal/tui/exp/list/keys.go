package list

import (
	"github.com/charmbracelet/bubbles/v2/key"
)

type KeyMap struct {
	Up,
	Down,
	UpOneItem,
	DownOneItem,
	PageUp,
	PageDown,
	HalfPageUp,
	HalfPageDown,
	Home,
	End key.Binding
}

// DefaultKeyMap returns the bindings of a vertical list.
func DefaultKeyMap() KeyMap {
	return KeyMapFor(Vertical)
}

// KeyMapFor returns the default bindings for lists of the orientation. Line
// keys follow the scroll direction: up and down for vertical lists, left and
// right for horizontal ones.
func KeyMapFor(o Orientation) KeyMap {
	back, backKey, backArrow := "up", "k", "↑"
	forward, forwardKey, forwardArrow := "down", "j", "↓"
	if o == Horizontal {
		back, backKey, backArrow = "left", "h", "←"
		forward, forwardKey, forwardArrow = "right", "l", "→"
	}
	return KeyMap{
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "f"),
			key.WithHelp("f/pgdn", "page down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "b"),
			key.WithHelp("b/pgup", "page up"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "½ page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "½ page down"),
		),
		Up: key.NewBinding(
			key.WithKeys(back, backKey),
			key.WithHelp(backArrow+"/"+backKey, "scroll back"),
		),
		Down: key.NewBinding(
			key.WithKeys(forward, forwardKey),
			key.WithHelp(forwardArrow+"/"+forwardKey, "scroll forward"),
		),
		UpOneItem: key.NewBinding(
			key.WithKeys("shift+"+back),
			key.WithHelp("shift+"+backArrow, "back one item"),
		),
		DownOneItem: key.NewBinding(
			key.WithKeys("shift+"+forward),
			key.WithHelp("shift+"+forwardArrow, "forward one item"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g/home", "start"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G/end", "end"),
		),
	}
}

// KeyBindings returns every binding of the map.
func (k KeyMap) KeyBindings() []key.Binding {
	return []key.Binding{
		k.Down,
		k.Up,
		k.DownOneItem,
		k.UpOneItem,
		k.PageDown,
		k.PageUp,
		k.HalfPageDown,
		k.HalfPageUp,
		k.Home,
		k.End,
	}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	m := [][]key.Binding{}
	slice := k.KeyBindings()
	for i := 0; i < len(slice); i += 4 {
		end := min(i+4, len(slice))
		m = append(m, slice[i:end])
	}
	return m
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Down,
		k.Up,
		k.PageDown,
		k.PageUp,
	}
}
