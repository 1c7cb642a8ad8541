package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the game key bindings. It implements help.KeyMap.
type keyMap struct {
	Left    key.Binding
	Right   key.Binding
	Toggle  key.Binding
	Enter   key.Binding
	Cancel  key.Binding
	Sort    key.Binding
	Level   key.Binding
	NewGame key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "move"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select card"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Sort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sort hand"),
		),
		Level: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "difficulty"),
		),
		NewGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new game"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the condensed help line.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Enter, k.Cancel, k.Help, k.Quit}
}

// FullHelp returns the expanded help grid.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Toggle, k.Enter, k.Cancel},
		{k.Sort, k.Level, k.NewGame, k.Help, k.Quit},
	}
}
