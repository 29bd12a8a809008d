package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Start  key.Binding
	Pause  key.Binding
	Reset  key.Binding
	Menu   key.Binding
	Help   key.Binding
	Quit   key.Binding
	inMenu bool
}

func newKeyMap() keyMap {
	return keyMap{
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Start: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Pause: key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rebind")),
		Menu:  key.NewBinding(key.WithKeys("esc", "m"), key.WithHelp("esc", "presets")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	if k.inMenu {
		return []key.Binding{k.Up, k.Down, k.Start, k.Quit}
	}
	return []key.Binding{k.Pause, k.Reset, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	if k.inMenu {
		return [][]key.Binding{{k.Up, k.Down}, {k.Start, k.Quit}}
	}
	return [][]key.Binding{{k.Pause, k.Reset}, {k.Menu, k.Help, k.Quit}}
}
