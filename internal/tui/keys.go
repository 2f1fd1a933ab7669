package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right, Up, Down key.Binding
	MoveLeft, MoveRight   key.Binding
	Toggle                key.Binding
	Add, Delete           key.Binding
	PrevList, NextList    key.Binding
	Sidebar               key.Binding
	Focus                 key.Binding
	Quit                  key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:      key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h/l", "column")),
		Right:     key.NewBinding(key.WithKeys("l", "right")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("j/k", "task")),
		Down:      key.NewBinding(key.WithKeys("j", "down")),
		MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H/L", "move")),
		MoveRight: key.NewBinding(key.WithKeys("L", "shift+right")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("x", "done")),
		Add:       key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
		Delete:    key.NewBinding(key.WithKeys("d", "D"), key.WithHelp("d", "del")),
		PrevList:  key.NewBinding(key.WithKeys("["), key.WithHelp("[/]", "list")),
		NextList:  key.NewBinding(key.WithKeys("]", "tab")),
		Sidebar:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sidebar")),
		Focus:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "focus")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Up, k.MoveLeft, k.Toggle, k.Add, k.Delete, k.PrevList, k.Sidebar, k.Focus, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
