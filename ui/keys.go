package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap lists every binding; which ones are live depends on the screen.
type keyMap struct {
	Confirm key.Binding
	Reject  key.Binding
	Quit    key.Binding
	Toggle  key.Binding
	Copy    key.Binding
	Up      key.Binding
	Down    key.Binding
	Help    key.Binding
	Exit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Confirm: key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y/enter", "confirm")),
		Reject:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n/esc", "reject")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit app")),
		Toggle:  key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9", "0"), key.WithHelp("1-0", "toggle setting")),
		Copy:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy address")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Exit:    key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit")),
	}
}

// screenKeys enables the bindings that make sense for kind.
type screenKeys struct {
	keyMap
	kind viewKind
}

func (k screenKeys) ShortHelp() []key.Binding {
	switch k.kind {
	case viewHome:
		return []key.Binding{k.Toggle, k.Quit, k.Help}
	case viewDecision:
		return []key.Binding{k.Confirm, k.Reject, k.Help}
	case viewAddress:
		return []key.Binding{k.Confirm, k.Reject, k.Copy, k.Help}
	case viewBanner:
		return []key.Binding{k.Confirm, k.Help}
	}
	return []key.Binding{k.Exit}
}

func (k screenKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		k.ShortHelp(),
		{k.Up, k.Down, k.Exit},
	}
}
