package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the keys the watch screen understands
type keyMap struct {
	Stop    key.Binding
	Discard key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Stop: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "stop and save"),
	),
	Discard: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "discard"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
