package input

import "github.com/charmbracelet/bubbles/key"

type Map struct {
	Quit      key.Binding
	QuitShort key.Binding
	Accept    key.Binding
	Reconnect key.Binding
	Next      key.Binding
}

// TODO make configurable.
var Default = Map{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "Quit"),
	),
	QuitShort: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "Quit"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Login"),
	),
	Reconnect: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Reconnect"),
	),
	Next: key.NewBinding(
		key.WithKeys("tab", "shift+tab", "up", "down"),
		key.WithHelp("tab", "Focus"),
	),
}
