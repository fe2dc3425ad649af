package dialog

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines key bindings shared by the dialogs
type KeyMap struct {
	Cancel         key.Binding
	Submit         key.Binding
	ForceSubmit    key.Binding
	ToggleRecovery key.Binding
	TogglePassword key.Binding
	Next           key.Binding
	Prev           key.Binding
	Toggle         key.Binding
	Yes            key.Binding
	No             key.Binding
}

// DefaultKeyMap returns the default dialog key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Cancel: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("↵", "continue"),
		),
		ForceSubmit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "continue"),
		),
		ToggleRecovery: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "use recovery key"),
		),
		TogglePassword: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "show/hide"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("left", "right", "tab", "h", "l"),
			key.WithHelp("←/→", "switch"),
		),
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N"),
			key.WithHelp("n", "no"),
		),
	}
}
