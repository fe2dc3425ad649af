package tui

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap defines the global key bindings
type KeyMap struct {
	NewNote        key.Binding
	Rename         key.Binding
	Edit           key.Binding
	Delete         key.Binding
	TwoFactor      key.Binding
	ChangePassword key.Binding
	Theme          key.Binding
	Reload         key.Binding
	Quit           key.Binding
}

// DefaultKeyMap returns the default global key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NewNote: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new note"),
		),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		TwoFactor: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "two-factor"),
		),
		ChangePassword: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "change password"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Reload: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reload"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
