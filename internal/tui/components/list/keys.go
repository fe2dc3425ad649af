package list

import "github.com/charmbracelet/bubbles/v2/key"

// KeyMap moves the note selection
type KeyMap struct {
	Prev     key.Binding
	Next     key.Binding
	PrevPage key.Binding
	NextPage key.Binding
	First    key.Binding
	Last     key.Binding
}

// DefaultKeyMap uses vim-style movement alongside the arrow keys
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous note")),
		Next:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next note")),
		PrevPage: key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "previous page")),
		NextPage: key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "next page")),
		First:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first note")),
		Last:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last note")),
	}
}
