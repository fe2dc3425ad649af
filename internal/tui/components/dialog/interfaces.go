package dialog

import (
	tea "github.com/charmbracelet/bubbletea/v2"
)

// Dialog represents a modal dialog component driven by bus events.
type Dialog interface {
	Init() tea.Cmd
	Update(tea.Msg) (Dialog, tea.Cmd)
	View() string

	SetSize(width, height int)
	IsOpen() bool

	// SetNotify installs the hook called after an open event was applied.
	SetNotify(func())
	// Detach removes the dialog's bus listeners. Requests still open stay
	// unanswered.
	Detach()
}

// ButtonVariant selects how the continue button is drawn.
type ButtonVariant string

const (
	VariantDefault     ButtonVariant = "default"
	VariantDestructive ButtonVariant = "destructive"
	VariantOutline     ButtonVariant = "outline"
	VariantSecondary   ButtonVariant = "secondary"
	VariantGhost       ButtonVariant = "ghost"
	VariantLink        ButtonVariant = "link"
)
