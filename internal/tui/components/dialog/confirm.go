package dialog

import (
	"github.com/billie-coop/nimbus/internal/request"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// ConfirmParams configures a yes/no question.
type ConfirmParams struct {
	Title                 string
	Description           string
	ContinueButtonText    string
	ContinueButtonVariant ButtonVariant
}

// ConfirmDialog asks for confirmation before a destructive action
type ConfirmDialog struct {
	*BaseDialog

	params     ConfirmParams
	selectedNo bool // true if "No" is selected (default for safety)
	keys       KeyMap
}

// NewConfirmDialog creates the dialog and starts listening for open requests
func NewConfirmDialog(broker *events.Broker) *ConfirmDialog {
	d := &ConfirmDialog{
		BaseDialog: NewBaseDialog(broker, events.ConfirmDialogResponseEvent),
		selectedNo: true,
		keys:       DefaultKeyMap(),
	}
	d.listen(events.OpenConfirmDialogEvent, d.handleOpen)
	return d
}

func (d *ConfirmDialog) handleOpen(e events.Event) {
	req, ok := e.Payload.(OpenRequest[ConfirmParams])
	if !ok {
		return
	}

	d.mu.Lock()
	d.params = req.Params
	d.selectedNo = true
	d.begin(req.RequestID, req.Params.Title)
	d.mu.Unlock()

	d.opened()
}

// Init initializes the dialog
func (d *ConfirmDialog) Init() tea.Cmd {
	return nil
}

// Cancel answers the open request as cancelled
func (d *ConfirmDialog) Cancel() tea.Cmd {
	d.mu.Lock()
	id, ok := d.settle(request.Cancelled)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Cancel[bool]())
	}
	return nil
}

// Confirm answers the open request with true
func (d *ConfirmDialog) Confirm() tea.Cmd {
	d.mu.Lock()
	id, ok := d.settle(request.Resolved)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Accept(true))
	}
	return nil
}

// Update handles messages
func (d *ConfirmDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.IsOpen() {
		return d, nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Cancel), key.Matches(keyMsg, d.keys.No):
		return d, d.Cancel()
	case key.Matches(keyMsg, d.keys.Yes):
		return d, d.Confirm()
	case key.Matches(keyMsg, d.keys.Toggle):
		d.mu.Lock()
		d.selectedNo = !d.selectedNo
		d.mu.Unlock()
	case key.Matches(keyMsg, d.keys.Submit), keyMsg.String() == "space":
		d.mu.Lock()
		no := d.selectedNo
		d.mu.Unlock()
		if no {
			return d, d.Cancel()
		}
		return d, d.Confirm()
	}

	return d, nil
}

// View renders the dialog
func (d *ConfirmDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	yesText := d.params.ContinueButtonText
	if yesText == "" {
		yesText = "Yes"
	}

	yesStyle, noStyle := s.Button, s.ButtonFocused
	if !d.selectedNo {
		noStyle = s.Button
		yesStyle = s.ButtonFocused
		if d.params.ContinueButtonVariant == VariantDestructive {
			yesStyle = s.ButtonDestructive
		}
	}

	buttons := lipgloss.JoinHorizontal(lipgloss.Center,
		yesStyle.Render(yesText),
		"  ",
		noStyle.Render("No"),
	)

	var sections []string
	if d.params.Description != "" {
		sections = append(sections, s.Text.Render(d.params.Description), "")
	}
	sections = append(sections, buttons, "", s.Subtle.Italic(true).Render("y/n • ←/→ switch • esc cancel"))

	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Left, sections...))
}
