package dialog

import (
	"strings"

	"github.com/billie-coop/nimbus/internal/request"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// InputParams configures a text prompt.
type InputParams struct {
	Title                 string
	ContinueButtonText    string
	ContinueButtonVariant ButtonVariant
	Value                 string
	Placeholder           string
	AutoFocusInput        bool
}

// ValidInput reports whether value may be submitted.
func ValidInput(value string) bool {
	return strings.TrimSpace(value) != ""
}

// InputDialog asks for a single line of text
type InputDialog struct {
	*BaseDialog

	params InputParams
	input  *TextInput
	keys   KeyMap
}

// NewInputDialog creates the dialog and starts listening for open requests
func NewInputDialog(broker *events.Broker) *InputDialog {
	d := &InputDialog{
		BaseDialog: NewBaseDialog(broker, events.InputDialogResponseEvent),
		input:      NewTextInput(),
		keys:       DefaultKeyMap(),
	}
	d.listen(events.OpenInputDialogEvent, d.handleOpen)
	return d
}

func (d *InputDialog) handleOpen(e events.Event) {
	req, ok := e.Payload.(OpenRequest[InputParams])
	if !ok {
		return
	}

	d.mu.Lock()
	d.params = req.Params
	d.input.SetPlaceholder(req.Params.Placeholder)
	d.input.SetValue(req.Params.Value)
	// Typing goes to the only field either way; AutoFocusInput only decides
	// whether the cursor is drawn before the first key press.
	if req.Params.AutoFocusInput {
		d.input.Focus()
	} else {
		d.input.Blur()
	}
	d.begin(req.RequestID, req.Params.Title)
	d.mu.Unlock()

	d.opened()
}

// Init initializes the dialog
func (d *InputDialog) Init() tea.Cmd {
	return nil
}

// Value returns the current input buffer.
func (d *InputDialog) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.input.Value()
}

// SetValue replaces the input buffer.
func (d *InputDialog) SetValue(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.input.SetValue(value)
}

// Cancel answers the open request as cancelled
func (d *InputDialog) Cancel() tea.Cmd {
	d.mu.Lock()
	id, ok := d.settle(request.Cancelled)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Cancel[string]())
	}
	return nil
}

// Submit answers with the entered text. A blank value is answered as
// cancelled.
func (d *InputDialog) Submit() tea.Cmd {
	d.mu.Lock()
	value := d.input.Value()
	if !ValidInput(value) {
		d.mu.Unlock()
		return d.Cancel()
	}
	id, ok := d.settle(request.Resolved)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Accept(value))
	}
	return nil
}

// Update handles messages
func (d *InputDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	if !d.IsOpen() {
		return d, nil
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}

	switch {
	case key.Matches(keyMsg, d.keys.Cancel):
		return d, d.Cancel()
	case key.Matches(keyMsg, d.keys.Submit), key.Matches(keyMsg, d.keys.ForceSubmit):
		return d, d.Submit()
	}

	d.mu.Lock()
	d.input.Focus()
	d.input.Update(keyMsg)
	d.mu.Unlock()

	return d, nil
}

// View renders the dialog
func (d *InputDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	field := s.Input
	if d.input.Focused() {
		field = s.InputFocused
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		field.Width(48).Render(d.input.View()),
		"",
		renderButtons("Cancel", d.params.ContinueButtonText, d.params.ContinueButtonVariant, ValidInput(d.input.Value())),
		"",
		s.Subtle.Render("↵ continue • esc cancel"),
	)

	return d.RenderDialog(content)
}
