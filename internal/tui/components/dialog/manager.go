package dialog

import (
	"github.com/billie-coop/nimbus/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// DialogType identifies the type of dialog
type DialogType string

const (
	TwoFactorDialogType      DialogType = "two_factor"
	InputDialogType          DialogType = "input"
	ConfirmDialogType        DialogType = "confirm"
	ChangePasswordDialogType DialogType = "change_password"
)

// OpenedMsg tells the program a dialog received an open event.
type OpenedMsg struct {
	Type DialogType
}

// Manager manages all dialogs in the application. Dialogs opened while
// another is showing stack on top of it.
type Manager struct {
	dialogs     map[DialogType]Dialog
	stack       []DialogType
	eventBroker *events.Broker
	width       int
	height      int
}

// NewManager creates a new dialog manager
func NewManager(eventBroker *events.Broker, worker PasswordChanger, codeLength int) *Manager {
	m := &Manager{
		dialogs:     make(map[DialogType]Dialog),
		eventBroker: eventBroker,
	}

	m.dialogs[TwoFactorDialogType] = NewTwoFactorDialog(eventBroker, codeLength)
	m.dialogs[InputDialogType] = NewInputDialog(eventBroker)
	m.dialogs[ConfirmDialogType] = NewConfirmDialog(eventBroker)
	m.dialogs[ChangePasswordDialogType] = NewChangePasswordDialog(eventBroker, worker)

	return m
}

// SetSender routes open notifications into a running program. send must
// not block the caller; tea.Program.Send called from a goroutine is fine.
func (m *Manager) SetSender(send func(tea.Msg)) {
	for dialogType, d := range m.dialogs {
		d.SetNotify(func() {
			send(OpenedMsg{Type: dialogType})
		})
	}
}

// Init initializes all dialogs
func (m *Manager) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, d := range m.dialogs {
		cmds = append(cmds, d.Init())
	}
	return tea.Batch(cmds...)
}

// Update handles updates for the top dialog
func (m *Manager) Update(msg tea.Msg) (*Manager, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case OpenedMsg:
		m.push(msg.Type)
		return m, nil

	case PasswordChangedMsg:
		d := m.dialogs[ChangePasswordDialogType]
		_, cmd := d.Update(msg)
		m.prune()
		return m, cmd
	}

	top, ok := m.top()
	if !ok {
		return m, nil
	}

	_, cmd := m.dialogs[top].Update(msg)
	m.prune()
	return m, cmd
}

// push moves dialogType to the top of the stack
func (m *Manager) push(dialogType DialogType) {
	d, ok := m.dialogs[dialogType]
	if !ok || !d.IsOpen() {
		return
	}

	for i, t := range m.stack {
		if t == dialogType {
			m.stack = append(m.stack[:i], m.stack[i+1:]...)
			break
		}
	}
	m.stack = append(m.stack, dialogType)

	m.eventBroker.Publish(events.Event{
		Type:    events.DialogOpenEvent,
		Payload: events.DialogPayload{DialogID: string(dialogType)},
	})
}

// prune drops dialogs that closed since the last update
func (m *Manager) prune() {
	kept := m.stack[:0]
	for _, t := range m.stack {
		if m.dialogs[t].IsOpen() {
			kept = append(kept, t)
			continue
		}
		m.eventBroker.Publish(events.Event{
			Type:    events.DialogCloseEvent,
			Payload: events.DialogPayload{DialogID: string(t)},
		})
	}
	m.stack = kept
}

func (m *Manager) top() (DialogType, bool) {
	if len(m.stack) == 0 {
		return "", false
	}
	return m.stack[len(m.stack)-1], true
}

// View renders the top dialog
func (m *Manager) View() string {
	top, ok := m.top()
	if !ok {
		return ""
	}
	return m.dialogs[top].View()
}

// SetSize sets the size for all dialogs
func (m *Manager) SetSize(width, height int) {
	m.width = width
	m.height = height
	for _, d := range m.dialogs {
		d.SetSize(width, height)
	}
}

// IsDialogOpen returns whether any dialog is showing
func (m *Manager) IsDialogOpen() bool {
	return len(m.stack) > 0
}

// ActiveDialog returns the dialog receiving input
func (m *Manager) ActiveDialog() DialogType {
	top, _ := m.top()
	return top
}

// Get returns the dialog registered for dialogType
func (m *Manager) Get(dialogType DialogType) Dialog {
	return m.dialogs[dialogType]
}

// Close detaches every dialog from the broker. Requests still waiting on
// a dialog are left unanswered.
func (m *Manager) Close() {
	for _, d := range m.dialogs {
		d.Detach()
	}
	m.stack = nil
}
