package dialog

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// PasswordChanger is the worker operation the dialog calls on save.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, currentPassword, newPassword string) error
}

// PasswordsMatch reports whether the new password may be saved.
func PasswordsMatch(newPassword, confirm string) bool {
	return newPassword != "" && strings.TrimSpace(newPassword) == strings.TrimSpace(confirm)
}

const (
	fieldNew = iota
	fieldConfirm
	fieldCurrent
	fieldCount
)

// PasswordChangedMsg reports the result of a save.
type PasswordChangedMsg struct {
	Err error
}

// ChangePasswordDialog lets the user change the account password. It is
// opened by a plain event and talks to the worker itself instead of
// answering a caller.
type ChangePasswordDialog struct {
	mu sync.Mutex

	broker  *events.Broker
	worker  PasswordChanger
	sub     *events.Subscription
	notify  func()
	timeout time.Duration

	isOpen       bool
	fields       [fieldCount]*TextInput
	focus        int
	showPassword bool
	notIdentical bool
	saving       bool

	width  int
	height int
	keys   KeyMap
}

// NewChangePasswordDialog creates the dialog and starts listening for open events
func NewChangePasswordDialog(broker *events.Broker, worker PasswordChanger) *ChangePasswordDialog {
	d := &ChangePasswordDialog{
		broker:  broker,
		worker:  worker,
		timeout: 30 * time.Second,
		keys:    DefaultKeyMap(),
	}

	placeholders := [fieldCount]string{"New password", "Confirm new password", "Current password"}
	for i := range d.fields {
		d.fields[i] = NewTextInput()
		d.fields[i].SetPlaceholder(placeholders[i])
		d.fields[i].SetMasked(true)
	}

	d.sub = broker.On(events.OpenChangePasswordDialogEvent, d.handleOpen)
	return d
}

func (d *ChangePasswordDialog) handleOpen(events.Event) {
	d.mu.Lock()
	for _, f := range d.fields {
		f.Reset()
		f.Blur()
	}
	d.focus = fieldNew
	d.fields[fieldNew].Focus()
	d.notIdentical = false
	d.saving = false
	d.isOpen = true
	notify := d.notify
	d.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Init initializes the dialog
func (d *ChangePasswordDialog) Init() tea.Cmd {
	return nil
}

// SetNotify installs the hook called after an open event.
func (d *ChangePasswordDialog) SetNotify(notify func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notify = notify
}

// Detach removes the open listener.
func (d *ChangePasswordDialog) Detach() {
	d.sub.Remove()
}

// IsOpen returns whether the dialog is open
func (d *ChangePasswordDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isOpen
}

// SetSize sets the overlay size
func (d *ChangePasswordDialog) SetSize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width, d.height = width, height
}

// SetInputs fills all three fields.
func (d *ChangePasswordDialog) SetInputs(newPassword, confirm, current string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[fieldNew].SetValue(newPassword)
	d.fields[fieldConfirm].SetValue(confirm)
	d.fields[fieldCurrent].SetValue(current)
}

// NotIdentical reports whether the last save was rejected locally.
func (d *ChangePasswordDialog) NotIdentical() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.notIdentical
}

// ShowPassword reports whether the fields are shown in clear text.
func (d *ChangePasswordDialog) ShowPassword() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.showPassword
}

// Close hides the dialog without saving
func (d *ChangePasswordDialog) Close() tea.Cmd {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.isOpen = false
	return nil
}

// Save validates the fields and returns the command that calls the worker.
// Mismatched passwords mark the fields and keep the dialog open.
func (d *ChangePasswordDialog) Save() tea.Cmd {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen || d.saving {
		return nil
	}

	newPassword := d.fields[fieldNew].Value()
	if !PasswordsMatch(newPassword, d.fields[fieldConfirm].Value()) {
		d.notIdentical = true
		return nil
	}
	d.notIdentical = false
	d.saving = true

	current := d.fields[fieldCurrent].Value()
	return func() tea.Msg {
		d.status("Changing password...", events.StatusLoading)

		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		if err := d.worker.ChangePassword(ctx, current, newPassword); err != nil {
			d.status(err.Error(), events.StatusError)
			return PasswordChangedMsg{Err: err}
		}

		d.status("Password changed", events.StatusSuccess)
		d.broker.Emit(events.AccountRefetchEvent, nil)
		return PasswordChangedMsg{}
	}
}

func (d *ChangePasswordDialog) status(message string, kind events.StatusType) {
	d.broker.Emit(events.StatusMessageEvent, events.StatusMessagePayload{Message: message, Type: kind})
}

// Update handles messages
func (d *ChangePasswordDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
	switch msg := msg.(type) {
	case PasswordChangedMsg:
		d.mu.Lock()
		d.saving = false
		if msg.Err == nil {
			d.isOpen = false
		}
		d.mu.Unlock()
		return d, nil

	case tea.KeyPressMsg:
		if !d.IsOpen() {
			return d, nil
		}

		switch {
		case key.Matches(msg, d.keys.Cancel):
			return d, d.Close()
		case key.Matches(msg, d.keys.Submit):
			return d, d.Save()
		case key.Matches(msg, d.keys.TogglePassword):
			d.mu.Lock()
			d.showPassword = !d.showPassword
			for _, f := range d.fields {
				f.SetMasked(!d.showPassword)
			}
			d.mu.Unlock()
			return d, nil
		case key.Matches(msg, d.keys.Next):
			d.moveFocus(1)
			return d, nil
		case key.Matches(msg, d.keys.Prev):
			d.moveFocus(-1)
			return d, nil
		}

		d.mu.Lock()
		d.fields[d.focus].Update(msg)
		d.mu.Unlock()
	}

	return d, nil
}

func (d *ChangePasswordDialog) moveFocus(delta int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields[d.focus].Blur()
	d.focus = (d.focus + delta + fieldCount) % fieldCount
	d.fields[d.focus].Focus()
}

// View renders the dialog
func (d *ChangePasswordDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	labels := [fieldCount]string{"New password", "Confirm new password", "Current password"}

	sections := []string{s.Title.Render("Change password"), ""}
	for i, f := range d.fields {
		field := s.Input
		switch {
		case d.notIdentical && i != fieldCurrent:
			field = s.InputInvalid
		case i == d.focus:
			field = s.InputFocused
		}
		sections = append(sections, s.Muted.Render(labels[i]), field.Width(40).Render(f.View()))
	}

	if d.notIdentical {
		sections = append(sections, s.Error.Render("Passwords do not match"))
	}

	saveText := "Save"
	if d.saving {
		saveText = "Saving..."
	}
	sections = append(sections, "",
		renderButtons("Close", saveText, VariantDefault, !d.saving),
		"",
		s.Subtle.Render("tab next • ctrl+t show/hide • ↵ save • esc close"),
	)

	box := s.BorderFocused.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	if d.width == 0 || d.height == 0 {
		return box
	}
	return lipgloss.Place(d.width, d.height, lipgloss.Center, lipgloss.Center, box)
}
