package dialog

import (
	"strings"
	"unicode"

	"github.com/billie-coop/nimbus/internal/request"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/mdp/qrterminal/v3"
)

// DefaultCodeLength is the number of digits in a two-factor code.
const DefaultCodeLength = 6

// TwoFactorParams configures a two-factor code prompt.
type TwoFactorParams struct {
	Title                 string
	ContinueButtonText    string
	ContinueButtonVariant ButtonVariant
	Description           string
	// KeyToDisplay is shown for enrolment; recovery keys are not offered then.
	KeyToDisplay string
	// KeyURL is the otpauth:// URI for KeyToDisplay, drawn as a QR code.
	KeyURL string
}

// ValidTwoFactorCode reports whether code is long enough to submit.
func ValidTwoFactorCode(code string, length int) bool {
	return len([]rune(code)) >= length
}

// TwoFactorDialog asks for a two-factor code or a recovery key
type TwoFactorDialog struct {
	*BaseDialog

	params         TwoFactorParams
	codeLength     int
	useRecoveryKey bool
	qr             string
	code           *TextInput
	recovery       *TextInput
	keys           KeyMap
}

// NewTwoFactorDialog creates the dialog and starts listening for open requests
func NewTwoFactorDialog(broker *events.Broker, codeLength int) *TwoFactorDialog {
	if codeLength <= 0 {
		codeLength = DefaultCodeLength
	}

	d := &TwoFactorDialog{
		BaseDialog: NewBaseDialog(broker, events.TwoFactorCodeDialogResponseEvent),
		codeLength: codeLength,
		code:       NewTextInput(),
		recovery:   NewTextInput(),
		keys:       DefaultKeyMap(),
	}
	d.code.SetCharLimit(codeLength)
	d.code.SetFilter(unicode.IsDigit)
	d.recovery.SetPlaceholder("Recovery key")

	d.listen(events.OpenTwoFactorCodeDialogEvent, d.handleOpen)
	return d
}

func (d *TwoFactorDialog) handleOpen(e events.Event) {
	req, ok := e.Payload.(OpenRequest[TwoFactorParams])
	if !ok {
		return
	}

	d.mu.Lock()
	d.params = req.Params
	d.qr = renderQR(req.Params.KeyURL)
	d.useRecoveryKey = false
	d.code.Reset()
	d.code.Focus()
	d.recovery.Reset()
	d.recovery.Blur()
	d.begin(req.RequestID, req.Params.Title)
	d.mu.Unlock()

	d.opened()
}

// Init initializes the dialog
func (d *TwoFactorDialog) Init() tea.Cmd {
	return nil
}

// Code returns the current input buffer.
func (d *TwoFactorDialog) Code() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buffer()
}

// SetCode replaces the input buffer, as a paste would.
func (d *TwoFactorDialog) SetCode(code string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.useRecoveryKey {
		d.recovery.SetValue(code)
		return
	}
	d.code.SetValue(code)
}

// UsingRecoveryKey reports whether the recovery key field is shown.
func (d *TwoFactorDialog) UsingRecoveryKey() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.useRecoveryKey
}

// UseRecoveryKey switches to the free text recovery key field. It is not
// available while a key is being displayed for enrolment.
func (d *TwoFactorDialog) UseRecoveryKey() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.isOpen || d.params.KeyToDisplay != "" {
		return
	}
	d.useRecoveryKey = true
	d.code.Blur()
	d.recovery.Focus()
}

func (d *TwoFactorDialog) buffer() string {
	if d.useRecoveryKey {
		return strings.TrimSpace(d.recovery.Value())
	}
	return d.code.Value()
}

// Cancel answers the open request as cancelled
func (d *TwoFactorDialog) Cancel() tea.Cmd {
	d.mu.Lock()
	id, ok := d.settle(request.Cancelled)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Cancel[string]())
	}
	return nil
}

// Submit answers with the entered code. A code shorter than the required
// length is answered as cancelled.
func (d *TwoFactorDialog) Submit() tea.Cmd {
	d.mu.Lock()
	code := d.buffer()
	if !ValidTwoFactorCode(code, d.codeLength) {
		d.mu.Unlock()
		return d.Cancel()
	}
	id, ok := d.settle(request.Resolved)
	d.mu.Unlock()

	if ok {
		publishResponse(d.BaseDialog, id, request.Accept(code))
	}
	return nil
}

// Update handles messages
func (d *TwoFactorDialog) Update(msg tea.Msg) (Dialog, tea.Cmd) {
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
	case key.Matches(keyMsg, d.keys.ForceSubmit):
		return d, d.Submit()
	case key.Matches(keyMsg, d.keys.Submit):
		// In code mode enter only submits a complete code
		if d.UsingRecoveryKey() || len(d.Code()) == d.codeLength {
			return d, d.Submit()
		}
		return d, nil
	case key.Matches(keyMsg, d.keys.ToggleRecovery):
		d.UseRecoveryKey()
		return d, nil
	}

	d.mu.Lock()
	if d.useRecoveryKey {
		d.recovery.Update(keyMsg)
	} else {
		d.code.Update(keyMsg)
	}
	d.mu.Unlock()

	return d, nil
}

// View renders the dialog
func (d *TwoFactorDialog) View() string {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()
	var sections []string

	if d.params.Description != "" {
		sections = append(sections, s.Muted.Render(d.params.Description), "")
	}

	if d.qr != "" {
		sections = append(sections, d.qr, "")
	}
	if d.params.KeyToDisplay != "" {
		sections = append(sections,
			s.Border.Padding(0, 2).Render(s.Bold.Render(groupKey(d.params.KeyToDisplay))),
			"",
		)
	}

	if d.useRecoveryKey {
		sections = append(sections, s.InputFocused.Width(40).Render(d.recovery.View()))
	} else {
		sections = append(sections, d.renderSlots(s))
	}

	if d.params.KeyToDisplay == "" && !d.useRecoveryKey {
		sections = append(sections, "", s.Subtle.Underline(true).Render("ctrl+r  Use a recovery key"))
	}

	enabled := len([]rune(d.buffer())) >= d.codeLength
	sections = append(sections, "",
		renderButtons("Cancel", d.params.ContinueButtonText, d.params.ContinueButtonVariant, enabled),
		"",
		s.Subtle.Render("↵ continue • esc cancel"),
	)

	return d.RenderDialog(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// renderSlots draws the code as two groups of boxes. Callers hold d.mu.
func (d *TwoFactorDialog) renderSlots(s *styles.Styles) string {
	code := []rune(d.code.Value())
	slots := make([]string, 0, d.codeLength+1)

	for i := 0; i < d.codeLength; i++ {
		char := " "
		if i < len(code) {
			char = string(code[i])
		}
		slot := s.Input
		if i == len(code) {
			slot = s.InputFocused
		}
		slots = append(slots, slot.Render(char))
		if i == d.codeLength/2-1 {
			slots = append(slots, s.Subtle.Render(" - "))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, slots...)
}

// groupKey splits a secret into groups of four for reading aloud.
func groupKey(secret string) string {
	var b strings.Builder
	for i, r := range secret {
		if i > 0 && i%4 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// renderQR draws url as a half-block QR code, or returns "" for an empty url.
func renderQR(url string) string {
	if url == "" {
		return ""
	}
	var b strings.Builder
	qrterminal.GenerateWithConfig(url, qrterminal.Config{
		Level:          qrterminal.L,
		Writer:         &b,
		HalfBlocks:     true,
		BlackChar:      qrterminal.BLACK_BLACK,
		WhiteBlackChar: qrterminal.WHITE_BLACK,
		WhiteChar:      qrterminal.WHITE_WHITE,
		BlackWhiteChar: qrterminal.BLACK_WHITE,
		QuietZone:      1,
	})
	return strings.TrimRight(b.String(), "\n")
}
