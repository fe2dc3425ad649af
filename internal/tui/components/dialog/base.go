package dialog

import (
	"sync"

	"github.com/billie-coop/nimbus/internal/request"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/lipgloss/v2"
)

// BaseDialog holds the session state every correlated dialog shares: the
// visibility flag, the active request id and the resolution of the request
// currently shown. A new open always replaces all of it.
type BaseDialog struct {
	mu sync.Mutex

	broker        *events.Broker
	responseEvent events.EventType
	subs          []*events.Subscription
	notify        func()

	title     string
	isOpen    bool
	requestID request.Token
	state     request.Resolution

	width  int
	height int
}

// NewBaseDialog creates a new base dialog answering on responseEvent
func NewBaseDialog(broker *events.Broker, responseEvent events.EventType) *BaseDialog {
	return &BaseDialog{
		broker:        broker,
		responseEvent: responseEvent,
		state:         request.Cancelled, // nothing to answer before the first open
	}
}

// listen registers an open handler and remembers it for Detach.
func (d *BaseDialog) listen(eventType events.EventType, handler events.Handler) {
	d.subs = append(d.subs, d.broker.On(eventType, handler))
}

// Detach removes the dialog's listeners.
func (d *BaseDialog) Detach() {
	for _, sub := range d.subs {
		sub.Remove()
	}
	d.subs = nil
}

// SetNotify installs the hook called after an open event.
func (d *BaseDialog) SetNotify(notify func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notify = notify
}

// opened runs the notify hook outside the lock.
func (d *BaseDialog) opened() {
	d.mu.Lock()
	notify := d.notify
	d.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// begin starts a session for id. Callers hold d.mu.
func (d *BaseDialog) begin(id request.Token, title string) {
	d.requestID = id
	d.title = title
	d.state = request.Pending
	d.isOpen = true
}

// settle performs the single guarded transition out of Pending and hides the
// dialog. It returns the request id to answer and false when the request was
// already answered. Callers hold d.mu.
func (d *BaseDialog) settle(next request.Resolution) (request.Token, bool) {
	state, ok := d.state.Transition(next)
	if !ok {
		return "", false
	}
	d.state = state
	d.isOpen = false
	return d.requestID, true
}

// IsOpen returns whether the dialog is open
func (d *BaseDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.isOpen
}

// RequestID returns the id of the request being shown or last shown.
func (d *BaseDialog) RequestID() request.Token {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.requestID
}

// State returns the resolution of the current request.
func (d *BaseDialog) State() request.Resolution {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// SetSize sets the overlay size
func (d *BaseDialog) SetSize(width, height int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.width = width
	d.height = height
}

// publishResponse emits the answer for id. It must be called without d.mu
// held because listeners run synchronously.
func publishResponse[V any](d *BaseDialog, id request.Token, outcome request.Outcome[V]) {
	resp := Response[V]{RequestID: id, Cancelled: outcome.Cancelled}
	if !outcome.Cancelled {
		resp.Value = outcome.Value
	}
	d.broker.Publish(events.Event{Type: d.responseEvent, Payload: resp})
}

// RenderDialog renders content in a bordered box centered on the overlay.
// Callers hold d.mu.
func (d *BaseDialog) RenderDialog(content string) string {
	if !d.isOpen {
		return ""
	}

	s := styles.CurrentTheme().S()

	dialogContent := content
	if d.title != "" {
		dialogContent = lipgloss.JoinVertical(lipgloss.Left, s.Title.MarginBottom(1).Render(d.title), content)
	}

	box := s.BorderFocused.Render(dialogContent)
	if d.width == 0 || d.height == 0 {
		return box
	}

	return lipgloss.Place(
		d.width,
		d.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// renderButtons draws the cancel and continue buttons.
func renderButtons(cancelText, continueText string, variant ButtonVariant, enabled bool) string {
	s := styles.CurrentTheme().S()

	cont := s.ButtonFocused
	switch {
	case !enabled:
		cont = s.ButtonDisabled
	case variant == VariantDestructive:
		cont = s.ButtonDestructive
	case variant == VariantOutline, variant == VariantGhost, variant == VariantLink, variant == VariantSecondary:
		cont = s.Button
	}

	if continueText == "" {
		continueText = "Continue"
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		s.Button.Render(cancelText),
		"  ",
		cont.Render(continueText),
	)
}
