package events

// EventType identifies the type of event
type EventType string

// Wildcard subscribes a channel to every event type.
const Wildcard EventType = "*"

const (
	// Dialog request/response pairs
	OpenTwoFactorCodeDialogEvent     EventType = "openTwoFactorCodeDialog"
	TwoFactorCodeDialogResponseEvent EventType = "twoFactorCodeDialogResponse"
	OpenInputDialogEvent             EventType = "openInputDialog"
	InputDialogResponseEvent         EventType = "inputDialogResponse"
	OpenConfirmDialogEvent           EventType = "openConfirmDialog"
	ConfirmDialogResponseEvent       EventType = "confirmDialogResponse"

	// Fire-and-forget dialogs
	OpenChangePasswordDialogEvent EventType = "openChangePasswordDialog"

	// Account
	AccountRefetchEvent EventType = "useAccountRefetch"

	// UI events
	StatusMessageEvent EventType = "ui.status"
	DialogOpenEvent    EventType = "ui.dialog.open"
	DialogCloseEvent   EventType = "ui.dialog.close"
)

// Event represents an event in the system
type Event struct {
	Type    EventType
	Payload any
}

// StatusType classifies a status toast.
type StatusType string

const (
	StatusInfo    StatusType = "info"
	StatusLoading StatusType = "loading"
	StatusSuccess StatusType = "success"
	StatusError   StatusType = "error"
)

type StatusMessagePayload struct {
	Message string
	Type    StatusType
	// Sticky messages stay until the next one replaces them
	Sticky bool
}

type DialogPayload struct {
	DialogID string
	Data     any
}
