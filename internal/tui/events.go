package tui

import (
	"github.com/billie-coop/nimbus/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// listenForEvents listens for events from the event broker
func (m *Model) listenForEvents() tea.Cmd {
	sub := m.eventSub
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil
		}
		return event
	}
}

// handleEvent processes events from the event broker
func (m *Model) handleEvent(event events.Event) tea.Cmd {
	switch event.Type {
	case events.StatusMessageEvent:
		if payload, ok := event.Payload.(events.StatusMessagePayload); ok {
			return m.statusBar.SetMessage(payload)
		}

	case events.AccountRefetchEvent:
		return m.loadAccount()

	case events.DialogOpenEvent, events.DialogCloseEvent:
		if payload, ok := event.Payload.(events.DialogPayload); ok {
			m.logger.Debug(string(event.Type), "dialog", payload.DialogID)
		}
	}

	return nil
}
