package dialog

import (
	"sync"
	"testing"
	"time"

	"github.com/billie-coop/nimbus/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// responseLog records every response published on one event type.
type responseLog[V any] struct {
	mu        sync.Mutex
	responses []Response[V]
}

func recordResponses[V any](b *events.Broker, eventType events.EventType) *responseLog[V] {
	l := &responseLog[V]{}
	b.On(eventType, func(e events.Event) {
		if resp, ok := e.Payload.(Response[V]); ok {
			l.mu.Lock()
			l.responses = append(l.responses, resp)
			l.mu.Unlock()
		}
	})
	return l
}

func (l *responseLog[V]) all() []Response[V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Response[V], len(l.responses))
	copy(out, l.responses)
	return out
}

// openedSignal fires each time d applies an open event.
func openedSignal(d Dialog) <-chan struct{} {
	ch := make(chan struct{}, 16)
	d.SetNotify(func() { ch <- struct{}{} })
	return ch
}

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for dialog to open")
	}
}

func keyPress(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "left":
		return tea.KeyPressMsg{Code: tea.KeyLeft}
	case "right":
		return tea.KeyPressMsg{Code: tea.KeyRight}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "ctrl+r":
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	case "ctrl+s":
		return tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}
	case "ctrl+t":
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typeText(d Dialog, text string) {
	for _, r := range text {
		d.Update(keyPress(string(r)))
	}
}
