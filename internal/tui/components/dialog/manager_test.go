package dialog

import (
	"testing"

	"github.com/billie-coop/nimbus/internal/tui/events"
	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestManager_StackFollowsOpenAndClose(t *testing.T) {
	b := events.NewBroker()
	m := NewManager(b, &fakeChanger{}, 6)
	defer m.Close()

	var sent []tea.Msg
	m.SetSender(func(msg tea.Msg) { sent = append(sent, msg) })

	var lifecycle []string
	b.On(events.DialogOpenEvent, func(e events.Event) {
		lifecycle = append(lifecycle, "open:"+e.Payload.(events.DialogPayload).DialogID)
	})
	b.On(events.DialogCloseEvent, func(e events.Event) {
		lifecycle = append(lifecycle, "close:"+e.Payload.(events.DialogPayload).DialogID)
	})

	b.Emit(events.OpenInputDialogEvent, OpenRequest[InputParams]{RequestID: "1", Params: InputParams{Value: "x"}})
	b.Emit(events.OpenConfirmDialogEvent, OpenRequest[ConfirmParams]{RequestID: "2"})

	if len(sent) != 2 {
		t.Fatalf("sender got %d messages, want 2", len(sent))
	}
	for _, msg := range sent {
		m, _ = m.Update(msg)
	}

	if got := m.ActiveDialog(); got != ConfirmDialogType {
		t.Fatalf("ActiveDialog() = %q, want confirm", got)
	}

	// Keys go to the top dialog only
	m, _ = m.Update(keyPress("y"))
	if got := m.ActiveDialog(); got != InputDialogType {
		t.Fatalf("ActiveDialog() = %q after confirm, want input", got)
	}

	m, _ = m.Update(keyPress("esc"))
	if m.IsDialogOpen() {
		t.Error("dialog still open after escape")
	}

	want := []string{"open:input", "open:confirm", "close:confirm", "close:input"}
	if len(lifecycle) != len(want) {
		t.Fatalf("lifecycle = %v, want %v", lifecycle, want)
	}
	for i := range want {
		if lifecycle[i] != want[i] {
			t.Errorf("lifecycle[%d] = %q, want %q", i, lifecycle[i], want[i])
		}
	}
}

func TestManager_IgnoresKeysWithoutDialog(t *testing.T) {
	b := events.NewBroker()
	m := NewManager(b, &fakeChanger{}, 6)

	m, cmd := m.Update(keyPress("esc"))
	if cmd != nil || m.IsDialogOpen() {
		t.Error("manager acted without an open dialog")
	}
	if m.View() != "" {
		t.Error("View() not empty without an open dialog")
	}
}

func TestManager_CloseDetaches(t *testing.T) {
	b := events.NewBroker()
	m := NewManager(b, &fakeChanger{}, 6)
	m.Close()

	for _, eventType := range []events.EventType{
		events.OpenTwoFactorCodeDialogEvent,
		events.OpenInputDialogEvent,
		events.OpenConfirmDialogEvent,
		events.OpenChangePasswordDialogEvent,
	} {
		if n := b.Listeners(eventType); n != 0 {
			t.Errorf("%s listeners = %d after Close", eventType, n)
		}
	}
}

func TestManager_SizeReachesDialogs(t *testing.T) {
	b := events.NewBroker()
	m := NewManager(b, &fakeChanger{}, 6)
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	b.Emit(events.OpenTwoFactorCodeDialogEvent, OpenRequest[TwoFactorParams]{RequestID: "t"})
	m, _ = m.Update(OpenedMsg{Type: TwoFactorDialogType})

	if m.View() == "" {
		t.Error("View() empty with an open dialog")
	}
}
