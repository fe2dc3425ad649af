package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/billie-coop/nimbus/internal/app"
	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/billie-coop/nimbus/internal/worker"
	tea "github.com/charmbracelet/bubbletea/v2"
)

// harness drives a Model the way a running program would: flow commands run
// on their own goroutine and open notifications come back as messages.
type harness struct {
	t      *testing.T
	m      *Model
	w      *worker.Worker
	opened chan tea.Msg
}

func newHarness(t *testing.T, titles ...string) *harness {
	t.Helper()

	w, err := worker.Open(filepath.Join(t.TempDir(), "nimbus.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })

	for _, title := range titles {
		if _, err := w.CreateNote(context.Background(), title, "# "+title); err != nil {
			t.Fatalf("CreateNote() error = %v", err)
		}
	}

	broker := events.NewBroker()
	manager := dialog.NewManager(broker, w, 6)
	opened := make(chan tea.Msg, 16)
	manager.SetSender(func(msg tea.Msg) { opened <- msg })

	m := New(app.New(w, broker), manager, WithThemes(styles.NewManager("nimbus")))
	t.Cleanup(m.Close)

	h := &harness{t: t, m: m, w: w, opened: opened}
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	h.send(m.loadNotes("")())
	h.send(m.loadAccount()())
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	_, cmd := h.m.Update(msg)
	return cmd
}

func (h *harness) press(keys ...tea.KeyPressMsg) {
	for _, k := range keys {
		h.send(k)
	}
}

// start runs a flow command in the background.
func (h *harness) start(cmd tea.Cmd) <-chan tea.Msg {
	h.t.Helper()
	if cmd == nil {
		h.t.Fatal("key did not start a flow")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	return done
}

func (h *harness) waitOpened() {
	h.t.Helper()
	select {
	case msg := <-h.opened:
		h.send(msg)
	case <-time.After(2 * time.Second):
		h.t.Fatal("timed out waiting for a dialog")
	}
}

// finish feeds the flow result back and runs the reload it asks for.
func (h *harness) finish(done <-chan tea.Msg) {
	h.t.Helper()
	select {
	case msg := <-done:
		if cmd := h.send(msg); cmd != nil {
			h.send(cmd())
		}
	case <-time.After(2 * time.Second):
		h.t.Fatal("flow did not finish")
	}
}

// nextEvent applies the next bus event the model subscribed to and returns
// the command it produced.
func (h *harness) nextEvent() (events.Event, tea.Cmd) {
	h.t.Helper()
	select {
	case e := <-h.m.eventSub:
		return e, h.m.handleEvent(e)
	case <-time.After(2 * time.Second):
		h.t.Fatal("no event delivered")
		return events.Event{}, nil
	}
}

func press(s string) tea.KeyPressMsg {
	switch s {
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "ctrl+u":
		return tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func typed(text string) []tea.KeyPressMsg {
	keys := make([]tea.KeyPressMsg, 0, len(text))
	for _, r := range text {
		keys = append(keys, press(string(r)))
	}
	return keys
}

func TestModel_RenameFlow(t *testing.T) {
	h := newHarness(t, "Groceries")

	done := h.start(h.send(press("r")))
	h.waitOpened()
	if got := h.m.dialogManager.ActiveDialog(); got != dialog.InputDialogType {
		t.Fatalf("ActiveDialog() = %q, want input", got)
	}

	h.press(press("ctrl+u"))
	h.press(typed("Shopping")...)
	h.press(press("enter"))
	h.finish(done)

	if h.m.dialogManager.IsDialogOpen() {
		t.Error("dialog still open after submit")
	}
	note, ok := h.m.notes.Selected()
	if !ok || note.Title != "Shopping" {
		t.Errorf("selected note = %+v, want title Shopping", note)
	}
	if h.m.flow != "" {
		t.Errorf("flow = %q after finishing", h.m.flow)
	}
}

func TestModel_DeleteCancelled(t *testing.T) {
	h := newHarness(t, "Keep me")

	done := h.start(h.send(press("d")))
	h.waitOpened()
	h.press(press("esc"))
	h.finish(done)

	notes, err := h.w.ListNotes(context.Background())
	if err != nil {
		t.Fatalf("ListNotes() error = %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("%d notes left, want 1", len(notes))
	}
	if h.m.flow != "" {
		t.Errorf("flow = %q after cancel", h.m.flow)
	}
}

func TestModel_DeleteConfirmed(t *testing.T) {
	h := newHarness(t, "Old", "Older")

	done := h.start(h.send(press("d")))
	h.waitOpened()
	h.press(press("y"))
	h.finish(done)

	if n := h.m.notes.Len(); n != 1 {
		t.Errorf("list has %d notes, want 1", n)
	}
}

func TestModel_OneFlowAtATime(t *testing.T) {
	h := newHarness(t, "Note")

	first := h.send(press("n"))
	if first == nil {
		t.Fatal("n did not start a flow")
	}
	// The dialog has not opened yet, so this reaches the global bindings
	if cmd := h.send(press("r")); cmd != nil {
		t.Error("second flow started while one was running")
	}

	done := h.start(first)
	h.waitOpened()
	h.press(press("esc"))
	h.finish(done)

	if cmd := h.send(press("r")); cmd == nil {
		t.Error("flows stay blocked after the first one finished")
	}
}

func TestModel_CreateSelectsNewNote(t *testing.T) {
	h := newHarness(t, "First")

	done := h.start(h.send(press("n")))
	h.waitOpened()
	h.press(typed("Second")...)
	h.press(press("enter"))
	h.finish(done)

	note, ok := h.m.notes.Selected()
	if !ok || note.Title != "Second" {
		t.Errorf("selected note = %+v, want the new note", note)
	}
	if note.Content != "# Second\n" {
		t.Errorf("content = %q", note.Content)
	}
}

func TestModel_EnableTwoFactor(t *testing.T) {
	h := newHarness(t)

	done := h.start(h.send(press("2")))
	h.waitOpened()
	if got := h.m.dialogManager.ActiveDialog(); got != dialog.TwoFactorDialogType {
		t.Fatalf("ActiveDialog() = %q, want two_factor", got)
	}

	code, err := h.w.CurrentCode(context.Background())
	if err != nil {
		t.Fatalf("CurrentCode() error = %v", err)
	}
	h.press(typed(code)...)
	h.press(press("enter"))
	h.finish(done)

	// Dialog events and the toast come first, then the refetch
	for {
		e, cmd := h.nextEvent()
		if e.Type == events.AccountRefetchEvent {
			h.send(cmd())
			break
		}
	}

	account, ok := h.m.account.Account()
	if !ok || !account.TwoFactorEnabled {
		t.Errorf("account = %+v, want two-factor enabled", account)
	}
	current, ok := h.m.statusBar.Current()
	if !ok || !current.Sticky || !strings.Contains(current.Content, "Recovery key") {
		t.Errorf("status = %+v, want the sticky recovery key toast", current)
	}
}

func TestModel_KeysGoToOpenDialog(t *testing.T) {
	h := newHarness(t, "Note")

	h.send(press("p"))
	h.waitOpened()
	if got := h.m.dialogManager.ActiveDialog(); got != dialog.ChangePasswordDialogType {
		t.Fatalf("ActiveDialog() = %q, want change_password", got)
	}

	// q types into the password field instead of quitting
	if cmd := h.send(press("q")); cmd != nil {
		t.Error("key handled outside the dialog")
	}
	if !h.m.dialogManager.IsDialogOpen() {
		t.Fatal("dialog closed by a typed key")
	}

	h.send(press("esc"))
	if h.m.dialogManager.IsDialogOpen() {
		t.Error("esc did not close the dialog")
	}
}

func TestModel_CycleThemeSavesSetting(t *testing.T) {
	h := newHarness(t)
	before := h.m.themes.Current().Name

	cmd := h.send(press("t"))
	if cmd == nil {
		t.Fatal("theme key returned no command")
	}
	h.send(cmd())

	after := h.m.themes.Current().Name
	if after == before {
		t.Fatalf("theme still %q", after)
	}

	settings, err := h.w.FetchSettings(context.Background())
	if err != nil {
		t.Fatalf("FetchSettings() error = %v", err)
	}
	if settings["theme"] != after {
		t.Errorf("saved theme = %q, want %q", settings["theme"], after)
	}
}

func TestModel_StatusEvent(t *testing.T) {
	h := newHarness(t)

	h.m.eventBroker.Emit(events.StatusMessageEvent, events.StatusMessagePayload{
		Message: "Note saved",
		Type:    events.StatusSuccess,
	})
	h.nextEvent()

	current, ok := h.m.statusBar.Current()
	if !ok || current.Content != "Note saved" {
		t.Errorf("status = %+v", current)
	}
}

func TestModel_View(t *testing.T) {
	h := newHarness(t, "Groceries")

	view := h.m.render()
	for _, want := range []string{"Groceries", "nimbus"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}
