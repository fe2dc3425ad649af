package preview

import (
	"fmt"
	"strings"
	"testing"

	"github.com/billie-coop/nimbus/internal/worker"
	tea "github.com/charmbracelet/bubbletea/v2"
)

func TestModel_RendersMarkdown(t *testing.T) {
	m := New()
	m.SetSize(60, 20)
	m.SetNote(&worker.Note{ID: "a", Content: "# Groceries\n\n- milk\n- eggs"})

	view := m.View()
	for _, want := range []string{"Groceries", "milk", "eggs"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
	if view == "# Groceries\n\n- milk\n- eggs" {
		t.Error("markdown returned unrendered")
	}
}

func longNote(id string) *worker.Note {
	var body strings.Builder
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&body, "line %d\n\n", i)
	}
	return &worker.Note{ID: id, Content: body.String()}
}

func TestModel_Scroll(t *testing.T) {
	m := New()
	m.SetSize(60, 6)
	m.SetNote(longNote("a"))

	tests := []struct {
		name string
		msg  tea.Msg
		want func(offset, before int) bool
	}{
		{"up at top stays", tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}, func(o, _ int) bool { return o == 0 }},
		{"ctrl+d half page", tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl}, func(o, b int) bool { return o == b+3 }},
		{"wheel down", tea.MouseWheelMsg{Button: tea.MouseWheelDown}, func(o, b int) bool { return o == b+3 }},
		{"wheel up", tea.MouseWheelMsg{Button: tea.MouseWheelUp}, func(o, b int) bool { return o == b-3 }},
		{"ctrl+u half page", tea.KeyPressMsg{Code: 'u', Mod: tea.ModCtrl}, func(o, b int) bool { return o == b-3 }},
		// Plain keys belong to the list and the global bindings
		{"d ignored", tea.KeyPressMsg{Code: 'd', Text: "d"}, func(o, b int) bool { return o == b }},
		{"down ignored", tea.KeyPressMsg{Code: tea.KeyDown}, func(o, b int) bool { return o == b }},
		{"pgdown ignored", tea.KeyPressMsg{Code: tea.KeyPgDown}, func(o, b int) bool { return o == b }},
	}

	for _, tt := range tests {
		before := m.viewport.YOffset
		m.Update(tt.msg)
		if got := m.viewport.YOffset; !tt.want(got, before) {
			t.Errorf("%s: offset %d -> %d", tt.name, before, got)
		}
	}
}

func TestModel_NewNoteStartsAtTop(t *testing.T) {
	m := New()
	m.SetSize(60, 6)
	m.SetNote(longNote("a"))

	for i := 0; i < 100; i++ {
		m.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	}
	if !m.viewport.AtBottom() {
		t.Fatalf("offset = %d, want bottom", m.viewport.YOffset)
	}

	// The same note edited keeps its position
	edited := longNote("a")
	edited.Content += "tail\n"
	m.SetNote(edited)
	if m.viewport.YOffset == 0 {
		t.Error("offset reset when the same note changed")
	}

	m.SetNote(longNote("b"))
	if m.viewport.YOffset != 0 {
		t.Errorf("offset = %d after switching notes", m.viewport.YOffset)
	}
}

func TestModel_Empty(t *testing.T) {
	m := New()
	m.SetSize(60, 5)
	if !strings.Contains(m.View(), "Select a note") {
		t.Errorf("View() = %q", m.View())
	}
	m.SetNote(nil)
	if !strings.Contains(m.View(), "Select a note") {
		t.Error("nil note not treated as empty")
	}

	// Scrolling with nothing shown is a no-op
	m.Update(tea.KeyPressMsg{Code: 'd', Mod: tea.ModCtrl})
	if m.viewport.YOffset != 0 {
		t.Errorf("offset = %d with no note", m.viewport.YOffset)
	}
}
