package styles

import "testing"

func TestManager_SetTheme(t *testing.T) {
	m := NewManager("light")
	if got := m.Current().Name; got != "light" {
		t.Fatalf("Current() = %q, want light", got)
	}

	if err := m.SetTheme("nimbus"); err != nil {
		t.Fatalf("SetTheme(nimbus) error = %v", err)
	}
	if err := m.SetTheme("missing"); err == nil {
		t.Error("SetTheme(missing) returned nil error")
	}
	if got := m.Current().Name; got != "nimbus" {
		t.Errorf("Current() = %q after failed SetTheme, want nimbus", got)
	}
}

func TestNewManager_UnknownDefaultFallsBack(t *testing.T) {
	m := NewManager("does-not-exist")
	if got := m.Current().Name; got != "nimbus" {
		t.Errorf("Current() = %q, want nimbus", got)
	}
	if names := m.List(); len(names) != 2 {
		t.Errorf("List() = %v, want two themes", names)
	}
}
