package dialog

import (
	"strings"

	"github.com/billie-coop/nimbus/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// TextInput is a single-line input field for dialogs
type TextInput struct {
	value       []rune
	placeholder string
	focused     bool
	cursorPos   int
	charLimit   int
	masked      bool
	accept      func(r rune) bool
}

// NewTextInput creates a new text input
func NewTextInput() *TextInput {
	return &TextInput{}
}

// Value returns the current value
func (t *TextInput) Value() string {
	return string(t.value)
}

// SetValue replaces the value and moves the cursor to the end
func (t *TextInput) SetValue(value string) {
	t.value = t.value[:0]
	for _, r := range value {
		if t.allowed(r) {
			t.value = append(t.value, r)
		}
	}
	t.cursorPos = len(t.value)
}

// Reset clears the value
func (t *TextInput) Reset() {
	t.SetValue("")
}

// Len returns the number of characters entered
func (t *TextInput) Len() int {
	return len(t.value)
}

// SetPlaceholder sets the placeholder text
func (t *TextInput) SetPlaceholder(placeholder string) {
	t.placeholder = placeholder
}

// SetCharLimit caps the number of characters. Zero means no limit.
func (t *TextInput) SetCharLimit(n int) {
	t.charLimit = n
}

// SetMasked hides the value behind bullets
func (t *TextInput) SetMasked(masked bool) {
	t.masked = masked
}

// SetFilter restricts which characters may be typed
func (t *TextInput) SetFilter(accept func(r rune) bool) {
	t.accept = accept
}

// Focus focuses the input
func (t *TextInput) Focus() {
	t.focused = true
}

// Blur removes focus
func (t *TextInput) Blur() {
	t.focused = false
}

// Focused reports whether the input has focus
func (t *TextInput) Focused() bool {
	return t.focused
}

func (t *TextInput) allowed(r rune) bool {
	if t.charLimit > 0 && len(t.value) >= t.charLimit {
		return false
	}
	if t.accept != nil && !t.accept(r) {
		return false
	}
	return r >= ' '
}

// Update handles key presses while focused
func (t *TextInput) Update(msg tea.Msg) {
	if !t.focused {
		return
	}

	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return
	}

	switch keyMsg.String() {
	case "backspace":
		if t.cursorPos > 0 {
			t.value = append(t.value[:t.cursorPos-1], t.value[t.cursorPos:]...)
			t.cursorPos--
		}
	case "delete":
		if t.cursorPos < len(t.value) {
			t.value = append(t.value[:t.cursorPos], t.value[t.cursorPos+1:]...)
		}
	case "left":
		if t.cursorPos > 0 {
			t.cursorPos--
		}
	case "right":
		if t.cursorPos < len(t.value) {
			t.cursorPos++
		}
	case "home", "ctrl+a":
		t.cursorPos = 0
	case "end", "ctrl+e":
		t.cursorPos = len(t.value)
	case "ctrl+u":
		t.value = t.value[t.cursorPos:]
		t.cursorPos = 0
	case "space":
		t.insert(' ')
	default:
		for _, r := range keyMsg.Key().Text {
			t.insert(r)
		}
	}
}

func (t *TextInput) insert(r rune) {
	if !t.allowed(r) {
		return
	}
	t.value = append(t.value, 0)
	copy(t.value[t.cursorPos+1:], t.value[t.cursorPos:])
	t.value[t.cursorPos] = r
	t.cursorPos++
}

// View renders the input
func (t *TextInput) View() string {
	theme := styles.CurrentTheme()
	text := lipgloss.NewStyle().Foreground(theme.FgBase)

	display := t.value
	if t.masked {
		display = []rune(strings.Repeat("•", len(t.value)))
	}

	if len(display) == 0 && t.placeholder != "" && !t.focused {
		return text.Foreground(theme.FgSubtle).Render(t.placeholder)
	}

	if !t.focused {
		return text.Render(string(display))
	}

	cursor := lipgloss.NewStyle().
		Background(theme.Primary).
		Foreground(theme.FgInverted)

	if t.cursorPos < len(display) {
		before := string(display[:t.cursorPos])
		after := string(display[t.cursorPos+1:])
		return text.Render(before) + cursor.Render(string(display[t.cursorPos])) + text.Render(after)
	}

	rendered := text.Render(string(display)) + cursor.Render(" ")
	if len(display) == 0 && t.placeholder != "" {
		rendered += text.Foreground(theme.FgSubtle).Render(t.placeholder)
	}
	return rendered
}
