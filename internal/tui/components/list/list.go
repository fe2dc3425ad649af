package list

import (
	"strings"
	"time"

	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/billie-coop/nimbus/internal/worker"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/dustin/go-humanize"
)

// Each note takes a title line and a timestamp line
const itemHeight = 2

// Model is a scrollable, selectable list of notes
type Model struct {
	width, height int

	items  []worker.Note
	cursor int
	offset int

	keyMap KeyMap
	now    func() time.Time
}

// New creates an empty list
func New() *Model {
	return &Model{
		keyMap: DefaultKeyMap(),
		now:    time.Now,
	}
}

// SetItems replaces the notes, keeping the selected note selected when it
// still exists
func (l *Model) SetItems(items []worker.Note) {
	selected, hadSelection := l.Selected()
	l.items = items

	if hadSelection && l.Select(selected.ID) {
		return
	}
	l.cursor = clamp(l.cursor, 0, len(l.items)-1)
	l.scrollToCursor()
}

// Items returns the notes in display order
func (l *Model) Items() []worker.Note {
	return l.items
}

// Len returns the number of notes
func (l *Model) Len() int {
	return len(l.items)
}

// Selected returns the note under the cursor
func (l *Model) Selected() (worker.Note, bool) {
	if len(l.items) == 0 {
		return worker.Note{}, false
	}
	return l.items[l.cursor], true
}

// Select moves the cursor to the note with id
func (l *Model) Select(id string) bool {
	for i, n := range l.items {
		if n.ID == id {
			l.cursor = i
			l.scrollToCursor()
			return true
		}
	}
	return false
}

// SetSize sets the list dimensions
func (l *Model) SetSize(width, height int) {
	l.width = width
	l.height = height
	l.scrollToCursor()
}

// MoveUp moves the cursor up n notes
func (l *Model) MoveUp(n int) {
	l.cursor = clamp(l.cursor-n, 0, len(l.items)-1)
	l.scrollToCursor()
}

// MoveDown moves the cursor down n notes
func (l *Model) MoveDown(n int) {
	l.cursor = clamp(l.cursor+n, 0, len(l.items)-1)
	l.scrollToCursor()
}

// GoToTop selects the first note
func (l *Model) GoToTop() {
	l.MoveUp(len(l.items))
}

// GoToBottom selects the last note
func (l *Model) GoToBottom() {
	l.MoveDown(len(l.items))
}

func (l *Model) visible() int {
	n := l.height / itemHeight
	if n < 1 {
		return 1
	}
	return n
}

func (l *Model) scrollToCursor() {
	visible := l.visible()
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+visible {
		l.offset = l.cursor - visible + 1
	}
	l.offset = clamp(l.offset, 0, max(len(l.items)-visible, 0))
}

// Update handles navigation keys
func (l *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return l, nil
	}

	switch {
	case key.Matches(keyMsg, l.keyMap.Next):
		l.MoveDown(1)
	case key.Matches(keyMsg, l.keyMap.Prev):
		l.MoveUp(1)
	case key.Matches(keyMsg, l.keyMap.NextPage):
		l.MoveDown(l.visible())
	case key.Matches(keyMsg, l.keyMap.PrevPage):
		l.MoveUp(l.visible())
	case key.Matches(keyMsg, l.keyMap.Last):
		l.GoToBottom()
	case key.Matches(keyMsg, l.keyMap.First):
		l.GoToTop()
	}
	return l, nil
}

// View renders the visible notes
func (l *Model) View() string {
	if l.height <= 0 || l.width <= 0 {
		return ""
	}

	s := styles.CurrentTheme().S()
	if len(l.items) == 0 {
		return s.Subtle.Render("No notes yet. Press n to create one.")
	}

	end := min(l.offset+l.visible(), len(l.items))
	rows := make([]string, 0, end-l.offset)
	for i := l.offset; i < end; i++ {
		rows = append(rows, l.renderItem(i, s))
	}
	return strings.Join(rows, "\n")
}

func (l *Model) renderItem(i int, s *styles.Styles) string {
	note := l.items[i]

	title := s.Text
	marker := "  "
	if i == l.cursor {
		title = s.Title
		marker = s.Title.Render("▌ ")
	}

	width := max(l.width-2, 1)
	when := humanize.RelTime(note.UpdatedAt, l.now(), "ago", "from now")

	return lipgloss.JoinVertical(lipgloss.Left,
		marker+title.MaxWidth(width).Render(note.Title),
		"  "+s.Subtle.MaxWidth(width).Render(when),
	)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}
