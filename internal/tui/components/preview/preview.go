package preview

import (
	"strings"

	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/billie-coop/nimbus/internal/worker"
	"github.com/charmbracelet/bubbles/v2/key"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour/v2"
)

// DefaultKeyMap binds only half-page scrolling. The list pane owns the
// arrow and page keys, so the rest of the viewport bindings stay unset.
func DefaultKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "shift+up"),
			key.WithHelp("ctrl+u", "scroll up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "shift+down"),
			key.WithHelp("ctrl+d", "scroll down"),
		),
	}
}

// Model renders a note body as markdown
type Model struct {
	viewport viewport.Model
	width    int
	height   int

	note     *worker.Note
	rendered struct {
		id, content, style string
		width              int
	}
}

// New creates an empty preview
func New() *Model {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.KeyMap = DefaultKeyMap()

	return &Model{viewport: vp}
}

// SetNote shows note. A nil note clears the preview; a different note
// starts at the top.
func (m *Model) SetNote(note *worker.Note) {
	if note == nil || m.note == nil || note.ID != m.note.ID {
		m.viewport.GotoTop()
	}
	m.note = note
	m.refreshContent()
}

// SetSize sets the preview dimensions
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.SetWidth(width)
	m.viewport.SetHeight(height)
	m.refreshContent()
}

// Refresh re-renders, e.g. after a theme change
func (m *Model) Refresh() {
	m.rendered.style = ""
	m.refreshContent()
}

// refreshContent re-renders the note into the viewport when the note,
// width, or markdown style changed.
func (m *Model) refreshContent() {
	if m.note == nil || m.width <= 0 {
		m.rendered.id = ""
		m.viewport.SetContent("")
		return
	}

	style := styles.CurrentTheme().MarkdownStyle
	r := &m.rendered
	if r.id == m.note.ID && r.content == m.note.Content && r.width == m.width && r.style == style {
		return
	}

	content, err := renderMarkdown(m.note.Content, style, m.width)
	if err != nil {
		// Fall back to the raw text
		content = m.note.Content
	}

	m.viewport.SetContent(content)
	r.id, r.content, r.width, r.style = m.note.ID, m.note.Content, m.width, style
}

func renderMarkdown(content, style string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(max(width-4, 10)), // Account for padding
		glamour.WithPreservedNewLines(),
		glamour.WithEmoji(),
	)
	if err != nil {
		return "", err
	}

	rendered, err := r.Render(content)
	if err != nil {
		return "", err
	}

	// Remove extra newlines that glamour adds
	return strings.Trim(rendered, "\n"), nil
}

// Update forwards scroll keys and mouse wheel events to the viewport
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.note == nil {
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the visible part of the note
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.note == nil {
		return styles.CurrentTheme().S().Subtle.Render("Select a note to read it.")
	}
	return m.viewport.View()
}
