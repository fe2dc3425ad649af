package status

import (
	"time"

	"github.com/billie-coop/nimbus/internal/tui/components/anim"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
)

// Message represents a status bar message
type Message struct {
	Content   string
	Type      events.StatusType
	Sticky    bool
	Timestamp time.Time
}

// Component implements a status bar that shows temporary messages
type Component struct {
	message     *Message
	width       int
	leftContent string
	spinner     *anim.Spinner

	// Timer for clearing messages
	clearAfter time.Duration
}

// New creates a new status bar component
func New() *Component {
	return &Component{
		spinner:    anim.NewSpinner(),
		clearAfter: 5 * time.Second,
	}
}

// SetMessage shows a message. Loading and sticky messages stay until the
// next message; the rest clear after a timeout.
func (c *Component) SetMessage(payload events.StatusMessagePayload) tea.Cmd {
	msg := &Message{
		Content:   payload.Message,
		Type:      payload.Type,
		Sticky:    payload.Sticky,
		Timestamp: time.Now(),
	}
	c.message = msg

	if msg.Type == events.StatusLoading {
		return c.spinner.Start()
	}
	c.spinner.Stop()

	if msg.Sticky {
		return nil
	}

	clearAfter := c.clearAfter
	if msg.Type == events.StatusError {
		clearAfter *= 2
	}
	return tea.Tick(clearAfter, func(time.Time) tea.Msg {
		return clearMessageMsg{timestamp: msg.Timestamp}
	})
}

// Current returns the message being shown
func (c *Component) Current() (Message, bool) {
	if c.message == nil {
		return Message{}, false
	}
	return *c.message, true
}

// Dismiss clears the current message
func (c *Component) Dismiss() {
	c.message = nil
	c.spinner.Stop()
}

// SetLeftContent sets the left side content (usually key hints)
func (c *Component) SetLeftContent(content string) {
	c.leftContent = content
}

// SetSize sets the bar width
func (c *Component) SetSize(width int) {
	c.width = width
}

// clearMessageMsg is sent when a status message should be cleared
type clearMessageMsg struct {
	timestamp time.Time
}

// Update handles clear timers and the loading spinner
func (c *Component) Update(msg tea.Msg) (*Component, tea.Cmd) {
	switch msg := msg.(type) {
	case clearMessageMsg:
		// Only clear if this is for the current message
		if c.message != nil && msg.timestamp.Equal(c.message.Timestamp) {
			c.message = nil
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.spinner, cmd = c.spinner.Update(msg)
	return c, cmd
}

// View renders the bar
func (c *Component) View() string {
	if c.width == 0 {
		return ""
	}

	theme := styles.CurrentTheme()
	barStyle := lipgloss.NewStyle().
		Width(c.width).
		MaxHeight(1).
		Background(theme.BgSubtle).
		Foreground(theme.FgBase).
		Padding(0, 1)

	left := theme.S().Subtle.Render(c.leftContent)
	right := c.formatMessage()

	// Account for padding
	available := c.width - 2
	gap := available - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		// The message wins over key hints
		left = ""
		gap = available - lipgloss.Width(right)
		if gap < 0 {
			gap = 0
		}
	}

	return barStyle.Render(left + lipgloss.NewStyle().Width(gap).Render("") + right)
}

// formatMessage formats the status message with appropriate styling
func (c *Component) formatMessage() string {
	if c.message == nil {
		return ""
	}

	s := styles.CurrentTheme().S()
	switch c.message.Type {
	case events.StatusSuccess:
		return s.Success.Render("✓ " + c.message.Content)
	case events.StatusError:
		return s.Error.Render("✗ " + c.message.Content)
	case events.StatusLoading:
		return c.spinner.View() + " " + s.Muted.Render(c.message.Content)
	default:
		return s.Info.Render(c.message.Content)
	}
}
