package anim

import (
	"time"

	"github.com/billie-coop/nimbus/internal/tui/styles"
	tea "github.com/charmbracelet/bubbletea/v2"
)

var frames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is an animated loading indicator
type Spinner struct {
	frame   int
	speed   time.Duration
	running bool
}

// NewSpinner creates a new spinner
func NewSpinner() *Spinner {
	return &Spinner{speed: 80 * time.Millisecond}
}

// Start begins the animation. Starting a running spinner is a no-op.
func (s *Spinner) Start() tea.Cmd {
	if s.running {
		return nil
	}
	s.running = true
	return s.tick()
}

// Stop halts the animation after the next tick.
func (s *Spinner) Stop() {
	s.running = false
}

// Running reports whether the spinner is animating.
func (s *Spinner) Running() bool {
	return s.running
}

// Update handles spinner animation
func (s *Spinner) Update(msg tea.Msg) (*Spinner, tea.Cmd) {
	if msg, ok := msg.(tickMsg); ok && msg.id == s && s.running {
		s.frame++
		return s, s.tick()
	}
	return s, nil
}

// View renders the current frame
func (s *Spinner) View() string {
	if !s.running {
		return ""
	}
	return styles.CurrentTheme().S().Info.Render(frames[s.frame%len(frames)])
}

// tick creates a command to advance the animation
func (s *Spinner) tick() tea.Cmd {
	return tea.Tick(s.speed, func(time.Time) tea.Msg {
		return tickMsg{id: s}
	})
}

// tickMsg is sent to advance the animation
type tickMsg struct {
	id *Spinner
}
