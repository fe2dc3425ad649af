package styles

import (
	"fmt"
	"image/color"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss/v2"
)

// Semantic color names for consistency
type Theme struct {
	Name   string
	IsDark bool

	// Brand colors
	Primary   color.Color
	Secondary color.Color
	Accent    color.Color

	// Background colors
	BgBase    color.Color
	BgSubtle  color.Color
	BgOverlay color.Color

	// Foreground colors
	FgBase     color.Color
	FgMuted    color.Color
	FgSubtle   color.Color
	FgInverted color.Color

	// Border colors
	Border      color.Color
	BorderFocus color.Color

	// Semantic colors
	Success color.Color
	Error   color.Color
	Warning color.Color
	Info    color.Color

	// Markdown style name understood by glamour
	MarkdownStyle string

	styles *Styles
}

type Styles struct {
	Base   lipgloss.Style
	Title  lipgloss.Style
	Text   lipgloss.Style
	Muted  lipgloss.Style
	Subtle lipgloss.Style
	Bold   lipgloss.Style

	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// Component styles
	Button            lipgloss.Style
	ButtonFocused     lipgloss.Style
	ButtonDestructive lipgloss.Style
	ButtonDisabled    lipgloss.Style
	Input             lipgloss.Style
	InputFocused      lipgloss.Style
	InputInvalid      lipgloss.Style
	Border            lipgloss.Style
	BorderFocused     lipgloss.Style
	Overlay           lipgloss.Style
	Badge             lipgloss.Style
}

func (t *Theme) S() *Styles {
	if t.styles == nil {
		t.styles = t.buildStyles()
	}
	return t.styles
}

func (t *Theme) buildStyles() *Styles {
	base := lipgloss.NewStyle().
		Foreground(t.FgBase)

	button := lipgloss.NewStyle().
		Padding(0, 2).
		Background(t.BgSubtle).
		Foreground(t.FgBase)

	input := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	return &Styles{
		Base: base,

		Title: base.
			Foreground(t.Accent).
			Bold(true),

		Text:   base,
		Muted:  base.Foreground(t.FgMuted),
		Subtle: base.Foreground(t.FgSubtle),
		Bold:   base.Bold(true),

		Success: base.Foreground(t.Success),
		Error:   base.Foreground(t.Error),
		Warning: base.Foreground(t.Warning),
		Info:    base.Foreground(t.Info),

		Button: button,
		ButtonFocused: button.
			Background(t.Primary).
			Foreground(t.FgInverted).
			Bold(true),
		ButtonDestructive: button.
			Background(t.Error).
			Foreground(t.FgInverted).
			Bold(true),
		ButtonDisabled: button.
			Foreground(t.FgSubtle),

		Input:        input,
		InputFocused: input.BorderForeground(t.BorderFocus),
		InputInvalid: input.BorderForeground(t.Error),

		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.Border),
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(t.BorderFocus).
			Padding(1, 2),

		Overlay: lipgloss.NewStyle().
			Background(t.BgOverlay),

		Badge: lipgloss.NewStyle().
			Padding(0, 1).
			Background(t.Secondary).
			Foreground(t.FgInverted),
	}
}

// Manager holds the registered themes and the current one.
type Manager struct {
	mu      sync.RWMutex
	themes  map[string]*Theme
	current *Theme
}

var (
	defaultManager     *Manager
	defaultManagerOnce sync.Once
)

func SetDefaultManager(m *Manager) {
	defaultManager = m
}

func DefaultManager() *Manager {
	defaultManagerOnce.Do(func() {
		if defaultManager == nil {
			defaultManager = NewManager("nimbus")
		}
	})
	return defaultManager
}

// CurrentTheme returns the active theme of the default manager.
func CurrentTheme() *Theme {
	return DefaultManager().Current()
}

func NewManager(defaultTheme string) *Manager {
	m := &Manager{themes: make(map[string]*Theme)}
	m.Register(NewNimbusTheme())
	m.Register(NewLightTheme())

	if t, ok := m.themes[defaultTheme]; ok {
		m.current = t
	} else {
		m.current = m.themes["nimbus"]
	}
	return m
}

func (m *Manager) Register(theme *Theme) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[theme.Name] = theme
}

func (m *Manager) Current() *Theme {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.themes[name]
	if !ok {
		return fmt.Errorf("theme %q not found", name)
	}
	m.current = t
	return nil
}

func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.themes))
	for name := range m.themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseHex converts "#rrggbb" into a color.
func ParseHex(hex string) color.Color {
	return lipgloss.Color(hex)
}
