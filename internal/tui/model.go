package tui

import (
	"io"

	"github.com/billie-coop/nimbus/internal/app"
	"github.com/billie-coop/nimbus/internal/tui/components/account"
	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/components/list"
	"github.com/billie-coop/nimbus/internal/tui/components/preview"
	"github.com/billie-coop/nimbus/internal/tui/components/status"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/tui/styles"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/log"
)

const settingTheme = "theme"

// Model is the root program model
type Model struct {
	width  int
	height int

	// Components
	account       *account.Panel
	notes         *list.Model
	preview       *preview.Model
	statusBar     *status.Component
	dialogManager *dialog.Manager

	// Event system
	eventBroker *events.Broker
	eventSub    <-chan events.Event

	// App holds all business logic
	app    *app.App
	themes *styles.Manager
	keyMap KeyMap
	logger *log.Logger

	// flow names the dialog flow in progress, if any
	flow string
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for the model.
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) {
		m.logger = logger.WithPrefix("tui")
	}
}

// WithThemes sets the theme manager the theme key cycles through.
func WithThemes(themes *styles.Manager) Option {
	return func(m *Model) {
		m.themes = themes
	}
}

// New creates the root model. The dialog manager must be built on the same
// broker as the app.
func New(appInstance *app.App, dialogManager *dialog.Manager, opts ...Option) *Model {
	m := &Model{
		account:       account.New(),
		notes:         list.New(),
		preview:       preview.New(),
		statusBar:     status.New(),
		dialogManager: dialogManager,
		eventBroker:   appInstance.EventBroker,
		app:           appInstance,
		keyMap:        DefaultKeyMap(),
		logger:        log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.themes == nil {
		m.themes = styles.DefaultManager()
	}

	m.eventSub = m.eventBroker.Subscribe(
		events.StatusMessageEvent,
		events.AccountRefetchEvent,
		events.DialogOpenEvent,
		events.DialogCloseEvent,
	)

	return m
}

// Init loads the account, the settings and the notes
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.dialogManager.Init(),
		m.listenForEvents(),
		m.loadAccount(),
		m.loadSettings(),
		m.loadNotes(""),
	)
}

// Update handles all TUI updates and routes to components
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case events.Event:
		// Continue listening for more events
		return m, tea.Batch(m.handleEvent(msg), m.listenForEvents())

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case notesLoadedMsg:
		if msg.err != nil {
			m.logger.Error("failed to load notes", "err", msg.err)
			return m, m.statusCmd("Failed to load notes: "+msg.err.Error(), events.StatusError)
		}
		m.notes.SetItems(msg.notes)
		if msg.selectID != "" {
			m.notes.Select(msg.selectID)
		}
		m.account.SetNoteCount(len(msg.notes))
		m.syncPreview()
		return m, nil

	case accountLoadedMsg:
		if msg.err != nil {
			m.logger.Error("failed to load account", "err", msg.err)
			m.account.SetError(msg.err)
			return m, nil
		}
		m.account.SetAccount(msg.account)
		return m, nil

	case settingsLoadedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load settings", "err", msg.err)
			return m, nil
		}
		if name, ok := msg.settings[settingTheme]; ok {
			if err := m.themes.SetTheme(name); err != nil {
				m.logger.Warn("ignoring saved theme", "theme", name, "err", err)
			}
			m.preview.Refresh()
		}
		return m, nil

	case flowDoneMsg:
		return m, m.finishFlow(msg)

	case editorFinishedMsg:
		m.flow = ""
		if msg.err != nil {
			m.logger.Warn("edit failed", "note", msg.note.ID, "err", msg.err)
			return m, m.statusCmd(msg.err.Error(), events.StatusError)
		}
		return m, m.saveContent(msg.note, msg.content)

	case dialog.OpenedMsg, dialog.PasswordChangedMsg:
		var cmd tea.Cmd
		m.dialogManager, cmd = m.dialogManager.Update(msg)
		return m, cmd
	}

	// If a dialog is open, route input to it first
	if m.dialogManager.IsDialogOpen() {
		if _, ok := msg.(tea.KeyPressMsg); ok {
			var cmd tea.Cmd
			m.dialogManager, cmd = m.dialogManager.Update(msg)
			return m, cmd
		}
	}

	if keyMsg, ok := msg.(tea.KeyPressMsg); ok {
		if cmd, handled := m.handleKey(keyMsg); handled {
			return m, cmd
		}
	}

	// Update all components (they'll get the original message)
	var cmd tea.Cmd

	m.statusBar, cmd = m.statusBar.Update(msg)
	cmds = append(cmds, cmd)

	previous, _ := m.notes.Selected()
	m.notes, cmd = m.notes.Update(msg)
	cmds = append(cmds, cmd)
	if current, _ := m.notes.Selected(); current.ID != previous.ID {
		m.syncPreview()
	}

	m.preview, cmd = m.preview.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// handleKey runs the global bindings. It reports false for keys the
// components should see.
func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keyMap.Quit):
		return tea.Quit, true
	case key.Matches(msg, m.keyMap.NewNote):
		return m.newNote(), true
	case key.Matches(msg, m.keyMap.Rename):
		return m.renameNote(), true
	case key.Matches(msg, m.keyMap.Edit):
		return m.editNote(), true
	case key.Matches(msg, m.keyMap.Delete):
		return m.deleteNote(), true
	case key.Matches(msg, m.keyMap.TwoFactor):
		return m.toggleTwoFactor(), true
	case key.Matches(msg, m.keyMap.ChangePassword):
		m.app.Security.ChangePassword()
		return nil, true
	case key.Matches(msg, m.keyMap.Theme):
		return m.cycleTheme(), true
	case key.Matches(msg, m.keyMap.Reload):
		return tea.Batch(m.loadNotes(""), m.loadAccount()), true
	}
	return nil, false
}

// finishFlow clears the running flow and reloads what it changed.
func (m *Model) finishFlow(msg flowDoneMsg) tea.Cmd {
	if msg.name == m.flow {
		m.flow = ""
	}

	switch {
	case msg.err != nil && isAbandoned(msg.err):
		m.logger.Info("flow abandoned", "flow", msg.name, "err", msg.err)
		return nil
	case msg.err != nil:
		// Flows already showed the failure
		m.logger.Warn("flow failed", "flow", msg.name, "err", msg.err)
		if msg.name == "theme" {
			return m.statusCmd("Failed to save theme: "+msg.err.Error(), events.StatusError)
		}
		return nil
	case !msg.changed:
		return nil
	}

	switch msg.name {
	case "theme":
		return nil
	case "enable two-factor", "disable two-factor":
		// The flow published a refetch already
		return nil
	default:
		return m.loadNotes(msg.selectID)
	}
}

// syncPreview shows the selected note in the preview pane
func (m *Model) syncPreview() {
	if note, ok := m.notes.Selected(); ok {
		m.preview.SetNote(&note)
		return
	}
	m.preview.SetNote(nil)
}

// View renders the entire TUI
func (m *Model) View() tea.View {
	return tea.NewView(m.render())
}

func (m *Model) render() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	// Overlay dialog if one is open
	if m.dialogManager.IsDialogOpen() {
		if dialogView := m.dialogManager.View(); dialogView != "" {
			return dialogView
		}
	}

	theme := styles.CurrentTheme()
	contentHeight := m.height - statusHeight

	panel := func(width int, focused bool, content string) string {
		border := theme.Border
		if focused {
			border = theme.BorderFocus
		}
		return lipgloss.NewStyle().
			Width(width - 2). // Account for border width
			Height(contentHeight - 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Render(content)
	}

	topSection := lipgloss.JoinHorizontal(lipgloss.Top,
		panel(m.calculateSidebarWidth(), false, m.account.View()),
		panel(m.calculateListWidth(), true, m.notes.View()),
		panel(m.previewWidth(), false, m.preview.View()),
	)

	statusStyle := lipgloss.NewStyle().
		Width(m.width).
		Background(theme.BgBase).
		Foreground(theme.FgBase)

	return lipgloss.JoinVertical(lipgloss.Left, topSection, statusStyle.Render(m.statusBar.View()))
}

// Close releases the event subscription and detaches the dialogs.
func (m *Model) Close() {
	m.eventBroker.Unsubscribe(m.eventSub)
	m.dialogManager.Close()
}
