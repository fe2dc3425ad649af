package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/worker"
	tea "github.com/charmbracelet/bubbletea/v2"
)

const defaultEditor = "vi"

func (m *Model) loadNotes(selectID string) tea.Cmd {
	backend := m.app.Backend
	return func() tea.Msg {
		notes, err := backend.ListNotes(context.Background())
		return notesLoadedMsg{notes: notes, selectID: selectID, err: err}
	}
}

func (m *Model) loadAccount() tea.Cmd {
	backend := m.app.Backend
	return func() tea.Msg {
		account, err := backend.FetchAccount(context.Background())
		return accountLoadedMsg{account: account, err: err}
	}
}

func (m *Model) loadSettings() tea.Cmd {
	backend := m.app.Backend
	return func() tea.Msg {
		settings, err := backend.FetchSettings(context.Background())
		return settingsLoadedMsg{settings: settings, err: err}
	}
}

// startFlow runs fn off the update loop. Flows block on dialogs, so only
// one runs at a time.
func (m *Model) startFlow(name string, fn func(ctx context.Context) flowDoneMsg) tea.Cmd {
	if m.flow != "" {
		m.logger.Debug("flow already running", "running", m.flow, "requested", name)
		return nil
	}
	m.flow = name
	return func() tea.Msg {
		msg := fn(context.Background())
		msg.name = name
		return msg
	}
}

func (m *Model) newNote() tea.Cmd {
	notes := m.app.Notes
	return m.startFlow("create", func(ctx context.Context) flowDoneMsg {
		note, ok, err := notes.Create(ctx)
		return flowDoneMsg{changed: ok, selectID: note.ID, err: err}
	})
}

func (m *Model) renameNote() tea.Cmd {
	note, ok := m.notes.Selected()
	if !ok {
		return nil
	}
	notes := m.app.Notes
	return m.startFlow("rename", func(ctx context.Context) flowDoneMsg {
		changed, err := notes.Rename(ctx, note)
		return flowDoneMsg{changed: changed, selectID: note.ID, err: err}
	})
}

func (m *Model) deleteNote() tea.Cmd {
	note, ok := m.notes.Selected()
	if !ok {
		return nil
	}
	notes := m.app.Notes
	return m.startFlow("delete", func(ctx context.Context) flowDoneMsg {
		changed, err := notes.Delete(ctx, note)
		return flowDoneMsg{changed: changed, err: err}
	})
}

func (m *Model) toggleTwoFactor() tea.Cmd {
	account, ok := m.account.Account()
	if !ok {
		return nil
	}
	security := m.app.Security
	if account.TwoFactorEnabled {
		return m.startFlow("disable two-factor", func(ctx context.Context) flowDoneMsg {
			changed, err := security.DisableTwoFactor(ctx)
			return flowDoneMsg{changed: changed, err: err}
		})
	}
	return m.startFlow("enable two-factor", func(ctx context.Context) flowDoneMsg {
		changed, err := security.EnableTwoFactor(ctx)
		return flowDoneMsg{changed: changed, err: err}
	})
}

// editNote hands the terminal to $EDITOR with the note body in a temp file.
func (m *Model) editNote() tea.Cmd {
	note, ok := m.notes.Selected()
	if !ok || m.flow != "" {
		return nil
	}

	f, err := os.CreateTemp("", "nimbus-*.md")
	if err != nil {
		return m.statusCmd(fmt.Sprintf("failed to create temp file: %v", err), events.StatusError)
	}
	path := f.Name()
	_, err = f.WriteString(note.Content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return m.statusCmd(fmt.Sprintf("failed to write temp file: %v", err), events.StatusError)
	}

	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		editor = []string{defaultEditor}
	}
	c := exec.Command(editor[0], append(editor[1:], path)...)

	m.flow = "edit"
	return tea.ExecProcess(c, func(err error) tea.Msg {
		defer os.Remove(path)
		if err != nil {
			return editorFinishedMsg{note: note, err: fmt.Errorf("editor: %w", err)}
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return editorFinishedMsg{note: note, err: fmt.Errorf("failed to read edited note: %w", err)}
		}
		return editorFinishedMsg{note: note, content: string(content)}
	})
}

func (m *Model) saveContent(note worker.Note, content string) tea.Cmd {
	notes := m.app.Notes
	return func() tea.Msg {
		changed, err := notes.SaveContent(context.Background(), note, content)
		return flowDoneMsg{name: "edit", changed: changed, selectID: note.ID, err: err}
	}
}

// cycleTheme switches to the next theme and stores the choice.
func (m *Model) cycleTheme() tea.Cmd {
	names := m.themes.List()
	current := m.themes.Current().Name

	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	if err := m.themes.SetTheme(next); err != nil {
		return m.statusCmd(err.Error(), events.StatusError)
	}
	m.preview.Refresh()

	backend := m.app.Backend
	return func() tea.Msg {
		if err := backend.SaveSetting(context.Background(), settingTheme, next); err != nil {
			return flowDoneMsg{name: "theme", err: err}
		}
		return flowDoneMsg{name: "theme", changed: true}
	}
}

// statusCmd shows a toast from the update loop.
func (m *Model) statusCmd(message string, kind events.StatusType) tea.Cmd {
	return m.statusBar.SetMessage(events.StatusMessagePayload{Message: message, Type: kind})
}

// isAbandoned reports whether a flow ended because its dialog was never
// answered in time.
func isAbandoned(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
