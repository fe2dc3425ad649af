package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/billie-coop/nimbus/internal/tui/components/dialog"
	"github.com/billie-coop/nimbus/internal/tui/events"
	"github.com/billie-coop/nimbus/internal/worker"
)

// NoteService runs the note flows that ask the user something first.
type NoteService struct {
	app *App
}

// NewNoteService creates a new note service
func NewNoteService(app *App) *NoteService {
	return &NoteService{app: app}
}

// Create asks for a title and creates the note. The returned note is only
// valid when ok is true.
func (s *NoteService) Create(ctx context.Context) (note worker.Note, ok bool, err error) {
	outcome, err := s.app.Callers.ShowInputDialog(ctx, dialog.InputParams{
		Title:              "New note",
		Placeholder:        "Title",
		ContinueButtonText: "Create",
		AutoFocusInput:     true,
	})
	if err != nil {
		return worker.Note{}, false, s.app.abandoned("new note", err)
	}
	if outcome.Cancelled {
		return worker.Note{}, false, nil
	}

	title := strings.TrimSpace(outcome.Value)
	note, err = s.app.Backend.CreateNote(ctx, title, "# "+title+"\n")
	if err != nil {
		return worker.Note{}, false, s.app.fail("create note", err)
	}

	s.app.status("Note created", events.StatusSuccess)
	return note, true, nil
}

// Rename asks for a new title, prefilled with the current one.
func (s *NoteService) Rename(ctx context.Context, note worker.Note) (bool, error) {
	outcome, err := s.app.Callers.ShowInputDialog(ctx, dialog.InputParams{
		Title:              "Rename note",
		Value:              note.Title,
		Placeholder:        "Title",
		ContinueButtonText: "Rename",
		AutoFocusInput:     true,
	})
	if err != nil {
		return false, s.app.abandoned("rename", err)
	}

	title := strings.TrimSpace(outcome.Value)
	if outcome.Cancelled || title == note.Title {
		return false, nil
	}

	if err := s.app.Backend.EditNoteTitle(ctx, note.ID, title); err != nil {
		return false, s.app.fail("rename note", err)
	}

	s.app.status("Note renamed", events.StatusSuccess)
	return true, nil
}

// Delete asks for confirmation and deletes the note.
func (s *NoteService) Delete(ctx context.Context, note worker.Note) (bool, error) {
	outcome, err := s.app.Callers.ShowConfirmDialog(ctx, dialog.ConfirmParams{
		Title:                 "Delete note?",
		Description:           fmt.Sprintf("%q will be deleted permanently.", note.Title),
		ContinueButtonText:    "Delete",
		ContinueButtonVariant: dialog.VariantDestructive,
	})
	if err != nil {
		return false, s.app.abandoned("delete", err)
	}
	if outcome.Cancelled || !outcome.Value {
		return false, nil
	}

	if err := s.app.Backend.DeleteNote(ctx, note.ID); err != nil {
		return false, s.app.fail("delete note", err)
	}

	s.app.status("Note deleted", events.StatusSuccess)
	return true, nil
}

// SaveContent stores an edited body. Unchanged content is not written.
func (s *NoteService) SaveContent(ctx context.Context, note worker.Note, content string) (bool, error) {
	if content == note.Content {
		return false, nil
	}
	if err := s.app.Backend.EditNoteContent(ctx, note.ID, content); err != nil {
		return false, s.app.fail("save note", err)
	}

	s.app.status("Note saved", events.StatusSuccess)
	return true, nil
}
