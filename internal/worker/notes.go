package worker

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Note is a markdown note.
type Note struct {
	ID        string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListNotes returns all notes, most recently edited first.
func (w *Worker) ListNotes(ctx context.Context) ([]Note, error) {
	rows, err := w.db.QueryContext(ctx,
		"SELECT id, title, content, created_at, updated_at FROM notes ORDER BY updated_at DESC, id ASC")
	if err != nil {
		return nil, opErr("list_notes", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var created, updated int64
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &created, &updated); err != nil {
			return nil, opErr("list_notes", err)
		}
		n.CreatedAt = time.Unix(created, 0)
		n.UpdatedAt = time.Unix(updated, 0)
		notes = append(notes, n)
	}
	return notes, opErr("list_notes", rows.Err())
}

// GetNote returns one note.
func (w *Worker) GetNote(ctx context.Context, id string) (Note, error) {
	n := Note{ID: id}
	var created, updated int64
	err := w.db.QueryRowContext(ctx,
		"SELECT title, content, created_at, updated_at FROM notes WHERE id = ?", id).
		Scan(&n.Title, &n.Content, &created, &updated)
	if isNoRows(err) {
		return Note{}, opErr("get_note", ErrNoteNotFound)
	}
	if err != nil {
		return Note{}, opErr("get_note", err)
	}
	n.CreatedAt = time.Unix(created, 0)
	n.UpdatedAt = time.Unix(updated, 0)
	return n, nil
}

// CreateNote stores a new note. A blank title becomes "Untitled".
func (w *Worker) CreateNote(ctx context.Context, title, content string) (Note, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "Untitled"
	}

	now := w.now()
	n := Note{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		CreatedAt: time.Unix(now.Unix(), 0),
		UpdatedAt: time.Unix(now.Unix(), 0),
	}

	_, err := w.db.ExecContext(ctx,
		"INSERT INTO notes (id, title, content, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
		n.ID, n.Title, n.Content, now.Unix(), now.Unix())
	if err != nil {
		return Note{}, opErr("create_note", err)
	}
	return n, nil
}

// EditNoteTitle renames a note.
func (w *Worker) EditNoteTitle(ctx context.Context, id, title string) error {
	return w.updateNote(ctx, "edit_note_title", "title", id, strings.TrimSpace(title))
}

// EditNoteContent replaces a note's body.
func (w *Worker) EditNoteContent(ctx context.Context, id, content string) error {
	return w.updateNote(ctx, "edit_note_content", "content", id, content)
}

func (w *Worker) updateNote(ctx context.Context, op, column, id, value string) error {
	// column is one of two constants above
	res, err := w.db.ExecContext(ctx,
		"UPDATE notes SET "+column+" = ?, updated_at = ? WHERE id = ?",
		value, w.now().Unix(), id)
	if err != nil {
		return opErr(op, err)
	}
	return opErr(op, requireRow(res))
}

// DeleteNote removes a note.
func (w *Worker) DeleteNote(ctx context.Context, id string) error {
	res, err := w.db.ExecContext(ctx, "DELETE FROM notes WHERE id = ?", id)
	if err != nil {
		return opErr("delete_note", err)
	}
	return opErr("delete_note", requireRow(res))
}

type rowsAffected interface {
	RowsAffected() (int64, error)
}

func requireRow(res rowsAffected) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}
