package tui

import "github.com/billie-coop/nimbus/internal/worker"

// notesLoadedMsg carries a fresh note list. selectID, when set, moves the
// cursor to that note.
type notesLoadedMsg struct {
	notes    []worker.Note
	selectID string
	err      error
}

type accountLoadedMsg struct {
	account worker.Account
	err     error
}

type settingsLoadedMsg struct {
	settings worker.Settings
	err      error
}

// flowDoneMsg ends a flow that may have asked the user something. Flows
// report their own failures as toasts.
type flowDoneMsg struct {
	name     string
	changed  bool
	selectID string
	err      error
}

type editorFinishedMsg struct {
	note    worker.Note
	content string
	err     error
}
