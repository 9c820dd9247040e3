package tui

import (
	"github.com/akarpov/memopad/internal/client/models"
	"github.com/akarpov/memopad/internal/client/session"
)

// Messages produced by async work. Every backend call runs as a tea.Cmd and
// reports back through one of these.

type restoredMsg struct {
	state session.State
}

type authDoneMsg struct {
	signUp   bool
	identity *models.Identity
	err      error
}

type notesLoadedMsg struct {
	notes []models.Note
}

// searchFireMsg is emitted by the debouncer when the quiet period after the
// last search keystroke elapses.
type searchFireMsg struct {
	term string
}

type savedMsg struct {
	note *models.Note
	err  error
}

type deletedMsg struct {
	err error
}

type signedOutMsg struct{}

// sessionRevokedMsg arrives when the backend ends the session externally
// (revoked on another device, refresh failed).
type sessionRevokedMsg struct{}
