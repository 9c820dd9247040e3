// Package tui is the interactive terminal frontend: an auth form, a notes
// sidebar with debounced search, and a viewer/editor pane. All state
// transitions go through the session, collection and editor controllers;
// the model only translates key presses and async results.
package tui

import (
	"context"

	"github.com/akarpov/memopad/internal/client/editor"
	"github.com/akarpov/memopad/internal/client/models"
	"github.com/akarpov/memopad/internal/client/notes"
	"github.com/akarpov/memopad/internal/client/session"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Backend is the full client surface the UI needs.
type Backend interface {
	session.API
	notes.Lister
	CreateNote(ctx context.Context, title, content string) (*models.Note, error)
	UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type screen int

const (
	screenAuth screen = iota
	screenNotes
)

type authMode int

const (
	modeSignIn authMode = iota
	modeSignUp
)

type focusArea int

const (
	focusList focusArea = iota
	focusSearch
	focusEditor
)

// Model is the bubbletea model for the whole application.
type Model struct {
	backend    Backend
	session    *session.Controller
	collection *notes.Collection
	machine    *editor.Machine
	debouncer  *notes.Debouncer

	// send posts a message into the running program from outside the
	// update loop (debouncer firings, session revocations).
	send func(tea.Msg)

	screen screen
	status string

	// auth form
	mode       authMode
	email      textinput.Model
	password   textinput.Model
	authField  int
	authBusy   bool
	authNotice string

	// notes screen
	search   textinput.Model
	list     []models.Note
	cursor   int
	focus    focusArea
	lastTerm string

	// editor pane
	titleInput textinput.Model
	content    textarea.Model

	width  int
	height int
}

func NewModel(backend Backend, sess *session.Controller, coll *notes.Collection) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.Focus()
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 128

	search := textinput.New()
	search.Placeholder = "search titles"
	search.Prompt = "/ "
	search.CharLimit = 128

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	content := textarea.New()
	content.Placeholder = "content"

	m := &Model{
		backend:    backend,
		session:    sess,
		collection: coll,
		machine:    editor.NewMachine(),
		debouncer:  notes.NewDebouncer(notes.SearchDebounceDelay),
		send:       func(tea.Msg) {},
		screen:     screenAuth,
		email:      email,
		password:   password,
		search:     search,
		titleInput: title,
		content:    content,
	}

	sess.SetOnSignedOut(func() { m.send(sessionRevokedMsg{}) })
	return m
}

// SetSend wires the running program's Send function so background work can
// post messages. Must be called before the program starts handling input.
func (m *Model) SetSend(send func(tea.Msg)) {
	m.send = send
}

// Close neutralizes background activity: the pending search (if any) will
// not fire and the session subscription is released.
func (m *Model) Close() {
	m.debouncer.Close()
	m.session.Close()
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.restoreCmd())
}

func (m *Model) restoreCmd() tea.Cmd {
	return func() tea.Msg {
		return restoredMsg{state: m.session.Restore(context.Background())}
	}
}

func (m *Model) loadCmd(term string) tea.Cmd {
	return func() tea.Msg {
		return notesLoadedMsg{notes: m.collection.Load(context.Background(), term)}
	}
}

func (m *Model) signInCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		identity, err := m.session.SignIn(context.Background(), email, password)
		return authDoneMsg{identity: identity, err: err}
	}
}

func (m *Model) signUpCmd(email, password string) tea.Cmd {
	return func() tea.Msg {
		return authDoneMsg{signUp: true, err: m.session.SignUp(context.Background(), email, password)}
	}
}

func (m *Model) signOutCmd() tea.Cmd {
	return func() tea.Msg {
		_ = m.session.SignOut(context.Background())
		return signedOutMsg{}
	}
}

func (m *Model) saveCmd(op *editor.SaveOp) tea.Cmd {
	return func() tea.Msg {
		if op.Create {
			note, err := m.backend.CreateNote(context.Background(), op.Title, op.Content)
			return savedMsg{note: note, err: err}
		}
		note, err := m.backend.UpdateNote(context.Background(), op.NoteID, op.Title, op.Content)
		return savedMsg{note: note, err: err}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{err: m.backend.DeleteNote(context.Background(), id)}
	}
}
