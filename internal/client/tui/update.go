package tui

import (
	"strings"

	"github.com/akarpov/memopad/internal/client/editor"
	"github.com/akarpov/memopad/internal/client/session"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.content.SetWidth(max(20, m.width/2-6))
		m.content.SetHeight(max(4, m.height-10))
		return m, nil

	case restoredMsg:
		if msg.state == session.Authenticated {
			m.enterNotes()
			return m, m.loadCmd("")
		}
		return m, nil

	case authDoneMsg:
		m.authBusy = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		if msg.signUp {
			m.mode = modeSignIn
			m.authNotice = "account created, sign in to continue"
			m.password.SetValue("")
			return m, nil
		}
		m.enterNotes()
		return m, m.loadCmd("")

	case notesLoadedMsg:
		m.list = msg.notes
		if m.cursor >= len(m.list) {
			m.cursor = max(0, len(m.list)-1)
		}
		return m, nil

	case searchFireMsg:
		m.lastTerm = msg.term
		return m, m.loadCmd(msg.term)

	case savedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.machine.SaveSucceeded(*msg.note)
		m.focus = focusList
		m.status = ""
		return m, m.loadCmd(m.lastTerm)

	case deletedMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.machine.DeleteSucceeded()
		m.status = ""
		return m, m.loadCmd(m.lastTerm)

	case signedOutMsg, sessionRevokedMsg:
		m.resetToAuth()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.screen == screenAuth {
			return m.updateAuth(msg)
		}
		return m.updateNotes(msg)
	}

	return m, nil
}

func (m *Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.authField = 1 - m.authField
		if m.authField == 0 {
			m.email.Focus()
			m.password.Blur()
		} else {
			m.password.Focus()
			m.email.Blur()
		}
		return m, nil

	case "ctrl+n":
		if m.mode == modeSignIn {
			m.mode = modeSignUp
		} else {
			m.mode = modeSignIn
		}
		m.authNotice = ""
		m.status = ""
		return m, nil

	case "enter":
		if m.authBusy {
			return m, nil
		}
		email := strings.TrimSpace(m.email.Value())
		password := m.password.Value()
		if email == "" || password == "" {
			m.status = "email and password are required"
			return m, nil
		}
		m.authBusy = true
		m.status = ""
		m.authNotice = ""
		if m.mode == modeSignUp {
			return m, m.signUpCmd(email, password)
		}
		return m, m.signInCmd(email, password)
	}

	var cmd tea.Cmd
	if m.authField == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateNotes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.machine.ConfirmingDelete() {
		return m.updateDeleteConfirm(msg)
	}
	if m.focus == focusEditor {
		return m.updateEditor(msg)
	}
	if m.focus == focusSearch {
		return m.updateSearch(msg)
	}
	return m.updateList(msg)
}

func (m *Model) updateDeleteConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id, ok := m.machine.ConfirmDelete()
		if !ok {
			return m, nil
		}
		return m, m.deleteCmd(id)
	case "n", "N", "esc":
		m.machine.DeclineDelete()
		return m, nil
	}
	return m, nil
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.machine.Cancel()
		m.focus = focusList
		m.status = ""
		return m, nil

	case "ctrl+s":
		m.machine.SetDraftTitle(m.titleInput.Value())
		m.machine.SetDraftContent(m.content.Value())
		op, err := m.machine.Save()
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.saveCmd(op)

	case "tab":
		if m.titleInput.Focused() {
			m.titleInput.Blur()
			return m, m.content.Focus()
		}
		m.content.Blur()
		return m, m.titleInput.Focus()
	}

	var cmd tea.Cmd
	if m.titleInput.Focused() {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.content, cmd = m.content.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		m.search.Blur()
		m.focus = focusList
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	if term := m.search.Value(); term != before {
		m.debouncer.Trigger(func() { m.send(searchFireMsg{term: term}) })
	}
	return m, cmd
}

func (m *Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.focus = focusSearch
		m.search.Focus()
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.list)-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.list) {
			m.machine.Select(m.list[m.cursor])
			m.status = ""
		}
		return m, nil

	case "esc":
		m.machine.Deselect()
		return m, nil

	case "a":
		m.machine.AddNote()
		m.openEditorInputs()
		return m, nil

	case "e":
		if m.machine.Phase() != editor.Viewing {
			return m, nil
		}
		m.machine.Edit()
		m.openEditorInputs()
		return m, nil

	case "d":
		m.machine.RequestDelete()
		return m, nil

	case "ctrl+l":
		return m, m.signOutCmd()
	}
	return m, nil
}

// openEditorInputs seeds the title and content widgets from the machine's
// draft and moves focus into the editor pane.
func (m *Model) openEditorInputs() {
	draft := m.machine.Draft()
	m.titleInput.SetValue(draft.Title)
	m.titleInput.CursorEnd()
	m.content.SetValue(draft.Content)
	m.titleInput.Focus()
	m.content.Blur()
	m.focus = focusEditor
	m.status = ""
}

func (m *Model) enterNotes() {
	m.screen = screenNotes
	m.focus = focusList
	m.status = ""
	m.authNotice = ""
	m.password.SetValue("")
}

// resetToAuth clears everything session-bound: identity is gone (the
// session controller already cleared itself on external revocation),
// the collection empties, and the editor returns to Browsing.
func (m *Model) resetToAuth() {
	m.collection.Clear()
	m.machine.Reset()
	m.list = nil
	m.cursor = 0
	m.lastTerm = ""
	m.search.SetValue("")
	m.search.Blur()
	m.screen = screenAuth
	m.focus = focusList
	m.mode = modeSignIn
	m.authField = 0
	m.email.Focus()
	m.password.Blur()
	m.password.SetValue("")
	m.status = ""
}
