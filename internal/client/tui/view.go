package tui

import (
	"fmt"
	"strings"

	"github.com/akarpov/memopad/internal/client/editor"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.screen == screenAuth {
		return m.viewAuth()
	}
	return m.viewNotes()
}

func (m *Model) viewAuth() string {
	var b strings.Builder

	header := "Sign in"
	action := "sign up instead"
	if m.mode == modeSignUp {
		header = "Sign up"
		action = "sign in instead"
	}

	b.WriteString(titleStyle.Render("memopad — "+header) + "\n\n")
	b.WriteString(m.email.View() + "\n")
	b.WriteString(m.password.View() + "\n\n")

	if m.authBusy {
		b.WriteString(mutedStyle.Render("working...") + "\n")
	}
	if m.authNotice != "" {
		b.WriteString(successStyle.Render(m.authNotice) + "\n")
	}
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + helpStyle.Render(fmt.Sprintf("enter submit • tab switch field • ctrl+n %s • ctrl+c quit", action)))
	return paneStyle.Render(b.String())
}

func (m *Model) viewNotes() string {
	sidebar := m.viewSidebar()
	pane := m.viewPane()

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)

	var footer string
	if m.machine.ConfirmingDelete() {
		footer = promptStyle.Render("delete this note? (y/n)")
	} else if m.status != "" {
		footer = errorStyle.Render(m.status)
	} else {
		footer = helpStyle.Render(m.helpLine())
	}

	identity := ""
	if id := m.session.Identity(); id != nil {
		identity = mutedStyle.Render(id.Email)
	}
	header := lipgloss.JoinHorizontal(lipgloss.Center, titleStyle.Render("memopad"), "  ", identity)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) viewSidebar() string {
	var b strings.Builder

	b.WriteString(m.search.View() + "\n\n")

	if len(m.list) == 0 {
		b.WriteString(mutedStyle.Render("no notes") + "\n")
	}
	for i, n := range m.list {
		title := n.Title
		if r := []rune(title); len(r) > 28 {
			title = string(r[:25]) + "..."
		}
		line := fmt.Sprintf("%s  %s", title, mutedStyle.Render(n.UpdatedAt.Format("Jan 02 15:04")))
		if i == m.cursor && m.focus != focusEditor {
			line = selectedStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	return paneStyle.Render(b.String())
}

func (m *Model) viewPane() string {
	switch m.machine.Phase() {
	case editor.Editing:
		var b strings.Builder
		what := "edit note"
		if m.machine.CreatingNew() {
			what = "new note"
		}
		b.WriteString(accentStyle.Render(what) + "\n\n")
		b.WriteString(m.titleInput.View() + "\n\n")
		b.WriteString(m.content.View() + "\n")
		return paneStyle.Render(b.String())

	case editor.Viewing:
		n := m.machine.Selected()
		if n == nil {
			return paneStyle.Render(mutedStyle.Render("nothing selected"))
		}
		var b strings.Builder
		b.WriteString(titleStyle.Render(n.Title) + "\n")
		b.WriteString(mutedStyle.Render("updated "+n.UpdatedAt.Format("2006-01-02 15:04")) + "\n\n")
		b.WriteString(n.Content + "\n")
		return paneStyle.Render(b.String())

	default:
		return paneStyle.Render(mutedStyle.Render("select a note, or press 'a' to add one"))
	}
}

func (m *Model) helpLine() string {
	switch {
	case m.focus == focusEditor:
		return "ctrl+s save • tab title/content • esc cancel"
	case m.focus == focusSearch:
		return "type to filter • enter/esc back to list"
	case m.machine.Phase() == editor.Viewing:
		return "e edit • d delete • esc back • a add • / search • ctrl+l sign out • q quit"
	default:
		return "enter open • a add • / search • ctrl+l sign out • q quit"
	}
}
