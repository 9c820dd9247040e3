// Package editor implements the note editing state machine. The machine is
// pure: it decides which request should be issued and how state changes,
// while the caller performs the actual I/O and feeds the outcome back via
// SaveSucceeded / DeleteSucceeded.
package editor

import (
	"errors"
	"strings"

	"github.com/akarpov/memopad/internal/client/models"
)

// Phase is the editor's top-level state.
type Phase int

const (
	// Browsing: no note selected, no draft.
	Browsing Phase = iota
	// Viewing: a note is selected and displayed read-only.
	Viewing
	// Editing: a draft is open, either for a new note or an existing one.
	Editing
)

func (p Phase) String() string {
	switch p {
	case Browsing:
		return "browsing"
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	default:
		return "unknown"
	}
}

// ErrEmptyTitle rejects drafts whose title is empty after trimming. The
// machine stays in Editing and no request is issued.
var ErrEmptyTitle = errors.New("title must not be empty")

// SaveOp tells the caller which request to issue for the current draft.
type SaveOp struct {
	// Create is true for a new note; otherwise NoteID names the note to
	// update.
	Create bool
	NoteID string

	Title   string
	Content string
}

// Machine is the editor state machine. Not safe for concurrent use: it is
// owned by the single-threaded UI loop.
type Machine struct {
	phase    Phase
	selected *models.Note
	draft    models.Draft
	// target is the note being edited; nil while creating a new one.
	target *models.Note

	confirmingDelete bool
}

func NewMachine() *Machine {
	return &Machine{phase: Browsing}
}

func (m *Machine) Phase() Phase { return m.phase }

// Selected returns the note currently viewed, or nil.
func (m *Machine) Selected() *models.Note { return m.selected }

// Draft returns the in-progress edits.
func (m *Machine) Draft() models.Draft { return m.draft }

// CreatingNew reports whether the open draft is for a brand new note.
func (m *Machine) CreatingNew() bool { return m.phase == Editing && m.target == nil }

// ConfirmingDelete reports whether a delete confirmation is pending.
func (m *Machine) ConfirmingDelete() bool { return m.confirmingDelete }

// Select shows note read-only. Any open draft is discarded without
// persisting; the draft is seeded from the note for a later edit.
func (m *Machine) Select(note models.Note) {
	n := note
	m.phase = Viewing
	m.selected = &n
	m.target = nil
	m.draft = models.Draft{Title: note.Title, Content: note.Content}
	m.confirmingDelete = false
}

// AddNote opens an empty draft for a new note, clearing any selection.
func (m *Machine) AddNote() {
	m.phase = Editing
	m.selected = nil
	m.target = nil
	m.draft = models.Draft{}
	m.confirmingDelete = false
}

// Edit opens the viewed note for editing. A no-op outside Viewing.
func (m *Machine) Edit() {
	if m.phase != Viewing || m.selected == nil {
		return
	}
	m.phase = Editing
	m.target = m.selected
	m.draft = models.Draft{Title: m.selected.Title, Content: m.selected.Content}
}

// SetDraftTitle and SetDraftContent mutate the open draft.
func (m *Machine) SetDraftTitle(title string)     { m.draft.Title = title }
func (m *Machine) SetDraftContent(content string) { m.draft.Content = content }

// Save validates the draft and returns the request the caller should issue.
// An empty (or whitespace-only) title is rejected: no request is described
// and the machine stays in Editing.
func (m *Machine) Save() (*SaveOp, error) {
	if m.phase != Editing {
		return nil, errors.New("nothing to save")
	}
	if strings.TrimSpace(m.draft.Title) == "" {
		return nil, ErrEmptyTitle
	}

	op := &SaveOp{Title: m.draft.Title, Content: m.draft.Content}
	if m.target == nil {
		op.Create = true
	} else {
		op.NoteID = m.target.ID
	}
	return op, nil
}

// SaveSucceeded applies the outcome of a successful save: creating lands in
// Browsing, updating lands back in Viewing of the refreshed note. The
// caller triggers the collection reload.
func (m *Machine) SaveSucceeded(saved models.Note) {
	if m.target == nil {
		m.phase = Browsing
		m.selected = nil
		m.draft = models.Draft{}
		return
	}
	m.Select(saved)
}

// Cancel leaves Editing without saving, discarding the draft. Editing an
// existing note falls back to Viewing it; an abandoned new note lands in
// Browsing.
func (m *Machine) Cancel() {
	if m.phase != Editing {
		return
	}
	if m.target != nil {
		m.Select(*m.target)
		return
	}
	m.phase = Browsing
	m.draft = models.Draft{}
}

// Deselect returns from Viewing to Browsing.
func (m *Machine) Deselect() {
	if m.phase != Viewing {
		return
	}
	m.phase = Browsing
	m.selected = nil
	m.draft = models.Draft{}
	m.confirmingDelete = false
}

// RequestDelete asks for confirmation before deleting the viewed note.
func (m *Machine) RequestDelete() {
	if m.phase != Viewing || m.selected == nil {
		return
	}
	m.confirmingDelete = true
}

// ConfirmDelete resolves the pending confirmation and returns the id of the
// note to delete. The second result is false when nothing was pending.
func (m *Machine) ConfirmDelete() (string, bool) {
	if !m.confirmingDelete || m.selected == nil {
		return "", false
	}
	m.confirmingDelete = false
	return m.selected.ID, true
}

// DeclineDelete cancels the pending confirmation: no state change beyond
// dismissing the prompt, no request.
func (m *Machine) DeclineDelete() {
	m.confirmingDelete = false
}

// DeleteSucceeded clears the selection after a successful delete. The
// caller triggers the collection reload.
func (m *Machine) DeleteSucceeded() {
	m.phase = Browsing
	m.selected = nil
	m.target = nil
	m.draft = models.Draft{}
	m.confirmingDelete = false
}

// Reset returns the machine to its initial state, e.g. on sign-out.
func (m *Machine) Reset() {
	*m = Machine{phase: Browsing}
}
