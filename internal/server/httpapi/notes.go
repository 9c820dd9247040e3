package httpapi

import (
	"net/http"
	"time"

	"github.com/akarpov/memopad/internal/server/models"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type noteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{ID: n.ID, Title: n.Title, Content: n.Content, UpdatedAt: n.UpdatedAt}
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	notes, err := s.noteService.List(r.Context(), userID, r.URL.Query().Get("title"))
	if err != nil {
		writeError(w, err)
		return
	}

	result := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		result = append(result, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	n, err := s.noteService.Create(r.Context(), userID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteResponse(n))
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	var req noteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	n, err := s.noteService.Update(r.Context(), r.PathValue("id"), userID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteResponse(n))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	userID, _ := UserIDFromContext(r.Context())

	if err := s.noteService.Delete(r.Context(), r.PathValue("id"), userID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
