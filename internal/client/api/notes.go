package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/akarpov/memopad/internal/client/models"
)

type noteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ListNotes returns the signed-in user's notes whose title contains
// titleFilter (case-insensitive), newest update first. An empty filter
// returns everything.
func (c *Client) ListNotes(ctx context.Context, titleFilter string) ([]models.Note, error) {
	path := "/api/notes"
	if titleFilter != "" {
		path += "?title=" + url.QueryEscape(titleFilter)
	}

	var notes []models.Note
	if err := c.doAuthed(ctx, http.MethodGet, path, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote stores a new note and returns it with its server-assigned id
// and timestamp.
func (c *Client) CreateNote(ctx context.Context, title, content string) (*models.Note, error) {
	var note models.Note
	if err := c.doAuthed(ctx, http.MethodPost, "/api/notes", noteRequest{Title: title, Content: content}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// UpdateNote rewrites the note's title and content.
func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (*models.Note, error) {
	var note models.Note
	if err := c.doAuthed(ctx, http.MethodPut, "/api/notes/"+id, noteRequest{Title: title, Content: content}, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

// DeleteNote removes the note.
func (c *Client) DeleteNote(ctx context.Context, id string) error {
	return c.doAuthed(ctx, http.MethodDelete, "/api/notes/"+id, nil, nil)
}
