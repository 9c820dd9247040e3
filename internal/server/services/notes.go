package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/akarpov/memopad/internal/common"
	"github.com/akarpov/memopad/internal/server/models"
	"github.com/akarpov/memopad/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// NoteService implements owner-scoped note CRUD. The owner id always comes
// from the authenticated request, never from the payload, so one user can
// never touch another user's rows.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewNoteService(db *sql.DB, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{db: db, repomanager: m}
}

// List returns ownerID's notes whose title contains titleFilter
// (case-insensitive), newest update first. An empty filter returns all.
func (s *NoteService) List(ctx context.Context, ownerID string, titleFilter string) ([]*models.Note, error) {
	repo := s.repomanager.Notes(s.db)
	result, err := repo.ListByOwner(ctx, ownerID, titleFilter)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return result, nil
}

// Create stores a new note for ownerID. The title must be non-empty after
// trimming; content may be empty.
func (s *NoteService) Create(ctx context.Context, ownerID string, title string, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	note := &models.Note{ID: uuid.NewString(), OwnerID: ownerID, Title: title, Content: content}
	repo := s.repomanager.Notes(s.db)
	n, err := repo.Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	return n, nil
}

// Update rewrites the note's title and content; the store refreshes
// updated_at. A note that does not exist under ownerID yields ErrorNotFound.
func (s *NoteService) Update(ctx context.Context, id string, ownerID string, title string, content string) (*models.Note, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", common.ErrorValidation)
	}

	note := &models.Note{ID: id, OwnerID: ownerID, Title: title, Content: content}
	repo := s.repomanager.Notes(s.db)
	n, err := repo.Update(ctx, note)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// Delete removes the note if it belongs to ownerID.
func (s *NoteService) Delete(ctx context.Context, id string, ownerID string) error {
	repo := s.repomanager.Notes(s.db)
	return repo.Delete(ctx, id, ownerID)
}
