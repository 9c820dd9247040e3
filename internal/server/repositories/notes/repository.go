package notes

import (
	"context"

	"github.com/akarpov/memopad/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) (*models.Note, error)
	ListByOwner(ctx context.Context, ownerID string, titleFilter string) ([]*models.Note, error)
	Update(ctx context.Context, note *models.Note) (*models.Note, error)
	Delete(ctx context.Context, id string, ownerID string) error
}
