// Package notes provides a PostgreSQL-backed repository for user notes.
// Every read and write is scoped by the owning user id: a note is never
// visible to, or modifiable by, anyone but its owner.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/akarpov/memopad/internal/common"
	"github.com/akarpov/memopad/internal/dbx"
	"github.com/akarpov/memopad/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		INSERT INTO notes (id, owner_id, title, content, updated_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.ID, note.OwnerID, note.Title, note.Content).Scan(&note.ID, &note.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// escapeLike makes s a literal ILIKE pattern: %, _ and the escape
// character itself match themselves instead of acting as wildcards.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListByOwner returns the owner's notes whose title contains titleFilter
// as a plain substring (case-insensitive; empty filter matches
// everything), most recently updated first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, ownerID string, titleFilter string) ([]*models.Note, error) {
	query := `
		SELECT id, owner_id, title, content, updated_at FROM notes
		WHERE owner_id = $1 AND title ILIKE '%' || $2 || '%' ESCAPE '\'
		ORDER BY updated_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, ownerID, escapeLike(titleFilter))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Note, 0)
	for rows.Next() {
		note := &models.Note{}
		if err := rows.Scan(&note.ID, &note.OwnerID, &note.Title, &note.Content, &note.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// Update rewrites title and content and refreshes updated_at. The predicate
// matches both id and owner_id; an owner mismatch updates nothing and is
// reported as common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	query := `
		UPDATE notes SET title = $1, content = $2, updated_at = now()
		WHERE id = $3 AND owner_id = $4
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		note.Title, note.Content, note.ID, note.OwnerID).Scan(&note.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return note, nil
}

// Delete removes the note matching both id and owner_id. An owner mismatch
// deletes nothing and is reported as common.ErrorNotFound.
func (r *PostgresRepository) Delete(ctx context.Context, id string, ownerID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND owner_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}
