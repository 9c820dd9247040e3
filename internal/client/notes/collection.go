// Package notes holds the client's view of the note collection and the
// search debouncer that throttles reloads while the user types.
package notes

import (
	"context"
	"sync"

	"github.com/akarpov/memopad/internal/client/models"
)

// Lister is the slice of the backend client the collection needs.
type Lister interface {
	ListNotes(ctx context.Context, titleFilter string) ([]models.Note, error)
}

// Collection caches the most recently loaded list of notes. Loads are not
// serialized: the last response to arrive wins.
type Collection struct {
	api Lister

	mu    sync.Mutex
	notes []models.Note
}

func NewCollection(api Lister) *Collection {
	return &Collection{api: api, notes: []models.Note{}}
}

// Load fetches the notes matching searchTerm (substring of the title,
// case-insensitive; empty term returns everything), newest update first.
// On failure the visible collection becomes empty; failures are not retried.
func (c *Collection) Load(ctx context.Context, searchTerm string) []models.Note {
	loaded, err := c.api.ListNotes(ctx, searchTerm)
	if err != nil || loaded == nil {
		loaded = []models.Note{}
	}

	c.mu.Lock()
	c.notes = loaded
	c.mu.Unlock()
	return loaded
}

// Notes returns the currently cached list.
func (c *Collection) Notes() []models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notes
}

// Clear empties the cached list, e.g. on sign-out.
func (c *Collection) Clear() {
	c.mu.Lock()
	c.notes = []models.Note{}
	c.mu.Unlock()
}
