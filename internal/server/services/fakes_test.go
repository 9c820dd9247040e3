package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/akarpov/memopad/internal/common"
	"github.com/akarpov/memopad/internal/dbx"
	"github.com/akarpov/memopad/internal/server/models"
	"github.com/akarpov/memopad/internal/server/repositories/notes"
	"github.com/akarpov/memopad/internal/server/repositories/refreshtokens"
	"github.com/akarpov/memopad/internal/server/repositories/users"
	"github.com/akarpov/memopad/internal/server/sessionhub"
)

// fakeRepoManager serves in-memory repositories regardless of the DB handle,
// so services can be exercised without a database. Error fields, when set,
// are returned by the corresponding repository call.
type fakeRepoManager struct {
	usersRepo  *fakeUsersRepo
	notesRepo  *fakeNotesRepo
	tokensRepo *fakeTokensRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		usersRepo:  &fakeUsersRepo{byEmail: map[string]*models.User{}},
		notesRepo:  &fakeNotesRepo{},
		tokensRepo: &fakeTokensRepo{tokens: map[string]*models.RefreshToken{}},
	}
}

func (m *fakeRepoManager) Users(db dbx.DBTX) users.Repository                 { return m.usersRepo }
func (m *fakeRepoManager) Notes(db dbx.DBTX) notes.Repository                 { return m.notesRepo }
func (m *fakeRepoManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository { return m.tokensRepo }
func (m *fakeRepoManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

type fakeUsersRepo struct {
	byEmail   map[string]*models.User
	createErr error
}

func (r *fakeUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	user.CreatedAt = time.Now()
	r.byEmail[user.Email] = user
	return user, nil
}

func (r *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

type fakeNotesRepo struct {
	notes     []*models.Note
	createErr error
	updateErr error
	deleteErr error
	listErr   error
}

func (r *fakeNotesRepo) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	note.UpdatedAt = time.Now()
	r.notes = append(r.notes, note)
	return note, nil
}

func (r *fakeNotesRepo) ListByOwner(ctx context.Context, ownerID string, titleFilter string) ([]*models.Note, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	result := make([]*models.Note, 0)
	for _, n := range r.notes {
		if n.OwnerID != ownerID {
			continue
		}
		if titleFilter != "" && !strings.Contains(strings.ToLower(n.Title), strings.ToLower(titleFilter)) {
			continue
		}
		result = append(result, n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].UpdatedAt.After(result[j].UpdatedAt) })
	return result, nil
}

func (r *fakeNotesRepo) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	if r.updateErr != nil {
		return nil, r.updateErr
	}
	for _, n := range r.notes {
		if n.ID == note.ID && n.OwnerID == note.OwnerID {
			n.Title = note.Title
			n.Content = note.Content
			n.UpdatedAt = time.Now()
			return n, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeNotesRepo) Delete(ctx context.Context, id string, ownerID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i, n := range r.notes {
		if n.ID == id && n.OwnerID == ownerID {
			r.notes = append(r.notes[:i], r.notes[i+1:]...)
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeTokensRepo struct {
	tokens    map[string]*models.RefreshToken
	createErr error
}

func (r *fakeTokensRepo) Create(ctx context.Context, userID string, token string, validity time.Duration) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.tokens[token] = &models.RefreshToken{UserID: userID, Token: token, Expires: time.Now().Add(validity)}
	return nil
}

func (r *fakeTokensRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	t, ok := r.tokens[token]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r *fakeTokensRepo) Delete(ctx context.Context, token string) error {
	delete(r.tokens, token)
	return nil
}

func (r *fakeTokensRepo) DeleteByUser(ctx context.Context, userID string) error {
	for k, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, k)
		}
	}
	return nil
}

type fakeNotifier struct {
	events []sessionhub.Event
}

func (n *fakeNotifier) Broadcast(userID string, ev sessionhub.Event) {
	n.events = append(n.events, ev)
}
