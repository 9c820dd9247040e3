// Package repomanager builds repositories bound to a DB handle or an open
// transaction, so services can use the same repository code inside and
// outside transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/akarpov/memopad/internal/dbx"
	"github.com/akarpov/memopad/internal/server/repositories/notes"
	"github.com/akarpov/memopad/internal/server/repositories/refreshtokens"
	"github.com/akarpov/memopad/internal/server/repositories/users"
)

type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
