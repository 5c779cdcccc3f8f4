package repomanager

import (
	"context"
	"database/sql"

	"github.com/dsmirnov87/taskvault/internal/dbx"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/revokedtokens"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/tasks"
	"github.com/dsmirnov87/taskvault/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX, so a service can
// get the same repository shape over *sql.DB or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Tasks(db dbx.DBTX) tasks.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}
