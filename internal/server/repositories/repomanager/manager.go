package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/lifemgmt/internal/dbx"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/resettokens"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/lifemgmt/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DB handle or transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	ResetTokens(db dbx.DBTX) resettokens.Repository
}
