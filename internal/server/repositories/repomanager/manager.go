package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/ufind/internal/dbx"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/items"
	"github.com/dmitrijs2005/ufind/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to a DBTX so services can run
// them either on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}
