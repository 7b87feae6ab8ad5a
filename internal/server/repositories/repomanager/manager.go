package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/roster/internal/dbx"
	"github.com/dmitrijs2005/roster/internal/server/repositories/records"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// them on the pool or inside a transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Records(db dbx.DBTX) records.Repository
}
