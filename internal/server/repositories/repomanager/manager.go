// Package repomanager wires entity repositories to a database handle and
// owns schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/cadastr/internal/dbx"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/querylogs"
	"github.com/dmitrijs2005/cadastr/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	QueryLogs(db dbx.DBTX) querylogs.Repository
}
