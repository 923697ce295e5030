// Package repomanager wires database handles to repositories and owns
// schema migrations.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/antonk9218/authd/internal/dbx"
	"github.com/antonk9218/authd/internal/server/repositories/accounts"
)

// RepositoryManager hands out repositories bound to a DB handle. Passing a
// transactional handle from dbx.WithTx yields repositories that take part in
// that transaction.
type RepositoryManager interface {
	Accounts(db dbx.DBTX) accounts.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
