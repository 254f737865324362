package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager defines database transaction management. Not to be
// confused with domain.Transaction, the money movement record.
type TransactionManager interface {
	// Begin starts a new database transaction
	Begin(ctx context.Context) (pgx.Tx, error)

	// Commit commits a database transaction
	Commit(ctx context.Context, tx pgx.Tx) error

	// Rollback rolls back a database transaction; rolling back a finished one is not an error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
