package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes a locked read-compute-write cycle to one database transaction.
// Services begin, pass the pgx.Tx to the *InTx methods, then commit; Rollback after Commit is a no-op.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	ShiftRepo       ShiftRepositoryWithTx
	TransactionRepo TransactionRepositoryWithTx
	DailyStatsRepo  DailyStatsRepository
	CatalogRepo     CatalogReader
}
