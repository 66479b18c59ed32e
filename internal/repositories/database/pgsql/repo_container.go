package pgsql

import (
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	shiftRepo := newPgxShiftRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	dailyStatsRepo := newPgxDailyStatsRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ShiftRepo:       shiftRepo,
		TransactionRepo: transactionRepo,
		DailyStatsRepo:  dailyStatsRepo,
		CatalogRepo:     catalogRepo,
	}
}
