package pgsql

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/models"
	"github.com/SscSPs/pos_shift_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxDailyStatsRepository struct {
	BaseRepository
}

func newPgxDailyStatsRepository(pool *pgxpool.Pool) portsrepo.DailyStatsRepository {
	return &PgxDailyStatsRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DailyStatsRepository = (*PgxDailyStatsRepository)(nil)

// UpsertDailyStatsBatch overwrites the given days in one transaction.
func (r *PgxDailyStatsRepository) UpsertDailyStatsBatch(ctx context.Context, stats []domain.DailyStat) error {
	if len(stats) == 0 {
		return nil
	}
	query := `
		INSERT INTO daily_stats (stat_date, sales, expenses, tx_count, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (stat_date) DO UPDATE
		SET sales = EXCLUDED.sales, expenses = EXCLUDED.expenses,
		    tx_count = EXCLUDED.tx_count, updated_at = EXCLUDED.updated_at;
	`
	return r.withTx(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, s := range stats {
			m := mapping.ToModelDailyStat(s)
			batch.Queue(query, m.StatDate, m.Sales, m.Expenses, m.TxCount, m.UpdatedAt)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return apperrors.NewIOError("failed to upsert daily stats batch", err)
		}
		return nil
	})
}

// DeleteDailyStats removes the given days in one statement.
func (r *PgxDailyStatsRepository) DeleteDailyStats(ctx context.Context, dates []string) error {
	if len(dates) == 0 {
		return nil
	}
	query := `DELETE FROM daily_stats WHERE stat_date = ANY($1);`
	if _, err := r.Pool.Exec(ctx, query, dates); err != nil {
		return apperrors.NewIOError("failed to delete daily stats", err)
	}
	return nil
}

// ListDailyStats returns stored days between from and to inclusive. Empty bounds are open.
func (r *PgxDailyStatsRepository) ListDailyStats(ctx context.Context, from, to string) ([]domain.DailyStat, error) {
	query := `
		SELECT stat_date, sales, expenses, tx_count, updated_at
		FROM daily_stats
		WHERE ($1 = '' OR stat_date >= $1) AND ($2 = '' OR stat_date <= $2)
		ORDER BY stat_date;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewIOError("failed to query daily stats", err)
	}
	defer rows.Close()

	stats := []domain.DailyStat{}
	for rows.Next() {
		var m models.DailyStat
		if err := rows.Scan(&m.StatDate, &m.Sales, &m.Expenses, &m.TxCount, &m.UpdatedAt); err != nil {
			return nil, apperrors.NewIOError("failed to scan daily stat row", err)
		}
		stats = append(stats, mapping.ToDomainDailyStat(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewIOError("error iterating daily stat rows", err)
	}
	return stats, nil
}
