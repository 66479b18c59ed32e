package repositories

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
)

// DailyStatsRepository stores the per-day summaries rebuilt from the transaction history.
//
//go:generate mockgen -destination=mocks/mock_daily_stats_repository.go -package=mocks -source=daily_stats_repositories.go DailyStatsRepository
type DailyStatsRepository interface {
	// UpsertDailyStatsBatch writes all summaries atomically as one batch.
	UpsertDailyStatsBatch(ctx context.Context, stats []domain.DailyStat) error

	// DeleteDailyStats removes the stored summaries for the given dates atomically.
	DeleteDailyStats(ctx context.Context, dates []string) error

	// ListDailyStats retrieves summaries with from <= date <= to (YYYY-MM-DD), ordered by date.
	ListDailyStats(ctx context.Context, from, to string) ([]domain.DailyStat, error)
}
