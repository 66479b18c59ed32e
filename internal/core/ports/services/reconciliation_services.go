package services

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/dto"
)

// ReconciliationSvc replays shift reconciliation over stored history.
type ReconciliationSvc interface {
	// Backfill recomputes closed shifts in the window and overwrites only those whose stored
	// totals differ. The report is returned even when the run stops early.
	Backfill(ctx context.Context, req dto.BackfillRequest, actor string) (*domain.RunReport, error)

	// AuditShift compares one shift under two classification rule sets. It never writes.
	AuditShift(ctx context.Context, shiftID string, params dto.AuditShiftParams) (*domain.AuditReport, error)
}

// StatsSvc maintains the per-day summaries.
type StatsSvc interface {
	// RebuildDailyStats streams transactions in timestamp order and rewrites one summary per day.
	RebuildDailyStats(ctx context.Context, req dto.RebuildStatsRequest) (*domain.RunReport, error)

	// ListDailyStats returns stored summaries for an inclusive date range.
	ListDailyStats(ctx context.Context, params dto.ListDailyStatsParams) ([]domain.DailyStat, error)
}
