package services

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/google/uuid"
)

// MaxBatchWrites is the per-batch operation ceiling of the store.
const MaxBatchWrites = 500

// BulkSettings are the paging, batching and retry knobs shared by bulk runs.
type BulkSettings struct {
	PageSize     int
	BatchSize    int
	MaxRetries   int
	RetryBackoff time.Duration
}

// DefaultBulkSettings returns the settings used when none are configured.
func DefaultBulkSettings() BulkSettings {
	return BulkSettings{PageSize: 500, BatchSize: 450, MaxRetries: 3, RetryBackoff: 500 * time.Millisecond}
}

func (b BulkSettings) normalized() BulkSettings {
	d := DefaultBulkSettings()
	if b.PageSize <= 0 {
		b.PageSize = d.PageSize
	}
	if b.BatchSize <= 0 {
		b.BatchSize = d.BatchSize
	}
	if b.BatchSize > MaxBatchWrites {
		b.BatchSize = MaxBatchWrites
	}
	if b.MaxRetries < 0 {
		b.MaxRetries = 0
	}
	if b.RetryBackoff < 0 {
		b.RetryBackoff = 0
	}
	return b
}

// withRetry runs op and retries I/O failures up to MaxRetries times with linear backoff.
// Any other error is returned immediately.
func (b BulkSettings) withRetry(ctx context.Context, op func(context.Context) error) error {
	var err error
	for attempt := 0; attempt <= b.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.RetryBackoff * time.Duration(attempt)):
			}
		}
		err = op(ctx)
		if err == nil || !errors.Is(err, apperrors.ErrIO) {
			return err
		}
	}
	return err
}

// isCancellation reports whether the run's own context ended, which stops it cleanly rather than failing it.
// A store timeout surfaces as ErrIO and is not a cancellation.
func isCancellation(ctx context.Context) bool {
	return ctx.Err() != nil
}

func newRunReport(mode domain.RunMode, dryRun bool, now time.Time) *domain.RunReport {
	return &domain.RunReport{
		RunID:      uuid.NewString(),
		Mode:       mode,
		DryRun:     dryRun,
		StartedAt:  now,
		ItemErrors: []domain.ItemError{},
	}
}

// commitBatch writes one batch atomically, retrying I/O failures. When the retry budget is
// spent it records the first item of the batch as the stop point and returns the error.
// Any other failure is retried item by item so one bad record does not sink its neighbours.
func commitBatch[T any](ctx context.Context, b BulkSettings, report *domain.RunReport, batch []T, idOf func(T) string, write func(context.Context, []T) error) error {
	if len(batch) == 0 || report.DryRun {
		return nil
	}

	err := b.withRetry(ctx, func(ctx context.Context) error { return write(ctx, batch) })
	if err == nil {
		report.Written += len(batch)
		report.BatchesCommitted++
		return nil
	}
	if isCancellation(ctx) {
		return err
	}
	if errors.Is(err, apperrors.ErrIO) {
		report.StoppedAt = idOf(batch[0])
		return err
	}

	for _, item := range batch {
		single := []T{item}
		err := b.withRetry(ctx, func(ctx context.Context) error { return write(ctx, single) })
		switch {
		case err == nil:
			report.Written++
			report.BatchesCommitted++
		case isCancellation(ctx):
			return err
		case errors.Is(err, apperrors.ErrIO):
			report.StoppedAt = idOf(item)
			return err
		default:
			report.AddItemError(idOf(item), err.Error())
		}
	}
	return nil
}
