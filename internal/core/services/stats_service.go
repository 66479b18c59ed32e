package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
)

type statsService struct {
	BaseService
	txnRepo   portsrepo.TransactionReader
	statsRepo portsrepo.DailyStatsRepository
	bulk      BulkSettings
	loc       *time.Location
	now       func() time.Time
}

// StatsServiceOption is a functional option for configuring the stats service
type StatsServiceOption func(*statsService)

// WithStatsBulkSettings overrides paging, batching and retry behaviour.
func WithStatsBulkSettings(b BulkSettings) StatsServiceOption {
	return func(s *statsService) {
		s.bulk = b.normalized()
	}
}

// WithBusinessLocation sets the timezone calendar days are cut in.
func WithBusinessLocation(loc *time.Location) StatsServiceOption {
	return func(s *statsService) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithStatsClock overrides the time source.
func WithStatsClock(now func() time.Time) StatsServiceOption {
	return func(s *statsService) {
		s.now = now
	}
}

// NewStatsService creates a new daily statistics service with the provided options
func NewStatsService(txnRepo portsrepo.TransactionReader, statsRepo portsrepo.DailyStatsRepository, options ...StatsServiceOption) portssvc.StatsSvc {
	svc := &statsService{
		txnRepo:   txnRepo,
		statsRepo: statsRepo,
		bulk:      DefaultBulkSettings(),
		loc:       time.UTC,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// dayWindow widens the requested bounds outwards to whole business days so no day is
// rebuilt from a partial stream.
func (s *statsService) dayWindow(req dto.RebuildStatsRequest) (portsrepo.TimeWindow, error) {
	var w portsrepo.TimeWindow
	if req.From != nil {
		w.From = startOfDay(req.From.In(s.loc))
	}
	if req.To != nil {
		to := req.To.In(s.loc)
		w.To = startOfDay(to)
		if !w.To.Equal(to) {
			w.To = w.To.AddDate(0, 0, 1)
		}
	}
	if !w.From.IsZero() && !w.To.IsZero() && !w.From.Before(w.To) {
		return w, apperrors.NewValidationError("from must be before to")
	}
	return w, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func (s *statsService) RebuildDailyStats(ctx context.Context, req dto.RebuildStatsRequest) (*domain.RunReport, error) {
	window, err := s.dayWindow(req)
	if err != nil {
		return nil, err
	}

	report := newRunReport(domain.RunModeDailyRebuild, false, s.now())
	logger := s.RunLogger(ctx, report)
	logger.Info("Daily stats rebuild started", slog.String("timezone", s.loc.String()))

	err = s.rebuild(ctx, window, report)
	return s.FinishRun(ctx, logger, report, s.now(), err)
}

func (s *statsService) rebuild(ctx context.Context, window portsrepo.TimeWindow, report *domain.RunReport) error {
	acc := accounting.NewDailyAccumulator(accounting.StandardClassifier{}, s.loc)
	idOf := func(d domain.DailyStat) string { return d.Date }

	produced := map[string]struct{}{}
	pending := make([]domain.DailyStat, 0, s.bulk.BatchSize)
	queue := func(day *domain.DailyStat) error {
		if day == nil {
			return nil
		}
		produced[day.Date] = struct{}{}
		report.Examined++
		report.Pending++
		day.UpdatedAt = s.now()
		pending = append(pending, *day)
		if len(pending) < s.bulk.BatchSize {
			return nil
		}
		err := commitBatch(ctx, s.bulk, report, pending, idOf, s.statsRepo.UpsertDailyStatsBatch)
		pending = make([]domain.DailyStat, 0, s.bulk.BatchSize)
		return err
	}

	var next *string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var page []domain.Transaction
		err := s.bulk.withRetry(ctx, func(ctx context.Context) error {
			var err error
			page, next, err = s.txnRepo.ListTransactionsPage(ctx, window, portsrepo.PageRequest{Limit: s.bulk.PageSize, NextToken: next})
			return err
		})
		if err != nil {
			return err
		}

		for _, txn := range page {
			report.Scanned++
			if err := queue(acc.Add(txn)); err != nil {
				return err
			}
		}
		if next == nil {
			break
		}
	}

	if err := queue(acc.Flush()); err != nil {
		return err
	}
	if err := commitBatch(ctx, s.bulk, report, pending, idOf, s.statsRepo.UpsertDailyStatsBatch); err != nil {
		return err
	}
	return s.purgeStaleDays(ctx, window, produced, report)
}

// purgeStaleDays deletes stored days inside the window that the rebuild no longer
// produced, such as a day whose transactions were all deleted.
func (s *statsService) purgeStaleDays(ctx context.Context, window portsrepo.TimeWindow, produced map[string]struct{}, report *domain.RunReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	from, to := s.dateBounds(window)

	var stored []domain.DailyStat
	err := s.bulk.withRetry(ctx, func(ctx context.Context) error {
		var err error
		stored, err = s.statsRepo.ListDailyStats(ctx, from, to)
		return err
	})
	if err != nil {
		return err
	}

	stale := make([]string, 0)
	for _, day := range stored {
		if _, ok := produced[day.Date]; ok {
			continue
		}
		report.Examined++
		report.Pending++
		stale = append(stale, day.Date)
	}
	if len(stale) > 0 {
		s.LogInfo(ctx, "Removing daily stats with no remaining transactions", slog.Int("days", len(stale)))
	}

	idOf := func(d string) string { return d }
	for start := 0; start < len(stale); start += s.bulk.BatchSize {
		end := min(start+s.bulk.BatchSize, len(stale))
		if err := commitBatch(ctx, s.bulk, report, stale[start:end], idOf, s.statsRepo.DeleteDailyStats); err != nil {
			return err
		}
	}
	return nil
}

// dateBounds turns a day-aligned window into inclusive stat dates. Open bounds stay empty.
func (s *statsService) dateBounds(window portsrepo.TimeWindow) (from, to string) {
	if !window.From.IsZero() {
		from = window.From.In(s.loc).Format(domain.DailyStatsDateFormat)
	}
	if !window.To.IsZero() {
		to = window.To.Add(-time.Nanosecond).In(s.loc).Format(domain.DailyStatsDateFormat)
	}
	return from, to
}

func (s *statsService) ListDailyStats(ctx context.Context, params dto.ListDailyStatsParams) ([]domain.DailyStat, error) {
	for _, d := range []string{params.From, params.To} {
		if d == "" {
			continue
		}
		if _, err := time.Parse(domain.DailyStatsDateFormat, d); err != nil {
			return nil, apperrors.NewValidationError("dates must be YYYY-MM-DD")
		}
	}
	if params.From != "" && params.To != "" && params.From > params.To {
		return nil, apperrors.NewValidationError("from must not be after to")
	}

	stats, err := s.statsRepo.ListDailyStats(ctx, params.From, params.To)
	if err != nil {
		s.LogError(ctx, err, "Failed to list daily stats", slog.String("from", params.From), slog.String("to", params.To))
		return nil, err
	}
	return stats, nil
}
