package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// RunLogger returns the request logger tagged with a bulk run's identity.
func (s *BaseService) RunLogger(ctx context.Context, report *domain.RunReport) *slog.Logger {
	return s.GetLogger(ctx).With(
		slog.String("run_id", report.RunID),
		slog.String("mode", string(report.Mode)),
		slog.Bool("dry_run", report.DryRun),
	)
}

// FinishRun stamps the report and settles the run's outcome. A cancelled run returns its
// report with a nil error; committed batches stay committed.
func (s *BaseService) FinishRun(ctx context.Context, logger *slog.Logger, report *domain.RunReport, finishedAt time.Time, err error) (*domain.RunReport, error) {
	report.FinishedAt = finishedAt
	switch {
	case err == nil:
		report.Completed = true
		logger.Info("Bulk run finished", slog.String("status", report.Status()), slog.Int("item_errors", len(report.ItemErrors)))
		return report, nil
	case isCancellation(ctx):
		report.Cancelled = true
		logger.Warn("Bulk run cancelled", slog.String("status", report.Status()))
		return report, nil
	default:
		logger.Error("Bulk run stopped", slog.String("status", report.Status()), slog.String("error", err.Error()))
		return report, err
	}
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}
