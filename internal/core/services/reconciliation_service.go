package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
)

// Default rule sets compared by AuditShift.
const (
	DefaultAuditPrimary   = accounting.RuleSetStandard
	DefaultAuditAlternate = accounting.RuleSetCatalog
)

type reconciliationService struct {
	BaseService
	shiftRepo   portsrepo.ShiftRepositoryWithTx
	txnRepo     portsrepo.TransactionReader
	catalogRepo portsrepo.CatalogReader
	classifier  accounting.Classifier
	policy      accounting.RentalPolicy
	bulk        BulkSettings
	now         func() time.Time
}

// ReconciliationServiceOption is a functional option for configuring the reconciliation service
type ReconciliationServiceOption func(*reconciliationService)

// WithRentalPolicy overrides the rental allocation used when totals are recomputed.
func WithRentalPolicy(p accounting.RentalPolicy) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.policy = p
	}
}

// WithBulkSettings overrides paging, batching and retry behaviour.
func WithBulkSettings(b BulkSettings) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.bulk = b.normalized()
	}
}

// WithReconciliationClock overrides the time source.
func WithReconciliationClock(now func() time.Time) ReconciliationServiceOption {
	return func(s *reconciliationService) {
		s.now = now
	}
}

// NewReconciliationService creates a new reconciliation service with the provided options
func NewReconciliationService(shiftRepo portsrepo.ShiftRepositoryWithTx, txnRepo portsrepo.TransactionReader, catalogRepo portsrepo.CatalogReader, options ...ReconciliationServiceOption) portssvc.ReconciliationSvc {
	svc := &reconciliationService{
		shiftRepo:   shiftRepo,
		txnRepo:     txnRepo,
		catalogRepo: catalogRepo,
		classifier:  accounting.StandardClassifier{},
		policy:      accounting.CashRemainderPolicy{},
		bulk:        DefaultBulkSettings(),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *reconciliationService) Backfill(ctx context.Context, req dto.BackfillRequest, actor string) (*domain.RunReport, error) {
	if req.From.IsZero() || req.To.IsZero() {
		return nil, apperrors.NewValidationError("from and to are required")
	}
	if !req.From.Before(req.To) {
		return nil, apperrors.NewValidationError("from must be before to")
	}

	window := portsrepo.TimeWindow{From: req.From.UTC(), To: req.To.UTC()}
	report := newRunReport(domain.RunModeBackfill, req.DryRun, s.now())
	logger := s.RunLogger(ctx, report)
	logger.Info("Backfill started", slog.Time("from", window.From), slog.Time("to", window.To))

	// Both passes see only shifts closed before the run started, so a close racing the
	// run can never be compared against a partial or empty replay.
	scope := portsrepo.ClosedShiftScope{Window: window, ClosedBefore: report.StartedAt}
	accs, err := s.replayTransactions(ctx, scope, report)
	if err == nil {
		err = s.correctShifts(ctx, scope, accs, report, actor)
	}
	return s.FinishRun(ctx, logger, report, s.now(), err)
}

// replayTransactions streams every transaction of the window's closed shifts into one
// accumulator per shift. Only running sums are held, never the transactions themselves.
func (s *reconciliationService) replayTransactions(ctx context.Context, scope portsrepo.ClosedShiftScope, report *domain.RunReport) (map[string]*accounting.ShiftAccumulator, error) {
	accs := make(map[string]*accounting.ShiftAccumulator)
	var next *string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var page []domain.Transaction
		err := s.bulk.withRetry(ctx, func(ctx context.Context) error {
			var err error
			page, next, err = s.txnRepo.ListClosedShiftTransactionsPage(ctx, scope, portsrepo.PageRequest{Limit: s.bulk.PageSize, NextToken: next})
			return err
		})
		if err != nil {
			return nil, err
		}

		for _, txn := range page {
			report.Scanned++
			if txn.ShiftID == nil {
				continue
			}
			if !txn.IsDeleted && txn.PaymentMethod != "" && !txn.PaymentMethod.IsKnown() {
				report.AddItemError(txn.TransactionID, fmt.Sprintf("unrecognized payment method %q counted as Cash", txn.PaymentMethod))
			}
			acc, ok := accs[*txn.ShiftID]
			if !ok {
				acc = accounting.NewShiftAccumulator(s.classifier, s.policy)
				accs[*txn.ShiftID] = acc
			}
			acc.Add(txn)
		}
		if next == nil {
			return accs, nil
		}
	}
}

// correctShifts compares each closed shift's stored totals with the replayed ones and
// overwrites the ones that drifted, in batches.
func (s *reconciliationService) correctShifts(ctx context.Context, scope portsrepo.ClosedShiftScope, accs map[string]*accounting.ShiftAccumulator, report *domain.RunReport, actor string) error {
	idOf := func(u domain.ShiftTotalsUpdate) string { return u.ShiftID }
	flush := func(batch []domain.ShiftTotalsUpdate) error {
		return commitBatch(ctx, s.bulk, report, batch, idOf, s.shiftRepo.UpdateShiftTotalsBatch)
	}

	pending := make([]domain.ShiftTotalsUpdate, 0, s.bulk.BatchSize)
	var next *string
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var page []domain.Shift
		err := s.bulk.withRetry(ctx, func(ctx context.Context) error {
			var err error
			page, next, err = s.shiftRepo.ListClosedShiftsPage(ctx, scope, portsrepo.PageRequest{Limit: s.bulk.PageSize, NextToken: next})
			return err
		})
		if err != nil {
			return err
		}

		for _, shift := range page {
			if shift.EndTime == nil || !shift.EndTime.Before(scope.ClosedBefore) {
				s.LogDebug(ctx, "Skipping shift closed after the run started", slog.String("shift_id", shift.ShiftID))
				continue
			}
			report.Examined++
			acc, ok := accs[shift.ShiftID]
			if !ok {
				acc = accounting.NewShiftAccumulator(s.classifier, s.policy)
			}
			result := acc.Result(shift.PCRentalTotal)
			if result.Totals().Equal(shift.ShiftTotals) {
				continue
			}

			report.Pending++
			s.LogDebug(ctx, "Shift totals drifted",
				slog.String("shift_id", shift.ShiftID),
				slog.String("stored_system_total", shift.SystemTotal.String()),
				slog.String("computed_system_total", result.SystemTotal.String()))
			pending = append(pending, domain.ShiftTotalsUpdate{
				ShiftID:           shift.ShiftID,
				Totals:            result.Totals(),
				Reconciliation:    result,
				UpdatedAt:         s.now(),
				UpdatedBy:         actor,
				ExpectedUpdatedAt: shift.LastUpdatedAt,
			})
			if len(pending) >= s.bulk.BatchSize {
				if err := flush(pending); err != nil {
					return err
				}
				pending = make([]domain.ShiftTotalsUpdate, 0, s.bulk.BatchSize)
			}
		}
		if next == nil {
			break
		}
	}
	return flush(pending)
}

func (s *reconciliationService) AuditShift(ctx context.Context, shiftID string, params dto.AuditShiftParams) (*domain.AuditReport, error) {
	primaryName, alternateName := params.Primary, params.Alternate
	if primaryName == "" {
		primaryName = DefaultAuditPrimary
	}
	if alternateName == "" {
		alternateName = DefaultAuditAlternate
	}

	for _, name := range []string{primaryName, alternateName} {
		if _, ok := accounting.ClassifierByName(name, nil); !ok {
			return nil, apperrors.NewValidationError("unknown rule set " + name)
		}
	}

	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	txns, err := s.txnRepo.ListTransactionsByShift(ctx, shiftID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read shift transactions for audit", slog.String("shift_id", shiftID))
		return nil, err
	}

	var catalog map[string]domain.CatalogCategory
	if primaryName == accounting.RuleSetCatalog || alternateName == accounting.RuleSetCatalog {
		catalog, err = s.catalogRepo.FindCatalogCategories(ctx, itemNames(txns))
		if err != nil {
			s.LogError(ctx, err, "Failed to read catalog for audit", slog.String("shift_id", shiftID))
			return nil, err
		}
	}

	primary, _ := accounting.ClassifierByName(primaryName, catalog)
	alternate, _ := accounting.ClassifierByName(alternateName, catalog)

	report := &domain.AuditReport{
		ShiftID:          shiftID,
		PrimaryRuleSet:   primary.Name(),
		AlternateRuleSet: alternate.Name(),
		Mismatches:       []domain.DataIntegrityWarning{},
	}
	for _, txn := range txns {
		if txn.IsDeleted {
			continue
		}
		report.TransactionsAudited++
		a, b := primary.Classify(txn), alternate.Classify(txn)
		if a.Bucket == b.Bucket {
			continue
		}
		report.Mismatches = append(report.Mismatches, domain.DataIntegrityWarning{
			TransactionID:   txn.TransactionID,
			Item:            txn.Item,
			Amount:          txn.Amount(),
			PrimaryBucket:   a.Bucket,
			AlternateBucket: b.Bucket,
			Message:         fmt.Sprintf("%s classifies %q as %s, %s classifies it as %s", primary.Name(), txn.Item, a.Bucket, alternate.Name(), b.Bucket),
		})
	}

	entered := shift.PCRentalTotal
	report.PrimaryTotals = accounting.ComputeShiftReconciliation(txns, entered, primary, s.policy).Totals()
	report.AlternateTotals = accounting.ComputeShiftReconciliation(txns, entered, alternate, s.policy).Totals()
	report.Difference = report.PrimaryTotals.Sub(report.AlternateTotals)
	if !shift.IsOpen() {
		stored := shift.ShiftTotals
		report.StoredTotals = &stored
	}

	if report.HasDivergence() {
		s.LogWarn(ctx, "Classification divergence detected",
			slog.String("shift_id", shiftID),
			slog.Int("mismatches", len(report.Mismatches)),
			slog.String("system_total_difference", report.Difference.SystemTotal.String()))
	}
	return report, nil
}

func itemNames(txns []domain.Transaction) []string {
	seen := make(map[string]struct{}, len(txns))
	names := make([]string, 0, len(txns))
	for _, t := range txns {
		if _, ok := seen[t.Item]; ok {
			continue
		}
		seen[t.Item] = struct{}{}
		names = append(names, t.Item)
	}
	return names
}
