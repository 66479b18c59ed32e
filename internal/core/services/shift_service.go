package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// shiftService opens and closes shifts and records the transactions attached to them.
type shiftService struct {
	BaseService
	shiftRepo  portsrepo.ShiftRepositoryWithTx
	txnRepo    portsrepo.TransactionRepositoryWithTx
	classifier accounting.Classifier
	policy     accounting.RentalPolicy
	now        func() time.Time
}

// ShiftServiceOption is a functional option for configuring the shift service
type ShiftServiceOption func(*shiftService)

// WithShiftRentalPolicy overrides how the entered rental total is split across payment methods.
func WithShiftRentalPolicy(p accounting.RentalPolicy) ShiftServiceOption {
	return func(s *shiftService) {
		s.policy = p
	}
}

// WithShiftClock overrides the time source.
func WithShiftClock(now func() time.Time) ShiftServiceOption {
	return func(s *shiftService) {
		s.now = now
	}
}

// NewShiftService creates a new shift service with the provided options
func NewShiftService(shiftRepo portsrepo.ShiftRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryWithTx, options ...ShiftServiceOption) portssvc.ShiftSvcFacade {
	svc := &shiftService{
		shiftRepo:  shiftRepo,
		txnRepo:    txnRepo,
		classifier: accounting.StandardClassifier{},
		policy:     accounting.CashRemainderPolicy{},
		now:        func() time.Time { return time.Now().UTC() },
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

func (s *shiftService) GetShift(ctx context.Context, shiftID string) (*domain.Shift, error) {
	shift, err := s.shiftRepo.FindShiftByID(ctx, shiftID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get shift", slog.String("shift_id", shiftID))
		}
		return nil, err
	}
	return shift, nil
}

func (s *shiftService) StartShift(ctx context.Context, req dto.StartShiftRequest, actor string) (*domain.Shift, error) {
	staff := strings.TrimSpace(req.StaffEmail)
	if staff == "" {
		staff = actor
	}
	if staff == "" {
		return nil, apperrors.NewValidationError("staffEmail is required")
	}

	now := s.now()
	shift := domain.Shift{
		ShiftID:     uuid.NewString(),
		StaffEmail:  staff,
		ShiftPeriod: strings.TrimSpace(req.ShiftPeriod),
		StartTime:   now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.shiftRepo.SaveShift(ctx, shift); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Staff member already has an open shift", slog.String("staff_email", staff))
		} else {
			s.LogError(ctx, err, "Failed to save shift", slog.String("staff_email", staff))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Shift started", slog.String("shift_id", shift.ShiftID), slog.String("staff_email", staff))
	return &shift, nil
}

func enteredRentalTotal(req dto.CloseShiftRequest) (decimal.Decimal, error) {
	if req.PCRentalTotal == nil {
		return decimal.Zero, apperrors.NewValidationError("pcRentalTotal is required to close a shift")
	}
	if req.PCRentalTotal.IsNegative() {
		return decimal.Zero, apperrors.NewValidationError("pcRentalTotal cannot be negative")
	}
	return *req.PCRentalTotal, nil
}

func (s *shiftService) CloseShift(ctx context.Context, shiftID string, req dto.CloseShiftRequest, actor string) (*domain.Shift, error) {
	entered, err := enteredRentalTotal(req)
	if err != nil {
		return nil, err
	}

	tx, err := s.shiftRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin close transaction", slog.String("shift_id", shiftID))
		return nil, err
	}
	defer s.shiftRepo.Rollback(ctx, tx) // no-op after commit

	shift, err := s.shiftRepo.FindShiftForUpdate(ctx, tx, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.IsOpen() {
		return s.alreadyClosed(ctx, shift, entered)
	}

	txns, err := s.txnRepo.ListTransactionsByShiftInTx(ctx, tx, shiftID)
	if err != nil {
		s.LogError(ctx, err, "Failed to read shift transactions", slog.String("shift_id", shiftID))
		return nil, err
	}

	result := accounting.ComputeShiftReconciliation(txns, entered, s.classifier, s.policy)
	now := s.now()
	closing := domain.ShiftClose{
		ShiftID:        shiftID,
		Totals:         result.Totals(),
		Reconciliation: result,
		EndTime:        now,
		ClosedBy:       actor,
	}
	if err := s.shiftRepo.CloseShiftInTx(ctx, tx, closing); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			s.LogWarn(ctx, "Shift was closed concurrently", slog.String("shift_id", shiftID))
		} else {
			s.LogError(ctx, err, "Failed to write shift close", slog.String("shift_id", shiftID))
		}
		return nil, err
	}
	if err := s.shiftRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit shift close", slog.String("shift_id", shiftID))
		return nil, err
	}

	shift.EndTime = &now
	shift.ShiftTotals = closing.Totals
	shift.Reconciliation = &result
	shift.LastUpdatedAt = now
	shift.LastUpdatedBy = actor

	s.LogInfo(ctx, "Shift closed",
		slog.String("shift_id", shiftID),
		slog.String("system_total", result.SystemTotal.String()),
		slog.String("expected_cash_on_hand", result.ExpectedCashOnHand.String()),
		slog.Int("transactions", result.TransactionCount))
	return shift, nil
}

// alreadyClosed makes a repeated close a no-op that returns the persisted result.
func (s *shiftService) alreadyClosed(ctx context.Context, shift *domain.Shift, entered decimal.Decimal) (*domain.Shift, error) {
	if shift.Reconciliation == nil {
		return nil, apperrors.NewConflictError("shift " + shift.ShiftID + " is already closed and has no stored reconciliation")
	}
	if !shift.PCRentalTotal.Equal(entered) {
		return nil, apperrors.NewValidationError(fmt.Sprintf("shift %s is already closed with pcRentalTotal %s", shift.ShiftID, shift.PCRentalTotal))
	}
	s.LogInfo(ctx, "Shift already closed, returning stored reconciliation", slog.String("shift_id", shift.ShiftID))
	return shift, nil
}

func isDebtItem(item string) bool {
	return item == domain.ItemNewDebt || item == domain.ItemPaidDebt
}

// newTransaction validates an entry request and derives its authoritative total.
func newTransaction(req dto.RecordTransactionRequest, shiftID, actor string, now time.Time) (domain.Transaction, error) {
	item := strings.TrimSpace(req.Item)
	if item == "" {
		return domain.Transaction{}, apperrors.NewValidationError("item is required")
	}
	if req.PaymentMethod != "" && !req.PaymentMethod.IsKnown() {
		return domain.Transaction{}, apperrors.NewValidationError("paymentMethod must be Cash, GCash or Charge")
	}
	if req.FinancialCategory != nil && !req.FinancialCategory.IsKnown() {
		return domain.Transaction{}, apperrors.NewValidationError("unknown financialCategory " + string(*req.FinancialCategory))
	}
	for _, d := range []*decimal.Decimal{req.Quantity, req.UnitPrice, req.Total} {
		if d != nil && d.IsNegative() {
			return domain.Transaction{}, apperrors.NewValidationError("amounts cannot be negative")
		}
	}
	if isDebtItem(item) && req.CustomerID == nil && req.CustomerName == nil {
		return domain.Transaction{}, apperrors.NewValidationError("debt transactions need a customer")
	}

	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Item:              item,
		PaymentMethod:     req.PaymentMethod,
		ExpenseType:       strings.TrimSpace(req.ExpenseType),
		FinancialCategory: req.FinancialCategory,
		ShiftID:           &shiftID,
		CustomerID:        req.CustomerID,
		CustomerName:      req.CustomerName,
		Notes:             req.Notes,
		Timestamp:         now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}
	if req.Timestamp != nil {
		txn.Timestamp = req.Timestamp.UTC()
	}

	switch {
	case item == domain.ItemExpenses:
		if req.Total == nil {
			return domain.Transaction{}, apperrors.NewValidationError("expenses need a total")
		}
		one := decimal.NewFromInt(1)
		total := *req.Total
		txn.Quantity, txn.UnitPrice, txn.Total = &one, &total, &total
	case req.Quantity != nil && req.UnitPrice != nil:
		total := req.Quantity.Mul(*req.UnitPrice)
		if req.Total != nil && !req.Total.Equal(total) {
			return domain.Transaction{}, apperrors.NewValidationError("total does not equal quantity x unitPrice")
		}
		txn.Quantity, txn.UnitPrice, txn.Total = req.Quantity, req.UnitPrice, &total
	case req.Total != nil:
		total := *req.Total
		txn.Total = &total
	default:
		return domain.Transaction{}, apperrors.NewValidationError("either total or quantity and unitPrice are required")
	}
	return txn, nil
}

func (s *shiftService) RecordTransaction(ctx context.Context, shiftID string, req dto.RecordTransactionRequest, actor string) (*domain.Transaction, error) {
	txn, err := newTransaction(req, shiftID, actor, s.now())
	if err != nil {
		return nil, err
	}

	tx, err := s.shiftRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.shiftRepo.Rollback(ctx, tx)

	// The shared lock keeps a concurrent close waiting until this insert commits.
	shift, err := s.shiftRepo.FindShiftForShare(ctx, tx, shiftID)
	if err != nil {
		return nil, err
	}
	if !shift.IsOpen() {
		return nil, apperrors.NewConflictError("shift " + shiftID + " is closed")
	}

	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("shift_id", shiftID))
		return nil, err
	}
	if err := s.shiftRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit transaction", slog.String("shift_id", shiftID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction recorded",
		slog.String("shift_id", shiftID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("item", txn.Item))
	return &txn, nil
}

func (s *shiftService) EditTransaction(ctx context.Context, transactionID string, req dto.EditTransactionRequest, actor string) (*domain.Transaction, error) {
	if req.Total == nil && req.Timestamp == nil && req.Notes == nil {
		return nil, apperrors.NewValidationError("nothing to change: provide total, timestamp or notes")
	}
	if req.Total != nil && req.Total.IsNegative() {
		return nil, apperrors.NewValidationError("total cannot be negative")
	}

	return s.amendTransaction(ctx, transactionID, domain.AuditActionEdit, req.Reason, actor, func(t *domain.Transaction) {
		if req.Total != nil {
			total := *req.Total
			t.Total = &total
		}
		if req.Timestamp != nil {
			t.Timestamp = req.Timestamp.UTC()
		}
		if req.Notes != nil {
			t.Notes = *req.Notes
		}
	})
}

func (s *shiftService) SoftDeleteTransaction(ctx context.Context, transactionID string, reason string, actor string) error {
	_, err := s.amendTransaction(ctx, transactionID, domain.AuditActionDelete, reason, actor, func(t *domain.Transaction) {
		t.IsDeleted = true
	})
	return err
}

// amendTransaction applies change to a live transaction and stores it with an audit entry.
func (s *shiftService) amendTransaction(ctx context.Context, transactionID, action, reason, actor string, change func(*domain.Transaction)) (*domain.Transaction, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, apperrors.NewValidationError("a reason is required")
	}

	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.txnRepo.Rollback(ctx, tx)

	// The row lock serializes racing edits and deletes; the loser sees the winner's state here.
	existing, err := s.txnRepo.FindTransactionForUpdate(ctx, tx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.IsDeleted {
		return nil, apperrors.NewConflictError("transaction " + transactionID + " is already deleted")
	}

	now := s.now()
	before := *existing
	updated := *existing
	change(&updated)
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actor

	entry := domain.TransactionAuditEntry{
		EntryID:       uuid.NewString(),
		TransactionID: transactionID,
		Action:        action,
		Actor:         actor,
		Reason:        reason,
		Before:        &before,
		After:         &updated,
		CreatedAt:     now,
	}

	if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated, entry); err != nil {
		s.LogError(ctx, err, "Failed to amend transaction", slog.String("transaction_id", transactionID), slog.String("action", action))
		return nil, err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return nil, err
	}

	attrs := []any{slog.String("transaction_id", transactionID), slog.String("action", action)}
	if updated.ShiftID != nil {
		// Closed shift totals stay as stored until the next backfill.
		attrs = append(attrs, slog.String("shift_id", *updated.ShiftID))
	}
	s.LogInfo(ctx, "Transaction amended", attrs...)
	return &updated, nil
}
