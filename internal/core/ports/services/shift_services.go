package services

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/dto"
)

// ShiftReaderSvc defines read operations for shifts
type ShiftReaderSvc interface {
	// GetShift retrieves a shift with its stored totals and reconciliation.
	GetShift(ctx context.Context, shiftID string) (*domain.Shift, error)
}

// ShiftLifecycleSvc opens and closes shifts.
type ShiftLifecycleSvc interface {
	// StartShift opens a zero-total shift. A second open shift for the same staff member is a conflict.
	StartShift(ctx context.Context, req dto.StartShiftRequest, actor string) (*domain.Shift, error)

	// CloseShift reconciles the shift's transactions against the entered rental total and
	// closes it. Closing an already-closed shift with the same figure returns the stored result.
	CloseShift(ctx context.Context, shiftID string, req dto.CloseShiftRequest, actor string) (*domain.Shift, error)
}

// TransactionEntrySvc records and amends counter transactions.
type TransactionEntrySvc interface {
	// RecordTransaction attaches a new transaction to an open shift.
	RecordTransaction(ctx context.Context, shiftID string, req dto.RecordTransactionRequest, actor string) (*domain.Transaction, error)

	// EditTransaction changes amount, date or notes and records actor and reason.
	EditTransaction(ctx context.Context, transactionID string, req dto.EditTransactionRequest, actor string) (*domain.Transaction, error)

	// SoftDeleteTransaction flags a transaction deleted and records actor and reason.
	SoftDeleteTransaction(ctx context.Context, transactionID string, reason string, actor string) error
}

// ShiftSvcFacade combines all shift-related service interfaces
type ShiftSvcFacade interface {
	ShiftReaderSvc
	ShiftLifecycleSvc
	TransactionEntrySvc
}
