package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_shift_app/internal/core/ports/services"
	"github.com/SscSPs/pos_shift_app/internal/core/services"
	"github.com/SscSPs/pos_shift_app/internal/dto"
	"github.com/SscSPs/pos_shift_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ShiftServiceTestSuite struct {
	suite.Suite
	mockShiftRepo *MockShiftRepository
	mockTxnRepo   *MockTransactionRepository
	service       portssvc.ShiftSvcFacade
	ctx           context.Context
	tx            fakeTx
	now           time.Time
	actor         string
}

func (s *ShiftServiceTestSuite) SetupTest() {
	s.mockShiftRepo = new(MockShiftRepository)
	s.mockTxnRepo = new(MockTransactionRepository)
	s.ctx = context.Background()
	s.tx = fakeTx{}
	s.now = time.Date(2024, 3, 1, 14, 0, 0, 0, time.UTC)
	s.actor = "cashier@example.com"
	s.service = services.NewShiftService(s.mockShiftRepo, s.mockTxnRepo,
		services.WithShiftClock(func() time.Time { return s.now }))
}

func (s *ShiftServiceTestSuite) TearDownTest() {
	s.mockShiftRepo.AssertExpectations(s.T())
	s.mockTxnRepo.AssertExpectations(s.T())
}

func TestShiftServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ShiftServiceTestSuite))
}

func (s *ShiftServiceTestSuite) openShift(id string) *domain.Shift {
	return &domain.Shift{ShiftID: id, StaffEmail: s.actor, StartTime: s.now.Add(-8 * time.Hour)}
}

func (s *ShiftServiceTestSuite) expectTx() {
	s.mockShiftRepo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.mockShiftRepo.On("Rollback", s.ctx, s.tx).Return(nil).Maybe()
}

func scenarioTransactions(shiftID string) []domain.Transaction {
	return []domain.Transaction{
		{TransactionID: "t1", Item: "Printing", Total: dec("100"), PaymentMethod: domain.PaymentCash, ShiftID: &shiftID},
		{TransactionID: "t2", Item: domain.ItemExpenses, ExpenseType: "Supplies", Total: dec("30"), ShiftID: &shiftID},
	}
}

// --- CloseShift ---

func (s *ShiftServiceTestSuite) TestCloseShift_ComputesAndPersistsTotals() {
	shiftID := "shift-1"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("ListTransactionsByShiftInTx", s.ctx, s.tx, shiftID).Return(scenarioTransactions(shiftID), nil).Once()
	s.mockShiftRepo.On("CloseShiftInTx", s.ctx, s.tx, mock.MatchedBy(func(c domain.ShiftClose) bool {
		return c.ShiftID == shiftID &&
			c.EndTime.Equal(s.now) &&
			c.ClosedBy == s.actor &&
			c.Totals.ServicesTotal.Equal(decimal.NewFromInt(100)) &&
			c.Totals.ExpensesTotal.Equal(decimal.NewFromInt(30)) &&
			c.Totals.SystemTotal.Equal(decimal.NewFromInt(570)) &&
			c.Totals.TotalCash.Equal(decimal.NewFromInt(600)) &&
			c.Totals.TotalGcash.IsZero() &&
			c.Totals.TotalAr.IsZero() &&
			c.Reconciliation.ExpectedCashOnHand.Equal(decimal.NewFromInt(570))
	})).Return(nil).Once()
	s.mockShiftRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	shift, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("500")}, s.actor)

	s.Require().NoError(err)
	s.Require().NotNil(shift.EndTime)
	s.True(shift.EndTime.Equal(s.now))
	s.False(shift.IsOpen())
	s.True(shift.PCRentalTotal.Equal(decimal.NewFromInt(500)))
	s.Require().NotNil(shift.Reconciliation)
	s.Equal(2, shift.Reconciliation.TransactionCount)
}

func (s *ShiftServiceTestSuite) TestCloseShift_ZeroRentalIsAccepted() {
	shiftID := "shift-zero"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("ListTransactionsByShiftInTx", s.ctx, s.tx, shiftID).Return([]domain.Transaction{}, nil).Once()
	s.mockShiftRepo.On("CloseShiftInTx", s.ctx, s.tx, mock.AnythingOfType("domain.ShiftClose")).Return(nil).Once()
	s.mockShiftRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	shift, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("0")}, s.actor)

	s.Require().NoError(err)
	s.True(shift.SystemTotal.IsZero())
}

func (s *ShiftServiceTestSuite) TestCloseShift_MissingRentalIsRejectedWithoutWrite() {
	_, err := s.service.CloseShift(s.ctx, "shift-1", dto.CloseShiftRequest{}, s.actor)

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.mockShiftRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ShiftServiceTestSuite) TestCloseShift_NegativeRentalIsRejected() {
	_, err := s.service.CloseShift(s.ctx, "shift-1", dto.CloseShiftRequest{PCRentalTotal: dec("-1")}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ShiftServiceTestSuite) TestCloseShift_SecondCloseReturnsStoredResult() {
	shiftID := "shift-closed"
	ended := s.now.Add(-time.Hour)
	stored := accounting.ComputeShiftReconciliation(scenarioTransactions(shiftID), decimal.NewFromInt(500), nil, nil)
	closed := s.openShift(shiftID)
	closed.EndTime = &ended
	closed.ShiftTotals = stored.Totals()
	closed.Reconciliation = &stored

	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(closed, nil).Once()

	shift, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("500.00")}, s.actor)

	s.Require().NoError(err)
	s.True(shift.EndTime.Equal(ended), "endTime must not move on a repeated close")
	s.Equal(&stored, shift.Reconciliation)
	s.mockShiftRepo.AssertNotCalled(s.T(), "CloseShiftInTx", mock.Anything, mock.Anything, mock.Anything)
	s.mockTxnRepo.AssertNotCalled(s.T(), "ListTransactionsByShiftInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ShiftServiceTestSuite) TestCloseShift_SecondCloseWithDifferentRentalIsValidationError() {
	shiftID := "shift-closed"
	ended := s.now.Add(-time.Hour)
	stored := accounting.ComputeShiftReconciliation(nil, decimal.NewFromInt(500), nil, nil)
	closed := s.openShift(shiftID)
	closed.EndTime = &ended
	closed.ShiftTotals = stored.Totals()
	closed.Reconciliation = &stored

	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(closed, nil).Once()

	_, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("450")}, s.actor)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ShiftServiceTestSuite) TestCloseShift_ClosedWithoutStoredResultIsConflict() {
	shiftID := "shift-legacy"
	ended := s.now.Add(-time.Hour)
	closed := s.openShift(shiftID)
	closed.EndTime = &ended

	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(closed, nil).Once()

	_, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("0")}, s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
}

func (s *ShiftServiceTestSuite) TestCloseShift_LostRaceIsConflict() {
	shiftID := "shift-race"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("ListTransactionsByShiftInTx", s.ctx, s.tx, shiftID).Return([]domain.Transaction{}, nil).Once()
	s.mockShiftRepo.On("CloseShiftInTx", s.ctx, s.tx, mock.AnythingOfType("domain.ShiftClose")).
		Return(apperrors.NewConflictError("shift already closed")).Once()

	_, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("100")}, s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockShiftRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *ShiftServiceTestSuite) TestCloseShift_CommitFailureIsIOError() {
	shiftID := "shift-io"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("ListTransactionsByShiftInTx", s.ctx, s.tx, shiftID).Return([]domain.Transaction{}, nil).Once()
	s.mockShiftRepo.On("CloseShiftInTx", s.ctx, s.tx, mock.AnythingOfType("domain.ShiftClose")).Return(nil).Once()
	s.mockShiftRepo.On("Commit", s.ctx, s.tx).Return(apperrors.NewIOError("failed to commit transaction", assert.AnError)).Once()

	shift, err := s.service.CloseShift(s.ctx, shiftID, dto.CloseShiftRequest{PCRentalTotal: dec("100")}, s.actor)

	s.Nil(shift)
	s.ErrorIs(err, apperrors.ErrIO)
}

func (s *ShiftServiceTestSuite) TestCloseShift_NotFound() {
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForUpdate", s.ctx, s.tx, "missing").
		Return(nil, apperrors.NewAppError(404, "shift not found", apperrors.ErrNotFound)).Once()

	_, err := s.service.CloseShift(s.ctx, "missing", dto.CloseShiftRequest{PCRentalTotal: dec("0")}, s.actor)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

// --- StartShift ---

func (s *ShiftServiceTestSuite) TestStartShift_DefaultsStaffToActor() {
	s.mockShiftRepo.On("SaveShift", s.ctx, mock.MatchedBy(func(sh domain.Shift) bool {
		return sh.StaffEmail == s.actor && sh.EndTime == nil && sh.SystemTotal.IsZero() && sh.StartTime.Equal(s.now) && sh.ShiftID != ""
	})).Return(nil).Once()

	shift, err := s.service.StartShift(s.ctx, dto.StartShiftRequest{ShiftPeriod: "AM"}, s.actor)

	s.Require().NoError(err)
	s.Equal("AM", shift.ShiftPeriod)
	s.True(shift.IsOpen())
}

func (s *ShiftServiceTestSuite) TestStartShift_SecondOpenShiftIsConflict() {
	s.mockShiftRepo.On("SaveShift", s.ctx, mock.AnythingOfType("domain.Shift")).
		Return(apperrors.NewConflictError("staff member already has an open shift")).Once()

	_, err := s.service.StartShift(s.ctx, dto.StartShiftRequest{StaffEmail: "other@example.com"}, s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
}

// --- RecordTransaction ---

func (s *ShiftServiceTestSuite) TestRecordTransaction_SaleDerivesTotal() {
	shiftID := "shift-1"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForShare", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("SaveTransactionInTx", s.ctx, s.tx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Item == "Printing" && t.Total != nil && t.Total.Equal(decimal.NewFromInt(15)) && t.BelongsToShift(shiftID)
	})).Return(nil).Once()
	s.mockShiftRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	txn, err := s.service.RecordTransaction(s.ctx, shiftID, dto.RecordTransactionRequest{
		Item:          "Printing",
		Quantity:      dec("3"),
		UnitPrice:     dec("5"),
		PaymentMethod: domain.PaymentGCash,
	}, s.actor)

	s.Require().NoError(err)
	s.True(txn.Amount().Equal(decimal.NewFromInt(15)))
	s.Equal(s.now, txn.Timestamp)
	s.Equal(s.actor, txn.CreatedBy)
}

func (s *ShiftServiceTestSuite) TestRecordTransaction_ClosedShiftIsConflict() {
	shiftID := "shift-closed"
	ended := s.now.Add(-time.Minute)
	closed := s.openShift(shiftID)
	closed.EndTime = &ended

	s.expectTx()
	s.mockShiftRepo.On("FindShiftForShare", s.ctx, s.tx, shiftID).Return(closed, nil).Once()

	_, err := s.service.RecordTransaction(s.ctx, shiftID, dto.RecordTransactionRequest{Item: "Printing", Total: dec("10")}, s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockTxnRepo.AssertNotCalled(s.T(), "SaveTransactionInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ShiftServiceTestSuite) TestRecordTransaction_InputValidation() {
	tests := []struct {
		name string
		req  dto.RecordTransactionRequest
	}{
		{"expense without total", dto.RecordTransactionRequest{Item: domain.ItemExpenses, Quantity: dec("1"), UnitPrice: dec("20")}},
		{"debt without customer", dto.RecordTransactionRequest{Item: domain.ItemNewDebt, Total: dec("80")}},
		{"total disagrees with quantity and price", dto.RecordTransactionRequest{Item: "Printing", Quantity: dec("2"), UnitPrice: dec("5"), Total: dec("11")}},
		{"no amount", dto.RecordTransactionRequest{Item: "Printing"}},
		{"negative total", dto.RecordTransactionRequest{Item: "Printing", Total: dec("-5")}},
		{"unknown payment method", dto.RecordTransactionRequest{Item: "Printing", Total: dec("5"), PaymentMethod: "Card"}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.RecordTransaction(s.ctx, "shift-1", tt.req, s.actor)
			s.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	s.mockShiftRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ShiftServiceTestSuite) TestRecordTransaction_ExpenseIsQuantityOne() {
	shiftID := "shift-1"
	s.expectTx()
	s.mockShiftRepo.On("FindShiftForShare", s.ctx, s.tx, shiftID).Return(s.openShift(shiftID), nil).Once()
	s.mockTxnRepo.On("SaveTransactionInTx", s.ctx, s.tx, mock.MatchedBy(func(t domain.Transaction) bool {
		return t.Quantity != nil && t.Quantity.Equal(decimal.NewFromInt(1)) && t.ExpenseType == "Supplies"
	})).Return(nil).Once()
	s.mockShiftRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	txn, err := s.service.RecordTransaction(s.ctx, shiftID, dto.RecordTransactionRequest{
		Item: domain.ItemExpenses, ExpenseType: "Supplies", Total: dec("30"),
	}, s.actor)

	s.Require().NoError(err)
	s.True(txn.Amount().Equal(decimal.NewFromInt(30)))
}

// --- EditTransaction / SoftDeleteTransaction ---

func (s *ShiftServiceTestSuite) storedTransaction(id string) *domain.Transaction {
	shiftID := "shift-1"
	return &domain.Transaction{
		TransactionID: id,
		Item:          "Printing",
		Total:         dec("100"),
		PaymentMethod: domain.PaymentCash,
		ShiftID:       &shiftID,
		Timestamp:     s.now.Add(-2 * time.Hour),
	}
}

func (s *ShiftServiceTestSuite) expectTxnTx() {
	s.mockTxnRepo.On("Begin", s.ctx).Return(s.tx, nil).Once()
	s.mockTxnRepo.On("Rollback", s.ctx, s.tx).Return(nil).Maybe()
}

func (s *ShiftServiceTestSuite) TestEditTransaction_RecordsAuditEntry() {
	id := "txn-1"
	s.mockTxnRepo.On("FindTransactionForUpdate", s.ctx, s.tx, id).Return(s.storedTransaction(id), nil).Once()
	s.expectTxnTx()
	s.mockTxnRepo.On("UpdateTransactionInTx", s.ctx, s.tx,
		mock.MatchedBy(func(t domain.Transaction) bool {
			return t.Total.Equal(decimal.NewFromInt(120)) && t.LastUpdatedBy == s.actor
		}),
		mock.MatchedBy(func(e domain.TransactionAuditEntry) bool {
			return e.Action == domain.AuditActionEdit &&
				e.Actor == s.actor &&
				e.Reason == "wrong amount" &&
				e.Before.Total.Equal(decimal.NewFromInt(100)) &&
				e.After.Total.Equal(decimal.NewFromInt(120))
		})).Return(nil).Once()
	s.mockTxnRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	txn, err := s.service.EditTransaction(s.ctx, id, dto.EditTransactionRequest{Total: dec("120"), Reason: "wrong amount"}, s.actor)

	s.Require().NoError(err)
	s.True(txn.Amount().Equal(decimal.NewFromInt(120)))
}

func (s *ShiftServiceTestSuite) TestEditTransaction_Validation() {
	_, err := s.service.EditTransaction(s.ctx, "txn-1", dto.EditTransactionRequest{Reason: "typo"}, s.actor)
	s.ErrorIs(err, apperrors.ErrValidation, "nothing to change")

	_, err = s.service.EditTransaction(s.ctx, "txn-1", dto.EditTransactionRequest{Total: dec("5"), Reason: "  "}, s.actor)
	s.ErrorIs(err, apperrors.ErrValidation, "blank reason")

	s.mockTxnRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ShiftServiceTestSuite) TestSoftDeleteTransaction_FlagsAndAudits() {
	id := "txn-2"
	s.mockTxnRepo.On("FindTransactionForUpdate", s.ctx, s.tx, id).Return(s.storedTransaction(id), nil).Once()
	s.expectTxnTx()
	s.mockTxnRepo.On("UpdateTransactionInTx", s.ctx, s.tx,
		mock.MatchedBy(func(t domain.Transaction) bool { return t.IsDeleted }),
		mock.MatchedBy(func(e domain.TransactionAuditEntry) bool {
			return e.Action == domain.AuditActionDelete && !e.Before.IsDeleted && e.After.IsDeleted && e.Reason == "duplicate entry"
		})).Return(nil).Once()
	s.mockTxnRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	err := s.service.SoftDeleteTransaction(s.ctx, id, "duplicate entry", s.actor)

	s.NoError(err)
}

func (s *ShiftServiceTestSuite) TestSoftDeleteTransaction_AlreadyDeletedIsConflict() {
	id := "txn-3"
	deleted := s.storedTransaction(id)
	deleted.IsDeleted = true
	s.expectTxnTx()
	s.mockTxnRepo.On("FindTransactionForUpdate", s.ctx, s.tx, id).Return(deleted, nil).Once()

	err := s.service.SoftDeleteTransaction(s.ctx, id, "again", s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockTxnRepo.AssertNotCalled(s.T(), "UpdateTransactionInTx", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ShiftServiceTestSuite) TestEditTransaction_DeletedMeanwhileIsConflict() {
	id := "txn-4"
	s.expectTxnTx()
	s.mockTxnRepo.On("FindTransactionForUpdate", s.ctx, s.tx, id).Return(s.storedTransaction(id), nil).Once()
	s.mockTxnRepo.On("UpdateTransactionInTx", s.ctx, s.tx, mock.Anything, mock.Anything).
		Return(apperrors.NewConflictError("transaction txn-4 is missing or already deleted")).Once()

	_, err := s.service.EditTransaction(s.ctx, id, dto.EditTransactionRequest{Notes: strPtr("late note"), Reason: "typo"}, s.actor)

	s.ErrorIs(err, apperrors.ErrConflict)
	s.mockTxnRepo.AssertNotCalled(s.T(), "Commit", mock.Anything, mock.Anything)
}

func (s *ShiftServiceTestSuite) TestEditTransaction_MovesTimestamp() {
	id := "txn-5"
	moved := time.Date(2024, 3, 2, 9, 30, 0, 0, time.FixedZone("PHT", 8*3600))
	s.expectTxnTx()
	s.mockTxnRepo.On("FindTransactionForUpdate", s.ctx, s.tx, id).Return(s.storedTransaction(id), nil).Once()
	s.mockTxnRepo.On("UpdateTransactionInTx", s.ctx, s.tx,
		mock.MatchedBy(func(t domain.Transaction) bool { return t.Timestamp.Equal(moved) && t.Timestamp.Location() == time.UTC }),
		mock.MatchedBy(func(e domain.TransactionAuditEntry) bool { return e.After.Timestamp.Equal(moved) })).
		Return(nil).Once()
	s.mockTxnRepo.On("Commit", s.ctx, s.tx).Return(nil).Once()

	txn, err := s.service.EditTransaction(s.ctx, id, dto.EditTransactionRequest{Timestamp: &moved, Reason: "wrong day"}, s.actor)

	s.Require().NoError(err)
	s.True(txn.Timestamp.Equal(moved))
}
