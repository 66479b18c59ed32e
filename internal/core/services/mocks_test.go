package services_test

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// fakeTx stands in for a database transaction; the mocked repositories never touch it.
type fakeTx struct{ pgx.Tx }

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

// --- Mock ShiftRepository ---
type MockShiftRepository struct {
	mock.Mock
}

var _ portsrepo.ShiftRepositoryWithTx = (*MockShiftRepository)(nil)

func (m *MockShiftRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockShiftRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockShiftRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockShiftRepository) FindShiftByID(ctx context.Context, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) ListClosedShiftsPage(ctx context.Context, scope portsrepo.ClosedShiftScope, page portsrepo.PageRequest) ([]domain.Shift, *string, error) {
	args := m.Called(ctx, scope, page)
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Shift), next, args.Error(2)
}

func (m *MockShiftRepository) SaveShift(ctx context.Context, shift domain.Shift) error {
	return m.Called(ctx, shift).Error(0)
}

func (m *MockShiftRepository) FindShiftForUpdate(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, tx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) FindShiftForShare(ctx context.Context, tx pgx.Tx, shiftID string) (*domain.Shift, error) {
	args := m.Called(ctx, tx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}

func (m *MockShiftRepository) CloseShiftInTx(ctx context.Context, tx pgx.Tx, closing domain.ShiftClose) error {
	return m.Called(ctx, tx, closing).Error(0)
}

func (m *MockShiftRepository) UpdateShiftTotalsBatch(ctx context.Context, updates []domain.ShiftTotalsUpdate) error {
	return m.Called(ctx, updates).Error(0)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryWithTx = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockTransactionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	return m.Called(ctx, tx).Error(0)
}

func (m *MockTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, tx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByShift(ctx context.Context, shiftID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, tx, shiftID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsPage(ctx context.Context, window portsrepo.TimeWindow, page portsrepo.PageRequest) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, window, page)
	return transactionPage(args)
}

func (m *MockTransactionRepository) ListClosedShiftTransactionsPage(ctx context.Context, scope portsrepo.ClosedShiftScope, page portsrepo.PageRequest) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, scope, page)
	return transactionPage(args)
}

func transactionPage(args mock.Arguments) ([]domain.Transaction, *string, error) {
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	if args.Get(0) == nil {
		return nil, next, args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), next, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	return m.Called(ctx, tx, txn).Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entry domain.TransactionAuditEntry) error {
	return m.Called(ctx, tx, txn, entry).Error(0)
}

// --- Mock CatalogRepository ---
type MockCatalogRepository struct {
	mock.Mock
}

var _ portsrepo.CatalogReader = (*MockCatalogRepository)(nil)

func (m *MockCatalogRepository) FindCatalogCategories(ctx context.Context, itemNames []string) (map[string]domain.CatalogCategory, error) {
	args := m.Called(ctx, itemNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.CatalogCategory), args.Error(1)
}

// firstPage and pageAfter match page requests by cursor position.
func firstPage(p portsrepo.PageRequest) bool { return p.NextToken == nil }

func pageAfter(token string) func(portsrepo.PageRequest) bool {
	return func(p portsrepo.PageRequest) bool { return p.NextToken != nil && *p.NextToken == token }
}
