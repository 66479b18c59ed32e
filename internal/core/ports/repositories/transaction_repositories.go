package repositories

import (
	"context"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionForUpdate reads a transaction, including soft-deleted ones, and locks its row within tx.
	FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByShift retrieves every transaction attached to a shift, deleted ones included.
	ListTransactionsByShift(ctx context.Context, shiftID string) ([]domain.Transaction, error)

	// ListTransactionsByShiftInTx is ListTransactionsByShift inside a caller-owned transaction.
	ListTransactionsByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) ([]domain.Transaction, error)

	// ListTransactionsPage retrieves one page of transactions with timestamps in the window,
	// ordered by (timestamp, transaction_id).
	ListTransactionsPage(ctx context.Context, window TimeWindow, page PageRequest) ([]domain.Transaction, *string, error)

	// ListClosedShiftTransactionsPage retrieves one page of transactions belonging to the shifts
	// in scope, ordered by (timestamp, transaction_id).
	ListClosedShiftTransactionsPage(ctx context.Context, scope ClosedShiftScope, page PageRequest) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransactionInTx inserts a new transaction inside tx.
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error

	// UpdateTransactionInTx overwrites a transaction that is not soft-deleted and appends an audit entry.
	// A deleted or missing row fails with apperrors.ErrConflict.
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entry domain.TransactionAuditEntry) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends TransactionRepositoryFacade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
