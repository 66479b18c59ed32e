package pgsql

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/SscSPs/pos_shift_app/internal/apperrors"
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pos_shift_app/internal/core/ports/repositories"
	"github.com/SscSPs/pos_shift_app/internal/models"
	"github.com/SscSPs/pos_shift_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `t.transaction_id, t.item, t.quantity, t.unit_price, t.total, t.payment_method,
	t.expense_type, t.financial_category, t.shift_id, t.customer_id, t.customer_name, t.notes,
	t.is_deleted, t."timestamp", t.created_at, t.created_by, t.last_updated_at, t.last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for counter transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.Item,
		&m.Quantity,
		&m.UnitPrice,
		&m.Total,
		&m.PaymentMethod,
		&m.ExpenseType,
		&m.FinancialCategory,
		&m.ShiftID,
		&m.CustomerID,
		&m.CustomerName,
		&m.Notes,
		&m.IsDeleted,
		&m.Timestamp,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func collectTransactions(rows pgx.Rows, capacity int) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := make([]domain.Transaction, 0, capacity)
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewIOError("failed to scan transaction row", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewIOError("error iterating transaction rows", err)
	}
	return txns, nil
}

// FindTransactionForUpdate reads a transaction, soft-deleted or not, and holds its row lock until tx ends.
func (r *PgxTransactionRepository) FindTransactionForUpdate(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1 FOR UPDATE;`
	txn, err := scanTransaction(tx.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewIOError("failed to find transaction "+transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) listByShift(ctx context.Context, q querier, shiftID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.shift_id = $1
		ORDER BY t."timestamp", t.transaction_id;
	`
	rows, err := q.Query(ctx, query, shiftID)
	if err != nil {
		return nil, apperrors.NewIOError("failed to query transactions for shift "+shiftID, err)
	}
	return collectTransactions(rows, 64)
}

// ListTransactionsByShift retrieves every transaction attached to a shift.
func (r *PgxTransactionRepository) ListTransactionsByShift(ctx context.Context, shiftID string) ([]domain.Transaction, error) {
	return r.listByShift(ctx, r.Pool, shiftID)
}

// ListTransactionsByShiftInTx reads the shift's transactions inside the closing transaction.
func (r *PgxTransactionRepository) ListTransactionsByShiftInTx(ctx context.Context, tx pgx.Tx, shiftID string) ([]domain.Transaction, error) {
	return r.listByShift(ctx, tx, shiftID)
}

func (r *PgxTransactionRepository) listPage(ctx context.Context, from, where string, window portsrepo.TimeWindow, windowCol string, closedBefore time.Time, page portsrepo.PageRequest) ([]domain.Transaction, *string, error) {
	limit := normalizeLimit(page.Limit)
	args := []any{}

	windowSQL, args := windowClause(windowCol, window, args)
	closed, args := closedBeforeClause("s.end_time", closedBefore, args)
	windowSQL += closed
	cursor, args, err := cursorClause(`t."timestamp"`, "t.transaction_id", page.NextToken, args)
	if err != nil {
		return nil, nil, err
	}
	args = append(args, limit+1)
	query := `SELECT ` + transactionColumns + ` FROM ` + from + ` WHERE ` + where + windowSQL + cursor +
		` ORDER BY t."timestamp", t.transaction_id LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewIOError("failed to query transaction page", err)
	}
	txns, err := collectTransactions(rows, limit+1)
	if err != nil {
		return nil, nil, err
	}
	txns, next := trimPage(txns, limit, func(t domain.Transaction) (time.Time, string) {
		return t.Timestamp, t.TransactionID
	})
	return txns, next, nil
}

// ListTransactionsPage retrieves one keyset page of transactions whose timestamp falls in the window.
func (r *PgxTransactionRepository) ListTransactionsPage(ctx context.Context, window portsrepo.TimeWindow, page portsrepo.PageRequest) ([]domain.Transaction, *string, error) {
	return r.listPage(ctx, "transactions t", "TRUE", window, `t."timestamp"`, time.Time{}, page)
}

// ListClosedShiftTransactionsPage retrieves one keyset page of transactions belonging to
// the closed shifts in scope.
func (r *PgxTransactionRepository) ListClosedShiftTransactionsPage(ctx context.Context, scope portsrepo.ClosedShiftScope, page portsrepo.PageRequest) ([]domain.Transaction, *string, error) {
	return r.listPage(ctx, "transactions t JOIN shifts s ON s.shift_id = t.shift_id", "s.end_time IS NOT NULL",
		scope.Window, "s.start_time", scope.ClosedBefore, page)
}

// SaveTransactionInTx inserts a transaction inside the caller's transaction.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, item, quantity, unit_price, total, payment_method, expense_type,
			financial_category, shift_id, customer_id, customer_name, notes, is_deleted, "timestamp",
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.Item,
		m.Quantity,
		m.UnitPrice,
		m.Total,
		m.PaymentMethod,
		m.ExpenseType,
		m.FinancialCategory,
		m.ShiftID,
		m.CustomerID,
		m.CustomerName,
		m.Notes,
		m.IsDeleted,
		m.Timestamp,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.NewAppError(409, "transaction "+txn.TransactionID+" already exists", apperrors.ErrDuplicate)
		}
		return apperrors.NewIOError("failed to insert transaction "+txn.TransactionID, err)
	}
	return nil
}

const updateTransactionQuery = `
	UPDATE transactions
	SET item = $2, quantity = $3, unit_price = $4, total = $5, payment_method = $6,
	    expense_type = $7, financial_category = $8, customer_id = $9, customer_name = $10,
	    notes = $11, is_deleted = $12, "timestamp" = $13, last_updated_at = $14, last_updated_by = $15
	WHERE transaction_id = $1 AND is_deleted = FALSE;
`

// transactionUpdateArgs lines m up with the placeholders of updateTransactionQuery.
func transactionUpdateArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.Item,
		m.Quantity,
		m.UnitPrice,
		m.Total,
		m.PaymentMethod,
		m.ExpenseType,
		m.FinancialCategory,
		m.CustomerID,
		m.CustomerName,
		m.Notes,
		m.IsDeleted,
		m.Timestamp,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// UpdateTransactionInTx overwrites a live transaction and appends the audit entry in the same
// transaction. A row that is already soft-deleted is never rewritten; that surfaces as ErrConflict.
func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction, entry domain.TransactionAuditEntry) error {
	m := mapping.ToModelTransaction(txn)
	tag, err := tx.Exec(ctx, updateTransactionQuery, transactionUpdateArgs(m)...)
	if err != nil {
		return apperrors.NewIOError("failed to update transaction "+txn.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewConflictError("transaction " + txn.TransactionID + " is missing or already deleted")
	}

	logRow, err := mapping.ToModelTransactionAuditLog(entry)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode audit entry for transaction "+txn.TransactionID, err)
	}
	auditQuery := `
		INSERT INTO transaction_audit_log (entry_id, transaction_id, action, actor, reason, before_state, after_state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, auditQuery,
		logRow.EntryID,
		logRow.TransactionID,
		logRow.Action,
		logRow.Actor,
		logRow.Reason,
		logRow.Before,
		logRow.After,
		logRow.CreatedAt,
	)
	if err != nil {
		return apperrors.NewIOError("failed to write audit entry for transaction "+txn.TransactionID, err)
	}
	return nil
}
