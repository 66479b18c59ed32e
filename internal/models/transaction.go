package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID     string           `db:"transaction_id"`
	Item              string           `db:"item"`
	Quantity          *decimal.Decimal `db:"quantity"`   // Nullable
	UnitPrice         *decimal.Decimal `db:"unit_price"` // Nullable
	Total             *decimal.Decimal `db:"total"`      // Nullable; authoritative when set
	PaymentMethod     *string          `db:"payment_method"`
	ExpenseType       *string          `db:"expense_type"`
	FinancialCategory *string          `db:"financial_category"`
	ShiftID           *string          `db:"shift_id"`
	CustomerID        *string          `db:"customer_id"`
	CustomerName      *string          `db:"customer_name"`
	Notes             *string          `db:"notes"`
	IsDeleted         bool             `db:"is_deleted"`
	Timestamp         time.Time        `db:"timestamp"`
	AuditFields
}

// TransactionAuditLog is a row of the transaction_audit_log table.
type TransactionAuditLog struct {
	EntryID       string    `db:"entry_id"`
	TransactionID string    `db:"transaction_id"`
	Action        string    `db:"action"`
	Actor         string    `db:"actor"`
	Reason        string    `db:"reason"`
	Before        []byte    `db:"before_state"` // JSONB
	After         []byte    `db:"after_state"`  // JSONB
	CreatedAt     time.Time `db:"created_at"`
}
