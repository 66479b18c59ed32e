package dto

import (
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordTransactionRequest defines a sale, expense or debt entry made against an open shift.
// Sales need Quantity and UnitPrice (or an explicit Total); expenses need Total.
type RecordTransactionRequest struct {
	Item              string                    `json:"item" binding:"required,max=255"`
	Quantity          *decimal.Decimal          `json:"quantity" swaggertype:"string"`
	UnitPrice         *decimal.Decimal          `json:"unitPrice" swaggertype:"string"`
	Total             *decimal.Decimal          `json:"total" swaggertype:"string"`
	PaymentMethod     domain.PaymentMethod      `json:"paymentMethod" binding:"omitempty,oneof=Cash GCash Charge"`
	ExpenseType       string                    `json:"expenseType" binding:"max=255"`
	FinancialCategory *domain.FinancialCategory `json:"financialCategory" binding:"omitempty,oneof=Revenue OPEX CAPEX COGS InventoryAsset"`
	CustomerID        *string                   `json:"customerID"`
	CustomerName      *string                   `json:"customerName"`
	Notes             string                    `json:"notes"`
	Timestamp         *time.Time                `json:"timestamp"` // Optional: defaults to now
}

// EditTransactionRequest changes amount, date or notes. Reason is mandatory for the audit trail.
type EditTransactionRequest struct {
	Total     *decimal.Decimal `json:"total" swaggertype:"string"`
	Timestamp *time.Time       `json:"timestamp"`
	Notes     *string          `json:"notes"`
	Reason    string           `json:"reason" binding:"required"`
}

// DeleteTransactionRequest soft-deletes a transaction. Reason is mandatory for the audit trail.
type DeleteTransactionRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                    `json:"transactionID"`
	Item              string                    `json:"item"`
	Quantity          *decimal.Decimal          `json:"quantity,omitempty"`
	UnitPrice         *decimal.Decimal          `json:"unitPrice,omitempty"`
	Amount            decimal.Decimal           `json:"amount"`
	PaymentMethod     domain.PaymentMethod      `json:"paymentMethod"`
	ExpenseType       string                    `json:"expenseType,omitempty"`
	FinancialCategory *domain.FinancialCategory `json:"financialCategory,omitempty"`
	ShiftID           *string                   `json:"shiftID,omitempty"`
	CustomerName      *string                   `json:"customerName,omitempty"`
	Notes             string                    `json:"notes,omitempty"`
	IsDeleted         bool                      `json:"isDeleted"`
	Timestamp         time.Time                 `json:"timestamp"`
	LastUpdatedBy     string                    `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     txn.TransactionID,
		Item:              txn.Item,
		Quantity:          txn.Quantity,
		UnitPrice:         txn.UnitPrice,
		Amount:            txn.Amount(),
		PaymentMethod:     txn.EffectivePaymentMethod(),
		ExpenseType:       txn.ExpenseType,
		FinancialCategory: txn.FinancialCategory,
		ShiftID:           txn.ShiftID,
		CustomerName:      txn.CustomerName,
		Notes:             txn.Notes,
		IsDeleted:         txn.IsDeleted,
		Timestamp:         txn.Timestamp,
		LastUpdatedBy:     txn.LastUpdatedBy,
	}
}
