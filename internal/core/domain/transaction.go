package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how a transaction was settled.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "Cash"
	PaymentGCash  PaymentMethod = "GCash"
	PaymentCharge PaymentMethod = "Charge"
)

// IsKnown reports whether the method is one of the three recognized values.
func (p PaymentMethod) IsKnown() bool {
	switch p {
	case PaymentCash, PaymentGCash, PaymentCharge:
		return true
	}
	return false
}

// FinancialCategory is the optional explicit tag that overrides text-based classification.
type FinancialCategory string

const (
	CategoryRevenue        FinancialCategory = "Revenue"
	CategoryOPEX           FinancialCategory = "OPEX"
	CategoryCAPEX          FinancialCategory = "CAPEX"
	CategoryCOGS           FinancialCategory = "COGS"
	CategoryInventoryAsset FinancialCategory = "InventoryAsset"
)

// IsKnown reports whether the tag is one of the recognized categories.
func (c FinancialCategory) IsKnown() bool {
	switch c {
	case CategoryRevenue, CategoryOPEX, CategoryCAPEX, CategoryCOGS, CategoryInventoryAsset:
		return true
	}
	return false
}

// Reserved item labels that drive classification.
const (
	ItemExpenses = "Expenses"
	ItemNewDebt  = "New Debt"
	ItemPaidDebt = "Paid Debt"
	ItemPCRental = "PC Rental"
)

// Transaction is one financial event recorded at the counter or by an admin.
type Transaction struct {
	TransactionID     string             `json:"transactionID"`
	Item              string             `json:"item"`
	Quantity          *decimal.Decimal   `json:"quantity,omitempty"`
	UnitPrice         *decimal.Decimal   `json:"unitPrice,omitempty"`
	Total             *decimal.Decimal   `json:"total,omitempty"` // authoritative amount when present
	PaymentMethod     PaymentMethod      `json:"paymentMethod,omitempty"`
	ExpenseType       string             `json:"expenseType,omitempty"`
	FinancialCategory *FinancialCategory `json:"financialCategory,omitempty"`
	ShiftID           *string            `json:"shiftID,omitempty"`
	CustomerID        *string            `json:"customerID,omitempty"`
	CustomerName      *string            `json:"customerName,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	IsDeleted         bool               `json:"isDeleted"`
	Timestamp         time.Time          `json:"timestamp"`
	AuditFields
}

// Amount returns the transaction's monetary value: Total when present, otherwise
// Quantity x UnitPrice when both are present, otherwise zero.
func (t Transaction) Amount() decimal.Decimal {
	if t.Total != nil {
		return *t.Total
	}
	if t.Quantity != nil && t.UnitPrice != nil {
		return t.Quantity.Mul(*t.UnitPrice)
	}
	return decimal.Zero
}

// EffectivePaymentMethod applies the legacy default of Cash for absent or unrecognized values.
func (t Transaction) EffectivePaymentMethod() PaymentMethod {
	if t.PaymentMethod.IsKnown() {
		return t.PaymentMethod
	}
	return PaymentCash
}

// BelongsToShift reports whether the transaction is attached to the given shift.
func (t Transaction) BelongsToShift(shiftID string) bool {
	return t.ShiftID != nil && *t.ShiftID == shiftID
}

// TransactionAuditEntry records who changed a transaction and why.
type TransactionAuditEntry struct {
	EntryID       string       `json:"entryID"`
	TransactionID string       `json:"transactionID"`
	Action        string       `json:"action"` // EDIT or DELETE
	Actor         string       `json:"actor"`
	Reason        string       `json:"reason"`
	Before        *Transaction `json:"before,omitempty"`
	After         *Transaction `json:"after,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
}

const (
	AuditActionEdit   = "EDIT"
	AuditActionDelete = "DELETE"
)
