package domain

import "github.com/shopspring/decimal"

// Bucket is the mutually exclusive classification of a transaction.
type Bucket string

const (
	BucketSkip       Bucket = "Skip" // soft-deleted or unclassifiable; contributes nothing
	BucketSale       Bucket = "Sale"
	BucketExpense    Bucket = "Expense"
	BucketDebtIssued Bucket = "DebtIssued"
	BucketDebtPaid   Bucket = "DebtPaid"
)

// Classification is the classifier's verdict for one transaction.
type Classification struct {
	Bucket        Bucket        `json:"bucket"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}

// PaymentSplit holds amounts per payment method. Charge is the receivables (AR) column.
type PaymentSplit struct {
	Cash   decimal.Decimal `json:"cash"`
	GCash  decimal.Decimal `json:"gcash"`
	Charge decimal.Decimal `json:"charge"`
}

// Add returns a copy with amount added to the method's column.
func (p PaymentSplit) Add(method PaymentMethod, amount decimal.Decimal) PaymentSplit {
	switch method {
	case PaymentGCash:
		p.GCash = p.GCash.Add(amount)
	case PaymentCharge:
		p.Charge = p.Charge.Add(amount)
	default:
		p.Cash = p.Cash.Add(amount)
	}
	return p
}

// Total is the sum of all three columns.
func (p PaymentSplit) Total() decimal.Decimal {
	return p.Cash.Add(p.GCash).Add(p.Charge)
}

// ReconciliationResult is the engine output for one shift.
type ReconciliationResult struct {
	SalesByCategory    map[string]decimal.Decimal `json:"salesByCategory"`
	ExpensesByCategory map[string]decimal.Decimal `json:"expensesByCategory"`
	Cash               decimal.Decimal            `json:"cash"`
	GCash              decimal.Decimal            `json:"gcash"`
	Receivables        decimal.Decimal            `json:"receivables"`
	ExpectedCashOnHand decimal.Decimal            `json:"expectedCashOnHand"`
	SystemTotal        decimal.Decimal            `json:"systemTotal"`
	ServicesTotal      decimal.Decimal            `json:"servicesTotal"`
	ExpensesTotal      decimal.Decimal            `json:"expensesTotal"`
	PCRentalTotal      decimal.Decimal            `json:"pcRentalTotal"`
	LoggedPCRental     PaymentSplit               `json:"loggedPcRental"`
	ImpliedPCCash      decimal.Decimal            `json:"impliedPcCash"`
	TransactionCount   int                        `json:"transactionCount"`
}

// Totals projects the result onto the fields stored on the shift record.
func (r ReconciliationResult) Totals() ShiftTotals {
	return ShiftTotals{
		PCRentalTotal: r.PCRentalTotal,
		ServicesTotal: r.ServicesTotal,
		ExpensesTotal: r.ExpensesTotal,
		SystemTotal:   r.SystemTotal,
		TotalCash:     r.Cash,
		TotalGcash:    r.GCash,
		TotalAr:       r.Receivables,
	}
}
