package accounting

import (
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BucketSum is an amount and count per classification bucket.
type BucketSum struct {
	Amount decimal.Decimal
	Count  int
}

// ShiftAccumulator folds a shift's transactions into reconciliation totals one at a time,
// so the same arithmetic serves a single close and a paged bulk replay.
type ShiftAccumulator struct {
	classifier Classifier
	policy     RentalPolicy

	sales      map[string]decimal.Decimal
	expenses   map[string]decimal.Decimal
	regular    domain.PaymentSplit
	loggedPC   domain.PaymentSplit
	services   decimal.Decimal
	expenseSum decimal.Decimal
	txCount    int
}

// NewShiftAccumulator creates an accumulator. Nil arguments select the standard classifier
// and the cash-remainder rental policy.
func NewShiftAccumulator(c Classifier, p RentalPolicy) *ShiftAccumulator {
	if c == nil {
		c = StandardClassifier{}
	}
	if p == nil {
		p = CashRemainderPolicy{}
	}
	return &ShiftAccumulator{
		classifier: c,
		policy:     p,
		sales:      make(map[string]decimal.Decimal),
		expenses:   make(map[string]decimal.Decimal),
	}
}

// Add folds one transaction in and returns the bucket it landed in.
func (a *ShiftAccumulator) Add(tx domain.Transaction) domain.Bucket {
	c := a.classifier.Classify(tx)
	if c.Bucket == domain.BucketSkip {
		return c.Bucket
	}
	amount := tx.Amount()
	a.txCount++

	switch c.Bucket {
	case domain.BucketSale:
		if tx.Item == domain.ItemPCRental {
			// Logged rentals only inform the payment split; the entered aggregate carries the revenue.
			a.loggedPC = a.loggedPC.Add(c.PaymentMethod, amount)
			return c.Bucket
		}
		a.regular = a.regular.Add(c.PaymentMethod, amount)
		a.services = a.services.Add(amount)
		a.sales[tx.Item] = a.sales[tx.Item].Add(amount)
	case domain.BucketDebtPaid:
		a.regular = a.regular.Add(c.PaymentMethod, amount)
		a.services = a.services.Add(amount)
		a.sales[domain.ItemPaidDebt] = a.sales[domain.ItemPaidDebt].Add(amount)
	case domain.BucketExpense:
		a.expenseSum = a.expenseSum.Add(amount)
		label := ExpenseLabel(tx)
		a.expenses[label] = a.expenses[label].Add(amount)
	case domain.BucketDebtIssued:
		// Goods left without payment: reduces the shift like an expense and is owed per its method.
		a.expenseSum = a.expenseSum.Add(amount)
		a.expenses[domain.ItemNewDebt] = a.expenses[domain.ItemNewDebt].Add(amount)
		a.regular = a.regular.Add(c.PaymentMethod, amount)
	}
	return c.Bucket
}

// Result computes the final figures for the given entered rental aggregate.
// It does not mutate the accumulator, so it may be called with different rental figures.
func (a *ShiftAccumulator) Result(enteredRental decimal.Decimal) domain.ReconciliationResult {
	rental := a.policy.Allocate(enteredRental, a.loggedPC)

	sales := make(map[string]decimal.Decimal, len(a.sales)+1)
	for k, v := range a.sales {
		sales[k] = v
	}
	if !enteredRental.IsZero() {
		sales[domain.ItemPCRental] = enteredRental
	}
	expenses := make(map[string]decimal.Decimal, len(a.expenses))
	for k, v := range a.expenses {
		expenses[k] = v
	}

	totalCash := a.regular.Cash.Add(rental.Cash)
	return domain.ReconciliationResult{
		SalesByCategory:    sales,
		ExpensesByCategory: expenses,
		Cash:               totalCash,
		GCash:              a.regular.GCash.Add(rental.GCash),
		Receivables:        a.regular.Charge.Add(rental.Charge),
		ExpectedCashOnHand: totalCash.Sub(a.expenseSum),
		SystemTotal:        a.services.Sub(a.expenseSum).Add(enteredRental),
		ServicesTotal:      a.services,
		ExpensesTotal:      a.expenseSum,
		PCRentalTotal:      enteredRental,
		LoggedPCRental:     a.loggedPC,
		ImpliedPCCash:      rental.Cash,
		TransactionCount:   a.txCount,
	}
}

// ComputeShiftReconciliation runs a complete transaction set through a fresh accumulator.
func ComputeShiftReconciliation(txs []domain.Transaction, enteredRental decimal.Decimal, c Classifier, p RentalPolicy) domain.ReconciliationResult {
	acc := NewShiftAccumulator(c, p)
	for _, tx := range txs {
		acc.Add(tx)
	}
	return acc.Result(enteredRental)
}
