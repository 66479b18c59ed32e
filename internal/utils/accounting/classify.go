package accounting

import (
	"strings"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
)

// Classifier decides the bucket and payment method of a transaction.
type Classifier interface {
	Classify(tx domain.Transaction) domain.Classification
	Name() string
}

// Rule set names accepted by ClassifierByName.
const (
	RuleSetStandard = "standard"
	RuleSetCatalog  = "catalog"
	RuleSetText     = "text"
)

// Classify is the single classification policy every total in the system is built from.
//
// Priority: soft-deleted transactions are skipped; an explicit financial category wins;
// otherwise the reserved item labels decide and anything else is a sale.
func Classify(tx domain.Transaction) domain.Classification {
	if tx.IsDeleted {
		return domain.Classification{Bucket: domain.BucketSkip}
	}
	method := tx.EffectivePaymentMethod()
	if tx.FinancialCategory != nil && tx.FinancialCategory.IsKnown() {
		return domain.Classification{Bucket: bucketForCategory(*tx.FinancialCategory), PaymentMethod: method}
	}
	return domain.Classification{Bucket: bucketForItem(tx.Item), PaymentMethod: method}
}

func bucketForCategory(c domain.FinancialCategory) domain.Bucket {
	if c == domain.CategoryRevenue {
		return domain.BucketSale
	}
	return domain.BucketExpense
}

func bucketForItem(item string) domain.Bucket {
	switch item {
	case domain.ItemExpenses:
		return domain.BucketExpense
	case domain.ItemNewDebt:
		return domain.BucketDebtIssued
	case domain.ItemPaidDebt:
		return domain.BucketDebtPaid
	default:
		return domain.BucketSale
	}
}

// StandardClassifier adapts Classify to the Classifier interface.
type StandardClassifier struct{}

func (StandardClassifier) Classify(tx domain.Transaction) domain.Classification { return Classify(tx) }
func (StandardClassifier) Name() string                                         { return RuleSetStandard }

// TextClassifier reproduces the legacy receipt/detail rules: item labels only,
// the financial category tag is ignored.
type TextClassifier struct{}

func (TextClassifier) Classify(tx domain.Transaction) domain.Classification {
	if tx.IsDeleted {
		return domain.Classification{Bucket: domain.BucketSkip}
	}
	return domain.Classification{Bucket: bucketForItem(tx.Item), PaymentMethod: tx.EffectivePaymentMethod()}
}

func (TextClassifier) Name() string { return RuleSetText }

// CatalogClassifier reproduces the legacy list-view rules: reserved labels first, then the
// item's current catalog category. Items missing from the catalog are not counted.
type CatalogClassifier struct {
	Categories map[string]domain.CatalogCategory
}

func (c CatalogClassifier) Classify(tx domain.Transaction) domain.Classification {
	if tx.IsDeleted {
		return domain.Classification{Bucket: domain.BucketSkip}
	}
	method := tx.EffectivePaymentMethod()
	switch tx.Item {
	case domain.ItemExpenses, domain.ItemNewDebt, domain.ItemPaidDebt, domain.ItemPCRental:
		return domain.Classification{Bucket: bucketForItem(tx.Item), PaymentMethod: method}
	}
	switch c.Categories[tx.Item] {
	case domain.CatalogDebit:
		return domain.Classification{Bucket: domain.BucketSale, PaymentMethod: method}
	case domain.CatalogCredit:
		return domain.Classification{Bucket: domain.BucketExpense, PaymentMethod: method}
	default:
		return domain.Classification{Bucket: domain.BucketSkip, PaymentMethod: method}
	}
}

func (CatalogClassifier) Name() string { return RuleSetCatalog }

// ClassifierByName resolves a rule set name. The catalog map is only used by the catalog rule set.
func ClassifierByName(name string, catalog map[string]domain.CatalogCategory) (Classifier, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", RuleSetStandard:
		return StandardClassifier{}, true
	case RuleSetText:
		return TextClassifier{}, true
	case RuleSetCatalog:
		return CatalogClassifier{Categories: catalog}, true
	}
	return nil, false
}

// IsCapitalExpense reports whether an expense is an asset purchase (CAPEX or inventory)
// that belongs on the balance sheet rather than in operating expenses.
func IsCapitalExpense(tx domain.Transaction) bool {
	if tx.FinancialCategory != nil && tx.FinancialCategory.IsKnown() {
		return *tx.FinancialCategory == domain.CategoryCAPEX || *tx.FinancialCategory == domain.CategoryInventoryAsset
	}
	t := strings.ToLower(tx.ExpenseType)
	for _, kw := range []string{"capex", "capital", "equipment", "inventory", "restock"} {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// ExpenseLabel is the category key an expense is grouped under.
func ExpenseLabel(tx domain.Transaction) string {
	if tx.Item == domain.ItemNewDebt {
		return domain.ItemNewDebt
	}
	if label := strings.TrimSpace(tx.ExpenseType); label != "" {
		return label
	}
	if tx.FinancialCategory != nil && tx.FinancialCategory.IsKnown() {
		return string(*tx.FinancialCategory)
	}
	return "Uncategorized"
}

// SumByBucket totals amounts per bucket. Skipped transactions are not included.
func SumByBucket(txs []domain.Transaction, c Classifier) map[domain.Bucket]BucketSum {
	sums := make(map[domain.Bucket]BucketSum)
	for _, tx := range txs {
		b := c.Classify(tx).Bucket
		if b == domain.BucketSkip {
			continue
		}
		s := sums[b]
		s.Amount = s.Amount.Add(tx.Amount())
		s.Count++
		sums[b] = s
	}
	return sums
}
