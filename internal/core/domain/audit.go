package domain

import "github.com/shopspring/decimal"

// DataIntegrityWarning flags a transaction two rule sets classify differently.
// It is reported, never returned as an error.
type DataIntegrityWarning struct {
	TransactionID   string          `json:"transactionID"`
	Item            string          `json:"item"`
	Amount          decimal.Decimal `json:"amount"`
	PrimaryBucket   Bucket          `json:"primaryBucket"`
	AlternateBucket Bucket          `json:"alternateBucket"`
	Message         string          `json:"message"`
}

// AuditReport compares a shift's totals under two classification rule sets.
type AuditReport struct {
	ShiftID             string                 `json:"shiftID"`
	PrimaryRuleSet      string                 `json:"primaryRuleSet"`
	AlternateRuleSet    string                 `json:"alternateRuleSet"`
	TransactionsAudited int                    `json:"transactionsAudited"`
	Mismatches          []DataIntegrityWarning `json:"mismatches"`
	PrimaryTotals       ShiftTotals            `json:"primaryTotals"`
	AlternateTotals     ShiftTotals            `json:"alternateTotals"`
	Difference          ShiftTotals            `json:"difference"` // primary - alternate
	StoredTotals        *ShiftTotals           `json:"storedTotals,omitempty"`
}

// HasDivergence reports whether any transaction or total disagrees.
func (r AuditReport) HasDivergence() bool {
	return len(r.Mismatches) > 0 || !r.PrimaryTotals.Equal(r.AlternateTotals)
}
