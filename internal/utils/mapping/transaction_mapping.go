package mapping

import (
	"encoding/json"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	var category *string
	if d.FinancialCategory != nil {
		c := string(*d.FinancialCategory)
		category = &c
	}
	return models.Transaction{
		TransactionID:     d.TransactionID,
		Item:              d.Item,
		Quantity:          d.Quantity,
		UnitPrice:         d.UnitPrice,
		Total:             d.Total,
		PaymentMethod:     optionalString(string(d.PaymentMethod)),
		ExpenseType:       optionalString(d.ExpenseType),
		FinancialCategory: category,
		ShiftID:           d.ShiftID,
		CustomerID:        d.CustomerID,
		CustomerName:      d.CustomerName,
		Notes:             optionalString(d.Notes),
		IsDeleted:         d.IsDeleted,
		Timestamp:         d.Timestamp,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	var category *domain.FinancialCategory
	if m.FinancialCategory != nil {
		c := domain.FinancialCategory(*m.FinancialCategory)
		category = &c
	}
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		Item:              m.Item,
		Quantity:          m.Quantity,
		UnitPrice:         m.UnitPrice,
		Total:             m.Total,
		PaymentMethod:     domain.PaymentMethod(derefString(m.PaymentMethod)),
		ExpenseType:       derefString(m.ExpenseType),
		FinancialCategory: category,
		ShiftID:           m.ShiftID,
		CustomerID:        m.CustomerID,
		CustomerName:      m.CustomerName,
		Notes:             derefString(m.Notes),
		IsDeleted:         m.IsDeleted,
		Timestamp:         m.Timestamp,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(m []models.Transaction) []domain.Transaction {
	if m == nil {
		return nil
	}
	d := make([]domain.Transaction, len(m))
	for i, mt := range m {
		d[i] = ToDomainTransaction(mt)
	}
	return d
}

// ToModelTransactionAuditLog converts an audit entry, snapshotting Before/After as JSON.
func ToModelTransactionAuditLog(d domain.TransactionAuditEntry) (models.TransactionAuditLog, error) {
	before, err := json.Marshal(d.Before)
	if err != nil {
		return models.TransactionAuditLog{}, err
	}
	after, err := json.Marshal(d.After)
	if err != nil {
		return models.TransactionAuditLog{}, err
	}
	return models.TransactionAuditLog{
		EntryID:       d.EntryID,
		TransactionID: d.TransactionID,
		Action:        d.Action,
		Actor:         d.Actor,
		Reason:        d.Reason,
		Before:        before,
		After:         after,
		CreatedAt:     d.CreatedAt,
	}, nil
}
