package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/models"
)

// ToModelShift converts a domain Shift to a model Shift
func ToModelShift(d domain.Shift) (models.Shift, error) {
	recon, err := ToModelReconciliation(d.Reconciliation)
	if err != nil {
		return models.Shift{}, err
	}
	return models.Shift{
		ShiftID:        d.ShiftID,
		StaffEmail:     d.StaffEmail,
		ShiftPeriod:    d.ShiftPeriod,
		StartTime:      d.StartTime,
		EndTime:        d.EndTime,
		PCRentalTotal:  d.PCRentalTotal,
		ServicesTotal:  d.ServicesTotal,
		ExpensesTotal:  d.ExpensesTotal,
		SystemTotal:    d.SystemTotal,
		TotalCash:      d.TotalCash,
		TotalGcash:     d.TotalGcash,
		TotalAr:        d.TotalAr,
		Reconciliation: recon,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainShift converts a model Shift to a domain Shift
func ToDomainShift(m models.Shift) (domain.Shift, error) {
	recon, err := ToDomainReconciliation(m.Reconciliation)
	if err != nil {
		return domain.Shift{}, fmt.Errorf("shift %s: %w", m.ShiftID, err)
	}
	return domain.Shift{
		ShiftID:     m.ShiftID,
		StaffEmail:  m.StaffEmail,
		ShiftPeriod: m.ShiftPeriod,
		StartTime:   m.StartTime,
		EndTime:     m.EndTime,
		ShiftTotals: domain.ShiftTotals{
			PCRentalTotal: m.PCRentalTotal,
			ServicesTotal: m.ServicesTotal,
			ExpensesTotal: m.ExpensesTotal,
			SystemTotal:   m.SystemTotal,
			TotalCash:     m.TotalCash,
			TotalGcash:    m.TotalGcash,
			TotalAr:       m.TotalAr,
		},
		Reconciliation: recon,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToModelReconciliation encodes a reconciliation result for the JSONB column. Nil stays NULL.
func ToModelReconciliation(r *domain.ReconciliationResult) ([]byte, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode reconciliation: %w", err)
	}
	return b, nil
}

// ToDomainReconciliation decodes the JSONB column. NULL yields nil.
func ToDomainReconciliation(b []byte) (*domain.ReconciliationResult, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var r domain.ReconciliationResult
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("decode reconciliation: %w", err)
	}
	return &r, nil
}
