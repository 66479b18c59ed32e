package mapping

import (
	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/SscSPs/pos_shift_app/internal/models"
)

// ToModelDailyStat converts a domain DailyStat to a model DailyStat
func ToModelDailyStat(d domain.DailyStat) models.DailyStat {
	return models.DailyStat{
		StatDate:  d.Date,
		Sales:     d.Sales,
		Expenses:  d.Expenses,
		TxCount:   d.TxCount,
		UpdatedAt: d.UpdatedAt,
	}
}

// ToDomainDailyStat converts a model DailyStat to a domain DailyStat
func ToDomainDailyStat(m models.DailyStat) domain.DailyStat {
	return domain.DailyStat{
		Date:      m.StatDate,
		Sales:     m.Sales,
		Expenses:  m.Expenses,
		TxCount:   m.TxCount,
		UpdatedAt: m.UpdatedAt,
	}
}
