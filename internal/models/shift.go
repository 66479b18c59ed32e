package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a row of the shifts table.
type Shift struct {
	ShiftID        string          `db:"shift_id"`
	StaffEmail     string          `db:"staff_email"`
	ShiftPeriod    string          `db:"shift_period"`
	StartTime      time.Time       `db:"start_time"`
	EndTime        *time.Time      `db:"end_time"` // Nullable; NULL while open
	PCRentalTotal  decimal.Decimal `db:"pc_rental_total"`
	ServicesTotal  decimal.Decimal `db:"services_total"`
	ExpensesTotal  decimal.Decimal `db:"expenses_total"`
	SystemTotal    decimal.Decimal `db:"system_total"`
	TotalCash      decimal.Decimal `db:"total_cash"`
	TotalGcash     decimal.Decimal `db:"total_gcash"`
	TotalAr        decimal.Decimal `db:"total_ar"`
	Reconciliation []byte          `db:"reconciliation"` // Nullable JSONB
	AuditFields
}
