package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is a bounded work session for one staff member.
type Shift struct {
	ShiftID     string     `json:"shiftID"`
	StaffEmail  string     `json:"staffEmail"`
	ShiftPeriod string     `json:"shiftPeriod"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime,omitempty"`
	ShiftTotals
	// Reconciliation is the full result persisted at close; nil while open or
	// for shifts closed before results were stored.
	Reconciliation *ReconciliationResult `json:"reconciliation,omitempty"`
	AuditFields
}

// IsOpen reports whether the shift has not been closed yet.
func (s Shift) IsOpen() bool {
	return s.EndTime == nil
}

// ShiftTotals are the figures stored on the shift record at close.
type ShiftTotals struct {
	PCRentalTotal decimal.Decimal `json:"pcRentalTotal"`
	ServicesTotal decimal.Decimal `json:"servicesTotal"`
	ExpensesTotal decimal.Decimal `json:"expensesTotal"`
	SystemTotal   decimal.Decimal `json:"systemTotal"`
	TotalCash     decimal.Decimal `json:"totalCash"`
	TotalGcash    decimal.Decimal `json:"totalGcash"`
	TotalAr       decimal.Decimal `json:"totalAr"`
}

// Equal compares by value, ignoring decimal representation (100 == 100.00).
func (t ShiftTotals) Equal(o ShiftTotals) bool {
	return t.PCRentalTotal.Equal(o.PCRentalTotal) &&
		t.ServicesTotal.Equal(o.ServicesTotal) &&
		t.ExpensesTotal.Equal(o.ExpensesTotal) &&
		t.SystemTotal.Equal(o.SystemTotal) &&
		t.TotalCash.Equal(o.TotalCash) &&
		t.TotalGcash.Equal(o.TotalGcash) &&
		t.TotalAr.Equal(o.TotalAr)
}

// Sub returns the field-wise difference t - o.
func (t ShiftTotals) Sub(o ShiftTotals) ShiftTotals {
	return ShiftTotals{
		PCRentalTotal: t.PCRentalTotal.Sub(o.PCRentalTotal),
		ServicesTotal: t.ServicesTotal.Sub(o.ServicesTotal),
		ExpensesTotal: t.ExpensesTotal.Sub(o.ExpensesTotal),
		SystemTotal:   t.SystemTotal.Sub(o.SystemTotal),
		TotalCash:     t.TotalCash.Sub(o.TotalCash),
		TotalGcash:    t.TotalGcash.Sub(o.TotalGcash),
		TotalAr:       t.TotalAr.Sub(o.TotalAr),
	}
}

// ShiftClose is the full overwrite written when a shift is closed.
type ShiftClose struct {
	ShiftID        string
	Totals         ShiftTotals
	Reconciliation ReconciliationResult
	EndTime        time.Time
	ClosedBy       string
}

// ShiftTotalsUpdate is one backfill correction.
type ShiftTotalsUpdate struct {
	ShiftID        string
	Totals         ShiftTotals
	Reconciliation ReconciliationResult
	UpdatedAt      time.Time
	UpdatedBy      string
	// ExpectedUpdatedAt is the shift's last_updated_at when the correction was computed.
	ExpectedUpdatedAt time.Time
}
