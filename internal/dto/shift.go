package dto

import (
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// StartShiftRequest opens a shift for the authenticated staff member unless StaffEmail overrides it.
type StartShiftRequest struct {
	StaffEmail  string `json:"staffEmail" binding:"omitempty,email"`
	ShiftPeriod string `json:"shiftPeriod" binding:"max=32"`
}

// CloseShiftRequest carries the operator-entered PC rental aggregate. It is required;
// zero is a valid figure, absence is not.
type CloseShiftRequest struct {
	PCRentalTotal *decimal.Decimal `json:"pcRentalTotal" binding:"required" swaggertype:"string" example:"500.00"`
}

// ShiftResponse defines the data returned for a shift.
type ShiftResponse struct {
	ShiftID        string                       `json:"shiftID"`
	StaffEmail     string                       `json:"staffEmail"`
	ShiftPeriod    string                       `json:"shiftPeriod"`
	StartTime      time.Time                    `json:"startTime"`
	EndTime        *time.Time                   `json:"endTime,omitempty"`
	IsOpen         bool                         `json:"isOpen"`
	Totals         domain.ShiftTotals           `json:"totals"`
	Reconciliation *domain.ReconciliationResult `json:"reconciliation,omitempty"`
	CreatedAt      time.Time                    `json:"createdAt"`
	CreatedBy      string                       `json:"createdBy"`
	LastUpdatedAt  time.Time                    `json:"lastUpdatedAt"`
	LastUpdatedBy  string                       `json:"lastUpdatedBy"`
}

// ToShiftResponse converts a domain.Shift to ShiftResponse DTO
func ToShiftResponse(s *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ShiftID:        s.ShiftID,
		StaffEmail:     s.StaffEmail,
		ShiftPeriod:    s.ShiftPeriod,
		StartTime:      s.StartTime,
		EndTime:        s.EndTime,
		IsOpen:         s.IsOpen(),
		Totals:         s.ShiftTotals,
		Reconciliation: s.Reconciliation,
		CreatedAt:      s.CreatedAt,
		CreatedBy:      s.CreatedBy,
		LastUpdatedAt:  s.LastUpdatedAt,
		LastUpdatedBy:  s.LastUpdatedBy,
	}
}
