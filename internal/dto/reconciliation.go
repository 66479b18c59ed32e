package dto

import (
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
)

// BackfillRequest selects closed shifts whose start time is in [From, To).
type BackfillRequest struct {
	From   time.Time `json:"from" binding:"required"`
	To     time.Time `json:"to" binding:"required"`
	DryRun bool      `json:"dryRun"`
}

// RebuildStatsRequest bounds the daily statistics rebuild. Both bounds are optional
// and are widened to whole business days.
type RebuildStatsRequest struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// AuditShiftParams picks the two rule sets to compare. Empty values use the service defaults.
type AuditShiftParams struct {
	Primary   string `form:"primary" binding:"omitempty,oneof=standard catalog text"`
	Alternate string `form:"alternate" binding:"omitempty,oneof=standard catalog text"`
}

// ListDailyStatsParams bounds a daily statistics query by business date, inclusive.
type ListDailyStatsParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// RunReportResponse is a bulk run report plus its rendered status line.
type RunReportResponse struct {
	domain.RunReport
	Status string `json:"status"`
}

// ToRunReportResponse converts a domain.RunReport to RunReportResponse DTO.
func ToRunReportResponse(r *domain.RunReport) RunReportResponse {
	return RunReportResponse{RunReport: *r, Status: r.Status()}
}

// ListDailyStatsResponse wraps the stored daily summaries.
type ListDailyStatsResponse struct {
	Stats []domain.DailyStat `json:"stats"`
}
