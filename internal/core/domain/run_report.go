package domain

import (
	"fmt"
	"time"
)

// RunMode names the bulk operation that produced a RunReport.
type RunMode string

const (
	RunModeBackfill     RunMode = "BACKFILL"
	RunModeDailyRebuild RunMode = "DAILY_REBUILD"
)

// ItemError is a non-fatal per-item problem collected during a bulk run.
type ItemError struct {
	ItemID  string `json:"itemID"`
	Message string `json:"message"`
}

// RunReport summarizes a bulk run, including partial progress when it stopped early.
type RunReport struct {
	RunID            string      `json:"runID"`
	Mode             RunMode     `json:"mode"`
	DryRun           bool        `json:"dryRun"`
	StartedAt        time.Time   `json:"startedAt"`
	FinishedAt       time.Time   `json:"finishedAt"`
	Scanned          int         `json:"scanned"`          // transactions read
	Examined         int         `json:"examined"`         // shifts or days evaluated
	Pending          int         `json:"pending"`          // items that needed a write
	Written          int         `json:"written"`          // items committed
	BatchesCommitted int         `json:"batchesCommitted"` // successful batch commits
	Completed        bool        `json:"completed"`
	Cancelled        bool        `json:"cancelled"`
	StoppedAt        string      `json:"stoppedAt,omitempty"` // first item of the failed batch
	ItemErrors       []ItemError `json:"itemErrors"`
}

// AddItemError records a non-fatal problem.
func (r *RunReport) AddItemError(itemID, msg string) {
	r.ItemErrors = append(r.ItemErrors, ItemError{ItemID: itemID, Message: msg})
}

// Status renders a one-line human summary.
func (r RunReport) Status() string {
	switch {
	case r.DryRun && r.Completed:
		return fmt.Sprintf("dry run completed: %d of %d examined need a write", r.Pending, r.Examined)
	case r.Completed:
		return fmt.Sprintf("completed: processed %d of %d", r.Written, r.Pending)
	case r.Cancelled:
		return fmt.Sprintf("cancelled: processed %d of %d", r.Written, r.Pending)
	default:
		return fmt.Sprintf("processed %d of %d, stopped at %s", r.Written, r.Pending, r.StoppedAt)
	}
}
