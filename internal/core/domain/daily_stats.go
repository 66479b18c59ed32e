package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyStatsDateFormat keys daily statistics documents.
const DailyStatsDateFormat = "2006-01-02"

// DailyStat is the per-calendar-day summary rebuilt from the transaction history.
type DailyStat struct {
	Date      string          `json:"date"` // YYYY-MM-DD in the business timezone
	Sales     decimal.Decimal `json:"sales"`
	Expenses  decimal.Decimal `json:"expenses"` // excludes CAPEX and inventory purchases
	TxCount   int             `json:"txCount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
