package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailyStat is a row of the daily_stats table.
type DailyStat struct {
	StatDate  string          `db:"stat_date"`
	Sales     decimal.Decimal `db:"sales"`
	Expenses  decimal.Decimal `db:"expenses"`
	TxCount   int             `db:"tx_count"`
	UpdatedAt time.Time       `db:"updated_at"`
}
