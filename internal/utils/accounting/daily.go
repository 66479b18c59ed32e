package accounting

import (
	"time"

	"github.com/SscSPs/pos_shift_app/internal/core/domain"
)

// DailyAccumulator folds a timestamp-ordered transaction stream into per-day statistics.
// Days are emitted as soon as the stream moves past them, so only one day is held at a time.
type DailyAccumulator struct {
	classifier Classifier
	loc        *time.Location
	current    *domain.DailyStat
}

// NewDailyAccumulator creates an accumulator keyed by calendar day in loc.
func NewDailyAccumulator(c Classifier, loc *time.Location) *DailyAccumulator {
	if c == nil {
		c = StandardClassifier{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DailyAccumulator{classifier: c, loc: loc}
}

// DayKey returns the YYYY-MM-DD key for t in the accumulator's timezone.
func (a *DailyAccumulator) DayKey(t time.Time) string {
	return t.In(a.loc).Format(domain.DailyStatsDateFormat)
}

// Add folds one transaction in. When tx starts a new day, the finished day is returned.
// Soft-deleted transactions are ignored entirely.
func (a *DailyAccumulator) Add(tx domain.Transaction) *domain.DailyStat {
	c := a.classifier.Classify(tx)
	if c.Bucket == domain.BucketSkip {
		return nil
	}

	var finished *domain.DailyStat
	key := a.DayKey(tx.Timestamp)
	if a.current != nil && a.current.Date != key {
		finished = a.current
		a.current = nil
	}
	if a.current == nil {
		a.current = &domain.DailyStat{Date: key}
	}

	a.current.TxCount++
	switch c.Bucket {
	case domain.BucketSale:
		a.current.Sales = a.current.Sales.Add(tx.Amount())
	case domain.BucketExpense:
		if !IsCapitalExpense(tx) {
			a.current.Expenses = a.current.Expenses.Add(tx.Amount())
		}
	}
	return finished
}

// Flush returns the day in progress, if any, and resets the accumulator.
func (a *DailyAccumulator) Flush() *domain.DailyStat {
	d := a.current
	a.current = nil
	return d
}
