package repositories

import "time"

// TimeWindow is a half-open [From, To) interval. Zero bounds are unbounded.
type TimeWindow struct {
	From time.Time
	To   time.Time
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && !t.Before(w.To) {
		return false
	}
	return true
}

// ClosedShiftScope selects shifts that started in Window and closed strictly before ClosedBefore.
// A zero ClosedBefore accepts any closed shift.
type ClosedShiftScope struct {
	Window       TimeWindow
	ClosedBefore time.Time
}

// PageRequest asks for one bounded page after an opaque cursor.
type PageRequest struct {
	Limit     int
	NextToken *string
}
