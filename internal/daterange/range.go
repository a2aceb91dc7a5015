package daterange

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Range is a half-open instant interval [Start, End). Either bound may
// be open: a "since" expression has an open end, a "before" expression
// has an open start. Range is a value; treat it as immutable.
type Range struct {
	Start time.Time
	End   time.Time

	// OpenStart marks a range unbounded in the past; Start is ignored.
	OpenStart bool

	// OpenEnd marks a range unbounded in the future; End is ignored.
	OpenEnd bool
}

// Contains reports whether t falls inside the range.
func (r Range) Contains(t time.Time) bool {
	if !r.OpenStart && t.Before(r.Start) {
		return false
	}
	if !r.OpenEnd && !t.Before(r.End) {
		return false
	}
	return true
}

// Bounded reports whether both ends of the range are closed.
func (r Range) Bounded() bool {
	return !r.OpenStart && !r.OpenEnd
}

// Human renders the range as a short display string:
//
//	[day, next day)          → "on 2021-03-05"
//	[month, next month)      → "in 2021-03"
//	[year, next year)        → "in 2021"
//	[X, +∞)                  → "since 2021-03-05"
//	(-∞, X)                  → "before 2021-03-05"
//	anything else bounded    → "2021-03-01 – 2021-03-14" (inclusive days)
//
// The output is deterministic; rendering the same range twice yields
// the same string.
func (r Range) Human() string {
	switch {
	case r.OpenStart && r.OpenEnd:
		return "any time"
	case r.OpenEnd:
		return "since " + r.Start.Format(dayLayout)
	case r.OpenStart:
		return "before " + r.End.Format(dayLayout)
	}

	if r.End.Equal(r.Start.AddDate(0, 0, 1)) && atMidnight(r.Start) {
		return "on " + r.Start.Format(dayLayout)
	}
	if r.End.Equal(r.Start.AddDate(0, 1, 0)) && atMidnight(r.Start) && r.Start.Day() == 1 {
		return "in " + r.Start.Format("2006-01")
	}
	if r.End.Equal(r.Start.AddDate(1, 0, 0)) && atMidnight(r.Start) &&
		r.Start.Day() == 1 && r.Start.Month() == time.January {
		return "in " + r.Start.Format("2006")
	}

	// Inclusive last day for display: [X, Y) covers days X .. Y-1.
	last := r.End
	if atMidnight(last) {
		last = last.AddDate(0, 0, -1)
	}
	return fmt.Sprintf("%s – %s", r.Start.Format(dayLayout), last.Format(dayLayout))
}

// HumanDay renders a single instant as its calendar day, matching the
// style of Range.Human.
func HumanDay(t time.Time) string {
	return t.Format(dayLayout)
}

func atMidnight(t time.Time) bool {
	return t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}
