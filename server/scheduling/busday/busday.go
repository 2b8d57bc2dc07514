// Package busday provides business-day calendar arithmetic.
//
// A business day is Monday through Friday. Public holidays are deliberately
// not modeled; callers that need holiday awareness layer it on top.
package busday

import (
	"fmt"
	"time"
)

// IsBusinessDay reports whether d falls on Monday through Friday.
func IsBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// DateOnly strips the time of day from d, keeping the calendar date at
// midnight in d's own location.
func DateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// AddBusinessDays advances start by n business days, skipping Saturdays and
// Sundays, and returns a date-only value. n = 0 is an identity case: the
// start date is returned unchanged (time stripped) regardless of its weekday.
// A negative n is a programming error in the caller.
func AddBusinessDays(start time.Time, n int) (time.Time, error) {
	if n < 0 {
		return time.Time{}, fmt.Errorf("business day count %d must not be negative", n)
	}

	d := DateOnly(start)
	for counted := 0; counted < n; {
		d = d.AddDate(0, 0, 1)
		if IsBusinessDay(d) {
			counted++
		}
	}
	return d, nil
}

// NextBusinessDayOnOrAfter returns d unchanged if it falls on a business day,
// otherwise the following Monday. The time of day is preserved.
func NextBusinessDayOnOrAfter(d time.Time) time.Time {
	switch d.Weekday() {
	case time.Saturday:
		return d.AddDate(0, 0, 2)
	case time.Sunday:
		return d.AddDate(0, 0, 1)
	default:
		return d
	}
}

// NextReminderDate computes the reminder date that is days business days
// after start. Unlike AddBusinessDays it never lands the result on a weekend
// even for days = 0, since a reminder scheduled "today" on a Saturday should
// fire Monday.
func NextReminderDate(start time.Time, days int) (time.Time, error) {
	d, err := AddBusinessDays(start, days)
	if err != nil {
		return time.Time{}, err
	}
	return NextBusinessDayOnOrAfter(d), nil
}

// SameCalendarDate compares year, month and day only, ignoring time of day.
// Both instants are compared in their own locations; callers must normalize
// to the zone they care about before comparing.
func SameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
