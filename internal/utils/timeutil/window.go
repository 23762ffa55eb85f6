package timeutil

import "time"

// StartOfDay truncates a time to its local day boundary.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// MonthWindow returns the inclusive [first day, last day] boundaries of the
// month containing t, at the caller's location. The end boundary is the last
// instant of the last day so that BETWEEN-style date filters include it.
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return start, end
}

// DaysUntil returns the calendar-day difference between target and today.
// Negative when target is in the past, zero when it is today. Both sides are
// normalized to UTC midnight, so a daylight saving transition inside the
// window cannot shorten the count.
func DaysUntil(today, target time.Time) int {
	y1, m1, d1 := today.Date()
	y2, m2, d2 := target.Date()
	from := time.Date(y1, m1, d1, 0, 0, 0, 0, time.UTC)
	to := time.Date(y2, m2, d2, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from) / (24 * time.Hour))
}

// IsBeforeToday reports whether target's calendar day falls strictly before
// today's. Used for task lateness checks.
func IsBeforeToday(today, target time.Time) bool {
	return DaysUntil(today, target) < 0
}
