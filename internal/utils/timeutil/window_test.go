package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthWindow(t *testing.T) {
	ref := time.Date(2025, 2, 14, 15, 30, 0, 0, time.UTC)
	start, end := MonthWindow(ref)

	assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), start)
	// February 2025 has 28 days; the end boundary is the last instant of the 28th.
	assert.Equal(t, time.February, end.Month())
	assert.Equal(t, 28, end.Day())
	assert.True(t, end.Before(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))

	// December wraps the year.
	start, end = MonthWindow(time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, 31, end.Day())
	assert.Equal(t, 2024, end.Year())
}

func TestDaysUntil(t *testing.T) {
	today := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysUntil(today, today))
	assert.Equal(t, 10, DaysUntil(today, today.AddDate(0, 0, 10)))
	assert.Equal(t, -1, DaysUntil(today, today.AddDate(0, 0, -1)))

	// Time of day does not matter, only the day boundary.
	lateTonight := time.Date(2025, 6, 2, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysUntil(today, lateTonight))
}

func TestDaysUntilAcrossDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// US spring-forward on 2025-03-09 removes an hour from the wall-clock
	// window; the count must still be whole calendar days.
	today := time.Date(2025, 3, 1, 9, 0, 0, 0, loc)
	assert.Equal(t, 15, DaysUntil(today, today.AddDate(0, 0, 15)))
	assert.Equal(t, 9, DaysUntil(today, today.AddDate(0, 0, 9)))

	// Fall-back adds an hour; the extra hour must not overcount.
	autumn := time.Date(2025, 11, 1, 9, 0, 0, 0, loc)
	assert.Equal(t, 15, DaysUntil(autumn, autumn.AddDate(0, 0, 15)))
}

func TestStartOfDay(t *testing.T) {
	ref := time.Date(2025, 6, 1, 14, 45, 30, 999, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), StartOfDay(ref))
	assert.Equal(t, ref.Location(), StartOfDay(ref).Location())
}

func TestIsBeforeToday(t *testing.T) {
	today := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, IsBeforeToday(today, today.AddDate(0, 0, -1)))
	assert.False(t, IsBeforeToday(today, today))
	assert.False(t, IsBeforeToday(today, today.AddDate(0, 0, 1)))

	// Earlier hour on the same day is not "before today".
	sameDayMorning := time.Date(2025, 6, 1, 1, 0, 0, 0, time.UTC)
	assert.False(t, IsBeforeToday(today, sameDayMorning))
}
