package timeutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseClock("9h30")
	assert.Error(t, err)

	_, _, err = ParseClock("24:00")
	assert.Error(t, err)

	_, _, err = ParseClock("12:60")
	assert.Error(t, err)
}

func TestInFiringWindow(t *testing.T) {
	scheduled := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	window := 5 * time.Minute

	assert.True(t, InFiringWindow(scheduled, scheduled, window), "exact scheduled instant is due")
	assert.True(t, InFiringWindow(scheduled, scheduled.Add(3*time.Minute), window))
	assert.True(t, InFiringWindow(scheduled, scheduled.Add(5*time.Minute), window), "window edge is inclusive")
	assert.False(t, InFiringWindow(scheduled, scheduled.Add(5*time.Minute+time.Second), window))
	assert.False(t, InFiringWindow(scheduled, scheduled.Add(-time.Second), window), "not yet due")
}

func TestOccursOn(t *testing.T) {
	// 2026-03-10 is a Tuesday.
	tuesday := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.True(t, OccursOn(FrequencyDaily, 0, 0, tuesday))
	assert.True(t, OccursOn(FrequencyWeekly, 2, 0, tuesday))
	assert.False(t, OccursOn(FrequencyWeekly, 3, 0, tuesday))
	assert.True(t, OccursOn(FrequencyMonthly, 0, 10, tuesday))
	assert.False(t, OccursOn(FrequencyMonthly, 0, 11, tuesday))
	assert.False(t, OccursOn("hourly", 0, 0, tuesday))
}

func TestNextOccurrenceDaily(t *testing.T) {
	from := time.Date(2026, 3, 10, 8, 59, 0, 0, time.UTC)
	next, err := NextOccurrence(FrequencyDaily, "09:00", 0, 0, from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC), next)

	// At or past today's time rolls to tomorrow.
	next, err = NextOccurrence(FrequencyDaily, "09:00", 0, 0, next)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceWeekly(t *testing.T) {
	// From a Tuesday afternoon, next Monday 07:30.
	from := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(FrequencyWeekly, "07:30", 1, 0, from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC), next)
	assert.Equal(t, time.Monday, next.Weekday())
}

func TestNextOccurrenceMonthlySkipsShortMonths(t *testing.T) {
	// Anchored to day 31: February and April have no day 31.
	from := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(FrequencyMonthly, "10:00", 0, 31, from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC), next)

	next, err = NextOccurrence(FrequencyMonthly, "10:00", 0, 31, next)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 31, 10, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceMonthlyAnchor29(t *testing.T) {
	// 2026 is not a leap year, so January 29 is followed by March 29.
	from := time.Date(2026, 1, 29, 6, 0, 0, 0, time.UTC)
	next, err := NextOccurrence(FrequencyMonthly, "06:00", 0, 29, from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 29, 6, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrenceRejectsBadInput(t *testing.T) {
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := NextOccurrence(FrequencyDaily, "bogus", 0, 0, from)
	assert.Error(t, err)

	_, err = NextOccurrence("hourly", "09:00", 0, 0, from)
	assert.Error(t, err)
}
