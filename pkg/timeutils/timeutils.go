package timeutils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Recurrence frequencies understood by the occurrence math.
const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

// ParseClock parses a "HH:MM" wall-clock value.
func ParseClock(value string) (hour int, minute int, err error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time format, expected HH:MM")
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", value)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", value)
	}
	return hour, minute, nil
}

// OccurrenceOn places a wall-clock time on the calendar day of 'day',
// in the same location.
func OccurrenceOn(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

// InFiringWindow reports whether 'now' falls inside [scheduled, scheduled+window].
// A pass that runs before the occurrence, or after the window closed, must not fire.
func InFiringWindow(scheduled, now time.Time, window time.Duration) bool {
	diff := now.Sub(scheduled)
	return diff >= 0 && diff <= window
}

// OccursOn reports whether a recurrence fires on the calendar day of 'day'.
// Monthly schedules anchored to day 29-31 do not occur in shorter months.
func OccursOn(frequency string, dayOfWeek, anchorDay int, day time.Time) bool {
	switch frequency {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		return int(day.Weekday()) == dayOfWeek
	case FrequencyMonthly:
		return day.Day() == anchorDay
	}
	return false
}

// NextOccurrence returns the first occurrence strictly after 'from'.
// dayOfWeek follows time.Weekday (0=Sunday). anchorDay is the day of month
// for monthly schedules; months without that day are skipped, never rolled.
func NextOccurrence(frequency, timeOfDay string, dayOfWeek, anchorDay int, from time.Time) (time.Time, error) {
	hour, minute, err := ParseClock(timeOfDay)
	if err != nil {
		return time.Time{}, err
	}

	candidate := OccurrenceOn(from, hour, minute)
	if !candidate.After(from) {
		candidate = OccurrenceOn(candidate.AddDate(0, 0, 1), hour, minute)
	}

	// Two years of days bounds the walk even for monthly day-31 anchors.
	for i := 0; i < 731; i++ {
		if OccursOn(frequency, dayOfWeek, anchorDay, candidate) {
			return candidate, nil
		}
		candidate = OccurrenceOn(candidate.AddDate(0, 0, 1), hour, minute)
	}

	return time.Time{}, fmt.Errorf("no occurrence found for frequency %q", frequency)
}
