package usecase

import (
	"time"

	domainSchedule "github.com/AzielCF/az-post/domains/schedule"
	"github.com/AzielCF/az-post/pkg/timeutils"
)

// DueOccurrence decides whether a schedule should fire at 'now'. It returns
// the occurrence instant being claimed when all of the following hold:
//
//   - the schedule is active,
//   - the recurrence lands on today's calendar day,
//   - 'now' sits inside [occurrence, occurrence+window],
//   - the occurrence has not been fired yet (lastFiredAt is behind it).
//
// The function is pure: callers pass 'now' explicitly, which keeps the
// selection logic testable without clocks.
func DueOccurrence(s domainSchedule.Schedule, now time.Time, window time.Duration) (time.Time, bool) {
	if !s.Active {
		return time.Time{}, false
	}

	hour, minute, err := timeutils.ParseClock(s.TimeOfDay)
	if err != nil {
		return time.Time{}, false
	}

	if !timeutils.OccursOn(string(s.Frequency), s.DayOfWeek, s.AnchorDay, now) {
		return time.Time{}, false
	}

	occurrence := timeutils.OccurrenceOn(now, hour, minute)
	if !timeutils.InFiringWindow(occurrence, now, window) {
		return time.Time{}, false
	}

	if s.LastFiredAt != nil && !s.LastFiredAt.Before(occurrence) {
		return time.Time{}, false
	}

	return occurrence, true
}
