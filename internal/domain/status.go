package domain

import (
	"math"
	"time"
)

// LifecycleStatus is the derived, never-persisted temporal label for a
// course or training session. It is a pure function of (now, interval,
// stored status) and must be recomputed on every read.
type LifecycleStatus string

const (
	LifecycleUpcoming  LifecycleStatus = "upcoming"
	LifecycleOngoing   LifecycleStatus = "ongoing"
	LifecyclePast      LifecycleStatus = "past"
	LifecycleCompleted LifecycleStatus = "completed"
)

// DeriveStatus labels an interval relative to now. A completed record is
// Completed regardless of its interval. Boundary instants are inclusive of
// Ongoing: the interval is closed on both ends.
func DeriveStatus(now, start, end time.Time, completed bool) LifecycleStatus {
	switch {
	case completed:
		return LifecycleCompleted
	case now.Before(start):
		return LifecycleUpcoming
	case now.After(end):
		return LifecyclePast
	default:
		return LifecycleOngoing
	}
}

// DaysUntilStart returns the whole days from now until start, for
// "Starts in N days" displays. Partial days truncate toward zero.
func DaysUntilStart(now, start time.Time) int {
	return wholeDays(start.Sub(now))
}

// DaysRemaining returns the whole days from now until end, for
// "N days remaining" displays.
func DaysRemaining(now, end time.Time) int {
	return wholeDays(end.Sub(now))
}

func wholeDays(d time.Duration) int {
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// DurationHours returns the interval length in hours rounded to the
// nearest 0.1, for session duration displays.
func DurationHours(start, end time.Time) float64 {
	hours := float64(end.Sub(start).Milliseconds()) / float64(time.Hour.Milliseconds())
	return math.Round(hours*10) / 10
}
