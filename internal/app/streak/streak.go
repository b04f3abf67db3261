// Package streak computes workout streaks.
// Compute is a pure function of a user's event history and a reference
// "now": calling it twice on the same inputs yields identical results, and
// recomputing from full history after appending one event never contradicts
// the incremental result. That property is what makes replay safe.
package streak

import (
	"sort"
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// Compute derives the streak state from a list of workout calendar days and
// a reference "now". Days need not be sorted or deduplicated — the scan
// sorts a copy and ignores zero gaps, so the function stays self-correcting
// when out-of-order events slip through ingestion.
func Compute(userID string, days []time.Time, now time.Time) domain.StreakState {
	state := domain.StreakState{UserID: userID}
	if len(days) == 0 {
		return state
	}

	sorted := make([]time.Time, len(days))
	for i, d := range days {
		sorted[i] = domain.DayOf(d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	running := 1
	longest := 1
	last := sorted[0]

	for _, d := range sorted[1:] {
		switch gap := domain.DaysBetween(last, d); {
		case gap == 0:
			// Duplicate day — one streak unit, nothing to do
			continue
		case gap == 1:
			running++
		default:
			running = 1
		}
		if running > longest {
			longest = running
		}
		last = d
	}

	state.LongestStreak = longest
	state.LastWorkout = last

	// The running streak only counts as current if it reaches "now" or
	// "now − 1 day"; otherwise it is broken and current drops to zero,
	// though history (and longest) are untouched.
	sinceNow := domain.DaysBetween(last, domain.DayOf(now))
	if sinceNow == 0 || sinceNow == 1 {
		state.CurrentStreak = running
	}

	return state
}

// DaysSinceLast returns whole days from the last workout to "now",
// or -1 if the user has never worked out.
func DaysSinceLast(state domain.StreakState, now time.Time) int {
	if state.LastWorkout.IsZero() {
		return -1
	}
	return domain.DaysBetween(domain.DayOf(state.LastWorkout), domain.DayOf(now))
}
