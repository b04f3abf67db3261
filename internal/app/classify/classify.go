// Package classify maps derived stats onto the behavior taxonomy that
// drives motivational/shame messaging. Classification is synchronous and
// deterministic; only message-text production touches I/O, and that path
// degrades to static templates without ever failing.
package classify

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// Input is everything the classifier looks at. All values come from the
// authoritative event-derived state.
type Input struct {
	Stats domain.UserGameStats

	// DaysSinceLast is whole days since the last workout; -1 if the user
	// has never worked out.
	DaysSinceLast int

	// PriorStreak is the length of the streak that was running before the
	// most recent break (equal to CurrentStreak when unbroken). Used to
	// decide whether a break is worth calling out.
	PriorStreak int

	// RecentMilestone is true when a badge was awarded within the last day.
	RecentMilestone bool

	// Comparison is the partner-minus-user delta, nil when unpartnered.
	// A missing partner is not an error: buddy_ahead simply falls through
	// the priority order.
	Comparison *domain.ComparisonDelta
}

// severityForAbsence buckets days-since-last-workout into a severity tier.
// Returns ok=false for day 0: fresh workouts need no absence-driven nagging.
func severityForAbsence(days int) (domain.Severity, bool) {
	switch {
	case days < 0 || days >= 30:
		return domain.SeverityNuclear, true // never worked out, or a month gone
	case days == 0:
		return "", false
	case days == 1:
		return domain.SeverityMild, true
	case days <= 3:
		return domain.SeverityModerate, true
	default: // 4–29
		return domain.SeveritySevere, true
	}
}

// severityForGap scales buddy_ahead severity by the largest per-metric gap.
func severityForGap(gap int) domain.Severity {
	switch {
	case gap >= 14:
		return domain.SeverityNuclear
	case gap >= 7:
		return domain.SeveritySevere
	case gap >= 3:
		return domain.SeverityModerate
	default:
		return domain.SeverityMild
	}
}

// minMeaningfulStreak is how long a streak must have run before its break
// is worth a streak_broken callout rather than generic slacking.
const minMeaningfulStreak = 3

// Classify resolves the single classification for an evaluation. When
// multiple taxonomy events are simultaneously true, a fixed priority order
// picks the winner: milestone > streak_broken > buddy_ahead > slacking >
// crushing_it > daily_check. Returns ok=false when nothing applies (a user
// who worked out today with nothing to celebrate needs no message).
func Classify(in Input, now time.Time) (domain.BehaviorClassification, bool) {
	verdict := func(event domain.BehaviorEvent, sev domain.Severity) (domain.BehaviorClassification, bool) {
		return domain.BehaviorClassification{
			UserID:     in.Stats.UserID,
			Event:      event,
			Severity:   sev,
			ComputedAt: now,
		}, true
	}

	absenceSev, absent := severityForAbsence(in.DaysSinceLast)

	// milestone — celebratory, always wins
	if in.RecentMilestone {
		return verdict(domain.EventMilestone, domain.SeverityMild)
	}

	// streak_broken — a meaningful streak just died
	if in.Stats.CurrentStreak == 0 && in.PriorStreak >= minMeaningfulStreak && in.DaysSinceLast >= 2 {
		return verdict(domain.EventStreakBroken, absenceSev)
	}

	// buddy_ahead — partner strictly ahead on a majority of metrics
	if in.Comparison != nil && in.Comparison.AheadCount() >= 3 {
		return verdict(domain.EventBuddyAhead, severityForGap(in.Comparison.MaxGap()))
	}

	// slacking — absent for 2+ days (or never showed up at all)
	if absent && (in.DaysSinceLast >= 2 || in.DaysSinceLast < 0) {
		return verdict(domain.EventSlacking, absenceSev)
	}

	// crushing_it — worked out today on a healthy streak
	if in.DaysSinceLast == 0 && in.Stats.CurrentStreak >= minMeaningfulStreak {
		return verdict(domain.EventCrushingIt, domain.SeverityMild)
	}

	// daily_check — one day idle, gentle reminder
	if in.DaysSinceLast == 1 {
		return verdict(domain.EventDailyCheck, domain.SeverityMild)
	}

	return domain.BehaviorClassification{}, false
}

// BuildRequest assembles the message descriptor for a classification.
// Seed keys the deterministic fallback template selection.
func BuildRequest(c domain.BehaviorClassification, in Input, seed string) domain.MessageRequest {
	return domain.MessageRequest{
		UserName:   in.Stats.UserName,
		Event:      c.Event,
		Severity:   c.Severity,
		Stats:      in.Stats,
		Comparison: in.Comparison,
		Seed:       seed,
	}
}
