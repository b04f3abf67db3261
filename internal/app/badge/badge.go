// Package badge evaluates milestone badges over stat transitions.
// A badge fires exactly when its tracked metric crosses the threshold:
// previous < threshold <= new. Checking the post-state alone is not enough
// — "value >= threshold" would re-fire on every subsequent event — so the
// evaluator always takes both the pre- and post-update snapshot. The
// at-most-once guarantee per (user, badge) is enforced by a uniqueness
// constraint at the persistence boundary.
package badge

import (
	"fmt"

	"github.com/spotter-app/spotter/internal/domain"
)

// Snapshot carries the derived scalars badge criteria track. Values must
// come from the authoritative event-derived state, never from deltas, so
// evaluation stays self-correcting under clock skew or replay.
type Snapshot struct {
	CurrentStreak int
	LongestStreak int
	TotalWorkouts int
	TotalPoints   int64
	Level         int
}

// MetricValue extracts the scalar a criteria variant tracks.
func MetricValue(s Snapshot, m domain.BadgeMetric) (int64, error) {
	switch m {
	case domain.MetricCurrentStreak:
		return int64(s.CurrentStreak), nil
	case domain.MetricLongestStreak:
		return int64(s.LongestStreak), nil
	case domain.MetricTotalWorkouts:
		return int64(s.TotalWorkouts), nil
	case domain.MetricTotalPoints:
		return s.TotalPoints, nil
	case domain.MetricLevel:
		return int64(s.Level), nil
	default:
		return 0, fmt.Errorf("unknown badge metric %q", m)
	}
}

// Evaluate returns the badges whose threshold was crossed between prev and
// next. Re-evaluating the same transition returns the same badges — the
// caller's unique-constrained insert turns repeats into no-ops.
func Evaluate(prev, next Snapshot, catalog []domain.Badge) ([]domain.Badge, error) {
	var fired []domain.Badge
	for _, b := range catalog {
		before, err := MetricValue(prev, b.Criteria.Metric)
		if err != nil {
			return nil, err
		}
		after, err := MetricValue(next, b.Criteria.Metric)
		if err != nil {
			return nil, err
		}
		if before < b.Criteria.Threshold && b.Criteria.Threshold <= after {
			fired = append(fired, b)
		}
	}
	return fired, nil
}
