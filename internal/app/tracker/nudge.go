package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/spotter-app/spotter/internal/app/classify"
	"github.com/spotter-app/spotter/internal/app/streak"
	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/metrics"
)

// milestoneWindow is how long after an award a badge still counts as a
// fresh milestone worth celebrating in a nudge.
const milestoneWindow = 24 * time.Hour

// Nudge is a classified behavioral observation with its rendered message.
type Nudge struct {
	Classification domain.BehaviorClassification `json:"classification"`
	Message        string                        `json:"message"`
	Generated      bool                          `json:"generated"`
}

// Nudge inspects a user's current behavior and, when something is worth
// saying, returns the classification plus a message. A nil result with a
// nil error means there is nothing notable today.
func (t *Tracker) Nudge(ctx context.Context, userID string) (*Nudge, error) {
	stats, err := t.Stats(userID)
	if err != nil {
		return nil, err
	}

	now := t.now()
	state := domain.StreakState{
		UserID:        userID,
		CurrentStreak: stats.CurrentStreak,
		LongestStreak: stats.LongestStreak,
	}
	days, err := t.db.WorkoutDays(userID)
	if err != nil {
		return nil, err
	}
	if len(days) > 0 {
		state.LastWorkout = days[len(days)-1]
	}

	in := classify.Input{
		Stats:           stats,
		DaysSinceLast:   streak.DaysSinceLast(state, now),
		PriorStreak:     t.priorStreak(userID, state),
		RecentMilestone: t.recentMilestone(userID, now),
	}

	if partner, err := t.db.Partner(userID); err == nil {
		ps, err := t.Stats(partner.ID)
		if err != nil {
			return nil, fmt.Errorf("partner stats: %w", err)
		}
		delta := domain.CompareStats(stats, ps)
		in.Comparison = &delta
	} else if err != domain.ErrNoPartner {
		return nil, err
	}

	c, ok := classify.Classify(in, now)
	if !ok {
		return nil, nil
	}
	metrics.Classifications.WithLabelValues(string(c.Event), string(c.Severity)).Inc()

	// Seed on user and day so repeated polls within one day repeat the
	// same fallback message instead of cycling.
	seed := fmt.Sprintf("%s|%s|%s", userID, c.Event, domain.DayOf(now).Format("2006-01-02"))
	req := classify.BuildRequest(c, in, seed)
	msg, fellBack := classify.Message(ctx, t.gen, req)

	return &Nudge{Classification: c, Message: msg, Generated: !fellBack}, nil
}

// priorStreak reconstructs the streak a user held before it lapsed: the
// run length ending at their last workout day. Zero when the streak is
// still alive or the user has never worked out.
func (t *Tracker) priorStreak(userID string, state domain.StreakState) int {
	if state.CurrentStreak > 0 || state.LastWorkout.IsZero() {
		return 0
	}
	days, err := t.db.WorkoutDays(userID)
	if err != nil {
		return 0
	}
	return streak.Compute(userID, days, state.LastWorkout).CurrentStreak
}

func (t *Tracker) recentMilestone(userID string, now time.Time) bool {
	at, ok, err := t.db.LatestBadgeAward(userID)
	if err != nil || !ok {
		return false
	}
	return now.Sub(at) <= milestoneWindow
}
