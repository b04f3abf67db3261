package domain

import "time"

// ─── Behavior Taxonomy ──────────────────────────────────────────────────────
// The classifier maps derived stats (plus an optional partner comparison)
// onto a finite event taxonomy with severity tiers. Output drives the
// motivational/shame message generator; it is transient and recomputed on
// demand, never persisted as a source of truth.

// BehaviorEvent is the classified behavior kind.
type BehaviorEvent string

const (
	EventStreakBroken BehaviorEvent = "streak_broken"
	EventBuddyAhead   BehaviorEvent = "buddy_ahead"
	EventMilestone    BehaviorEvent = "milestone"
	EventSlacking     BehaviorEvent = "slacking"
	EventCrushingIt   BehaviorEvent = "crushing_it"
	EventDailyCheck   BehaviorEvent = "daily_check"
)

// Severity tiers the intensity of the message tone.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
	SeverityNuclear  Severity = "nuclear"
)

// BehaviorClassification is the classifier's transient verdict.
type BehaviorClassification struct {
	UserID     string        `json:"user_id"`
	Event      BehaviorEvent `json:"event"`
	Severity   Severity      `json:"severity"`
	ComputedAt time.Time     `json:"computed_at"`
}

// ─── Partner Comparison ─────────────────────────────────────────────────────

// ComparisonDelta holds signed per-metric gaps, partner minus user.
// Positive values mean the partner is ahead.
type ComparisonDelta struct {
	Streak          int `json:"streak"`
	WeeklyWorkouts  int `json:"weekly_workouts"`
	MonthlyWorkouts int `json:"monthly_workouts"`
	TotalWorkouts   int `json:"total_workouts"`
}

// CompareStats computes the partner-minus-user delta between two snapshots.
func CompareStats(user, partner UserGameStats) ComparisonDelta {
	return ComparisonDelta{
		Streak:          partner.CurrentStreak - user.CurrentStreak,
		WeeklyWorkouts:  partner.WeeklyWorkouts - user.WeeklyWorkouts,
		MonthlyWorkouts: partner.MonthlyWorkouts - user.MonthlyWorkouts,
		TotalWorkouts:   partner.TotalWorkouts - user.TotalWorkouts,
	}
}

// AheadCount returns on how many metrics the partner is strictly ahead.
func (d ComparisonDelta) AheadCount() int {
	n := 0
	for _, v := range []int{d.Streak, d.WeeklyWorkouts, d.MonthlyWorkouts, d.TotalWorkouts} {
		if v > 0 {
			n++
		}
	}
	return n
}

// MaxGap returns the largest positive per-metric gap (0 if none).
func (d ComparisonDelta) MaxGap() int {
	gap := 0
	for _, v := range []int{d.Streak, d.WeeklyWorkouts, d.MonthlyWorkouts, d.TotalWorkouts} {
		if v > gap {
			gap = v
		}
	}
	return gap
}

// ─── Message Request ────────────────────────────────────────────────────────

// MessageRequest is the descriptor handed to the external text generator.
// Seed keys the deterministic static fallback when generation fails; the
// engine never produces user-facing text itself.
type MessageRequest struct {
	UserName   string           `json:"user_name"`
	Event      BehaviorEvent    `json:"event"`
	Severity   Severity         `json:"severity"`
	Stats      UserGameStats    `json:"stats"`
	Comparison *ComparisonDelta `json:"comparison,omitempty"`
	Seed       string           `json:"seed"`
}
