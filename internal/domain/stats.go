package domain

import "time"

// ─── User ───────────────────────────────────────────────────────────────────

// User is an account known to the engine. PartnerID links accountability
// buddies; empty means unpartnered.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Timezone  string    `json:"timezone"`
	PartnerID string    `json:"partner_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ─── Streak ─────────────────────────────────────────────────────────────────

// StreakState is derived purely from a user's event history and a
// reference "now". Invariant: CurrentStreak <= LongestStreak.
type StreakState struct {
	UserID        string    `json:"user_id"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
	LastWorkout   time.Time `json:"last_workout"` // zero if no workouts ever
}

// ─── Points Ledger ──────────────────────────────────────────────────────────

// PointsLedgerEntry is an immutable record of points awarded for one event.
// At most one entry exists per EventID; replaying an already-scored event
// is a no-op, which is what makes at-least-once delivery safe.
type PointsLedgerEntry struct {
	ID         int64     `json:"id"`
	UserID     string    `json:"user_id"`
	EventID    string    `json:"event_id"`
	Amount     int64     `json:"amount"`
	Multiplier float64   `json:"multiplier"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

// ─── Derived Stats ──────────────────────────────────────────────────────────

// UserGameStats is a snapshot of everything derived from a user's event log
// and ledger. It is a cache of a pure function — always reproducible by
// replay, never a source of truth.
type UserGameStats struct {
	UserID                string    `json:"user_id"`
	UserName              string    `json:"user_name"`
	TotalPoints           int64     `json:"total_points"`
	WeeklyPoints          int64     `json:"weekly_points"`
	MonthlyPoints         int64     `json:"monthly_points"`
	TotalWorkouts         int       `json:"total_workouts"`
	WeeklyWorkouts        int       `json:"weekly_workouts"`
	MonthlyWorkouts       int       `json:"monthly_workouts"`
	CurrentStreak         int       `json:"current_streak"`
	LongestStreak         int       `json:"longest_streak"`
	Level                 int       `json:"level"`
	ConsistencyMultiplier float64   `json:"consistency_multiplier"`
	Rank                  int       `json:"rank,omitempty"` // 1-based, set by the aggregator
	CreatedAt             time.Time `json:"created_at"`
}
