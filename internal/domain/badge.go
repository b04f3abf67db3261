package domain

import "time"

// ─── Badge Types ────────────────────────────────────────────────────────────

// BadgeRarity tiers badges for display and celebration weight.
type BadgeRarity string

const (
	RarityCommon    BadgeRarity = "common"
	RarityRare      BadgeRarity = "rare"
	RarityEpic      BadgeRarity = "epic"
	RarityLegendary BadgeRarity = "legendary"
)

// BadgeMetric names the single derived scalar a badge threshold tracks.
// Criteria are tagged variants, not open maps, so the evaluator can match
// exhaustively.
type BadgeMetric string

const (
	MetricCurrentStreak BadgeMetric = "current_streak"
	MetricLongestStreak BadgeMetric = "longest_streak"
	MetricTotalWorkouts BadgeMetric = "total_workouts"
	MetricTotalPoints   BadgeMetric = "total_points"
	MetricLevel         BadgeMetric = "level"
)

// BadgeCriteria is a monotone predicate over one metric: the badge fires
// exactly when the metric crosses Threshold (previous < t <= new).
type BadgeCriteria struct {
	Metric    BadgeMetric `json:"metric"`
	Threshold int64       `json:"threshold"`
}

// Badge defines a single achievement.
type Badge struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Icon     string        `json:"icon"`
	Rarity   BadgeRarity   `json:"rarity"`
	Criteria BadgeCriteria `json:"criteria"`
}

// BadgeAward records a badge unlock. Unique per (UserID, BadgeID) —
// never revoked, never duplicated.
type BadgeAward struct {
	UserID    string    `json:"user_id"`
	BadgeID   string    `json:"badge_id"`
	AwardedAt time.Time `json:"awarded_at"`
}
