package badge

import "github.com/spotter-app/spotter/internal/domain"

// Catalog returns the full badge catalog. Criteria are single-metric
// thresholds; rarity roughly tracks how long the grind is.
func Catalog() []domain.Badge {
	return []domain.Badge{
		// ── Getting started ────────────────────────────────────────────
		{
			ID: "first_workout", Name: "Off the Couch", Icon: "🏋️",
			Rarity:   domain.RarityCommon,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalWorkouts, Threshold: 1},
		},
		{
			ID: "workouts_10", Name: "Regular", Icon: "📅",
			Rarity:   domain.RarityCommon,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalWorkouts, Threshold: 10},
		},

		// ── Streaks ────────────────────────────────────────────────────
		{
			ID: "streak_3", Name: "Warming Up", Icon: "✨",
			Rarity:   domain.RarityCommon,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricCurrentStreak, Threshold: 3},
		},
		{
			ID: "streak_7", Name: "Week Warrior", Icon: "🔥",
			Rarity:   domain.RarityRare,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricCurrentStreak, Threshold: 7},
		},
		{
			ID: "streak_14", Name: "Fortnight Force", Icon: "💪",
			Rarity:   domain.RarityRare,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricCurrentStreak, Threshold: 14},
		},
		{
			ID: "streak_30", Name: "Monthly Machine", Icon: "🗓️",
			Rarity:   domain.RarityEpic,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricCurrentStreak, Threshold: 30},
		},
		{
			ID: "streak_100", Name: "Centurion", Icon: "🏛️",
			Rarity:   domain.RarityLegendary,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricCurrentStreak, Threshold: 100},
		},
		{
			ID: "longest_50", Name: "Peak Form", Icon: "⛰️",
			Rarity:   domain.RarityEpic,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricLongestStreak, Threshold: 50},
		},

		// ── Volume ─────────────────────────────────────────────────────
		{
			ID: "workouts_50", Name: "Gym Rat", Icon: "🐀",
			Rarity:   domain.RarityRare,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalWorkouts, Threshold: 50},
		},
		{
			ID: "workouts_250", Name: "Iron Veteran", Icon: "🎖️",
			Rarity:   domain.RarityEpic,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalWorkouts, Threshold: 250},
		},

		// ── Points & levels ────────────────────────────────────────────
		{
			ID: "points_1000", Name: "Point Collector", Icon: "💰",
			Rarity:   domain.RarityRare,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalPoints, Threshold: 1000},
		},
		{
			ID: "points_10000", Name: "Score Lord", Icon: "👑",
			Rarity:   domain.RarityLegendary,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricTotalPoints, Threshold: 10000},
		},
		{
			ID: "level_5", Name: "Rising Star", Icon: "🌅",
			Rarity:   domain.RarityCommon,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricLevel, Threshold: 5},
		},
		{
			ID: "level_10", Name: "Veteran", Icon: "⭐",
			Rarity:   domain.RarityEpic,
			Criteria: domain.BadgeCriteria{Metric: domain.MetricLevel, Threshold: 10},
		},
	}
}

// ByID returns the catalog badge with the given id, if defined.
func ByID(id string) (domain.Badge, bool) {
	for _, b := range Catalog() {
		if b.ID == id {
			return b, true
		}
	}
	return domain.Badge{}, false
}
