// Package scoring converts workout events into points-ledger entries and a
// derived level. Each qualifying event produces exactly one entry:
// amount = base points × consistency multiplier at the time of the event.
// Idempotence lives at the persistence boundary (ledger inserts are keyed
// by event id); this package stays pure.
package scoring

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// MultiplierTier maps a minimum streak length to a consistency multiplier.
// Tiers form a monotonic step function over streak length.
type MultiplierTier struct {
	MinStreak int     `toml:"min_streak"`
	Factor    float64 `toml:"factor"`
}

// Config holds the scoring knobs. Boundaries are configurable; defaults
// follow the standard tiers.
type Config struct {
	BasePoints      int64            `toml:"base_points"`
	Tiers           []MultiplierTier `toml:"tiers"`
	LevelThresholds []int64          `toml:"level_thresholds"`
	LevelStep       int64            `toml:"level_step"`
}

// DefaultConfig returns the production scoring configuration.
func DefaultConfig() Config {
	return Config{
		BasePoints: 10,
		Tiers: []MultiplierTier{
			{MinStreak: 0, Factor: 1.0},
			{MinStreak: 3, Factor: 1.25},
			{MinStreak: 7, Factor: 1.5},
			{MinStreak: 14, Factor: 2.0},
		},
		LevelThresholds: []int64{0, 100, 300, 600, 1000, 1500, 2100, 2800, 3600, 4500},
		LevelStep:       1000,
	}
}

// Multiplier returns the consistency multiplier for a streak length:
// the factor of the highest tier whose MinStreak the streak reaches.
func (c Config) Multiplier(currentStreak int) float64 {
	factor := 1.0
	for _, tier := range c.Tiers {
		if currentStreak >= tier.MinStreak {
			factor = tier.Factor
		}
	}
	return factor
}

// LevelForPoints derives the level from cumulative points: a monotonic
// non-decreasing step function over the threshold table. Beyond the last
// defined level each subsequent level costs LevelStep additional points.
func (c Config) LevelForPoints(points int64) int {
	level := 0
	for _, threshold := range c.LevelThresholds {
		if points < threshold {
			return level
		}
		level++
	}
	if c.LevelStep > 0 && len(c.LevelThresholds) > 0 {
		last := c.LevelThresholds[len(c.LevelThresholds)-1]
		level += int((points - last) / c.LevelStep)
	}
	return level
}

// ScoreEvent builds the single ledger entry for an event given the streak
// state at the time of the event. The caller persists it with an
// insert-if-absent keyed by EventID; a duplicate is a no-op, not an error.
func (c Config) ScoreEvent(ev domain.WorkoutEvent, currentStreak int, now time.Time) domain.PointsLedgerEntry {
	mult := c.Multiplier(currentStreak)
	return domain.PointsLedgerEntry{
		UserID:     ev.UserID,
		EventID:    ev.ID,
		Amount:     int64(float64(c.BasePoints) * mult),
		Multiplier: mult,
		Reason:     "workout",
		CreatedAt:  now,
	}
}
