// Package domain holds the core types of the Spotter accountability engine.
// Everything derived (streaks, points, levels, badges, classifications) is a
// pure function of the append-only workout event log; these types carry no
// infrastructure dependency.
package domain

import "time"

// RawWorkout is a workout completion record as reported by a client,
// before normalization. Multiple sessions and devices may report
// concurrently, including duplicates and garbage.
type RawWorkout struct {
	EventID         string    `json:"event_id"`
	UserID          string    `json:"user_id"`
	CompletedAt     time.Time `json:"completed_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
}

// WorkoutEvent is a validated, canonical workout record. Immutable once
// normalized. Day is the user-local calendar day the workout counts for,
// stored as midnight UTC. Multiple events may share a Day — they collapse
// to one streak unit but each scores separately.
type WorkoutEvent struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Day             time.Time `json:"day"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}

// DayOf truncates a timestamp to its calendar day (midnight UTC).
// All streak and gap arithmetic operates on these truncated values.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b.
// Both arguments must already be DayOf-truncated.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}
