package sqlite

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// ─── Workout Events ─────────────────────────────────────────────────────────

// InsertWorkoutEvent appends a normalized event to the log.
func (d *DB) InsertWorkoutEvent(ev domain.WorkoutEvent) error {
	_, err := d.db.Exec(
		`INSERT INTO workout_events (id, user_id, day, duration_minutes, recorded_at)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.ID, ev.UserID, ev.Day.Unix(), ev.DurationMinutes, ev.RecordedAt.Unix(),
	)
	return err
}

// EventExists reports whether an event id is already in the log.
func (d *DB) EventExists(id string) (bool, error) {
	var count int
	err := d.db.QueryRow(`SELECT COUNT(*) FROM workout_events WHERE id = ?`, id).Scan(&count)
	return count > 0, err
}

// WorkoutDays returns the user's distinct workout calendar days, ascending.
// Implements the streak-calculator side of domain.EventSource.
func (d *DB) WorkoutDays(userID string) ([]time.Time, error) {
	rows, err := d.db.Query(
		`SELECT DISTINCT day FROM workout_events WHERE user_id = ? ORDER BY day ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var days []time.Time
	for rows.Next() {
		var unix int64
		if err := rows.Scan(&unix); err != nil {
			return nil, err
		}
		days = append(days, time.Unix(unix, 0).UTC())
	}
	return days, rows.Err()
}

// WorkoutEvents returns the user's full event history, ascending by day.
func (d *DB) WorkoutEvents(userID string) ([]domain.WorkoutEvent, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, day, duration_minutes, recorded_at
		 FROM workout_events WHERE user_id = ? ORDER BY day ASC, recorded_at ASC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []domain.WorkoutEvent
	for rows.Next() {
		var ev domain.WorkoutEvent
		var day, recorded int64
		if err := rows.Scan(&ev.ID, &ev.UserID, &day, &ev.DurationMinutes, &recorded); err != nil {
			return nil, err
		}
		ev.Day = time.Unix(day, 0).UTC()
		ev.RecordedAt = time.Unix(recorded, 0).UTC()
		events = append(events, ev)
	}
	return events, rows.Err()
}

// WorkoutCount returns the user's lifetime workout count.
func (d *DB) WorkoutCount(userID string) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM workout_events WHERE user_id = ?`, userID,
	).Scan(&count)
	return count, err
}

// WorkoutCountSince returns the user's workout count on days >= since.
func (d *DB) WorkoutCountSince(userID string, since time.Time) (int, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM workout_events WHERE user_id = ? AND day >= ?`,
		userID, since.Unix(),
	).Scan(&count)
	return count, err
}
