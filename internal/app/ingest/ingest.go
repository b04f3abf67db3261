// Package ingest normalizes raw workout completion records into canonical
// events. Rejections here are no-op signals to the caller — nothing in the
// ledger or streak state moves for a rejected record.
package ingest

import (
	"time"

	"github.com/google/uuid"

	"github.com/spotter-app/spotter/internal/domain"
)

// Normalize validates a raw record and produces the canonical event.
// A blank event id gets a generated UUID; clients that need retry-safe
// delivery supply their own id so replays dedupe at the ledger.
func Normalize(raw domain.RawWorkout, now time.Time) (domain.WorkoutEvent, error) {
	if raw.UserID == "" {
		return domain.WorkoutEvent{}, domain.ErrMissingUser
	}

	day := domain.DayOf(raw.CompletedAt)
	if day.After(domain.DayOf(now)) {
		return domain.WorkoutEvent{}, domain.ErrFutureEvent
	}

	id := raw.EventID
	if id == "" {
		id = uuid.NewString()
	}

	duration := raw.DurationMinutes
	if duration < 0 {
		duration = 0
	}

	return domain.WorkoutEvent{
		ID:              id,
		UserID:          raw.UserID,
		Day:             day,
		DurationMinutes: duration,
		RecordedAt:      now,
	}, nil
}
