package ingest_test

import (
	"testing"
	"time"

	"github.com/spotter-app/spotter/internal/app/ingest"
	"github.com/spotter-app/spotter/internal/domain"
)

var now = time.Date(2025, 7, 10, 14, 30, 0, 0, time.UTC)

func TestNormalize_Valid(t *testing.T) {
	raw := domain.RawWorkout{
		EventID:         "ev-1",
		UserID:          "u1",
		CompletedAt:     now.Add(-2 * time.Hour),
		DurationMinutes: 45,
	}
	ev, err := ingest.Normalize(raw, now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ev.ID != "ev-1" || ev.UserID != "u1" || ev.DurationMinutes != 45 {
		t.Errorf("unexpected event: %+v", ev)
	}
	want := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)
	if !ev.Day.Equal(want) {
		t.Errorf("day should truncate to midnight UTC, got %v", ev.Day)
	}
}

func TestNormalize_GeneratesMissingID(t *testing.T) {
	raw := domain.RawWorkout{UserID: "u1", CompletedAt: now}
	ev, err := ingest.Normalize(raw, now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ev.ID == "" {
		t.Error("expected a generated event id")
	}
}

func TestNormalize_RejectsFutureDated(t *testing.T) {
	raw := domain.RawWorkout{UserID: "u1", CompletedAt: now.AddDate(0, 0, 1)}
	if _, err := ingest.Normalize(raw, now); err != domain.ErrFutureEvent {
		t.Errorf("expected ErrFutureEvent, got %v", err)
	}

	// Later the same day is fine — only a later calendar day is future.
	sameDay := domain.RawWorkout{UserID: "u1", CompletedAt: now.Add(5 * time.Hour)}
	if _, err := ingest.Normalize(sameDay, now); err != nil {
		t.Errorf("same-day event rejected: %v", err)
	}
}

func TestNormalize_RejectsMissingUser(t *testing.T) {
	raw := domain.RawWorkout{CompletedAt: now}
	if _, err := ingest.Normalize(raw, now); err != domain.ErrMissingUser {
		t.Errorf("expected ErrMissingUser, got %v", err)
	}
}

func TestNormalize_ClampsNegativeDuration(t *testing.T) {
	raw := domain.RawWorkout{UserID: "u1", CompletedAt: now, DurationMinutes: -10}
	ev, err := ingest.Normalize(raw, now)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if ev.DurationMinutes != 0 {
		t.Errorf("expected clamped duration, got %d", ev.DurationMinutes)
	}
}
