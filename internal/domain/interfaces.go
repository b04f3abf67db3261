package domain

import (
	"context"
	"time"
)

// ─── Collaborator Interfaces ────────────────────────────────────────────────
// These interfaces define the engine's external boundaries.
// Infrastructure implements them; application packages depend on them.

// EventSource supplies a user's normalized workout history from storage.
// The engine never writes raw events through this interface — only the
// ingest path appends, and derived state is always recomputed from here.
type EventSource interface {
	// WorkoutDays returns the ascending, deduplicated calendar days
	// (DayOf-truncated) on which the user worked out.
	WorkoutDays(userID string) ([]time.Time, error)

	// WorkoutEvents returns the user's full event history, ascending.
	WorkoutEvents(userID string) ([]WorkoutEvent, error)
}

// PartnerLookup supplies the paired user for comparison classification.
// A missing partner is not an error condition for the classifier — the
// buddy_ahead branch simply falls through the priority order.
type PartnerLookup interface {
	// Partner returns the paired user, or ErrNoPartner.
	Partner(userID string) (User, error)
}

// TextGenerator produces motivational/shame message text from a
// descriptor. It may fail or exceed its deadline; callers must substitute
// a deterministic static fallback and never surface the failure.
type TextGenerator interface {
	Generate(ctx context.Context, req MessageRequest) (string, error)
}
