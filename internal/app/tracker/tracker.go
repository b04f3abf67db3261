// Package tracker wires the accountability engine together: ingestion,
// streak recompute, scoring, badge evaluation, and celebration queuing run
// as one serialized sequence per user. Derived state is always recomputed
// from the authoritative event log, so every step is safe to retry.
package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spotter-app/spotter/internal/app/badge"
	"github.com/spotter-app/spotter/internal/app/celebration"
	"github.com/spotter-app/spotter/internal/app/ingest"
	"github.com/spotter-app/spotter/internal/app/leaderboard"
	"github.com/spotter-app/spotter/internal/app/scoring"
	"github.com/spotter-app/spotter/internal/app/streak"
	"github.com/spotter-app/spotter/internal/domain"
	"github.com/spotter-app/spotter/internal/infra/metrics"
	"github.com/spotter-app/spotter/internal/infra/sqlite"
	"github.com/spotter-app/spotter/internal/infra/userlock"
)

// Tracker is the accountability engine service.
type Tracker struct {
	db      *sqlite.DB
	locks   *userlock.Registry
	scoring scoring.Config
	catalog []domain.Badge
	gen     domain.TextGenerator

	mu           sync.Mutex
	celebrations map[string]*celebration.Queue

	now func() time.Time // injectable for tests
}

// New creates a tracker. gen may be nil — nudges then always use the
// static fallback templates.
func New(db *sqlite.DB, gen domain.TextGenerator, cfg scoring.Config) *Tracker {
	return &Tracker{
		db:           db,
		locks:        userlock.NewRegistry(),
		scoring:      cfg,
		catalog:      badge.Catalog(),
		gen:          gen,
		celebrations: make(map[string]*celebration.Queue),
		now:          time.Now,
	}
}

// SetClock overrides the tracker's clock. Test hook.
func (t *Tracker) SetClock(now func() time.Time) { t.now = now }

// ─── Recording ──────────────────────────────────────────────────────────────

// RecordResult reports what one accepted workout changed.
type RecordResult struct {
	Event     domain.WorkoutEvent      `json:"event"`
	Entry     domain.PointsLedgerEntry `json:"entry"`
	Streak    domain.StreakState       `json:"streak"`
	NewBadges []domain.Badge           `json:"new_badges,omitempty"`
	LeveledUp bool                     `json:"leveled_up"`
}

// RecordWorkout ingests one raw workout record. The whole read-modify-write
// — streak recompute, ledger append, badge threshold-cross check — runs
// under the user's lock so a concurrent event for the same user can never
// observe a stale "previous value". Different users proceed in parallel.
//
// A replayed event id still runs the full pipeline: the ledger append and
// badge awards are idempotent, so a replay finishes whatever a crash
// between the event insert and the ledger append left undone. Only when
// the replay finds everything already written does it return
// domain.ErrDuplicateEvent — a no-op signal, not a failure.
func (t *Tracker) RecordWorkout(ctx context.Context, raw domain.RawWorkout) (RecordResult, error) {
	now := t.now()

	ev, err := ingest.Normalize(raw, now)
	if err != nil {
		metrics.WorkoutsRejected.WithLabelValues(rejectReason(err)).Inc()
		return RecordResult{}, err
	}

	unlock := t.locks.Lock(ev.UserID)
	defer unlock()

	if err := t.ensureUser(ev.UserID); err != nil {
		return RecordResult{}, err
	}

	exists, err := t.db.EventExists(ev.ID)
	if err != nil {
		return RecordResult{}, fmt.Errorf("check event: %w", err)
	}

	prev, _, err := t.snapshot(ev.UserID, now)
	if err != nil {
		return RecordResult{}, err
	}

	// On a replay the event row is already in history, so the snapshot
	// above includes it. Keep going anyway: the idempotent ledger append
	// below tells us whether this replay is a crash remnant that still
	// needs scoring or a true duplicate. Badges are evaluated against a
	// zero base so any threshold the first attempt missed fires now —
	// awards are at-most-once per user, so re-crossing is harmless.
	badgeBase := prev
	if exists {
		badgeBase = badge.Snapshot{}
	} else if err := t.db.InsertWorkoutEvent(ev); err != nil {
		return RecordResult{}, fmt.Errorf("insert event: %w", err)
	}

	// Recompute from full history — never an incremental delta.
	next, state, err := t.snapshot(ev.UserID, now)
	if err != nil {
		return RecordResult{}, err
	}

	entry := t.scoring.ScoreEvent(ev, state.CurrentStreak, now)
	inserted, err := t.db.InsertLedgerEntry(entry)
	if err != nil {
		return RecordResult{}, fmt.Errorf("insert ledger entry: %w", err)
	}
	if inserted {
		metrics.PointsAwarded.Add(float64(entry.Amount))
		// The ledger moved, so points-derived metrics need the fresh value.
		next.TotalPoints += entry.Amount
		next.Level = t.scoring.LevelForPoints(next.TotalPoints)
	} else if exists {
		// Event and ledger entry both present: a fully-scored duplicate.
		metrics.WorkoutsRejected.WithLabelValues("duplicate").Inc()
		return RecordResult{}, domain.ErrDuplicateEvent
	}

	result := RecordResult{
		Event:     ev,
		Entry:     entry,
		Streak:    state,
		LeveledUp: next.Level > prev.Level,
	}
	if result.LeveledUp {
		metrics.LevelUps.Inc()
	}

	fired, err := badge.Evaluate(badgeBase, next, t.catalog)
	if err != nil {
		return RecordResult{}, fmt.Errorf("evaluate badges: %w", err)
	}
	for _, b := range fired {
		awarded, err := t.db.InsertBadgeAward(ev.UserID, b.ID, now)
		if err != nil {
			return RecordResult{}, fmt.Errorf("award badge %s: %w", b.ID, err)
		}
		if !awarded {
			continue // lost a race or replay — already held, success
		}
		result.NewBadges = append(result.NewBadges, b)
		metrics.BadgesAwarded.WithLabelValues(string(b.Rarity)).Inc()
		t.queueFor(ev.UserID).Enqueue(celebration.Item{Badge: b, AwardedAt: now})
	}

	metrics.WorkoutsRecorded.Inc()
	return result, nil
}

func rejectReason(err error) string {
	switch err {
	case domain.ErrFutureEvent:
		return "future_dated"
	case domain.ErrMissingUser:
		return "missing_user"
	case domain.ErrDuplicateEvent:
		return "duplicate"
	default:
		return "invalid"
	}
}

// ensureUser registers unknown users on first contact so multi-device
// ingestion does not depend on registration ordering.
func (t *Tracker) ensureUser(userID string) error {
	_, err := t.db.GetUser(userID)
	if err == domain.ErrUserNotFound {
		return t.db.UpsertUser(domain.User{
			ID: userID, Name: userID, Timezone: "UTC", CreatedAt: t.now(),
		})
	}
	return err
}

// ─── Derived State ──────────────────────────────────────────────────────────

// snapshot builds the badge snapshot and streak state from the event log
// and ledger. Always authoritative, never cached.
func (t *Tracker) snapshot(userID string, now time.Time) (badge.Snapshot, domain.StreakState, error) {
	days, err := t.db.WorkoutDays(userID)
	if err != nil {
		return badge.Snapshot{}, domain.StreakState{}, fmt.Errorf("workout days: %w", err)
	}
	state := streak.Compute(userID, days, now)

	total, err := t.db.TotalPoints(userID)
	if err != nil {
		return badge.Snapshot{}, state, fmt.Errorf("total points: %w", err)
	}
	count, err := t.db.WorkoutCount(userID)
	if err != nil {
		return badge.Snapshot{}, state, fmt.Errorf("workout count: %w", err)
	}

	return badge.Snapshot{
		CurrentStreak: state.CurrentStreak,
		LongestStreak: state.LongestStreak,
		TotalWorkouts: count,
		TotalPoints:   total,
		Level:         t.scoring.LevelForPoints(total),
	}, state, nil
}

// Stats assembles the full derived stats for a user.
func (t *Tracker) Stats(userID string) (domain.UserGameStats, error) {
	u, err := t.db.GetUser(userID)
	if err != nil {
		return domain.UserGameStats{}, err
	}

	now := t.now()
	snap, state, err := t.snapshot(userID, now)
	if err != nil {
		return domain.UserGameStats{}, err
	}

	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, 0, -30)

	weeklyPts, err := t.db.PointsSinceDay(userID, domain.DayOf(weekStart))
	if err != nil {
		return domain.UserGameStats{}, err
	}
	monthlyPts, err := t.db.PointsSinceDay(userID, domain.DayOf(monthStart))
	if err != nil {
		return domain.UserGameStats{}, err
	}
	weeklyCount, err := t.db.WorkoutCountSince(userID, domain.DayOf(weekStart))
	if err != nil {
		return domain.UserGameStats{}, err
	}
	monthlyCount, err := t.db.WorkoutCountSince(userID, domain.DayOf(monthStart))
	if err != nil {
		return domain.UserGameStats{}, err
	}

	return domain.UserGameStats{
		UserID:                userID,
		UserName:              u.Name,
		TotalPoints:           snap.TotalPoints,
		WeeklyPoints:          weeklyPts,
		MonthlyPoints:         monthlyPts,
		TotalWorkouts:         snap.TotalWorkouts,
		WeeklyWorkouts:        weeklyCount,
		MonthlyWorkouts:       monthlyCount,
		CurrentStreak:         state.CurrentStreak,
		LongestStreak:         state.LongestStreak,
		Level:                 snap.Level,
		ConsistencyMultiplier: t.scoring.Multiplier(state.CurrentStreak),
		CreatedAt:             u.CreatedAt,
	}, nil
}

// Streak returns the user's current streak state.
func (t *Tracker) Streak(userID string) (domain.StreakState, error) {
	days, err := t.db.WorkoutDays(userID)
	if err != nil {
		return domain.StreakState{}, err
	}
	return streak.Compute(userID, days, t.now()), nil
}

// Badges returns the user's awards with catalog definitions attached.
func (t *Tracker) Badges(userID string) ([]celebration.Item, error) {
	awards, err := t.db.ListBadgeAwards(userID)
	if err != nil {
		return nil, err
	}
	items := make([]celebration.Item, 0, len(awards))
	for _, a := range awards {
		b, ok := badge.ByID(a.BadgeID)
		if !ok {
			b = domain.Badge{ID: a.BadgeID} // retired from catalog, still owned
		}
		items = append(items, celebration.Item{Badge: b, AwardedAt: a.AwardedAt})
	}
	return items, nil
}

// ─── Celebrations ───────────────────────────────────────────────────────────

func (t *Tracker) queueFor(userID string) *celebration.Queue {
	t.mu.Lock()
	defer t.mu.Unlock()
	q, ok := t.celebrations[userID]
	if !ok {
		q = celebration.New(celebration.DefaultCapacity)
		t.celebrations[userID] = q
	}
	return q
}

// NextCelebration pops the user's oldest pending celebration.
func (t *Tracker) NextCelebration(userID string) (celebration.Item, bool) {
	unlock := t.locks.Lock(userID)
	defer unlock()
	return t.queueFor(userID).Dequeue()
}

// PendingCelebrations returns how many celebrations are queued.
func (t *Tracker) PendingCelebrations(userID string) int {
	unlock := t.locks.Lock(userID)
	defer unlock()
	return t.queueFor(userID).Len()
}

// ─── Leaderboard & Comparison ───────────────────────────────────────────────

// Leaderboard ranks all users.
func (t *Tracker) Leaderboard() ([]domain.UserGameStats, error) {
	users, err := t.db.ListUsers()
	if err != nil {
		return nil, err
	}
	stats := make([]domain.UserGameStats, 0, len(users))
	for _, u := range users {
		s, err := t.Stats(u.ID)
		if err != nil {
			return nil, fmt.Errorf("stats for %s: %w", u.ID, err)
		}
		stats = append(stats, s)
	}
	return leaderboard.Rank(stats), nil
}

// Compare produces the head-to-head verdict between two users.
func (t *Tracker) Compare(userID, otherID string) (leaderboard.Verdict, error) {
	a, err := t.Stats(userID)
	if err != nil {
		return leaderboard.Verdict{}, err
	}
	b, err := t.Stats(otherID)
	if err != nil {
		return leaderboard.Verdict{}, err
	}
	return leaderboard.HeadToHead(a, b), nil
}
