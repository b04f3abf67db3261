package sqlite

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// ─── Points Ledger ──────────────────────────────────────────────────────────

// InsertLedgerEntry appends a points entry. The UNIQUE(event_id) constraint
// makes this idempotent: scoring an already-scored event is a successful
// no-op, reported as inserted=false.
func (d *DB) InsertLedgerEntry(e domain.PointsLedgerEntry) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO points_ledger (user_id, event_id, amount, multiplier, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.UserID, e.EventID, e.Amount, e.Multiplier, e.Reason, e.CreatedAt.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// TotalPoints sums the user's ledger.
func (d *DB) TotalPoints(userID string) (int64, error) {
	var total int64
	err := d.db.QueryRow(
		`SELECT COALESCE(SUM(amount), 0) FROM points_ledger WHERE user_id = ?`, userID,
	).Scan(&total)
	return total, err
}

// PointsSinceDay sums ledger entries whose workout fell on or after the
// given day. Windowed rollups follow the workout day, not the time the
// entry was written, so a backdated event lands in the same window as its
// workout count.
func (d *DB) PointsSinceDay(userID string, day time.Time) (int64, error) {
	var total int64
	err := d.db.QueryRow(
		`SELECT COALESCE(SUM(l.amount), 0)
		 FROM points_ledger l
		 JOIN workout_events e ON e.id = l.event_id
		 WHERE l.user_id = ? AND e.day >= ?`,
		userID, day.Unix(),
	).Scan(&total)
	return total, err
}

// LedgerEntries returns the user's most recent entries, newest first.
func (d *DB) LedgerEntries(userID string, limit int) ([]domain.PointsLedgerEntry, error) {
	rows, err := d.db.Query(
		`SELECT id, user_id, event_id, amount, multiplier, reason, created_at
		 FROM points_ledger WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.PointsLedgerEntry
	for rows.Next() {
		var e domain.PointsLedgerEntry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.UserID, &e.EventID, &e.Amount, &e.Multiplier, &e.Reason, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt = time.Unix(createdAt, 0).UTC()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
