package sqlite

import (
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// ─── Badge Awards ───────────────────────────────────────────────────────────

// InsertBadgeAward records a badge unlock. The (user_id, badge_id) primary
// key makes awarding at-most-once: a concurrent double-fire loses the race
// and is reported as inserted=false, which callers treat as success.
func (d *DB) InsertBadgeAward(userID, badgeID string, at time.Time) (bool, error) {
	result, err := d.db.Exec(
		`INSERT OR IGNORE INTO badge_awards (user_id, badge_id, awarded_at) VALUES (?, ?, ?)`,
		userID, badgeID, at.Unix(),
	)
	if err != nil {
		return false, err
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// HasBadge reports whether the user holds a badge.
func (d *DB) HasBadge(userID, badgeID string) (bool, error) {
	var count int
	err := d.db.QueryRow(
		`SELECT COUNT(*) FROM badge_awards WHERE user_id = ? AND badge_id = ?`,
		userID, badgeID,
	).Scan(&count)
	return count > 0, err
}

// ListBadgeAwards returns the user's awards, newest first.
func (d *DB) ListBadgeAwards(userID string) ([]domain.BadgeAward, error) {
	rows, err := d.db.Query(
		`SELECT user_id, badge_id, awarded_at FROM badge_awards
		 WHERE user_id = ? ORDER BY awarded_at DESC`, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []domain.BadgeAward
	for rows.Next() {
		var a domain.BadgeAward
		var at int64
		if err := rows.Scan(&a.UserID, &a.BadgeID, &at); err != nil {
			return nil, err
		}
		a.AwardedAt = time.Unix(at, 0).UTC()
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

// LatestBadgeAward returns the time of the user's most recent award.
// ok=false when the user has no badges.
func (d *DB) LatestBadgeAward(userID string) (time.Time, bool, error) {
	var at int64
	err := d.db.QueryRow(
		`SELECT COALESCE(MAX(awarded_at), 0) FROM badge_awards WHERE user_id = ?`, userID,
	).Scan(&at)
	if err != nil {
		return time.Time{}, false, err
	}
	if at == 0 {
		return time.Time{}, false, nil
	}
	return time.Unix(at, 0).UTC(), true, nil
}
