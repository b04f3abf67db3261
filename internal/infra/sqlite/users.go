package sqlite

import (
	"database/sql"
	"time"

	"github.com/spotter-app/spotter/internal/domain"
)

// ─── Users ──────────────────────────────────────────────────────────────────

// UpsertUser creates or updates a user record.
func (d *DB) UpsertUser(u domain.User) error {
	_, err := d.db.Exec(
		`INSERT INTO users (id, name, timezone, partner_id, created_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET name=excluded.name, timezone=excluded.timezone`,
		u.ID, u.Name, u.Timezone, u.PartnerID, u.CreatedAt.Unix(),
	)
	return err
}

// GetUser returns a user by id, or domain.ErrUserNotFound.
func (d *DB) GetUser(id string) (domain.User, error) {
	var u domain.User
	var createdAt int64
	err := d.db.QueryRow(
		`SELECT id, name, timezone, partner_id, created_at FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Name, &u.Timezone, &u.PartnerID, &createdAt)
	if err == sql.ErrNoRows {
		return u, domain.ErrUserNotFound
	}
	if err != nil {
		return u, err
	}
	u.CreatedAt = time.Unix(createdAt, 0).UTC()
	return u, nil
}

// ListUsers returns all users, oldest account first.
func (d *DB) ListUsers() ([]domain.User, error) {
	rows, err := d.db.Query(
		`SELECT id, name, timezone, partner_id, created_at FROM users ORDER BY created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		var createdAt int64
		if err := rows.Scan(&u.ID, &u.Name, &u.Timezone, &u.PartnerID, &createdAt); err != nil {
			return nil, err
		}
		u.CreatedAt = time.Unix(createdAt, 0).UTC()
		users = append(users, u)
	}
	return users, rows.Err()
}

// SetPartner pairs two users symmetrically.
func (d *DB) SetPartner(userID, partnerID string) error {
	if userID == partnerID {
		return domain.ErrSelfPartner
	}
	if _, err := d.GetUser(userID); err != nil {
		return err
	}
	if _, err := d.GetUser(partnerID); err != nil {
		return err
	}
	if _, err := d.db.Exec(`UPDATE users SET partner_id = ? WHERE id = ?`, partnerID, userID); err != nil {
		return err
	}
	_, err := d.db.Exec(`UPDATE users SET partner_id = ? WHERE id = ?`, userID, partnerID)
	return err
}

// Partner returns the paired user, or domain.ErrNoPartner.
// Implements domain.PartnerLookup.
func (d *DB) Partner(userID string) (domain.User, error) {
	u, err := d.GetUser(userID)
	if err != nil {
		return domain.User{}, err
	}
	if u.PartnerID == "" {
		return domain.User{}, domain.ErrNoPartner
	}
	return d.GetUser(u.PartnerID)
}
