package repository

// Teams are immutable reference data from the storefront's point of view;
// only the admin console writes to this table.

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Team represents a cricket team persisted in the database.
type Team struct {
	ID        uint64 `json:"team_id"`
	Name      string `json:"team_name"`
	Coach     string `json:"coach"`
	Captain   string `json:"captain"`
	LogoURL   string `json:"logo,omitempty"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// ErrTeamNotFound is returned when a team lookup yields no rows.
var ErrTeamNotFound = errors.New("team not found")

type TeamRepo struct {
	db *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo { return &TeamRepo{db: db} }

// Create inserts a team. On success the ID field is populated and the
// timestamp columns are read back so callers get a complete record.
func (r *TeamRepo) Create(ctx context.Context, t *Team) error {
	const q = `INSERT INTO teams (name, coach, captain, logo_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, t.Name, t.Coach, t.Captain, t.LogoURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	t.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM teams WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID fetches a team by id.
func (r *TeamRepo) GetByID(ctx context.Context, id uint64) (*Team, error) {
	const q = `SELECT id, name, coach, captain, logo_url, created_at, updated_at FROM teams WHERE id = ?`
	var t Team
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&t.ID, &t.Name, &t.Coach, &t.Captain, &t.LogoURL, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListAll returns every team ordered by id. Used by the public browse API
// and the admin console alike.
func (r *TeamRepo) ListAll(ctx context.Context) ([]*Team, error) {
	const q = `SELECT id, name, coach, captain, logo_url, created_at, updated_at FROM teams ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Team
	for rows.Next() {
		t := new(Team)
		if err := rows.Scan(&t.ID, &t.Name, &t.Coach, &t.Captain, &t.LogoURL, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a team. It returns sql.ErrNoRows
// when the team does not exist.
func (r *TeamRepo) Update(ctx context.Context, id uint64, name, coach, captain, logoURL string) error {
	const q = `UPDATE teams
	           SET name = ?, coach = ?, captain = ?, logo_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, coach, captain, logoURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a team. Teams still referenced by matches cannot be
// removed; the FK restriction (MySQL error 1451) surfaces as ErrConflict.
func (r *TeamRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, id)
	if err != nil {
		if strings.Contains(err.Error(), "1451") {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
