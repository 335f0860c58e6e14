package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
)

// Stadium represents a venue. Every stadium carries the same implicit seat
// grid (10 rows of 20 seats) used when a match is scheduled there; the
// capacity column is display data only.
type Stadium struct {
	ID        uint64 `json:"stadium_id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	Capacity  uint32 `json:"capacity"`
	ImageURL  string `json:"image,omitempty"`
	CreatedAt string `json:"-"`
	UpdatedAt string `json:"-"`
}

// ErrStadiumNotFound is returned when a stadium lookup yields no rows.
var ErrStadiumNotFound = errors.New("stadium not found")

type StadiumRepo struct {
	db *sql.DB
}

func NewStadiumRepo(db *sql.DB) *StadiumRepo { return &StadiumRepo{db: db} }

// Create inserts a stadium and populates ID and timestamps.
func (r *StadiumRepo) Create(ctx context.Context, s *Stadium) error {
	const q = `INSERT INTO stadiums (name, location, capacity, image_url) VALUES (?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Name, s.Location, s.Capacity, s.ImageURL)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM stadiums WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, s.ID).Scan(&s.CreatedAt, &s.UpdatedAt)
}

// GetByID fetches a stadium by id.
func (r *StadiumRepo) GetByID(ctx context.Context, id uint64) (*Stadium, error) {
	const q = `SELECT id, name, location, capacity, image_url, created_at, updated_at FROM stadiums WHERE id = ?`
	var s Stadium
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&s.ID, &s.Name, &s.Location, &s.Capacity, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStadiumNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListAll returns every stadium ordered by id.
func (r *StadiumRepo) ListAll(ctx context.Context) ([]*Stadium, error) {
	const q = `SELECT id, name, location, capacity, image_url, created_at, updated_at FROM stadiums ORDER BY id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*Stadium
	for rows.Next() {
		s := new(Stadium)
		if err := rows.Scan(&s.ID, &s.Name, &s.Location, &s.Capacity, &s.ImageURL, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a stadium. Returns sql.ErrNoRows
// when the stadium does not exist.
func (r *StadiumRepo) Update(ctx context.Context, id uint64, name, location string, capacity uint32, imageURL string) error {
	const q = `UPDATE stadiums
	           SET name = ?, location = ?, capacity = ?, image_url = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, name, location, capacity, imageURL, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a stadium unless matches still reference it.
func (r *StadiumRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM stadiums WHERE id = ?`, id)
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
