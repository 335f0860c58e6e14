package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Match mirrors the 'matches' table. A match has a single ticket price for
// the whole ground; there is no per-seat pricing.
type Match struct {
	ID          uint64
	Team1ID     uint64
	Team2ID     uint64
	StadiumID   uint64
	StartsAt    time.Time
	TicketPrice uint32
	Status      string // SCHEDULED | CANCELLED | FINISHED
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MatchDetail is the public view of a match with its teams and stadium
// embedded, matching what the storefront renders on the home page.
type MatchDetail struct {
	ID          uint64  `json:"match_id"`
	StartsAt    string  `json:"match_date"`
	TicketPrice uint32  `json:"ticket_price"`
	Status      string  `json:"status"`
	Team1       Team    `json:"team1"`
	Team2       Team    `json:"team2"`
	Stadium     Stadium `json:"stadium"`
}

// ErrMatchNotFound is returned when a match lookup yields no rows.
var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	db *sql.DB
}

func NewMatchRepo(db *sql.DB) *MatchRepo { return &MatchRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span matches, seats and tickets.
func (r *MatchRepo) DB() *sql.DB { return r.db }

// CreateTx inserts a match and populates the generated ID. It takes a
// transaction because the caller seeds the seat grid in the same unit.
func (r *MatchRepo) CreateTx(ctx context.Context, tx *sql.Tx, m *Match) error {
	const q = `INSERT INTO matches (team1_id, team2_id, stadium_id, starts_at, ticket_price, status)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		m.Team1ID, m.Team2ID, m.StadiumID, m.StartsAt.UTC().Format("2006-01-02 15:04:05"), m.TicketPrice, m.Status)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return nil
}

// GetByID fetches the raw match row without joined reference data.
func (r *MatchRepo) GetByID(ctx context.Context, id uint64) (*Match, error) {
	const q = `SELECT id, team1_id, team2_id, stadium_id, starts_at, ticket_price, status, created_at, updated_at
	           FROM matches WHERE id = ?`
	var m Match
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&m.ID, &m.Team1ID, &m.Team2ID, &m.StadiumID, &m.StartsAt, &m.TicketPrice, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

const matchDetailColumns = `m.id, m.starts_at, m.ticket_price, m.status,
	       t1.id, t1.name, t1.coach, t1.captain, t1.logo_url,
	       t2.id, t2.name, t2.coach, t2.captain, t2.logo_url,
	       s.id, s.name, s.location, s.capacity, s.image_url`

const matchDetailFrom = ` FROM matches m
	JOIN teams t1 ON t1.id = m.team1_id
	JOIN teams t2 ON t2.id = m.team2_id
	JOIN stadiums s ON s.id = m.stadium_id`

const matchDetailSelect = `SELECT ` + matchDetailColumns + matchDetailFrom

func scanMatchDetail(row interface {
	Scan(dest ...any) error
}) (*MatchDetail, error) {
	var d MatchDetail
	var startsAt time.Time
	if err := row.Scan(
		&d.ID, &startsAt, &d.TicketPrice, &d.Status,
		&d.Team1.ID, &d.Team1.Name, &d.Team1.Coach, &d.Team1.Captain, &d.Team1.LogoURL,
		&d.Team2.ID, &d.Team2.Name, &d.Team2.Coach, &d.Team2.Captain, &d.Team2.LogoURL,
		&d.Stadium.ID, &d.Stadium.Name, &d.Stadium.Location, &d.Stadium.Capacity, &d.Stadium.ImageURL,
	); err != nil {
		return nil, err
	}
	d.StartsAt = startsAt.UTC().Format(time.RFC3339)
	return &d, nil
}

// GetDetail fetches a match with its teams and stadium joined in.
func (r *MatchRepo) GetDetail(ctx context.Context, id uint64) (*MatchDetail, error) {
	d, err := scanMatchDetail(r.db.QueryRowContext(ctx, matchDetailSelect+` WHERE m.id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return d, nil
}

// ListDetails returns every match with reference data, soonest first.
func (r *MatchRepo) ListDetails(ctx context.Context) ([]*MatchDetail, error) {
	rows, err := r.db.QueryContext(ctx, matchDetailSelect+` ORDER BY m.starts_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*MatchDetail, 0)
	for rows.Next() {
		d, err := scanMatchDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update replaces the mutable fields of a match. Returns sql.ErrNoRows when
// the match does not exist.
func (r *MatchRepo) Update(ctx context.Context, id uint64, m *Match) error {
	const q = `UPDATE matches
	           SET team1_id = ?, team2_id = ?, stadium_id = ?, starts_at = ?, ticket_price = ?, status = ?,
	               updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		m.Team1ID, m.Team2ID, m.StadiumID, m.StartsAt.UTC().Format("2006-01-02 15:04:05"), m.TicketPrice, m.Status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a match together with its seat grid. Matches that already
// sold tickets cannot be removed and yield ErrConflict. Everything runs in
// one transaction to keep the seat grid consistent.
func (r *MatchRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	var exists uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM matches WHERE id = ?`, id).Scan(&exists); err != nil {
		return err
	}
	var sold int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tickets WHERE match_id = ?`, id).Scan(&sold); err != nil {
		return err
	}
	if sold > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM match_seats WHERE match_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM matches WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
