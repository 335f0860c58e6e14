package repository

import (
	"context"
	"database/sql"
	"strings"
)

// MatchSeat is one seat of a match's 200-seat grid. Rows are created when
// the match is scheduled and only their status ever changes afterwards.
type MatchSeat struct {
	ID        uint64 `json:"seat_id"`
	MatchID   uint64 `json:"match_id"`
	StadiumID uint64 `json:"stadium_id"`
	SeatLabel string `json:"seat_label"`
	Status    string `json:"status"` // AVAILABLE | BOOKED
}

type MatchSeatRepo struct {
	db *sql.DB
}

func NewMatchSeatRepo(db *sql.DB) *MatchSeatRepo { return &MatchSeatRepo{db: db} }

// CreateBulkTx inserts a whole seat grid in one statement. Only the
// SeatLabel and Status fields of each seat are consulted.
func (r *MatchSeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, matchID, stadiumID uint64, seats []MatchSeat) error {
	if len(seats) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString("INSERT INTO match_seats (match_id, stadium_id, seat_label, status) VALUES ")
	args := make([]any, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString("(?,?,?,?)")
		args = append(args, matchID, stadiumID, s.SeatLabel, s.Status)
	}
	_, err := tx.ExecContext(ctx, sb.String(), args...)
	return err
}

// ListByMatch returns the full seat grid for a match in label order
// (row A first, seat 01 first within each row).
func (r *MatchSeatRepo) ListByMatch(ctx context.Context, matchID uint64) ([]*MatchSeat, error) {
	const q = `SELECT id, match_id, stadium_id, seat_label, status FROM match_seats WHERE match_id = ? ORDER BY seat_label`
	rows, err := r.db.QueryContext(ctx, q, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]*MatchSeat, 0, 200)
	for rows.Next() {
		s := new(MatchSeat)
		if err := rows.Scan(&s.ID, &s.MatchID, &s.StadiumID, &s.SeatLabel, &s.Status); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountAvailable returns how many seats of a match are still open.
func (r *MatchSeatRepo) CountAvailable(ctx context.Context, matchID uint64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM match_seats WHERE match_id = ? AND status = 'AVAILABLE'`, matchID).Scan(&n)
	return n, err
}

// LockSeatsTx loads the requested seats of a match with a row lock and
// returns them keyed by ID. Seats of other matches are ignored, so a
// missing key means the caller asked for a seat that does not exist here.
func (r *MatchSeatRepo) LockSeatsTx(ctx context.Context, tx *sql.Tx, matchID uint64, seatIDs []uint64) (map[uint64]*MatchSeat, error) {
	if len(seatIDs) == 0 {
		return map[uint64]*MatchSeat{}, nil
	}
	q := `SELECT id, match_id, stadium_id, seat_label, status FROM match_seats
	      WHERE match_id = ? AND id IN (` + placeholders(len(seatIDs)) + `) FOR UPDATE`
	args := make([]any, 0, len(seatIDs)+1)
	args = append(args, matchID)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	rows, err := tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[uint64]*MatchSeat, len(seatIDs))
	for rows.Next() {
		s := new(MatchSeat)
		if err := rows.Scan(&s.ID, &s.MatchID, &s.StadiumID, &s.SeatLabel, &s.Status); err != nil {
			return nil, err
		}
		out[s.ID] = s
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// BookTx flips the given seats from AVAILABLE to BOOKED. If any seat was
// taken in the meantime the affected-row count falls short and the whole
// booking fails with ErrSeatsUnavailable.
func (r *MatchSeatRepo) BookTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	q := `UPDATE match_seats SET status = 'BOOKED', version = version + 1 WHERE id IN (` + placeholders(len(seatIDs)) + `) AND status = 'AVAILABLE'`
	args := make([]any, len(seatIDs))
	for i, id := range seatIDs {
		args[i] = id
	}
	res, err := tx.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n != int64(len(seatIDs)) {
		return ErrSeatsUnavailable
	}
	return nil
}

// ReleaseTx puts seats back on sale after a ticket is cancelled.
func (r *MatchSeatRepo) ReleaseTx(ctx context.Context, tx *sql.Tx, seatIDs []uint64) error {
	if len(seatIDs) == 0 {
		return nil
	}
	q := `UPDATE match_seats SET status = 'AVAILABLE', version = version + 1 WHERE id IN (` + placeholders(len(seatIDs)) + `)`
	args := make([]any, len(seatIDs))
	for i, id := range seatIDs {
		args[i] = id
	}
	_, err := tx.ExecContext(ctx, q, args...)
	return err
}

// placeholders returns n comma separated '?' marks for IN clauses.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
