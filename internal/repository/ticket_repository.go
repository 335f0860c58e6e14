package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Ticket mirrors the 'tickets' table. A ticket covers exactly one seat;
// booking several seats produces several tickets in the same transaction.
type Ticket struct {
	ID       uint64
	UserID   uint64
	MatchID  uint64
	SeatID   uint64
	BookedAt time.Time
	Status   string // CONFIRMED | CANCELLED
}

// TicketDetail is the joined view served to customers: the ticket plus its
// seat, the match it belongs to and the payment state.
type TicketDetail struct {
	ID              uint64  `json:"ticket_id"`
	Status          string  `json:"status"`
	BookedAt        string  `json:"booked_at"`
	SeatID          uint64  `json:"seat_id"`
	SeatLabel       string  `json:"seat_label"`
	MatchID         uint64  `json:"match_id"`
	MatchDate       string  `json:"match_date"`
	Team1Name       string  `json:"team1_name"`
	Team2Name       string  `json:"team2_name"`
	StadiumName     string  `json:"stadium_name"`
	StadiumLocation string  `json:"stadium_location"`
	Amount          uint32  `json:"amount"`
	PaymentStatus   string  `json:"payment_status"`
	PaidAt          *string `json:"paid_at,omitempty"`
	CardLast4       string  `json:"card_last4,omitempty"`
}

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepo struct {
	db *sql.DB
}

func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateTx inserts a CONFIRMED ticket for one seat and returns its ID.
func (r *TicketRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, matchID, seatID uint64) (uint64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO tickets (user_id, match_id, seat_id, status) VALUES (?, ?, ?, 'CONFIRMED')`,
		userID, matchID, seatID)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const ticketDetailSelect = `SELECT tk.id, tk.status, tk.booked_at, tk.user_id,
	       ms.id, ms.seat_label,
	       m.id, m.starts_at,
	       t1.name, t2.name, s.name, s.location,
	       p.amount, p.status, p.paid_at, p.card_last4
	FROM tickets tk
	JOIN match_seats ms ON ms.id = tk.seat_id
	JOIN matches m ON m.id = tk.match_id
	JOIN teams t1 ON t1.id = m.team1_id
	JOIN teams t2 ON t2.id = m.team2_id
	JOIN stadiums s ON s.id = m.stadium_id
	JOIN payments p ON p.ticket_id = tk.id`

func scanTicketDetail(row interface {
	Scan(dest ...any) error
}) (*TicketDetail, uint64, error) {
	var (
		d         TicketDetail
		ownerID   uint64
		bookedAt  time.Time
		matchDate time.Time
		paidAt    sql.NullTime
		last4     sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.Status, &bookedAt, &ownerID,
		&d.SeatID, &d.SeatLabel,
		&d.MatchID, &matchDate,
		&d.Team1Name, &d.Team2Name, &d.StadiumName, &d.StadiumLocation,
		&d.Amount, &d.PaymentStatus, &paidAt, &last4,
	)
	if err != nil {
		return nil, 0, err
	}
	d.BookedAt = bookedAt.UTC().Format(time.RFC3339)
	d.MatchDate = matchDate.UTC().Format(time.RFC3339)
	if paidAt.Valid {
		ts := paidAt.Time.UTC().Format(time.RFC3339)
		d.PaidAt = &ts
	}
	if last4.Valid {
		d.CardLast4 = last4.String
	}
	return &d, ownerID, nil
}

// GetDetailForUser loads one ticket with its joined context. It returns
// ErrTicketNotFound for unknown IDs and ErrForbidden when the ticket
// belongs to someone else.
func (r *TicketRepo) GetDetailForUser(ctx context.Context, ticketID, userID uint64) (*TicketDetail, error) {
	d, ownerID, err := scanTicketDetail(
		r.db.QueryRowContext(ctx, ticketDetailSelect+` WHERE tk.id = ?`, ticketID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	if ownerID != userID {
		return nil, ErrForbidden
	}
	return d, nil
}

// ListByUser returns all of a customer's tickets, newest booking first.
func (r *TicketRepo) ListByUser(ctx context.Context, userID uint64) ([]*TicketDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		ticketDetailSelect+` WHERE tk.user_id = ? ORDER BY tk.booked_at DESC, tk.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketDetails(rows)
}

// ListByMatch returns every ticket sold for a match. Admin only.
func (r *TicketRepo) ListByMatch(ctx context.Context, matchID uint64) ([]*TicketDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		ticketDetailSelect+` WHERE tk.match_id = ? ORDER BY tk.id`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTicketDetails(rows)
}

func collectTicketDetails(rows *sql.Rows) ([]*TicketDetail, error) {
	out := make([]*TicketDetail, 0)
	for rows.Next() {
		d, _, err := scanTicketDetail(rows)
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

// GetForCancelTx loads a ticket and its match start time under a row lock
// so the cancel decision cannot race a status change.
func (r *TicketRepo) GetForCancelTx(ctx context.Context, tx *sql.Tx, ticketID uint64) (*Ticket, time.Time, error) {
	var (
		t        Ticket
		startsAt time.Time
	)
	err := tx.QueryRowContext(ctx,
		`SELECT tk.id, tk.user_id, tk.match_id, tk.seat_id, tk.booked_at, tk.status, m.starts_at
		 FROM tickets tk JOIN matches m ON m.id = tk.match_id
		 WHERE tk.id = ? FOR UPDATE`, ticketID).
		Scan(&t.ID, &t.UserID, &t.MatchID, &t.SeatID, &t.BookedAt, &t.Status, &startsAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, time.Time{}, ErrTicketNotFound
		}
		return nil, time.Time{}, err
	}
	return &t, startsAt, nil
}

// CancelTx marks a CONFIRMED ticket CANCELLED. Returns sql.ErrNoRows if the
// ticket was not in a cancellable state.
func (r *TicketRepo) CancelTx(ctx context.Context, tx *sql.Tx, ticketID uint64) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE tickets SET status = 'CANCELLED' WHERE id = ? AND status = 'CONFIRMED'`, ticketID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
