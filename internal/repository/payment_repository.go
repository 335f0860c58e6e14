package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Payment mirrors the 'payments' table. One payment row is created per
// ticket at booking time with status PENDING and completed at the pay step.
type Payment struct {
	ID        uint64
	UserID    uint64
	TicketID  uint64
	Amount    uint32
	Status    string // PENDING | COMPLETED | FAILED
	PaidAt    sql.NullTime
	CardLast4 sql.NullString
}

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) *PaymentRepo { return &PaymentRepo{db: db} }

// CreateTx inserts a PENDING payment for a freshly booked ticket.
func (r *PaymentRepo) CreateTx(ctx context.Context, tx *sql.Tx, userID, ticketID uint64, amount uint32) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO payments (user_id, ticket_id, amount, status) VALUES (?, ?, ?, 'PENDING')`,
		userID, ticketID, amount)
	return err
}

// GetByTicket fetches the payment row of a ticket.
func (r *PaymentRepo) GetByTicket(ctx context.Context, ticketID uint64) (*Payment, error) {
	var p Payment
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, ticket_id, amount, status, paid_at, card_last4 FROM payments WHERE ticket_id = ?`,
		ticketID).Scan(&p.ID, &p.UserID, &p.TicketID, &p.Amount, &p.Status, &p.PaidAt, &p.CardLast4)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CompleteByTicket moves a ticket's payment from PENDING to COMPLETED and
// records the card's last four digits. Returns false when the payment was
// already completed (repeat calls are treated as a no-op by the handler).
func (r *PaymentRepo) CompleteByTicket(ctx context.Context, ticketID uint64, last4 string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = 'COMPLETED', paid_at = NOW(), card_last4 = ? WHERE ticket_id = ? AND status = 'PENDING'`,
		last4, ticketID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// FailByTicketTx voids the pending payment of a cancelled ticket.
func (r *PaymentRepo) FailByTicketTx(ctx context.Context, tx *sql.Tx, ticketID uint64) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE payments SET status = 'FAILED' WHERE ticket_id = ? AND status = 'PENDING'`, ticketID)
	return err
}

// PaidAtString formats the completion timestamp for API responses.
func (p *Payment) PaidAtString() string {
	if !p.PaidAt.Valid {
		return ""
	}
	return p.PaidAt.Time.UTC().Format(time.RFC3339)
}
