package handler

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/queue"
	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	queue_publisher "github.com/iliyamo/cricket-ticket-booking/internal/service"
	"github.com/iliyamo/cricket-ticket-booking/internal/utils"
)

// BookingHandler owns the customer booking flow: booking seats on a match,
// paying for a ticket, viewing and cancelling tickets.
type BookingHandler struct {
	MatchRepo   *repository.MatchRepo
	SeatRepo    *repository.MatchSeatRepo
	TicketRepo  *repository.TicketRepo
	PaymentRepo *repository.PaymentRepo
}

func NewBookingHandler(matches *repository.MatchRepo, seats *repository.MatchSeatRepo, tickets *repository.TicketRepo, payments *repository.PaymentRepo) *BookingHandler {
	if matches == nil || seats == nil || tickets == nil || payments == nil {
		panic("nil repository passed to NewBookingHandler")
	}
	return &BookingHandler{MatchRepo: matches, SeatRepo: seats, TicketRepo: tickets, PaymentRepo: payments}
}

type bookReq struct {
	SeatIDs []uint64 `json:"seat_ids"`
}

type bookedTicket struct {
	TicketID  uint64 `json:"ticket_id"`
	SeatID    uint64 `json:"seat_id"`
	SeatLabel string `json:"seat_label"`
	Amount    uint32 `json:"amount"`
	Status    string `json:"status"`
}

// Book handles POST /v1/matches/:id/book. All requested seats are flipped
// AVAILABLE -> BOOKED in one transaction with one ticket and one PENDING
// payment created per seat. If any seat is already taken the whole booking
// fails and nothing is written.
func (h *BookingHandler) Book(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	matchID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	var req bookReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	seatIDs := dedupeIDs(req.SeatIDs)
	if len(seatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	match, err := h.MatchRepo.GetByID(ctx, matchID)
	if err != nil {
		if err == repository.ErrMatchNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load match failed"})
	}
	if match.Status != "SCHEDULED" || !match.StartsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match is not open for booking"})
	}

	tx, err := h.MatchRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	locked, err := h.SeatRepo.LockSeatsTx(ctx, tx, matchID, seatIDs)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	taken := make([]string, 0)
	for _, id := range seatIDs {
		seat, ok := locked[id]
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat for this match"})
		}
		if seat.Status != "AVAILABLE" {
			taken = append(taken, seat.SeatLabel)
		}
	}
	if len(taken) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats no longer available", "seats": taken})
	}

	if err := h.SeatRepo.BookTx(ctx, tx, seatIDs); err != nil {
		if err == repository.ErrSeatsUnavailable {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seats no longer available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}

	tickets := make([]bookedTicket, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		ticketID, err := h.TicketRepo.CreateTx(ctx, tx, userID, matchID, seatID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
		if err := h.PaymentRepo.CreateTx(ctx, tx, userID, ticketID, match.TicketPrice); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
		}
		tickets = append(tickets, bookedTicket{
			TicketID:  ticketID,
			SeatID:    seatID,
			SeatLabel: locked[seatID].SeatLabel,
			Amount:    match.TicketPrice,
			Status:    "CONFIRMED",
		})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "booking failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, echo.Map{
		"match_id":     matchID,
		"total_amount": match.TicketPrice * uint32(len(seatIDs)),
		"tickets":      tickets,
	})
}

type payReq struct {
	CardNumber string `json:"card_number"`
	CardName   string `json:"card_name"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// Pay handles POST /v1/tickets/:id/pay. Validation is format-only; valid
// input always completes the payment. Repeat calls on a completed payment
// are a no-op success.
func (h *BookingHandler) Pay(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	var req payReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	fieldErrs := echo.Map{}
	if !utils.ValidCardNumber(req.CardNumber) {
		fieldErrs["card_number"] = "card number must be 16 digits"
	}
	if !utils.ValidCardName(req.CardName) {
		fieldErrs["card_name"] = "cardholder name required"
	}
	if !utils.ValidExpiry(req.Expiry) {
		fieldErrs["expiry"] = "expiry must be MM/YY"
	}
	if !utils.ValidCVV(req.CVV) {
		fieldErrs["cvv"] = "cvv must be 3 digits"
	}
	if len(fieldErrs) > 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"errors": fieldErrs})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.TicketRepo.GetDetailForUser(ctx, ticketID, userID)
	if err != nil {
		switch err {
		case repository.ErrTicketNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
	}
	if detail.Status != "CONFIRMED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket is cancelled"})
	}

	changed, err := h.PaymentRepo.CompleteByTicket(ctx, ticketID, utils.CardLast4(req.CardNumber))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "payment failed"})
	}

	detail, err = h.TicketRepo.GetDetailForUser(ctx, ticketID, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
	}

	if changed {
		ev := queue.TicketConfirmedEvent{
			TicketID:        detail.ID,
			UserID:          userID,
			MatchID:         detail.MatchID,
			Team1Name:       detail.Team1Name,
			Team2Name:       detail.Team2Name,
			StadiumName:     detail.StadiumName,
			StadiumLocation: detail.StadiumLocation,
			StartsAt:        detail.MatchDate,
			SeatLabel:       detail.SeatLabel,
			Amount:          detail.Amount,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		go func() {
			pubCtx, pubCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer pubCancel()
			_ = queue_publisher.PublishTicketConfirmed(pubCtx, ev)
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"ticket":       detail,
		"card_display": utils.FormatCardNumber(req.CardNumber),
	})
}

// GetTicket handles GET /v1/tickets/:id. Served from durable storage so the
// confirmation survives reloads.
func (h *BookingHandler) GetTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.TicketRepo.GetDetailForUser(ctx, ticketID, userID)
	if err != nil {
		switch err {
		case repository.ErrTicketNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load ticket failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// MyTickets handles GET /v1/my-tickets, newest booking first.
func (h *BookingHandler) MyTickets(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tickets, err := h.TicketRepo.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tickets failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}

// CancelTicket handles DELETE /v1/tickets/:id. Only the owner may cancel, only
// before the match starts; the seat goes back on sale and a pending payment
// is voided.
func (h *BookingHandler) CancelTicket(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ticketID, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid ticket id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.MatchRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	ticket, startsAt, err := h.TicketRepo.GetForCancelTx(ctx, tx, ticketID)
	if err != nil {
		if err == repository.ErrTicketNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "ticket not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if ticket.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	if ticket.Status != "CONFIRMED" {
		return c.JSON(http.StatusConflict, echo.Map{"error": "ticket already cancelled"})
	}
	if !startsAt.After(time.Now().UTC()) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "match already started"})
	}

	if err := h.TicketRepo.CancelTx(ctx, tx, ticketID); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusConflict, echo.Map{"error": "ticket already cancelled"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if err := h.SeatRepo.ReleaseTx(ctx, tx, []uint64{ticket.SeatID}); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	if err := h.PaymentRepo.FailByTicketTx(ctx, tx, ticketID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "cancel failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, echo.Map{"ticket_id": ticketID, "status": "CANCELLED"})
}

// dedupeIDs removes duplicates while preserving request order.
func dedupeIDs(ids []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(ids))
	out := make([]uint64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
