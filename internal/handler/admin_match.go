package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
	"github.com/iliyamo/cricket-ticket-booking/internal/seatmap"
)

type matchReq struct {
	Team1ID     uint64 `json:"team1_id"`
	Team2ID     uint64 `json:"team2_id"`
	StadiumID   uint64 `json:"stadium_id"`
	MatchDate   string `json:"match_date"`
	TicketPrice uint32 `json:"ticket_price"`
	Status      string `json:"status"`
}

// parseMatchDate accepts RFC3339 or "2006-01-02 15:04".
func parseMatchDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04", s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

func (h *AdminHandler) validateMatchReq(ctx context.Context, req *matchReq) (string, int) {
	if req.Team1ID == 0 || req.Team2ID == 0 || req.StadiumID == 0 {
		return "team1_id/team2_id/stadium_id required", http.StatusBadRequest
	}
	if req.Team1ID == req.Team2ID {
		return "a team cannot play itself", http.StatusBadRequest
	}
	if req.TicketPrice == 0 {
		return "ticket_price required", http.StatusBadRequest
	}
	if _, err := h.TeamRepo.GetByID(ctx, req.Team1ID); err != nil {
		if err == repository.ErrTeamNotFound {
			return "team1 not found", http.StatusNotFound
		}
		return "load team failed", http.StatusInternalServerError
	}
	if _, err := h.TeamRepo.GetByID(ctx, req.Team2ID); err != nil {
		if err == repository.ErrTeamNotFound {
			return "team2 not found", http.StatusNotFound
		}
		return "load team failed", http.StatusInternalServerError
	}
	if _, err := h.StadiumRepo.GetByID(ctx, req.StadiumID); err != nil {
		if err == repository.ErrStadiumNotFound {
			return "stadium not found", http.StatusNotFound
		}
		return "load stadium failed", http.StatusInternalServerError
	}
	return "", 0
}

// CreateMatch handles POST /v1/matches. The match and its full seat grid
// (all seats AVAILABLE) are created in one transaction.
func (h *AdminHandler) CreateMatch(c echo.Context) error {
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if msg, code := h.validateMatchReq(ctx, &req); msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}
	startsAt, ok := parseMatchDate(req.MatchDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match_date"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = "SCHEDULED"
	}
	if status != "SCHEDULED" && status != "CANCELLED" && status != "FINISHED" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	tx, err := h.MatchRepo.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	m := &repository.Match{
		Team1ID:     req.Team1ID,
		Team2ID:     req.Team2ID,
		StadiumID:   req.StadiumID,
		StartsAt:    startsAt,
		TicketPrice: req.TicketPrice,
		Status:      status,
	}
	if err := h.MatchRepo.CreateTx(ctx, tx, m); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match failed"})
	}

	grid := make([]repository.MatchSeat, 0, seatmap.TotalSeats)
	for row := 0; row < seatmap.Rows; row++ {
		for num := 1; num <= seatmap.SeatsPerRow; num++ {
			grid = append(grid, repository.MatchSeat{
				SeatLabel: seatmap.Label(row, num),
				Status:    seatmap.StatusAvailable,
			})
		}
	}
	if err := h.SeatRepo.CreateBulkTx(ctx, tx, m.ID, m.StadiumID, grid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed seats failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create match failed"})
	}
	committed = true

	detail, err := h.MatchRepo.GetDetail(ctx, m.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load match failed"})
	}
	return c.JSON(http.StatusCreated, detail)
}

// UpdateMatch handles PUT /v1/matches/:id.
func (h *AdminHandler) UpdateMatch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}
	var req matchReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if msg, code := h.validateMatchReq(ctx, &req); msg != "" {
		return c.JSON(code, echo.Map{"error": msg})
	}
	startsAt, ok := parseMatchDate(req.MatchDate)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match_date"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status != "SCHEDULED" && status != "CANCELLED" && status != "FINISHED" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
	}

	m := &repository.Match{
		Team1ID:     req.Team1ID,
		Team2ID:     req.Team2ID,
		StadiumID:   req.StadiumID,
		StartsAt:    startsAt,
		TicketPrice: req.TicketPrice,
		Status:      status,
	}
	if err := h.MatchRepo.Update(ctx, id, m); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update match failed"})
	}

	detail, err := h.MatchRepo.GetDetail(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load match failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// DeleteMatch handles DELETE /v1/matches/:id. Matches with sold tickets
// cannot be removed.
func (h *AdminHandler) DeleteMatch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.MatchRepo.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "match has sold tickets"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete match failed"})
	}
}

// ListMatchTickets handles GET /v1/matches/:id/tickets.
func (h *AdminHandler) ListMatchTickets(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.MatchRepo.GetByID(ctx, id); err != nil {
		if err == repository.ErrMatchNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load match failed"})
	}
	tickets, err := h.TicketRepo.ListByMatch(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load tickets failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tickets": tickets})
}
