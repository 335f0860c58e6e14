package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

// BrowseHandler serves the unauthenticated storefront catalog: teams,
// stadiums, the match list and per-match seat availability.
type BrowseHandler struct {
	TeamRepo    *repository.TeamRepo
	StadiumRepo *repository.StadiumRepo
	MatchRepo   *repository.MatchRepo
	SeatRepo    *repository.MatchSeatRepo
}

func NewBrowseHandler(teams *repository.TeamRepo, stadiums *repository.StadiumRepo, matches *repository.MatchRepo, seats *repository.MatchSeatRepo) *BrowseHandler {
	if teams == nil || stadiums == nil || matches == nil || seats == nil {
		panic("nil repository passed to NewBrowseHandler")
	}
	return &BrowseHandler{TeamRepo: teams, StadiumRepo: stadiums, MatchRepo: matches, SeatRepo: seats}
}

// ListTeams handles GET /v1/teams.
func (h *BrowseHandler) ListTeams(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	teams, err := h.TeamRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load teams failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"teams": teams})
}

// ListStadiums handles GET /v1/stadiums.
func (h *BrowseHandler) ListStadiums(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	stadiums, err := h.StadiumRepo.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stadiums failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"stadiums": stadiums})
}

// ListMatches handles GET /v1/matches with team and stadium data embedded.
func (h *BrowseHandler) ListMatches(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	matches, err := h.MatchRepo.ListDetails(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load matches failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"matches": matches})
}

// GetMatch handles GET /v1/matches/:id.
func (h *BrowseHandler) GetMatch(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid match id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	detail, err := h.MatchRepo.GetDetail(ctx, id)
	if err != nil {
		if err == repository.ErrMatchNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "match not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load match failed"})
	}
	return c.JSON(http.StatusOK, detail)
}

// GetMatchSeats handles GET /v1/matches/:id/seats: the full 200-seat grid
// in label order plus a count of seats still on sale.
func (h *BrowseHandler) GetMatchSeats(c echo.Context) error {
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

	seats, err := h.SeatRepo.ListByMatch(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load seats failed"})
	}
	available := 0
	for _, s := range seats {
		if s.Status == "AVAILABLE" {
			available++
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"match_id":  id,
		"seats":     seats,
		"available": available,
	})
}
