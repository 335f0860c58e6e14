package handler

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

// AdminHandler bundles repositories for the admin console endpoints.
type AdminHandler struct {
	TeamRepo    *repository.TeamRepo
	StadiumRepo *repository.StadiumRepo
	MatchRepo   *repository.MatchRepo
	SeatRepo    *repository.MatchSeatRepo
	TicketRepo  *repository.TicketRepo
}

func NewAdminHandler(teams *repository.TeamRepo, stadiums *repository.StadiumRepo, matches *repository.MatchRepo, seats *repository.MatchSeatRepo, tickets *repository.TicketRepo) *AdminHandler {
	if teams == nil || stadiums == nil || matches == nil || seats == nil || tickets == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{
		TeamRepo:    teams,
		StadiumRepo: stadiums,
		MatchRepo:   matches,
		SeatRepo:    seats,
		TicketRepo:  tickets,
	}
}

// getUserID extracts the user_id set by the JWT middleware and converts it
// to uint64. Claims decode as float64 or string depending on the issuer.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// idParam parses the :id route parameter.
func idParam(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
