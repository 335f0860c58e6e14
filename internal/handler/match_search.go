package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

// SearchMatches handles GET /v1/search/matches. Filters: team (either
// side), stadium, location, time=upcoming|any, page, page_size.
func (h *BrowseHandler) SearchMatches(c echo.Context) error {
	q := repository.SearchQuery{
		Team:       c.QueryParam("team"),
		Stadium:    c.QueryParam("stadium"),
		Location:   c.QueryParam("location"),
		TimeFilter: c.QueryParam("time"),
	}
	if v := c.QueryParam("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.Page = n
		}
	}
	if v := c.QueryParam("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			q.PageSize = n
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.MatchRepo.Search(ctx, q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "search failed"})
	}
	return c.JSON(http.StatusOK, res)
}
