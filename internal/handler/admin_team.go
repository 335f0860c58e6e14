package handler

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/repository"
)

type teamReq struct {
	Name    string `json:"team_name"`
	Coach   string `json:"coach"`
	Captain string `json:"captain"`
	LogoURL string `json:"logo"`
}

func (r *teamReq) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Coach = strings.TrimSpace(r.Coach)
	r.Captain = strings.TrimSpace(r.Captain)
	r.LogoURL = strings.TrimSpace(r.LogoURL)
}

// CreateTeam handles POST /v1/teams.
func (h *AdminHandler) CreateTeam(c echo.Context) error {
	var req teamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.normalize()
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "team_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	team := &repository.Team{Name: req.Name, Coach: req.Coach, Captain: req.Captain, LogoURL: req.LogoURL}
	if err := h.TeamRepo.Create(ctx, team); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return c.JSON(http.StatusConflict, echo.Map{"error": "team name already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create team failed"})
	}
	return c.JSON(http.StatusCreated, team)
}

// UpdateTeam handles PUT /v1/teams/:id.
func (h *AdminHandler) UpdateTeam(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}
	var req teamReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.normalize()
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "team_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.TeamRepo.Update(ctx, id, req.Name, req.Coach, req.Captain, req.LogoURL); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update team failed"})
	}
	team, err := h.TeamRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load team failed"})
	}
	return c.JSON(http.StatusOK, team)
}

// DeleteTeam handles DELETE /v1/teams/:id. Teams referenced by matches
// cannot be removed.
func (h *AdminHandler) DeleteTeam(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid team id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.TeamRepo.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "team not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "team is referenced by matches"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete team failed"})
	}
}
