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

type stadiumReq struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	Capacity uint32 `json:"capacity"`
	ImageURL string `json:"image"`
}

func (r *stadiumReq) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	r.ImageURL = strings.TrimSpace(r.ImageURL)
}

// CreateStadium handles POST /v1/stadiums.
func (h *AdminHandler) CreateStadium(c echo.Context) error {
	var req stadiumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.normalize()
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/location required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	st := &repository.Stadium{Name: req.Name, Location: req.Location, Capacity: req.Capacity, ImageURL: req.ImageURL}
	if err := h.StadiumRepo.Create(ctx, st); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create stadium failed"})
	}
	return c.JSON(http.StatusCreated, st)
}

// UpdateStadium handles PUT /v1/stadiums/:id.
func (h *AdminHandler) UpdateStadium(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stadium id"})
	}
	var req stadiumReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.normalize()
	if req.Name == "" || req.Location == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/location required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.StadiumRepo.Update(ctx, id, req.Name, req.Location, req.Capacity, req.ImageURL); err != nil {
		if err == sql.ErrNoRows {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "stadium not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update stadium failed"})
	}
	st, err := h.StadiumRepo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load stadium failed"})
	}
	return c.JSON(http.StatusOK, st)
}

// DeleteStadium handles DELETE /v1/stadiums/:id. Stadiums referenced by
// matches cannot be removed.
func (h *AdminHandler) DeleteStadium(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid stadium id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	switch err := h.StadiumRepo.Delete(ctx, id); err {
	case nil:
		return c.NoContent(http.StatusNoContent)
	case sql.ErrNoRows:
		return c.JSON(http.StatusNotFound, echo.Map{"error": "stadium not found"})
	case repository.ErrConflict:
		return c.JSON(http.StatusConflict, echo.Map{"error": "stadium is referenced by matches"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete stadium failed"})
	}
}
