package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/handler"
	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1. All routes
// require a valid JWT with the ADMIN role. Listing endpoints live on the
// public router; the admin console only needs the mutations plus the
// per-match ticket report.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("ADMIN"),
	)

	// ---- Teams ----
	g.POST("/teams", a.CreateTeam)
	g.PUT("/teams/:id", a.UpdateTeam)
	g.PATCH("/teams/:id", a.UpdateTeam)
	g.DELETE("/teams/:id", a.DeleteTeam)

	// ---- Stadiums ----
	g.POST("/stadiums", a.CreateStadium)
	g.PUT("/stadiums/:id", a.UpdateStadium)
	g.PATCH("/stadiums/:id", a.UpdateStadium)
	g.DELETE("/stadiums/:id", a.DeleteStadium)

	// ---- Matches ----
	g.POST("/matches", a.CreateMatch)
	g.PUT("/matches/:id", a.UpdateMatch)
	g.PATCH("/matches/:id", a.UpdateMatch)
	g.DELETE("/matches/:id", a.DeleteMatch)
	g.GET("/matches/:id/tickets", a.ListMatchTickets)
}
