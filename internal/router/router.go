package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/handler"
	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication. Currently
// this is only the health check.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers authentication routes. Register, login, refresh and
// logout live under /v1/auth without a session; /v1/me requires a valid
// access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole("ADMIN", "CUSTOMER"))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the guest-facing browse and search endpoints. No
// JWT or role middleware applies here so visitors can explore the catalog
// before registering. Extra middleware (response cache) can be passed in;
// it is mounted only on these routes so authenticated responses are never
// cached.
func RegisterPublic(e *echo.Echo, b *handler.BrowseHandler, mw ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mw...)
	g.GET("/teams", b.ListTeams)
	g.GET("/stadiums", b.ListStadiums)
	g.GET("/matches", b.ListMatches)
	g.GET("/matches/:id", b.GetMatch)
	g.GET("/matches/:id/seats", b.GetMatchSeats)
	g.GET("/search/matches", b.SearchMatches)
}
