package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cricket-ticket-booking/internal/handler"
	"github.com/iliyamo/cricket-ticket-booking/internal/middleware"
)

// RegisterCustomer registers the booking flow under /v1. All routes require
// a valid JWT and the CUSTOMER role. Seat availability for a match is on
// the public router so guests can preview the grid before signing up.
func RegisterCustomer(e *echo.Echo, h *handler.BookingHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("CUSTOMER"),
	)

	g.POST("/matches/:id/book", h.Book)
	g.POST("/tickets/:id/pay", h.Pay)
	g.GET("/tickets/:id", h.GetTicket)
	g.DELETE("/tickets/:id", h.CancelTicket)
	g.GET("/my-tickets", h.MyTickets)
}
