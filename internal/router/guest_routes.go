package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterGuest wires the booking endpoints for authenticated guests.
// Staff and admin accounts can also book; the role check only filters
// out tokens with unknown roles.
func RegisterGuest(e *echo.Echo, b *handler.BookingHandler, jwtSecret string) {
	g := e.Group("/v1/bookings")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleGuest, model.RoleStaff, model.RoleAdmin))

	g.POST("", b.Create)
	g.GET("/me", b.MyBookings)
	g.PUT("/:id/cancel", b.Cancel)
}
