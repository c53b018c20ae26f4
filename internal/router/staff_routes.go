package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterStaff wires the housekeeping/maintenance workflow and the
// check-in/check-out desk actions.  Admins can perform every staff
// action.
func RegisterStaff(e *echo.Echo, s *handler.StaffRoomHandler, ab *handler.AdminBookingHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleStaff, model.RoleAdmin))

	g.GET("/tasks", s.Tasks)
	g.GET("/rooms/cleaning", s.CleaningQueue)
	g.PUT("/rooms/:id/clean", s.Clean)
	g.PUT("/rooms/:id/start-work", s.StartWork)
	g.PUT("/rooms/:id/complete-work", s.CompleteWork)

	g.PUT("/bookings/:id/check-in", ab.CheckIn)
	g.PUT("/bookings/:id/check-out", ab.CheckOut)
}
