package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
	"github.com/iliyamo/hotel-room-reservation/internal/model"
)

// RegisterAdmin wires the admin surface: inventory management, the
// booking queue and the revenue reports.
func RegisterAdmin(e *echo.Echo, ar *handler.AdminRoomHandler, ab *handler.AdminBookingHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(model.RoleAdmin))

	g.GET("/rooms", ar.List)
	g.POST("/rooms", ar.Create)
	g.PUT("/rooms/:id", ar.Update)
	g.DELETE("/rooms/:id", ar.Delete)
	g.GET("/rooms/coming-soon", ar.ComingSoon)
	g.PUT("/rooms/:id/make-available", ar.MakeAvailable)
	g.PUT("/rooms/:id/set-cleaning", ar.SetCleaning)
	g.PUT("/rooms/:id/set-maintenance", ar.SetMaintenance)
	g.PATCH("/rooms/update-statuses", ar.UpdateStatuses)

	g.GET("/bookings", ab.All)
	g.GET("/bookings/pending", ab.Pending)
	g.PUT("/bookings/:id/confirm", ab.Confirm)
	g.PUT("/bookings/:id/cancel", ab.Cancel)

	g.GET("/revenue/monthly", ab.MonthlyRevenue)
	g.GET("/revenue/annual", ab.AnnualRevenue)
	g.GET("/revenue/detailed", ab.DetailedRevenue)
}
