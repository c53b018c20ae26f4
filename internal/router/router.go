// Package router registers the HTTP routes, grouped by audience:
// public browse endpoints, authenticated guest endpoints, staff
// workflow endpoints and the admin surface.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-room-reservation/internal/handler"
	"github.com/iliyamo/hotel-room-reservation/internal/middleware"
)

// RegisterRoutes registers routes that need no authentication or
// handler dependencies.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth wires the session endpoints.  Register, login, refresh,
// logout and the password-reset flow live under /v1/auth without JWT
// middleware; /v1/me requires a valid access token of any role.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, pw *handler.PasswordResetHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout authenticates via the refresh token in the body (or a
	// bearer token for revoke-all), so no JWT middleware here.
	g.POST("/logout", a.Logout)
	g.POST("/forgot-password", pw.Forgot)
	g.POST("/reset-password", pw.Reset)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic wires the unauthenticated room listings.  Both reads
// run a reconciliation pass before answering; cacheMW (the Redis
// response cache, possibly a no-op) absorbs repeated listing traffic.
func RegisterPublic(e *echo.Echo, p *handler.PublicRoomHandler, cacheMW echo.MiddlewareFunc) {
	g := e.Group("/v1/rooms", cacheMW)
	g.GET("/available", p.Available)
	g.GET("/all-with-booking-info", p.AllWithBookingInfo)
}
