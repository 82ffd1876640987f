// Package router wires handlers to URL paths and attaches the JWT and
// role middleware per group.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/handler"
	"github.com/rezervacija/sala-backend/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the authentication surface.  Unauthenticated
// operations live under /v1/auth; /v1/me requires a valid token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/refresh-access", a.RefreshAccess)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
}

// RegisterPublic registers the unauthenticated catalog endpoints:
// browsing rooms and asking the free/busy question.  The room list is
// wrapped in the response cache when one is configured.
func RegisterPublic(e *echo.Echo, rooms *handler.RoomHandler, cache echo.MiddlewareFunc) {
	if cache != nil {
		e.GET("/v1/rooms", rooms.List, cache)
	} else {
		e.GET("/v1/rooms", rooms.List)
	}
	e.GET("/v1/rooms/:id", rooms.Get)
	e.GET("/v1/rooms/:id/availability", rooms.Availability)
}
