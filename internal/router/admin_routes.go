package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/handler"
	"github.com/rezervacija/sala-backend/internal/middleware"
	"github.com/rezervacija/sala-backend/internal/model"
)

// RegisterAdmin registers the dashboard rollups under /v1/admin,
// ADMIN only.  The rollups tolerate staleness, so the whole group sits
// behind the response cache when one is configured.
func RegisterAdmin(e *echo.Echo, d *handler.DashboardHandler, jwtSecret string, cache echo.MiddlewareFunc) {
	mws := []echo.MiddlewareFunc{
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin),
	}
	if cache != nil {
		mws = append(mws, cache)
	}
	g := e.Group("/v1/admin", mws...)

	g.GET("/kpis", d.KPIs)
	g.GET("/reservations/daily", d.Daily)
	g.GET("/rooms/top", d.TopRooms)
	g.GET("/rooms/by-type", d.RoomsByType)
	g.GET("/hourly", d.Hourly)
	g.GET("/utilization", d.Utilization)
}
