package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/handler"
	"github.com/rezervacija/sala-backend/internal/middleware"
	"github.com/rezervacija/sala-backend/internal/model"
)

// RegisterStaff registers the room administration surface, open to
// ADMIN and MANAGER.  Reading rooms stays on the public router; only
// mutations and the reservation decision endpoint live here.
func RegisterStaff(e *echo.Echo, rooms *handler.RoomHandler, reservations *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager),
	)

	// ---- Rooms ----
	g.POST("/rooms", rooms.Create)
	g.PUT("/rooms/:id", rooms.Update)
	g.PATCH("/rooms/:id/layout", rooms.UpdateLayout)
	g.DELETE("/rooms/:id", rooms.Delete)

	// ---- Reservation decisions ----
	// Status changes skip the availability check: the slot was admitted
	// at creation and stays blocked whatever the decision.
	g.PATCH("/reservations/:id/status", reservations.UpdateStatus)
}
