package router

import (
	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/handler"
	"github.com/rezervacija/sala-backend/internal/middleware"
	"github.com/rezervacija/sala-backend/internal/model"
)

// RegisterUser registers the endpoints available to every
// authenticated role: booking, the recommendation engine and saved
// recommendations.  Ownership rules (own rows only for USER) are
// enforced inside the handlers.
func RegisterUser(e *echo.Echo, r *handler.ReservationHandler, rec *handler.RecommendationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleManager, model.RoleUser),
	)

	// ---- Reservations ----
	g.POST("/reservations", r.Create)
	g.GET("/reservations", r.List)
	g.GET("/reservations/export/csv", r.ExportCSV)
	g.GET("/reservations/:id", r.Get)
	g.PUT("/reservations/:id", r.Update)
	g.DELETE("/reservations/:id", r.Delete)

	// ---- Recommendations ----
	g.POST("/recommendations/suggest", rec.Suggest)
	g.POST("/recommendations/top-pick", rec.TopPick)
	g.POST("/recommendations", rec.Create)
	g.GET("/recommendations", rec.List)
	g.GET("/recommendations/:id", rec.Get)
	g.PUT("/recommendations/:id", rec.Update)
	g.DELETE("/recommendations/:id", rec.Delete)
}
