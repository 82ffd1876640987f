package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/model"
	"github.com/rezervacija/sala-backend/internal/repository"
	"github.com/rezervacija/sala-backend/internal/stats"
)

// DashboardHandler serves the admin rollups.  Every endpoint fetches
// full entity slices and hands them to the pure aggregation functions
// in the stats package; the response-cache middleware keeps the cost
// bounded.
type DashboardHandler struct {
	Users        *repository.UserRepo
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewDashboardHandler(users *repository.UserRepo, rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *DashboardHandler {
	if users == nil || rooms == nil || reservations == nil {
		panic("nil repository passed to NewDashboardHandler")
	}
	return &DashboardHandler{Users: users, Rooms: rooms, Reservations: reservations}
}

func (h *DashboardHandler) loadReservations(c echo.Context) ([]model.Reservation, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	reservations, err := h.Reservations.ListAll(ctx)
	if err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return reservations, ctx, cancel, nil
}

// queryWindow reads a positive integer query parameter, falling back
// to def.  Values above 365 are clamped so a typo cannot ask for a
// multi-year scan.
func queryWindow(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	if v > 365 {
		return 365
	}
	return v
}

// KPIs returns the headline counters.
func (h *DashboardHandler) KPIs(c echo.Context) error {
	reservations, ctx, cancel, err := h.loadReservations(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load users failed"})
	}
	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rooms failed"})
	}

	return c.JSON(http.StatusOK, stats.KPIs(users, rooms, reservations, time.Now().UTC()))
}

// Daily returns the reservations-per-day series over the trailing
// 30-day window, zero-filled.
func (h *DashboardHandler) Daily(c echo.Context) error {
	reservations, _, cancel, err := h.loadReservations(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	defer cancel()

	days := queryWindow(c, "days", stats.DefaultDailyWindow)
	return c.JSON(http.StatusOK, stats.DailySeries(reservations, time.Now().UTC(), days))
}

// TopRooms returns the ten most reserved rooms by name.
func (h *DashboardHandler) TopRooms(c echo.Context) error {
	reservations, ctx, cancel, err := h.loadReservations(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rooms failed"})
	}

	limit := queryWindow(c, "limit", stats.DefaultTopRoomsLimit)
	return c.JSON(http.StatusOK, stats.TopRooms(reservations, rooms, limit))
}

// RoomsByType returns the room count per type, descending.
func (h *DashboardHandler) RoomsByType(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rooms failed"})
	}

	return c.JSON(http.StatusOK, stats.TypeDistribution(rooms))
}

// Hourly returns the start-hour histogram over the trailing 14 days,
// all 24 buckets present.
func (h *DashboardHandler) Hourly(c echo.Context) error {
	reservations, _, cancel, err := h.loadReservations(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	defer cancel()

	days := queryWindow(c, "days", stats.DefaultHourlyWindow)
	return c.JSON(http.StatusOK, stats.HourlyHistogram(reservations, time.Now().UTC(), days))
}

// Utilization relates rooms with trailing-window activity to the
// active-room count.
func (h *DashboardHandler) Utilization(c echo.Context) error {
	reservations, ctx, cancel, err := h.loadReservations(c)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load rooms failed"})
	}

	return c.JSON(http.StatusOK, stats.Utilization(rooms, reservations, time.Now().UTC(), stats.DefaultUtilizationWindow))
}
