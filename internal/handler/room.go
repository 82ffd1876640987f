package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/booking"
	"github.com/rezervacija/sala-backend/internal/model"
	"github.com/rezervacija/sala-backend/internal/repository"
)

// RoomHandler serves the room catalog: public browsing and availability
// plus the staff-only mutations.
type RoomHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewRoomHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *RoomHandler {
	if rooms == nil || reservations == nil {
		panic("nil repository passed to NewRoomHandler")
	}
	return &RoomHandler{Rooms: rooms, Reservations: reservations}
}

// ----- DTOs -----

type roomReq struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	Description *string  `json:"description"`
	Active      *bool    `json:"active"`
	Price       *float64 `json:"price"`
	Floor       int      `json:"floor"`
}

type layoutReq struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type roomResp struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Capacity    int      `json:"capacity"`
	Description *string  `json:"description"`
	Active      bool     `json:"active"`
	Price       *float64 `json:"price"`
	Floor       int      `json:"floor"`
	LayoutX     *int     `json:"layout_x"`
	LayoutY     *int     `json:"layout_y"`
	LayoutW     *int     `json:"layout_w"`
	LayoutH     *int     `json:"layout_h"`
}

func toRoomResp(r model.Room) roomResp {
	return roomResp{
		ID: r.ID, Name: r.Name, Type: r.Type, Capacity: r.Capacity,
		Description: r.Description, Active: r.Active, Price: r.Price, Floor: r.Floor,
		LayoutX: r.LayoutX, LayoutY: r.LayoutY, LayoutW: r.LayoutW, LayoutH: r.LayoutH,
	}
}

func (rq roomReq) validate() string {
	if strings.TrimSpace(rq.Name) == "" {
		return "name required"
	}
	if strings.TrimSpace(rq.Type) == "" {
		return "type required"
	}
	if rq.Capacity < 1 {
		return "capacity must be >= 1"
	}
	if rq.Floor < 0 {
		return "floor must be >= 0"
	}
	if rq.Price != nil && *rq.Price < 0 {
		return "price must be >= 0"
	}
	return ""
}

// List returns the whole catalog in id order.
func (h *RoomHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}
	out := make([]roomResp, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, toRoomResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"rooms": out})
}

// Get returns a single room by id.
func (h *RoomHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(*room))
}

// Availability answers the free/busy question for one room.  Query
// params: date, from, to.  An empty date means "no constraint", which
// is reported as available.  Reservation status is ignored on purpose:
// a rejected request still holds its slot until it is deleted.
func (h *RoomHandler) Availability(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	date := strings.TrimSpace(c.QueryParam("date"))
	from := strings.TrimSpace(c.QueryParam("from"))
	to := strings.TrimSpace(c.QueryParam("to"))

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}

	reservations, err := h.Reservations.ListForRoom(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"room_id": id,
		"date":    date,
		"from":    from,
		"to":      to,
		"free":    booking.IsFree(id, date, from, to, reservations),
	})
}

// Create inserts a new room (staff only, enforced by middleware).
func (h *RoomHandler) Create(c echo.Context) error {
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	room := model.Room{
		Name:        strings.TrimSpace(req.Name),
		Type:        strings.TrimSpace(req.Type),
		Capacity:    req.Capacity,
		Description: req.Description,
		Active:      true,
		Price:       req.Price,
		Floor:       req.Floor,
	}
	if req.Active != nil {
		room.Active = *req.Active
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Create(ctx, &room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create room failed"})
	}
	return c.JSON(http.StatusCreated, toRoomResp(room))
}

// Update overwrites the mutable room fields.
func (h *RoomHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req roomReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}

	room.Name = strings.TrimSpace(req.Name)
	room.Type = strings.TrimSpace(req.Type)
	room.Capacity = req.Capacity
	room.Description = req.Description
	room.Price = req.Price
	room.Floor = req.Floor
	if req.Active != nil {
		room.Active = *req.Active
	}

	if err := h.Rooms.Update(ctx, room); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update room failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(*room))
}

// UpdateLayout moves and resizes a room on the floor-plan grid.
// Coordinates are clamped to the grid invariants: x,y >= 0 and
// w,h >= 1.
func (h *RoomHandler) UpdateLayout(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req layoutReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.X < 0 {
		req.X = 0
	}
	if req.Y < 0 {
		req.Y = 0
	}
	if req.W < 1 {
		req.W = 1
	}
	if req.H < 1 {
		req.H = 1
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	room, err := h.Rooms.UpdateLayout(ctx, id, req.X, req.Y, req.W, req.H)
	if err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update layout failed"})
	}
	return c.JSON(http.StatusOK, toRoomResp(*room))
}

// Delete removes a room and, through the FK cascade, everything booked
// in it.
func (h *RoomHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Rooms.Delete(ctx, id); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete room failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
