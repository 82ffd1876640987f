package handler

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/booking"
	"github.com/rezervacija/sala-backend/internal/model"
	"github.com/rezervacija/sala-backend/internal/queue"
	"github.com/rezervacija/sala-backend/internal/repository"
	queue_publisher "github.com/rezervacija/sala-backend/internal/service"
)

// ReservationHandler serves booking creation, listing, updates and the
// staff-only status override.  Creates and updates run the admission
// check inside a transaction that locks the room's rows for the target
// date, so two concurrent requests for the same slot cannot both
// commit.
type ReservationHandler struct {
	Rooms        *repository.RoomRepo
	Reservations *repository.ReservationRepo
}

func NewReservationHandler(rooms *repository.RoomRepo, reservations *repository.ReservationRepo) *ReservationHandler {
	if rooms == nil || reservations == nil {
		panic("nil repository passed to NewReservationHandler")
	}
	return &ReservationHandler{Rooms: rooms, Reservations: reservations}
}

// ----- DTOs -----

type reservationReq struct {
	RoomID    uint64 `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EventType string `json:"event_type"`
	Status    string `json:"status"`
}

type statusReq struct {
	Status string `json:"status"`
}

type reservationResp struct {
	ID        uint64 `json:"id"`
	RoomID    uint64 `json:"room_id"`
	UserID    uint64 `json:"user_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EventType string `json:"event_type"`
	Status    string `json:"status"`
}

func toReservationResp(r model.Reservation) reservationResp {
	return reservationResp{
		ID: r.ID, RoomID: r.RoomID, UserID: r.UserID,
		Date: r.Date, StartTime: r.StartTime, EndTime: r.EndTime,
		EventType: r.EventType, Status: r.Status,
	}
}

func admissionErrorResponse(c echo.Context, err error) error {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": "validation failed",
			"field": ve.Field,
			"why":   ve.Reason,
		})
	}
	var ce *booking.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, echo.Map{
			"error":       "time window already taken",
			"blocking_id": ce.ReservationID,
		})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "admission check failed"})
}

// Create books a room.  The admission check and the insert share one
// transaction; the room's rows for that date are locked first so a
// concurrent create for the same slot serializes behind this one and
// then fails its own check.
func (h *ReservationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = model.StatusPending
	}
	adm := booking.Request{
		RoomID:    req.RoomID,
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		EventType: strings.TrimSpace(req.EventType),
		Status:    status,
	}
	if err := adm.Validate(); err != nil {
		return admissionErrorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Rooms.GetByID(ctx, adm.RoomID); err != nil {
		if err == repository.ErrRoomNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "room not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load room failed"})
	}

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	sameDay, err := h.Reservations.ListForRoomDateTx(ctx, tx, adm.RoomID, adm.Date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	if err := booking.CheckAdmission(adm, sameDay); err != nil {
		return admissionErrorResponse(c, err)
	}

	res := model.Reservation{
		RoomID:    adm.RoomID,
		UserID:    uid,
		Date:      adm.Date,
		StartTime: adm.StartTime,
		EndTime:   adm.EndTime,
		EventType: adm.EventType,
		Status:    status,
	}
	if err := h.Reservations.CreateTx(ctx, tx, &res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	h.publishCreated(res)

	return c.JSON(http.StatusCreated, toReservationResp(res))
}

// publishCreated emits the reservation.created event after commit.
// Broker failures are logged inside the publisher and never fail the
// request.
func (h *ReservationHandler) publishCreated(res model.Reservation) {
	roomName := ""
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if room, err := h.Rooms.GetByID(ctx, res.RoomID); err == nil {
		roomName = room.Name
	}
	_ = queue_publisher.PublishReservationCreated(ctx, queue.ReservationCreatedEvent{
		ReservationID: res.ID,
		UserID:        res.UserID,
		RoomID:        res.RoomID,
		RoomName:      roomName,
		Date:          res.Date,
		StartTime:     res.StartTime,
		EndTime:       res.EndTime,
		EventType:     res.EventType,
		Status:        res.Status,
		CreatedAt:     res.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// List returns reservations.  Staff see everything and may filter by
// room_id, date and status; regular users only ever see their own.
// Pagination via page/per_page, per_page capped at 100.
func (h *ReservationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	f := repository.ListFilter{}
	if v := c.QueryParam("room_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.RoomID = n
		}
	}
	f.Date = strings.TrimSpace(c.QueryParam("date"))
	f.Status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if !isStaff(getRole(c)) {
		f.UserID = uid
	}

	page := 1
	perPage := 20
	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(c.QueryParam("per_page")); err == nil && v > 0 {
		perPage = v
	}
	if perPage > 100 {
		perPage = 100
	}
	f.Limit = perPage
	f.Offset = (page - 1) * perPage

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, total, err := h.Reservations.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	out := make([]reservationResp, 0, len(items))
	for _, r := range items {
		out = append(out, toReservationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservations": out,
		"total":        total,
		"page":         page,
		"per_page":     perPage,
	})
}

// Get returns one reservation; regular users may only read their own.
func (h *ReservationHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if res.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, toReservationResp(*res))
}

// Update rewrites a reservation's slot.  The admission check runs again
// with the row itself excluded, inside the same kind of locked
// transaction as Create.
func (h *ReservationHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req reservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	current, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if current.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if status == "" {
		status = current.Status
	}
	adm := booking.Request{
		RoomID:    req.RoomID,
		Date:      strings.TrimSpace(req.Date),
		StartTime: strings.TrimSpace(req.StartTime),
		EndTime:   strings.TrimSpace(req.EndTime),
		EventType: strings.TrimSpace(req.EventType),
		Status:    status,
		ExcludeID: id,
	}
	if err := adm.Validate(); err != nil {
		return admissionErrorResponse(c, err)
	}

	sameDay, err := h.Reservations.ListForRoomDateTx(ctx, tx, adm.RoomID, adm.Date)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservations failed"})
	}
	if err := booking.CheckAdmission(adm, sameDay); err != nil {
		return admissionErrorResponse(c, err)
	}

	current.RoomID = adm.RoomID
	current.Date = adm.Date
	current.StartTime = adm.StartTime
	current.EndTime = adm.EndTime
	current.EventType = adm.EventType
	current.Status = status
	if err := h.Reservations.UpdateTx(ctx, tx, current); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, toReservationResp(*current))
}

// UpdateStatus is the staff decision endpoint: it changes only the
// status and deliberately skips the availability check, since the slot
// was admitted when the reservation was created.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := strings.ToUpper(strings.TrimSpace(req.Status))
	if !model.KnownStatus(status) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.UpdateStatus(ctx, id, status)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update status failed"})
	}
	return c.JSON(http.StatusOK, toReservationResp(*res))
}

// Delete frees the slot.  Regular users may only delete their own
// reservations.
func (h *ReservationHandler) Delete(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load reservation failed"})
	}
	if res.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Reservations.Delete(ctx, id); err != nil {
		if err == repository.ErrReservationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete reservation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ExportCSV streams the caller's reservation list as CSV.  Staff get
// the full, optionally filtered set.
func (h *ReservationHandler) ExportCSV(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	f := repository.ListFilter{}
	if v := c.QueryParam("room_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.RoomID = n
		}
	}
	f.Date = strings.TrimSpace(c.QueryParam("date"))
	f.Status = strings.ToUpper(strings.TrimSpace(c.QueryParam("status")))
	if !isStaff(getRole(c)) {
		f.UserID = uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, _, err := h.Reservations.List(ctx, f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="reservations.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	w := csv.NewWriter(c.Response())
	if err := w.Write([]string{"id", "room_id", "user_id", "date", "start_time", "end_time", "event_type", "status"}); err != nil {
		return err
	}
	for _, r := range items {
		rec := []string{
			strconv.FormatUint(r.ID, 10),
			strconv.FormatUint(r.RoomID, 10),
			strconv.FormatUint(r.UserID, 10),
			r.Date, r.StartTime, r.EndTime, r.EventType, r.Status,
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
