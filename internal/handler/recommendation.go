package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rezervacija/sala-backend/internal/booking"
	"github.com/rezervacija/sala-backend/internal/model"
	"github.com/rezervacija/sala-backend/internal/recommend"
	"github.com/rezervacija/sala-backend/internal/repository"
)

// RecommendationHandler serves the suggestion engine plus CRUD for
// saved recommendations.  Saved recommendations are reservation
// sketches without a status; they never block availability.
type RecommendationHandler struct {
	Rooms           *repository.RoomRepo
	Recommendations *repository.RecommendationRepo
}

func NewRecommendationHandler(rooms *repository.RoomRepo, recs *repository.RecommendationRepo) *RecommendationHandler {
	if rooms == nil || recs == nil {
		panic("nil repository passed to NewRecommendationHandler")
	}
	return &RecommendationHandler{Rooms: rooms, Recommendations: recs}
}

// ----- DTOs -----

type recommendationReq struct {
	RoomID    uint64 `json:"room_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EventType string `json:"event_type"`
}

type recommendationResp struct {
	ID        uint64 `json:"id"`
	RoomID    uint64 `json:"room_id"`
	UserID    uint64 `json:"user_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	EventType string `json:"event_type"`
}

type suggestionResp struct {
	Room  roomResp `json:"room"`
	Score float64  `json:"score"`
}

func toRecommendationResp(r model.Recommendation) recommendationResp {
	return recommendationResp{
		ID: r.ID, RoomID: r.RoomID, UserID: r.UserID,
		Date: r.Date, StartTime: r.StartTime, EndTime: r.EndTime,
		EventType: r.EventType,
	}
}

func (rq recommendationReq) toAdmission(excludeID uint64) booking.Request {
	return booking.Request{
		RoomID:    rq.RoomID,
		Date:      strings.TrimSpace(rq.Date),
		StartTime: strings.TrimSpace(rq.StartTime),
		EndTime:   strings.TrimSpace(rq.EndTime),
		EventType: strings.TrimSpace(rq.EventType),
		ExcludeID: excludeID,
	}
}

// Suggest ranks the catalog against the preferences in the request
// body and returns the top candidates with their scores.
func (h *RecommendationHandler) Suggest(c echo.Context) error {
	var pref recommend.Preference
	if err := c.Bind(&pref); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	limit := 0
	if v, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		limit = v
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}

	ranked := recommend.Suggest(rooms, pref, limit)
	out := make([]suggestionResp, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, suggestionResp{Room: toRoomResp(s.Room), Score: s.Score})
	}
	return c.JSON(http.StatusOK, echo.Map{"suggestions": out})
}

// TopPick returns the single best room for the preferences, for
// one-click booking flows.
func (h *RecommendationHandler) TopPick(c echo.Context) error {
	var pref recommend.Preference
	if err := c.Bind(&pref); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rooms, err := h.Rooms.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list rooms failed"})
	}

	pick, ok := recommend.TopPick(rooms, pref)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no rooms in catalog"})
	}
	return c.JSON(http.StatusOK, suggestionResp{Room: toRoomResp(pick.Room), Score: pick.Score})
}

// Create saves a recommendation sketch.  The fields pass the same
// structural validation as a reservation, but no availability check
// runs: a sketch is allowed to point at a taken slot.
func (h *RecommendationHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req recommendationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	adm := req.toAdmission(0)
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

	rec := model.Recommendation{
		RoomID:    adm.RoomID,
		UserID:    uid,
		Date:      adm.Date,
		StartTime: adm.StartTime,
		EndTime:   adm.EndTime,
		EventType: adm.EventType,
	}
	if err := h.Recommendations.Create(ctx, &rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create recommendation failed"})
	}
	return c.JSON(http.StatusCreated, toRecommendationResp(rec))
}

// List returns saved recommendations; regular users see their own,
// staff see everything.
func (h *RecommendationHandler) List(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var filterUser uint64
	if !isStaff(getRole(c)) {
		filterUser = uid
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Recommendations.List(ctx, filterUser)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list recommendations failed"})
	}
	out := make([]recommendationResp, 0, len(items))
	for _, r := range items {
		out = append(out, toRecommendationResp(r))
	}
	return c.JSON(http.StatusOK, echo.Map{"recommendations": out})
}

// Get returns one saved recommendation; owner or staff only.
func (h *RecommendationHandler) Get(c echo.Context) error {
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

	rec, err := h.Recommendations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRecommendationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recommendation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load recommendation failed"})
	}
	if rec.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, toRecommendationResp(*rec))
}

// Update rewrites a saved recommendation; owner or staff only.
func (h *RecommendationHandler) Update(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req recommendationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	adm := req.toAdmission(id)
	if err := adm.Validate(); err != nil {
		return admissionErrorResponse(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	rec, err := h.Recommendations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRecommendationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recommendation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load recommendation failed"})
	}
	if rec.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	rec.RoomID = adm.RoomID
	rec.Date = adm.Date
	rec.StartTime = adm.StartTime
	rec.EndTime = adm.EndTime
	rec.EventType = adm.EventType
	if err := h.Recommendations.Update(ctx, rec); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update recommendation failed"})
	}
	return c.JSON(http.StatusOK, toRecommendationResp(*rec))
}

// Delete removes a saved recommendation; owner or staff only.
func (h *RecommendationHandler) Delete(c echo.Context) error {
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

	rec, err := h.Recommendations.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrRecommendationNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "recommendation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load recommendation failed"})
	}
	if rec.UserID != uid && !isStaff(getRole(c)) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	if err := h.Recommendations.Delete(ctx, id); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete recommendation failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
