// Package repository defines the data access layer and the sentinel
// error values shared across repositories.  The sentinels let handlers
// distinguish failure scenarios without inspecting SQL errors: a lookup
// that matched no row, or an operation attempted on somebody else's
// resource.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own.  Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrRoomNotFound is returned when a room lookup matches no row.
var ErrRoomNotFound = errors.New("room not found")

// ErrReservationNotFound is returned when a reservation lookup matches
// no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrRecommendationNotFound is returned when a recommendation lookup
// matches no row.
var ErrRecommendationNotFound = errors.New("recommendation not found")
