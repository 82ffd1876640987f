package model

import "time"

// Reservation statuses.  REJECTED and CANCELLED rows keep blocking
// their slot in availability checks; the status only records the
// decision taken on the request.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

// KnownStatus reports whether s is one of the reservation statuses.
func KnownStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Reservation records a committed booking of a room for a date and
// time-of-day window.  Date and times are kept as strings in the wire
// formats used throughout the API: ISO calendar dates ("2006-01-02")
// and 24-hour "HH:MM" clocks.
//
// Fields:
//  ID        – primary key identifier.
//  RoomID    – room being reserved.
//  UserID    – user who owns the booking.
//  Date      – calendar date of the booking.
//  StartTime – start of the window; strictly before EndTime.
//  EndTime   – end of the window.
//  EventType – free-text label for the kind of event.
//  Status    – one of the Status* constants.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
	ID        uint64    // reservations.id
	RoomID    uint64    // reservations.room_id
	UserID    uint64    // reservations.user_id
	Date      string    // reservations.date
	StartTime string    // reservations.start_time
	EndTime   string    // reservations.end_time
	EventType string    // reservations.event_type
	Status    string    // reservations.status
	CreatedAt time.Time // reservations.created_at
	UpdatedAt time.Time // reservations.updated_at
}
