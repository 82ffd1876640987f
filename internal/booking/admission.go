package booking

import (
	"fmt"
	"time"

	"github.com/rezervacija/sala-backend/internal/model"
)

// ValidationError marks a request field as structurally unusable.
// Handlers translate it into a 422 response naming the field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %s", e.Field, e.Reason)
}

// ConflictError reports that the requested window overlaps an existing
// reservation.  The blocking reservation id is included so the client
// can offer "choose another time".
type ConflictError struct {
	ReservationID uint64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("window overlaps reservation %d", e.ReservationID)
}

// Request carries the fields of a reservation create or update that
// admission control inspects.  ExcludeID is the id of the reservation
// being updated, so that a row never conflicts with itself; zero on
// create.
type Request struct {
	RoomID    uint64
	Date      string
	StartTime string
	EndTime   string
	EventType string
	Status    string
	ExcludeID uint64
}

// Validate performs the structural checks that are independent of
// availability: required fields, date and clock formats, and the
// end-after-start invariant.  The first failing field is reported.
func (req *Request) Validate() error {
	if req.RoomID == 0 {
		return &ValidationError{Field: "room_id", Reason: "is required"}
	}
	if req.Date == "" {
		return &ValidationError{Field: "date", Reason: "is required"}
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return &ValidationError{Field: "date", Reason: "must be an ISO date (YYYY-MM-DD)"}
	}
	from, err := ParseClock(req.StartTime)
	if err != nil {
		return &ValidationError{Field: "start_time", Reason: "must be a HH:MM clock"}
	}
	to, err := ParseClock(req.EndTime)
	if err != nil {
		return &ValidationError{Field: "end_time", Reason: "must be a HH:MM clock"}
	}
	if to <= from {
		return &ValidationError{Field: "end_time", Reason: "must be after start_time"}
	}
	if req.EventType == "" {
		return &ValidationError{Field: "event_type", Reason: "is required"}
	}
	if req.Status != "" && !model.KnownStatus(req.Status) {
		return &ValidationError{Field: "status", Reason: "is not a known status"}
	}
	return nil
}

// CheckAdmission decides whether the requested booking may be written.
// It validates the request structurally and then scans the supplied
// reservations (the target room's rows for the target date) for an
// overlap, returning a ConflictError on the first hit.  Reservation
// status is not consulted; any row blocks its slot.  Callers that want
// the check to be race-free run it inside the same transaction as the
// insert, with the day's rows locked.
func CheckAdmission(req Request, existing []model.Reservation) error {
	if err := req.Validate(); err != nil {
		return err
	}
	want := Interval{From: ClockToMinutes(req.StartTime), To: ClockToMinutes(req.EndTime)}
	for _, r := range existing {
		if r.ID == req.ExcludeID && req.ExcludeID != 0 {
			continue
		}
		if r.RoomID != req.RoomID || r.Date != req.Date {
			continue
		}
		taken := Interval{From: ClockToMinutes(r.StartTime), To: ClockToMinutes(r.EndTime)}
		if Overlaps(want, taken) {
			return &ConflictError{ReservationID: r.ID}
		}
	}
	return nil
}
