package booking

import "github.com/rezervacija/sala-backend/internal/model"

// IsFree reports whether the room identified by roomID is free on the
// given date for the [from, to) window, judged against the supplied
// reservation list.  The function performs no I/O; callers fetch the
// reservations themselves so the check stays testable over in-memory
// data.
//
// Semantics carried over from the reference behaviour:
//   - an empty date means "no temporal constraint" and is vacuously free;
//   - reservation status is ignored, so a rejected or cancelled booking
//     still blocks its slot;
//   - times are read leniently (malformed values degrade to 00:00).
func IsFree(roomID uint64, date, from, to string, reservations []model.Reservation) bool {
	if date == "" {
		return true
	}
	want := Interval{From: ClockToMinutes(from), To: ClockToMinutes(to)}
	for _, r := range reservations {
		if r.RoomID != roomID || r.Date != date {
			continue
		}
		taken := Interval{From: ClockToMinutes(r.StartTime), To: ClockToMinutes(r.EndTime)}
		if Overlaps(want, taken) {
			return false
		}
	}
	return true
}
