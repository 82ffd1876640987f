// Package booking implements the scheduling core of the reservation
// system: wall-clock interval arithmetic, free/busy checks over a day's
// reservations and admission control for new bookings.  Everything in
// this package is pure computation over values the caller already
// fetched, so it can be exercised without a database.
package booking

import (
	"fmt"
	"strconv"
	"strings"
)

// Interval is a half-open time-of-day window [From, To) expressed in
// minutes since midnight.
type Interval struct {
	From int
	To   int
}

// Overlaps reports whether two half-open intervals intersect.  Touching
// intervals ([0,60) and [60,120)) do not overlap.
func Overlaps(a, b Interval) bool {
	lo := a.From
	if b.From > lo {
		lo = b.From
	}
	hi := a.To
	if b.To < hi {
		hi = b.To
	}
	return lo < hi
}

// ClockToMinutes converts an "HH:MM" or "HH:MM:SS" wall-clock string to
// minutes since midnight, truncating to minute precision.  Malformed
// input degrades to 0 (midnight) instead of failing; stored rows are
// read through this function so a single dirty value never breaks a
// free/busy scan.  Writes are validated with ParseClock instead.
func ClockToMinutes(s string) int {
	m, err := ParseClock(s)
	if err != nil {
		return 0
	}
	return m
}

// ParseClock is the strict form of ClockToMinutes.  It accepts "HH:MM"
// and "HH:MM:SS" in 24-hour time and returns minutes since midnight, or
// an error describing why the value is unusable.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("clock %q: want HH:MM or HH:MM:SS", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("clock %q: bad hour", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q: bad minute", s)
	}
	if len(parts) == 3 {
		sec, err := strconv.Atoi(parts[2])
		if err != nil || sec < 0 || sec > 59 {
			return 0, fmt.Errorf("clock %q: bad second", s)
		}
	}
	return h*60 + m, nil
}

// MinutesToClock formats minutes since midnight back to "HH:MM".
func MinutesToClock(m int) string {
	if m < 0 {
		m = 0
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
