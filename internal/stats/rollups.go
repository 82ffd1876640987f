// Package stats computes the read-only dashboard rollups: KPI
// snapshots, daily and hourly reservation series, top rooms, room-type
// distribution and the utilization ratio.  Every function is a pure
// aggregation over slices the caller fetched; results tolerate brief
// staleness and are safe to cache.
package stats

import (
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/rezervacija/sala-backend/internal/booking"
	"github.com/rezervacija/sala-backend/internal/model"
)

const (
	// DefaultDailyWindow is the trailing window for the daily series.
	DefaultDailyWindow = 30
	// DefaultHourlyWindow is the trailing window for the hourly histogram.
	DefaultHourlyWindow = 14
	// DefaultUtilizationWindow is the trailing window for utilization.
	DefaultUtilizationWindow = 30
	// DefaultTopRoomsLimit caps the top-rooms chart.
	DefaultTopRoomsLimit = 10
)

const dateLayout = "2006-01-02"

// Series is a chart-ready pair of parallel label and count slices.
type Series struct {
	Labels []string `json:"labels"`
	Counts []int    `json:"data"`
}

// KPISnapshot holds the headline dashboard counters.
type KPISnapshot struct {
	UsersTotal        int `json:"users_total"`
	RoomsTotal        int `json:"rooms_total"`
	RoomsActive       int `json:"rooms_active"`
	ReservationsTotal int `json:"reservations_total"`
	ReservationsToday int `json:"reservations_today"`
}

// UtilizationReport relates rooms that saw activity in the trailing
// window to the active room count.
type UtilizationReport struct {
	ActiveRooms int     `json:"active_rooms"`
	BusyRooms   int     `json:"busy_rooms"`
	Ratio       float64 `json:"ratio"`
}

// windowStart returns the first day of a trailing window of the given
// length ending today.
func windowStart(today time.Time, days int) time.Time {
	return today.AddDate(0, 0, -(days - 1))
}

// inWindow reports whether the reservation date falls inside
// [start, today].  Rows with unparseable dates are skipped.
func inWindow(dateStr string, start, today time.Time) bool {
	d, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return false
	}
	return !d.Before(start) && !d.After(today)
}

// DailySeries counts reservations per calendar day over a trailing
// window ending today, zero-filled and ordered chronologically.
func DailySeries(reservations []model.Reservation, today time.Time, days int) Series {
	if days <= 0 {
		days = DefaultDailyWindow
	}
	today = today.Truncate(24 * time.Hour)
	start := windowStart(today, days)

	byDay := make(map[string]int)
	for _, r := range reservations {
		if inWindow(r.Date, start, today) {
			byDay[r.Date]++
		}
	}

	out := Series{Labels: make([]string, days), Counts: make([]int, days)}
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format(dateLayout)
		out.Labels[i] = day
		out.Counts[i] = byDay[day]
	}
	return out
}

// HourlyHistogram counts reservations per start hour (0-23) over a
// trailing window ending today.  All 24 buckets are present even when
// empty.
func HourlyHistogram(reservations []model.Reservation, today time.Time, days int) Series {
	if days <= 0 {
		days = DefaultHourlyWindow
	}
	today = today.Truncate(24 * time.Hour)
	start := windowStart(today, days)

	out := Series{Labels: make([]string, 24), Counts: make([]int, 24)}
	for h := 0; h < 24; h++ {
		out.Labels[h] = strconv.Itoa(h)
	}
	for _, r := range reservations {
		if !inWindow(r.Date, start, today) {
			continue
		}
		h := booking.ClockToMinutes(r.StartTime) / 60
		if h >= 0 && h < 24 {
			out.Counts[h]++
		}
	}
	return out
}

// Utilization reports how many active rooms had at least one
// reservation in the trailing window.  The ratio is rounded to three
// decimals and is 0 when there are no active rooms.
func Utilization(rooms []model.Room, reservations []model.Reservation, today time.Time, windowDays int) UtilizationReport {
	if windowDays <= 0 {
		windowDays = DefaultUtilizationWindow
	}
	today = today.Truncate(24 * time.Hour)
	start := windowStart(today, windowDays)

	var rep UtilizationReport
	for _, r := range rooms {
		if r.Active {
			rep.ActiveRooms++
		}
	}
	busy := make(map[uint64]struct{})
	for _, r := range reservations {
		if inWindow(r.Date, start, today) {
			busy[r.RoomID] = struct{}{}
		}
	}
	rep.BusyRooms = len(busy)
	if rep.ActiveRooms > 0 {
		rep.Ratio = math.Round(float64(rep.BusyRooms)/float64(rep.ActiveRooms)*1000) / 1000
	}
	return rep
}

// TypeDistribution counts rooms per type, descending by count.  Ties
// keep catalog order.
func TypeDistribution(rooms []model.Room) Series {
	counts := make(map[string]int)
	order := make([]string, 0)
	for _, r := range rooms {
		if _, seen := counts[r.Type]; !seen {
			order = append(order, r.Type)
		}
		counts[r.Type]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })

	out := Series{Labels: make([]string, 0, len(order)), Counts: make([]int, 0, len(order))}
	for _, typ := range order {
		out.Labels = append(out.Labels, typ)
		out.Counts = append(out.Counts, counts[typ])
	}
	return out
}

// TopRooms counts reservations per room, descending, truncated to
// limit, with room names resolved for display.  Rooms the catalog no
// longer knows are labelled by id.
func TopRooms(reservations []model.Reservation, rooms []model.Room, limit int) Series {
	if limit <= 0 {
		limit = DefaultTopRoomsLimit
	}
	counts := make(map[uint64]int)
	order := make([]uint64, 0)
	for _, r := range reservations {
		if _, seen := counts[r.RoomID]; !seen {
			order = append(order, r.RoomID)
		}
		counts[r.RoomID]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > limit {
		order = order[:limit]
	}

	names := make(map[uint64]string, len(rooms))
	for _, r := range rooms {
		names[r.ID] = r.Name
	}

	out := Series{Labels: make([]string, 0, len(order)), Counts: make([]int, 0, len(order))}
	for _, id := range order {
		name, ok := names[id]
		if !ok {
			name = "Sala #" + strconv.FormatUint(id, 10)
		}
		out.Labels = append(out.Labels, name)
		out.Counts = append(out.Counts, counts[id])
	}
	return out
}

// KPIs assembles the headline counters from full entity lists.
func KPIs(users []model.User, rooms []model.Room, reservations []model.Reservation, today time.Time) KPISnapshot {
	snap := KPISnapshot{
		UsersTotal:        len(users),
		RoomsTotal:        len(rooms),
		ReservationsTotal: len(reservations),
	}
	for _, r := range rooms {
		if r.Active {
			snap.RoomsActive++
		}
	}
	day := today.Format(dateLayout)
	for _, r := range reservations {
		if r.Date == day {
			snap.ReservationsToday++
		}
	}
	return snap
}
