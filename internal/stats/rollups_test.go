package stats

import (
	"testing"
	"time"

	"github.com/rezervacija/sala-backend/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDailySeriesZeroFill(t *testing.T) {
	today := day("2024-01-07")
	reservations := []model.Reservation{
		{ID: 1, RoomID: 1, Date: "2024-01-03", StartTime: "09:00"},
		{ID: 2, RoomID: 1, Date: "2024-01-03", StartTime: "11:00"},
		{ID: 3, RoomID: 2, Date: "2023-12-30", StartTime: "09:00"}, // outside window
	}
	got := DailySeries(reservations, today, 7)
	if len(got.Labels) != 7 || len(got.Counts) != 7 {
		t.Fatalf("series length = %d/%d, want 7/7", len(got.Labels), len(got.Counts))
	}
	if got.Labels[0] != "2024-01-01" || got.Labels[6] != "2024-01-07" {
		t.Errorf("label range = [%s..%s], want [2024-01-01..2024-01-07]", got.Labels[0], got.Labels[6])
	}
	for i, c := range got.Counts {
		want := 0
		if got.Labels[i] == "2024-01-03" {
			want = 2
		}
		if c != want {
			t.Errorf("count[%s] = %d, want %d", got.Labels[i], c, want)
		}
	}
}

func TestHourlyHistogram(t *testing.T) {
	today := day("2024-01-14")
	reservations := []model.Reservation{
		{ID: 1, Date: "2024-01-10", StartTime: "09:00"},
		{ID: 2, Date: "2024-01-11", StartTime: "09:30"},
		{ID: 3, Date: "2024-01-12", StartTime: "17:15"},
		{ID: 4, Date: "2023-11-01", StartTime: "09:00"}, // outside window
	}
	got := HourlyHistogram(reservations, today, 14)
	if len(got.Counts) != 24 {
		t.Fatalf("bucket count = %d, want 24", len(got.Counts))
	}
	if got.Counts[9] != 2 {
		t.Errorf("hour 9 count = %d, want 2", got.Counts[9])
	}
	if got.Counts[17] != 1 {
		t.Errorf("hour 17 count = %d, want 1", got.Counts[17])
	}
	if got.Counts[0] != 0 {
		t.Errorf("hour 0 count = %d, want 0", got.Counts[0])
	}
}

func TestUtilization(t *testing.T) {
	today := day("2024-01-31")
	rooms := []model.Room{
		{ID: 1, Active: true},
		{ID: 2, Active: true},
		{ID: 3, Active: true},
		{ID: 4, Active: false},
	}
	reservations := []model.Reservation{
		{ID: 1, RoomID: 1, Date: "2024-01-20"},
		{ID: 2, RoomID: 1, Date: "2024-01-21"}, // same room counted once
		{ID: 3, RoomID: 2, Date: "2024-01-25"},
		{ID: 4, RoomID: 3, Date: "2023-06-01"}, // outside window
	}
	got := Utilization(rooms, reservations, today, 30)
	if got.ActiveRooms != 3 {
		t.Errorf("active rooms = %d, want 3", got.ActiveRooms)
	}
	if got.BusyRooms != 2 {
		t.Errorf("busy rooms = %d, want 2", got.BusyRooms)
	}
	if got.Ratio != 0.667 {
		t.Errorf("ratio = %v, want 0.667", got.Ratio)
	}
}

func TestUtilizationZeroGuard(t *testing.T) {
	got := Utilization(nil, []model.Reservation{{ID: 1, RoomID: 1, Date: "2024-01-20"}}, day("2024-01-31"), 30)
	if got.Ratio != 0 {
		t.Errorf("ratio with zero active rooms = %v, want 0", got.Ratio)
	}
}

func TestTypeDistribution(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, Type: "meeting"},
		{ID: 2, Type: "conference"},
		{ID: 3, Type: "conference"},
		{ID: 4, Type: "hall"},
	}
	got := TypeDistribution(rooms)
	if len(got.Labels) != 3 {
		t.Fatalf("type count = %d, want 3", len(got.Labels))
	}
	if got.Labels[0] != "conference" || got.Counts[0] != 2 {
		t.Errorf("top type = %s/%d, want conference/2", got.Labels[0], got.Counts[0])
	}
}

func TestTopRooms(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, Name: "Mala"},
		{ID: 2, Name: "Velika"},
	}
	reservations := []model.Reservation{
		{ID: 1, RoomID: 2}, {ID: 2, RoomID: 2}, {ID: 3, RoomID: 2},
		{ID: 4, RoomID: 1},
		{ID: 5, RoomID: 99}, // room no longer in catalog
	}
	got := TopRooms(reservations, rooms, 10)
	if got.Labels[0] != "Velika" || got.Counts[0] != 3 {
		t.Errorf("top room = %s/%d, want Velika/3", got.Labels[0], got.Counts[0])
	}
	if got.Labels[2] != "Sala #99" {
		t.Errorf("unknown room label = %s, want Sala #99", got.Labels[2])
	}

	truncated := TopRooms(reservations, rooms, 1)
	if len(truncated.Labels) != 1 {
		t.Errorf("truncated length = %d, want 1", len(truncated.Labels))
	}
}

func TestKPIs(t *testing.T) {
	today := day("2024-01-10")
	users := []model.User{{ID: 1}, {ID: 2}}
	rooms := []model.Room{{ID: 1, Active: true}, {ID: 2, Active: false}}
	reservations := []model.Reservation{
		{ID: 1, Date: "2024-01-10"},
		{ID: 2, Date: "2024-01-09"},
	}
	got := KPIs(users, rooms, reservations, today)
	want := KPISnapshot{UsersTotal: 2, RoomsTotal: 2, RoomsActive: 1, ReservationsTotal: 2, ReservationsToday: 1}
	if got != want {
		t.Errorf("KPIs = %+v, want %+v", got, want)
	}
}
