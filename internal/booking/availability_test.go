package booking

import (
	"testing"

	"github.com/rezervacija/sala-backend/internal/model"
)

func TestIsFree(t *testing.T) {
	reservations := []model.Reservation{
		{ID: 1, RoomID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Status: model.StatusConfirmed},
		{ID: 2, RoomID: 7, Date: "2024-01-11", StartTime: "09:00", EndTime: "10:00", Status: model.StatusConfirmed},
		{ID: 3, RoomID: 9, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Status: model.StatusConfirmed},
	}

	t.Run("empty date is vacuously free", func(t *testing.T) {
		if !IsFree(7, "", "09:00", "10:00", reservations) {
			t.Error("IsFree with empty date should be true regardless of reservations")
		}
	})

	t.Run("overlapping window is busy", func(t *testing.T) {
		if IsFree(7, "2024-01-10", "09:30", "09:45", reservations) {
			t.Error("window inside an existing reservation should not be free")
		}
	})

	t.Run("touching window is free", func(t *testing.T) {
		if !IsFree(7, "2024-01-10", "10:00", "11:00", reservations) {
			t.Error("window starting exactly when a reservation ends should be free")
		}
	})

	t.Run("other rooms and dates do not block", func(t *testing.T) {
		if !IsFree(7, "2024-01-12", "09:00", "10:00", reservations) {
			t.Error("day without reservations should be free")
		}
		if !IsFree(8, "2024-01-10", "09:00", "10:00", reservations) {
			t.Error("room without reservations should be free")
		}
	})

	t.Run("status does not matter", func(t *testing.T) {
		cancelled := []model.Reservation{
			{ID: 4, RoomID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00", Status: model.StatusCancelled},
		}
		if IsFree(7, "2024-01-10", "09:00", "09:30", cancelled) {
			t.Error("a cancelled reservation still blocks its slot")
		}
	})
}
