package booking

import (
	"errors"
	"testing"

	"github.com/rezervacija/sala-backend/internal/model"
)

func validRequest() Request {
	return Request{
		RoomID:    7,
		Date:      "2024-01-10",
		StartTime: "12:00",
		EndTime:   "13:00",
		EventType: "meeting",
		Status:    model.StatusPending,
	}
}

func TestRequestValidate(t *testing.T) {
	cases := []struct {
		name      string
		mutate    func(*Request)
		wantField string
	}{
		{"missing room", func(r *Request) { r.RoomID = 0 }, "room_id"},
		{"missing date", func(r *Request) { r.Date = "" }, "date"},
		{"malformed date", func(r *Request) { r.Date = "10.01.2024" }, "date"},
		{"malformed start", func(r *Request) { r.StartTime = "noon" }, "start_time"},
		{"malformed end", func(r *Request) { r.EndTime = "25:00" }, "end_time"},
		{"end before start", func(r *Request) { r.StartTime = "14:00"; r.EndTime = "13:00" }, "end_time"},
		{"end equals start", func(r *Request) { r.EndTime = "12:00" }, "end_time"},
		{"missing event type", func(r *Request) { r.EventType = "" }, "event_type"},
		{"unknown status", func(r *Request) { r.Status = "MAYBE" }, "status"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)
			err := req.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate() = %v, want ValidationError", err)
			}
			if verr.Field != tc.wantField {
				t.Errorf("Validate() flagged field %q, want %q", verr.Field, tc.wantField)
			}
		})
	}

	t.Run("valid request passes", func(t *testing.T) {
		req := validRequest()
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})

	t.Run("empty status allowed", func(t *testing.T) {
		req := validRequest()
		req.Status = ""
		if err := req.Validate(); err != nil {
			t.Fatalf("Validate() = %v, want nil", err)
		}
	})
}

func TestCheckAdmission(t *testing.T) {
	existing := []model.Reservation{
		{ID: 11, RoomID: 7, Date: "2024-01-10", StartTime: "09:00", EndTime: "10:00"},
		{ID: 12, RoomID: 7, Date: "2024-01-10", StartTime: "15:00", EndTime: "16:00"},
	}

	t.Run("free window admitted", func(t *testing.T) {
		if err := CheckAdmission(validRequest(), existing); err != nil {
			t.Fatalf("CheckAdmission = %v, want nil", err)
		}
	})

	t.Run("overlap rejected with blocking id", func(t *testing.T) {
		req := validRequest()
		req.StartTime, req.EndTime = "09:30", "09:45"
		err := CheckAdmission(req, existing)
		var cerr *ConflictError
		if !errors.As(err, &cerr) {
			t.Fatalf("CheckAdmission = %v, want ConflictError", err)
		}
		if cerr.ReservationID != 11 {
			t.Errorf("conflicting reservation id = %d, want 11", cerr.ReservationID)
		}
	})

	t.Run("update excludes its own row", func(t *testing.T) {
		req := validRequest()
		req.StartTime, req.EndTime = "09:00", "10:00"
		req.ExcludeID = 11
		if err := CheckAdmission(req, existing); err != nil {
			t.Fatalf("CheckAdmission = %v, want nil when only conflict is the row itself", err)
		}
	})

	t.Run("validation runs before overlap scan", func(t *testing.T) {
		req := validRequest()
		req.EventType = ""
		req.StartTime, req.EndTime = "09:30", "09:45"
		var verr *ValidationError
		if err := CheckAdmission(req, existing); !errors.As(err, &verr) {
			t.Fatalf("CheckAdmission = %v, want ValidationError", err)
		}
	})
}
