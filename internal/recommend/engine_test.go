package recommend

import (
	"math"
	"testing"

	"github.com/rezervacija/sala-backend/internal/model"
)

func intp(v int) *int { return &v }

func catalog() []model.Room {
	return []model.Room{
		{ID: 1, Name: "Mala", Type: "meeting", Capacity: 10, Active: true},
		{ID: 2, Name: "Srednja", Type: "conference", Capacity: 50, Active: true},
		{ID: 3, Name: "Velika", Type: "hall", Capacity: 100, Active: true},
	}
}

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSuggestHardCapacityFilter(t *testing.T) {
	got := Suggest(catalog(), Preference{CapMin: intp(40), CapMax: intp(60)}, DefaultLimit)
	if len(got) != 1 {
		t.Fatalf("pool size = %d, want 1", len(got))
	}
	if got[0].Room.ID != 2 {
		t.Errorf("pool room = %d, want 2", got[0].Room.ID)
	}
	// the lone candidate still earns the activity bonus
	if got[0].Score <= 0 {
		t.Errorf("score = %v, want > 0", got[0].Score)
	}
}

func TestSuggestFallbackWhenFilterEliminatesAll(t *testing.T) {
	got := Suggest(catalog(), Preference{CapMin: intp(200)}, DefaultLimit)
	if len(got) != 3 {
		t.Fatalf("fallback size = %d, want 3", len(got))
	}
	for i, s := range got {
		if s.Score != 0 {
			t.Errorf("fallback score[%d] = %v, want 0", i, s.Score)
		}
		if s.Room.ID != catalog()[i].ID {
			t.Errorf("fallback order[%d] = room %d, want %d (catalog order)", i, s.Room.ID, catalog()[i].ID)
		}
	}
}

func TestSuggestCapacityProximity(t *testing.T) {
	rooms := []model.Room{
		{ID: 1, Capacity: 20, Active: true},
		{ID: 2, Capacity: 48, Active: true},
		{ID: 3, Capacity: 52, Active: true},
	}
	got := Suggest(rooms, Preference{Headcount: 50}, DefaultLimit)
	if got[0].Room.ID != 2 || got[1].Room.ID != 3 {
		t.Fatalf("ranking = [%d %d %d], want room 48 then 52 first", got[0].Room.ID, got[1].Room.ID, got[2].Room.ID)
	}
	if got[2].Room.ID != 1 {
		t.Errorf("room with capacity 20 should rank last, got %d", got[2].Room.ID)
	}
	// delta 2 at target 50 -> proximity 5 - 2/50 = 4.96, plus 0.5 active
	if want := 4.96 + 0.5; !almostEqual(got[0].Score, want) {
		t.Errorf("top score = %v, want %v", got[0].Score, want)
	}
	// gap of 5x the target earns nothing from the proximity term
	far := Suggest([]model.Room{{ID: 9, Capacity: 300}}, Preference{Headcount: 50}, DefaultLimit)
	if far[0].Score != 0 {
		t.Errorf("score for 5x capacity gap = %v, want 0 (inactive room, no other terms)", far[0].Score)
	}
}

func TestSuggestWeightedTerms(t *testing.T) {
	rooms := []model.Room{{ID: 1, Type: "conference", Capacity: 50, Active: true}}

	t.Run("type match", func(t *testing.T) {
		got := Suggest(rooms, Preference{RoomType: "conference"}, DefaultLimit)
		if want := 3.0 + 0.5; !almostEqual(got[0].Score, want) {
			t.Errorf("score = %v, want %v", got[0].Score, want)
		}
	})

	t.Run("event kind substring is case-insensitive", func(t *testing.T) {
		got := Suggest(rooms, Preference{EventKind: "CONF"}, DefaultLimit)
		if want := 2.0 + 0.5; !almostEqual(got[0].Score, want) {
			t.Errorf("score = %v, want %v", got[0].Score, want)
		}
	})

	t.Run("complete time preference", func(t *testing.T) {
		got := Suggest(rooms, Preference{Date: "2024-01-10", From: "09:00", To: "10:00"}, DefaultLimit)
		if want := 0.5 + 0.5; !almostEqual(got[0].Score, want) {
			t.Errorf("score = %v, want %v", got[0].Score, want)
		}
	})

	t.Run("inverted time window earns nothing", func(t *testing.T) {
		got := Suggest(rooms, Preference{Date: "2024-01-10", From: "10:00", To: "09:00"}, DefaultLimit)
		if want := 0.5; !almostEqual(got[0].Score, want) {
			t.Errorf("score = %v, want %v (activity bonus only)", got[0].Score, want)
		}
	})

	t.Run("midpoint target from both bounds", func(t *testing.T) {
		// bounds [40,60] -> target 50, delta 0 -> proximity 5
		got := Suggest(rooms, Preference{CapMin: intp(40), CapMax: intp(60)}, DefaultLimit)
		if want := 5.0 + 0.5; !almostEqual(got[0].Score, want) {
			t.Errorf("score = %v, want %v", got[0].Score, want)
		}
	})
}

func TestSuggestTruncatesToLimit(t *testing.T) {
	rooms := make([]model.Room, 8)
	for i := range rooms {
		rooms[i] = model.Room{ID: uint64(i + 1), Capacity: 10, Active: true}
	}
	got := Suggest(rooms, Preference{}, 0)
	if len(got) != DefaultLimit {
		t.Errorf("len = %d, want %d", len(got), DefaultLimit)
	}
}

func TestSuggestEmptyCatalog(t *testing.T) {
	if got := Suggest(nil, Preference{}, DefaultLimit); len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestTopPick(t *testing.T) {
	top, ok := TopPick(catalog(), Preference{RoomType: "hall"})
	if !ok {
		t.Fatal("TopPick over a non-empty catalog must return ok")
	}
	if top.Room.ID != 3 {
		t.Errorf("top pick = room %d, want 3", top.Room.ID)
	}
	if _, ok := TopPick(nil, Preference{}); ok {
		t.Error("TopPick over an empty catalog must return ok=false")
	}
}
