// Package recommend ranks rooms against a user's stated preferences.
// Scoring is a sum of independently triggered weighted terms over a
// capacity-filtered candidate pool, with a fallback to the whole
// catalog when the filter is too strict.  The engine is total: any
// input, including an empty catalog or an empty preference, yields a
// well-defined (possibly empty) ranking.
package recommend

import (
	"sort"
	"strings"

	"github.com/rezervacija/sala-backend/internal/booking"
	"github.com/rezervacija/sala-backend/internal/model"
)

// Scoring weights.  Capacity proximity decays linearly from
// weightCapacityProximity down to zero as the gap between a room's
// capacity and the target headcount grows.
const (
	weightRoomTypeMatch     = 3.0
	weightEventKindHint     = 2.0
	weightCapacityProximity = 5.0
	weightActiveRoom        = 0.5
	weightTimePrefGiven     = 0.5
)

// DefaultLimit caps the ranking length returned to callers.
const DefaultLimit = 5

// Preference is the ephemeral, per-request query the engine scores
// against.  All fields are optional; nil capacity bounds mean
// unbounded on that side and an empty RoomType means "any".
type Preference struct {
	RoomType  string `json:"room_type"`
	EventKind string `json:"event_kind"`
	CapMin    *int   `json:"cap_min"`
	CapMax    *int   `json:"cap_max"`
	Headcount int    `json:"headcount"`
	Date      string `json:"date"`
	From      string `json:"from"`
	To        string `json:"to"`
}

// Suggestion pairs a room with the score it earned.
type Suggestion struct {
	Room  model.Room
	Score float64
}

// targetHeadcount picks the capacity the proximity term aims at: an
// explicit headcount wins, then the midpoint of both bounds, then a
// single bound, else 0 which disables the term.
func targetHeadcount(pref Preference) float64 {
	if pref.Headcount > 0 {
		return float64(pref.Headcount)
	}
	switch {
	case pref.CapMin != nil && pref.CapMax != nil:
		return float64(*pref.CapMin+*pref.CapMax) / 2
	case pref.CapMin != nil:
		return float64(*pref.CapMin)
	case pref.CapMax != nil:
		return float64(*pref.CapMax)
	}
	return 0
}

// hasTimePreference reports whether the caller supplied a complete,
// chronologically ordered time window.
func hasTimePreference(pref Preference) bool {
	if pref.Date == "" || pref.From == "" || pref.To == "" {
		return false
	}
	return booking.ClockToMinutes(pref.To) > booking.ClockToMinutes(pref.From)
}

// Suggest scores the catalog against the preference and returns at most
// limit suggestions, best first.  The capacity bounds are a hard fence:
// rooms outside [CapMin, CapMax] never enter the pool.  Inactive rooms
// stay biddable here (they only lose the activity bonus); the caller
// decides whether to surface them.  When the fence eliminates every
// room the whole catalog comes back at score 0, in catalog order, so
// over-constrained filters still show candidates.  Ties keep catalog
// order.
func Suggest(rooms []model.Room, pref Preference, limit int) []Suggestion {
	if limit <= 0 {
		limit = DefaultLimit
	}

	pool := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if pref.CapMin != nil && r.Capacity < *pref.CapMin {
			continue
		}
		if pref.CapMax != nil && r.Capacity > *pref.CapMax {
			continue
		}
		pool = append(pool, r)
	}

	if len(pool) == 0 {
		fallback := make([]Suggestion, 0, len(rooms))
		for _, r := range rooms {
			fallback = append(fallback, Suggestion{Room: r})
		}
		if len(fallback) > limit {
			fallback = fallback[:limit]
		}
		return fallback
	}

	target := targetHeadcount(pref)
	timeGiven := hasTimePreference(pref)
	kind := strings.ToLower(pref.EventKind)

	ranked := make([]Suggestion, 0, len(pool))
	for _, r := range pool {
		score := 0.0
		if pref.RoomType != "" && r.Type == pref.RoomType {
			score += weightRoomTypeMatch
		}
		if kind != "" && strings.Contains(strings.ToLower(r.Type), kind) {
			score += weightEventKindHint
		}
		if target > 0 {
			delta := float64(r.Capacity) - target
			if delta < 0 {
				delta = -delta
			}
			div := target
			if div < 1 {
				div = 1
			}
			if proximity := weightCapacityProximity - delta/div; proximity > 0 {
				score += proximity
			}
		}
		if r.Active {
			score += weightActiveRoom
		}
		if timeGiven {
			score += weightTimePrefGiven
		}
		ranked = append(ranked, Suggestion{Room: r, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

// TopPick returns the single best-ranked room for the preference,
// ready for one-click booking.  ok is false when the catalog is empty.
func TopPick(rooms []model.Room, pref Preference) (Suggestion, bool) {
	ranked := Suggest(rooms, pref, 1)
	if len(ranked) == 0 {
		return Suggestion{}, false
	}
	return ranked[0], true
}
