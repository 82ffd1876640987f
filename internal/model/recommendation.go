package model

import "time"

// Recommendation is a persisted booking suggestion ("preporuka").  It is
// structurally a Reservation without a status: a proposal rather than a
// commitment.  Rows are created through CRUD; the scoring engine also
// produces transient suggestions that are never stored.
type Recommendation struct {
	ID        uint64    // recommendations.id
	RoomID    uint64    // recommendations.room_id
	UserID    uint64    // recommendations.user_id
	Date      string    // recommendations.date
	StartTime string    // recommendations.start_time
	EndTime   string    // recommendations.end_time
	EventType string    // recommendations.event_type
	CreatedAt time.Time // recommendations.created_at
	UpdatedAt time.Time // recommendations.updated_at
}
