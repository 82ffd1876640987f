// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationCreatedEvent is published when a reservation passes the
// admission check and commits.  It carries enough information for
// downstream consumers to log or notify without querying the primary
// database.
type ReservationCreatedEvent struct {
	ReservationID uint64 `json:"reservation_id"`
	UserID        uint64 `json:"user_id"`
	RoomID        uint64 `json:"room_id"`
	RoomName      string `json:"room_name"`
	Date          string `json:"date"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	EventType     string `json:"event_type"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}
