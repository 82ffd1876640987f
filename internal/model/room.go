package model

import "time"

// Room represents a bookable space ("sala") with its capacity, category
// and floor-plan placement.  This struct corresponds to a row in the
// `rooms` table.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – human readable room name.
//  Type        – free-text category (conference, classroom, ...).
//  Capacity    – seating capacity, always >= 1.
//  Description – optional descriptive text.
//  Active      – whether the room can currently be booked.
//  Price       – optional price per booking; nil when not set.
//  Floor       – floor number the room sits on, >= 0.
//  LayoutX     – grid column of the top-left cell on the floor plan (nullable).
//  LayoutY     – grid row of the top-left cell on the floor plan (nullable).
//  LayoutW     – width in grid cells, >= 1 when set.
//  LayoutH     – height in grid cells, >= 1 when set.
//  CreatedAt   – timestamp when the room was created.
//  UpdatedAt   – timestamp of last update.
type Room struct {
	ID          uint64    // rooms.id
	Name        string    // rooms.name
	Type        string    // rooms.type
	Capacity    int       // rooms.capacity
	Description *string   // rooms.description (nullable)
	Active      bool      // rooms.active
	Price       *float64  // rooms.price (nullable)
	Floor       int       // rooms.floor
	LayoutX     *int      // rooms.layout_x (nullable)
	LayoutY     *int      // rooms.layout_y (nullable)
	LayoutW     *int      // rooms.layout_w (nullable)
	LayoutH     *int      // rooms.layout_h (nullable)
	CreatedAt   time.Time // rooms.created_at
	UpdatedAt   time.Time // rooms.updated_at
}
