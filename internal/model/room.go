package model

import "time"

// Room types mirror the physical screening room classes.
const (
	RoomSmall  = "SMALL"
	RoomMedium = "MEDIUM"
	RoomLarge  = "LARGE"
	RoomIMAX   = "IMAX"
)

// Row type tiers. The tier is informational; pricing is driven by the
// row's multiplier, not by its tier name.
const (
	RowNormal  = "NORMAL"
	RowVIP     = "VIP"
	RowPremium = "PREMIUM"
)

// Seat types.
const (
	SeatNormal     = "NORMAL"
	SeatVIP        = "VIP"
	SeatAccessible = "ACCESSIBLE"
	SeatCouple     = "COUPLE"
)

// Room represents a physical screening room within a cinema. Seats are
// not attached directly to the room; they hang off its rows.
//
// Fields:
//  ID        – primary key identifier.
//  CinemaID  – cinema that owns this room.
//  Name      – room name, unique per cinema.
//  Type      – one of the Room* constants.
//  IsActive  – inactive rooms are hidden from browsing and scheduling.
type Room struct {
	ID        uint64    `json:"id"`        // rooms.id
	CinemaID  uint64    `json:"cinema_id"` // rooms.cinema_id
	Name      string    `json:"name"`      // rooms.name
	Type      string    `json:"type"`      // rooms.type
	IsActive  bool      `json:"is_active"` // rooms.is_active
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Row is a horizontal line of seats within a room. Display order is
// governed by Seq, never by sorting Letter: a room relabelled B, A, C
// still renders in its physical order.
//
// Fields:
//  ID         – primary key identifier.
//  RoomID     – room this row belongs to.
//  Letter     – short row label used to compose seat identifiers ("A", "AA").
//  Seq        – explicit display sequence within the room.
//  Type       – one of the Row* constants.
//  Multiplier – factor applied to a showtime's base price for every seat
//               in this row.
//  IsActive   – inactive rows are excluded from seat maps entirely.
type Row struct {
	ID         uint64    `json:"id"`         // room_rows.id
	RoomID     uint64    `json:"room_id"`    // room_rows.room_id
	Letter     string    `json:"letter"`     // room_rows.letter
	Seq        uint32    `json:"seq"`        // room_rows.seq
	Type       string    `json:"type"`       // room_rows.type
	Multiplier float64   `json:"multiplier"` // room_rows.multiplier
	IsActive   bool      `json:"is_active"`  // room_rows.is_active
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Seat is an individual bookable position within a row. SeatNumber is
// unique within the row; inactive seats are excluded from seat maps
// rather than shown as unavailable.
type Seat struct {
	ID         uint64    `json:"id"`          // seats.id
	RowID      uint64    `json:"row_id"`      // seats.row_id
	SeatNumber uint32    `json:"seat_number"` // seats.seat_number
	Type       string    `json:"type"`        // seats.type
	IsActive   bool      `json:"is_active"`   // seats.is_active
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
