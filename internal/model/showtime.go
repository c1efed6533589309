package model

import "time"

// Showtime statuses.
const (
	ShowtimeScheduled = "SCHEDULED"
	ShowtimeCancelled = "CANCELLED"
	ShowtimeFinished  = "FINISHED"
)

// Showtime is a scheduled screening of a movie in a specific room.
// BasePrice is the price of a normal seat; the effective price of any
// seat is BasePrice multiplied by its row's multiplier and is derived at
// seat-map build time, never persisted.
type Showtime struct {
	ID        uint64    `json:"id"`         // showtimes.id
	MovieID   uint64    `json:"movie_id"`   // showtimes.movie_id
	RoomID    uint64    `json:"room_id"`    // showtimes.room_id
	StartsAt  time.Time `json:"starts_at"`  // showtimes.starts_at
	EndsAt    time.Time `json:"ends_at"`    // showtimes.ends_at
	BasePrice float64   `json:"base_price"` // showtimes.base_price
	Status    string    `json:"status"`     // showtimes.status
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
