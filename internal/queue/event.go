// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// OrderConfirmedEvent is published when a checkout completes. It carries
// enough denormalized context for downstream consumers to log, notify or
// feed analytics without querying the primary database.
type OrderConfirmedEvent struct {
	OrderID     uint64   `json:"order_id"`
	UserID      uint64   `json:"user_id"`
	ShowtimeID  uint64   `json:"showtime_id"`
	CinemaName  string   `json:"cinema_name"`
	RoomName    string   `json:"room_name"`
	MovieTitle  string   `json:"movie_title"`
	StartsAt    string   `json:"starts_at"`
	SeatLabels  []string `json:"seats"`
	ItemCount   int      `json:"item_count"`
	TotalAmount float64  `json:"total_amount"`
	ConfirmedAt string   `json:"confirmed_at"`
}
