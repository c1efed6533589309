package model

import "time"

// Order statuses. PENDING and CONFIRMED orders both count toward seat
// occupancy; CANCELLED orders release their seats.
const (
	OrderPending   = "PENDING"
	OrderConfirmed = "CONFIRMED"
	OrderCancelled = "CANCELLED"
)

// Order records a completed checkout: the seats and concession items a
// user purchased for one showtime. TotalAmount is computed server side
// at checkout time from the derived seat prices plus product prices.
type Order struct {
	ID            uint64    `json:"id"`             // orders.id
	UserID        uint64    `json:"user_id"`        // orders.user_id
	ShowtimeID    uint64    `json:"showtime_id"`    // orders.showtime_id
	Status        string    `json:"status"`         // orders.status
	PaymentMethod string    `json:"payment_method"` // orders.payment_method
	TotalAmount   float64   `json:"total_amount"`   // orders.total_amount
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// OrderSeat links an order to one purchased seat. Label stores the
// composed seat identifier (row letter + seat number) at purchase time;
// it is the key the occupancy query returns, so it must be produced by
// the same composer the seat map uses.
type OrderSeat struct {
	ID      uint64  `json:"id"`       // order_seats.id
	OrderID uint64  `json:"order_id"` // order_seats.order_id
	SeatID  uint64  `json:"seat_id"`  // order_seats.seat_id
	Label   string  `json:"label"`    // order_seats.label
	Price   float64 `json:"price"`    // order_seats.price (derived at checkout)
}

// OrderItem is a concession line on an order. UnitPrice is the product
// price at purchase time.
type OrderItem struct {
	ID        uint64  `json:"id"`         // order_items.id
	OrderID   uint64  `json:"order_id"`   // order_items.order_id
	ProductID uint64  `json:"product_id"` // order_items.product_id
	Quantity  uint32  `json:"quantity"`   // order_items.quantity
	UnitPrice float64 `json:"unit_price"` // order_items.unit_price
}
