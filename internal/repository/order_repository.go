package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrOrderNotFound is returned when an order lookup yields no rows.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo provides access to orders, order_seats and order_items, and
// owns the occupancy query: the set of seat labels taken for a showtime
// is derived from PENDING and CONFIRMED orders every time it is read,
// never cached or materialized.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo constructs an OrderRepo with the given DB handle.
func NewOrderRepo(db *sql.DB) *OrderRepo {
	return &OrderRepo{db: db}
}

// DB exposes the underlying handle for multi-repo transactions.
func (r *OrderRepo) DB() *sql.DB {
	return r.db
}

// OccupiedLabels returns the seat labels occupied for a showtime:
// every seat referenced by an order in PENDING or CONFIRMED status.
// Cancelled orders never appear.
func (r *OrderRepo) OccupiedLabels(ctx context.Context, showtimeID uint64) ([]string, error) {
	const q = `SELECT os.label
	           FROM order_seats os
	           JOIN orders o ON o.id = os.order_id
	           WHERE o.showtime_id = ? AND o.status IN ('PENDING','CONFIRMED')`
	return r.queryLabels(ctx, r.db.QueryContext, q, showtimeID)
}

// OccupiedLabelsTx is OccupiedLabels inside a transaction with a
// FOR UPDATE lock, used by checkout to re-validate availability right
// before inserting: a seat grabbed between seat-map load and checkout
// must fail the checkout, not double-book.
func (r *OrderRepo) OccupiedLabelsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64) ([]string, error) {
	const q = `SELECT os.label
	           FROM order_seats os
	           JOIN orders o ON o.id = os.order_id
	           WHERE o.showtime_id = ? AND o.status IN ('PENDING','CONFIRMED')
	           FOR UPDATE`
	return r.queryLabels(ctx, tx.QueryContext, q, showtimeID)
}

type queryFunc func(ctx context.Context, query string, args ...any) (*sql.Rows, error)

func (r *OrderRepo) queryLabels(ctx context.Context, query queryFunc, q string, args ...any) ([]string, error) {
	rows, err := query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

// CreateTx inserts an order within the caller's transaction and
// populates its ID, status and timestamps.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
	const q = `INSERT INTO orders (user_id, showtime_id, status, payment_method, total_amount) VALUES (?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q, o.UserID, o.ShowtimeID, o.Status, o.PaymentMethod, o.TotalAmount)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	o.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM orders WHERE id = ?`
	return tx.QueryRowContext(ctx, sel, o.ID).Scan(&o.CreatedAt, &o.UpdatedAt)
}

// CreateSeatsBulkTx inserts the order's seats in one statement.
func (r *OrderRepo) CreateSeatsBulkTx(ctx context.Context, tx *sql.Tx, seats []model.OrderSeat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO order_seats (order_id, seat_id, label, price) VALUES `
	args := make([]any, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, s.OrderID, s.SeatID, s.Label, s.Price)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// CreateItemsBulkTx inserts the order's concession items in one statement.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	query := `INSERT INTO order_items (order_id, product_id, quantity, unit_price) VALUES `
	args := make([]any, 0, len(items)*4)
	for i, it := range items {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?, ?)"
		args = append(args, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice)
	}
	_, err := tx.ExecContext(ctx, query, args...)
	return err
}

// OrderDetail is the denormalized view used when listing a user's
// orders: the order plus the joined showtime, movie and venue names and
// the purchased seat labels and items.
type OrderDetail struct {
	Order      model.Order       `json:"order"`
	MovieTitle string            `json:"movie_title"`
	CinemaName string            `json:"cinema_name"`
	RoomName   string            `json:"room_name"`
	StartsAt   time.Time         `json:"starts_at"`
	Seats      []model.OrderSeat `json:"seats"`
	Items      []model.OrderItem `json:"items"`
}

const orderDetailQuery = `SELECT o.id, o.user_id, o.showtime_id, o.status, o.payment_method, o.total_amount, o.created_at, o.updated_at,
	       m.title, c.name, r.name, st.starts_at
	FROM orders o
	JOIN showtimes st ON st.id = o.showtime_id
	JOIN movies m ON m.id = st.movie_id
	JOIN rooms r ON r.id = st.room_id
	JOIN cinemas c ON c.id = r.cinema_id`

func (r *OrderRepo) scanDetail(row interface{ Scan(...any) error }) (*OrderDetail, error) {
	var d OrderDetail
	err := row.Scan(&d.Order.ID, &d.Order.UserID, &d.Order.ShowtimeID, &d.Order.Status,
		&d.Order.PaymentMethod, &d.Order.TotalAmount, &d.Order.CreatedAt, &d.Order.UpdatedAt,
		&d.MovieTitle, &d.CinemaName, &d.RoomName, &d.StartsAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, d *OrderDetail) error {
	const qs = `SELECT id, order_id, seat_id, label, price FROM order_seats WHERE order_id = ? ORDER BY label`
	rows, err := r.db.QueryContext(ctx, qs, d.Order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var s model.OrderSeat
		if err := rows.Scan(&s.ID, &s.OrderID, &s.SeatID, &s.Label, &s.Price); err != nil {
			return err
		}
		d.Seats = append(d.Seats, s)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	const qi = `SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = ? ORDER BY id`
	irows, err := r.db.QueryContext(ctx, qi, d.Order.ID)
	if err != nil {
		return err
	}
	defer irows.Close()
	for irows.Next() {
		var it model.OrderItem
		if err := irows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return err
		}
		d.Items = append(d.Items, it)
	}
	return irows.Err()
}

// ListByUser returns all of a user's orders, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]OrderDetail, error) {
	q := orderDetailQuery + ` WHERE o.user_id = ? ORDER BY o.created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OrderDetail
	for rows.Next() {
		d, err := r.scanDetail(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		if err := r.loadLines(ctx, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// GetByIDForUser loads one order and enforces ownership: a missing order
// yields ErrOrderNotFound, someone else's order yields ErrForbidden.
func (r *OrderRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*OrderDetail, error) {
	q := orderDetailQuery + ` WHERE o.id = ?`
	d, err := r.scanDetail(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if d.Order.UserID != userID {
		return nil, ErrForbidden
	}
	if err := r.loadLines(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// CancelForUser cancels a user's order before its showtime starts,
// releasing the seats (they simply stop counting toward occupancy).
// Returns ErrConflict when the showtime has already started.
func (r *OrderRepo) CancelForUser(ctx context.Context, id, userID uint64, now time.Time) error {
	var (
		owner    uint64
		startsAt time.Time
		status   string
	)
	const q = `SELECT o.user_id, st.starts_at, o.status
	           FROM orders o JOIN showtimes st ON st.id = o.showtime_id
	           WHERE o.id = ?`
	err := r.db.QueryRowContext(ctx, q, id).Scan(&owner, &startsAt, &status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrOrderNotFound
		}
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	if status == model.OrderCancelled {
		return nil // already cancelled, idempotent
	}
	if !startsAt.After(now) {
		return ErrConflict
	}
	const upd = `UPDATE orders SET status = 'CANCELLED', updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err = r.db.ExecContext(ctx, upd, id)
	return err
}
