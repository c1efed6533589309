package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrShowtimeNotFound is returned when a showtime lookup yields no rows.
var ErrShowtimeNotFound = errors.New("showtime not found")

// ShowtimeRepo provides access to the showtimes table.
type ShowtimeRepo struct {
	db *sql.DB
}

// NewShowtimeRepo constructs a ShowtimeRepo with the given DB handle.
func NewShowtimeRepo(db *sql.DB) *ShowtimeRepo {
	return &ShowtimeRepo{db: db}
}

// DB exposes the underlying handle so handlers can begin transactions
// spanning multiple repositories.
func (r *ShowtimeRepo) DB() *sql.DB {
	return r.db
}

const showtimeCols = `id, movie_id, room_id, starts_at, ends_at, base_price, status, created_at, updated_at`

func scanShowtime(row interface{ Scan(...any) error }) (*model.Showtime, error) {
	var st model.Showtime
	err := row.Scan(&st.ID, &st.MovieID, &st.RoomID, &st.StartsAt, &st.EndsAt, &st.BasePrice,
		&st.Status, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// Create inserts a showtime and populates its ID, status and timestamps.
// Overlap with an existing scheduled showtime in the same room conflicts.
func (r *ShowtimeRepo) Create(ctx context.Context, st *model.Showtime) error {
	const overlap = `SELECT COUNT(*) FROM showtimes
	                 WHERE room_id = ? AND status = 'SCHEDULED' AND starts_at < ? AND ends_at > ?`
	var n int
	if err := r.db.QueryRowContext(ctx, overlap, st.RoomID, st.EndsAt, st.StartsAt).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `INSERT INTO showtimes (movie_id, room_id, starts_at, ends_at, base_price) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, st.MovieID, st.RoomID, st.StartsAt, st.EndsAt, st.BasePrice)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	st.ID = uint64(id)
	const sel = `SELECT ` + showtimeCols + ` FROM showtimes WHERE id = ?`
	got, err := scanShowtime(r.db.QueryRowContext(ctx, sel, st.ID))
	if err != nil {
		return err
	}
	*st = *got
	return nil
}

// GetByID retrieves a showtime by id.
func (r *ShowtimeRepo) GetByID(ctx context.Context, id uint64) (*model.Showtime, error) {
	const q = `SELECT ` + showtimeCols + ` FROM showtimes WHERE id = ?`
	st, err := scanShowtime(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrShowtimeNotFound
		}
		return nil, err
	}
	return st, nil
}

// ListByMovie returns upcoming scheduled showtimes of a movie, newest
// last. When cinemaID is non-zero only showtimes in that cinema's rooms
// are returned.
func (r *ShowtimeRepo) ListByMovie(ctx context.Context, movieID, cinemaID uint64, from time.Time) ([]model.Showtime, error) {
	q := `SELECT st.id, st.movie_id, st.room_id, st.starts_at, st.ends_at, st.base_price, st.status, st.created_at, st.updated_at
	      FROM showtimes st`
	args := []any{}
	if cinemaID != 0 {
		q += ` JOIN rooms r ON r.id = st.room_id`
	}
	q += ` WHERE st.movie_id = ? AND st.status = 'SCHEDULED' AND st.starts_at >= ?`
	args = append(args, movieID, from)
	if cinemaID != 0 {
		q += ` AND r.cinema_id = ?`
		args = append(args, cinemaID)
	}
	q += ` ORDER BY st.starts_at`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Showtime
	for rows.Next() {
		st, err := scanShowtime(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *st)
	}
	return out, rows.Err()
}

// Update overwrites schedule and price fields of a showtime.
func (r *ShowtimeRepo) Update(ctx context.Context, st *model.Showtime) error {
	const q = `UPDATE showtimes
	           SET movie_id = ?, room_id = ?, starts_at = ?, ends_at = ?, base_price = ?, status = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, st.MovieID, st.RoomID, st.StartsAt, st.EndsAt, st.BasePrice, st.Status, st.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}

// Cancel marks a showtime cancelled. Showtimes with non-cancelled orders
// conflict; the orders must be cancelled (and refunded) first.
func (r *ShowtimeRepo) Cancel(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM orders WHERE showtime_id = ? AND status IN ('PENDING','CONFIRMED')`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `UPDATE showtimes SET status = 'CANCELLED', updated_at = CURRENT_TIMESTAMP WHERE id = ? AND status = 'SCHEDULED'`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrShowtimeNotFound
	}
	return nil
}
