package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking-api/internal/model"
)

// ErrRowNotFound is returned when a row lookup yields no rows.
var ErrRowNotFound = errors.New("row not found")

// ErrSeatNotFound is returned when a seat lookup yields no rows.
var ErrSeatNotFound = errors.New("seat not found")

// RowRepo provides access to room_rows and their seats.
type RowRepo struct {
	db *sql.DB
}

// NewRowRepo constructs a RowRepo with the given DB handle.
func NewRowRepo(db *sql.DB) *RowRepo {
	return &RowRepo{db: db}
}

// Create inserts a row and populates its ID and timestamps.
func (r *RowRepo) Create(ctx context.Context, row *model.Row) error {
	const q = `INSERT INTO room_rows (room_id, letter, seq, type, multiplier) VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, row.RoomID, row.Letter, row.Seq, row.Type, row.Multiplier)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	row.ID = uint64(id)
	const sel = `SELECT is_active, created_at, updated_at FROM room_rows WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, row.ID).Scan(&row.IsActive, &row.CreatedAt, &row.UpdatedAt)
}

// GetByID retrieves a row by id.
func (r *RowRepo) GetByID(ctx context.Context, id uint64) (*model.Row, error) {
	const q = `SELECT id, room_id, letter, seq, type, multiplier, is_active, created_at, updated_at
	           FROM room_rows WHERE id = ?`
	var row model.Row
	err := r.db.QueryRowContext(ctx, q, id).Scan(&row.ID, &row.RoomID, &row.Letter, &row.Seq, &row.Type,
		&row.Multiplier, &row.IsActive, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRowNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ListByRoom returns all rows of a room ordered by seq, inactive ones
// included (admin view).
func (r *RowRepo) ListByRoom(ctx context.Context, roomID uint64) ([]model.Row, error) {
	const q = `SELECT id, room_id, letter, seq, type, multiplier, is_active, created_at, updated_at
	           FROM room_rows WHERE room_id = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Row
	for rows.Next() {
		var row model.Row
		if err := rows.Scan(&row.ID, &row.RoomID, &row.Letter, &row.Seq, &row.Type,
			&row.Multiplier, &row.IsActive, &row.CreatedAt, &row.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// Update overwrites the mutable fields of a row.
func (r *RowRepo) Update(ctx context.Context, row *model.Row) error {
	const q = `UPDATE room_rows
	           SET letter = ?, seq = ?, type = ?, multiplier = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, row.Letter, row.Seq, row.Type, row.Multiplier, row.IsActive, row.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRowNotFound
	}
	return nil
}

// Delete removes a row and its seats. Seats referenced by order_seats
// conflict so sold history is never orphaned.
func (r *RowRepo) Delete(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM order_seats os JOIN seats s ON s.id = os.seat_id WHERE s.row_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM room_rows WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRowNotFound
	}
	return nil
}

// CreateSeatsBulk inserts seats for a row in a single statement, used
// when an admin generates a row with N seats at once.
func (r *RowRepo) CreateSeatsBulk(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	query := `INSERT INTO seats (row_id, seat_number, type) VALUES `
	args := make([]any, 0, len(seats)*3)
	for i, s := range seats {
		if i > 0 {
			query += ","
		}
		query += "(?, ?, ?)"
		args = append(args, s.RowID, s.SeatNumber, s.Type)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}

// GetSeatByID retrieves a seat by id.
func (r *RowRepo) GetSeatByID(ctx context.Context, id uint64) (*model.Seat, error) {
	const q = `SELECT id, row_id, seat_number, type, is_active, created_at, updated_at FROM seats WHERE id = ?`
	var s model.Seat
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.RowID, &s.SeatNumber, &s.Type, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSeatNotFound
		}
		return nil, err
	}
	return &s, nil
}

// UpdateSeat overwrites seat_number, type and is_active of one seat.
func (r *RowRepo) UpdateSeat(ctx context.Context, s *model.Seat) error {
	const q = `UPDATE seats SET seat_number = ?, type = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.SeatNumber, s.Type, s.IsActive, s.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}

// DeleteSeat removes a seat that was never sold; sold seats conflict.
func (r *RowRepo) DeleteSeat(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM order_seats WHERE seat_id = ?`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM seats WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatNotFound
	}
	return nil
}
