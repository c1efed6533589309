package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/cinema-booking-api/internal/model"
	"github.com/iliyamo/cinema-booking-api/internal/seatmap"
)

// ErrRoomNotFound is returned when a room lookup yields no rows.
var ErrRoomNotFound = errors.New("room not found")

// RoomRepo provides access to the rooms table and to the full row/seat
// layout a seat map is built from.
type RoomRepo struct {
	db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo {
	return &RoomRepo{db: db}
}

// Create inserts a room and populates its ID and timestamps.
func (r *RoomRepo) Create(ctx context.Context, rm *model.Room) error {
	const q = `INSERT INTO rooms (cinema_id, name, type) VALUES (?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, rm.CinemaID, rm.Name, rm.Type)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	rm.ID = uint64(id)
	const sel = `SELECT is_active, created_at, updated_at FROM rooms WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, rm.ID).Scan(&rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
}

// ListByCinema returns the active rooms of a cinema ordered by name.
func (r *RoomRepo) ListByCinema(ctx context.Context, cinemaID uint64) ([]model.Room, error) {
	const q = `SELECT id, cinema_id, name, type, is_active, created_at, updated_at
	           FROM rooms WHERE cinema_id = ? AND is_active = TRUE ORDER BY name`
	rows, err := r.db.QueryContext(ctx, q, cinemaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Room
	for rows.Next() {
		var rm model.Room
		if err := rows.Scan(&rm.ID, &rm.CinemaID, &rm.Name, &rm.Type, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rm)
	}
	return out, rows.Err()
}

// GetByID retrieves a room by id, active or not.
func (r *RoomRepo) GetByID(ctx context.Context, id uint64) (*model.Room, error) {
	const q = `SELECT id, cinema_id, name, type, is_active, created_at, updated_at FROM rooms WHERE id = ?`
	var rm model.Room
	err := r.db.QueryRowContext(ctx, q, id).Scan(&rm.ID, &rm.CinemaID, &rm.Name, &rm.Type, &rm.IsActive, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &rm, nil
}

// Update overwrites the mutable fields of a room.
func (r *RoomRepo) Update(ctx context.Context, rm *model.Room) error {
	const q = `UPDATE rooms SET cinema_id = ?, name = ?, type = ?, is_active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, rm.CinemaID, rm.Name, rm.Type, rm.IsActive, rm.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// Delete removes a room. Rooms with scheduled showtimes conflict; rows
// and seats cascade through foreign keys.
func (r *RoomRepo) Delete(ctx context.Context, id uint64) error {
	const chk = `SELECT COUNT(*) FROM showtimes WHERE room_id = ? AND status = 'SCHEDULED'`
	var n int
	if err := r.db.QueryRowContext(ctx, chk, id).Scan(&n); err != nil {
		return err
	}
	if n > 0 {
		return ErrConflict
	}
	const q = `DELETE FROM rooms WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// GetLayout loads the full row/seat structure of a room, including
// inactive rows and seats (the builder filters those), and validates it
// into a seatmap.RoomLayout. The query orders by seq and seat number so
// the common path is already sorted; the builder re-sorts defensively.
// Returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) GetLayout(ctx context.Context, roomID uint64) (*seatmap.RoomLayout, error) {
	if _, err := r.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	const q = `SELECT rr.id, rr.letter, rr.seq, rr.type, rr.multiplier, rr.is_active,
	                  s.id, s.seat_number, s.type, s.is_active
	           FROM room_rows rr
	           LEFT JOIN seats s ON s.row_id = rr.id
	           WHERE rr.room_id = ?
	           ORDER BY rr.seq, s.seat_number`
	rows, err := r.db.QueryContext(ctx, q, roomID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		ordered []uint64
		byID    = make(map[uint64]*seatmap.LayoutRow)
	)
	for rows.Next() {
		var (
			row        seatmap.LayoutRow
			seatID     sql.NullInt64
			seatNumber sql.NullInt64
			seatType   sql.NullString
			seatActive sql.NullBool
		)
		if err := rows.Scan(&row.ID, &row.Letter, &row.Seq, &row.Type, &row.Multiplier, &row.Active,
			&seatID, &seatNumber, &seatType, &seatActive); err != nil {
			return nil, err
		}
		lr, ok := byID[row.ID]
		if !ok {
			cp := row
			byID[row.ID] = &cp
			ordered = append(ordered, row.ID)
			lr = &cp
		}
		if seatID.Valid {
			lr.Seats = append(lr.Seats, seatmap.LayoutSeat{
				ID:     uint64(seatID.Int64),
				Number: uint32(seatNumber.Int64),
				Type:   seatType.String,
				Active: seatActive.Bool,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	layoutRows := make([]seatmap.LayoutRow, 0, len(ordered))
	for _, id := range ordered {
		layoutRows = append(layoutRows, *byID[id])
	}
	return seatmap.NewRoomLayout(roomID, layoutRows)
}
