// Package seatmap derives the renderable seat map for one showtime from a
// room's row/seat layout, the showtime's base price and the list of seat
// labels already taken. It also tracks the caller's ephemeral seat
// selection and aggregates its price. Everything in this package is pure
// in-memory transformation; fetching the inputs is the repository's job.
package seatmap

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedLayout is returned when the rows fetched from storage are
// missing required fields. Validation happens here, at the boundary, so
// the builder can assume well-formed input.
var ErrMalformedLayout = errors.New("malformed room layout")

// SeatLabel composes the seat identifier from a row letter and a seat
// number, e.g. "C7". It is the only place the identifier format is
// defined: the builder, the selection tracker, the occupancy query and
// the checkout handler all join on this string, and two call sites
// formatting it differently would make lookups fail silently.
func SeatLabel(letter string, number uint32) string {
	return letter + strconv.FormatUint(uint64(number), 10)
}

// LayoutSeat is one seat as fetched from storage, before filtering.
type LayoutSeat struct {
	ID     uint64 // seats.id
	Number uint32 // position within the row, 1-based
	Type   string // NORMAL | VIP | ACCESSIBLE | COUPLE
	Active bool   // inactive seats are dropped from the map entirely
}

// LayoutRow is one row as fetched from storage, with its seats.
type LayoutRow struct {
	ID         uint64       // room_rows.id
	Letter     string       // row label, e.g. "A", "AA"
	Seq        uint32       // explicit display order within the room
	Type       string       // NORMAL | VIP | PREMIUM
	Multiplier float64      // factor applied to the showtime base price
	Active     bool         // inactive rows are dropped from the map entirely
	Seats      []LayoutSeat // unordered; the builder sorts by Number
}

// RoomLayout is the validated row/seat structure of one room.
type RoomLayout struct {
	RoomID uint64
	Rows   []LayoutRow
}

// NewRoomLayout validates raw rows into a RoomLayout. It fails fast with
// ErrMalformedLayout on an empty row letter, a zero seat number, or two
// active seats composing the same label, instead of letting a broken
// record surface later as a seat that cannot be selected. Multiplier and
// activity flags are not judged here: a zero or even negative multiplier
// is stored as-is and flows through the price derivation unrejected.
func NewRoomLayout(roomID uint64, rows []LayoutRow) (*RoomLayout, error) {
	seen := make(map[string]struct{})
	for _, row := range rows {
		if row.Letter == "" {
			return nil, fmt.Errorf("%w: row %d has no letter", ErrMalformedLayout, row.ID)
		}
		for _, s := range row.Seats {
			if s.Number == 0 {
				return nil, fmt.Errorf("%w: row %s has a seat without a number", ErrMalformedLayout, row.Letter)
			}
			if !row.Active || !s.Active {
				continue
			}
			label := SeatLabel(row.Letter, s.Number)
			if _, dup := seen[label]; dup {
				return nil, fmt.Errorf("%w: duplicate seat label %s", ErrMalformedLayout, label)
			}
			seen[label] = struct{}{}
		}
	}
	return &RoomLayout{RoomID: roomID, Rows: rows}, nil
}
