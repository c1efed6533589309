package seatmap

import "sort"

// Seat is one renderable seat in the map. Price carries full precision;
// rounding is left to the display layer so that summing many seats does
// not compound rounding error.
type Seat struct {
	Label    string  `json:"label"`    // composed identifier, e.g. "C7"
	SeatID   uint64  `json:"seat_id"`  // storage identifier
	Number   uint32  `json:"number"`   // position within the row
	Type     string  `json:"type"`     // seat type tag
	Price    float64 `json:"price"`    // base price × row multiplier
	Occupied bool    `json:"occupied"` // taken by a pending or confirmed order
}

// Row is one renderable row. A row that has no active seats is still
// present with an empty seat list; the consuming view relies on the gap
// for layout.
type Row struct {
	Letter     string  `json:"letter"`
	Type       string  `json:"type"`
	Multiplier float64 `json:"multiplier"`
	Seats      []Seat  `json:"seats"`
}

// Map is the derived seat map for one room and showtime. Rows are in
// display order; byLabel provides the lookups the selection tracker and
// the checkout handler need.
type Map struct {
	Rows    []Row
	byLabel map[string]Seat
}

// Build derives a Map from a room layout, a showtime base price and the
// labels of occupied seats. It is a pure function of its inputs:
//
//   - a nil layout (room not yet loaded) yields an empty map, not an error;
//   - only active rows appear, sorted ascending by their explicit Seq;
//   - within a row only active seats appear, sorted ascending by number;
//   - every seat's price is basePrice × row multiplier, untouched — a zero
//     base price produces an all-zero map, which is valid;
//   - a seat is occupied iff its label is in occupied.
func Build(layout *RoomLayout, basePrice float64, occupied []string) *Map {
	m := &Map{Rows: []Row{}, byLabel: make(map[string]Seat)}
	if layout == nil {
		return m
	}

	taken := make(map[string]struct{}, len(occupied))
	for _, label := range occupied {
		taken[label] = struct{}{}
	}

	rows := make([]LayoutRow, 0, len(layout.Rows))
	for _, r := range layout.Rows {
		if r.Active {
			rows = append(rows, r)
		}
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Seq < rows[j].Seq })

	for _, r := range rows {
		out := Row{Letter: r.Letter, Type: r.Type, Multiplier: r.Multiplier, Seats: []Seat{}}
		seats := make([]LayoutSeat, 0, len(r.Seats))
		for _, s := range r.Seats {
			if s.Active {
				seats = append(seats, s)
			}
		}
		sort.Slice(seats, func(i, j int) bool { return seats[i].Number < seats[j].Number })
		for _, s := range seats {
			label := SeatLabel(r.Letter, s.Number)
			_, occ := taken[label]
			seat := Seat{
				Label:    label,
				SeatID:   s.ID,
				Number:   s.Number,
				Type:     s.Type,
				Price:    basePrice * r.Multiplier,
				Occupied: occ,
			}
			out.Seats = append(out.Seats, seat)
			m.byLabel[label] = seat
		}
		m.Rows = append(m.Rows, out)
	}
	return m
}

// Seat looks up a seat by its composed label.
func (m *Map) Seat(label string) (Seat, bool) {
	s, ok := m.byLabel[label]
	return s, ok
}

// SeatCount reports the number of seats in the map.
func (m *Map) SeatCount() int {
	return len(m.byLabel)
}
