package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// twoRowLayout builds the canonical fixture: row A (multiplier 1.0) and
// row B (multiplier 1.5), ten active seats each.
func twoRowLayout(t *testing.T) *RoomLayout {
	t.Helper()
	rows := []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Type: "NORMAL", Multiplier: 1.0, Active: true},
		{ID: 2, Letter: "B", Seq: 2, Type: "VIP", Multiplier: 1.5, Active: true},
	}
	for i := range rows {
		for n := uint32(1); n <= 10; n++ {
			rows[i].Seats = append(rows[i].Seats, LayoutSeat{
				ID:     uint64(i)*100 + uint64(n),
				Number: n,
				Type:   "NORMAL",
				Active: true,
			})
		}
	}
	layout, err := NewRoomLayout(7, rows)
	require.NoError(t, err)
	return layout
}

func TestBuildNilLayoutYieldsEmptyMap(t *testing.T) {
	m := Build(nil, 20, []string{"A1"})
	assert.Empty(t, m.Rows)
	assert.Equal(t, 0, m.SeatCount())
}

func TestBuildZeroRowsYieldsEmptyMap(t *testing.T) {
	layout, err := NewRoomLayout(1, nil)
	require.NoError(t, err)
	m := Build(layout, 20, nil)
	assert.Empty(t, m.Rows)
}

func TestBuildFiltersInactiveRowsAndSeats(t *testing.T) {
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Multiplier: 1, Active: true, Seats: []LayoutSeat{
			{ID: 1, Number: 1, Active: true},
			{ID: 2, Number: 2, Active: false},
			{ID: 3, Number: 3, Active: true},
		}},
		{ID: 2, Letter: "B", Seq: 2, Multiplier: 1, Active: false, Seats: []LayoutSeat{
			{ID: 4, Number: 1, Active: true},
		}},
	})
	require.NoError(t, err)
	m := Build(layout, 10, nil)
	require.Len(t, m.Rows, 1)
	require.Len(t, m.Rows[0].Seats, 2)
	assert.Equal(t, "A1", m.Rows[0].Seats[0].Label)
	assert.Equal(t, "A3", m.Rows[0].Seats[1].Label)
	_, ok := m.Seat("B1")
	assert.False(t, ok, "seat of an inactive row must not appear")
	_, ok = m.Seat("A2")
	assert.False(t, ok, "inactive seat must not appear")
}

func TestBuildOrdersRowsBySeqNotByLetter(t *testing.T) {
	// letters deliberately out of alphabetical order relative to seq
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "C", Seq: 1, Multiplier: 1, Active: true},
		{ID: 2, Letter: "A", Seq: 3, Multiplier: 1, Active: true},
		{ID: 3, Letter: "B", Seq: 2, Multiplier: 1, Active: true},
	})
	require.NoError(t, err)
	m := Build(layout, 10, nil)
	require.Len(t, m.Rows, 3)
	assert.Equal(t, "C", m.Rows[0].Letter)
	assert.Equal(t, "B", m.Rows[1].Letter)
	assert.Equal(t, "A", m.Rows[2].Letter)
}

func TestBuildSortsSeatsByNumber(t *testing.T) {
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Multiplier: 1, Active: true, Seats: []LayoutSeat{
			{ID: 1, Number: 3, Active: true},
			{ID: 2, Number: 1, Active: true},
			{ID: 3, Number: 2, Active: true},
		}},
	})
	require.NoError(t, err)
	m := Build(layout, 10, nil)
	require.Len(t, m.Rows[0].Seats, 3)
	assert.Equal(t, uint32(1), m.Rows[0].Seats[0].Number)
	assert.Equal(t, uint32(2), m.Rows[0].Seats[1].Number)
	assert.Equal(t, uint32(3), m.Rows[0].Seats[2].Number)
}

func TestBuildKeepsRowWithNoActiveSeats(t *testing.T) {
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Multiplier: 1, Active: true, Seats: []LayoutSeat{
			{ID: 1, Number: 1, Active: false},
		}},
	})
	require.NoError(t, err)
	m := Build(layout, 10, nil)
	require.Len(t, m.Rows, 1, "an active row with zero active seats still renders")
	assert.Empty(t, m.Rows[0].Seats)
	assert.NotNil(t, m.Rows[0].Seats)
}

func TestBuildPriceIsBaseTimesMultiplier(t *testing.T) {
	m := Build(twoRowLayout(t), 20, nil)
	for _, row := range m.Rows {
		for _, seat := range row.Seats {
			assert.Equal(t, 20*row.Multiplier, seat.Price, "seat %s", seat.Label)
		}
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	layout := twoRowLayout(t)
	occupied := []string{"A1", "B7"}
	m1 := Build(layout, 20, occupied)
	m2 := Build(layout, 20, occupied)
	assert.Equal(t, m1.Rows, m2.Rows)
	assert.Equal(t, m1.SeatCount(), m2.SeatCount())
}

func TestBuildEndToEndScenario(t *testing.T) {
	// Room: row A ×1.0 seats 1..10, row B ×1.5 seats 1..10.
	// Showtime base price 20.00, A1 and A2 occupied.
	m := Build(twoRowLayout(t), 20.00, []string{"A1", "A2"})

	require.Len(t, m.Rows, 2)
	assert.Len(t, m.Rows[0].Seats, 10)
	assert.Len(t, m.Rows[1].Seats, 10)

	a3, ok := m.Seat("A3")
	require.True(t, ok)
	assert.Equal(t, 20.00, a3.Price)
	assert.False(t, a3.Occupied)

	a1, ok := m.Seat("A1")
	require.True(t, ok)
	assert.True(t, a1.Occupied)

	b5, ok := m.Seat("B5")
	require.True(t, ok)
	assert.Equal(t, 30.00, b5.Price)

	sel := NewSelection(m)
	assert.True(t, sel.Toggle("A3"))
	assert.True(t, sel.Toggle("B5"))
	assert.Equal(t, 50.00, sel.Total())

	// toggling the occupied A1 changes nothing
	assert.False(t, sel.Toggle("A1"))
	assert.Equal(t, []string{"A3", "B5"}, sel.Labels())
}

func TestBuildZeroBasePriceIsValid(t *testing.T) {
	m := Build(twoRowLayout(t), 0, nil)
	for _, row := range m.Rows {
		for _, seat := range row.Seats {
			assert.Zero(t, seat.Price)
		}
	}
	sel := NewSelection(m)
	sel.Toggle("A1")
	sel.Toggle("B9")
	assert.Zero(t, sel.Total())
}
