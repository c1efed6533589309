package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatLabelComposition(t *testing.T) {
	assert.Equal(t, "C7", SeatLabel("C", 7))
	assert.Equal(t, "AA12", SeatLabel("AA", 12))
}

func TestNewRoomLayoutRejectsEmptyRowLetter(t *testing.T) {
	_, err := NewRoomLayout(1, []LayoutRow{{ID: 3, Letter: "", Seq: 1, Active: true}})
	assert.ErrorIs(t, err, ErrMalformedLayout)
}

func TestNewRoomLayoutRejectsZeroSeatNumber(t *testing.T) {
	_, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Active: true, Seats: []LayoutSeat{{ID: 9, Number: 0, Active: true}}},
	})
	assert.ErrorIs(t, err, ErrMalformedLayout)
}

func TestNewRoomLayoutRejectsDuplicateLabels(t *testing.T) {
	_, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Active: true, Seats: []LayoutSeat{
			{ID: 1, Number: 1, Active: true},
			{ID: 2, Number: 1, Active: true},
		}},
	})
	assert.ErrorIs(t, err, ErrMalformedLayout)
}

func TestNewRoomLayoutAllowsDuplicateAmongInactive(t *testing.T) {
	// Inactive seats never reach the map, so they cannot collide.
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Active: true, Seats: []LayoutSeat{
			{ID: 1, Number: 1, Active: true},
			{ID: 2, Number: 1, Active: false},
		}},
	})
	require.NoError(t, err)
	assert.Len(t, layout.Rows, 1)
}

func TestNewRoomLayoutKeepsPermissiveMultiplier(t *testing.T) {
	// Zero and negative multipliers are stored as-is; rejecting them is
	// the admin API's decision, not the layout boundary's.
	layout, err := NewRoomLayout(1, []LayoutRow{
		{ID: 1, Letter: "A", Seq: 1, Multiplier: 0, Active: true, Seats: []LayoutSeat{{ID: 1, Number: 1, Active: true}}},
		{ID: 2, Letter: "B", Seq: 2, Multiplier: -0.5, Active: true, Seats: []LayoutSeat{{ID: 2, Number: 1, Active: true}}},
	})
	require.NoError(t, err)
	m := Build(layout, 10, nil)
	a1, _ := m.Seat("A1")
	b1, _ := m.Seat("B1")
	assert.Equal(t, 0.0, a1.Price)
	assert.Equal(t, -5.0, b1.Price)
}
