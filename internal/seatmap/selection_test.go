package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleTwiceRestoresSelection(t *testing.T) {
	sel := NewSelection(Build(twoRowLayout(t), 20, nil))
	assert.True(t, sel.Toggle("A4"))
	assert.Equal(t, StateSelected, sel.State("A4"))
	assert.True(t, sel.Toggle("A4"))
	assert.Equal(t, StateAvailable, sel.State("A4"))
	assert.Zero(t, sel.Count())
}

func TestToggleOccupiedIsNoOp(t *testing.T) {
	sel := NewSelection(Build(twoRowLayout(t), 20, []string{"A1"}))
	assert.False(t, sel.Toggle("A1"))
	assert.Zero(t, sel.Count())
	assert.Equal(t, StateOccupied, sel.State("A1"))
}

func TestToggleUnknownLabelIsNoOp(t *testing.T) {
	sel := NewSelection(Build(twoRowLayout(t), 20, nil))
	assert.False(t, sel.Toggle("Z99"))
	assert.Zero(t, sel.Count())
}

func TestStateIsExhaustiveAndExclusive(t *testing.T) {
	m := Build(twoRowLayout(t), 20, []string{"A1"})
	sel := NewSelection(m)
	sel.Toggle("A2")
	for _, row := range m.Rows {
		for _, seat := range row.Seats {
			st := sel.State(seat.Label)
			assert.Contains(t, []State{StateAvailable, StateSelected, StateOccupied}, st)
			switch seat.Label {
			case "A1":
				assert.Equal(t, StateOccupied, st)
			case "A2":
				assert.Equal(t, StateSelected, st)
			default:
				assert.Equal(t, StateAvailable, st)
			}
		}
	}
}

func TestOccupiedWinsOverStaleSelection(t *testing.T) {
	// Select a free seat, then rebuild the map with that seat occupied,
	// as when a second user grabbed it between loads. Occupancy must be
	// authoritative for both classification and toggling.
	layout := twoRowLayout(t)
	sel := NewSelection(Build(layout, 20, nil))
	require.True(t, sel.Toggle("B5"))

	sel.Rebind(Build(layout, 20, []string{"B5"}))
	assert.Equal(t, StateOccupied, sel.State("B5"))
	assert.False(t, sel.Toggle("B5"), "occupied seat must not leave the occupied state")
	assert.Equal(t, StateOccupied, sel.State("B5"))
}

func TestTotalSumsExactlySelectedSeats(t *testing.T) {
	sel := NewSelection(Build(twoRowLayout(t), 20, nil))
	assert.Zero(t, sel.Total(), "empty selection totals zero")
	sel.Toggle("A1")
	sel.Toggle("B2")
	sel.Toggle("B3")
	assert.Equal(t, 20.0+30.0+30.0, sel.Total())
	sel.Toggle("B2")
	assert.Equal(t, 20.0+30.0, sel.Total())
}

func TestTotalTreatsStaleLabelAsZero(t *testing.T) {
	// Row B disappears in a reconfiguration; the selection keeps the
	// label but prices it at zero and reports it as stale.
	full := twoRowLayout(t)
	sel := NewSelection(Build(full, 20, nil))
	require.True(t, sel.Toggle("A3"))
	require.True(t, sel.Toggle("B5"))

	shrunk, err := NewRoomLayout(full.RoomID, full.Rows[:1])
	require.NoError(t, err)
	sel.Rebind(Build(shrunk, 20, nil))

	assert.Equal(t, 20.0, sel.Total())
	assert.Equal(t, []string{"B5"}, sel.Stale())
	assert.Equal(t, 2, sel.Count(), "stale labels stay selected until toggled or cleared")
}

func TestClearEmptiesSelection(t *testing.T) {
	sel := NewSelection(Build(twoRowLayout(t), 20, nil))
	sel.Toggle("A1")
	sel.Toggle("A2")
	sel.Clear()
	assert.Zero(t, sel.Count())
	assert.Empty(t, sel.Labels())
	assert.Zero(t, sel.Total())
}

func TestNewSelectionToleratesNilMap(t *testing.T) {
	sel := NewSelection(nil)
	assert.Equal(t, StateAvailable, sel.State("A1"))
	assert.False(t, sel.Toggle("A1"))
	assert.Zero(t, sel.Total())
}
