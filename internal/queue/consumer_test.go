package queue

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestHandleMessageAppendsLogLine(t *testing.T) {
	chdir(t, t.TempDir())

	ev := OrderConfirmedEvent{
		OrderID:     101,
		UserID:      7,
		ShowtimeID:  55,
		CinemaName:  "Grand Central",
		RoomName:    "Room 1",
		MovieTitle:  "Night Train",
		StartsAt:    "2026-09-01T20:00:00Z",
		SeatLabels:  []string{"A3", "B5"},
		ItemCount:   2,
		TotalAmount: 50.00,
		ConfirmedAt: "2026-08-31T12:00:00Z",
	}
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	require.NoError(t, handleMessage(body))
	require.NoError(t, handleMessage(body)) // appends, never truncates

	data, err := os.ReadFile(filepath.Join("logs", "orders.log"))
	require.NoError(t, err)
	lines := string(data)
	assert.Contains(t, lines, "order_id=101")
	assert.Contains(t, lines, `movie="Night Train"`)
	assert.Contains(t, lines, "seats=[A3,B5]")
	assert.Contains(t, lines, "total=50.00")
	assert.Equal(t, 2, countLines(lines))
}

func countLines(s string) int {
	n := 0
	for _, r := range s {
		if r == '\n' {
			n++
		}
	}
	return n
}

func TestHandleMessageRejectsGarbage(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Error(t, handleMessage([]byte("{not json")))
}
