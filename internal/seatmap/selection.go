package seatmap

import "sort"

// State classifies a seat for display. Every seat is in exactly one
// state; occupancy is authoritative and overrides selection membership,
// so a label that ended up both occupied and selected (a stale selection
// after a rebuild) still reports StateOccupied.
type State int

const (
	StateAvailable State = iota
	StateSelected
	StateOccupied
)

// String returns the lowercase name used in API responses.
func (s State) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateOccupied:
		return "occupied"
	default:
		return "available"
	}
}

// Selection tracks the seats chosen during one room/showtime viewing
// session. It is owned by exactly one session and mutated only by
// synchronous Toggle calls; it is not safe for concurrent use and does
// not need to be. Nothing is persisted until checkout.
type Selection struct {
	m      *Map
	chosen map[string]struct{}
	order  []string // insertion order, for stable Labels output
}

// NewSelection creates an empty selection over a built map. A nil map is
// treated as an empty one so a selection can exist before the room loads.
func NewSelection(m *Map) *Selection {
	if m == nil {
		m = Build(nil, 0, nil)
	}
	return &Selection{m: m, chosen: make(map[string]struct{})}
}

// Rebind swaps in a freshly built map, keeping the chosen labels. Seats
// that no longer exist in the new map stay in the selection but price as
// zero (see Total) until toggled off or cleared.
func (s *Selection) Rebind(m *Map) {
	if m == nil {
		m = Build(nil, 0, nil)
	}
	s.m = m
}

// Toggle flips the membership of a label. Toggling an occupied seat is a
// defined no-op: it is never added, and occupancy is never cleared from
// here. It reports whether the selection changed.
func (s *Selection) Toggle(label string) bool {
	if seat, ok := s.m.Seat(label); ok && seat.Occupied {
		return false
	}
	if _, ok := s.chosen[label]; ok {
		delete(s.chosen, label)
		for i, l := range s.order {
			if l == label {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return true
	}
	if _, ok := s.m.Seat(label); !ok {
		return false // unknown seat, nothing to select
	}
	s.chosen[label] = struct{}{}
	s.order = append(s.order, label)
	return true
}

// State classifies a label: occupied beats selected beats available.
func (s *Selection) State(label string) State {
	if seat, ok := s.m.Seat(label); ok && seat.Occupied {
		return StateOccupied
	}
	if _, ok := s.chosen[label]; ok {
		return StateSelected
	}
	return StateAvailable
}

// Labels returns the chosen labels in the order they were selected.
func (s *Selection) Labels() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Count reports how many seats are currently selected.
func (s *Selection) Count() int {
	return len(s.chosen)
}

// Clear empties the selection, as when the screen is abandoned.
func (s *Selection) Clear() {
	s.chosen = make(map[string]struct{})
	s.order = nil
}

// Total sums the derived price of every selected seat. A label missing
// from the map (stale after a room reconfiguration) contributes zero
// rather than failing: a silently low total mid-checkout is recoverable,
// a crash is not. Callers should check Stale and surface the mismatch.
func (s *Selection) Total() float64 {
	var total float64
	for label := range s.chosen {
		if seat, ok := s.m.Seat(label); ok {
			total += seat.Price
		}
	}
	return total
}

// Stale returns, sorted, the selected labels that no longer resolve in
// the map. A non-empty result means the layout changed under the session
// and the selection should be re-confirmed with the user.
func (s *Selection) Stale() []string {
	var out []string
	for label := range s.chosen {
		if _, ok := s.m.Seat(label); !ok {
			out = append(out, label)
		}
	}
	sort.Strings(out)
	return out
}
