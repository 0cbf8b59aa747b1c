package runner

import (
	"sync"

	"pokerbots.com/skeleton/skeleton"
)

var trackedStreets = []int{skeleton.Preflop, skeleton.Flop, skeleton.Turn, skeleton.River}

// RoundActionTracker remembers who did what on each street of a round.
// I.e., preflop seat 0 called, seat 1 raised to 8, then seat 0 folded.
type RoundActionTracker struct {
	data map[int][]SeatAction
	sync.RWMutex
}

// SeatAction is a record of an action taken by a seat.
type SeatAction struct {
	Seat   int
	Street int
	Action skeleton.Action
	// Substituted is set when the runner replaced an illegal bot action.
	Substituted bool
}

func NewRoundActionTracker() *RoundActionTracker {
	return &RoundActionTracker{
		data: make(map[int][]SeatAction),
	}
}

// RecordAction stores the action into the tracker.
func (t *RoundActionTracker) RecordAction(seat int, action skeleton.Action, street int, substituted bool) {
	t.Lock()
	defer t.Unlock()
	t.data[street] = append(t.data[street], SeatAction{
		Seat:        seat,
		Street:      street,
		Action:      action,
		Substituted: substituted,
	})
}

// AllActions returns every recorded action in street order.
func (t *RoundActionTracker) AllActions() []SeatAction {
	t.RLock()
	defer t.RUnlock()
	all := make([]SeatAction, 0)
	for _, street := range trackedStreets {
		all = append(all, t.data[street]...)
	}
	return all
}

// CountRaises returns how many times seat raised during the round.
func (t *RoundActionTracker) CountRaises(seat int) int {
	t.RLock()
	defer t.RUnlock()
	count := 0
	for _, actions := range t.data {
		for _, a := range actions {
			if a.Seat == seat && a.Action.Type == skeleton.ActionRaise {
				count++
			}
		}
	}
	return count
}
