package skeleton

import (
	"fmt"
	"strings"
)

// ActionType identifies the kind of an Action.
type ActionType int

const (
	ActionFold ActionType = iota
	ActionCall
	ActionCheck
	ActionRaise
)

var actionTypeNames = [...]string{"FOLD", "CALL", "CHECK", "RAISE"}

func (t ActionType) String() string {
	if t < ActionFold || t > ActionRaise {
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
	return actionTypeNames[t]
}

// Action is a move by the acting seat. For raises Amount is the pip level
// the raiser commits to on this street, not the increment.
type Action struct {
	Type   ActionType
	Amount int
}

func Fold() Action  { return Action{Type: ActionFold} }
func Call() Action  { return Action{Type: ActionCall} }
func Check() Action { return Action{Type: ActionCheck} }

// RaiseTo returns a raise to the given pip level.
func RaiseTo(amount int) Action { return Action{Type: ActionRaise, Amount: amount} }

func (a Action) String() string {
	if a.Type == ActionRaise {
		return fmt.Sprintf("RAISE %d", a.Amount)
	}
	return a.Type.String()
}

// ActionSet is a set of action types.
type ActionSet uint8

// NewActionSet builds a set from the given types.
func NewActionSet(types ...ActionType) ActionSet {
	var s ActionSet
	for _, t := range types {
		s = s.Add(t)
	}
	return s
}

// Add returns a copy of the set including t.
func (s ActionSet) Add(t ActionType) ActionSet {
	return s | 1<<uint(t)
}

// Contains reports whether t is in the set.
func (s ActionSet) Contains(t ActionType) bool {
	return s&(1<<uint(t)) != 0
}

// Types lists the members in FOLD, CALL, CHECK, RAISE order.
func (s ActionSet) Types() []ActionType {
	types := make([]ActionType, 0, 4)
	for t := ActionFold; t <= ActionRaise; t++ {
		if s.Contains(t) {
			types = append(types, t)
		}
	}
	return types
}

func (s ActionSet) String() string {
	names := make([]string, 0, 4)
	for _, t := range s.Types() {
		names = append(names, t.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}
