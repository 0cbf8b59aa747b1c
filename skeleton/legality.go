package skeleton

// Bounds are the smallest and largest raise-to pip levels for the acting
// seat.
type Bounds struct {
	Min int
	Max int
}

// Contains reports whether amount lies within the bounds, inclusive.
func (b Bounds) Contains(amount int) bool {
	return amount >= b.Min && amount <= b.Max
}

// ContinueCost returns the chips the acting seat needs to call.
func ContinueCost(rs *RoundState) int {
	active := rs.ActiveSeat()
	return rs.pips[1-active] - rs.pips[active]
}

// LegalActions returns the actions available to the acting seat.
func LegalActions(rs *RoundState) ActionSet {
	active := rs.ActiveSeat()
	myStack := rs.stacks[active]
	oppStack := rs.stacks[1-active]
	cost := ContinueCost(rs)

	var legal ActionSet
	if cost > 0 {
		legal = legal.Add(ActionFold)
		if myStack >= cost {
			legal = legal.Add(ActionCall)
		}
	} else {
		legal = legal.Add(ActionCheck)
	}
	// raising needs chips behind the call on both sides
	if myStack > cost && oppStack > 0 {
		legal = legal.Add(ActionRaise)
	}
	return legal
}

// RaiseBounds returns the raise-to range for the acting seat. The minimum is
// the opponent's pip plus the larger of the last raise increment and the big
// blind; the maximum puts the acting seat all-in.
func RaiseBounds(rs *RoundState) (Bounds, error) {
	if !LegalActions(rs).Contains(ActionRaise) {
		return Bounds{}, ErrRaiseNotLegal
	}
	active := rs.ActiveSeat()
	cost := ContinueCost(rs)
	myPip := rs.pips[active]
	oppPip := rs.pips[1-active]

	increment := cost
	if bb := rs.Rules().BigBlind; increment < bb {
		increment = bb
	}
	maxRaise := myPip + rs.stacks[active]
	minRaise := oppPip + increment
	if minRaise < myPip {
		minRaise = myPip
	}
	if minRaise > maxRaise {
		minRaise = maxRaise
	}
	return Bounds{Min: minRaise, Max: maxRaise}, nil
}

// Validate checks an action against the state it responds to.
func Validate(rs *RoundState, a Action) error {
	legal := LegalActions(rs)
	if !legal.Contains(a.Type) {
		return IllegalActionError{Action: a, Legal: legal}
	}
	if a.Type != ActionRaise {
		return nil
	}
	bounds, err := RaiseBounds(rs)
	if err != nil {
		return IllegalActionError{Action: a, Legal: legal}
	}
	if !bounds.Contains(a.Amount) {
		return IllegalActionError{Action: a, Legal: legal, Min: bounds.Min, Max: bounds.Max}
	}
	return nil
}

// SafeAction returns the cheapest action that is always legal: CHECK when
// nothing is owed, FOLD otherwise.
func SafeAction(rs *RoundState) Action {
	if LegalActions(rs).Contains(ActionCheck) {
		return Check()
	}
	return Fold()
}

func (rs *RoundState) ContinueCost() int { return ContinueCost(rs) }

func (rs *RoundState) LegalActions() ActionSet { return LegalActions(rs) }

func (rs *RoundState) RaiseBounds() (Bounds, error) { return RaiseBounds(rs) }
