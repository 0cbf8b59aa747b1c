package skeleton

// GameInfo is the session-level view handed to the bot. It is a value type:
// every change produces a new GameInfo.
type GameInfo struct {
	// Bankroll is the cumulative chip delta across completed rounds.
	Bankroll int
	// GameClock is the number of seconds the bot has left for the game.
	GameClock float64
	// RoundNum counts rounds from 1.
	RoundNum int
}

// NewGameInfo returns the GameInfo at the start of a session.
func NewGameInfo() GameInfo {
	return GameInfo{Bankroll: 0, GameClock: 0, RoundNum: 1}
}

func (g GameInfo) WithClock(clock float64) GameInfo {
	g.GameClock = clock
	return g
}

func (g GameInfo) WithDelta(delta int) GameInfo {
	g.Bankroll += delta
	return g
}

func (g GameInfo) NextRound() GameInfo {
	g.RoundNum++
	return g
}

// State is either a *RoundState or a *TerminalState.
type State interface {
	IsTerminal() bool
}

// RoundState is an immutable snapshot of a round in progress, as seen by
// one seat (the viewer). Transitions return new snapshots.
type RoundState struct {
	history *History
	seq     int
	prev    int

	viewer   int
	button   int
	street   int
	pips     [2]int
	stacks   [2]int
	hands    [2][]Card
	revealed bool
	deck     []Card
	bounties [2]Rank
}

// RoundParams describes an arbitrary snapshot for NewRoundStateAt.
type RoundParams struct {
	Rules        Rules
	Viewer       int
	Button       int
	Street       int
	Pips         [2]int
	Stacks       [2]int
	Hand         []Card
	OpponentHand []Card
	Deck         []Card
	Bounty       Rank
}

// NewRound creates the first state of a round: blinds posted, seat 0 (the
// small blind) to act.
func NewRound(rules Rules, viewer int, hand []Card) *RoundState {
	h := NewHistory(rules)
	r := h.Rules()
	rs := RoundState{
		viewer: viewer,
		button: 0,
		street: Preflop,
		pips:   [2]int{r.SmallBlind, r.BigBlind},
		stacks: [2]int{r.StartingStack - r.SmallBlind, r.StartingStack - r.BigBlind},
	}
	if validSeat(viewer) {
		rs.hands[viewer] = copyCards(hand)
	}
	return h.add(rs, -1)
}

// NewRoundStateAt creates a snapshot in a fresh arena from explicit values.
func NewRoundStateAt(p RoundParams) *RoundState {
	h := NewHistory(p.Rules)
	rs := RoundState{
		viewer: p.Viewer,
		button: p.Button,
		street: p.Street,
		pips:   p.Pips,
		stacks: p.Stacks,
		deck:   copyCards(p.Deck),
	}
	if validSeat(p.Viewer) {
		rs.hands[p.Viewer] = copyCards(p.Hand)
		rs.bounties[p.Viewer] = p.Bounty
		if p.OpponentHand != nil {
			rs.hands[1-p.Viewer] = copyCards(p.OpponentHand)
			rs.revealed = true
		}
	}
	return h.add(rs, -1)
}

func validSeat(seat int) bool {
	return seat == 0 || seat == 1
}

func (rs *RoundState) IsTerminal() bool { return false }

// History returns the arena holding this snapshot.
func (rs *RoundState) History() *History { return rs.history }

// Rules returns the rules of the round.
func (rs *RoundState) Rules() Rules { return rs.history.Rules() }

// Seq is the sequence number of the snapshot in its arena.
func (rs *RoundState) Seq() int { return rs.seq }

// PreviousState returns the snapshot this one superseded.
func (rs *RoundState) PreviousState() (*RoundState, bool) {
	if rs.prev < 0 {
		return nil, false
	}
	return rs.history.At(rs.prev)
}

func (rs *RoundState) Viewer() int      { return rs.viewer }
func (rs *RoundState) Button() int      { return rs.button }
func (rs *RoundState) Street() int      { return rs.street }
func (rs *RoundState) ActiveSeat() int  { return rs.button % 2 }
func (rs *RoundState) Pips() [2]int     { return rs.pips }
func (rs *RoundState) Stacks() [2]int   { return rs.stacks }
func (rs *RoundState) Board() []Card    { return copyCards(rs.deck) }
func (rs *RoundState) Revealed() bool   { return rs.revealed }
func (rs *RoundState) Pip(seat int) int { return rs.pips[seat&1] }

func (rs *RoundState) Stack(seat int) int { return rs.stacks[seat&1] }

// Contribution returns the chips a seat has put into the pot this round.
func (rs *RoundState) Contribution(seat int) int {
	return rs.Rules().StartingStack - rs.stacks[seat&1]
}

// Pot returns the total chips committed by both seats.
func (rs *RoundState) Pot() int {
	return rs.Contribution(0) + rs.Contribution(1)
}

// Hand returns the hole cards of seat. The opponent's cards can only be read
// once they were revealed at showdown.
func (rs *RoundState) Hand(seat int) ([]Card, error) {
	if !validSeat(seat) {
		return nil, AccessViolationError{Field: "hand", Seat: seat, Viewer: rs.viewer}
	}
	if seat != rs.viewer && !rs.revealed {
		return nil, AccessViolationError{Field: "hand", Seat: seat, Viewer: rs.viewer}
	}
	return copyCards(rs.hands[seat]), nil
}

// Bounty returns the bounty rank of seat. Only the viewer's own bounty can
// be read; the opponent's rank is never available.
func (rs *RoundState) Bounty(seat int) (Rank, error) {
	if seat != rs.viewer || !validSeat(seat) {
		return NoRank, AccessViolationError{Field: "bounty", Seat: seat, Viewer: rs.viewer}
	}
	return rs.bounties[seat], nil
}

// next appends a successor snapshot to the arena.
func (rs *RoundState) next(mut func(n *RoundState)) *RoundState {
	n := *rs
	n.hands = [2][]Card{copyCards(rs.hands[0]), copyCards(rs.hands[1])}
	n.deck = copyCards(rs.deck)
	mut(&n)
	return rs.history.add(n, rs.seq)
}

// replace appends a corrected version of this snapshot that shares its
// predecessor.
func (rs *RoundState) replace(mut func(n *RoundState)) *RoundState {
	n := *rs
	n.hands = [2][]Card{copyCards(rs.hands[0]), copyCards(rs.hands[1])}
	n.deck = copyCards(rs.deck)
	mut(&n)
	return rs.history.add(n, rs.prev)
}

// WithBoard returns a successor with the given board cards.
func (rs *RoundState) WithBoard(board []Card) *RoundState {
	return rs.next(func(n *RoundState) {
		n.deck = copyCards(board)
	})
}

// WithBounty returns this snapshot with the viewer's bounty rank set.
func (rs *RoundState) WithBounty(r Rank) *RoundState {
	return rs.replace(func(n *RoundState) {
		if validSeat(n.viewer) {
			n.bounties[n.viewer] = r
		}
	})
}

// WithOpponentHand returns this snapshot with the opponent's cards revealed.
func (rs *RoundState) WithOpponentHand(cards []Card) *RoundState {
	return rs.replace(func(n *RoundState) {
		if validSeat(n.viewer) {
			n.hands[1-n.viewer] = copyCards(cards)
			n.revealed = true
		}
	})
}

// Showdown ends the round with zero deltas; the engine supplies the payoff.
func (rs *RoundState) Showdown() *TerminalState {
	return NewTerminalState([2]int{0, 0}, [2]bool{false, false}, rs)
}

// ProceedStreet moves to the next street, or to showdown after the river.
func (rs *RoundState) ProceedStreet() State {
	if rs.street == River {
		return rs.Showdown()
	}
	newStreet := rs.street + 1
	if rs.street == Preflop {
		newStreet = Flop
	}
	return rs.next(func(n *RoundState) {
		n.button = 1
		n.street = newStreet
		n.pips = [2]int{0, 0}
	})
}

// Proceed applies an action by the acting seat and returns the resulting
// state. The action must be legal in rs.
func (rs *RoundState) Proceed(a Action) (State, error) {
	if err := Validate(rs, a); err != nil {
		return nil, err
	}
	active := rs.ActiveSeat()
	switch a.Type {
	case ActionFold:
		var delta int
		if active == 0 {
			delta = rs.stacks[0] - rs.Rules().StartingStack
		} else {
			delta = rs.Rules().StartingStack - rs.stacks[1]
		}
		return NewTerminalState([2]int{delta, -delta}, [2]bool{false, false}, rs), nil

	case ActionCall:
		contribution := rs.pips[1-active] - rs.pips[active]
		called := rs.next(func(n *RoundState) {
			n.button++
			n.stacks[active] -= contribution
			n.pips[active] += contribution
		})
		if rs.button == 0 {
			// the small blind completing preflop; the big blind still has the option
			return called, nil
		}
		return called.ProceedStreet(), nil

	case ActionCheck:
		if (rs.street == Preflop && rs.button > 0) || rs.button > 1 {
			return rs.ProceedStreet(), nil
		}
		return rs.next(func(n *RoundState) {
			n.button++
		}), nil
	}

	contribution := a.Amount - rs.pips[active]
	return rs.next(func(n *RoundState) {
		n.button++
		n.stacks[active] -= contribution
		n.pips[active] += contribution
	}), nil
}

// TerminalState is the final view of a round.
type TerminalState struct {
	deltas     [2]int
	bountyHits [2]bool
	previous   *RoundState
}

// NewTerminalState creates a terminal state. previous is the last
// RoundState before payoffs.
func NewTerminalState(deltas [2]int, bountyHits [2]bool, previous *RoundState) *TerminalState {
	return &TerminalState{
		deltas:     deltas,
		bountyHits: bountyHits,
		previous:   previous,
	}
}

// TerminalFromDelta creates the terminal state for a delta reported to
// seat; the other seat's delta is its negation.
func TerminalFromDelta(seat int, delta int, bountyHits [2]bool, previous *RoundState) *TerminalState {
	deltas := [2]int{-delta, -delta}
	deltas[seat&1] = delta
	return NewTerminalState(deltas, bountyHits, previous)
}

func (ts *TerminalState) IsTerminal() bool { return true }

func (ts *TerminalState) Deltas() [2]int { return ts.deltas }

func (ts *TerminalState) Delta(seat int) int { return ts.deltas[seat&1] }

// BountyHits reports, per seat, whether the seat's bounty hit this round.
// The ranks themselves are not part of the terminal state.
func (ts *TerminalState) BountyHits() [2]bool { return ts.bountyHits }

func (ts *TerminalState) PreviousState() *RoundState { return ts.previous }

// WithBountyHits returns a copy with the hit flags replaced.
func (ts *TerminalState) WithBountyHits(hits [2]bool) *TerminalState {
	return NewTerminalState(ts.deltas, hits, ts.previous)
}

// WithDelta returns a copy with deltas taken from the viewer's delta.
func (ts *TerminalState) WithDelta(seat int, delta int) *TerminalState {
	return TerminalFromDelta(seat, delta, ts.bountyHits, ts.previous)
}
