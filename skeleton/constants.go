package skeleton

// Rules holds the fixed parameters of a match. They never change during a
// session and are shared by every RoundState of a round.
type Rules struct {
	NumRounds     int `yaml:"num-rounds"`
	StartingStack int `yaml:"starting-stack"`
	BigBlind      int `yaml:"big-blind"`
	SmallBlind    int `yaml:"small-blind"`
}

const (
	NumRounds     = 1000
	StartingStack = 400
	BigBlind      = 2
	SmallBlind    = 1
)

// DefaultRules returns the rules the engine uses unless told otherwise.
func DefaultRules() Rules {
	return Rules{
		NumRounds:     NumRounds,
		StartingStack: StartingStack,
		BigBlind:      BigBlind,
		SmallBlind:    SmallBlind,
	}
}

// WithDefaults fills any zero field with the default value.
func (r Rules) WithDefaults() Rules {
	d := DefaultRules()
	if r.NumRounds <= 0 {
		r.NumRounds = d.NumRounds
	}
	if r.StartingStack <= 0 {
		r.StartingStack = d.StartingStack
	}
	if r.BigBlind <= 0 {
		r.BigBlind = d.BigBlind
	}
	if r.SmallBlind <= 0 {
		r.SmallBlind = d.SmallBlind
	}
	return r
}

// Street values are the number of board cards dealt.
const (
	Preflop = 0
	Flop    = 3
	Turn    = 4
	River   = 5
)

// StreetName returns a printable name for a street value.
func StreetName(street int) string {
	switch street {
	case Preflop:
		return "PREFLOP"
	case Flop:
		return "FLOP"
	case Turn:
		return "TURN"
	case River:
		return "RIVER"
	}
	return "UNKNOWN"
}
