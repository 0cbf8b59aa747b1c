package wire

import "pokerbots.com/skeleton/skeleton"

// Kind discriminates the clauses of an engine packet.
type Kind int

const (
	KindActionRequest Kind = iota // T: game clock, reply expected
	KindSeat                      // P: seat for the round
	KindHand                      // H: own hole cards, new round
	KindBounty                    // G: own bounty rank
	KindAction                    // F, C, K, R: action by the acting seat
	KindBoard                     // B: board cards
	KindReveal                    // O: opponent hole cards
	KindDelta                     // D: own bankroll delta, round over
	KindBountyHits                // Y: bounty hit flags
	KindGameOver                  // Q
)

var kindNames = map[Kind]string{
	KindActionRequest: "ACTION_REQUEST",
	KindSeat:          "SEAT",
	KindHand:          "HAND",
	KindBounty:        "BOUNTY",
	KindAction:        "ACTION",
	KindBoard:         "BOARD",
	KindReveal:        "REVEAL",
	KindDelta:         "DELTA",
	KindBountyHits:    "BOUNTY_HITS",
	KindGameOver:      "GAME_OVER",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Message is one decoded clause. Only the fields relevant to Kind are set.
type Message struct {
	Kind   Kind
	Raw    string
	Clock  float64
	Seat   int
	Cards  []skeleton.Card
	Rank   skeleton.Rank
	Action skeleton.Action
	Delta  int
	// Hits holds the bounty hit flags as sent: this seat first, then the
	// opponent.
	Hits [2]bool
}

// Packet is a decoded engine line.
type Packet struct {
	Line     string
	Messages []Message
}

// RequestsAction reports whether the engine expects a reply to the packet.
func (p Packet) RequestsAction() bool {
	for _, m := range p.Messages {
		if m.Kind == KindActionRequest {
			return true
		}
	}
	return false
}

// GameOver reports whether the packet ends the game.
func (p Packet) GameOver() bool {
	for _, m := range p.Messages {
		if m.Kind == KindGameOver {
			return true
		}
	}
	return false
}
