package player

import (
	"math/rand"

	"github.com/paulhankin/poker"

	"pokerbots.com/skeleton/internal/util"
	"pokerbots.com/skeleton/skeleton"
)

// toPH converts a card to the evaluator's representation. The evaluator
// counts the ace as rank 1.
func toPH(c skeleton.Card) poker.Card {
	var s poker.Suit
	switch c.Suit() {
	case 'c':
		s = poker.Club
	case 'd':
		s = poker.Diamond
	case 'h':
		s = poker.Heart
	default:
		s = poker.Spade
	}
	r := c.Rank().Value()
	if r == 14 {
		r = 1
	}
	card, _ := poker.MakeCard(s, poker.Rank(r))
	return card
}

func eval7(cards []skeleton.Card) int16 {
	var a7 [7]poker.Card
	for i := 0; i < 7; i++ {
		a7[i] = toPH(cards[i])
	}
	return poker.Eval7(&a7)
}

// Equity estimates the chance that hand beats a random opponent hand once
// the board is completed. Ties count half.
func Equity(r *rand.Rand, hand []skeleton.Card, board []skeleton.Card, iterations int) float64 {
	if len(hand) != 2 || len(board) > 5 || iterations <= 0 {
		return 0
	}
	known := make(map[skeleton.Card]bool, 7)
	for _, c := range hand {
		known[c] = true
	}
	for _, c := range board {
		known[c] = true
	}
	deck := make([]skeleton.Card, 0, 52)
	for _, c := range skeleton.FullDeck() {
		if !known[c] {
			deck = append(deck, c)
		}
	}

	missing := 5 - len(board)
	mine := make([]skeleton.Card, 7)
	theirs := make([]skeleton.Card, 7)
	var score float64
	for i := 0; i < iterations; i++ {
		util.Shuffle(r, deck)
		copy(mine, hand)
		copy(mine[2:], board)
		copy(mine[2+len(board):], deck[:missing])
		copy(theirs, deck[missing:missing+2])
		copy(theirs[2:], mine[2:])

		myScore := eval7(mine)
		theirScore := eval7(theirs)
		if myScore > theirScore {
			score++
		} else if myScore == theirScore {
			score += 0.5
		}
	}
	return score / float64(iterations)
}

// PreflopStrength approximates the all-in win percentage of two hole cards
// against a random hand. A hand holding the bounty rank is scaled by
// bountyBonus.
func PreflopStrength(hand []skeleton.Card, bounty skeleton.Rank, bountyBonus float64) float64 {
	if len(hand) != 2 {
		return 0
	}
	hi, lo := hand[0].Rank().Value(), hand[1].Rank().Value()
	if lo > hi {
		hi, lo = lo, hi
	}
	var pct float64
	if hi == lo {
		pct = 49.3 + float64(hi-2)*2.97
	} else {
		pct = 29.3 + float64(hi-2)*2.2 + float64(lo-2)*1.0
		if hand[0].Suit() == hand[1].Suit() {
			pct += 2.5
		}
		pct -= float64(hi-lo-1) * 0.8
	}
	if bounty.Valid() && skeleton.HasRank(hand, bounty) {
		pct *= bountyBonus
	}
	return pct
}
