package skeleton

import (
	"fmt"
	"strings"
)

const (
	rankChars = "23456789TJQKA"
	suitChars = "cdhs"
)

// Rank is a card rank character, one of "23456789TJQKA". The zero value
// means unknown.
type Rank byte

// NoRank is the zero Rank.
const NoRank Rank = 0

func (r Rank) String() string {
	if r == NoRank {
		return "?"
	}
	return string(r)
}

// Valid reports whether r is one of the thirteen ranks.
func (r Rank) Valid() bool {
	return r != NoRank && strings.IndexByte(rankChars, byte(r)) >= 0
}

// Value returns 2..14 (ace high), or 0 for an invalid rank.
func (r Rank) Value() int {
	i := strings.IndexByte(rankChars, byte(r))
	if r == NoRank || i < 0 {
		return 0
	}
	return i + 2
}

// ParseRank parses a single rank character.
func ParseRank(s string) (Rank, error) {
	if len(s) != 1 || !Rank(s[0]).Valid() {
		return NoRank, fmt.Errorf("invalid rank %q", s)
	}
	return Rank(s[0]), nil
}

// Card is a two character card such as "As" or "Td".
type Card string

// ParseCard validates a card string.
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return "", fmt.Errorf("invalid card %q", s)
	}
	if !Rank(s[0]).Valid() || strings.IndexByte(suitChars, s[1]) < 0 {
		return "", fmt.Errorf("invalid card %q", s)
	}
	return Card(s), nil
}

// Rank returns the rank of the card.
func (c Card) Rank() Rank {
	if len(c) == 0 {
		return NoRank
	}
	return Rank(c[0])
}

// Suit returns the suit character of the card.
func (c Card) Suit() byte {
	if len(c) < 2 {
		return 0
	}
	return c[1]
}

// FullDeck returns the 52 cards in a fixed order.
func FullDeck() []Card {
	deck := make([]Card, 0, 52)
	for i := 0; i < len(suitChars); i++ {
		for j := 0; j < len(rankChars); j++ {
			deck = append(deck, Card([]byte{rankChars[j], suitChars[i]}))
		}
	}
	return deck
}

// HasRank reports whether any of the cards carries the rank.
func HasRank(cards []Card, r Rank) bool {
	for _, c := range cards {
		if c.Rank() == r {
			return true
		}
	}
	return false
}

func copyCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
