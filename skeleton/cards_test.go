package skeleton

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseCard(t *testing.T) {
	for _, s := range []string{"As", "Td", "2c", "Kh"} {
		c, err := ParseCard(s)
		if err != nil {
			t.Errorf("ParseCard(%q) returned error [%s]", s, err)
			continue
		}
		if string(c) != s || c.Rank() != Rank(s[0]) || c.Suit() != s[1] {
			t.Errorf("ParseCard(%q) = %q", s, c)
		}
	}
	for _, s := range []string{"", "A", "1s", "Ax", "10h", "as"} {
		if _, err := ParseCard(s); err == nil {
			t.Errorf("ParseCard(%q) should fail", s)
		}
	}
}

func TestRankValue(t *testing.T) {
	if Rank('2').Value() != 2 || Rank('T').Value() != 10 || Rank('A').Value() != 14 {
		t.Error("unexpected rank values")
	}
	if NoRank.Valid() || NoRank.Value() != 0 {
		t.Error("NoRank must be invalid")
	}
	if _, err := ParseRank("QQ"); err == nil {
		t.Error("ParseRank should reject two characters")
	}
}

func TestFullDeck(t *testing.T) {
	deck := FullDeck()
	if len(deck) != 52 {
		t.Fatalf("expected 52 cards, got %d", len(deck))
	}
	seen := make(map[Card]bool)
	for _, c := range deck {
		if seen[c] {
			t.Errorf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if !HasRank(deck[:13], Rank('A')) || HasRank([]Card{"2c", "3d"}, Rank('A')) {
		t.Error("HasRank mismatch")
	}
}

func TestActionSet(t *testing.T) {
	set := NewActionSet(ActionRaise, ActionFold, ActionCall)
	if diff := cmp.Diff([]ActionType{ActionFold, ActionCall, ActionRaise}, set.Types()); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}
	if set.Contains(ActionCheck) {
		t.Error("CHECK should not be in the set")
	}
	if set.String() != "{FOLD,CALL,RAISE}" {
		t.Errorf("unexpected string %s", set)
	}
	if RaiseTo(12).String() != "RAISE 12" || Fold().String() != "FOLD" {
		t.Error("unexpected action strings")
	}
}
