package skeleton

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func smallStackRules() Rules {
	return Rules{NumRounds: 1000, StartingStack: 200, BigBlind: 2, SmallBlind: 1}
}

func TestPreflopScenario(t *testing.T) {
	rs := NewRoundStateAt(RoundParams{
		Rules:  smallStackRules(),
		Viewer: 0,
		Button: 0,
		Street: Preflop,
		Pips:   [2]int{1, 2},
		Stacks: [2]int{199, 198},
	})

	if cost := rs.ContinueCost(); cost != 1 {
		t.Errorf("continue cost: expected 1, actual %d", cost)
	}
	expected := NewActionSet(ActionFold, ActionCall, ActionRaise)
	if legal := rs.LegalActions(); legal != expected {
		t.Errorf("legal actions: expected %s, actual %s", expected, legal)
	}
	bounds, err := rs.RaiseBounds()
	if err != nil {
		t.Fatalf("RaiseBounds returned error [%s]", err)
	}
	if !cmp.Equal(bounds, Bounds{Min: 4, Max: 200}) {
		t.Errorf("raise bounds: expected (4, 200), actual %+v", bounds)
	}

	// the first state of a fresh round is the same situation
	fresh := NewRound(smallStackRules(), 0, []Card{"As", "Kd"})
	if !cmp.Equal(fresh.Pips(), rs.Pips()) || !cmp.Equal(fresh.Stacks(), rs.Stacks()) {
		t.Errorf("NewRound: pips %v stacks %v", fresh.Pips(), fresh.Stacks())
	}
	if fresh.LegalActions() != expected {
		t.Errorf("NewRound legal actions: %s", fresh.LegalActions())
	}
}

func TestEqualPipsAllowCheckNotFold(t *testing.T) {
	testCases := []struct {
		name   string
		button int
		street int
		pips   [2]int
		stacks [2]int
	}{
		{"bb option preflop", 1, Preflop, [2]int{2, 2}, [2]int{398, 398}},
		{"flop opener", 1, Flop, [2]int{0, 0}, [2]int{390, 390}},
		{"turn second to act", 2, Turn, [2]int{0, 0}, [2]int{300, 300}},
		{"river", 1, River, [2]int{0, 0}, [2]int{100, 100}},
		{"both all-in", 1, Turn, [2]int{0, 0}, [2]int{0, 0}},
	}
	for _, tc := range testCases {
		rs := NewRoundStateAt(RoundParams{Button: tc.button, Street: tc.street, Pips: tc.pips, Stacks: tc.stacks})
		legal := rs.LegalActions()
		if !legal.Contains(ActionCheck) {
			t.Errorf("%s: CHECK missing from %s", tc.name, legal)
		}
		if legal.Contains(ActionFold) {
			t.Errorf("%s: FOLD should not be legal in %s", tc.name, legal)
		}
		if legal.Contains(ActionCall) {
			t.Errorf("%s: CALL should not be legal in %s", tc.name, legal)
		}
	}
}

func TestZeroStackForbidsRaise(t *testing.T) {
	testCases := []struct {
		name     string
		button   int
		pips     [2]int
		stacks   [2]int
		expected ActionSet
	}{
		{
			name:     "acting seat all-in already",
			button:   1,
			pips:     [2]int{0, 0},
			stacks:   [2]int{150, 0},
			expected: NewActionSet(ActionCheck),
		},
		{
			name:     "opponent all-in",
			button:   1,
			pips:     [2]int{0, 0},
			stacks:   [2]int{0, 150},
			expected: NewActionSet(ActionCheck),
		},
		{
			name:     "facing an all-in shove",
			button:   0,
			pips:     [2]int{10, 200},
			stacks:   [2]int{190, 0},
			expected: NewActionSet(ActionFold, ActionCall),
		},
		{
			name:     "call puts acting seat all-in",
			button:   2,
			pips:     [2]int{20, 60},
			stacks:   [2]int{40, 80},
			expected: NewActionSet(ActionFold, ActionCall),
		},
	}
	for _, tc := range testCases {
		rs := NewRoundStateAt(RoundParams{Button: tc.button, Street: Flop, Pips: tc.pips, Stacks: tc.stacks})
		legal := rs.LegalActions()
		if legal != tc.expected {
			t.Errorf("%s: expected %s, actual %s", tc.name, tc.expected, legal)
		}
		if _, err := rs.RaiseBounds(); err != ErrRaiseNotLegal {
			t.Errorf("%s: expected ErrRaiseNotLegal, actual %v", tc.name, err)
		}
	}
}

func TestRaiseBoundsProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 2000; i++ {
		// both seats start the street with the same chips behind
		behind := 1 + rng.Intn(400)
		myPip := rng.Intn(behind + 1)
		oppPip := rng.Intn(behind + 1)
		button := rng.Intn(4)
		pips := [2]int{}
		stacks := [2]int{}
		active := button % 2
		pips[active], pips[1-active] = myPip, oppPip
		stacks[active], stacks[1-active] = behind-myPip, behind-oppPip

		rs := NewRoundStateAt(RoundParams{Button: button, Street: Turn, Pips: pips, Stacks: stacks})
		if !rs.LegalActions().Contains(ActionRaise) {
			continue
		}
		bounds, err := rs.RaiseBounds()
		if err != nil {
			t.Fatalf("case %d: RaiseBounds returned error [%s]", i, err)
		}
		if bounds.Min > bounds.Max {
			t.Errorf("case %d: min %d > max %d (pips %v stacks %v)", i, bounds.Min, bounds.Max, pips, stacks)
		}
		if bounds.Max != rs.Pip(active)+rs.Stack(active) {
			t.Errorf("case %d: max %d != pip+stack %d", i, bounds.Max, rs.Pip(active)+rs.Stack(active))
		}
		if err := Validate(rs, RaiseTo(bounds.Min)); err != nil {
			t.Errorf("case %d: min raise rejected: %s", i, err)
		}
		if err := Validate(rs, RaiseTo(bounds.Max)); err != nil {
			t.Errorf("case %d: max raise rejected: %s", i, err)
		}
	}
}

func TestRiverEqualPipsNeverCalls(t *testing.T) {
	rs := NewRoundStateAt(RoundParams{
		Button: 1,
		Street: River,
		Pips:   [2]int{0, 0},
		Stacks: [2]int{120, 120},
		Deck:   []Card{"2c", "7d", "9h", "Js", "Kc"},
	})
	expected := NewActionSet(ActionCheck, ActionRaise)
	if legal := rs.LegalActions(); legal != expected {
		t.Errorf("expected %s, actual %s", expected, legal)
	}
	if err := Validate(rs, Call()); err == nil {
		t.Error("CALL with nothing owed should be rejected")
	}
	if got := SafeAction(rs); got != Check() {
		t.Errorf("safe action: expected CHECK, actual %s", got)
	}
}

func TestValidate(t *testing.T) {
	rs := NewRound(DefaultRules(), 0, []Card{"Ah", "Ad"})
	testCases := []struct {
		action Action
		legal  bool
	}{
		{Fold(), true},
		{Call(), true},
		{Check(), false},
		{RaiseTo(3), false},
		{RaiseTo(4), true},
		{RaiseTo(400), true},
		{RaiseTo(401), false},
	}
	for i, tc := range testCases {
		err := Validate(rs, tc.action)
		if tc.legal && err != nil {
			t.Errorf("case %d: %s rejected: %s", i, tc.action, err)
		}
		if !tc.legal {
			if _, ok := err.(IllegalActionError); !ok {
				t.Errorf("case %d: %s expected IllegalActionError, actual %v", i, tc.action, err)
			}
		}
	}
	if got := SafeAction(rs); got != Fold() {
		t.Errorf("safe action facing a bet: expected FOLD, actual %s", got)
	}
}
