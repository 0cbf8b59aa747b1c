package player

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokerbots.com/skeleton/botconfig"
	"pokerbots.com/skeleton/internal/util"
	"pokerbots.com/skeleton/skeleton"
)

func newTestPlayer(seed int64) *Player {
	nop := zerolog.Nop()
	strategy := botconfig.DefaultStrategy()
	strategy.SimulationIterations = 30
	return NewPlayer(rand.New(rand.NewSource(seed)), strategy, &nop)
}

func randomState(r *rand.Rand) *skeleton.RoundState {
	rules := skeleton.DefaultRules()
	deck := skeleton.FullDeck()
	util.Shuffle(r, deck)

	streets := []int{skeleton.Preflop, skeleton.Flop, skeleton.Turn, skeleton.River}
	street := streets[r.Intn(len(streets))]
	button := r.Intn(4)
	active := button % 2

	var pips, stacks [2]int
	for seat := 0; seat < 2; seat++ {
		pips[seat] = r.Intn(60)
		stacks[seat] = r.Intn(rules.StartingStack - pips[seat] + 1)
	}
	return skeleton.NewRoundStateAt(skeleton.RoundParams{
		Rules:  rules,
		Viewer: active,
		Button: button,
		Street: street,
		Pips:   pips,
		Stacks: stacks,
		Hand:   deck[:2],
		Deck:   deck[2 : 2+street],
		Bounty: deck[10+r.Intn(5)].Rank(),
	})
}

func TestActionsAreAlwaysLegal(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	p := newTestPlayer(7)
	game := skeleton.NewGameInfo()
	for i := 0; i < 500; i++ {
		rs := randomState(r)
		action := p.GetAction(game, rs, rs.Viewer())
		if err := skeleton.Validate(rs, action); err != nil {
			t.Fatalf("case %d: %s (pips %v stacks %v)", i, err, rs.Pips(), rs.Stacks())
		}
	}
}

func TestSeededPlayerIsDeterministic(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	states := make([]*skeleton.RoundState, 50)
	for i := range states {
		states[i] = randomState(r)
	}
	a, b := newTestPlayer(11), newTestPlayer(11)
	game := skeleton.NewGameInfo()
	for i, rs := range states {
		assert.Equal(t, a.GetAction(game, rs, rs.Viewer()), b.GetAction(game, rs, rs.Viewer()), "case %d", i)
	}
}

func TestBluffSizeStaysUnderHalfPot(t *testing.T) {
	rs := skeleton.NewRoundStateAt(skeleton.RoundParams{
		Rules:  skeleton.DefaultRules(),
		Viewer: 1,
		Button: 1,
		Street: skeleton.Flop,
		Stacks: [2]int{390, 390},
		Hand:   []skeleton.Card{"2c", "7d"},
		Deck:   []skeleton.Card{"As", "Kh", "Qd"},
		Bounty: skeleton.Rank('5'),
	})
	bounds, err := rs.RaiseBounds()
	require.NoError(t, err)
	raises := 0
	for seed := int64(1); seed <= 300; seed++ {
		action := newTestPlayer(seed).decide(rs, 1)
		switch action.Type {
		case skeleton.ActionCheck:
		case skeleton.ActionRaise:
			raises++
			assert.GreaterOrEqual(t, action.Amount, bounds.Min, "seed %d", seed)
			assert.LessOrEqual(t, action.Amount, rs.Pot()/2, "seed %d", seed)
		default:
			t.Fatalf("seed %d: unexpected action %s", seed, action)
		}
	}
	assert.Greater(t, raises, 0)
}

func TestEquityIsAProbability(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	hand := []skeleton.Card{"Ah", "Ad"}
	for _, board := range [][]skeleton.Card{
		nil,
		{"2c", "7d", "9h"},
		{"2c", "7d", "9h", "Js"},
		{"2c", "7d", "9h", "Js", "Kc"},
	} {
		e := Equity(r, hand, board, 100)
		assert.GreaterOrEqual(t, e, 0.0)
		assert.LessOrEqual(t, e, 1.0)
	}
	assert.Equal(t, 0.0, Equity(r, hand[:1], nil, 100))
}

func TestPreflopStrength(t *testing.T) {
	aces := []skeleton.Card{"As", "Ad"}
	junk := []skeleton.Card{"7c", "2d"}
	assert.Greater(t, PreflopStrength(aces, skeleton.NoRank, 1.2), PreflopStrength(junk, skeleton.NoRank, 1.2))
	assert.InDelta(t, 84.9, PreflopStrength(aces, skeleton.NoRank, 1.2), 0.5)
	assert.InDelta(t, 49.3, PreflopStrength([]skeleton.Card{"2s", "2d"}, skeleton.NoRank, 1.2), 0.1)

	suited := PreflopStrength([]skeleton.Card{"Ks", "Qs"}, skeleton.NoRank, 1.2)
	offsuit := PreflopStrength([]skeleton.Card{"Ks", "Qd"}, skeleton.NoRank, 1.2)
	assert.Greater(t, suited, offsuit)

	withBounty := PreflopStrength(junk, skeleton.Rank('7'), 1.2)
	assert.InDelta(t, PreflopStrength(junk, skeleton.NoRank, 1.2)*1.2, withBounty, 1e-9)
}

func TestOpponentStats(t *testing.T) {
	rules := skeleton.DefaultRules()
	rs := skeleton.NewRound(rules, 1, []skeleton.Card{"As", "Kd"})
	proceed := func(s *skeleton.RoundState, a skeleton.Action) skeleton.State {
		next, err := s.Proceed(a)
		require.NoError(t, err)
		return next
	}
	s := proceed(rs, skeleton.RaiseTo(6)).(*skeleton.RoundState)
	s = proceed(s, skeleton.Call()).(*skeleton.RoundState)
	require.Equal(t, skeleton.Flop, s.Street())
	s = proceed(s, skeleton.RaiseTo(10)).(*skeleton.RoundState)
	terminal := proceed(s, skeleton.Fold()).(*skeleton.TerminalState)
	require.Equal(t, 6, terminal.Delta(1))

	p := newTestPlayer(1)
	p.HandleRoundOver(skeleton.NewGameInfo(), terminal, 1)
	assert.Equal(t, OpponentStats{Rounds: 1, PreflopRaises: 1, Folds: 1}, p.Stats())
	assert.Equal(t, 1.0, p.Stats().PreflopRaiseRate())
}
