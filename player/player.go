package player

import (
	"math/rand"

	"github.com/rs/zerolog"

	"pokerbots.com/skeleton/botconfig"
	"pokerbots.com/skeleton/internal/util"
	"pokerbots.com/skeleton/logging"
	"pokerbots.com/skeleton/skeleton"
)

// OpponentStats counts what the opponent did in past rounds.
type OpponentStats struct {
	Rounds        int
	PreflopRaises int
	Showdowns     int
	Folds         int
}

// PreflopRaiseRate returns the share of rounds the opponent raised preflop.
func (s OpponentStats) PreflopRaiseRate() float64 {
	if s.Rounds == 0 {
		return 0
	}
	return float64(s.PreflopRaises) / float64(s.Rounds)
}

// Player is an example bounty bot. It decides with a preflop chart
// approximation and Monte Carlo equity after the flop.
type Player struct {
	rng      *rand.Rand
	strategy botconfig.Strategy
	logger   *zerolog.Logger
	stats    OpponentStats
}

func NewPlayer(rng *rand.Rand, strategy botconfig.Strategy, logger *zerolog.Logger) *Player {
	if logger == nil {
		logger = logging.GetZeroLogger("player", nil)
	}
	return &Player{
		rng:      rng,
		strategy: strategy,
		logger:   logger,
	}
}

func (p *Player) Stats() OpponentStats {
	return p.stats
}

func (p *Player) HandleNewRound(game skeleton.GameInfo, round *skeleton.RoundState, seat int) {
	hand, _ := round.Hand(seat)
	bounty, _ := round.Bounty(seat)
	p.logger.Debug().
		Int(logging.RoundNumKey, game.RoundNum).
		Int(logging.SeatKey, seat).
		Msgf("Hand %v bounty %s bankroll %d clock %.2f", hand, bounty, game.Bankroll, game.GameClock)
}

func (p *Player) HandleRoundOver(game skeleton.GameInfo, terminal *skeleton.TerminalState, seat int) {
	prev := terminal.PreviousState()
	opponent := 1 - seat
	p.stats.Rounds++

	chain := prev.History().Chain(prev.Seq())
	for i := 1; i < len(chain); i++ {
		a, b := chain[i-1], chain[i]
		if a.ActiveSeat() != opponent || a.Street() != skeleton.Preflop || b.Street() != skeleton.Preflop {
			continue
		}
		if b.Pip(opponent) > a.Pip(seat) {
			p.stats.PreflopRaises++
			break
		}
	}
	if prev.Revealed() {
		p.stats.Showdowns++
	} else if terminal.Delta(seat) > 0 {
		p.stats.Folds++
	}
	hits := terminal.BountyHits()
	p.logger.Debug().
		Int(logging.RoundNumKey, game.RoundNum).
		Int("delta", terminal.Delta(seat)).
		Bool("myBountyHit", hits[seat]).
		Bool("oppBountyHit", hits[opponent]).
		Msg("Round over")
}

func clampRaise(bounds skeleton.Bounds, target int) int {
	if target < bounds.Min {
		return bounds.Min
	}
	if target > bounds.Max {
		return bounds.Max
	}
	return target
}

func (p *Player) GetAction(game skeleton.GameInfo, round *skeleton.RoundState, seat int) skeleton.Action {
	action := p.decide(round, seat)
	if skeleton.Validate(round, action) != nil {
		return skeleton.SafeAction(round)
	}
	return action
}

func (p *Player) decide(round *skeleton.RoundState, seat int) skeleton.Action {
	legal := round.LegalActions()
	hand, _ := round.Hand(seat)
	bounty, _ := round.Bounty(seat)
	cost := round.ContinueCost()
	myPip := round.Pip(seat)
	bigBlind := round.Rules().BigBlind

	if round.Street() == skeleton.Preflop {
		strength := PreflopStrength(hand, bounty, p.strategy.BountyBonus)
		if legal.Contains(skeleton.ActionRaise) {
			bounds, _ := round.RaiseBounds()
			facingRaise := cost > bigBlind-round.Rules().SmallBlind
			if !facingRaise && strength > p.strategy.OpenRaiseThreshold {
				return skeleton.RaiseTo(clampRaise(bounds, bigBlind*5/2))
			}
			if facingRaise && strength > p.strategy.ReraiseThreshold {
				return skeleton.RaiseTo(clampRaise(bounds, myPip+cost*4))
			}
		}
		if legal.Contains(skeleton.ActionCheck) {
			return skeleton.Check()
		}
		threshold := p.strategy.CallThreshold
		// call lighter against an opponent that raises most rounds
		if p.stats.PreflopRaiseRate() > 0.5 {
			threshold -= 5
		}
		if legal.Contains(skeleton.ActionCall) && strength > threshold {
			return skeleton.Call()
		}
		return skeleton.Fold()
	}

	board := round.Board()
	equity := Equity(p.rng, hand, board, p.strategy.SimulationIterations)
	if bounty.Valid() && (skeleton.HasRank(hand, bounty) || skeleton.HasRank(board, bounty)) {
		equity *= p.strategy.BountyBonus
	}
	pot := round.Pot()

	if legal.Contains(skeleton.ActionRaise) {
		bounds, _ := round.RaiseBounds()
		switch {
		case equity > 0.8:
			return skeleton.RaiseTo(clampRaise(bounds, myPip+cost+pot*3/4))
		case equity > 0.65:
			return skeleton.RaiseTo(clampRaise(bounds, myPip+cost+pot/2))
		case cost == 0 && equity < 0.3 && util.GetRandomFloat64(p.rng, 0, 1) < 0.05:
			return skeleton.RaiseTo(util.GetRandomInt(p.rng, bounds.Min, clampRaise(bounds, myPip+pot/2)))
		}
	}
	if legal.Contains(skeleton.ActionCheck) {
		return skeleton.Check()
	}
	potOdds := float64(cost) / float64(pot+cost)
	if legal.Contains(skeleton.ActionCall) && equity > potOdds {
		return skeleton.Call()
	}
	return skeleton.Fold()
}
