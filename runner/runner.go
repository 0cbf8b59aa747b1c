package runner

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"pokerbots.com/skeleton/internal/metrics"
	"pokerbots.com/skeleton/logging"
	"pokerbots.com/skeleton/recorder"
	"pokerbots.com/skeleton/skeleton"
	"pokerbots.com/skeleton/wire"
)

// Bot is implemented by a pokerbot. The runner calls it from a single
// goroutine.
type Bot interface {
	// HandleNewRound is called once at the start of every round.
	HandleNewRound(game skeleton.GameInfo, round *skeleton.RoundState, seat int)
	// HandleRoundOver is called once at the end of every round.
	HandleRoundOver(game skeleton.GameInfo, terminal *skeleton.TerminalState, seat int)
	// GetAction is called whenever the engine needs an action from the bot.
	GetAction(game skeleton.GameInfo, round *skeleton.RoundState, seat int) skeleton.Action
}

type Config struct {
	BotName string
	Rules   skeleton.Rules
	// StrictActions ends the session when the bot returns an illegal action
	// instead of sending a safe substitute.
	StrictActions  bool
	PrintEngineMsg bool
	PrintStateMsg  bool
	Recorder       recorder.Recorder
	Logger         *zerolog.Logger
}

// Summary describes a finished session. Closed is set when the session
// ended in an orderly way (game over, round limit or engine hang-up).
type Summary struct {
	SessionID      string
	Rounds         int
	Bankroll       int
	IllegalActions int
	Closed         bool
}

// Status is a point-in-time view of a running session.
type Status struct {
	SessionID      string  `json:"sessionId"`
	BotName        string  `json:"botName"`
	State          string  `json:"state"`
	RoundNum       int     `json:"roundNum"`
	Rounds         int     `json:"roundsCompleted"`
	Bankroll       int     `json:"bankroll"`
	GameClock      float64 `json:"gameClock"`
	IllegalActions int     `json:"illegalActions"`
}

// Runner plays one session against the engine on behalf of a bot.
type Runner[B Bot] struct {
	bot       B
	conn      io.ReadWriteCloser
	reader    *bufio.Reader
	config    Config
	rules     skeleton.Rules
	logger    *zerolog.Logger
	sessionID string
	sm        *fsm.FSM

	game     skeleton.GameInfo
	seat     int
	round    *skeleton.RoundState
	terminal *skeleton.TerminalState
	tracker  *RoundActionTracker
	hits     [2]bool
	hitsSeen bool

	roundStartPending  bool
	roundOver          bool
	substitutedPending bool
	gameOver           bool
	closedCleanly      bool

	rounds         int
	illegalActions int

	statusLock sync.RWMutex
	status     Status
}

// Dial connects to the engine and returns a runner for the connection.
func Dial[B Bot](ctx context.Context, host string, port int, bot B, config Config) (*Runner[B], error) {
	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(host, strconv.Itoa(port)))
	if err != nil {
		return nil, skeleton.TransportError{Op: "dial", Err: err}
	}
	return New(bot, conn, config), nil
}

// New creates a runner over an established engine connection. The runner
// owns conn and closes it when Run returns.
func New[B Bot](bot B, conn io.ReadWriteCloser, config Config) *Runner[B] {
	sessionID := uuid.New().String()
	baseLogger := config.Logger
	if baseLogger == nil {
		baseLogger = logging.GetZeroLogger("runner", nil)
	}
	logger := baseLogger.With().
		Str(logging.SessionIDKey, sessionID).
		Str(logging.BotNameKey, config.BotName).
		Logger()

	r := &Runner[B]{
		bot:       bot,
		conn:      conn,
		reader:    bufio.NewReader(conn),
		config:    config,
		rules:     config.Rules.WithDefaults(),
		logger:    &logger,
		sessionID: sessionID,
		game:      skeleton.NewGameInfo(),
	}

	r.sm = fsm.NewFSM(
		RunnerState__AWAIT_ROUND_START,
		fsm.Events{
			{
				Name: RunnerEvent__START_ROUND,
				Src:  []string{RunnerState__AWAIT_ROUND_START},
				Dst:  RunnerState__IN_BETTING,
			},
			{
				Name: RunnerEvent__END_ROUND,
				Src:  []string{RunnerState__IN_BETTING},
				Dst:  RunnerState__ROUND_OVER,
			},
			{
				Name: RunnerEvent__NEXT_ROUND,
				Src:  []string{RunnerState__ROUND_OVER},
				Dst:  RunnerState__AWAIT_ROUND_START,
			},
			{
				Name: RunnerEvent__CLOSE,
				Src: []string{
					RunnerState__AWAIT_ROUND_START,
					RunnerState__IN_BETTING,
					RunnerState__ROUND_OVER,
				},
				Dst: RunnerState__SESSION_CLOSED,
			},
		},
		fsm.Callbacks{
			"enter_state": func(e *fsm.Event) { r.enterState(e) },
		},
	)
	r.updateStatus()
	return r
}

func (r *Runner[B]) SessionID() string {
	return r.sessionID
}

// State returns the current state of the session state machine.
func (r *Runner[B]) State() string {
	return r.sm.Current()
}

// Status returns a snapshot of the session. It is safe to call from other
// goroutines while Run is in progress.
func (r *Runner[B]) Status() Status {
	r.statusLock.RLock()
	defer r.statusLock.RUnlock()
	return r.status
}

func (r *Runner[B]) updateStatus() {
	r.statusLock.Lock()
	defer r.statusLock.Unlock()
	r.status = Status{
		SessionID:      r.sessionID,
		BotName:        r.config.BotName,
		State:          r.sm.Current(),
		RoundNum:       r.game.RoundNum,
		Rounds:         r.rounds,
		Bankroll:       r.game.Bankroll,
		GameClock:      r.game.GameClock,
		IllegalActions: r.illegalActions,
	}
}

func (r *Runner[B]) summary() Summary {
	return Summary{
		SessionID:      r.sessionID,
		Rounds:         r.rounds,
		Bankroll:       r.game.Bankroll,
		IllegalActions: r.illegalActions,
		Closed:         r.closedCleanly,
	}
}

func (r *Runner[B]) enterState(e *fsm.Event) {
	if r.config.PrintStateMsg {
		r.logger.Info().Str(logging.StateKey, e.Dst).Msgf("[%s] ===> [%s]", e.Src, e.Dst)
	}
}

func (r *Runner[B]) event(event string) error {
	err := r.sm.Event(event)
	if err != nil {
		r.logger.Warn().Msgf("Error from state machine: %s", err.Error())
	}
	return err
}

// Run reads engine packets and replies until the session ends. Engine EOF,
// the game-over clause and the round limit all end the session without an
// error. The connection is closed on return.
func (r *Runner[B]) Run(ctx context.Context) (summary Summary, err error) {
	if r.sm.Current() == RunnerState__SESSION_CLOSED {
		return r.summary(), skeleton.ErrSessionClosed
	}

	done := make(chan struct{})
	defer func() {
		close(done)
		if cerr := r.conn.Close(); cerr != nil {
			r.logger.Debug().Msgf("Error closing engine connection: %s", cerr)
		}
		if r.sm.Current() != RunnerState__SESSION_CLOSED {
			r.event(RunnerEvent__CLOSE)
		}
		r.updateStatus()
		summary = r.summary()
		r.logger.Info().
			Int("rounds", summary.Rounds).
			Int("bankroll", summary.Bankroll).
			Int("illegalActions", summary.IllegalActions).
			Msg("Session closed")
	}()
	go func() {
		select {
		case <-ctx.Done():
			r.conn.Close()
		case <-done:
		}
	}()

	for {
		line, readErr := r.reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			finished, err := r.handleLine(line)
			if err != nil {
				return summary, err
			}
			if finished {
				r.closedCleanly = true
				return summary, nil
			}
		}
		if readErr != nil {
			if ctx.Err() != nil {
				return summary, ctx.Err()
			}
			if readErr == io.EOF {
				r.logger.Info().Msg("Engine closed the connection")
				r.closedCleanly = true
				return summary, nil
			}
			return summary, skeleton.TransportError{Op: "read", Err: readErr}
		}
	}
}

// handleLine processes one engine packet and sends the reply. It returns
// true when the session is over.
func (r *Runner[B]) handleLine(line string) (bool, error) {
	metrics.Metrics.EngineMsgReceived()
	if r.config.PrintEngineMsg {
		r.logger.Debug().Str(logging.MsgTypeKey, "engine").Msgf("<- %s", strings.TrimRight(line, "\r\n"))
	}

	packet, err := wire.DecodePacket(line)
	if err != nil {
		metrics.Metrics.MalformedMsg()
		r.logger.Error().Msgf("Could not decode engine message %q: %s", line, err)
		return false, err
	}
	defer r.updateStatus()

	for _, msg := range packet.Messages {
		err := r.apply(packet.Line, msg)
		if err != nil {
			metrics.Metrics.MalformedMsg()
			r.logger.Error().Msgf("Could not apply engine message %q: %s", packet.Line, err)
			return false, err
		}
	}
	err = r.finishPacket()
	if err != nil {
		return false, err
	}

	if packet.GameOver() {
		r.logger.Info().Msg("Engine ended the game")
		return true, nil
	}
	if packet.RequestsAction() {
		err = r.reply(packet.Line)
		if err != nil {
			return false, err
		}
	}
	if r.rounds >= r.rules.NumRounds {
		r.logger.Info().Msgf("Played all %d rounds", r.rounds)
		return true, nil
	}
	return false, nil
}

func malformed(line string, clause string, reason string) error {
	return skeleton.MalformedMessageError{Line: line, Clause: clause, Reason: reason}
}

func (r *Runner[B]) apply(line string, msg wire.Message) error {
	switch msg.Kind {
	case wire.KindActionRequest:
		r.game = r.game.WithClock(msg.Clock)
		metrics.Metrics.SetGameClock(msg.Clock)

	case wire.KindSeat:
		// the previous round's D and Y may share a packet with the next P
		err := r.flushRound()
		if err != nil {
			return err
		}
		if r.round != nil && msg.Seat != r.seat {
			return malformed(line, msg.Raw, fmt.Sprintf("seat changed to %d during a round played from seat %d", msg.Seat, r.seat))
		}
		r.seat = msg.Seat

	case wire.KindHand:
		return r.startRound(line, msg)

	case wire.KindBounty:
		if r.round == nil {
			return malformed(line, msg.Raw, "bounty outside of a round")
		}
		r.round = r.round.WithBounty(msg.Rank)

	case wire.KindAction:
		return r.applyAction(line, msg)

	case wire.KindBoard:
		if r.round == nil {
			return malformed(line, msg.Raw, "board outside of a round")
		}
		if len(msg.Cards) != r.round.Street() {
			return malformed(line, msg.Raw, fmt.Sprintf("board of %d cards on street %d", len(msg.Cards), r.round.Street()))
		}
		r.round = r.round.WithBoard(msg.Cards)
		if r.terminal != nil {
			r.terminal = skeleton.NewTerminalState(r.terminal.Deltas(), r.terminal.BountyHits(), r.round)
		}

	case wire.KindReveal:
		if r.round == nil {
			return malformed(line, msg.Raw, "reveal outside of a round")
		}
		r.round = r.round.WithOpponentHand(msg.Cards)
		r.terminal = r.round.Showdown()

	case wire.KindDelta:
		if r.terminal == nil {
			return malformed(line, msg.Raw, "delta before the round ended")
		}
		r.terminal = r.terminal.WithDelta(r.seat, msg.Delta)
		r.game = r.game.WithDelta(msg.Delta)
		r.roundOver = true

	case wire.KindBountyHits:
		r.hits[r.seat&1] = msg.Hits[0]
		r.hits[1-r.seat&1] = msg.Hits[1]
		r.hitsSeen = true
		if r.terminal != nil {
			r.terminal = r.terminal.WithBountyHits(r.hits)
		}

	case wire.KindGameOver:
		r.gameOver = true
	}
	return nil
}

func (r *Runner[B]) startRound(line string, msg wire.Message) error {
	if r.round != nil && !r.roundOver {
		return malformed(line, msg.Raw, "new round before the previous round ended")
	}
	err := r.flushRound()
	if err != nil {
		return err
	}
	r.round = skeleton.NewRound(r.rules, r.seat, msg.Cards)
	r.terminal = nil
	r.tracker = NewRoundActionTracker()
	r.hits = [2]bool{}
	r.hitsSeen = false
	r.roundOver = false
	r.substitutedPending = false
	r.roundStartPending = true
	r.event(RunnerEvent__START_ROUND)
	r.logger.Debug().
		Int(logging.RoundNumKey, r.game.RoundNum).
		Int(logging.SeatKey, r.seat).
		Msgf("Round started with %v", msg.Cards)
	return nil
}

func (r *Runner[B]) ensureRoundStarted() error {
	if !r.roundStartPending {
		return nil
	}
	r.roundStartPending = false
	return r.callBot("HandleNewRound", func() {
		r.bot.HandleNewRound(r.game, r.round, r.seat)
	})
}

func (r *Runner[B]) applyAction(line string, msg wire.Message) error {
	if r.round == nil || r.terminal != nil {
		return malformed(line, msg.Raw, "action outside of a live round")
	}
	err := r.ensureRoundStarted()
	if err != nil {
		return err
	}

	actor := r.round.ActiveSeat()
	street := r.round.Street()
	next, err := r.round.Proceed(msg.Action)
	if err != nil {
		return malformed(line, msg.Raw, err.Error())
	}
	substituted := false
	if actor == r.seat {
		substituted = r.substitutedPending
		r.substitutedPending = false
	}
	r.tracker.RecordAction(actor, msg.Action, street, substituted)

	switch s := next.(type) {
	case *skeleton.TerminalState:
		r.round = s.PreviousState()
		r.terminal = s
		if r.hitsSeen {
			r.terminal = r.terminal.WithBountyHits(r.hits)
		}
	case *skeleton.RoundState:
		r.round = s
	}
	return nil
}

func (r *Runner[B]) finishPacket() error {
	if r.round == nil {
		return nil
	}
	err := r.ensureRoundStarted()
	if err != nil {
		return err
	}
	return r.flushRound()
}

// flushRound ends a round whose delta has arrived, before anything of the
// next round is applied.
func (r *Runner[B]) flushRound() error {
	if r.round == nil || !r.roundOver {
		return nil
	}
	err := r.ensureRoundStarted()
	if err != nil {
		return err
	}
	return r.endRound()
}

func (r *Runner[B]) endRound() error {
	if r.hitsSeen {
		r.terminal = r.terminal.WithBountyHits(r.hits)
	}
	r.event(RunnerEvent__END_ROUND)
	err := r.callBot("HandleRoundOver", func() {
		r.bot.HandleRoundOver(r.game, r.terminal, r.seat)
	})

	r.rounds++
	metrics.Metrics.RoundCompleted()
	metrics.Metrics.SetBankroll(r.game.Bankroll)
	r.logger.Info().
		Int(logging.RoundNumKey, r.game.RoundNum).
		Int(logging.SeatKey, r.seat).
		Str(logging.StreetKey, skeleton.StreetName(r.terminal.PreviousState().Street())).
		Int("delta", r.terminal.Delta(r.seat)).
		Int("bankroll", r.game.Bankroll).
		Int("raises", r.tracker.CountRaises(r.seat)).
		Int("oppRaises", r.tracker.CountRaises(1-r.seat)).
		Msg("Round over")
	r.record()

	r.game = r.game.NextRound()
	r.round = nil
	r.terminal = nil
	r.tracker = nil
	r.roundOver = false
	r.roundStartPending = false
	r.event(RunnerEvent__NEXT_ROUND)
	return err
}

func cardStrings(cards []skeleton.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = string(c)
	}
	return out
}

func (r *Runner[B]) record() {
	if r.config.Recorder == nil {
		return
	}
	prev := r.terminal.PreviousState()
	rec := &recorder.RoundRecord{
		SessionID:  r.sessionID,
		BotName:    r.config.BotName,
		RoundNum:   r.game.RoundNum,
		Seat:       r.seat,
		Board:      cardStrings(prev.Board()),
		Delta:      r.terminal.Delta(r.seat),
		Bankroll:   r.game.Bankroll,
		BountyHits: r.terminal.BountyHits(),
		EndedAt:    time.Now().UTC(),
	}
	if hand, err := prev.Hand(r.seat); err == nil {
		rec.Hand = cardStrings(hand)
	}
	if opp, err := prev.Hand(1 - r.seat); err == nil {
		rec.OpponentHand = cardStrings(opp)
	}
	if bounty, err := prev.Bounty(r.seat); err == nil && bounty.Valid() {
		rec.Bounty = bounty.String()
	}
	for _, a := range r.tracker.AllActions() {
		rec.Actions = append(rec.Actions, recorder.ActionRecord{
			Street:      skeleton.StreetName(a.Street),
			Seat:        a.Seat,
			Action:      a.Action.Type.String(),
			Amount:      a.Action.Amount,
			Substituted: a.Substituted,
		})
	}
	err := r.config.Recorder.Save(rec)
	if err != nil {
		r.logger.Warn().Msgf("Could not record round %d: %s", rec.RoundNum, err)
	}
}

func (r *Runner[B]) reply(line string) error {
	if r.round == nil || r.terminal != nil {
		// nothing to decide; acknowledge the packet
		return r.send(skeleton.Check())
	}
	active := r.round.ActiveSeat()
	if active != r.seat {
		return malformed(line, "", fmt.Sprintf("action requested from seat %d while seat %d is to act", r.seat, active))
	}

	var action skeleton.Action
	err := r.callBot("GetAction", func() {
		action = r.bot.GetAction(r.game, r.round, r.seat)
	})
	if err != nil {
		return err
	}

	verr := skeleton.Validate(r.round, action)
	if verr != nil {
		r.illegalActions++
		metrics.Metrics.IllegalAction()
		if r.config.StrictActions {
			r.logger.Error().Msgf("Bot returned an illegal action: %s", verr)
			return errors.Wrap(verr, "strict actions")
		}
		safe := skeleton.SafeAction(r.round)
		r.logger.Warn().
			Int(logging.RoundNumKey, r.game.RoundNum).
			Str(logging.StreetKey, skeleton.StreetName(r.round.Street())).
			Msgf("%s. Sending %s instead", verr, safe)
		action = safe
		r.substitutedPending = true
	}
	return r.send(action)
}

func (r *Runner[B]) send(action skeleton.Action) error {
	encoded, err := wire.EncodeAction(action)
	if err != nil {
		return errors.Wrapf(err, "could not encode %s", action)
	}
	if r.config.PrintEngineMsg {
		r.logger.Debug().Str(logging.MsgTypeKey, "bot").Msgf("-> %s", encoded)
	}
	_, err = io.WriteString(r.conn, encoded+wire.LineTerminator)
	if err != nil {
		return skeleton.TransportError{Op: "write", Err: err}
	}
	metrics.Metrics.ActionSent(action.Type.String())
	return nil
}

// callBot runs a bot callback and turns a panic into an error.
func (r *Runner[B]) callBot(callback string, fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Errorf("bot panicked in %s: %v", callback, p)
			r.logger.Error().Msg(err.Error())
		}
	}()
	fn()
	return nil
}
