package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	engineMsgReceivedCounter prometheus.Counter
	malformedMsgCounter      prometheus.Counter
	roundsCompletedCounter   prometheus.Counter
	actionsSentCounter       *prometheus.CounterVec
	illegalActionCounter     prometheus.Counter
	bankrollGauge            prometheus.Gauge
	gameClockGauge           prometheus.Gauge
}

func (m *metrics) EngineMsgReceived() {
	m.engineMsgReceivedCounter.Inc()
}

func (m *metrics) MalformedMsg() {
	m.malformedMsgCounter.Inc()
}

func (m *metrics) RoundCompleted() {
	m.roundsCompletedCounter.Inc()
}

func (m *metrics) ActionSent(actionType string) {
	m.actionsSentCounter.WithLabelValues(actionType).Inc()
}

func (m *metrics) IllegalAction() {
	m.illegalActionCounter.Inc()
}

func (m *metrics) SetBankroll(bankroll int) {
	m.bankrollGauge.Set(float64(bankroll))
}

func (m *metrics) SetGameClock(seconds float64) {
	m.gameClockGauge.Set(seconds)
}

var Metrics = &metrics{
	engineMsgReceivedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_msg_received_total",
		Help: "Total number of packets received from the engine",
	}),
	malformedMsgCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "engine_msg_malformed_total",
		Help: "Total number of engine packets that failed to decode",
	}),
	roundsCompletedCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "rounds_completed_total",
		Help: "Total number of rounds that reached a terminal state",
	}),
	actionsSentCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "actions_sent_total",
		Help: "Total number of actions sent to the engine by type",
	}, []string{"type"}),
	illegalActionCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "illegal_actions_total",
		Help: "Total number of bot actions replaced because they were illegal",
	}),
	bankrollGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "bankroll_chips",
		Help: "Cumulative chip delta of the session",
	}),
	gameClockGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "game_clock_seconds",
		Help: "Seconds left on the bot's game clock",
	}),
}
