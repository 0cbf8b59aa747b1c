package botconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"pokerbots.com/skeleton/internal/util"
	"pokerbots.com/skeleton/skeleton"
)

const (
	RecorderNone   = "none"
	RecorderMemory = "memory"
	RecorderRedis  = "redis"
	RecorderNats   = "nats"
)

// BotConfig contains the bot YAML content.
type BotConfig struct {
	Name          string         `yaml:"name"`
	Engine        Engine         `yaml:"engine"`
	Seed          int64          `yaml:"seed"`
	StrictActions bool           `yaml:"strict-actions"`
	Rules         skeleton.Rules `yaml:"rules"`
	Logging       Logging        `yaml:"logging"`
	Recorder      Recorder       `yaml:"recorder"`
	Status        Status         `yaml:"status"`
	Strategy      Strategy       `yaml:"strategy"`
}

type Engine struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type Logging struct {
	Level          string `yaml:"level"`
	PrintEngineMsg bool   `yaml:"print-engine-msg"`
	PrintStateMsg  bool   `yaml:"print-state-msg"`
}

// Recorder selects where round records go:
//
//	recorder:
//	  kind: redis
//	  redis:
//	    addr: localhost:6379
//	    ttl-seconds: 3600
type Recorder struct {
	Kind  string `yaml:"kind"`
	Redis Redis  `yaml:"redis"`
	Nats  Nats   `yaml:"nats"`
}

type Redis struct {
	Addr       string `yaml:"addr"`
	Password   string `yaml:"password"`
	DB         int    `yaml:"db"`
	TTLSeconds int    `yaml:"ttl-seconds"`
}

// TTL returns how long round records are kept; zero keeps them forever.
func (r Redis) TTL() time.Duration {
	return time.Duration(r.TTLSeconds) * time.Second
}

type Nats struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type Status struct {
	Listen string `yaml:"listen"`
}

// Strategy tunes the example player.
type Strategy struct {
	SimulationIterations int     `yaml:"simulation-iterations"`
	OpenRaiseThreshold   float64 `yaml:"open-raise-threshold"`
	ReraiseThreshold     float64 `yaml:"reraise-threshold"`
	CallThreshold        float64 `yaml:"call-threshold"`
	BountyBonus          float64 `yaml:"bounty-bonus"`
}

// Default returns the configuration used when no file is given.
func Default() *BotConfig {
	return &BotConfig{
		Name: "pokerbot",
		Engine: Engine{
			Host: "localhost",
		},
		Rules: skeleton.DefaultRules(),
		Logging: Logging{
			Level: "info",
		},
		Recorder: Recorder{
			Kind: RecorderNone,
		},
		Strategy: DefaultStrategy(),
	}
}

func DefaultStrategy() Strategy {
	return Strategy{
		SimulationIterations: 200,
		OpenRaiseThreshold:   65,
		ReraiseThreshold:     75,
		CallThreshold:        55,
		BountyBonus:          1.2,
	}
}

// ReadBotConfig reads a bot YAML file. Missing values keep their defaults
// and environment variables override the file.
func ReadBotConfig(fileName string) (*BotConfig, error) {
	bytes, err := os.ReadFile(fileName)
	if err != nil {
		return nil, errors.Wrapf(err, "Error reading bot config file [%s]", fileName)
	}

	config := Default()
	err = yaml.Unmarshal(bytes, config)
	if err != nil {
		return nil, errors.Wrapf(err, "Error parsing YAML file [%s]", fileName)
	}
	config.fillDefaults()
	config.ApplyEnv()

	err = config.Validate()
	if err != nil {
		return nil, errors.Wrapf(err, "Error validating bot config [%s]", fileName)
	}
	return config, nil
}

func (c *BotConfig) fillDefaults() {
	c.Rules = c.Rules.WithDefaults()
	d := DefaultStrategy()
	if c.Strategy.SimulationIterations <= 0 {
		c.Strategy.SimulationIterations = d.SimulationIterations
	}
	if c.Strategy.OpenRaiseThreshold == 0 {
		c.Strategy.OpenRaiseThreshold = d.OpenRaiseThreshold
	}
	if c.Strategy.ReraiseThreshold == 0 {
		c.Strategy.ReraiseThreshold = d.ReraiseThreshold
	}
	if c.Strategy.CallThreshold == 0 {
		c.Strategy.CallThreshold = d.CallThreshold
	}
	if c.Strategy.BountyBonus == 0 {
		c.Strategy.BountyBonus = d.BountyBonus
	}
	if c.Recorder.Kind == "" {
		c.Recorder.Kind = RecorderNone
	}
	c.Recorder.Kind = strings.ToLower(c.Recorder.Kind)
}

// ApplyEnv overrides values with the environment variables that are set.
func (c *BotConfig) ApplyEnv() {
	if v := util.Env.GetBotName(); v != "" {
		c.Name = v
	}
	if v := util.Env.GetEngineHost(); v != "" {
		c.Engine.Host = v
	}
	if v := util.Env.GetEnginePort(); v != 0 {
		c.Engine.Port = v
	}
	if seed, ok := util.Env.GetBotSeed(); ok {
		c.Seed = seed
	}
	if os.Getenv(util.Env.StrictActions) != "" {
		c.StrictActions = util.Env.IsStrictActions()
	}
	if v := util.Env.GetLogLevel(); v != "" {
		c.Logging.Level = v
	}
	if os.Getenv(util.Env.PrintEngineMsg) != "" {
		c.Logging.PrintEngineMsg = util.Env.ShouldPrintEngineMsg()
	}
	if os.Getenv(util.Env.PrintStateMsg) != "" {
		c.Logging.PrintStateMsg = util.Env.ShouldPrintStateMsg()
	}
	if v := util.Env.GetRecorder(); v != "" {
		c.Recorder.Kind = v
	}
	if v := util.Env.GetRedisAddr(); v != "" {
		c.Recorder.Redis.Addr = v
	}
	if v := util.Env.GetRedisPW(); v != "" {
		c.Recorder.Redis.Password = v
	}
	if v := util.Env.GetRedisDB(); v != 0 {
		c.Recorder.Redis.DB = v
	}
	if v := util.Env.GetNatsURL(); v != "" {
		c.Recorder.Nats.URL = v
	}
	if v := util.Env.GetNatsSubject(); v != "" {
		c.Recorder.Nats.Subject = v
	}
	if v := util.Env.GetStatusAddr(); v != "" {
		c.Status.Listen = v
	}
}

// Validate checks the values that cannot be defaulted.
func (c *BotConfig) Validate() error {
	if c.Engine.Port < 0 || c.Engine.Port > 65535 {
		return fmt.Errorf("Invalid engine port [%d]", c.Engine.Port)
	}
	if c.Rules.SmallBlind > c.Rules.BigBlind {
		return fmt.Errorf("Small blind [%d] is larger than big blind [%d]", c.Rules.SmallBlind, c.Rules.BigBlind)
	}
	if c.Rules.BigBlind > c.Rules.StartingStack {
		return fmt.Errorf("Big blind [%d] is larger than the starting stack [%d]", c.Rules.BigBlind, c.Rules.StartingStack)
	}
	switch c.Recorder.Kind {
	case RecorderNone, RecorderMemory:
	case RecorderRedis:
		if c.Recorder.Redis.Addr == "" {
			return fmt.Errorf("Redis recorder needs recorder.redis.addr")
		}
	case RecorderNats:
		if c.Recorder.Nats.URL == "" {
			return fmt.Errorf("NATS recorder needs recorder.nats.url")
		}
	default:
		return fmt.Errorf("Unknown recorder kind [%s]", c.Recorder.Kind)
	}
	return nil
}
