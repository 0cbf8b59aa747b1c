package util

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

var environmentLogger = log.With().Str("logger_name", "util::environment").Logger()

type botEnvironment struct {
	EngineHost     string
	EnginePort     string
	BotName        string
	BotSeed        string
	StrictActions  string
	LogLevel       string
	PrintEngineMsg string
	PrintStateMsg  string
	Recorder       string
	RedisHost      string
	RedisPort      string
	RedisPW        string
	RedisDB        string
	NatsURL        string
	NatsSubject    string
	StatusAddr     string
}

// Env is a helper object for accessing environment variables.
var Env = &botEnvironment{
	EngineHost:     "ENGINE_HOST",
	EnginePort:     "ENGINE_PORT",
	BotName:        "BOT_NAME",
	BotSeed:        "BOT_SEED",
	StrictActions:  "STRICT_ACTIONS",
	LogLevel:       "LOG_LEVEL",
	PrintEngineMsg: "PRINT_ENGINE_MSG",
	PrintStateMsg:  "PRINT_STATE_MSG",
	Recorder:       "RECORDER",
	RedisHost:      "REDIS_HOST",
	RedisPort:      "REDIS_PORT",
	RedisPW:        "REDIS_PW",
	RedisDB:        "REDIS_DB",
	NatsURL:        "NATS_URL",
	NatsSubject:    "NATS_SUBJECT",
	StatusAddr:     "STATUS_ADDR",
}

func (e *botEnvironment) GetEngineHost() string {
	return os.Getenv(e.EngineHost)
}

func (e *botEnvironment) GetEnginePort() int {
	return e.getInt(e.EnginePort)
}

func (e *botEnvironment) GetBotName() string {
	return os.Getenv(e.BotName)
}

// GetBotSeed returns the seed and whether one was set.
func (e *botEnvironment) GetBotSeed() (int64, bool) {
	v := os.Getenv(e.BotSeed)
	if v == "" {
		return 0, false
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value %s", e.BotSeed, v)
		return 0, false
	}
	return seed, true
}

func (e *botEnvironment) IsStrictActions() bool {
	return getBool(e.StrictActions)
}

func (e *botEnvironment) GetLogLevel() string {
	return os.Getenv(e.LogLevel)
}

func (e *botEnvironment) ShouldPrintEngineMsg() bool {
	return getBool(e.PrintEngineMsg)
}

func (e *botEnvironment) ShouldPrintStateMsg() bool {
	return getBool(e.PrintStateMsg)
}

func (e *botEnvironment) GetRecorder() string {
	return strings.ToLower(os.Getenv(e.Recorder))
}

func (e *botEnvironment) GetRedisHost() string {
	return os.Getenv(e.RedisHost)
}

func (e *botEnvironment) GetRedisPort() int {
	return e.getInt(e.RedisPort)
}

func (e *botEnvironment) GetRedisPW() string {
	return os.Getenv(e.RedisPW)
}

func (e *botEnvironment) GetRedisDB() int {
	return e.getInt(e.RedisDB)
}

// GetRedisAddr returns host:port, or "" when no host is set.
func (e *botEnvironment) GetRedisAddr() string {
	host := e.GetRedisHost()
	if host == "" {
		return ""
	}
	port := e.GetRedisPort()
	if port == 0 {
		port = 6379
	}
	return fmt.Sprintf("%s:%d", host, port)
}

func (e *botEnvironment) GetNatsURL() string {
	return os.Getenv(e.NatsURL)
}

func (e *botEnvironment) GetNatsSubject() string {
	return os.Getenv(e.NatsSubject)
}

func (e *botEnvironment) GetStatusAddr() string {
	return os.Getenv(e.StatusAddr)
}

func (e *botEnvironment) getInt(name string) int {
	v := os.Getenv(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		environmentLogger.Error().Msgf("Invalid %s value %s", name, v)
		return 0
	}
	return n
}

func getBool(name string) bool {
	v := os.Getenv(name)
	return v == "1" || strings.ToLower(v) == "true"
}
