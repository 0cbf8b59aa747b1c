package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"pokerbots.com/skeleton/botconfig"
	"pokerbots.com/skeleton/internal/rest"
	"pokerbots.com/skeleton/internal/util"
	"pokerbots.com/skeleton/logging"
	"pokerbots.com/skeleton/player"
	"pokerbots.com/skeleton/recorder"
	"pokerbots.com/skeleton/runner"
)

var (
	cmdArgs    arg
	mainLogger = log.With().Str("logger_name", "main::main").Logger()
)

type arg struct {
	configFile string
	statusAddr string
	envFile    string
}

func init() {
	flag.StringVar(&cmdArgs.configFile, "config", "", "Bot config YAML file")
	flag.StringVar(&cmdArgs.statusAddr, "status", "", "Listen address of the status server, e.g. :8090")
	flag.StringVar(&cmdArgs.envFile, "env", ".env", "Environment file loaded when present")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <host> <port>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	os.Exit(pokerbot())
}

func loadConfig() (*botconfig.BotConfig, error) {
	if cmdArgs.configFile != "" {
		return botconfig.ReadBotConfig(cmdArgs.configFile)
	}
	config := botconfig.Default()
	config.ApplyEnv()
	return config, config.Validate()
}

func newRecorder(config *botconfig.BotConfig) (recorder.Recorder, error) {
	switch config.Recorder.Kind {
	case botconfig.RecorderMemory:
		return recorder.NewMemoryRecorder(), nil
	case botconfig.RecorderRedis:
		redisCfg := config.Recorder.Redis
		rec := recorder.NewRedisRecorder(redisCfg.Addr, redisCfg.Password, redisCfg.DB, redisCfg.TTL())
		if err := rec.Ping(context.Background()); err != nil {
			rec.Close()
			return nil, err
		}
		return rec, nil
	case botconfig.RecorderNats:
		return recorder.NewNatsRecorder(config.Recorder.Nats.URL, config.Recorder.Nats.Subject)
	}
	return recorder.NewNoopRecorder(), nil
}

func pokerbot() int {
	if _, err := os.Stat(cmdArgs.envFile); err == nil {
		if err := godotenv.Load(cmdArgs.envFile); err != nil {
			mainLogger.Error().Msgf("Error loading env file [%s]: %s", cmdArgs.envFile, err)
			return 1
		}
	}

	config, err := loadConfig()
	if err != nil {
		mainLogger.Error().Msgf("Error while loading bot config: %+v", err)
		return 1
	}
	logging.SetGlobalLevel(config.Logging.Level)

	switch flag.NArg() {
	case 0:
	case 2:
		config.Engine.Host = flag.Arg(0)
		port, err := strconv.Atoi(flag.Arg(1))
		if err != nil || port <= 0 || port > 65535 {
			mainLogger.Error().Msgf("Invalid port [%s]", flag.Arg(1))
			return 1
		}
		config.Engine.Port = port
	default:
		flag.Usage()
		return 1
	}
	if config.Engine.Port == 0 {
		mainLogger.Error().Msg("No engine port is provided.")
		flag.Usage()
		return 1
	}
	if cmdArgs.statusAddr != "" {
		config.Status.Listen = cmdArgs.statusAddr
	}

	rec, err := newRecorder(config)
	if err != nil {
		mainLogger.Error().Msgf("Error while creating the %s recorder: %+v", config.Recorder.Kind, err)
		return 1
	}
	defer rec.Close()

	playerLogger := logging.GetZeroLogger("player", nil)
	bot := player.NewPlayer(util.NewRandom(config.Seed), config.Strategy, playerLogger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mainLogger.Info().Msgf("Connecting to engine at %s:%d", config.Engine.Host, config.Engine.Port)
	botRunner, err := runner.Dial(ctx, config.Engine.Host, config.Engine.Port, bot, runner.Config{
		BotName:        config.Name,
		Rules:          config.Rules,
		StrictActions:  config.StrictActions,
		PrintEngineMsg: config.Logging.PrintEngineMsg,
		PrintStateMsg:  config.Logging.PrintStateMsg,
		Recorder:       rec,
		Logger:         logging.GetZeroLogger("runner", nil),
	})
	if err != nil {
		mainLogger.Error().Msgf("Could not connect to engine: %s", err)
		return 1
	}

	if config.Status.Listen != "" {
		statusServer := rest.NewStatusServer(config.Status.Listen, botRunner)
		statusServer.Start()
		defer statusServer.Stop()
	}

	summary, err := botRunner.Run(ctx)
	if err != nil {
		mainLogger.Error().Msgf("Session %s ended with error: %s", summary.SessionID, err)
		return 1
	}
	mainLogger.Info().Msgf("Session %s finished after %d rounds with bankroll %d (%d illegal actions)",
		summary.SessionID, summary.Rounds, summary.Bankroll, summary.IllegalActions)
	return 0
}
