package botconfig

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"pokerbots.com/skeleton/skeleton"
)

func TestReadBotConfig(t *testing.T) {
	config, err := ReadBotConfig("testdata/bot.yaml")
	if err != nil {
		t.Fatalf("ReadBotConfig returned error [%s]", err)
	}

	expected := &BotConfig{
		Name: "bounty-bot",
		Engine: Engine{
			Host: "127.0.0.1",
			Port: 8001,
		},
		Seed:          42,
		StrictActions: true,
		Rules: skeleton.Rules{
			NumRounds:     500,
			StartingStack: skeleton.StartingStack,
			BigBlind:      skeleton.BigBlind,
			SmallBlind:    skeleton.SmallBlind,
		},
		Logging: Logging{
			Level:          "debug",
			PrintEngineMsg: true,
		},
		Recorder: Recorder{
			Kind: RecorderRedis,
			Redis: Redis{
				Addr:       "localhost:6379",
				DB:         2,
				TTLSeconds: 3600,
			},
		},
		Status: Status{Listen: ":8090"},
		Strategy: Strategy{
			SimulationIterations: 50,
			OpenRaiseThreshold:   65,
			ReraiseThreshold:     75,
			CallThreshold:        50,
			BountyBonus:          1.2,
		},
	}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if config.Recorder.Redis.TTL() != time.Hour {
		t.Errorf("expected a one hour TTL, got %s", config.Recorder.Redis.TTL())
	}
}

func TestEnvironmentOverridesFile(t *testing.T) {
	t.Setenv("ENGINE_PORT", "9100")
	t.Setenv("BOT_SEED", "7")
	t.Setenv("STRICT_ACTIONS", "false")
	t.Setenv("RECORDER", "nats")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	config, err := ReadBotConfig("testdata/bot.yaml")
	if err != nil {
		t.Fatalf("ReadBotConfig returned error [%s]", err)
	}
	if config.Engine.Port != 9100 {
		t.Errorf("expected port 9100, got %d", config.Engine.Port)
	}
	if config.Seed != 7 {
		t.Errorf("expected seed 7, got %d", config.Seed)
	}
	if config.StrictActions {
		t.Error("STRICT_ACTIONS=false did not override the file")
	}
	if config.Recorder.Kind != RecorderNats || config.Recorder.Nats.URL != "nats://localhost:4222" {
		t.Errorf("unexpected recorder %+v", config.Recorder)
	}
}

func TestInvalidConfig(t *testing.T) {
	if _, err := ReadBotConfig("testdata/bad_recorder.yaml"); err == nil {
		t.Error("expected an error for an unknown recorder kind")
	}
	if _, err := ReadBotConfig("testdata/missing.yaml"); err == nil {
		t.Error("expected an error for a missing file")
	}

	config := Default()
	config.Rules.SmallBlind = 5
	if err := config.Validate(); err == nil {
		t.Error("expected an error when the small blind exceeds the big blind")
	}
}

func TestDefault(t *testing.T) {
	config := Default()
	if err := config.Validate(); err != nil {
		t.Fatalf("default config is invalid: %s", err)
	}
	if config.Rules != skeleton.DefaultRules() {
		t.Errorf("unexpected default rules %+v", config.Rules)
	}
}
