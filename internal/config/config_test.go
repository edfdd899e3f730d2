package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.ServerPort)
	}
	if cfg.EventExchange != "subscription.events" {
		t.Fatalf("expected default exchange, got %q", cfg.EventExchange)
	}
	if cfg.SubscribeRatePerMin != 30 {
		t.Fatalf("expected default rate limit 30, got %d", cfg.SubscribeRatePerMin)
	}
	if cfg.SweepSchedule != "" {
		t.Fatalf("expected the sweep to default off, got %q", cfg.SweepSchedule)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DATABASE_URL", " postgres://localhost/sadaa ")
	t.Setenv("SWEEP_SCHEDULE", "@hourly")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ServerPort != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.ServerPort)
	}
	if cfg.DatabaseURL != "postgres://localhost/sadaa" {
		t.Fatalf("expected trimmed database URL, got %q", cfg.DatabaseURL)
	}
	if cfg.SweepSchedule != "@hourly" {
		t.Fatalf("expected sweep schedule override, got %q", cfg.SweepSchedule)
	}
}

func TestLoadConfig_NegativeRateLimitCoercedToZero(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SUBSCRIBE_RATE_LIMIT_PER_MINUTE", "-5")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.SubscribeRatePerMin != 0 {
		t.Fatalf("expected negative limit coerced to 0, got %d", cfg.SubscribeRatePerMin)
	}
}
