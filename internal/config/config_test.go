package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"LISTEN_ADDR", "SCHEDULER_URL", "SCHEDULER_PATH", "SCHEDULER_TIMEOUT",
		"POSTGRES_DSN", "TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
		"RATE_LIMIT_PER_MINUTE", "CORS_ORIGINS",
	} {
		t.Setenv(k, "")
	}
}

func TestNewDefaults(t *testing.T) {
	clearEnv(t)
	cfg := New()

	if cfg.ListenAddr != ":8080" {
		t.Errorf("listen = %s", cfg.ListenAddr)
	}
	if cfg.SchedulerURL != "http://localhost:8000" || cfg.SchedulerPath != "/schedule-sms" {
		t.Errorf("scheduler = %s%s", cfg.SchedulerURL, cfg.SchedulerPath)
	}
	if cfg.SchedulerTimeout != 0 {
		t.Errorf("timeout = %s", cfg.SchedulerTimeout)
	}
	if cfg.JournalEnabled() {
		t.Error("journal should be off without a DSN")
	}
	if cfg.RateLimitPerMinute != 30 {
		t.Errorf("rate = %d", cfg.RateLimitPerMinute)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
	if loc, err := cfg.Location(); err != nil || loc != time.Local {
		t.Errorf("location = %v, %v", loc, err)
	}
}

func TestNewOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCHEDULER_PATH", "/alerts")
	t.Setenv("SCHEDULER_TIMEOUT", "15s")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "0")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("POSTGRES_DSN", "postgres://localhost/punctual")

	cfg := New()
	if cfg.SchedulerPath != "/alerts" {
		t.Errorf("path = %s", cfg.SchedulerPath)
	}
	if cfg.SchedulerTimeout != 15*time.Second {
		t.Errorf("timeout = %s", cfg.SchedulerTimeout)
	}
	if cfg.RateLimitPerMinute != 0 {
		t.Errorf("rate = %d", cfg.RateLimitPerMinute)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("cors = %v", cfg.CORSOrigins)
	}
	if !cfg.JournalEnabled() {
		t.Error("journal should be on with a DSN")
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("location = %v, %v", loc, err)
	}
}

func TestLocationFallsBack(t *testing.T) {
	cfg := &Config{Timezone: "Mars/Olympus_Mons"}
	loc, err := cfg.Location()
	if err == nil {
		t.Fatal("expected an error for an unknown zone")
	}
	if loc != time.Local {
		t.Fatalf("expected time.Local fallback, got %v", loc)
	}
}
