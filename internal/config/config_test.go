package config

import (
	"testing"
	"time"

	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if cfg.Season != "20252026" {
		t.Fatalf("unexpected season: %s", cfg.Season)
	}
	if cfg.TimeZone != "Europe/Helsinki" {
		t.Fatalf("unexpected time zone: %s", cfg.TimeZone)
	}
	if cfg.RequestTimeout != 20*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
	if cfg.MaxAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.MaxAttempts)
	}
	if cfg.PlayerStatWorkers != 4 {
		t.Fatalf("unexpected worker count: %d", cfg.PlayerStatWorkers)
	}
	if cfg.RankingSize != 5 || cfg.RosterSize != 5 {
		t.Fatalf("unexpected sizes: ranking=%d roster=%d", cfg.RankingSize, cfg.RosterSize)
	}
	if cfg.OutputDir != "data" {
		t.Fatalf("unexpected output dir: %s", cfg.OutputDir)
	}
	if cfg.CircuitEnabled {
		t.Fatal("circuit breaker must default to disabled")
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}

	if _, err := cfg.Location(); err != nil {
		t.Fatalf("default zone must resolve: %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SEASON", "20242025")
	t.Setenv("TIME_ZONE", "America/New_York")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("PLAYER_STAT_WORKERS", "8")
	t.Setenv("RANKING_SIZE", "10")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Season != "20242025" {
		t.Fatalf("unexpected season: %s", cfg.Season)
	}
	if cfg.TimeZone != "America/New_York" {
		t.Fatalf("unexpected time zone: %s", cfg.TimeZone)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Fatalf("unexpected request timeout: %s", cfg.RequestTimeout)
	}
	if cfg.PlayerStatWorkers != 8 {
		t.Fatalf("unexpected worker count: %d", cfg.PlayerStatWorkers)
	}
	if cfg.RankingSize != 10 {
		t.Fatalf("unexpected ranking size: %d", cfg.RankingSize)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_RejectsMalformedSeason(t *testing.T) {
	t.Setenv("SEASON", "2025")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for short season id")
	}
}

func TestLoad_RejectsUnknownTimeZone(t *testing.T) {
	t.Setenv("TIME_ZONE", "Mars/Olympus_Mons")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown zone")
	}
}

func TestLoad_RejectsWorkerCountAboveCap(t *testing.T) {
	t.Setenv("PLAYER_STAT_WORKERS", "9")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for worker count above cap")
	}
}

func TestLoad_RejectsNonNumericInt(t *testing.T) {
	t.Setenv("MAX_ATTEMPTS", "three")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric MAX_ATTEMPTS")
	}
}

func TestLoad_UptraceRequiresDSN(t *testing.T) {
	t.Setenv("UPTRACE_ENABLED", "true")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when uptrace is enabled without a DSN")
	}
}
