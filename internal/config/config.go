package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/einor12/nhl-pp1-targets/internal/platform/logging"
)

// Config stores runtime configuration for the pipeline.
type Config struct {
	ServiceName    string `validate:"required"`
	ServiceVersion string `validate:"required"`

	// Season is the 8-digit season id, e.g. 20252026.
	Season string `validate:"required,len=8,numeric"`
	// TimeZone is the IANA zone defining the operator's calendar day.
	TimeZone string `validate:"required"`

	FeedURL         string `validate:"omitempty,url"`
	SchedulePageURL string `validate:"omitempty,url"`
	StatsBaseURL    string `validate:"omitempty,url"`
	WebBaseURL      string `validate:"omitempty,url"`

	RequestTimeout    time.Duration
	MaxAttempts       int `validate:"min=1,max=10"`
	RequestsPerMinute int `validate:"min=1"`

	PlayerStatWorkers int `validate:"min=1,max=8"`
	RankingSize       int `validate:"min=1"`
	RosterSize        int `validate:"min=1"`

	OutputDir string `validate:"required"`

	CacheTTL time.Duration

	CircuitEnabled        bool
	CircuitFailureCount   int `validate:"min=1"`
	CircuitOpenTimeout    time.Duration
	CircuitHalfOpenMaxReq int `validate:"min=1"`

	UptraceEnabled bool
	UptraceDSN     string

	PyroscopeEnabled       bool
	PyroscopeServerAddress string
	PyroscopeAppName       string
	PyroscopeAuthToken     string

	LogLevel logging.Level
}

func Load() (Config, error) {
	requestTimeout, err := getEnvAsDuration("REQUEST_TIMEOUT", 20*time.Second)
	if err != nil {
		return Config{}, err
	}
	maxAttempts, err := getEnvAsInt("MAX_ATTEMPTS", 3)
	if err != nil {
		return Config{}, err
	}
	requestsPerMinute, err := getEnvAsInt("REQUESTS_PER_MINUTE", 60)
	if err != nil {
		return Config{}, err
	}
	playerStatWorkers, err := getEnvAsInt("PLAYER_STAT_WORKERS", 4)
	if err != nil {
		return Config{}, err
	}
	rankingSize, err := getEnvAsInt("RANKING_SIZE", 5)
	if err != nil {
		return Config{}, err
	}
	rosterSize, err := getEnvAsInt("ROSTER_SIZE", 5)
	if err != nil {
		return Config{}, err
	}
	cacheTTL, err := getEnvAsDuration("CACHE_TTL", 15*time.Minute)
	if err != nil {
		return Config{}, err
	}

	circuitEnabled, err := getEnvAsBool("CIRCUIT_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	circuitFailureCount, err := getEnvAsInt("CIRCUIT_FAILURE_COUNT", 3)
	if err != nil {
		return Config{}, err
	}
	circuitOpenTimeout, err := getEnvAsDuration("CIRCUIT_OPEN_TIMEOUT", 30*time.Second)
	if err != nil {
		return Config{}, err
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("CIRCUIT_HALF_OPEN_MAX_REQ", 1)
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := getEnvAsBool("UPTRACE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}

	pyroscopeEnabled, err := getEnvAsBool("PYROSCOPE_ENABLED", false)
	if err != nil {
		return Config{}, err
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}

	cfg := Config{
		ServiceName:    getEnv("APP_SERVICE_NAME", "nhl-pp1-targets"),
		ServiceVersion: getEnv("APP_SERVICE_VERSION", "dev"),

		Season:   getEnv("SEASON", "20252026"),
		TimeZone: getEnv("TIME_ZONE", "Europe/Helsinki"),

		FeedURL:         strings.TrimSpace(getEnv("FEED_URL", "")),
		SchedulePageURL: strings.TrimSpace(getEnv("SCHEDULE_PAGE_URL", "")),
		StatsBaseURL:    strings.TrimSpace(getEnv("STATS_BASE_URL", "")),
		WebBaseURL:      strings.TrimSpace(getEnv("WEB_BASE_URL", "")),

		RequestTimeout:    requestTimeout,
		MaxAttempts:       maxAttempts,
		RequestsPerMinute: requestsPerMinute,

		PlayerStatWorkers: playerStatWorkers,
		RankingSize:       rankingSize,
		RosterSize:        rosterSize,

		OutputDir: getEnv("OUTPUT_DIR", "data"),

		CacheTTL: cacheTTL,

		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,

		UptraceEnabled: uptraceEnabled,
		UptraceDSN:     uptraceDSN,

		PyroscopeEnabled:       pyroscopeEnabled,
		PyroscopeServerAddress: pyroscopeServerAddress,
		PyroscopeAuthToken:     strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),

		LogLevel: logging.ParseLevel(getEnv("APP_LOG_LEVEL", "info")),
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))

	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("REQUEST_TIMEOUT must be positive")
	}
	if cfg.CacheTTL < 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must not be negative")
	}
	if _, err := cfg.Location(); err != nil {
		return Config{}, err
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured IANA zone.
func (c Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("load time zone %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsBool(key string, fallback bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}

func getEnvAsDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return value, nil
}
