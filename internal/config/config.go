package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	LogLevel string

	UpstageAPIKey  string
	UpstageBaseURL string
	RequestTimeout time.Duration

	OutputDir string

	RetryMaxAttempts    int
	RetryInitialBackoff time.Duration
	RetryMaxBackoff     time.Duration
	RetryMultiplier     float64
	BreakerEnabled      bool

	APIRateLimitRPS   float64
	APIRateLimitBurst int

	MetricsPort string
}

// Load resolves all configuration once at startup. A missing API key
// is a fatal condition here, before any tool is served, rather than a
// per-call failure.
func Load() (Config, error) {
	cfg := Config{
		LogLevel: mustEnv("LOG_LEVEL", "info"),

		UpstageAPIKey:  os.Getenv("UPSTAGE_API_KEY"),
		UpstageBaseURL: mustEnv("UPSTAGE_BASE_URL", "https://api.upstage.ai/v1"),
		RequestTimeout: time.Duration(mustEnvInt("REQUEST_TIMEOUT_SECONDS", 300)) * time.Second,

		OutputDir: mustEnv("OUTPUT_DIR", "./outputs"),

		RetryMaxAttempts:    mustEnvInt("RETRY_MAX_ATTEMPTS", 3),
		RetryInitialBackoff: time.Duration(mustEnvInt("RETRY_INITIAL_BACKOFF_MS", 500)) * time.Millisecond,
		RetryMaxBackoff:     time.Duration(mustEnvInt("RETRY_MAX_BACKOFF_MS", 8000)) * time.Millisecond,
		RetryMultiplier:     mustEnvFloat("RETRY_MULTIPLIER", 2.0),
		BreakerEnabled:      mustEnvBool("BREAKER_ENABLED", true),

		APIRateLimitRPS:   mustEnvFloat("API_RATE_LIMIT_RPS", 2),
		APIRateLimitBurst: mustEnvInt("API_RATE_LIMIT_BURST", 4),

		MetricsPort: mustEnv("METRICS_PORT", ""),
	}

	if cfg.UpstageAPIKey == "" {
		return Config{}, fmt.Errorf("UPSTAGE_API_KEY is not set")
	}
	return cfg, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func mustEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func mustEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
