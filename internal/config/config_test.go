package config

import (
	"testing"
	"time"
)

func TestLoadFailsWithoutAPIKey(t *testing.T) {
	t.Setenv("UPSTAGE_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPSTAGE_API_KEY is unset")
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("UPSTAGE_API_KEY", "up_test_key")
	t.Setenv("UPSTAGE_BASE_URL", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("RETRY_MAX_ATTEMPTS", "")
	t.Setenv("OUTPUT_DIR", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.UpstageBaseURL != "https://api.upstage.ai/v1" {
		t.Fatalf("unexpected base url %q", cfg.UpstageBaseURL)
	}
	if cfg.RequestTimeout != 300*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.RequestTimeout)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("unexpected retry attempts %d", cfg.RetryMaxAttempts)
	}
	if cfg.OutputDir != "./outputs" {
		t.Fatalf("unexpected output dir %q", cfg.OutputDir)
	}
	if !cfg.BreakerEnabled {
		t.Fatalf("expected breaker enabled by default")
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("UPSTAGE_API_KEY", "up_test_key")
	t.Setenv("RETRY_MAX_ATTEMPTS", "5")
	t.Setenv("RETRY_INITIAL_BACKOFF_MS", "250")
	t.Setenv("API_RATE_LIMIT_RPS", "0.5")
	t.Setenv("METRICS_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RetryMaxAttempts != 5 {
		t.Fatalf("unexpected retry attempts %d", cfg.RetryMaxAttempts)
	}
	if cfg.RetryInitialBackoff != 250*time.Millisecond {
		t.Fatalf("unexpected initial backoff %v", cfg.RetryInitialBackoff)
	}
	if cfg.APIRateLimitRPS != 0.5 {
		t.Fatalf("unexpected rate limit %v", cfg.APIRateLimitRPS)
	}
	if cfg.MetricsPort != "9090" {
		t.Fatalf("unexpected metrics port %q", cfg.MetricsPort)
	}
}
