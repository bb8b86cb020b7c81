package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != "3000" {
		t.Errorf("expected default port 3000, got %s", cfg.HTTPPort)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("expected default cache ttl 5m, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("expected default rate limit 120, got %d", cfg.RateLimitPerMin)
	}
	if cfg.SeedDemo {
		t.Error("demo seed should default to off")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8088")
	t.Setenv("REPORT_CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT_PER_MIN", "10")
	t.Setenv("SEED_DEMO", "true")

	cfg := Load()
	if cfg.HTTPPort != "8088" {
		t.Errorf("expected port 8088, got %s", cfg.HTTPPort)
	}
	if cfg.CacheTTL != 30*time.Second {
		t.Errorf("expected cache ttl 30s, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMin != 10 {
		t.Errorf("expected rate limit 10, got %d", cfg.RateLimitPerMin)
	}
	if !cfg.SeedDemo {
		t.Error("expected demo seed on")
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("REPORT_CACHE_TTL", "not-a-duration")
	t.Setenv("RATE_LIMIT_PER_MIN", "lots")
	t.Setenv("SEED_DEMO", "maybe")

	cfg := Load()
	if cfg.CacheTTL != 5*time.Minute {
		t.Errorf("bad duration should fall back to 5m, got %s", cfg.CacheTTL)
	}
	if cfg.RateLimitPerMin != 120 {
		t.Errorf("bad int should fall back to 120, got %d", cfg.RateLimitPerMin)
	}
	if cfg.SeedDemo {
		t.Error("bad bool should fall back to off")
	}
}
