package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "rk-test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.ResendFromEmail != "onboarding@resend.dev" || cfg.ResendToEmail != "info@lavoplus.cl" {
		t.Errorf("unexpected email defaults %q -> %q", cfg.ResendFromEmail, cfg.ResendToEmail)
	}
	if cfg.RatePolicy != "strict" {
		t.Errorf("unexpected policy %q", cfg.RatePolicy)
	}
	if cfg.RateStatsTTL != 24*time.Hour {
		t.Errorf("unexpected stats ttl %s", cfg.RateStatsTTL)
	}
	if cfg.ConcurrencyMax != 100 {
		t.Errorf("unexpected concurrency max %d", cfg.ConcurrencyMax)
	}
	if cfg.CORSOrigin != "https://lavoplus.cl" {
		t.Errorf("unexpected cors origin %q", cfg.CORSOrigin)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "rk-test")
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("RATE_POLICY", "moderate")
	t.Setenv("GUARD_RPS", "5")
	t.Setenv("CONCURRENCY_TIMEOUT", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.RatePolicy != "moderate" {
		t.Errorf("unexpected policy %q", cfg.RatePolicy)
	}
	if cfg.GuardRPS != 5 {
		t.Errorf("unexpected guard rps %v", cfg.GuardRPS)
	}
	if cfg.ConcurrencyTimeout != 250*time.Millisecond {
		t.Errorf("unexpected concurrency timeout %s", cfg.ConcurrencyTimeout)
	}
}

func TestLoad_RequiresResendKey(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without RESEND_API_KEY")
	}
}

func TestLoad_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "rk-test")
	t.Setenv("RATE_POLICY", "turbo")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}

func TestLoad_StatsRequireRedisAddr(t *testing.T) {
	t.Setenv("RESEND_API_KEY", "rk-test")
	t.Setenv("RATE_STATS_ENABLED", "true")
	t.Setenv("RATE_STATS_REDIS_ADDR", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when stats enabled without redis addr")
	}
}
