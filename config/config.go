// Package config carrega a configuração do servidor a partir do
// ambiente, com defaults seguros para desenvolvimento.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa tudo que o servidor precisa para subir.
type Config struct {
	ListenAddr string

	ResendAPIKey    string
	ResendFromEmail string
	ResendToEmail   string

	RecaptchaProjectID           string
	RecaptchaSiteKey             string
	RecaptchaAPIKey              string
	RecaptchaServiceAccountEmail string
	RecaptchaServiceAccountKey   string

	// RatePolicy escolhe o preset do limitador: strict, moderate ou
	// permissive.
	RatePolicy string

	RateStatsEnabled       bool
	RateStatsRedisAddr     string
	RateStatsRedisPassword string
	RateStatsRedisDB       int
	RateStatsPrefix        string
	RateStatsTTL           time.Duration
	RateStatsBucket        string
	RateStatsTrackKeys     bool

	// GuardRPS/GuardBurst formam um teto global de tráfego na frente
	// do limitador por cliente. GuardRPS=0 desliga o teto.
	GuardRPS   float64
	GuardBurst int

	ConcurrencyMax     int
	ConcurrencyTimeout time.Duration

	CORSOrigin string
}

var knownPolicies = map[string]bool{
	"strict":     true,
	"moderate":   true,
	"permissive": true,
}

// Load lê o ambiente e valida o resultado.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("resend_from_email", "onboarding@resend.dev")
	v.SetDefault("resend_to_email", "info@lavoplus.cl")
	v.SetDefault("rate_policy", "strict")
	v.SetDefault("rate_stats_enabled", false)
	v.SetDefault("rate_stats_prefix", "lavoplus:ratelimit:stats")
	v.SetDefault("rate_stats_ttl", 24*time.Hour)
	v.SetDefault("rate_stats_bucket", "minute")
	v.SetDefault("rate_stats_track_keys", false)
	v.SetDefault("guard_rps", 0.0)
	v.SetDefault("guard_burst", 20)
	v.SetDefault("concurrency_max", 100)
	v.SetDefault("concurrency_timeout", time.Duration(0))
	v.SetDefault("cors_origin", "https://lavoplus.cl")

	// viper só enxerga variáveis de ambiente que foram bindadas
	for _, key := range []string{
		"listen_addr",
		"resend_api_key", "resend_from_email", "resend_to_email",
		"recaptcha_project_id", "recaptcha_site_key", "recaptcha_api_key",
		"recaptcha_service_account_email", "recaptcha_service_account_key",
		"rate_policy",
		"rate_stats_enabled", "rate_stats_redis_addr", "rate_stats_redis_password",
		"rate_stats_redis_db", "rate_stats_prefix", "rate_stats_ttl",
		"rate_stats_bucket", "rate_stats_track_keys",
		"guard_rps", "guard_burst",
		"concurrency_max", "concurrency_timeout",
		"cors_origin",
	} {
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		ListenAddr: v.GetString("listen_addr"),

		ResendAPIKey:    v.GetString("resend_api_key"),
		ResendFromEmail: v.GetString("resend_from_email"),
		ResendToEmail:   v.GetString("resend_to_email"),

		RecaptchaProjectID:           v.GetString("recaptcha_project_id"),
		RecaptchaSiteKey:             v.GetString("recaptcha_site_key"),
		RecaptchaAPIKey:              v.GetString("recaptcha_api_key"),
		RecaptchaServiceAccountEmail: v.GetString("recaptcha_service_account_email"),
		RecaptchaServiceAccountKey:   v.GetString("recaptcha_service_account_key"),

		RatePolicy: strings.ToLower(v.GetString("rate_policy")),

		RateStatsEnabled:       v.GetBool("rate_stats_enabled"),
		RateStatsRedisAddr:     v.GetString("rate_stats_redis_addr"),
		RateStatsRedisPassword: v.GetString("rate_stats_redis_password"),
		RateStatsRedisDB:       v.GetInt("rate_stats_redis_db"),
		RateStatsPrefix:        v.GetString("rate_stats_prefix"),
		RateStatsTTL:           v.GetDuration("rate_stats_ttl"),
		RateStatsBucket:        v.GetString("rate_stats_bucket"),
		RateStatsTrackKeys:     v.GetBool("rate_stats_track_keys"),

		GuardRPS:   v.GetFloat64("guard_rps"),
		GuardBurst: v.GetInt("guard_burst"),

		ConcurrencyMax:     v.GetInt("concurrency_max"),
		ConcurrencyTimeout: v.GetDuration("concurrency_timeout"),

		CORSOrigin: v.GetString("cors_origin"),
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.ResendAPIKey) == "" {
		return errors.New("RESEND_API_KEY is required")
	}
	if !knownPolicies[c.RatePolicy] {
		return errors.New("RATE_POLICY must be strict, moderate or permissive")
	}
	if c.RateStatsEnabled && strings.TrimSpace(c.RateStatsRedisAddr) == "" {
		return errors.New("RATE_STATS_REDIS_ADDR is required when RATE_STATS_ENABLED=true")
	}
	if c.GuardRPS < 0 {
		return errors.New("GUARD_RPS must be >= 0")
	}
	if c.GuardRPS > 0 && c.GuardBurst <= 0 {
		return errors.New("GUARD_BURST must be > 0 when GUARD_RPS is set")
	}
	if c.ConcurrencyMax < 0 {
		return errors.New("CONCURRENCY_MAX must be >= 0")
	}
	return nil
}
