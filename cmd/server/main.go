package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"

	"lavoplus-backend/api"
	"lavoplus-backend/config"
	"lavoplus-backend/mailer"
	"lavoplus-backend/middleware/ratelimit"
	"lavoplus-backend/middleware/ratelimit/domain"
	"lavoplus-backend/middleware/ratelimit/infra"
	"lavoplus-backend/recaptcha"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	app := &cli.App{
		Name:    "lavoplus-server",
		Usage:   "backend del formulario de contacto de Lavandería Lavoplus",
		Version: Version + " (" + Commit + ")",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "listen",
				Aliases: []string{"l"},
				Usage:   "address to listen on (overrides LISTEN_ADDR)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("servidor encerrou com erro", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if addr := c.String("listen"); addr != "" {
		cfg.ListenAddr = addr
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// credenciais da conta de serviço são opcionais; sem elas o
	// verificador cai para a API key
	var tokens *recaptcha.TokenSource
	if cfg.RecaptchaServiceAccountEmail != "" && cfg.RecaptchaServiceAccountKey != "" {
		tokens = recaptcha.NewTokenSource(
			cfg.RecaptchaServiceAccountEmail,
			cfg.RecaptchaServiceAccountKey,
			recaptcha.WithTokenLogger(logger),
		)
	}
	verifier := recaptcha.NewVerifier(recaptcha.Config{
		ProjectID: cfg.RecaptchaProjectID,
		SiteKey:   cfg.RecaptchaSiteKey,
		APIKey:    cfg.RecaptchaAPIKey,
	}, tokens, recaptcha.WithLogger(logger))

	mail := mailer.NewResend(cfg.ResendAPIKey,
		mailer.WithFrom(cfg.ResendFromEmail),
		mailer.WithTo(cfg.ResendToEmail),
		mailer.WithMailerLogger(logger),
	)

	windows := infra.NewWindowStore()
	windows.StartJanitor(ctx)

	var statsStore domain.StatsStore
	if cfg.RateStatsEnabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RateStatsRedisAddr,
			Password: cfg.RateStatsRedisPassword,
			DB:       cfg.RateStatsRedisDB,
		})
		defer func() { _ = rdb.Close() }()

		pingCtx, pingCancel := context.WithTimeout(ctx, 2*time.Second)
		_, err := rdb.Ping(pingCtx).Result()
		pingCancel()
		if err != nil {
			return err
		}

		statsStore = infra.NewRedisStatsStore(rdb,
			infra.WithStatsPrefix(cfg.RateStatsPrefix),
			infra.WithStatsTTL(cfg.RateStatsTTL),
			infra.WithStatsBucket(cfg.RateStatsBucket),
			infra.WithStatsTrackKeys(cfg.RateStatsTrackKeys),
		)
	}

	policy := domain.Policies()[cfg.RatePolicy]

	h := http.Handler(api.NewHandler(verifier, mail, logger))
	h = ratelimit.ConcurrencyMiddleware(ratelimit.ConcurrencyOptions{
		Max:            cfg.ConcurrencyMax,
		AcquireTimeout: cfg.ConcurrencyTimeout,
	})(h)
	h = ratelimit.Middleware(ratelimit.Options{
		Store:  windows,
		Policy: policy,
		Stats:  statsStore,
	})(h)
	if cfg.GuardRPS > 0 {
		buckets := infra.NewBucketStore(cfg.GuardRPS, cfg.GuardBurst)
		buckets.StartJanitor(ctx)
		h = ratelimit.Guard(ratelimit.GuardOptions{Store: buckets})(h)
	}
	h = api.ObserveRateLimited(h)
	// método errado não deve consumir janela do limitador
	h = api.RequirePOST(h)
	h = api.Recover(logger)(h)
	h = api.RequestID(h)
	h = api.CORS(cfg.CORSOrigin)(h)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       90 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("servidor escutando",
		"addr", cfg.ListenAddr,
		"policy", cfg.RatePolicy,
		"stats", cfg.RateStatsEnabled,
		"guard_rps", cfg.GuardRPS,
		"concurrency_max", cfg.ConcurrencyMax,
	)
	logger.Info("recaptcha",
		"configured", cfg.RecaptchaProjectID != "" && cfg.RecaptchaSiteKey != "",
		"service_account", cfg.RecaptchaServiceAccountEmail != "",
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
