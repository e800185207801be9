package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	emailPkg "fairway/internal/adapters/email"
	web "fairway/internal/adapters/http"
	"fairway/internal/adapters/http/middleware"
	"fairway/internal/adapters/metrics"
	"fairway/internal/adapters/security"
	"fairway/internal/adapters/storage"
	accountStore "fairway/internal/adapters/storage/account"
	practiceStore "fairway/internal/adapters/storage/practice"
	shotStore "fairway/internal/adapters/storage/shot"
	"fairway/internal/application/orchestrators"
	"fairway/internal/config"
	"fairway/internal/domain/account"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		slog.Error("config_error", "error", err)
		os.Exit(1)
	}
	setupLogging(cfg)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		fatal("failed to open database", err)
	}
	defer db.Close()

	if err := storage.MigrateDB(db); err != nil {
		fatal("failed to migrate database", err)
	}

	account.HashCost = cfg.BcryptCost

	collector := metrics.NewCollector()
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQueryMs)

	stores := &web.Stores{
		AccountStore:  accountStore.NewSQLiteStore(timedDB),
		ShotStore:     shotStore.NewSQLiteStore(timedDB),
		PracticeStore: practiceStore.NewSQLiteStore(timedDB),
	}

	if cfg.SeedDemo {
		res, err := orchestrators.ExecuteSeedDemo(context.Background(), orchestrators.SeedDemoDeps{
			AccountStore:  stores.AccountStore,
			ShotStore:     stores.ShotStore,
			PracticeStore: stores.PracticeStore,
			GenerateID:    func() string { return uuid.New().String() },
			Now:           time.Now,
		})
		if err != nil {
			fatal("failed to seed demo data", err)
		}
		slog.Info("seed_event", "event", "demo_ready", "email", orchestrators.DemoEmail, "created", res.Created)
	}

	tokens, err := security.NewTokenService(jwtSecret(cfg), cfg.JWTIssuer, cfg.TokenTTL())
	if err != nil {
		fatal("failed to configure tokens", err)
	}

	csrfKey, err := cfg.CSRFKeyBytes()
	if err != nil {
		fatal("invalid CSRF key", err)
	}

	handler := web.NewMux(stores, web.Options{
		Sessions:       sessionStore(cfg),
		Tokens:         tokens,
		Metrics:        collector,
		EmailSender:    emailSender(cfg),
		Health:         db.PingContext,
		CSRFKey:        csrfKey,
		TrustedOrigins: cfg.TrustedOriginList(),
		SecureCookies:  cfg.IsProduction(),
		SessionTTL:     cfg.SessionLifetime(),
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		SlowRequestMs:  cfg.SlowRequestMs,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server_start", "version", version, "addr", cfg.Addr, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("server failed", err)
		}
	}()

	<-ctx.Done()
	slog.Info("server_shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown_error", "error", err)
	}
}

// setupLogging installs a JSON handler in production and a text handler elsewhere.
func setupLogging(cfg *config.Config) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if cfg.IsProduction() {
		h = slog.NewJSONHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(h))
}

// jwtSecret returns the configured secret. Outside production an empty secret becomes a random one,
// so tokens do not survive a restart.
func jwtSecret(cfg *config.Config) string {
	if cfg.JWTSecret != "" {
		return cfg.JWTSecret
	}
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		fatal("failed to generate JWT secret", err)
	}
	slog.Warn("jwt_secret_random", "detail", "set FAIRWAY_JWT_SECRET so bearer tokens survive restarts")
	return hex.EncodeToString(b)
}

// sessionStore uses Redis when REDIS_ADDR is set, memory otherwise.
func sessionStore(cfg *config.Config) middleware.SessionStore {
	if cfg.RedisAddr == "" {
		slog.Info("session_store", "backend", "memory")
		return middleware.NewMemoryStore(cfg.SessionLifetime())
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		fatal("redis unreachable", err)
	}
	slog.Info("session_store", "backend", "redis", "addr", cfg.RedisAddr)
	return middleware.NewRedisStore(client, cfg.SessionLifetime())
}

// emailSender uses Resend when a key is configured.
func emailSender(cfg *config.Config) emailPkg.Sender {
	if cfg.ResendKey != "" {
		slog.Info("email_sender", "backend", "resend")
		return emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
	}
	if cfg.IsProduction() {
		slog.Warn("email_sender", "backend", "noop", "detail", "FAIRWAY_RESEND_KEY is not set; welcome emails are disabled")
	}
	return emailPkg.NewNoopSender()
}

func fatal(msg string, err error) {
	slog.Error("fatal", "msg", msg, "error", err)
	os.Exit(1)
}
