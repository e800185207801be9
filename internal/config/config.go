// Package config loads and validates server configuration from the environment and an optional .env file.
package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvProduction is the FAIRWAY_ENV value that enables production checks.
const EnvProduction = "production"

// Config holds server configuration.
type Config struct {
	Addr     string `mapstructure:"FAIRWAY_ADDR"`
	DBPath   string `mapstructure:"FAIRWAY_DB_PATH"`
	Env      string `mapstructure:"FAIRWAY_ENV"`
	LogLevel string `mapstructure:"FAIRWAY_LOG_LEVEL"`

	// JWTSecret signs bearer tokens for every client. Required in production.
	JWTSecret  string `mapstructure:"FAIRWAY_JWT_SECRET"`
	JWTIssuer  string `mapstructure:"FAIRWAY_JWT_ISSUER"`
	JWTTTL     string `mapstructure:"FAIRWAY_JWT_TTL"`
	SessionTTL string `mapstructure:"FAIRWAY_SESSION_TTL"`
	BcryptCost int    `mapstructure:"FAIRWAY_BCRYPT_COST"`

	// CSRFKey is 64 hex characters (32 bytes). Required in production.
	CSRFKey        string `mapstructure:"FAIRWAY_CSRF_KEY"`
	TrustedOrigins string `mapstructure:"FAIRWAY_TRUSTED_ORIGINS"`
	RateLimit      int    `mapstructure:"FAIRWAY_RATE_LIMIT"`
	RateBurst      int    `mapstructure:"FAIRWAY_RATE_BURST"`

	ResendKey string `mapstructure:"FAIRWAY_RESEND_KEY"`
	EmailFrom string `mapstructure:"FAIRWAY_EMAIL_FROM"`

	// RedisAddr switches sessions to Redis when set.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	SlowQueryMs   int  `mapstructure:"FAIRWAY_SLOW_QUERY_MS"`
	SlowRequestMs int  `mapstructure:"FAIRWAY_SLOW_REQUEST_MS"`
	SeedDemo      bool `mapstructure:"FAIRWAY_SEED_DEMO"`
}

// Load reads envFile (if present), then builds and validates Config from the environment via Viper.
// A missing file is ignored. Environment variables override the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()

	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		_ = v.ReadInConfig()
	}

	v.AutomaticEnv()

	v.SetDefault("FAIRWAY_ADDR", ":8080")
	v.SetDefault("FAIRWAY_DB_PATH", "fairway.db")
	v.SetDefault("FAIRWAY_ENV", "development")
	v.SetDefault("FAIRWAY_LOG_LEVEL", "info")
	v.SetDefault("FAIRWAY_JWT_SECRET", "")
	v.SetDefault("FAIRWAY_JWT_ISSUER", "fairway")
	v.SetDefault("FAIRWAY_JWT_TTL", "168h")
	v.SetDefault("FAIRWAY_SESSION_TTL", "168h")
	v.SetDefault("FAIRWAY_BCRYPT_COST", 12)
	v.SetDefault("FAIRWAY_CSRF_KEY", "")
	v.SetDefault("FAIRWAY_TRUSTED_ORIGINS", "localhost:8080,127.0.0.1:8080")
	v.SetDefault("FAIRWAY_RATE_LIMIT", 10)
	v.SetDefault("FAIRWAY_RATE_BURST", 20)
	v.SetDefault("FAIRWAY_RESEND_KEY", "")
	v.SetDefault("FAIRWAY_EMAIL_FROM", "Fairway <noreply@fairway.golf>")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("FAIRWAY_SLOW_QUERY_MS", 50)
	v.SetDefault("FAIRWAY_SLOW_REQUEST_MS", 200)
	v.SetDefault("FAIRWAY_SEED_DEMO", false)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field ranges and production requirements.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("config: FAIRWAY_ADDR must be set")
	}
	if c.DBPath == "" {
		return errors.New("config: FAIRWAY_DB_PATH must be set")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		return errors.New("config: FAIRWAY_BCRYPT_COST must be between 4 and 31")
	}
	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return errors.New("config: FAIRWAY_RATE_LIMIT and FAIRWAY_RATE_BURST must be positive")
	}
	for name, raw := range map[string]string{"FAIRWAY_JWT_TTL": c.JWTTTL, "FAIRWAY_SESSION_TTL": c.SessionTTL} {
		if d, err := time.ParseDuration(raw); err != nil || d <= 0 {
			return fmt.Errorf("config: %s must be a positive duration, got %q", name, raw)
		}
	}
	if c.CSRFKey != "" {
		if _, err := c.CSRFKeyBytes(); err != nil {
			return err
		}
	}
	if c.IsProduction() {
		if len(c.JWTSecret) < 32 {
			return errors.New("config: FAIRWAY_JWT_SECRET must be at least 32 characters in production")
		}
		if c.CSRFKey == "" {
			return errors.New("config: FAIRWAY_CSRF_KEY is required in production")
		}
		if c.SeedDemo {
			return errors.New("config: FAIRWAY_SEED_DEMO must not be enabled in production")
		}
	}
	return nil
}

// IsProduction reports whether production checks apply.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// TokenTTL returns the bearer token lifetime.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// SessionLifetime returns the cookie session lifetime.
func (c *Config) SessionLifetime() time.Duration {
	d, err := time.ParseDuration(c.SessionTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// CSRFKeyBytes decodes CSRFKey. Returns nil, nil when unset.
func (c *Config) CSRFKeyBytes() ([]byte, error) {
	if c.CSRFKey == "" {
		return nil, nil
	}
	key, err := hex.DecodeString(c.CSRFKey)
	if err != nil || len(key) != 32 {
		return nil, errors.New("config: FAIRWAY_CSRF_KEY must be 64 hex characters (32 bytes)")
	}
	return key, nil
}

// TrustedOriginList splits TrustedOrigins on commas.
func (c *Config) TrustedOriginList() []string {
	var out []string
	for _, p := range strings.Split(c.TrustedOrigins, ",") {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}
