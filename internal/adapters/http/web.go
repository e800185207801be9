package web

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"fairway/internal/adapters/email"
	"fairway/internal/adapters/http/middleware"
	"fairway/internal/adapters/metrics"
	"fairway/internal/adapters/security"
	accountStore "fairway/internal/adapters/storage/account"
	practiceStore "fairway/internal/adapters/storage/practice"
	shotStore "fairway/internal/adapters/storage/shot"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore  accountStore.Store
	ShotStore     shotStore.Store
	PracticeStore practiceStore.Store
}

// Options carries the non-storage dependencies of the mux.
type Options struct {
	Sessions       middleware.SessionStore
	Tokens         *security.TokenService
	Metrics        *metrics.Collector // optional
	EmailSender    email.Sender       // optional
	Health         func(ctx context.Context) error
	CSRFKey        []byte
	TrustedOrigins []string
	SecureCookies  bool
	SessionTTL     time.Duration
	RateLimit      int
	RateBurst      int
	SlowRequestMs  int
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions middleware.SessionStore

// Global bearer token service
var tokens *security.TokenService

// Global metrics collector; nil records nothing
var collector *metrics.Collector

// Global email sender instance; nil skips welcome emails
var emailSender email.Sender

var healthCheck func(ctx context.Context) error

var (
	secureCookies bool
	sessionTTL    = middleware.DefaultSessionTTL
)

// timeNow is a variable for testability.
var timeNow = time.Now

// NewMux wires HTTP handlers and the middleware chain.
// PRE: s, opts.Sessions and opts.Tokens are non-nil
func NewMux(s *Stores, opts Options) http.Handler {
	stores = s
	sessions = opts.Sessions
	tokens = opts.Tokens
	collector = opts.Metrics
	emailSender = opts.EmailSender
	healthCheck = opts.Health
	secureCookies = opts.SecureCookies
	if opts.SessionTTL > 0 {
		sessionTTL = opts.SessionTTL
	}

	mux := http.NewServeMux()
	registerRoutes(mux)

	if opts.RateLimit <= 0 || opts.RateBurst <= 0 {
		opts.RateLimit, opts.RateBurst = 10, 20
	}
	limiter := middleware.NewRateLimiter(opts.RateLimit, opts.RateBurst)

	// Outermost first: Recover -> Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> mux
	return middleware.Chain(middleware.Route(mux),
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey(opts.CSRFKey), opts.SecureCookies, opts.TrustedOrigins),
		middleware.Auth(sessions, tokens),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequestMs),
		middleware.Recover,
	)
}

// csrfKey returns key, or a random per-process key when none is configured.
// Config validation guarantees a key in production.
func csrfKey(key []byte) []byte {
	if len(key) > 0 {
		return key
	}
	key = make([]byte, 32)
	rand.Read(key)
	slog.Warn("csrf_key_random", "detail", "set FAIRWAY_CSRF_KEY so form tokens survive restarts")
	return key
}
