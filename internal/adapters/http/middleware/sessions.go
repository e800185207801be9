package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// DefaultSessionTTL is how long a web session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// Session represents an authenticated web session.
type Session struct {
	AccountID string    `json:"account_id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore persists web sessions keyed by an opaque token.
type SessionStore interface {
	// Create stores s and returns a new random token.
	Create(ctx context.Context, s Session) (string, error)
	// Get returns the session for token, or false if missing or expired.
	Get(ctx context.Context, token string) (Session, bool)
	// Delete removes the session. Deleting an unknown token is not an error.
	Delete(ctx context.Context, token string) error
}

// MemoryStore is an in-process SessionStore.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates an in-memory session store.
// PRE: ttl > 0 (non-positive falls back to DefaultSessionTTL)
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Create stores a new session and returns the token.
// PRE: s.AccountID is non-empty
// POST: Session is stored with CreatedAt set
func (m *MemoryStore) Create(_ context.Context, s Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.CreatedAt = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
	return token, nil
}

// Get retrieves a session by token.
// POST: expired sessions are evicted and reported missing
func (m *MemoryStore) Get(_ context.Context, token string) (Session, bool) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()
	if !ok {
		return Session{}, false
	}
	if m.now().Sub(s.CreatedAt) > m.ttl {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return Session{}, false
	}
	return s, true
}

// Delete removes a session by token.
func (m *MemoryStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Len returns the number of stored sessions, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

const redisSessionPrefix = "fairway:session:"

// RedisStore keeps sessions in Redis so several server processes share them.
// Expiry is delegated to the key TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed session store.
// PRE: client is connected
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStore{client: client, ttl: ttl}
}

// Create stores the session as JSON under a random token.
// POST: key expires after the store TTL
func (r *RedisStore) Create(ctx context.Context, s Session) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	s.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, redisSessionPrefix+token, payload, r.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Get loads a session. Redis failures are logged and treated as a miss.
func (r *RedisStore) Get(ctx context.Context, token string) (Session, bool) {
	raw, err := r.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return Session{}, false
	}
	if err != nil {
		slog.Error("session_store_error", "op", "get", "error", err)
		return Session{}, false
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Error("session_store_error", "op", "decode", "error", err)
		return Session{}, false
	}
	return s, true
}

// Delete removes the session key.
func (r *RedisStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, redisSessionPrefix+token).Err()
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
