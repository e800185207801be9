package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fairway/internal/adapters/security"
)

type contextKey string

const identityContextKey contextKey = "identity"

// SessionCookieName is the web session cookie.
const SessionCookieName = "fairway_session"

// Auth methods recorded on an Identity.
const (
	MethodSession = "session"
	MethodBearer  = "bearer"
)

// Identity is the authenticated caller, however it authenticated.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Method string
}

// TokenValidator verifies bearer tokens.
type TokenValidator interface {
	Validate(raw string) (*security.Claims, error)
}

// Auth returns middleware that resolves the caller from the session cookie, else from a bearer token.
// It does NOT block unauthenticated requests; use RequireAuth for that.
func Auth(sessions SessionStore, tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, ok := identityFromCookie(r, sessions); ok {
				r = r.WithContext(ContextWithIdentity(r.Context(), id))
			} else if id, ok := identityFromBearer(r, tokens); ok {
				r = r.WithContext(ContextWithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identityFromCookie(r *http.Request, sessions SessionStore) (Identity, bool) {
	if sessions == nil {
		return Identity{}, false
	}
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return Identity{}, false
	}
	s, ok := sessions.Get(r.Context(), cookie.Value)
	if !ok {
		return Identity{}, false
	}
	return Identity{UserID: s.AccountID, Email: s.Email, Name: s.Name, Method: MethodSession}, true
}

func identityFromBearer(r *http.Request, tokens TokenValidator) (Identity, bool) {
	raw := BearerToken(r)
	if raw == "" || tokens == nil {
		return Identity{}, false
	}
	claims, err := tokens.Validate(raw)
	if err != nil {
		slog.Debug("auth_event", "event", "bearer_rejected", "path", r.URL.Path, "error", err)
		return Identity{}, false
	}
	return Identity{UserID: claims.UserID(), Email: claims.Email, Method: MethodBearer}, true
}

// BearerToken extracts the token from an "Authorization: Bearer" header, or "".
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// RequireAuth blocks requests without an identity with a 401 JSON error.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := IdentityFromContext(r.Context()); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"error": "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

// IdentityFromContext returns the authenticated caller.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityContextKey).(Identity)
	return id, ok && id.UserID != ""
}

// ContextWithIdentity returns a context carrying id.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}

// SetSessionCookie sets the session cookie on the response.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})
}
