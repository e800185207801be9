// Package security issues and validates the bearer tokens shared by web and mobile clients.
package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every rejected token: bad signature, wrong algorithm, expired, wrong issuer, no subject.
var ErrInvalidToken = errors.New("invalid token")

// ErrEmptySecret is returned when a TokenService is built without a signing secret.
var ErrEmptySecret = errors.New("token secret must not be empty")

// Claims are the bearer token claims. Subject carries the account ID.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the account ID the token was issued to.
func (c *Claims) UserID() string {
	return c.Subject
}

// TokenService signs and verifies HS256 tokens with a single secret.
// INVARIANT: every bearer-authenticated route validates through the same service.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService.
// PRE: secret is non-empty; ttl > 0
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}, nil
}

// TTL returns the lifetime of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for the given account.
// PRE: userID is non-empty
// POST: token expires after the configured TTL
func (s *TokenService) Issue(userID, email string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("issue token: %w", ErrInvalidToken)
	}
	now := s.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate parses raw and returns its claims.
// POST: on success the signature, algorithm, expiry, issuer and subject have all been checked
func (s *TokenService) Validate(raw string) (*Claims, error) {
	if raw == "" {
		return nil, ErrInvalidToken
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
