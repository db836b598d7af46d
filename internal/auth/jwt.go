package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies HS256 admin session tokens.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

// NewTokenIssuer configures signing. Lifetime falls back to 12 hours when
// unset.
func NewTokenIssuer(secret []byte, issuer string, lifetime time.Duration) *TokenIssuer {
	if lifetime <= 0 {
		lifetime = 12 * time.Hour
	}
	return &TokenIssuer{secret: secret, issuer: issuer, lifetime: lifetime}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Issue creates a signed token for the admin subject.
func (t *TokenIssuer) Issue(username string) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("session secret not configured")
	}
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
		Role: "admin",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks signature, expiry and issuer, and extracts the principal.
func (t *TokenIssuer) Verify(tokenString string) (Principal, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}
		return t.secret, nil
	}, jwt.WithLeeway(30*time.Second), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return Principal{}, errors.New("session token is invalid")
	}
	if t.issuer != "" && claims.Issuer != t.issuer {
		return Principal{}, errors.New("session token is invalid")
	}
	if claims.Subject == "" || claims.Role != "admin" {
		return Principal{}, errors.New("session token is invalid")
	}

	principal := Principal{Username: claims.Subject}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	return principal, nil
}
