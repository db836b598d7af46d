package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ErrInvalidCredentials is returned when the login pair does not match.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrWeakCredentials is returned when a rotation request fails validation.
var ErrWeakCredentials = errors.New("weak credentials")

// Credentials is the single admin username/password pair.
type Credentials struct {
	Username string
	Password string
}

// CredentialRepository persists the rotatable admin credential pair.
// Load returns nil when nothing has been stored yet.
type CredentialRepository interface {
	Load(ctx context.Context) (*Credentials, error)
	Save(ctx context.Context, creds Credentials) error
}

// Gate validates the credential pair and issues admin session tokens.
// Downstream code only ever asks "is an authenticated admin present"; the
// realization behind that flag is contained here.
type Gate struct {
	mu     sync.RWMutex
	creds  Credentials
	repo   CredentialRepository
	tokens *TokenIssuer
}

// NewGate seeds the gate with the configured default pair and overrides it
// with the stored pair when one exists.
func NewGate(ctx context.Context, defaults Credentials, repo CredentialRepository, tokens *TokenIssuer) (*Gate, error) {
	gate := &Gate{creds: defaults, repo: repo, tokens: tokens}
	if repo != nil {
		stored, err := repo.Load(ctx)
		if err != nil {
			return nil, err
		}
		if stored != nil {
			gate.creds = *stored
		}
	}
	return gate, nil
}

// Login compares the pair in constant time and returns a signed session
// token on success.
func (g *Gate) Login(username, password string) (string, error) {
	g.mu.RLock()
	creds := g.creds
	g.mu.RUnlock()

	userOK := subtle.ConstantTimeCompare([]byte(strings.TrimSpace(username)), []byte(creds.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(creds.Password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}
	return g.tokens.Issue(creds.Username)
}

// Verify parses a session token and returns the admin principal.
func (g *Gate) Verify(token string) (Principal, error) {
	return g.tokens.Verify(token)
}

// UpdateCredentials rotates the pair. The new pair is persisted first;
// in-memory state only changes once the backend confirmed the write, so a
// failed rotation leaves the old pair valid. Existing session tokens keep
// working until they expire.
func (g *Gate) UpdateCredentials(ctx context.Context, next Credentials) error {
	next.Username = strings.TrimSpace(next.Username)
	if next.Username == "" {
		return fmt.Errorf("%w: username is required", ErrWeakCredentials)
	}
	if len(next.Password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrWeakCredentials)
	}

	if g.repo != nil {
		stamped := next
		if err := g.repo.Save(ctx, stamped); err != nil {
			return err
		}
	}

	g.mu.Lock()
	g.creds = next
	g.mu.Unlock()
	return nil
}

// Username returns the current admin login name.
func (g *Gate) Username() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.creds.Username
}

// Principal identifies an authenticated admin session.
type Principal struct {
	Username string
	IssuedAt time.Time
}
