package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCredentialRepo struct {
	stored  *Credentials
	failAll bool
}

func (r *stubCredentialRepo) Load(context.Context) (*Credentials, error) {
	if r.failAll {
		return nil, errors.New("backend down")
	}
	return r.stored, nil
}

func (r *stubCredentialRepo) Save(_ context.Context, creds Credentials) error {
	if r.failAll {
		return errors.New("backend down")
	}
	r.stored = &creds
	return nil
}

func newTestGate(t *testing.T, repo CredentialRepository) *Gate {
	t.Helper()
	tokens := NewTokenIssuer([]byte("test-secret-0123456789"), "test-issuer", time.Hour)
	gate, err := NewGate(context.Background(), Credentials{Username: "admin", Password: "password123"}, repo, tokens)
	require.NoError(t, err)
	return gate
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	gate := newTestGate(t, &stubCredentialRepo{})

	token, err := gate.Login("admin", "password123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	principal, err := gate.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	assert.WithinDuration(t, time.Now(), principal.IssuedAt, time.Minute)
}

func TestLoginRejectsWrongPair(t *testing.T) {
	gate := newTestGate(t, &stubCredentialRepo{})

	_, err := gate.Login("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = gate.Login("root", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestStoredCredentialsOverrideDefaults(t *testing.T) {
	repo := &stubCredentialRepo{stored: &Credentials{Username: "owner", Password: "rotated-pass"}}
	gate := newTestGate(t, repo)

	_, err := gate.Login("admin", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = gate.Login("owner", "rotated-pass")
	assert.NoError(t, err)
	assert.Equal(t, "owner", gate.Username())
}

func TestUpdateCredentialsPersistsThenSwaps(t *testing.T) {
	repo := &stubCredentialRepo{}
	gate := newTestGate(t, repo)

	next := Credentials{Username: "owner", Password: "much-stronger"}
	require.NoError(t, gate.UpdateCredentials(context.Background(), next))

	require.NotNil(t, repo.stored)
	assert.Equal(t, "owner", repo.stored.Username)

	_, err := gate.Login("owner", "much-stronger")
	assert.NoError(t, err)
}

func TestUpdateCredentialsValidation(t *testing.T) {
	gate := newTestGate(t, &stubCredentialRepo{})

	err := gate.UpdateCredentials(context.Background(), Credentials{Username: "", Password: "long-enough"})
	assert.ErrorIs(t, err, ErrWeakCredentials)

	err = gate.UpdateCredentials(context.Background(), Credentials{Username: "owner", Password: "short"})
	assert.ErrorIs(t, err, ErrWeakCredentials)
}

func TestUpdateCredentialsKeepsOldPairOnSaveFailure(t *testing.T) {
	repo := &stubCredentialRepo{}
	gate := newTestGate(t, repo)
	repo.failAll = true

	err := gate.UpdateCredentials(context.Background(), Credentials{Username: "owner", Password: "much-stronger"})
	require.Error(t, err)

	repo.failAll = false
	_, err = gate.Login("admin", "password123")
	assert.NoError(t, err)
}

func TestVerifyRejectsForeignToken(t *testing.T) {
	gate := newTestGate(t, &stubCredentialRepo{})

	otherIssuer := NewTokenIssuer([]byte("another-secret"), "test-issuer", time.Hour)
	token, err := otherIssuer.Issue("admin")
	require.NoError(t, err)

	_, err = gate.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("test-secret-0123456789")
	issuer := NewTokenIssuer(secret, "test-issuer", time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			Issuer:    "test-issuer",
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
		Role: "admin",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)

	_, err = issuer.Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	gate := newTestGate(t, &stubCredentialRepo{})

	_, err := gate.Verify("not-a-token")
	assert.Error(t, err)
}
