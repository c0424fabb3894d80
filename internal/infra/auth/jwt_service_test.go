package auth

import (
	"testing"
	"time"

	"speakit/config"
	"speakit/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string, accessTTL, refreshTTL time.Duration) service.TokenService {
	t.Helper()

	svc, err := NewJWTService(&config.Config{
		JWT: &config.JWTConfig{
			Secret:          secret,
			AccessTokenTTL:  accessTTL,
			RefreshTokenTTL: refreshTTL,
		},
	})
	require.NoError(t, err)

	return svc
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{
		JWT: &config.JWTConfig{AccessTokenTTL: time.Minute, RefreshTokenTTL: time.Hour},
	})
	assert.Error(t, err)
}

func TestNewJWTService_RequiresPositiveLifetimes(t *testing.T) {
	_, err := NewJWTService(&config.Config{
		JWT: &config.JWTConfig{Secret: "secret"},
	})
	assert.Error(t, err)
}

func TestJWTService_IssueAndValidate(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 15*time.Minute, 24*time.Hour)

	for _, kind := range []service.TokenKind{service.TokenKindAccess, service.TokenKindRefresh} {
		token, err := svc.Issue(kind, "a@x.com")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, svc.Validate(token))
	}
}

func TestJWTService_Subject(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 15*time.Minute, 24*time.Hour)

	token, err := svc.Issue(service.TokenKindAccess, "a@x.com")
	require.NoError(t, err)

	subject, err := svc.Subject(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", subject)
}

func TestJWTService_ValidateRejectsExpiredToken(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", -time.Minute, 24*time.Hour)

	token, err := svc.Issue(service.TokenKindAccess, "a@x.com")
	require.NoError(t, err)

	assert.False(t, svc.Validate(token))
}

func TestJWTService_ValidateRejectsForeignSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one", 15*time.Minute, 24*time.Hour)
	verifier := newTestTokenService(t, "secret-two", 15*time.Minute, 24*time.Hour)

	token, err := issuer.Issue(service.TokenKindAccess, "a@x.com")
	require.NoError(t, err)

	assert.False(t, verifier.Validate(token))
}

func TestJWTService_ValidateRejectsGarbage(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 15*time.Minute, 24*time.Hour)

	assert.False(t, svc.Validate(""))
	assert.False(t, svc.Validate("not.a.token"))
}

func TestJWTService_Lifetime(t *testing.T) {
	svc := newTestTokenService(t, "test-secret", 15*time.Minute, 24*time.Hour)

	assert.Equal(t, 15*time.Minute, svc.Lifetime(service.TokenKindAccess))
	assert.Equal(t, 24*time.Hour, svc.Lifetime(service.TokenKindRefresh))
}
