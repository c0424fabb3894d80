// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"speakit/config"
	"speakit/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// A single symmetric key signs both token kinds; the key is built once at
// construction and never mutated afterwards.
type jwtService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil || cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.JWT.AccessTokenTTL <= 0 || cfg.JWT.RefreshTokenTTL <= 0 {
		return nil, errors.New("jwt token lifetimes must be positive")
	}

	return &jwtService{
		secret:     []byte(cfg.JWT.Secret),
		accessTTL:  cfg.JWT.AccessTokenTTL,
		refreshTTL: cfg.JWT.RefreshTokenTTL,
	}, nil
}

// Issue builds a signed token with subject, issued-at = now and the kind's configured expiry.
func (s *jwtService) Issue(kind service.TokenKind, subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.Lifetime(kind))),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.secret)
}

// Validate reports whether the token parses, the signature verifies and the
// expiry has not passed. Every failure mode collapses into false.
func (s *jwtService) Validate(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	})

	return err == nil && token.Valid
}

// Subject extracts the subject claim without re-validating the signature.
func (s *jwtService) Subject(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return "", err
	}

	return claims.Subject, nil
}

// Lifetime returns the configured duration for the given token kind.
func (s *jwtService) Lifetime(kind service.TokenKind) time.Duration {
	if kind == service.TokenKindRefresh {
		return s.refreshTTL
	}

	return s.accessTTL
}
