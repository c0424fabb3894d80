// Package service defines the domain service contracts implemented by the infra layer.
package service

import "time"

// TokenKind selects which configured lifetime a token is issued with.
type TokenKind string

const (
	// TokenKindAccess is the short-lived token sent on every request.
	TokenKindAccess TokenKind = "access"
	// TokenKindRefresh is the long-lived token mirrored on the user row.
	TokenKindRefresh TokenKind = "refresh"
)

// TokenService defines the interface for issuing and validating signed bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue builds a signed token for the subject with the kind's configured lifetime.
	Issue(kind TokenKind, subject string) (string, error)

	// Validate reports whether the token's signature, structure and expiry
	// all check out. Every failure mode collapses into false.
	Validate(tokenString string) bool

	// Subject extracts the subject without re-validating. Callers must call
	// Validate first; on a malformed token this returns a parse error.
	Subject(tokenString string) (string, error)

	// Lifetime returns the configured duration for the given token kind.
	Lifetime(kind TokenKind) time.Duration
}
