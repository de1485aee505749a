// Package identity is the boundary to the external identity provider. The
// service never authenticates users itself; it trusts session tokens the
// provider signed and asks the provider to end sessions.
package identity

import (
	"context"
	"errors"
)

var (
	ErrProviderNotReady = errors.New("identity provider is not ready")
	ErrInvalidToken     = errors.New("invalid session token")
	ErrSessionRevoked   = errors.New("session has been signed out")
)

// Session is an authenticated identity provider session
type Session struct {
	UserID    string
	SessionID string
	Email     string
}

// Provider is the identity collaborator consumed by the auth gate
type Provider interface {
	// Ready reports whether the provider finished loading
	Ready() bool
	// Authenticate validates a session token
	Authenticate(token string) (*Session, error)
	// SignOut ends the given session
	SignOut(ctx context.Context, sessionID string) error
}
