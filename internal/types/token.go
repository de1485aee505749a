package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims are the claims carried by an identity provider session token.
// Subject holds the user id; SessionID identifies the signed-in session.
type SessionClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
	Email     string `json:"email,omitempty"`
}
