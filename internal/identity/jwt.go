package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pageza/recipeshare/backend/internal/types"
)

// JWTProvider validates HS256 session tokens signed with the provider's shared
// secret and tracks signed-out sessions for the process lifetime.
type JWTProvider struct {
	secret []byte
	now    func() time.Time

	mu      sync.RWMutex
	revoked map[string]time.Time
}

var _ Provider = (*JWTProvider)(nil)

// NewJWTProvider creates a provider. An empty secret yields a provider that
// never becomes ready.
func NewJWTProvider(secret string) *JWTProvider {
	return &JWTProvider{
		secret:  []byte(secret),
		now:     time.Now,
		revoked: make(map[string]time.Time),
	}
}

// Ready reports whether a signing secret is loaded
func (p *JWTProvider) Ready() bool {
	return len(p.secret) > 0
}

// Authenticate parses and validates a session token
func (p *JWTProvider) Authenticate(tokenString string) (*Session, error) {
	if !p.Ready() {
		return nil, ErrProviderNotReady
	}

	claims := &types.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithTimeFunc(p.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	if claims.SessionID != "" && p.isRevoked(claims.SessionID) {
		return nil, ErrSessionRevoked
	}

	return &Session{
		UserID:    claims.Subject,
		SessionID: claims.SessionID,
		Email:     claims.Email,
	}, nil
}

// SignOut revokes the session so later requests carrying it are rejected
func (p *JWTProvider) SignOut(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !p.Ready() {
		return ErrProviderNotReady
	}
	if sessionID == "" {
		return errors.New("session id is required")
	}

	p.mu.Lock()
	p.revoked[sessionID] = p.now()
	p.mu.Unlock()
	return nil
}

func (p *JWTProvider) isRevoked(sessionID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	_, ok := p.revoked[sessionID]
	return ok
}

// IssueToken signs a session token for userID. Used by local tooling and tests;
// production tokens come from the identity provider.
func (p *JWTProvider) IssueToken(userID, sessionID string, ttl time.Duration) (string, error) {
	if !p.Ready() {
		return "", ErrProviderNotReady
	}
	now := p.now()
	claims := types.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		SessionID: sessionID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(p.secret)
}
