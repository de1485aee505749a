package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipeshare/backend/internal/identity"
)

// Context keys set by AuthGate
const (
	ContextUserID    = "user_id"
	ContextSessionID = "session_id"
)

// AuthGate lets a request through only when the identity provider is ready
// and the bearer token is a live session
func AuthGate(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !provider.Ready() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "identity provider is not ready"})
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			c.Abort()
			return
		}

		session, err := provider.Authenticate(parts[1])
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, identity.ErrProviderNotReady) {
				status = http.StatusServiceUnavailable
			}
			c.JSON(status, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Set(ContextSessionID, session.SessionID)
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" outside the gate
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

// SessionID returns the authenticated session id, or "" outside the gate
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}
