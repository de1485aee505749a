package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/identity"
	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// UserStateDropper forgets per-user state on sign-out
type UserStateDropper interface {
	Drop(userID string)
}

type ProfileHandler struct {
	provider identity.Provider
	states   []UserStateDropper
	log      zerolog.Logger
}

func NewProfileHandler(provider identity.Provider, log zerolog.Logger, states ...UserStateDropper) *ProfileHandler {
	return &ProfileHandler{provider: provider, states: states, log: log}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/profile", h.GetProfile)
	router.POST("/auth/sign-out", h.SignOut)
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, model.SeedProfile())
}

// SignOut ends the provider session and drops the user's state. Provider
// failures are logged and the client is still signed out locally.
func (h *ProfileHandler) SignOut(c *gin.Context) {
	userID := middleware.UserID(c)
	if err := h.provider.SignOut(c.Request.Context(), middleware.SessionID(c)); err != nil {
		h.log.Error().Err(err).Str("user_id", userID).Msg("Error signing out")
	}
	for _, s := range h.states {
		s.Drop(userID)
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
