package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pageza/recipeshare/backend/internal/middleware"
	"github.com/pageza/recipeshare/backend/internal/upload"
)

type FieldUpdateRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

type AttachImageRequest struct {
	Source string `json:"source" binding:"required"`
	upload.PickerResult
}

type ImageURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// SubmitLimiter caps recipe submissions per user. Allow writes the rejection
// response itself when it returns false.
type SubmitLimiter interface {
	Allow(c *gin.Context) bool
	Remaining(ctx context.Context, userID string) (int, time.Time, error)
}

// errRateLimited means the limiter already answered the request
var errRateLimited = errors.New("upload rate limit exceeded")

// limitedSubmitter counts a submission against the limit only once the draft
// has passed validation
type limitedSubmitter struct {
	c     *gin.Context
	limit SubmitLimiter
	next  upload.Submitter
}

func (l limitedSubmitter) Submit(ctx context.Context, userID string, form upload.Form) (*upload.Submission, error) {
	if !l.limit.Allow(l.c) {
		return nil, errRateLimited
	}
	return l.next.Submit(ctx, userID, form)
}

type UploadHandler struct {
	uploads     *upload.Service
	submitLimit SubmitLimiter
	storage     bool
	log         zerolog.Logger
}

// NewUploadHandler wires the upload routes. submitLimit may be nil when rate
// limiting is unavailable; storage enables the presigned image URL route.
func NewUploadHandler(uploads *upload.Service, submitLimit SubmitLimiter, storage bool, log zerolog.Logger) *UploadHandler {
	return &UploadHandler{
		uploads:     uploads,
		submitLimit: submitLimit,
		storage:     storage,
		log:         log,
	}
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup) {
	up := router.Group("/upload")
	{
		up.GET("/form", h.GetForm)
		up.PATCH("/form", h.UpdateForm)
		up.POST("/form/image", h.AttachImage)
		up.POST("/form/submit", h.Submit)

		if h.storage {
			up.POST("/image-url", h.ImageURL)
		}
	}
}

func validationResponse(c *gin.Context, verr *upload.ValidationError) {
	c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message, "field": verr.Field})
}

func (h *UploadHandler) GetForm(c *gin.Context) {
	userID := middleware.UserID(c)
	draft := h.uploads.Draft(userID)
	resp := gin.H{"form": draft.Form(), "submitting": draft.Submitting()}

	if h.submitLimit != nil {
		remaining, reset, err := h.submitLimit.Remaining(c.Request.Context(), userID)
		if err != nil {
			h.log.Warn().Err(err).Str("user_id", userID).Msg("Upload quota lookup failed")
		} else {
			resp["remaining_uploads"] = remaining
			resp["uploads_reset"] = reset.Unix()
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UploadHandler) UpdateForm(c *gin.Context) {
	var req FieldUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	form, err := h.uploads.Draft(middleware.UserID(c)).Update(upload.Field(req.Field), req.Value)
	if err != nil {
		var verr *upload.ValidationError
		if errors.As(err, &verr) {
			validationResponse(c, verr)
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update form"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"form": form})
}

func (h *UploadHandler) AttachImage(c *gin.Context) {
	var req AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	source, err := upload.ParseSource(req.Source)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "source"})
		return
	}

	draft := h.uploads.Draft(middleware.UserID(c))
	form, err := draft.AttachImage(c.Request.Context(), req.PickerResult, source)
	var perr *upload.PermissionError
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"form": form})
	case errors.As(err, &perr):
		c.JSON(http.StatusForbidden, gin.H{"error": "Permission Required", "notice": perr.Notice(), "form": form})
	case errors.Is(err, upload.ErrCancelled):
		c.JSON(http.StatusOK, gin.H{"form": form, "cancelled": true})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to attach image"})
	}
}

func (h *UploadHandler) Submit(c *gin.Context) {
	draft := h.uploads.Draft(middleware.UserID(c))

	var submitter upload.Submitter = h.uploads
	if h.submitLimit != nil {
		submitter = limitedSubmitter{c: c, limit: h.submitLimit, next: h.uploads}
	}

	sub, err := draft.Submit(c.Request.Context(), submitter)
	if err != nil {
		var verr *upload.ValidationError
		switch {
		case errors.Is(err, errRateLimited):
			// limiter already responded
		case errors.As(err, &verr):
			validationResponse(c, verr)
		case errors.Is(err, upload.ErrSubmitInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.log.Error().Err(err).Str("user_id", middleware.UserID(c)).Msg("Recipe submission failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to submit recipe"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Recipe uploaded successfully!",
		"submission": sub,
		"form":       draft.Form(),
	})
}

func (h *UploadHandler) ImageURL(c *gin.Context) {
	var req ImageURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content_type is required", "field": "content_type"})
		return
	}

	up, err := h.uploads.ImageUploadURL(c.Request.Context(), middleware.UserID(c), req.ContentType)
	if err != nil {
		if errors.Is(err, upload.ErrStorageDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		h.log.Warn().Err(err).Str("content_type", req.ContentType).Msg("Image upload URL refused")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "content_type"})
		return
	}
	c.JSON(http.StatusOK, up)
}
