package upload

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrStorageDisabled is returned when no image storage is configured
var ErrStorageDisabled = errors.New("image storage is not configured")

// DefaultUploadURLExpiry bounds how long a presigned image URL stays valid
const DefaultUploadURLExpiry = 15 * time.Minute

// ImageSigner issues direct-upload URLs for picked images
type ImageSigner interface {
	PresignUpload(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error)
	PublicURL(objectKey string) string
}

// Submission is an accepted recipe upload
type Submission struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Form        Form      `json:"recipe"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ImageUpload tells the client where to PUT an image and where it will live
type ImageUpload struct {
	UploadURL string    `json:"upload_url"`
	ImageURL  string    `json:"image_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Service keeps drafts and authored recipes per user
type Service struct {
	log    zerolog.Logger
	signer ImageSigner
	now    func() time.Time

	mu       sync.Mutex
	drafts   map[string]*Draft
	authored map[string][]Submission
}

var _ Submitter = (*Service)(nil)

// NewService creates an upload service. signer may be nil.
func NewService(log zerolog.Logger, signer ImageSigner) *Service {
	return &Service{
		log:      log,
		signer:   signer,
		now:      time.Now,
		drafts:   make(map[string]*Draft),
		authored: make(map[string][]Submission),
	}
}

// Draft returns the user's draft, creating an empty one on first use
func (s *Service) Draft(userID string) *Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.drafts[userID]
	if !ok {
		d = NewDraft(userID)
		s.drafts[userID] = d
	}
	return d
}

// Drop forgets the user's draft and authored list
func (s *Service) Drop(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
	delete(s.authored, userID)
}

// Submit validates and records a recipe upload
func (s *Service) Submit(ctx context.Context, userID string, form Form) (*Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := Validate(form); err != nil {
		return nil, err
	}

	sub := Submission{
		ID:          uuid.New().String(),
		UserID:      userID,
		Form:        form,
		SubmittedAt: s.now(),
	}

	s.mu.Lock()
	s.authored[userID] = append(s.authored[userID], sub)
	s.mu.Unlock()

	s.log.Info().
		Str("submission_id", sub.ID).
		Str("user_id", userID).
		Str("title", form.Title).
		Str("description", form.Description).
		Str("ingredients", form.Ingredients).
		Str("instructions", form.Instructions).
		Str("image_uri", form.ImageURI).
		Msg("Recipe submitted")

	return &sub, nil
}

// Submissions returns the recipes userID has uploaded, oldest first
func (s *Service) Submissions(userID string) []Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Submission(nil), s.authored[userID]...)
}

// ImageUploadURL returns a presigned URL the client can PUT an image to
func (s *Service) ImageUploadURL(ctx context.Context, userID, contentType string) (*ImageUpload, error) {
	if s.signer == nil {
		return nil, ErrStorageDisabled
	}

	ext, err := imageExtension(contentType)
	if err != nil {
		return nil, err
	}
	key := path.Join("uploads", userID, uuid.New().String()+ext)

	url, err := s.signer.PresignUpload(ctx, key, contentType, DefaultUploadURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign image upload: %w", err)
	}

	return &ImageUpload{
		UploadURL: url,
		ImageURL:  s.signer.PublicURL(key),
		ExpiresAt: s.now().Add(DefaultUploadURLExpiry),
	}, nil
}

func imageExtension(contentType string) (string, error) {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/jpg":
		return ".jpg", nil
	case "image/png":
		return ".png", nil
	case "image/heic":
		return ".heic", nil
	case "image/webp":
		return ".webp", nil
	}
	return "", fmt.Errorf("unsupported image content type %q", contentType)
}
