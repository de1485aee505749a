package upload

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrPermissionDenied = errors.New("media permission denied")
	ErrCancelled        = errors.New("image selection cancelled")
)

// Source selects where an image comes from
type Source string

const (
	SourceLibrary Source = "library"
	SourceCamera  Source = "camera"
)

// ParseSource validates a source name
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceLibrary, SourceCamera:
		return Source(s), nil
	}
	return "", fmt.Errorf("unknown image source %q", s)
}

// Notice is the message shown to the user when permission for source is denied
func (s Source) Notice() string {
	if s == SourceCamera {
		return "Permission to access camera is required!"
	}
	return "Permission to access camera roll is required!"
}

// PermissionError reports a denied media permission
type PermissionError struct {
	Source Source
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s: %s", ErrPermissionDenied, e.Source)
}

func (e *PermissionError) Unwrap() error { return ErrPermissionDenied }

// Notice returns the user-facing message
func (e *PermissionError) Notice() string { return e.Source.Notice() }

// Picker is the platform media picker capability
type Picker interface {
	PickImage(ctx context.Context) (string, error)
	TakePhoto(ctx context.Context) (string, error)
}

// PickerResult is a picker outcome reported by the client device, which owns
// the permission prompt and the camera
type PickerResult struct {
	Granted   bool   `json:"granted"`
	Cancelled bool   `json:"cancelled"`
	URI       string `json:"uri"`
}

var _ Picker = PickerResult{}

func (r PickerResult) PickImage(ctx context.Context) (string, error) {
	return r.pick(ctx, SourceLibrary)
}

func (r PickerResult) TakePhoto(ctx context.Context) (string, error) {
	return r.pick(ctx, SourceCamera)
}

func (r PickerResult) pick(ctx context.Context, source Source) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !r.Granted {
		return "", &PermissionError{Source: source}
	}
	if r.Cancelled || r.URI == "" {
		return "", ErrCancelled
	}
	return r.URI, nil
}
