package upload

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrSubmitInProgress is returned when a submission is already running
var ErrSubmitInProgress = errors.New("submission already in progress")

// Submitter accepts validated forms
type Submitter interface {
	Submit(ctx context.Context, userID string, form Form) (*Submission, error)
}

// Draft is one user's form state
type Draft struct {
	userID string

	mu         sync.Mutex
	form       Form
	submitting bool
}

// NewDraft returns an empty draft for userID
func NewDraft(userID string) *Draft {
	return &Draft{userID: userID}
}

// Form returns a copy of the form
func (d *Draft) Form() Form {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.form
}

// Submitting reports whether a submission is running
func (d *Draft) Submitting() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.submitting
}

// Update sets one field
func (d *Draft) Update(field Field, value string) (Form, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	next := d.form
	if err := next.Set(field, value); err != nil {
		return d.form, err
	}
	d.form = next
	return d.form, nil
}

// AttachImage asks picker for an image from source. On denial or cancel the
// form is left unchanged and the error is returned.
func (d *Draft) AttachImage(ctx context.Context, picker Picker, source Source) (Form, error) {
	var (
		uri string
		err error
	)
	switch source {
	case SourceCamera:
		uri, err = picker.TakePhoto(ctx)
	case SourceLibrary:
		uri, err = picker.PickImage(ctx)
	default:
		err = fmt.Errorf("unknown image source %q", source)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if err != nil {
		return d.form, err
	}
	d.form.ImageURI = uri
	return d.form, nil
}

// Submit validates the form and hands it to s. A validation or submit error
// leaves the form untouched; success resets it.
func (d *Draft) Submit(ctx context.Context, s Submitter) (*Submission, error) {
	d.mu.Lock()
	if d.submitting {
		d.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	form := d.form
	if err := Validate(form); err != nil {
		d.mu.Unlock()
		return nil, err
	}
	d.submitting = true
	d.mu.Unlock()

	sub, err := s.Submit(ctx, d.userID, form)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
	if err != nil {
		return nil, err
	}
	d.form = Form{}
	return sub, nil
}
