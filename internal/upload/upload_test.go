package upload

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSigner struct {
	mock.Mock
}

func (m *mockSigner) PresignUpload(ctx context.Context, objectKey, contentType string, expiration time.Duration) (string, error) {
	args := m.Called(ctx, objectKey, contentType, expiration)
	return args.String(0), args.Error(1)
}

func (m *mockSigner) PublicURL(objectKey string) string {
	return "https://bucket.example/" + objectKey
}

func completeForm() Form {
	return Form{
		Title:        "Pepper Soup",
		Description:  "Spicy and warming",
		Ingredients:  "goat meat\npepper soup spice",
		Instructions: "1. Boil\n2. Season",
	}
}

func TestValidateRequiredFieldsInOrder(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Form)
		field   Field
		message string
	}{
		{"title", func(f *Form) { f.Title = "  " }, FieldTitle, "Please enter a recipe title"},
		{"description", func(f *Form) { f.Description = "" }, FieldDescription, "Please enter a description"},
		{"ingredients", func(f *Form) { f.Ingredients = "\n" }, FieldIngredients, "Please enter ingredients"},
		{"instructions", func(f *Form) { f.Instructions = "" }, FieldInstructions, "Please enter cooking instructions"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := completeForm()
			tc.mutate(&f)

			var verr *ValidationError
			require.ErrorAs(t, Validate(f), &verr)
			assert.Equal(t, tc.field, verr.Field)
			assert.Equal(t, tc.message, verr.Message)
		})
	}

	var verr *ValidationError
	require.ErrorAs(t, Validate(Form{}), &verr)
	assert.Equal(t, FieldTitle, verr.Field)
	assert.NoError(t, Validate(completeForm()))
}

func TestValidateLengthLimits(t *testing.T) {
	f := completeForm()
	f.Title = strings.Repeat("é", MaxTitleLength)
	assert.NoError(t, Validate(f))

	f.Title += "x"
	var verr *ValidationError
	require.ErrorAs(t, Validate(f), &verr)
	assert.Equal(t, FieldTitle, verr.Field)

	f = completeForm()
	f.Description = strings.Repeat("d", MaxDescriptionLength+1)
	require.ErrorAs(t, Validate(f), &verr)
	assert.Equal(t, FieldDescription, verr.Field)
}

func TestDraftUpdate(t *testing.T) {
	d := NewDraft("u1")

	form, err := d.Update(FieldTitle, "Suya")
	require.NoError(t, err)
	assert.Equal(t, "Suya", form.Title)

	_, err = d.Update(Field("servings"), "4")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Suya", d.Form().Title)
}

func TestAttachImage(t *testing.T) {
	ctx := context.Background()
	d := NewDraft("u1")

	form, err := d.AttachImage(ctx, PickerResult{Granted: true, URI: "file:///a.jpg"}, SourceLibrary)
	require.NoError(t, err)
	assert.Equal(t, "file:///a.jpg", form.ImageURI)

	_, err = d.AttachImage(ctx, PickerResult{Granted: false}, SourceCamera)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	var perr *PermissionError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Permission to access camera is required!", perr.Notice())
	assert.Equal(t, "file:///a.jpg", d.Form().ImageURI)

	_, err = d.AttachImage(ctx, PickerResult{Granted: false}, SourceLibrary)
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "Permission to access camera roll is required!", perr.Notice())

	_, err = d.AttachImage(ctx, PickerResult{Granted: true, Cancelled: true}, SourceCamera)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Equal(t, "file:///a.jpg", d.Form().ImageURI)
}

func TestDraftSubmit(t *testing.T) {
	ctx := context.Background()
	svc := NewService(zerolog.Nop(), nil)
	d := svc.Draft("u1")

	_, err := d.Update(FieldTitle, "Suya")
	require.NoError(t, err)

	_, err = d.Submit(ctx, svc)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldDescription, verr.Field)
	assert.Equal(t, "Suya", d.Form().Title)
	assert.Empty(t, svc.Submissions("u1"))

	f := completeForm()
	for field, v := range map[Field]string{
		FieldTitle:        f.Title,
		FieldDescription:  f.Description,
		FieldIngredients:  f.Ingredients,
		FieldInstructions: f.Instructions,
	} {
		_, err = d.Update(field, v)
		require.NoError(t, err)
	}

	sub, err := d.Submit(ctx, svc)
	require.NoError(t, err)
	assert.NotEmpty(t, sub.ID)
	assert.Equal(t, "Pepper Soup", sub.Form.Title)
	assert.Equal(t, Form{}, d.Form())
	assert.Len(t, svc.Submissions("u1"), 1)
}

type failingSubmitter struct{}

func (failingSubmitter) Submit(context.Context, string, Form) (*Submission, error) {
	return nil, errors.New("unavailable")
}

func TestDraftSubmitFailureKeepsForm(t *testing.T) {
	d := NewDraft("u1")
	d.form = completeForm()

	_, err := d.Submit(context.Background(), failingSubmitter{})
	assert.Error(t, err)
	assert.Equal(t, completeForm(), d.Form())
	assert.False(t, d.Submitting())
}

func TestServiceDropForgetsUser(t *testing.T) {
	svc := NewService(zerolog.Nop(), nil)
	d := svc.Draft("u1")
	_, err := svc.Submit(context.Background(), "u1", completeForm())
	require.NoError(t, err)

	svc.Drop("u1")
	assert.Empty(t, svc.Submissions("u1"))
	assert.NotSame(t, d, svc.Draft("u1"))
}

func TestImageUploadURL(t *testing.T) {
	ctx := context.Background()

	_, err := NewService(zerolog.Nop(), nil).ImageUploadURL(ctx, "u1", "image/png")
	assert.ErrorIs(t, err, ErrStorageDisabled)

	signer := new(mockSigner)
	signer.On("PresignUpload", ctx, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "uploads/u1/") && strings.HasSuffix(key, ".png")
	}), "image/png", DefaultUploadURLExpiry).Return("https://signed.example/put", nil)

	svc := NewService(zerolog.Nop(), signer)
	up, err := svc.ImageUploadURL(ctx, "u1", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://signed.example/put", up.UploadURL)
	assert.True(t, strings.HasPrefix(up.ImageURL, "https://bucket.example/uploads/u1/"))
	signer.AssertExpectations(t)

	_, err = svc.ImageUploadURL(ctx, "u1", "application/pdf")
	assert.Error(t, err)
}

func TestParseSource(t *testing.T) {
	s, err := ParseSource("camera")
	require.NoError(t, err)
	assert.Equal(t, SourceCamera, s)

	_, err = ParseSource("gallery")
	assert.Error(t, err)
}
