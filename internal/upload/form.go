// Package upload implements the recipe upload form: field editing, image
// attachment through a media picker, validation and submission.
package upload

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 200
)

// Field names a form field
type Field string

const (
	FieldTitle        Field = "title"
	FieldDescription  Field = "description"
	FieldIngredients  Field = "ingredients"
	FieldInstructions Field = "instructions"
	FieldImage        Field = "image"
)

// Form is the upload form contents
type Form struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	ImageURI     string `json:"image,omitempty"`
}

// ValidationError describes the first field that failed validation
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Set assigns value to field. Unknown fields are reported as a ValidationError.
func (f *Form) Set(field Field, value string) error {
	switch field {
	case FieldTitle:
		f.Title = value
	case FieldDescription:
		f.Description = value
	case FieldIngredients:
		f.Ingredients = value
	case FieldInstructions:
		f.Instructions = value
	case FieldImage:
		f.ImageURI = value
	default:
		return &ValidationError{Field: field, Message: "Unknown field"}
	}
	return nil
}

// Validate checks required fields in display order and the length limits
func Validate(f Form) error {
	required := []struct {
		field   Field
		value   string
		message string
	}{
		{FieldTitle, f.Title, "Please enter a recipe title"},
		{FieldDescription, f.Description, "Please enter a description"},
		{FieldIngredients, f.Ingredients, "Please enter ingredients"},
		{FieldInstructions, f.Instructions, "Please enter cooking instructions"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}

	if utf8.RuneCountInString(f.Title) > MaxTitleLength {
		return &ValidationError{
			Field:   FieldTitle,
			Message: fmt.Sprintf("Title must be at most %d characters", MaxTitleLength),
		}
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionLength {
		return &ValidationError{
			Field:   FieldDescription,
			Message: fmt.Sprintf("Description must be at most %d characters", MaxDescriptionLength),
		}
	}
	return nil
}
