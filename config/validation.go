package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a single configuration problem
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigurationError blocks startup: the application serves an error page
// instead of its screens until the problems are fixed.
type ConfigurationError struct {
	Problems []ValidationError
}

func (e *ConfigurationError) Error() string {
	msgs := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		msgs[i] = p.Error()
	}
	return "configuration validation failed:\n" + strings.Join(msgs, "\n")
}

// MissingCredential reports whether an identity credential is among the problems
func (e *ConfigurationError) MissingCredential() bool {
	for _, p := range e.Problems {
		if p.Field == "IDENTITY_PUBLISHABLE_KEY" || p.Field == "IDENTITY_SECRET" {
			return true
		}
	}
	return false
}

// ValidateConfig checks the configuration and collects every problem found
func ValidateConfig(cfg *Config) error {
	var problems []ValidationError

	if cfg.IdentityPublishableKey == "" {
		problems = append(problems, ValidationError{
			Field:   "IDENTITY_PUBLISHABLE_KEY",
			Message: "identity provider publishable key is missing",
		})
	}
	if cfg.IdentitySecret == "" {
		problems = append(problems, ValidationError{
			Field:   "IDENTITY_SECRET",
			Message: "identity provider signing secret is missing",
		})
	}

	switch cfg.SearchBackend {
	case "mock", "catalog":
	default:
		problems = append(problems, ValidationError{
			Field:   "SEARCH_BACKEND",
			Message: fmt.Sprintf("unsupported search backend %q", cfg.SearchBackend),
		})
	}

	if cfg.SearchDelay < 0 {
		problems = append(problems, ValidationError{Field: "SEARCH_DELAY", Message: "must not be negative"})
	}
	if cfg.UploadRateLimit <= 0 {
		problems = append(problems, ValidationError{Field: "UPLOAD_RATE_LIMIT", Message: "must be positive"})
	}
	if cfg.UploadRateWindow <= 0 {
		problems = append(problems, ValidationError{Field: "UPLOAD_RATE_WINDOW", Message: "must be positive"})
	}

	if len(problems) > 0 {
		return &ConfigurationError{Problems: problems}
	}
	return nil
}
