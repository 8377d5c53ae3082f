package utils

import (
	"fmt"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// RequireField returns a ValidationError when value is blank
func RequireField(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s is required", field),
		}
	}
	return nil
}

// ValidateChoice checks that value is one of allowed (case-insensitive)
func ValidateChoice(field, value string, allowed []string) error {
	v := strings.ToLower(strings.TrimSpace(value))
	for _, a := range allowed {
		if v == a {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf("unsupported %s %q. Allowed values: %v", field, value, allowed),
	}
}

// ValidateRange checks that n lies within [min, max]
func ValidateRange(field string, n, min, max int) error {
	if n < min || n > max {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, n),
		}
	}
	return nil
}

// ResolveOutputPath resolves ${output} variable in paths
func ResolveOutputPath(path, outputDir string) string {
	if strings.Contains(path, "${output}") {
		return strings.ReplaceAll(path, "${output}", outputDir)
	}
	return path
}
