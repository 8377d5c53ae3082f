package cascade

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gnzdotmx/captionflow/internal/content"
)

// ErrAttemptTimeout marks a provider attempt that exceeded the per-attempt timeout
var ErrAttemptTimeout = errors.New("provider attempt timed out")

// ProviderFailure records why a single provider attempt failed
type ProviderFailure struct {
	Provider string
	Attempt  int
	Err      error
	Elapsed  time.Duration
}

func (f ProviderFailure) Error() string {
	return fmt.Sprintf("%s (attempt %d, %s): %v", f.Provider, f.Attempt, f.Elapsed.Round(time.Millisecond), f.Err)
}

func (f ProviderFailure) Unwrap() error {
	return f.Err
}

// AllFailedError is returned when every configured provider failed. It
// matches content.ErrAllProvidersFailed.
type AllFailedError struct {
	RequestID string
	Failures  []ProviderFailure
}

func (e *AllFailedError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s", content.ErrAllProvidersFailed, strings.Join(parts, "; "))
}

// Is reports whether target is content.ErrAllProvidersFailed
func (e *AllFailedError) Is(target error) bool {
	return target == content.ErrAllProvidersFailed
}

// Unwrap exposes the individual provider failures
func (e *AllFailedError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}

// Providers lists the providers that were attempted, in order
func (e *AllFailedError) Providers() []string {
	names := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		names = append(names, f.Provider)
	}
	return names
}
