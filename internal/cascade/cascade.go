// Package cascade tries text generation providers one after another in
// priority order and returns the first non-empty answer.
package cascade

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/services/llm"
	"github.com/google/uuid"
)

// DefaultAttemptTimeout bounds a single provider attempt
const DefaultAttemptTimeout = 20 * time.Second

// Response is the text returned by the winning provider
type Response struct {
	RequestID string
	Provider  string
	Text      string
	Attempts  int
}

// Controller runs the provider cascade. It holds no per-call state and is
// safe for concurrent use.
type Controller struct {
	providers []llm.TextProvider
	timeout   time.Duration
	observer  Observer
}

// Option customizes a Controller
type Option func(*Controller)

// WithAttemptTimeout sets the per-attempt timeout
func WithAttemptTimeout(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithObserver sets the attempt observer
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// New creates a controller over providers, which must already be in
// priority order and limited to the configured ones.
func New(providers []llm.TextProvider, opts ...Option) *Controller {
	c := &Controller{
		providers: providers,
		timeout:   DefaultAttemptTimeout,
		observer:  NewLogObserver(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Providers returns the provider names in cascade order
func (c *Controller) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Generate sends prompt to each provider in turn until one returns text.
// Individual failures are reported to the observer and never surfaced
// unless every provider fails.
func (c *Controller) Generate(ctx context.Context, prompt string, params llm.Params) (Response, error) {
	if len(c.providers) == 0 {
		return Response{}, content.ErrConfiguration
	}
	if err := ctx.Err(); err != nil {
		return Response{}, fmt.Errorf("%w: %w", content.ErrCanceled, err)
	}

	requestID := uuid.NewString()
	failures := make([]ProviderFailure, 0, len(c.providers))

	for i, p := range c.providers {
		attempt := i + 1
		c.observer.Observe(Event{RequestID: requestID, Provider: p.Name(), Attempt: attempt, Stage: StageStarted})

		start := time.Now()
		text, err := c.attempt(ctx, p, prompt, params)
		elapsed := time.Since(start)

		// Caller gave up: skip the remaining providers
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.observer.Observe(Event{RequestID: requestID, Provider: p.Name(), Attempt: attempt, Stage: StageFailed, Err: ctxErr, Elapsed: elapsed})
			return Response{}, fmt.Errorf("%w: %w", content.ErrCanceled, ctxErr)
		}

		if err == nil && strings.TrimSpace(text) == "" {
			err = llm.ErrEmptyResponse
		}
		if err != nil {
			failures = append(failures, ProviderFailure{Provider: p.Name(), Attempt: attempt, Err: err, Elapsed: elapsed})
			c.observer.Observe(Event{RequestID: requestID, Provider: p.Name(), Attempt: attempt, Stage: StageFailed, Err: err, Elapsed: elapsed})
			continue
		}

		c.observer.Observe(Event{RequestID: requestID, Provider: p.Name(), Attempt: attempt, Stage: StageSucceeded, Elapsed: elapsed})
		return Response{RequestID: requestID, Provider: p.Name(), Text: text, Attempts: attempt}, nil
	}

	return Response{}, &AllFailedError{RequestID: requestID, Failures: failures}
}

func (c *Controller) attempt(ctx context.Context, p llm.TextProvider, prompt string, params llm.Params) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := p.Generate(attemptCtx, prompt, params)
	if err != nil && errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
		return "", fmt.Errorf("%w after %s: %w", ErrAttemptTimeout, c.timeout, err)
	}
	return text, err
}
