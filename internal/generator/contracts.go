package generator

import (
	"context"

	"github.com/gnzdotmx/captionflow/internal/cascade"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/services/llm"
)

// Cascader is the provider cascade used by the generator
type Cascader interface {
	Generate(ctx context.Context, prompt string, params llm.Params) (cascade.Response, error)
	Providers() []string
}

// Servicer defines the generation operations exposed to modules, the CLI
// and the HTTP API
type Servicer interface {
	// Captions generates up to count captions and surfaces every error
	Captions(ctx context.Context, opts content.Options, count int) (Output, error)

	// Posts generates exactly three posts, degrading to templates when the
	// providers fail or their output cannot be parsed
	Posts(ctx context.Context, opts content.Options) (Output, error)

	// Providers lists the configured providers in cascade order
	Providers() []string
}

// Ensure Generator implements Servicer
var _ Servicer = (*Generator)(nil)

// Ensure the cascade controller satisfies Cascader
var _ Cascader = (*cascade.Controller)(nil)
