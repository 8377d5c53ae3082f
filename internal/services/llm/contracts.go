package llm

import (
	"context"
)

// TextProvider is one remote text generation endpoint. Implementations
// handle their own request and response shapes and return plain text.
type TextProvider interface {
	// Name returns the provider identifier used in logs and errors
	Name() string

	// Generate sends prompt as a single user message and returns the generated text
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Ensure every provider implements TextProvider
var (
	_ TextProvider = (*OpenAIProvider)(nil)
	_ TextProvider = (*GeminiProvider)(nil)
	_ TextProvider = (*ChatProvider)(nil)
)
