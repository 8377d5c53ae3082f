package content

import "errors"

// Error kinds surfaced by the pipeline. Callers match them with errors.Is.
var (
	// ErrConfiguration means no provider credential is configured at all
	ErrConfiguration = errors.New("no AI provider is configured: set at least one of OPENAI_API_KEY, GEMINI_API_KEY, GROQ_API_KEY or OPENROUTER_API_KEY")

	// ErrAllProvidersFailed means every configured provider was attempted and failed
	ErrAllProvidersFailed = errors.New("all AI providers failed")

	// ErrParse means text was obtained but no parser strategy produced a result
	ErrParse = errors.New("could not parse AI response")

	// ErrCanceled means the caller aborted the generation
	ErrCanceled = errors.New("generation canceled")
)
