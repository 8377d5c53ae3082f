// Package llm wraps the remote text generation providers behind a single
// TextProvider capability.
package llm

import (
	"errors"
	"fmt"
	"time"
)

// Provider identifiers, in default priority order
const (
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderGroq       = "groq"
	ProviderOpenRouter = "openrouter"
)

// DefaultOrder is the cascade order: premium provider first, free tiers after
var DefaultOrder = []string{ProviderOpenAI, ProviderGemini, ProviderGroq, ProviderOpenRouter}

// ErrEmptyResponse is returned when a provider answers without usable text
var ErrEmptyResponse = errors.New("provider returned an empty response")

// Params are the generation parameters sent with every request
type Params struct {
	Temperature float64 `json:"temperature" yaml:"temperature" mapstructure:"temperature"`
	MaxTokens   int     `json:"maxTokens" yaml:"maxTokens" mapstructure:"max_tokens"`
	TopP        float64 `json:"topP" yaml:"topP" mapstructure:"top_p"`
}

// DefaultParams returns the parameters used when none are configured
func DefaultParams() Params {
	return Params{
		Temperature: 0.8,
		MaxTokens:   1000,
		TopP:        0.9,
	}
}

// Settings configures a single provider client
type Settings struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// StatusError is a non-2xx answer from a provider
type StatusError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s returned status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s returned status %d", e.Provider, e.StatusCode)
}

// New creates the provider registered under name
func New(name string, s Settings) (TextProvider, error) {
	if s.APIKey == "" {
		return nil, fmt.Errorf("%s: api key is required", name)
	}

	switch name {
	case ProviderOpenAI:
		return NewOpenAIProvider(s), nil
	case ProviderGemini:
		return NewGeminiProvider(s), nil
	case ProviderGroq:
		return NewGroqProvider(s), nil
	case ProviderOpenRouter:
		return NewOpenRouterProvider(s), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", name)
	}
}
