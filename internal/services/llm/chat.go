package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	DefaultGroqModel   = "llama-3.1-8b-instant"

	DefaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
	DefaultOpenRouterModel   = "meta-llama/llama-3.1-8b-instruct:free"
)

// ChatProvider calls an OpenAI compatible chat completions endpoint over
// plain REST. Groq and OpenRouter both speak this dialect.
type ChatProvider struct {
	name   string
	apiKey string
	model  string
	client *resty.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
}

// NewChatProvider creates a provider for any OpenAI compatible endpoint
func NewChatProvider(name string, s Settings) *ChatProvider {
	client := resty.New().
		SetBaseURL(s.BaseURL).
		SetHeader("Content-Type", "application/json")
	if s.Timeout > 0 {
		client.SetTimeout(s.Timeout)
	}

	return &ChatProvider{
		name:   name,
		apiKey: s.APIKey,
		model:  s.Model,
		client: client,
	}
}

// NewGroqProvider creates a Groq provider
func NewGroqProvider(s Settings) *ChatProvider {
	if s.BaseURL == "" {
		s.BaseURL = DefaultGroqBaseURL
	}
	if s.Model == "" {
		s.Model = DefaultGroqModel
	}
	return NewChatProvider(ProviderGroq, s)
}

// NewOpenRouterProvider creates an OpenRouter provider
func NewOpenRouterProvider(s Settings) *ChatProvider {
	if s.BaseURL == "" {
		s.BaseURL = DefaultOpenRouterBaseURL
	}
	if s.Model == "" {
		s.Model = DefaultOpenRouterModel
	}
	p := NewChatProvider(ProviderOpenRouter, s)
	p.client.SetHeader("X-Title", "captionflow")
	return p
}

// Name returns the provider name
func (p *ChatProvider) Name() string {
	return p.name
}

// Generate sends a chat completion request
func (p *ChatProvider) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	body := chatRequest{
		Model:       p.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
		TopP:        params.TopP,
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetAuthToken(p.apiKey).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("%s request failed: %w", p.name, err)
	}

	if resp.IsError() {
		return "", &StatusError{
			Provider:   p.name,
			StatusCode: resp.StatusCode(),
			Message:    ExtractErrorMessage(resp.Body()),
		}
	}

	return ExtractText(resp.Body())
}
