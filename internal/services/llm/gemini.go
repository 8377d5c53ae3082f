package llm

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

const (
	// DefaultGeminiModel is used when no model is configured
	DefaultGeminiModel = "gemini-1.5-flash"
	// DefaultGeminiBaseURL is the Generative Language API root
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// GeminiProvider calls the Gemini generateContent REST endpoint
type GeminiProvider struct {
	apiKey string
	model  string
	client *resty.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

// NewGeminiProvider creates a Gemini provider
func NewGeminiProvider(s Settings) *GeminiProvider {
	model := s.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	baseURL := s.BaseURL
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if s.Timeout > 0 {
		client.SetTimeout(s.Timeout)
	}

	return &GeminiProvider{apiKey: s.APIKey, model: model, client: client}
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return ProviderGemini
}

// Generate sends a generateContent request
func (p *GeminiProvider) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	body := geminiRequest{
		Contents: []geminiContent{
			{Role: "user", Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     params.Temperature,
			MaxOutputTokens: params.MaxTokens,
			TopP:            params.TopP,
		},
	}

	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("x-goog-api-key", p.apiKey).
		SetBody(body).
		Post(fmt.Sprintf("/models/%s:generateContent", p.model))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	if resp.IsError() {
		return "", &StatusError{
			Provider:   ProviderGemini,
			StatusCode: resp.StatusCode(),
			Message:    ExtractErrorMessage(resp.Body()),
		}
	}

	return ExtractText(resp.Body())
}
