package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// DefaultOpenAIModel is used when no model is configured
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider calls the OpenAI chat completions API through the official SDK
type OpenAIProvider struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIProvider creates an OpenAI provider
func NewOpenAIProvider(s Settings) *OpenAIProvider {
	model := s.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	// Failover is handled by the cascade, not by SDK retries
	opts := []option.RequestOption{
		option.WithAPIKey(s.APIKey),
		option.WithMaxRetries(0),
	}
	if s.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(s.BaseURL))
	}
	if s.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(s.Timeout))
	}

	return &OpenAIProvider{model: model, opts: opts}
}

// Name returns the provider name
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// Generate sends a chat completion request
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string, params Params) (string, error) {
	client := openai.NewClient(p.opts...)

	req := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}
	if params.Temperature > 0 {
		req.Temperature = openai.Float(params.Temperature)
	}
	if params.MaxTokens > 0 {
		req.MaxTokens = openai.Int(int64(params.MaxTokens))
	}
	if params.TopP > 0 {
		req.TopP = openai.Float(params.TopP)
	}

	resp, err := client.Chat.Completions.New(ctx, req)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: ProviderOpenAI, StatusCode: apiErr.StatusCode, Message: err.Error()}
		}
		return "", fmt.Errorf("openai request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return nonEmpty(resp.Choices[0].Message.Content)
}
