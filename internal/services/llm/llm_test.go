package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr error
	}{
		{
			name: "chat completion shape",
			body: `{"choices":[{"message":{"role":"assistant","content":"CAPTION:\nhello"}}]}`,
			want: "CAPTION:\nhello",
		},
		{
			name: "gemini candidates shape",
			body: `{"candidates":[{"content":{"parts":[{"text":"part one "},{"text":"part two"}]}}]}`,
			want: "part one part two",
		},
		{
			name: "text generation array shape",
			body: `[{"generated_text":"from inference"}]`,
			want: "from inference",
		},
		{
			name:    "empty content",
			body:    `{"choices":[{"message":{"content":"   "}}]}`,
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "no known path",
			body:    `{"id":"abc"}`,
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "not json",
			body:    `<html>bad gateway</html>`,
			wantErr: ErrMalformedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractText([]byte(tt.body))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractErrorMessage(t *testing.T) {
	assert.Equal(t, "quota exceeded", ExtractErrorMessage([]byte(`{"error":{"message":"quota exceeded"}}`)))
	assert.Equal(t, "bad key", ExtractErrorMessage([]byte(`{"error":"bad key"}`)))
	assert.Equal(t, "plain failure", ExtractErrorMessage([]byte("plain failure")))
}

func TestChatProvider_Generate(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"CAPTION:\nfrom groq"}}]}`))
	}))
	defer server.Close()

	p := NewGroqProvider(Settings{APIKey: "groq-key", BaseURL: server.URL})
	text, err := p.Generate(context.Background(), "write a caption", Params{Temperature: 0.7, MaxTokens: 200, TopP: 0.9})

	require.NoError(t, err)
	assert.Equal(t, "CAPTION:\nfrom groq", text)
	assert.Equal(t, ProviderGroq, p.Name())
	assert.Equal(t, DefaultGroqModel, got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "write a caption", got.Messages[0].Content)
	assert.Equal(t, 200, got.MaxTokens)
}

func TestChatProvider_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	p := NewOpenRouterProvider(Settings{APIKey: "k", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), "prompt", DefaultParams())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, ProviderOpenRouter, statusErr.Provider)
	assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	assert.Equal(t, "rate limited", statusErr.Message)
}

func TestChatProvider_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p := NewGroqProvider(Settings{APIKey: "k", BaseURL: server.URL})
	_, err := p.Generate(ctx, "prompt", DefaultParams())

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestGeminiProvider_Generate(t *testing.T) {
	var got geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-1.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "gem-key", r.Header.Get("x-goog-api-key"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"CAPTION:\nfrom gemini"}]}}]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(Settings{APIKey: "gem-key", BaseURL: server.URL})
	text, err := p.Generate(context.Background(), "prompt", Params{MaxTokens: 300})

	require.NoError(t, err)
	assert.Equal(t, "CAPTION:\nfrom gemini", text)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "prompt", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 300, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiProvider_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider(Settings{APIKey: "k", BaseURL: server.URL})
	_, err := p.Generate(context.Background(), "prompt", DefaultParams())

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestOpenAIProvider_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"))
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"CAPTION:\nfrom openai"}}]}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Settings{APIKey: "sk-test", BaseURL: server.URL + "/"})
	text, err := p.Generate(context.Background(), "prompt", DefaultParams())

	require.NoError(t, err)
	assert.Equal(t, "CAPTION:\nfrom openai", text)
	assert.Equal(t, ProviderOpenAI, p.Name())
}

func TestOpenAIProvider_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer server.Close()

	p := NewOpenAIProvider(Settings{APIKey: "sk-test", BaseURL: server.URL + "/"})
	_, err := p.Generate(context.Background(), "prompt", DefaultParams())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestNew(t *testing.T) {
	for _, name := range DefaultOrder {
		p, err := New(name, Settings{APIKey: "key"})
		require.NoError(t, err)
		assert.Equal(t, name, p.Name())
	}

	_, err := New(ProviderOpenAI, Settings{})
	assert.Error(t, err)

	_, err = New("mistral", Settings{APIKey: "key"})
	assert.Error(t, err)
}
