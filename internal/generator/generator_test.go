package generator

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/gnzdotmx/captionflow/internal/assemble"
	"github.com/gnzdotmx/captionflow/internal/cascade"
	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/fallback"
	"github.com/gnzdotmx/captionflow/internal/services/llm"
	"github.com/gnzdotmx/captionflow/internal/services/llm/mocks"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, name string) *mocks.MockTextProvider {
	p := mocks.NewMockTextProvider(t)
	p.EXPECT().Name().Return(name).Maybe()
	return p
}

func newGenerator(providers ...llm.TextProvider) *Generator {
	quiet := cascade.ObserverFunc(func(cascade.Event) {})
	return New(
		cascade.New(providers, cascade.WithObserver(quiet)),
		fallback.New(fallback.WithRand(rand.New(rand.NewSource(7)))),
		llm.DefaultParams(),
	)
}

func captionOptions() content.Options {
	return content.Options{
		Topic:           "morning coffee",
		Platform:        content.PlatformInstagram,
		Tone:            "casual",
		Length:          content.LengthShort,
		IncludeHashtags: true,
		IncludeCTA:      false,
	}
}

func postOptions() content.Options {
	return content.Options{
		Topic:           "new espresso blend launch",
		Platform:        content.PlatformFacebook,
		Tone:            "enthusiastic",
		IncludeHashtags: true,
		IncludeCTA:      true,
	}
}

func TestCaptions_Scenario(t *testing.T) {
	p := newProvider(t, "openai")
	p.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "morning coffee") && strings.Contains(prompt, "CAPTION:")
	}), llm.DefaultParams()).Return("CAPTION:\nLoving this morning coffee ritual! #coffee #morning\n", nil)

	out, err := newGenerator(p).Captions(context.Background(), captionOptions(), 1)

	require.NoError(t, err)
	assert.Equal(t, "openai", out.Provider)
	assert.Equal(t, "structured", out.Strategy)
	assert.False(t, out.FallbackUsed)
	require.Len(t, out.Results, 1)
	r := out.Results[0]
	assert.Equal(t, "Loving this morning coffee ritual!", r.Text)
	assert.Equal(t, []string{"coffee", "morning"}, r.Hashtags)
	assert.Equal(t, "", r.CTA)
	assert.Equal(t, len([]rune(r.Text)), r.CharacterCount)
}

func TestCaptions_NoProvidersConfigured(t *testing.T) {
	g := newGenerator()

	_, err := g.Captions(context.Background(), captionOptions(), 3)
	assert.ErrorIs(t, err, content.ErrConfiguration)

	_, err = g.Posts(context.Background(), postOptions())
	assert.ErrorIs(t, err, content.ErrConfiguration)
}

func TestCaptions_FailoverIsInvisible(t *testing.T) {
	a := newProvider(t, "openai")
	b := newProvider(t, "gemini")
	a.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
		Return("", &llm.StatusError{Provider: "openai", StatusCode: 500})
	b.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
		Return("CAPTION:\nFirst caption from gemini here\nCAPTION:\nSecond caption from gemini here\nCAPTION:\nThird caption from gemini here", nil)

	out, err := newGenerator(a, b).Captions(context.Background(), captionOptions(), 2)

	require.NoError(t, err)
	assert.Equal(t, "gemini", out.Provider)
	require.Len(t, out.Results, 2)
	assert.Equal(t, "First caption from gemini here", out.Results[0].Text)
}

func TestCaptions_SurfacesErrors(t *testing.T) {
	t.Run("all providers failed", func(t *testing.T) {
		p := newProvider(t, "groq")
		p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("dial tcp: refused"))

		_, err := newGenerator(p).Captions(context.Background(), captionOptions(), 1)

		assert.ErrorIs(t, err, content.ErrAllProvidersFailed)
	})

	t.Run("parse failure", func(t *testing.T) {
		p := newProvider(t, "groq")
		p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return(strings.Repeat("x", 2500), nil)

		_, err := newGenerator(p).Captions(context.Background(), captionOptions(), 1)

		assert.ErrorIs(t, err, content.ErrParse)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newGenerator(newProvider(t, "groq")).Captions(ctx, captionOptions(), 1)

		assert.ErrorIs(t, err, content.ErrCanceled)
	})

	t.Run("invalid options", func(t *testing.T) {
		opts := captionOptions()
		opts.Platform = content.PlatformFacebook

		_, err := newGenerator(newProvider(t, "groq")).Captions(context.Background(), opts, 1)

		var vErr *utils.ValidationError
		assert.True(t, errors.As(err, &vErr))
	})

	t.Run("count out of range", func(t *testing.T) {
		_, err := newGenerator(newProvider(t, "groq")).Captions(context.Background(), captionOptions(), 0)

		var vErr *utils.ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "count", vErr.Field)
	})
}

func TestCaptions_DropsUnrequestedExtras(t *testing.T) {
	p := newProvider(t, "openai")
	p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
		Return("CAPTION:\nSlow sips and quiet mornings.\nHASHTAGS: #coffee\nCTA: Follow us", nil)

	opts := captionOptions()
	opts.IncludeHashtags = false

	out, err := newGenerator(p).Captions(context.Background(), opts, 1)

	require.NoError(t, err)
	assert.Empty(t, out.Results[0].Hashtags)
	assert.Empty(t, out.Results[0].CTA)
}

func TestPosts_FromProvider(t *testing.T) {
	p := newProvider(t, "openrouter")
	p.EXPECT().Generate(mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "POST:")
	}), mock.Anything).Return(`POST:
Our new espresso blend lands Friday!
HASHTAGS: #espresso #launch
CTA: Pre-order today
POST:
Bold, smooth and roasted in small batches.
CTA: Visit the shop
POST:
Taste the difference this weekend.
CTA: Tag a coffee lover`, nil)

	out, err := newGenerator(p).Posts(context.Background(), postOptions())

	require.NoError(t, err)
	assert.Equal(t, "openrouter", out.Provider)
	assert.False(t, out.FallbackUsed)
	require.Len(t, out.Results, assemble.PostCount)
	assert.Equal(t, "Our new espresso blend lands Friday!", out.Results[0].Text)
	assert.Equal(t, []string{"espresso", "launch"}, out.Results[0].Hashtags)
	assert.Equal(t, "Pre-order today", out.Results[0].CTA)
}

func TestPosts_PadsShortOutput(t *testing.T) {
	p := newProvider(t, "openai")
	p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).
		Return("POST:\nOnly one post came back from the model.", nil)

	out, err := newGenerator(p).Posts(context.Background(), postOptions())

	require.NoError(t, err)
	require.Len(t, out.Results, assemble.PostCount)
	assert.True(t, out.FallbackUsed)
	assert.Equal(t, "Only one post came back from the model.", out.Results[0].Text)
	assert.Contains(t, out.Results[1].Text, "new espresso blend launch")
}

func TestPosts_FallsBackSilently(t *testing.T) {
	t.Run("all providers failed", func(t *testing.T) {
		p := newProvider(t, "gemini")
		p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return("", llm.ErrEmptyResponse)

		out, err := newGenerator(p).Posts(context.Background(), postOptions())

		require.NoError(t, err)
		assert.Equal(t, FallbackProvider, out.Provider)
		assert.True(t, out.FallbackUsed)
		require.Len(t, out.Results, assemble.PostCount)
		for _, r := range out.Results {
			assert.Contains(t, r.Text, "new espresso blend launch")
			assert.NotEmpty(t, r.CTA)
			assert.Contains(t, r.Hashtags, "espresso")
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		p := newProvider(t, "gemini")
		p.EXPECT().Generate(mock.Anything, mock.Anything, mock.Anything).Return(strings.Repeat("y", 2100), nil)

		out, err := newGenerator(p).Posts(context.Background(), postOptions())

		require.NoError(t, err)
		assert.True(t, out.FallbackUsed)
		assert.Len(t, out.Results, assemble.PostCount)
	})
}

func TestPosts_CancellationPropagates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newGenerator(newProvider(t, "openai")).Posts(ctx, postOptions())

	assert.ErrorIs(t, err, content.ErrCanceled)
}

func TestNewFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Groq.APIKey = "groq-key"
	cfg.Providers.OpenAI.APIKey = "sk"

	g, err := NewFromConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, []string{"openai", "groq"}, g.Providers())

	empty, err := NewFromConfig(config.Default())
	require.NoError(t, err)
	assert.Empty(t, empty.Providers())
}
