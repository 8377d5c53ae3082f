// Package generator runs the caption and post pipelines: prompt, provider
// cascade, parser chain and assembly, with the template fallback for posts.
package generator

import (
	"context"
	"errors"
	"fmt"

	"github.com/gnzdotmx/captionflow/internal/assemble"
	"github.com/gnzdotmx/captionflow/internal/cascade"
	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/fallback"
	"github.com/gnzdotmx/captionflow/internal/parser"
	"github.com/gnzdotmx/captionflow/internal/prompt"
	"github.com/gnzdotmx/captionflow/internal/services/llm"
	"github.com/gnzdotmx/captionflow/internal/utils"
)

// MaxCaptions bounds the number of captions per request
const MaxCaptions = 10

// FallbackProvider is reported as the provider when templates were used
const FallbackProvider = "fallback"

// Output is the outcome of one generation call
type Output struct {
	RequestID    string           `json:"requestId,omitempty" yaml:"requestId,omitempty"`
	Provider     string           `json:"provider" yaml:"provider"`
	Strategy     string           `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	FallbackUsed bool             `json:"fallbackUsed" yaml:"fallbackUsed"`
	Results      []content.Result `json:"results" yaml:"results"`
}

// Generator is stateless across calls and safe for concurrent use
type Generator struct {
	cascade  Cascader
	fallback *fallback.Generator
	params   llm.Params
}

// New creates a generator over an existing cascade
func New(c Cascader, fb *fallback.Generator, params llm.Params) *Generator {
	if fb == nil {
		fb = fallback.New()
	}
	return &Generator{cascade: c, fallback: fb, params: params}
}

// NewFromConfig builds the provider clients and cascade described by cfg.
// Providers without a credential are left out; with none configured the
// generator still builds and every remote call reports content.ErrConfiguration.
func NewFromConfig(cfg *config.Config, opts ...cascade.Option) (*Generator, error) {
	var providers []llm.TextProvider
	for _, name := range cfg.ConfiguredProviders() {
		p, err := llm.New(name, cfg.ProviderSettings(name))
		if err != nil {
			return nil, fmt.Errorf("failed to create provider %s: %w", name, err)
		}
		providers = append(providers, p)
	}

	opts = append([]cascade.Option{cascade.WithAttemptTimeout(cfg.Cascade.AttemptTimeout)}, opts...)
	return New(cascade.New(providers, opts...), fallback.New(), cfg.Params()), nil
}

// Providers lists the configured providers in cascade order
func (g *Generator) Providers() []string {
	return g.cascade.Providers()
}

// Captions generates up to count captions for opts
func (g *Generator) Captions(ctx context.Context, opts content.Options, count int) (Output, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(content.KindCaption); err != nil {
		return Output{}, err
	}
	if err := utils.ValidateRange("count", count, 1, MaxCaptions); err != nil {
		return Output{}, err
	}

	text := prompt.BuildCaptionPrompt(opts.Topic, opts, count)
	utils.LogDebug("Caption prompt:\n%s", text)

	resp, err := g.cascade.Generate(ctx, text, g.params)
	if err != nil {
		return Output{}, fmt.Errorf("caption generation failed: %w", err)
	}

	parsed, err := parser.ForCaptions(opts.IncludeCTA).Parse(resp.Text)
	if err != nil {
		return Output{}, fmt.Errorf("caption generation failed: %w", err)
	}
	utils.LogVerbose("Parsed %d captions from %s with the %s strategy", len(parsed.Results), resp.Provider, parsed.Strategy)

	return Output{
		RequestID: resp.RequestID,
		Provider:  resp.Provider,
		Strategy:  parsed.Strategy,
		Results:   assemble.Captions(applyFlags(parsed.Results, opts), opts.Platform, count),
	}, nil
}

// Posts generates exactly assemble.PostCount posts for opts. Provider and
// parse failures fall back to templates; configuration and cancellation
// errors are returned.
func (g *Generator) Posts(ctx context.Context, opts content.Options) (Output, error) {
	opts = opts.WithDefaults()
	if err := opts.Validate(content.KindPost); err != nil {
		return Output{}, err
	}

	pad, err := g.fallback.Generate(opts, assemble.PostCount)
	if err != nil {
		return Output{}, err
	}

	text := prompt.BuildPostPrompt(opts.Topic, opts, assemble.PostCount)
	utils.LogDebug("Post prompt:\n%s", text)

	resp, err := g.cascade.Generate(ctx, text, g.params)
	if err != nil {
		if !errors.Is(err, content.ErrAllProvidersFailed) {
			return Output{}, fmt.Errorf("post generation failed: %w", err)
		}
		utils.LogWarning("All providers failed, using template posts: %v", err)
		return g.fallbackOutput(opts, pad), nil
	}

	parsed, err := parser.ForPosts(opts.IncludeCTA).Parse(resp.Text)
	if err != nil {
		utils.LogWarning("Could not parse %s response, using template posts: %v", resp.Provider, err)
		out := g.fallbackOutput(opts, pad)
		out.RequestID = resp.RequestID
		return out, nil
	}
	utils.LogVerbose("Parsed %d posts from %s with the %s strategy", len(parsed.Results), resp.Provider, parsed.Strategy)

	return Output{
		RequestID:    resp.RequestID,
		Provider:     resp.Provider,
		Strategy:     parsed.Strategy,
		FallbackUsed: len(parsed.Results) < assemble.PostCount,
		Results:      assemble.Posts(applyFlags(parsed.Results, opts), opts.Platform, pad),
	}, nil
}

func (g *Generator) fallbackOutput(opts content.Options, pad []content.Result) Output {
	return Output{
		Provider:     FallbackProvider,
		FallbackUsed: true,
		Results:      assemble.Posts(nil, opts.Platform, pad),
	}
}

// applyFlags drops hashtags and CTAs the caller did not ask for
func applyFlags(results []content.Result, opts content.Options) []content.Result {
	out := make([]content.Result, 0, len(results))
	for _, r := range results {
		if !opts.IncludeHashtags {
			r.Hashtags = []string{}
		}
		if !opts.IncludeCTA {
			r.CTA = ""
		}
		out = append(out, r)
	}
	return out
}
