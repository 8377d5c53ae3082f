// Package parser turns free-form model output into content results by
// trying a fixed sequence of structural heuristics.
package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/prompt"
)

const (
	// MinTextLength is the rune count below which a parsed text is trivial
	MinTextLength = 10
	// MaxRawLength bounds the raw text accepted by the salvage strategy
	MaxRawLength = 2000
	// MaxParagraphs caps the paragraphs considered by the paragraph strategy
	MaxParagraphs = 10
	// MaxSentences caps the sentences kept by the salvage strategy
	MaxSentences = 3
	// DefaultCTA is used by the salvage strategy when a call to action was requested
	DefaultCTA = "Share your thoughts in the comments!"
)

// Strategy is one parsing heuristic
type Strategy struct {
	Name  string
	Parse func(raw string) []content.Result
}

// Outcome is the result of a successful parse
type Outcome struct {
	Strategy string
	Results  []content.Result
}

// Chain applies strategies in order and stops at the first one producing
// a non-trivial result. Raw salvage always runs last.
type Chain struct {
	strategies []Strategy
	salvageCTA string
}

// New creates a chain recognizing marker (e.g. "CAPTION:") in structured
// output. When includeCTA is set the salvage strategy synthesizes a CTA.
func New(marker string, includeCTA bool) *Chain {
	c := &Chain{
		strategies: []Strategy{
			{Name: "structured", Parse: func(raw string) []content.Result { return StructuredMarker(raw, marker) }},
			{Name: "legacy_delimiter", Parse: LegacyDelimiter},
			{Name: "list_items", Parse: ListItems},
			{Name: "paragraphs", Parse: Paragraphs},
		},
	}
	if includeCTA {
		c.salvageCTA = DefaultCTA
	}
	return c
}

// ForCaptions creates a chain for caption output
func ForCaptions(includeCTA bool) *Chain {
	return New(prompt.CaptionMarker, includeCTA)
}

// ForPosts creates a chain for post output
func ForPosts(includeCTA bool) *Chain {
	return New(prompt.PostMarker, includeCTA)
}

// Strategies returns the strategy names in the order they are tried
func (c *Chain) Strategies() []string {
	names := make([]string, 0, len(c.strategies)+1)
	for _, s := range c.strategies {
		names = append(names, s.Name)
	}
	return append(names, "raw_salvage")
}

// Parse runs the chain over raw. It returns content.ErrParse when nothing,
// not even salvage, produced a result.
func (c *Chain) Parse(raw string) (Outcome, error) {
	if strings.TrimSpace(raw) == "" {
		return Outcome{}, fmt.Errorf("%w: empty response", content.ErrParse)
	}

	for _, s := range c.strategies {
		if results := nonTrivial(s.Parse(raw)); len(results) > 0 {
			return Outcome{Strategy: s.Name, Results: results}, nil
		}
	}

	if results := RawSalvage(raw, c.salvageCTA); len(results) > 0 {
		return Outcome{Strategy: "raw_salvage", Results: results}, nil
	}

	return Outcome{}, fmt.Errorf("%w: %d characters of unstructured text", content.ErrParse, utf8.RuneCountInString(raw))
}

func nonTrivial(results []content.Result) []content.Result {
	out := results[:0:0]
	for _, r := range results {
		if !isTrivial(r.Text) {
			out = append(out, r)
		}
	}
	return out
}

func isTrivial(text string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength
}
