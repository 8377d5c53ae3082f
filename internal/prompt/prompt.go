// Package prompt builds the instruction text sent to the text generation
// providers. Building is pure string interpolation and never fails.
package prompt

import (
	"fmt"
	"strings"

	"github.com/gnzdotmx/captionflow/internal/content"
)

// Output markers the parser chain looks for
const (
	CaptionMarker  = "CAPTION:"
	PostMarker     = "POST:"
	HashtagsMarker = "HASHTAGS:"
	CTAMarker      = "CTA:"
)

var platformStyles = map[string]string{
	"instagram": "visual and lifestyle oriented, emoji friendly, with a strong hook in the first line",
	"tiktok":    "short, punchy and trend aware, written for a young audience scrolling fast",
	"linkedin":  "professional and insight driven, focused on lessons, results and industry value",
	"twitter":   "concise and conversational, must fit in 280 characters including hashtags",
	"youtube":   "descriptive and search friendly, summarizing what viewers will get from the video",
	"facebook":  "warm and community focused, encouraging comments and shares",
}

var toneGuides = map[string]string{
	"casual":        "Write in a relaxed, friendly voice as if talking to a friend.",
	"professional":  "Write in a polished, credible voice without slang.",
	"funny":         "Use light humor and playful wording without being offensive.",
	"inspirational": "Be uplifting and motivating, focusing on possibility and growth.",
	"educational":   "Teach something concrete; lead with a useful fact or tip.",
	"enthusiastic":  "Sound energetic and excited, using vivid positive language.",
	"informative":   "Be clear and factual, prioritizing useful details.",
	"humorous":      "Keep it witty and fun while staying on topic.",
}

var lengthGuides = map[string]string{
	"short":  "Keep it short: one or two sentences, under 150 characters.",
	"medium": "Aim for a medium length: two to four sentences, around 300 characters.",
	"long":   "Write a longer piece: a short paragraph or two, up to 800 characters.",
}

// BuildCaptionPrompt returns the instruction for count captions about topic
func BuildCaptionPrompt(topic string, opts content.Options, count int) string {
	return build(CaptionMarker, "caption", "captions", topic, opts, count)
}

// BuildPostPrompt returns the instruction for count full social posts about topic
func BuildPostPrompt(topic string, opts content.Options, count int) string {
	return build(PostMarker, "post", "posts", topic, opts, count)
}

func build(marker, noun, plural, topic string, opts content.Options, count int) string {
	if count < 1 {
		count = 1
	}
	language := opts.Language
	if language == "" {
		language = "English"
	}
	length := string(opts.Length)
	if length == "" {
		length = string(content.LengthMedium)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert social media copywriter who writes high-engagement %s content.\n\n", opts.Platform)
	fmt.Fprintf(&b, "Write %d distinct %s %s about: %s\n\n", count, opts.Platform, pluralize(count, noun, plural), topic)

	if opts.Brand != "" {
		fmt.Fprintf(&b, "Brand: %s\n", opts.Brand)
	}
	if opts.Audience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", opts.Audience)
	}

	fmt.Fprintf(&b, "Platform style: %s\n", lookup(platformStyles, string(opts.Platform)))
	if opts.Tone != "" {
		fmt.Fprintf(&b, "Tone: %s\n", lookup(toneGuides, opts.Tone))
	}
	fmt.Fprintf(&b, "Length: %s\n", lookup(lengthGuides, length))
	fmt.Fprintf(&b, "Language: write everything in %s.\n", language)

	if opts.IncludeHashtags {
		b.WriteString("Include 3 to 8 relevant hashtags on the HASHTAGS line.\n")
	} else {
		b.WriteString("Do not include hashtags; leave the HASHTAGS line empty.\n")
	}
	if opts.IncludeCTA {
		b.WriteString("End with a clear call to action on the CTA line.\n")
	} else {
		b.WriteString("Do not include a call to action; leave the CTA line empty.\n")
	}

	b.WriteString("\nFollow this output format exactly for each ")
	b.WriteString(noun)
	b.WriteString(", with no extra commentary:\n\n")
	fmt.Fprintf(&b, "%s\n<%s text>\n%s #tag1 #tag2\n%s <call to action>\n", marker, noun, HashtagsMarker, CTAMarker)

	return b.String()
}

// lookup returns the guide for key, or the key itself when unknown
func lookup(table map[string]string, key string) string {
	if guide, ok := table[strings.ToLower(key)]; ok {
		return guide
	}
	return key
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
