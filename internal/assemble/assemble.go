// Package assemble normalizes generated results to platform limits and
// shapes the final result list.
package assemble

import (
	"strings"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/content"
)

// PostCount is the number of results the post generator always returns
const PostCount = 3

const ellipsis = "..."

// Limits are the per platform text and hashtag limits
type Limits struct {
	MaxLength   int
	MaxHashtags int
}

var platformLimits = map[content.Platform]Limits{
	content.PlatformInstagram: {MaxLength: 2200, MaxHashtags: 30},
	content.PlatformTikTok:    {MaxLength: 2200, MaxHashtags: 8},
	content.PlatformLinkedIn:  {MaxLength: 3000, MaxHashtags: 5},
	content.PlatformTwitter:   {MaxLength: 280, MaxHashtags: 3},
	content.PlatformYouTube:   {MaxLength: 5000, MaxHashtags: 15},
	content.PlatformFacebook:  {MaxLength: 63206, MaxHashtags: 10},
}

var defaultLimits = Limits{MaxLength: 2200, MaxHashtags: content.MaxHashtags}

// LimitsFor returns the limits of platform, with the hashtag cap never
// above content.MaxHashtags
func LimitsFor(platform content.Platform) Limits {
	l, ok := platformLimits[content.Platform(strings.ToLower(string(platform)))]
	if !ok {
		l = defaultLimits
	}
	if l.MaxHashtags > content.MaxHashtags {
		l.MaxHashtags = content.MaxHashtags
	}
	return l
}

// Normalize truncates each text to the platform maximum with a hard cut
// followed by "...", caps hashtags and recomputes the derived fields.
func Normalize(results []content.Result, platform content.Platform) []content.Result {
	limits := LimitsFor(platform)

	out := make([]content.Result, 0, len(results))
	for _, r := range results {
		text := strings.TrimSpace(r.Text)
		if utf8.RuneCountInString(text) > limits.MaxLength {
			runes := []rune(text)
			text = string(runes[:limits.MaxLength-len(ellipsis)]) + ellipsis
		}
		r = r.WithText(text)

		if len(r.Hashtags) > limits.MaxHashtags {
			r.Hashtags = append([]string(nil), r.Hashtags[:limits.MaxHashtags]...)
		}
		if r.Hashtags == nil {
			r.Hashtags = []string{}
		}
		out = append(out, r)
	}
	return out
}

// Captions normalizes results and returns at most count of them
func Captions(results []content.Result, platform content.Platform, count int) []content.Result {
	if count < 1 {
		count = 1
	}
	out := Normalize(results, platform)
	if len(out) > count {
		out = out[:count]
	}
	return out
}

// Posts normalizes results and returns exactly PostCount of them, padding
// by cycling through pad when fewer were produced.
func Posts(results []content.Result, platform content.Platform, pad []content.Result) []content.Result {
	out := results
	if len(out) > PostCount {
		out = out[:PostCount]
	}
	out = append([]content.Result(nil), out...)
	for i := 0; len(out) < PostCount && len(pad) > 0; i++ {
		out = append(out, pad[i%len(pad)])
	}
	return Normalize(out, platform)
}
