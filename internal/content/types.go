// Package content holds the data model shared by every stage of the
// generation pipeline: request options, generated results and the error kinds
// surfaced to callers.
package content

import (
	"strings"
	"unicode/utf8"

	"github.com/gnzdotmx/captionflow/internal/utils"
)

// Platform identifies a social network
type Platform string

const (
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
	PlatformLinkedIn  Platform = "linkedin"
	PlatformTwitter   Platform = "twitter"
	PlatformYouTube   Platform = "youtube"
	PlatformFacebook  Platform = "facebook"
)

// Length is the requested length class
type Length string

const (
	LengthShort  Length = "short"
	LengthMedium Length = "medium"
	LengthLong   Length = "long"
)

// Kind selects which generator a request targets; the valid platforms and
// tones differ between them.
type Kind string

const (
	KindCaption Kind = "caption"
	KindPost    Kind = "post"
)

var (
	// CaptionPlatforms are the platforms accepted by the caption generator
	CaptionPlatforms = []string{"instagram", "tiktok", "linkedin", "twitter", "youtube"}
	// PostPlatforms are the platforms accepted by the post generator
	PostPlatforms = []string{"facebook", "instagram", "linkedin", "twitter", "youtube"}
	// CaptionTones are the tones accepted by the caption generator
	CaptionTones = []string{"casual", "professional", "funny", "inspirational", "educational"}
	// PostTones are the tones accepted by the post generator
	PostTones = []string{"professional", "casual", "enthusiastic", "informative", "humorous"}
	// Lengths are the accepted length classes
	Lengths = []string{"short", "medium", "long"}
)

// Options describes one generation request. It is built once by the caller
// and passed by value through the pipeline.
type Options struct {
	Topic           string   `json:"topic" yaml:"topic"`
	Platform        Platform `json:"platform" yaml:"platform"`
	Tone            string   `json:"tone" yaml:"tone"`
	Language        string   `json:"language" yaml:"language"`
	Length          Length   `json:"length" yaml:"length"`
	IncludeHashtags bool     `json:"includeHashtags" yaml:"includeHashtags"`
	IncludeCTA      bool     `json:"includeCTA" yaml:"includeCTA"`
	Brand           string   `json:"brand,omitempty" yaml:"brand,omitempty"`
	Audience        string   `json:"audience,omitempty" yaml:"audience,omitempty"`
}

// WithDefaults fills the optional fields left empty by the caller
func (o Options) WithDefaults() Options {
	if o.Language == "" {
		o.Language = "English"
	}
	if o.Length == "" {
		o.Length = LengthMedium
	}
	o.Platform = Platform(strings.ToLower(string(o.Platform)))
	o.Tone = strings.ToLower(o.Tone)
	return o
}

// Validate checks the options against the enumerations of the given generator kind
func (o Options) Validate(kind Kind) error {
	if err := utils.RequireField("topic", o.Topic); err != nil {
		return err
	}
	if err := utils.RequireField("platform", string(o.Platform)); err != nil {
		return err
	}

	platforms, tones := CaptionPlatforms, CaptionTones
	if kind == KindPost {
		platforms, tones = PostPlatforms, PostTones
	}
	if err := utils.ValidateChoice("platform", string(o.Platform), platforms); err != nil {
		return err
	}
	if o.Tone != "" {
		if err := utils.ValidateChoice("tone", o.Tone, tones); err != nil {
			return err
		}
	}
	if o.Length != "" {
		if err := utils.ValidateChoice("length", string(o.Length), Lengths); err != nil {
			return err
		}
	}
	return nil
}

// Result is one generated caption or post
type Result struct {
	Text           string   `json:"text" yaml:"text"`
	Hashtags       []string `json:"hashtags" yaml:"hashtags"`
	CTA            string   `json:"cta" yaml:"cta"`
	CharacterCount int      `json:"characterCount" yaml:"characterCount"`
	Readability    float64  `json:"readability" yaml:"readability"`
}

// NewResult trims text and derives the character count and readability score
func NewResult(text string, hashtags []string, cta string) Result {
	text = strings.TrimSpace(text)
	set := NewHashtagSet()
	set.Add(hashtags...)
	return Result{
		Text:           text,
		Hashtags:       set.Items(),
		CTA:            strings.TrimSpace(cta),
		CharacterCount: utf8.RuneCountInString(text),
		Readability:    Readability(text),
	}
}

// WithText replaces the text and recomputes the derived fields
func (r Result) WithText(text string) Result {
	r.Text = text
	r.CharacterCount = utf8.RuneCountInString(text)
	r.Readability = Readability(text)
	return r
}
