// Package topic resolves the subject of a generation request from text, a
// file, a web page or a YouTube video.
package topic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/gnzdotmx/captionflow/internal/services/youtube"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/go-resty/resty/v2"
)

// MaxTopicLength caps the topic text embedded in prompts
const MaxTopicLength = 500

// Source names one topic origin; exactly one field must be set
type Source struct {
	Text    string `json:"topic,omitempty" yaml:"topic,omitempty"`
	File    string `json:"topicFile,omitempty" yaml:"topicFile,omitempty"`
	URL     string `json:"url,omitempty" yaml:"url,omitempty"`
	YouTube string `json:"youtubeVideo,omitempty" yaml:"youtubeVideo,omitempty"`
}

// Topic is a resolved subject
type Topic struct {
	Text     string
	Origin   string
	Keywords []string
}

// Resolver turns a Source into a Topic
type Resolver struct {
	http    *resty.Client
	youtube youtube.MetadataServicer
}

// Option customizes a Resolver
type Option func(*Resolver)

// WithHTTPClient sets the client used to fetch web pages
func WithHTTPClient(c *resty.Client) Option {
	return func(r *Resolver) {
		if c != nil {
			r.http = c
		}
	}
}

// WithYouTube sets the metadata service used for video topics
func WithYouTube(svc youtube.MetadataServicer) Option {
	return func(r *Resolver) {
		r.youtube = svc
	}
}

// NewResolver creates a resolver
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		http: resty.New().
			SetTimeout(15*time.Second).
			SetHeader("User-Agent", "captionflow/1.0"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Validate checks that exactly one origin is set
func (s Source) Validate() error {
	set := 0
	for _, v := range []string{s.Text, s.File, s.URL, s.YouTube} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	switch set {
	case 0:
		return &utils.ValidationError{Field: "topic", Message: "one of topic, topic file, URL or YouTube video is required"}
	case 1:
		return nil
	default:
		return &utils.ValidationError{Field: "topic", Message: "only one of topic, topic file, URL or YouTube video may be set"}
	}
}

// Resolve returns the topic described by src
func (r *Resolver) Resolve(ctx context.Context, src Source) (Topic, error) {
	if err := src.Validate(); err != nil {
		return Topic{}, err
	}

	switch {
	case strings.TrimSpace(src.Text) != "":
		return Topic{Text: clip(src.Text), Origin: "text"}, nil
	case src.File != "":
		text, err := FromFile(src.File)
		if err != nil {
			return Topic{}, err
		}
		return Topic{Text: text, Origin: "file:" + src.File}, nil
	case src.URL != "":
		text, err := r.FromURL(ctx, src.URL)
		if err != nil {
			return Topic{}, err
		}
		return Topic{Text: text, Origin: "url:" + src.URL}, nil
	default:
		return r.FromYouTube(ctx, src.YouTube)
	}
}

// FromFile reads a topic from a text file
func FromFile(path string) (string, error) {
	text, err := utils.ReadTextFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read topic file: %w", err)
	}
	if text == "" {
		return "", &utils.ValidationError{Field: "topicFile", Message: fmt.Sprintf("%s is empty", path)}
	}
	return clip(text), nil
}

// FromURL builds a topic from a page title and description
func (r *Resolver) FromURL(ctx context.Context, pageURL string) (string, error) {
	resp, err := r.http.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to fetch %s: status code %d", pageURL, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", pageURL, err)
	}

	title := firstNonEmpty(
		doc.Find(`meta[property="og:title"]`).AttrOr("content", ""),
		doc.Find("head title").First().Text(),
		doc.Find("h1").First().Text(),
	)
	description := firstNonEmpty(
		doc.Find(`meta[property="og:description"]`).AttrOr("content", ""),
		doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		doc.Find("article p, main p, p").First().Text(),
	)

	text := joinNonEmpty(". ", title, description)
	if text == "" {
		return "", fmt.Errorf("no title or description found at %s", pageURL)
	}
	return clip(text), nil
}

// FromYouTube builds a topic from a video's title, description and tags
func (r *Resolver) FromYouTube(ctx context.Context, ref string) (Topic, error) {
	if r.youtube == nil {
		return Topic{}, errors.New("YouTube lookups need YOUTUBE_API_KEY")
	}

	id, err := youtube.ExtractVideoID(ref)
	if err != nil {
		return Topic{}, err
	}

	meta, err := r.youtube.GetVideoDetails(ctx, id)
	if err != nil {
		return Topic{}, err
	}

	description := strings.SplitN(strings.TrimSpace(meta.Description), "\n", 2)[0]
	return Topic{
		Text:     clip(joinNonEmpty(". ", meta.Title, description)),
		Origin:   "youtube:" + id,
		Keywords: meta.Tags,
	}, nil
}

func clip(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= MaxTopicLength {
		return text
	}
	return strings.TrimSpace(string([]rune(text)[:MaxTopicLength]))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(sep string, values ...string) string {
	var parts []string
	for _, v := range values {
		if v = strings.TrimSpace(strings.TrimRight(strings.TrimSpace(v), ".")); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, sep)
}
