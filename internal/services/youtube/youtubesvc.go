package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// ErrVideoNotFound is returned when the API has no video with the given ID
var ErrVideoNotFound = errors.New("video not found")

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Service reads public video metadata with an API key
type Service struct {
	client *youtube.Service
}

// NewService creates a metadata service. endpoint overrides the API root
// and is only set in tests.
func NewService(ctx context.Context, apiKey, endpoint string) (*Service, error) {
	if apiKey == "" {
		return nil, errors.New("YOUTUBE_API_KEY is not set")
	}

	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}

	client, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube client: %w", err)
	}
	return &Service{client: client}, nil
}

// GetVideoDetails retrieves the snippet of a specific video
func (s *Service) GetVideoDetails(ctx context.Context, videoID string) (*VideoMetadata, error) {
	resp, err := s.client.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video details: %w", err)
	}

	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	snippet := resp.Items[0].Snippet
	return &VideoMetadata{
		VideoID:      videoID,
		Title:        snippet.Title,
		Description:  snippet.Description,
		ChannelTitle: snippet.ChannelTitle,
		Tags:         processTags(snippet.Tags),
	}, nil
}

// ExtractVideoID accepts a bare video ID or a watch, share or shorts URL
func ExtractVideoID(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if videoIDPattern.MatchString(ref) {
		return ref, nil
	}

	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid YouTube video reference: %q", ref)
	}

	host := strings.TrimPrefix(u.Host, "www.")
	var id string
	switch {
	case host == "youtu.be":
		id = strings.Trim(u.Path, "/")
	case strings.HasSuffix(host, "youtube.com") && strings.HasPrefix(u.Path, "/shorts/"):
		id = strings.TrimPrefix(u.Path, "/shorts/")
	case strings.HasSuffix(host, "youtube.com"):
		id = u.Query().Get("v")
	}

	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("invalid YouTube video reference: %q", ref)
	}
	return id, nil
}

// cleanTag removes accents and converts to lowercase
func cleanTag(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	replacements := map[string]string{
		"á": "a", "é": "e", "í": "i", "ó": "o", "ú": "u",
		"ñ": "n", "ü": "u",
	}
	for old, new := range replacements {
		tag = strings.ReplaceAll(tag, old, new)
	}
	return strings.Join(strings.Fields(tag), "")
}

// processTags cleans tags into hashtag-ready words, unique and at most 30 long
func processTags(tags []string) []string {
	seenTags := make(map[string]bool)
	var cleanedTags []string

	for _, tag := range tags {
		cleaned := cleanTag(tag)
		if cleaned != "" && len(cleaned) <= 30 && !seenTags[cleaned] {
			seenTags[cleaned] = true
			cleanedTags = append(cleanedTags, cleaned)
		}
	}
	return cleanedTags
}
