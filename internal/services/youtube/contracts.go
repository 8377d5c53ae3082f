package youtube

import (
	"context"
)

// MetadataServicer defines the YouTube lookups used to seed generation topics
type MetadataServicer interface {
	// GetVideoDetails retrieves the snippet of a specific video
	GetVideoDetails(ctx context.Context, videoID string) (*VideoMetadata, error)
}

// VideoMetadata is the part of a video snippet used as topic material
type VideoMetadata struct {
	VideoID      string
	Title        string
	Description  string
	ChannelTitle string
	Tags         []string
}

// Ensure Service implements MetadataServicer
var _ MetadataServicer = (*Service)(nil)
