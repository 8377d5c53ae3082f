package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/topic"
	"github.com/gnzdotmx/captionflow/internal/utils"
)

// StatusClientClosedRequest is reported when the caller went away
const StatusClientClosedRequest = 499

var errTopic = errors.New("could not resolve topic")

// GenerateRequest is the body of the caption and post endpoints
type GenerateRequest struct {
	Topic           string `json:"topic"`
	URL             string `json:"url"`
	YouTubeVideo    string `json:"youtubeVideo"`
	Platform        string `json:"platform" binding:"required"`
	Tone            string `json:"tone"`
	Language        string `json:"language"`
	Length          string `json:"length"`
	Count           int    `json:"count"`
	IncludeHashtags *bool  `json:"includeHashtags"`
	IncludeCTA      *bool  `json:"includeCTA"`
	Brand           string `json:"brand"`
	Audience        string `json:"audience"`
}

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) providers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"providers": s.gen.Providers()})
}

func (s *Server) captions(c *gin.Context) {
	req, opts, ok := s.bind(c)
	if !ok {
		return
	}

	count := req.Count
	if count == 0 {
		count = s.captionCount
	}
	out, err := s.gen.Captions(c.Request.Context(), opts, count)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) posts(c *gin.Context) {
	_, opts, ok := s.bind(c)
	if !ok {
		return
	}

	out, err := s.gen.Posts(c.Request.Context(), opts)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// bind decodes the body and resolves its topic. It writes the error response
// itself and reports false on failure.
func (s *Server) bind(c *gin.Context) (GenerateRequest, content.Options, bool) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Kind: "invalid_request"})
		return req, content.Options{}, false
	}

	t, err := s.resolver.Resolve(c.Request.Context(), topic.Source{
		Text:    req.Topic,
		URL:     req.URL,
		YouTube: req.YouTubeVideo,
	})
	if err != nil {
		var verr *utils.ValidationError
		if !errors.As(err, &verr) {
			err = errors.Join(errTopic, err)
		}
		writeError(c, err)
		return req, content.Options{}, false
	}

	return req, content.Options{
		Topic:           t.Text,
		Platform:        content.Platform(req.Platform),
		Tone:            req.Tone,
		Language:        req.Language,
		Length:          content.Length(strings.ToLower(req.Length)),
		IncludeHashtags: req.IncludeHashtags == nil || *req.IncludeHashtags,
		IncludeCTA:      req.IncludeCTA == nil || *req.IncludeCTA,
		Brand:           req.Brand,
		Audience:        req.Audience,
	}, true
}

// writeError maps the pipeline error kinds onto HTTP statuses
func writeError(c *gin.Context, err error) {
	status, kind := classify(err)
	if status >= http.StatusInternalServerError {
		utils.LogWarning("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, ErrorResponse{Error: err.Error(), Kind: kind})
}

func classify(err error) (int, string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, "invalid_request"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "timeout"
	case errors.Is(err, content.ErrCanceled), errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled"
	case errors.Is(err, errTopic):
		return http.StatusUnprocessableEntity, "topic"
	case errors.Is(err, content.ErrConfiguration):
		return http.StatusServiceUnavailable, "configuration"
	case errors.Is(err, content.ErrAllProvidersFailed):
		return http.StatusBadGateway, "all_providers_failed"
	case errors.Is(err, content.ErrParse):
		return http.StatusUnprocessableEntity, "parse"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
