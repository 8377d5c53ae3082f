// Package server exposes the generators over HTTP
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/generator"
	"github.com/gnzdotmx/captionflow/internal/topic"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/rs/zerolog"
)

// Server serves the generation API
type Server struct {
	gen          generator.Servicer
	resolver     *topic.Resolver
	cfg          config.Server
	captionCount int
	logger       *zerolog.Logger
}

// New creates a server. A nil resolver gets the default one.
func New(gen generator.Servicer, resolver *topic.Resolver, cfg *config.Config) *Server {
	if resolver == nil {
		resolver = topic.NewResolver()
	}
	count := cfg.Generation.CaptionCount
	if count < 1 {
		count = 3
	}
	return &Server{
		gen:          gen,
		resolver:     resolver,
		cfg:          cfg.Server,
		captionCount: count,
		logger:       utils.Logger(),
	}
}

// Router builds the gin engine with all routes
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.accessLog(), s.requestTimeout())

	r.GET("/healthz", s.health)

	api := r.Group("/api/v1")
	{
		api.POST("/captions", s.captions)
		api.POST("/posts", s.posts)
		api.GET("/providers", s.providers)
	}
	return r
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		utils.LogInfo("Listening on %s", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	utils.LogInfo("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shut down: %w", err)
	}
	return nil
}

// accessLog writes one structured line per request
func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := s.logger.Info()
		if status >= http.StatusInternalServerError {
			event = s.logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// requestTimeout bounds every request by the configured timeout
func (s *Server) requestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.RequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
