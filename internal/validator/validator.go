// Package validator checks that the environment can run generations
package validator

import (
	"fmt"
	"os"
	"strings"

	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/services/llm"
	"github.com/gnzdotmx/captionflow/internal/utils"
)

// ProviderStatus reports whether one provider in the cascade order has a credential
type ProviderStatus struct {
	Name       string
	Configured bool
	Model      string
}

// ValidateProviders lists the providers of the cascade order and fails with
// content.ErrConfiguration when none of them has a credential
func ValidateProviders(cfg *config.Config) ([]ProviderStatus, error) {
	order := cfg.Cascade.Order
	if len(order) == 0 {
		order = llm.DefaultOrder
	}

	statuses := make([]ProviderStatus, 0, len(order))
	configured := 0
	for _, name := range order {
		p, _ := cfg.Provider(name)
		st := ProviderStatus{
			Name:       name,
			Configured: strings.TrimSpace(p.APIKey) != "",
			Model:      p.Model,
		}
		if st.Configured {
			configured++
			// Don't print the actual value for security
			utils.LogVerbose("✓ %s credential is set", name)
		} else {
			utils.LogVerbose("ℹ️ %s has no credential and will be skipped", name)
		}
		statuses = append(statuses, st)
	}

	if configured == 0 {
		return statuses, content.ErrConfiguration
	}
	return statuses, nil
}

// ValidateOutputDir checks that generated files can be written to dir
func ValidateOutputDir(dir string) error {
	path, err := utils.ExpandHomeDir(dir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", path, err)
	}

	f, err := os.CreateTemp(path, ".captionflow-check-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", path, err)
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}

// ValidateYouTube reports whether topic lookups from YouTube videos are available
func ValidateYouTube(cfg *config.Config) bool {
	if strings.TrimSpace(cfg.YouTube.APIKey) == "" {
		utils.LogVerbose("ℹ️ YOUTUBE_API_KEY is not set; --youtube-video topics are unavailable")
		return false
	}
	utils.LogVerbose("✓ YOUTUBE_API_KEY is set")
	return true
}
