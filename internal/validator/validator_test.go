package validator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProviders(t *testing.T) {
	cfg := config.Default()
	cfg.Providers.Groq.APIKey = "gsk-test"
	cfg.Providers.Gemini.APIKey = "g-test"
	cfg.Providers.Gemini.Model = "gemini-1.5-pro"

	statuses, err := ValidateProviders(cfg)

	require.NoError(t, err)
	require.Len(t, statuses, 4)
	assert.Equal(t, ProviderStatus{Name: "openai"}, statuses[0])
	assert.Equal(t, ProviderStatus{Name: "gemini", Configured: true, Model: "gemini-1.5-pro"}, statuses[1])
	assert.True(t, statuses[2].Configured)
	assert.False(t, statuses[3].Configured)
}

func TestValidateProviders_NoneConfigured(t *testing.T) {
	statuses, err := ValidateProviders(config.Default())

	assert.ErrorIs(t, err, content.ErrConfiguration)
	assert.Len(t, statuses, 4)
}

func TestValidateProviders_CustomOrder(t *testing.T) {
	cfg := config.Default()
	cfg.Cascade.Order = []string{"openrouter", "openai"}
	cfg.Providers.OpenRouter.APIKey = "or-test"

	statuses, err := ValidateProviders(cfg)

	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, "openrouter", statuses[0].Name)
	assert.True(t, statuses[0].Configured)
}

func TestValidateOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "runs")
	require.NoError(t, ValidateOutputDir(dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))
	assert.Error(t, ValidateOutputDir(filepath.Join(blocker, "sub")))
}

func TestValidateYouTube(t *testing.T) {
	cfg := config.Default()
	assert.False(t, ValidateYouTube(cfg))
	cfg.YouTube.APIKey = "yt"
	assert.True(t, ValidateYouTube(cfg))
}
