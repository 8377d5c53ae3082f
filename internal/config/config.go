// Package config loads captionflow settings from an optional YAML file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gnzdotmx/captionflow/internal/services/llm"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Providers  Providers  `mapstructure:"providers"`
	Cascade    Cascade    `mapstructure:"cascade"`
	Generation Generation `mapstructure:"generation"`
	YouTube    YouTube    `mapstructure:"youtube"`
	Server     Server     `mapstructure:"server"`
	Output     Output     `mapstructure:"output"`
	Logging    Logging    `mapstructure:"logging"`
}

// ProviderConfig holds the credential and endpoint of one provider
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Providers holds configuration for all text generation providers
type Providers struct {
	OpenAI     ProviderConfig `mapstructure:"openai"`
	Gemini     ProviderConfig `mapstructure:"gemini"`
	Groq       ProviderConfig `mapstructure:"groq"`
	OpenRouter ProviderConfig `mapstructure:"openrouter"`
}

// Cascade holds provider ordering and timeouts
type Cascade struct {
	Order          []string      `mapstructure:"order"`
	AttemptTimeout time.Duration `mapstructure:"attempt_timeout"`
}

// Generation holds model parameters and request defaults
type Generation struct {
	Temperature  float64 `mapstructure:"temperature"`
	MaxTokens    int     `mapstructure:"max_tokens"`
	TopP         float64 `mapstructure:"top_p"`
	Language     string  `mapstructure:"language"`
	CaptionCount int     `mapstructure:"caption_count"`
}

// YouTube holds the Data API settings used for topic lookups
type YouTube struct {
	APIKey   string `mapstructure:"api_key"`
	Endpoint string `mapstructure:"endpoint"`
}

// Server holds HTTP API configuration
type Server struct {
	Addr            string        `mapstructure:"addr"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Output holds output configuration
type Output struct {
	Directory string `mapstructure:"directory"`
}

// Logging holds logging configuration
type Logging struct {
	Level string `mapstructure:"level"`
}

// Load reads configuration from configFile (or ./.captionflow.yaml and
// ~/.captionflow.yaml when empty) and the environment.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		path, err := utils.ExpandHomeDir(configFile)
		if err != nil {
			return nil, err
		}
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(".captionflow")
		v.SetConfigType("yaml")
	}

	setDefaults(v)
	if err := bindEnvironmentVariables(v); err != nil {
		return nil, err
	}

	v.SetEnvPrefix("CAPTIONFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		utils.LogDebug("Using config file: %s", v.ConfigFileUsed())
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built in defaults without reading files or environment
func Default() *Config {
	return &Config{
		Cascade: Cascade{
			Order:          append([]string(nil), llm.DefaultOrder...),
			AttemptTimeout: 20 * time.Second,
		},
		Generation: Generation{
			Temperature:  llm.DefaultParams().Temperature,
			MaxTokens:    llm.DefaultParams().MaxTokens,
			TopP:         llm.DefaultParams().TopP,
			Language:     "English",
			CaptionCount: 3,
		},
		Server: Server{
			Addr:            ":8080",
			RequestTimeout:  90 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Output:  Output{Directory: "output"},
		Logging: Logging{Level: "normal"},
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()

	for _, name := range llm.DefaultOrder {
		v.SetDefault("providers."+name+".api_key", "")
		v.SetDefault("providers."+name+".model", "")
		v.SetDefault("providers."+name+".base_url", "")
	}

	v.SetDefault("cascade.order", d.Cascade.Order)
	v.SetDefault("cascade.attempt_timeout", d.Cascade.AttemptTimeout.String())

	v.SetDefault("generation.temperature", d.Generation.Temperature)
	v.SetDefault("generation.max_tokens", d.Generation.MaxTokens)
	v.SetDefault("generation.top_p", d.Generation.TopP)
	v.SetDefault("generation.language", d.Generation.Language)
	v.SetDefault("generation.caption_count", d.Generation.CaptionCount)

	v.SetDefault("youtube.api_key", "")
	v.SetDefault("youtube.endpoint", "")

	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.request_timeout", d.Server.RequestTimeout.String())
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout.String())

	v.SetDefault("output.directory", d.Output.Directory)
	v.SetDefault("logging.level", d.Logging.Level)
}

// bindEnvironmentVariables maps the conventional provider variables onto config keys
func bindEnvironmentVariables(v *viper.Viper) error {
	bindings := map[string][]string{
		"providers.openai.api_key":     {"OPENAI_API_KEY"},
		"providers.gemini.api_key":     {"GEMINI_API_KEY", "GOOGLE_AI_API_KEY"},
		"providers.groq.api_key":       {"GROQ_API_KEY"},
		"providers.openrouter.api_key": {"OPENROUTER_API_KEY"},
		"providers.openai.base_url":    {"OPENAI_BASE_URL"},
		"youtube.api_key":              {"YOUTUBE_API_KEY"},
	}
	for key, envs := range bindings {
		prefixed := "CAPTIONFLOW_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, envs...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate checks the loaded values
func (c *Config) Validate() error {
	for _, name := range c.Cascade.Order {
		if _, ok := c.Provider(name); !ok {
			return &utils.ValidationError{
				Field:   "cascade.order",
				Message: fmt.Sprintf("unknown provider %q. Allowed values: %v", name, llm.DefaultOrder),
			}
		}
	}
	if c.Cascade.AttemptTimeout <= 0 {
		return &utils.ValidationError{Field: "cascade.attempt_timeout", Message: "must be positive"}
	}
	if c.Generation.CaptionCount != 0 {
		if err := utils.ValidateRange("generation.caption_count", c.Generation.CaptionCount, 1, 10); err != nil {
			return err
		}
	}
	return nil
}

// Provider returns the configuration of the named provider
func (c *Config) Provider(name string) (ProviderConfig, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case llm.ProviderOpenAI:
		return c.Providers.OpenAI, true
	case llm.ProviderGemini:
		return c.Providers.Gemini, true
	case llm.ProviderGroq:
		return c.Providers.Groq, true
	case llm.ProviderOpenRouter:
		return c.Providers.OpenRouter, true
	default:
		return ProviderConfig{}, false
	}
}

// ConfiguredProviders returns the providers that have a credential, in cascade order
func (c *Config) ConfiguredProviders() []string {
	order := c.Cascade.Order
	if len(order) == 0 {
		order = llm.DefaultOrder
	}

	var names []string
	for _, name := range order {
		name = strings.ToLower(strings.TrimSpace(name))
		if p, ok := c.Provider(name); ok && strings.TrimSpace(p.APIKey) != "" {
			names = append(names, name)
		}
	}
	return names
}

// Params returns the generation parameters sent to every provider
func (c *Config) Params() llm.Params {
	return llm.Params{
		Temperature: c.Generation.Temperature,
		MaxTokens:   c.Generation.MaxTokens,
		TopP:        c.Generation.TopP,
	}
}

// ProviderSettings returns the client settings of the named provider
func (c *Config) ProviderSettings(name string) llm.Settings {
	p, _ := c.Provider(name)
	return llm.Settings{
		APIKey:  p.APIKey,
		Model:   p.Model,
		BaseURL: p.BaseURL,
	}
}

// RunDirectory returns a timestamped directory under the output directory
func (c *Config) RunDirectory(name string, now time.Time) (string, error) {
	base, err := utils.ExpandHomeDir(c.Output.Directory)
	if err != nil {
		return "", err
	}
	return filepath.Join(base, fmt.Sprintf("%s_%s", name, now.Format("20060102_150405"))), nil
}
