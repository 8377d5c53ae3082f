package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnzdotmx/captionflow/internal/cascade"
	"github.com/gnzdotmx/captionflow/internal/config"
	"github.com/gnzdotmx/captionflow/internal/generator"
	"github.com/gnzdotmx/captionflow/internal/services/youtube"
	"github.com/gnzdotmx/captionflow/internal/topic"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
	configFile     string
	noColor        bool
)

var rootCmd = &cobra.Command{
	Use:   "captionflow",
	Short: "AI-powered captions and posts for social media",
	Long: `CaptionFlow generates social media captions and posts with a cascade of
AI providers (OpenAI, Gemini, Groq, OpenRouter), falling back to templates
when none of them can deliver.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set the global log level based on the flag
		logLevel := utils.LogLevelFromString(verbosityLevel)
		utils.SetLogLevel(logLevel)
		utils.ColorEnabled = !noColor
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"Config file (default: ./.captionflow.yaml or ~/.captionflow.yaml)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

// loadConfig reads the configuration; the config file's log level applies
// unless --log-level was given
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
		utils.SetLogLevel(utils.LogLevelFromString(cfg.Logging.Level))
	}
	return cfg, nil
}

// signalContext is canceled on SIGINT or SIGTERM
func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func newGenerator(cfg *config.Config) (*generator.Generator, error) {
	gen, err := generator.NewFromConfig(cfg, cascade.WithObserver(cascade.NewLogObserver(nil)))
	if err != nil {
		return nil, err
	}
	if len(gen.Providers()) == 0 {
		utils.LogWarning("No AI provider is configured")
	} else {
		utils.LogVerbose("Provider order: %v", gen.Providers())
	}
	return gen, nil
}

func newResolver(ctx context.Context, cfg *config.Config) (*topic.Resolver, error) {
	if cfg.YouTube.APIKey == "" {
		return topic.NewResolver(), nil
	}
	svc, err := youtube.NewService(ctx, cfg.YouTube.APIKey, cfg.YouTube.Endpoint)
	if err != nil {
		return nil, err
	}
	return topic.NewResolver(topic.WithYouTube(svc)), nil
}
