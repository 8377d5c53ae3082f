package cmd

import (
	"errors"
	"fmt"

	"github.com/gnzdotmx/captionflow/internal/content"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/gnzdotmx/captionflow/internal/validator"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate environment setup",
	Long:  `Check which AI providers are configured and that output can be written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogInfo("Validating environment...")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		utils.LogSuccess("Configuration: OK")

		statuses, err := validator.ValidateProviders(cfg)
		for i, st := range statuses {
			state := utils.Warning("not configured")
			if st.Configured {
				state = utils.Success("configured")
			}
			model := ""
			if st.Model != "" {
				model = utils.Dim(" (" + st.Model + ")")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "  %d. %-10s %s%s\n", i+1, st.Name, state, model)
		}
		if err != nil {
			if errors.Is(err, content.ErrConfiguration) {
				utils.LogWarning("Posts will use templates only and captions will fail")
			}
			return fmt.Errorf("provider validation failed: %w", err)
		}
		utils.LogSuccess("Providers: OK")

		if err := validator.ValidateOutputDir(cfg.Output.Directory); err != nil {
			return fmt.Errorf("output directory validation failed: %w", err)
		}
		utils.LogSuccess("Output directory: OK")

		if validator.ValidateYouTube(cfg) {
			utils.LogSuccess("YouTube topics: OK")
		}

		utils.LogSuccess("Environment validation completed successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
