package cmd

import (
	"github.com/spf13/cobra"
)

var captionFlags generateFlags

var captionCmd = &cobra.Command{
	Use:   "caption",
	Short: "Generate social media captions",
	Long: `Generate up to ten captions for one topic. The topic comes from --topic,
--topic-file, --url or --youtube-video. Provider and parse failures are
reported as errors.`,
	Example: `  captionflow caption --topic "morning coffee" --platform instagram --tone casual --count 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, &captionFlags, false)
	},
}

func init() {
	captionFlags.register(captionCmd, true)
	rootCmd.AddCommand(captionCmd)
}
