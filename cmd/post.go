package cmd

import (
	"github.com/spf13/cobra"
)

var postFlags generateFlags

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Generate three social media posts",
	Long: `Generate exactly three posts for one topic. When no provider can deliver,
or its answer cannot be parsed, template posts are used instead.`,
	Example: `  captionflow post --topic "new espresso blend" --platform facebook --tone enthusiastic --brand "Roastery"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, &postFlags, true)
	},
}

func init() {
	postFlags.register(postCmd, false)
	rootCmd.AddCommand(postCmd)
}
