package cmd

import (
	"fmt"
	"time"

	"github.com/gnzdotmx/captionflow/internal/mod"
	snscontent "github.com/gnzdotmx/captionflow/internal/modules/sns_content"
	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/gnzdotmx/captionflow/internal/workflow"
	"github.com/spf13/cobra"
)

var (
	workflowFilePath string
	retryFlag        bool
	outputFolderPath string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a batch workflow of caption and post jobs",
	Long: `Execute the caption and post steps defined in a YAML workflow file. Steps
run concurrently; a failed step does not stop the others. Use --retry with
--output-folder to rerun only the steps that did not complete.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signalContext(cmd)
		defer stop()

		gen, err := newGenerator(cfg)
		if err != nil {
			return err
		}
		resolver, err := newResolver(ctx, cfg)
		if err != nil {
			return err
		}

		registry := mod.NewModuleRegistry()
		if err := registry.Register(snscontent.NewCaption(gen, resolver, cfg.Generation.CaptionCount)); err != nil {
			return err
		}
		if err := registry.Register(snscontent.NewPost(gen, resolver)); err != nil {
			return err
		}

		wf, err := workflow.LoadFromFile(workflowFilePath, registry)
		if err != nil {
			return fmt.Errorf("failed to load workflow: %w", err)
		}

		var state *workflow.WorkflowState
		if retryFlag {
			if outputFolderPath == "" {
				return fmt.Errorf("output folder path is required when using retry flag")
			}
			utils.LogInfo("Retrying workflow %s in output folder %s", wf.Name, outputFolderPath)
			state, err = wf.ExecuteRetry(ctx, outputFolderPath)
		} else {
			if wf.Output != "" {
				cfg.Output.Directory = wf.Output
			}
			dir, dirErr := cfg.RunDirectory(wf.SanitizedName(), time.Now())
			if dirErr != nil {
				return dirErr
			}
			utils.LogInfo("Running workflow %s into %s", wf.Name, dir)
			state, err = wf.Execute(ctx, dir)
		}
		if err != nil {
			if state != nil && state.OutputDir != "" {
				utils.LogInfo("Retry with: captionflow run -w %s --retry -o %s", workflowFilePath, state.OutputDir)
			}
			return fmt.Errorf("workflow execution failed: %w", err)
		}

		utils.LogSuccess("Workflow completed successfully")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&workflowFilePath, "workflow", "w", "", "Path to workflow YAML file (required)")
	runCmd.Flags().BoolVarP(&retryFlag, "retry", "r", false, "Rerun the steps of a previous run that did not complete")
	runCmd.Flags().StringVarP(&outputFolderPath, "output-folder", "o", "", "Run directory of the previous run (required with --retry)")
	_ = runCmd.MarkFlagRequired("workflow")
	rootCmd.AddCommand(runCmd)
}
