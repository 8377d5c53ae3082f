package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gnzdotmx/captionflow/internal/utils"
	"github.com/spf13/cobra"
)

var (
	outputDir     string
	keepLatest    int
	olderThanDays int
	cleanupDryRun bool
)

// runDirLayout is the timestamp suffix of run directories: <name>_20060102_150405
const runDirLayout = "20060102_150405"

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up old run directories",
	Long:  `Remove old caption, post and workflow run folders based on age or count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := outputDir
		if dir == "" {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir = cfg.Output.Directory
		}

		dir, err := utils.ExpandHomeDir(dir)
		if err != nil {
			return err
		}
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			return fmt.Errorf("output directory %s does not exist", dir)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("failed to read output directory: %w", err)
		}

		var names []string
		for _, entry := range entries {
			if entry.IsDir() {
				names = append(names, entry.Name())
			}
		}

		toDelete := selectRunDirs(names, keepLatest, olderThanDays, time.Now())

		w := cmd.OutOrStdout()
		if len(toDelete) == 0 {
			fmt.Fprintln(w, "No directories to delete.")
			return nil
		}

		fmt.Fprintf(w, "Found %d directories to delete:\n", len(toDelete))
		for _, name := range toDelete {
			fmt.Fprintf(w, "- %s\n", name)
		}

		if cleanupDryRun {
			fmt.Fprintln(w, "Dry run - no directories were deleted.")
			return nil
		}

		for _, name := range toDelete {
			fullPath := filepath.Join(dir, name)
			utils.LogVerbose("Deleting %s...", fullPath)
			if err := os.RemoveAll(fullPath); err != nil {
				utils.LogError("Error deleting %s: %v", fullPath, err)
			}
		}

		fmt.Fprintln(w, "Cleanup completed.")
		return nil
	},
}

// runDirTime extracts the timestamp of a run directory name
func runDirTime(name string) (time.Time, bool) {
	if len(name) < len(runDirLayout)+2 || name[len(name)-len(runDirLayout)-1] != '_' {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(runDirLayout, name[len(name)-len(runDirLayout):], time.Local)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// selectRunDirs returns the run directories to delete, oldest first. Names
// without a run timestamp are never selected.
func selectRunDirs(names []string, keepLatest, olderThanDays int, now time.Time) []string {
	type run struct {
		name string
		at   time.Time
	}
	var runs []run
	for _, name := range names {
		if at, ok := runDirTime(name); ok {
			runs = append(runs, run{name: name, at: at})
		}
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].at.Before(runs[j].at) })

	selected := make(map[string]bool)
	if keepLatest > 0 && len(runs) > keepLatest {
		for _, r := range runs[:len(runs)-keepLatest] {
			selected[r.name] = true
		}
	}
	if olderThanDays > 0 {
		cutoff := now.AddDate(0, 0, -olderThanDays)
		for _, r := range runs {
			if r.at.Before(cutoff) {
				selected[r.name] = true
			}
		}
	}

	var out []string
	for _, r := range runs {
		if selected[r.name] {
			out = append(out, r.name)
		}
	}
	return out
}

func init() {
	cleanupCmd.Flags().StringVarP(&outputDir, "dir", "d", "", "Output directory to clean up (default from config)")
	cleanupCmd.Flags().IntVarP(&keepLatest, "keep-latest", "k", 0, "Keep this many latest directories")
	cleanupCmd.Flags().IntVarP(&olderThanDays, "older-than", "o", 0, "Delete directories older than this many days")
	cleanupCmd.Flags().BoolVarP(&cleanupDryRun, "dry-run", "n", false, "Show what would be deleted without actually deleting")

	rootCmd.AddCommand(cleanupCmd)
}
