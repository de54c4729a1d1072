package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/analyzer"
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <dir>",
	Short: "Suggest how to run a project",
	Long: `Suggest an execution plan for a project based on its detected type.

Detection looks at marker files and source extensions: package.json plus
JavaScript sources means a node project, .py files mean python (with or
without requirements.txt), .java means java, .cs means dotnet. Unknown
projects get a generic suggestion.

Examples:
  seekr plan ./shop
  seekr plan .`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	a, err := dirAnalyzer(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.SuggestExecutionPlan())
	return nil
}

// dirAnalyzer builds an analyzer over a directory argument using the
// effective config.
func dirAnalyzer(cmd *cobra.Command, dir string) (*analyzer.Analyzer, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("cannot access %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return analyzer.New(cmd.Context(), abs, analyzer.Options{
		Logger:   buildLogger(cfg),
		SkipDirs: cfg.Scan.SkipDirs,
	})
}
