package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/report"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <dir>",
	Short: "Run the simulated verification stage",
	Long: `Run the simulated verification stage for a project.

The verification does not execute any project code: it pairs the
generated test stub with a canned execution result. The output format
matches the functional_verification section of a full analysis report.

Examples:
  seekr verify ./shop
  seekr verify ./shop --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	a, err := dirAnalyzer(cmd, args[0])
	if err != nil {
		return err
	}

	result := report.VerificationResult{
		GeneratedTestCode: a.GenerateTestCode(),
		ExecutionResult:   a.VerifyFunctionality(),
	}

	if err := formatter.FormatToWriter(cmd.OutOrStdout(), result); err != nil {
		return fmt.Errorf("writing result: %w", err)
	}
	return nil
}
