package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// testgenCmd represents the testgen command
var testgenCmd = &cobra.Command{
	Use:   "testgen <dir>",
	Short: "Generate a smoke-test stub for a project",
	Long: `Generate a smoke-test stub matching the project's detected type.

Node projects get a Jest-style stub, python projects a pytest-style one.
Other project types get a short note instead of code.

Examples:
  seekr testgen ./shop
  seekr testgen ./shop > smoke_test.py`,
	Args: cobra.ExactArgs(1),
	RunE: runTestgen,
}

func init() {
	rootCmd.AddCommand(testgenCmd)
}

func runTestgen(cmd *cobra.Command, args []string) error {
	a, err := dirAnalyzer(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), a.GenerateTestCode())
	return nil
}
