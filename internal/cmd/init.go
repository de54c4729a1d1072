package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/config"
	"github.com/seekr-dev/seekr/internal/history"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize .seekr directory and history database",
	Long: `Initialize the .seekr directory in the current directory.

This writes a default config.yaml and creates the history.db database
that records past analyses. Analysis itself works without init; init is
only needed for history and for keeping a project-local config.

Examples:
  seekr init          # Initialize in current directory
  seekr init --force  # Rewrite config.yaml with defaults`,
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Rewrite config.yaml even if it exists")
}

func runInit(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	seekrDir := filepath.Join(cwd, config.ConfigDirName)
	cfgPath := filepath.Join(seekrDir, config.ConfigFileName)

	_, err = os.Stat(cfgPath)
	switch {
	case err == nil && !initForce:
		relPath, _ := filepath.Rel(cwd, seekrDir)
		fmt.Fprintf(cmd.OutOrStdout(), "Already initialized at %s\n", relPath)
		return nil
	case err == nil:
		if err := os.Remove(cfgPath); err != nil {
			return fmt.Errorf("removing existing config: %w", err)
		}
	case !os.IsNotExist(err):
		return fmt.Errorf("checking config path: %w", err)
	}

	if _, err := config.SaveDefault(cwd); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}

	// Open once to create the database and schema.
	store, err := history.Open(seekrDir)
	if err != nil {
		return fmt.Errorf("initializing history database: %w", err)
	}
	defer store.Close()

	relPath, _ := filepath.Rel(cwd, seekrDir)
	fmt.Fprintf(cmd.OutOrStdout(), "Initialized seekr at %s\n", relPath)
	return nil
}
