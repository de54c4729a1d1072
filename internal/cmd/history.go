package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/config"
	"github.com/seekr-dev/seekr/internal/history"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [id]",
	Short: "Show past analyses",
	Long: `Display the history of recorded analyses.

Without arguments, lists the most recent analyses with their requirement
text and result counts. With an analysis ID, prints the stored report.

Flags:
  --limit N      Number of entries to show (default: 10)
  --clear        Delete all recorded analyses

Examples:
  seekr history                 # Show last 10 analyses
  seekr history --limit 20      # Show last 20 analyses
  seekr history <id>            # Show one stored report
  seekr history --clear         # Wipe the history database`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var (
	historyLimit int
	historyClear bool
)

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of entries to show")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete all recorded analyses")
}

// HistoryEntry is one analysis in the list output.
type HistoryEntry struct {
	ID          string `yaml:"id" json:"id"`
	Date        string `yaml:"date" json:"date"`
	Requirement string `yaml:"requirement" json:"requirement"`
	ProjectType string `yaml:"project_type" json:"project_type"`
	Features    int    `yaml:"features" json:"features"`
	Locations   int    `yaml:"locations" json:"locations"`
}

// HistoryOutput is the full list output structure.
type HistoryOutput struct {
	Analyses []HistoryEntry `yaml:"analyses" json:"analyses"`
	Total    int            `yaml:"total" json:"total"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	seekrDir, err := config.FindConfigDir(".")
	if err != nil {
		return fmt.Errorf("seekr not initialized: run 'seekr init' first")
	}

	store, err := history.Open(seekrDir)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	if historyClear {
		if err := store.Clear(); err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
		return nil
	}

	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	if len(args) == 1 {
		entry, err := store.Get(args[0])
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("no analysis with id %s", args[0])
			}
			return fmt.Errorf("get analysis: %w", err)
		}
		return formatter.FormatToWriter(cmd.OutOrStdout(), entry)
	}

	entries, err := store.List(historyLimit)
	if err != nil {
		return fmt.Errorf("list history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No analyses recorded. Run 'seekr analyze' first.")
		return nil
	}

	out := HistoryOutput{
		Analyses: make([]HistoryEntry, 0, len(entries)),
		Total:    len(entries),
	}
	for _, e := range entries {
		out.Analyses = append(out.Analyses, HistoryEntry{
			ID:          e.ID,
			Date:        e.CreatedAt.Format(time.RFC3339),
			Requirement: e.Requirement,
			ProjectType: e.ProjectType,
			Features:    e.FeatureCount,
			Locations:   e.LocationCount,
		})
	}

	return formatter.FormatToWriter(cmd.OutOrStdout(), out)
}
