package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/seekr-dev/seekr/internal/analyzer"
	"github.com/seekr-dev/seekr/internal/config"
	"github.com/seekr-dev/seekr/internal/history"
	"github.com/seekr-dev/seekr/internal/report"
	"github.com/seekr-dev/seekr/internal/workspace"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <dir|archive.zip>",
	Short: "Map a requirement to the code that implements it",
	Long: `Analyze a source project against a requirement description.

The target can be a directory or a ZIP archive; archives are extracted
into a temporary workspace that is removed when the analysis finishes.
The requirement is split into individual features and each feature is
mapped to the functions whose name or file path it matches.

The requirement text comes from --requirement. Prefix the value with @
to read it from a file instead.

Examples:
  seekr analyze ./shop -r "实现用户登录功能；添加密码加密模块"
  seekr analyze shop.zip -r @requirement.txt
  seekr analyze ./shop -r "用户登录" --verify --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeRequirement string
	analyzeVerify      bool
	analyzeNoHistory   bool
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeRequirement, "requirement", "r", "", "Requirement description (prefix with @ to read from a file)")
	analyzeCmd.Flags().BoolVar(&analyzeVerify, "verify", false, "Include the simulated functional verification section")
	analyzeCmd.Flags().BoolVar(&analyzeNoHistory, "no-history", false, "Do not record this analysis in the history database")
	analyzeCmd.MarkFlagRequired("requirement")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := buildLogger(cfg)

	formatter, err := newFormatter()
	if err != nil {
		return err
	}

	requirement, err := resolveRequirement(analyzeRequirement)
	if err != nil {
		return err
	}

	codeDir, cleanup, err := resolveTarget(args[0], logger)
	if err != nil {
		return err
	}
	defer cleanup()

	a, err := analyzer.New(cmd.Context(), codeDir, analyzer.Options{
		Logger:   logger,
		SkipDirs: cfg.Scan.SkipDirs,
	})
	if err != nil {
		return err
	}
	logger.Debug("scan complete", "files", a.FileCount())

	var result *report.AnalysisReport
	var body interface{}
	if analyzeVerify {
		full := a.AnalyzeWithVerification(requirement)
		result = &full.AnalysisReport
		body = full
	} else {
		result = a.Analyze(requirement)
		body = result
	}

	if err := formatter.FormatToWriter(cmd.OutOrStdout(), body); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if !analyzeNoHistory && !cfg.History.Disabled {
		recordAnalysis(logger, requirement, string(a.DetectProjectType()), result)
	}

	return nil
}

// resolveRequirement returns the requirement text, reading it from a file
// when the value starts with @.
func resolveRequirement(value string) (string, error) {
	if !strings.HasPrefix(value, "@") {
		return value, nil
	}
	path := strings.TrimPrefix(value, "@")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading requirement file: %w", err)
	}
	return string(data), nil
}

// resolveTarget returns the directory to analyze. ZIP targets are
// extracted into a temporary workspace; the returned cleanup removes it.
func resolveTarget(target string, logger *slog.Logger) (string, func(), error) {
	noop := func() {}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", noop, fmt.Errorf("resolving %s: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", noop, fmt.Errorf("cannot access %s: %w", target, err)
	}

	if info.IsDir() {
		return abs, noop, nil
	}

	if !workspace.ValidExtension(abs, []string{"zip"}) {
		return "", noop, fmt.Errorf("%s is neither a directory nor a ZIP archive", target)
	}

	ws, err := workspace.Create(logger)
	if err != nil {
		return "", noop, fmt.Errorf("creating workspace: %w", err)
	}

	codeDir, err := ws.ExtractZip(abs)
	if err != nil {
		ws.Cleanup()
		return "", noop, fmt.Errorf("extracting %s: %w", target, err)
	}

	return ws.ProjectRoot(codeDir), ws.Cleanup, nil
}

// recordAnalysis stores the report in the nearest .seekr history
// database. Recording is advisory: missing initialization or a write
// failure produces a log line, not an error.
func recordAnalysis(logger *slog.Logger, requirement, projectType string, r *report.AnalysisReport) {
	seekrDir, err := config.FindConfigDir(".")
	if err != nil {
		logger.Debug("history not recorded: seekr not initialized")
		return
	}

	store, err := history.Open(seekrDir)
	if err != nil {
		logger.Warn("history not recorded", "error", err)
		return
	}
	defer store.Close()

	id, err := store.Record(requirement, projectType, r)
	if err != nil {
		logger.Warn("history not recorded", "error", err)
		return
	}
	logger.Debug("analysis recorded", "id", id)
}
