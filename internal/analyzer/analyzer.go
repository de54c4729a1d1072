// Package analyzer runs the feature-location pipeline over a scanned
// source tree and assembles the resulting reports.
//
// One Analyzer serves one analysis session: it scans the tree at
// construction, holds the file contents in memory, and is discarded when
// the session ends. Nothing is cached across sessions; function records
// are recomputed fresh for every analysis.
package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/seekr-dev/seekr/internal/extract"
	"github.com/seekr-dev/seekr/internal/feature"
	"github.com/seekr-dev/seekr/internal/logging"
	"github.com/seekr-dev/seekr/internal/match"
	"github.com/seekr-dev/seekr/internal/report"
	"github.com/seekr-dev/seekr/internal/scanner"
)

// Options configures an Analyzer. The zero value is usable: a nil Logger
// discards log output and an empty SkipDirs adds nothing beyond the
// scanner's built-in exclusions.
type Options struct {
	// Logger receives scan and analysis progress. Nil discards.
	Logger *slog.Logger
	// SkipDirs are additional directory names the scan ignores.
	SkipDirs []string
}

// Analyzer holds one analysis session over a scanned source tree.
type Analyzer struct {
	root   string
	files  []scanner.SourceFile
	logger *slog.Logger
}

// New scans the source tree rooted at root and returns an analyzer over
// it. Unreadable files are skipped during the scan; only a failure to
// walk the root itself (or ctx cancellation) is returned as an error.
func New(ctx context.Context, root string, opts Options) (*Analyzer, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	files, err := scanner.New(logger, opts.SkipDirs).Scan(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	return &Analyzer{root: root, files: files, logger: logger}, nil
}

// FileCount returns the number of files loaded by the scan.
func (a *Analyzer) FileCount() int {
	return len(a.files)
}

// AnalyzeFeatures splits the requirement into features and maps each one
// to its candidate implementing functions.
//
// Results are in feature order; within a feature, locations follow file
// scan order, and within a file, declaration order. A feature with no
// candidates gets an empty location list rather than an error.
func (a *Analyzer) AnalyzeFeatures(requirement string) []report.FeatureAnalysis {
	features := feature.Split(requirement)
	a.logger.Info("requirement split into features", "count", len(features))

	// Function records are per-analysis: extracted once here, discarded
	// with the session.
	type fileFunctions struct {
		file  scanner.SourceFile
		funcs []extract.FunctionRecord
	}
	extracted := make([]fileFunctions, 0, len(a.files))
	for _, f := range a.files {
		extracted = append(extracted, fileFunctions{
			file:  f,
			funcs: sortedFunctions(extract.Functions(f.Lines, f.Ext)),
		})
	}

	results := make([]report.FeatureAnalysis, 0, len(features))
	for _, feat := range features {
		locations := []report.Location{}

		for _, ff := range extracted {
			for _, fn := range ff.funcs {
				if !match.Relevant(ff.file.RelPath, fn.Name, feat) {
					continue
				}
				locations = append(locations, report.Location{
					File:     ff.file.RelPath,
					Function: fn.Name,
					Lines:    fmt.Sprintf("%d-%d", fn.StartLine, fn.EndLine),
				})
			}
		}

		results = append(results, report.FeatureAnalysis{
			FeatureDescription:      feat,
			ImplementationLocations: locations,
		})
		a.logger.Info("feature analyzed", "feature", feat, "locations", len(locations))
	}

	return results
}

// Analyze runs the full basic pipeline and assembles an AnalysisReport.
func (a *Analyzer) Analyze(requirement string) *report.AnalysisReport {
	r := report.NewAnalysisReport()
	r.FeatureAnalysis = a.AnalyzeFeatures(requirement)
	r.ExecutionPlanSuggestion = a.SuggestExecutionPlan()
	return r
}

// AnalyzeWithVerification runs the basic pipeline plus the verification
// stage. The verification output is simulated; see VerifyFunctionality.
func (a *Analyzer) AnalyzeWithVerification(requirement string) *report.FullReport {
	full := &report.FullReport{AnalysisReport: *a.Analyze(requirement)}
	full.FunctionalVerification = &report.VerificationResult{
		GeneratedTestCode: a.GenerateTestCode(),
		ExecutionResult:   a.VerifyFunctionality(),
	}
	return full
}

// sortedFunctions flattens the name-keyed function map into declaration
// order so report output is deterministic across runs.
func sortedFunctions(m map[string]extract.FunctionRecord) []extract.FunctionRecord {
	funcs := make([]extract.FunctionRecord, 0, len(m))
	for _, fn := range m {
		funcs = append(funcs, fn)
	}
	sort.Slice(funcs, func(i, j int) bool {
		if funcs[i].StartLine != funcs[j].StartLine {
			return funcs[i].StartLine < funcs[j].StartLine
		}
		return funcs[i].Name < funcs[j].Name
	})
	return funcs
}
