// Package report provides the schema types for seekr analysis reports.
//
// Reports map feature statements extracted from a requirement to the
// candidate functions that may implement them, together with a suggested
// run procedure and, in the full report, a stub test file and a simulated
// verification result. All location data is heuristic.
package report

import "time"

// Location associates a feature with one candidate implementing function.
type Location struct {
	// File is the slash-separated path relative to the analyzed root.
	File string `yaml:"file" json:"file"`
	// Function is the detected function name.
	Function string `yaml:"function" json:"function"`
	// Lines is the estimated extent as a "start-end" line range string,
	// 1-based and inclusive.
	Lines string `yaml:"lines" json:"lines"`
}

// FeatureAnalysis is the result for one feature statement: the statement
// itself and every candidate location, in scan order. A feature with no
// candidates has an empty (not nil) location list.
type FeatureAnalysis struct {
	FeatureDescription      string     `yaml:"feature_description" json:"feature_description"`
	ImplementationLocations []Location `yaml:"implementation_location" json:"implementation_location"`
}

// AnalysisReport is the basic report: per-feature locations in requirement
// order plus the canned run suggestion for the detected project type.
type AnalysisReport struct {
	GeneratedAt             time.Time         `yaml:"generated_at" json:"generated_at"`
	FeatureAnalysis         []FeatureAnalysis `yaml:"feature_analysis" json:"feature_analysis"`
	ExecutionPlanSuggestion string            `yaml:"execution_plan_suggestion" json:"execution_plan_suggestion"`
}

// VerificationResult is the output of the verification stage.
//
// The verification stage is a placeholder: it never executes the generated
// test code and always reports simulated success. ExecutionResult.Log
// states this explicitly so the result cannot be mistaken for a real run.
type VerificationResult struct {
	GeneratedTestCode string          `yaml:"generated_test_code" json:"generated_test_code"`
	ExecutionResult   ExecutionResult `yaml:"execution_result" json:"execution_result"`
}

// ExecutionResult is the simulated outcome of running generated tests.
type ExecutionResult struct {
	TestsPassed bool   `yaml:"tests_passed" json:"tests_passed"`
	Log         string `yaml:"log" json:"log"`
}

// FullReport extends AnalysisReport with the verification stage output.
type FullReport struct {
	AnalysisReport         `yaml:",inline"`
	FunctionalVerification *VerificationResult `yaml:"functional_verification,omitempty" json:"functional_verification,omitempty"`
}

// NewAnalysisReport creates an AnalysisReport with the timestamp set and
// an empty feature list ready to be populated in requirement order.
func NewAnalysisReport() *AnalysisReport {
	return &AnalysisReport{
		GeneratedAt:     time.Now().UTC(),
		FeatureAnalysis: []FeatureAnalysis{},
	}
}

// FeatureCount returns the number of analyzed features.
func (r *AnalysisReport) FeatureCount() int {
	return len(r.FeatureAnalysis)
}

// LocationCount returns the total number of candidate locations across
// all features.
func (r *AnalysisReport) LocationCount() int {
	total := 0
	for _, fa := range r.FeatureAnalysis {
		total += len(fa.ImplementationLocations)
	}
	return total
}
