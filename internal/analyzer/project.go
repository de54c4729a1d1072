package analyzer

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectType is a coarse ecosystem classification used to pick canned
// run instructions and test stubs. It is derived from scanned file
// extensions plus a small set of marker files, nothing deeper.
type ProjectType string

const (
	// NodeEcosystem is a JavaScript project with a package.json manifest.
	NodeEcosystem ProjectType = "node-ecosystem"
	// PythonProject is any project containing Python sources.
	PythonProject ProjectType = "python"
	// JavaProject is any project containing Java sources.
	JavaProject ProjectType = "java"
	// DotnetProject is any project containing C# sources.
	DotnetProject ProjectType = "dotnet"
	// UnknownProject is the fallback when no classification applies.
	UnknownProject ProjectType = "unknown"
)

// DetectProjectType classifies the scanned project. Precedence is fixed:
// node-ecosystem first (a non-test .js file plus a package.json at the
// root), then python, java, dotnet, and finally unknown.
func (a *Analyzer) DetectProjectType() ProjectType {
	if a.hasNonTestJS() && fileExists(filepath.Join(a.root, "package.json")) {
		return NodeEcosystem
	}
	if a.hasExtension(".py") {
		return PythonProject
	}
	if a.hasExtension(".java") {
		return JavaProject
	}
	if a.hasExtension(".cs") {
		return DotnetProject
	}
	return UnknownProject
}

// hasNonTestJS reports whether any scanned .js file does not follow the
// *.test.js naming convention.
func (a *Analyzer) hasNonTestJS() bool {
	for _, f := range a.files {
		if strings.HasSuffix(f.RelPath, ".js") && !strings.HasSuffix(f.RelPath, ".test.js") {
			return true
		}
	}
	return false
}

func (a *Analyzer) hasExtension(ext string) bool {
	for _, f := range a.files {
		if f.Ext == ext {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
