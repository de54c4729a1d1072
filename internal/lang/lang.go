// Package lang maps file extensions to supported languages and holds the
// per-language patterns used for declaration detection.
//
// Detection is deliberately line-oriented: each language carries one
// regular expression that matches a function or method declaration when
// the whole declaration fits on a single physical line. This is not a
// parser and makes no attempt at syntactic correctness.
package lang

import "regexp"

// Language represents a supported programming language family.
type Language string

const (
	// Python represents the Python programming language.
	Python Language = "python"
	// JavaScript represents the JavaScript/TypeScript family,
	// including JSX and TSX variants.
	JavaScript Language = "javascript"
	// Java represents the Java programming language.
	Java Language = "java"
	// CSharp represents the C# programming language.
	CSharp Language = "csharp"
	// Cpp represents the C++ programming language.
	Cpp Language = "cpp"
)

// FromExtension returns the language for a file extension.
// Returns empty string if the extension is not recognized.
func FromExtension(ext string) Language {
	switch ext {
	case ".py":
		return Python
	case ".js", ".ts", ".tsx", ".jsx":
		return JavaScript
	case ".java":
		return Java
	case ".cs":
		return CSharp
	case ".cpp":
		return Cpp
	default:
		return ""
	}
}

// SupportedExtensions returns all file extensions recognized for scanning.
func SupportedExtensions() []string {
	return []string{
		".js", ".ts", ".tsx", ".jsx",
		".py",
		".java",
		".cpp",
		".cs",
	}
}

// IsSupportedExtension reports whether ext is on the scan allow-list.
func IsSupportedExtension(ext string) bool {
	return FromExtension(ext) != ""
}

// Declaration patterns, one per language family. Each pattern is anchored
// to the start of the line and captures the function name and the raw
// parameter text. The JavaScript pattern has two alternatives (named
// function declaration, arrow assignment) and therefore four groups; the
// other languages use groups 1 and 2.
var (
	pythonDecl = regexp.MustCompile(`^\s*def\s+(\w+)\s*\(([^)]*)\)\s*:`)

	javascriptDecl = regexp.MustCompile(`^(?:export\s+)?(?:async\s+)?function\s+(\w+)\s*\(([^)]*)\)|^\s*(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?\(\s*([^)]*)\s*\)\s*=>`)

	javaDecl = regexp.MustCompile(`^(?:public|private|protected|static|final|abstract)\s*(?:\w+\s+)*\s+(\w+)\s*\(([^)]*)\)`)

	cppDecl = regexp.MustCompile(`^(?:\w+\s+)*(?:\*|&)?\s*(\w+)\s*\(([^)]*)\)`)
)

// Comment prefixes per family. Used by the extent estimator to skip
// comment-only lines when probing for a function boundary.
var (
	hashComment  = regexp.MustCompile(`^\s*#`)
	slashComment = regexp.MustCompile(`^\s*(//|/\*|\*/)`)
)

// DeclPattern returns the declaration regexp for the language, or nil if
// the language has none.
func (l Language) DeclPattern() *regexp.Regexp {
	switch l {
	case Python:
		return pythonDecl
	case JavaScript:
		return javascriptDecl
	case Java, CSharp:
		return javaDecl
	case Cpp:
		return cppDecl
	default:
		return nil
	}
}

// CommentPattern returns the regexp matching a comment-only line for the
// language, or nil if the language has none.
func (l Language) CommentPattern() *regexp.Regexp {
	switch l {
	case Python:
		return hashComment
	case JavaScript, Java, CSharp, Cpp:
		return slashComment
	default:
		return nil
	}
}

// DeclGroups extracts the function name and raw parameter text from a
// declaration match produced by DeclPattern. For JavaScript the match may
// come from either alternative, so both group pairs are consulted.
func (l Language) DeclGroups(match []string) (name, params string) {
	if l == JavaScript {
		name = match[1]
		params = match[2]
		if name == "" {
			name = match[3]
			params = match[4]
		}
		return name, params
	}
	return match[1], match[2]
}
