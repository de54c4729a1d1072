// Package extract detects function declarations in scanned source files
// and estimates each function's body extent.
//
// Detection is regex-based and line-oriented: a declaration is only found
// when it fits on one physical line, and the first match per line wins.
// Extent estimation compares leading-whitespace widths and skips comment
// and blank lines; it does not track nesting, string literals, or block
// comments, so boundaries in unconventionally indented code are a best
// guess. Both limitations are accepted behavior, not defects.
package extract

import (
	"strings"

	"github.com/seekr-dev/seekr/internal/lang"
)

// FunctionRecord is a detected function or method declaration with its
// heuristically estimated body extent. Lines are 1-based and EndLine is
// inclusive.
type FunctionRecord struct {
	Name      string
	Params    string
	StartLine int
	EndLine   int
}

// Functions scans the line sequence of a file with the given extension
// and returns detected functions keyed by name.
//
// If two declarations share a name, the later one overwrites the earlier
// (last-write-wins). Nested and overloaded same-named functions therefore
// collapse to a single record; this matches the documented contract.
func Functions(lines []string, ext string) map[string]FunctionRecord {
	functions := make(map[string]FunctionRecord)

	language := lang.FromExtension(ext)
	pattern := language.DeclPattern()
	if pattern == nil {
		return functions
	}

	for i, line := range lines {
		match := pattern.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		name, params := language.DeclGroups(match)
		if name == "" {
			continue
		}

		start := i + 1
		functions[name] = FunctionRecord{
			Name:      name,
			Params:    strings.TrimSpace(params),
			StartLine: start,
			EndLine:   EstimateEnd(lines, start, language),
		}
	}

	return functions
}

// EstimateEnd returns the best-guess 1-based inclusive end line for a
// function whose declaration is at 1-based line start.
//
// The heuristic records the declaration line's indentation, then scans
// forward. Comment-only lines are skipped regardless of indentation, as
// are blank lines. The first remaining line indented at or below the
// declaration ends the function; a line at column zero ends it
// immediately. If no boundary is found, the file's total line count is
// returned.
func EstimateEnd(lines []string, start int, language lang.Language) int {
	if start < 1 || start > len(lines) {
		return start
	}

	startIndent := indentWidth(lines[start-1])
	comment := language.CommentPattern()

	for n := start + 1; n <= len(lines); n++ {
		line := lines[n-1]

		if comment != nil && comment.MatchString(line) {
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := indentWidth(line)
		if indent == 0 || indent <= startIndent {
			// The boundary line belongs to whatever follows; the
			// function ends on the line before it.
			return n - 1
		}
	}

	return len(lines)
}

// indentWidth returns the number of leading whitespace characters.
func indentWidth(line string) int {
	for i, r := range line {
		if r != ' ' && r != '\t' {
			return i
		}
	}
	return len(line)
}
