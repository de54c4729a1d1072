// Package match decides whether a function plausibly implements a
// feature, using layered lexical overlap checks.
//
// The judgment is advisory, not authoritative: the checks deliberately
// prefer false positives over false negatives, since the report consumer
// treats every location as a candidate to inspect rather than a verified
// implementation.
package match

import (
	"regexp"
	"strings"
)

var (
	// cjkRuns matches maximal runs of CJK ideographs.
	cjkRuns = regexp.MustCompile(`[\x{4e00}-\x{9fa5}]+`)
	// englishTokens matches alphabetic/underscore tokens.
	englishTokens = regexp.MustCompile(`[a-zA-Z_]+`)
	// lowerRuns matches runs of lowercase letters, used to break a
	// camelCase or snake_case function name into word candidates.
	lowerRuns = regexp.MustCompile(`[a-z]+`)
	// hasUpper signals an internal uppercase letter, the heuristic for
	// camelCase naming.
	hasUpper = regexp.MustCompile(`[A-Z]`)
)

// Relevant reports whether the function named funcName in the file at
// filePath is a candidate implementation of the feature text.
//
// Checks run in fixed priority order and short-circuit on the first hit:
//
//  1. The feature text appears verbatim (case-insensitively) in the file
//     path or the function name.
//  2. Any maximal CJK run from the feature appears in the path or name.
//  3. Any alphabetic/underscore token longer than two characters from
//     the feature appears in the path, appears in the name, is the
//     lowercase prefix of a camelCase name, or equals one of the
//     lowercase-letter runs split out of the name.
func Relevant(filePath, funcName, feature string) bool {
	pathLower := strings.ToLower(filePath)
	nameLower := strings.ToLower(funcName)
	featureLower := strings.ToLower(feature)

	if strings.Contains(pathLower, featureLower) || strings.Contains(nameLower, featureLower) {
		return true
	}

	for _, run := range cjkRuns.FindAllString(feature, -1) {
		word := strings.ToLower(run)
		if strings.Contains(pathLower, word) || strings.Contains(nameLower, word) {
			return true
		}
	}

	nameIsCamel := hasUpper.MatchString(funcName)
	nameWords := lowerRuns.FindAllString(nameLower, -1)

	for _, token := range englishTokens.FindAllString(feature, -1) {
		if len(token) <= 2 {
			continue
		}
		word := strings.ToLower(token)

		if strings.Contains(pathLower, word) {
			return true
		}
		if strings.Contains(nameLower, word) {
			return true
		}
		if nameIsCamel && len(word) <= len(nameLower) && nameLower[:len(word)] == word {
			return true
		}
		if nameIsCamel && containsWord(nameWords, word) {
			return true
		}
	}

	return false
}

func containsWord(words []string, word string) bool {
	for _, w := range words {
		if w == word {
			return true
		}
	}
	return false
}
