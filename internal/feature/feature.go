// Package feature segments a natural-language requirement into discrete
// feature statements.
//
// Splitting is purely lexical: sentence-terminating punctuation divides
// the text, and a fixed trigger-keyword set decides which sentences start
// a new feature. There is no semantic interpretation of the requirement.
package feature

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// sentenceDelims splits on the full-width period, the full-width
// semicolon, and the half-width semicolon.
var sentenceDelims = regexp.MustCompile(`[。；;]`)

// triggerKeywords mark a sentence as describing a new feature. The set is
// fixed and matches the requirement language the service is used with.
var triggerKeywords = []string{
	"实现", // implement
	"添加", // add
	"创建", // create
	"支持", // support
	"提供", // provide
	"开发", // develop
	"设计", // design
}

// minSupplementLen is the length in runes above which a keyword-less
// sentence is treated as supplementary detail for the previous feature
// rather than dropped.
const minSupplementLen = 10

// Split segments the requirement into feature statements, in sentence
// order.
//
// A sentence containing a trigger keyword starts a new feature. A
// keyword-less sentence longer than ten characters is appended to the
// most recent feature; shorter ones are discarded. If no sentence carries
// a trigger keyword, the whole requirement becomes the single feature, so
// an empty feature list is only possible for an empty requirement.
func Split(requirement string) []string {
	var features []string

	for _, raw := range sentenceDelims.Split(requirement, -1) {
		sentence := strings.TrimSpace(raw)
		if sentence == "" {
			continue
		}

		if containsTrigger(sentence) {
			features = append(features, sentence)
			continue
		}
		if len(features) > 0 && utf8.RuneCountInString(sentence) > minSupplementLen {
			features[len(features)-1] += " " + sentence
		}
	}

	if len(features) == 0 && strings.TrimSpace(requirement) != "" {
		features = []string{requirement}
	}

	return features
}

func containsTrigger(sentence string) bool {
	for _, kw := range triggerKeywords {
		if strings.Contains(sentence, kw) {
			return true
		}
	}
	return false
}
