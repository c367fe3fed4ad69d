// Package rewriting turns raw achievement lines into "Solved X by Y, resulting in Z"
// bullets and enforces run-wide constraints on them.
package rewriting

import (
	"regexp"
	"strings"
)

// MetricPattern matches quantitative figures: percentages, durations and magnitudes.
var MetricPattern = regexp.MustCompile(`(?i)\d+[.,]?\d*\s?(?:%|percent\b|hrs?\b|hours?\b|days?\b|weeks?\b|months?\b|years?\b|k\b|m\b|million\b|billion\b)`)

// plainWords maps inflated vocabulary to simpler words, applied in order
var plainWords = []struct{ from, to string }{
	{"utilized", "used"},
	{"leveraged", "used"},
	{"approximately", "about"},
}

// ExtractMetric returns the first metric-shaped substring of text with "percent"
// written as "%", or "" when there is none.
func ExtractMetric(text string) string {
	match := MetricPattern.FindString(text)
	if match == "" {
		return ""
	}
	return strings.ReplaceAll(match, "percent", "%")
}

// HasMetric reports whether text contains a metric-shaped substring
func HasMetric(text string) bool {
	return MetricPattern.MatchString(text)
}

// SimplifyVocabulary replaces inflated words with plain ones.
func SimplifyVocabulary(text string) string {
	for _, r := range plainWords {
		text = strings.ReplaceAll(text, r.from, r.to)
	}
	return text
}
