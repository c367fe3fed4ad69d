package extraction

import (
	"regexp"
	"strings"
)

var (
	disallowedChars = regexp.MustCompile(`[^A-Za-z0-9@+./: -]`)
	whitespaceRuns  = regexp.MustCompile(`\s+`)
)

// SimplifyWords strips characters outside a conservative ATS-safe set and
// collapses whitespace.
func SimplifyWords(text string) string {
	clean := disallowedChars.ReplaceAllString(text, "")
	clean = whitespaceRuns.ReplaceAllString(clean, " ")
	return strings.TrimSpace(clean)
}
