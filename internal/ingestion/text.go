// Package ingestion turns uploaded resume and job documents into normalized UTF-8 text.
package ingestion

import (
	"os"
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t]+`)
	trailingSpace   = regexp.MustCompile(`(?m) +$`)
	blankLineRuns   = regexp.MustCompile(`\n{2,}`)
)

// Normalize collapses whitespace and line endings while keeping the blank-line
// structure that section segmentation relies on.
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	// 1. Normalize line endings (CRLF → LF)
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// 2. Collapse runs of spaces/tabs, drop trailing spaces
	content = horizontalSpace.ReplaceAllString(content, " ")
	content = trailingSpace.ReplaceAllString(content, "")

	// 3. Any run of blank lines becomes exactly one
	content = blankLineRuns.ReplaceAllString(content, "\n\n")

	return strings.TrimSpace(content)
}

// IngestFromFile reads a resume or job document, extracts its text and normalizes it.
func IngestFromFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, &ReadError{Path: path, Message: "file not found", Cause: err}
		}
		return "", nil, &ReadError{Path: path, Message: "failed to read file", Cause: err}
	}

	format := DetectFormat(path, content)
	text, err := ExtractText(format, content)
	if err != nil {
		return "", nil, err
	}

	normalized := Normalize(text)
	return normalized, NewMetadata(normalized, path, format), nil
}
