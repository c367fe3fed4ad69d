package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/resumate/internal/nlp"
)

const (
	// minBulletChars is the length a marked bullet must exceed to be kept
	minBulletChars = 10
	// minSentenceWords is the word count a prose sentence needs to count as a bullet
	minSentenceWords = 6
)

// bulletLine matches lines starting with a dash/bullet glyph or a numbered-list marker
var bulletLine = regexp.MustCompile(`(?m)^[ \t]*(?:[-•*]+|\d+\.)[ \t]*(.+)$`)

// RawBullets extracts achievement lines from a block. Explicitly marked list
// items win; prose blocks fall back to sentences of six words or more.
func RawBullets(ctx context.Context, analyzer nlp.Analyzer, block string) ([]string, error) {
	matches := bulletLine.FindAllStringSubmatch(block, -1)
	if len(matches) > 0 {
		var bullets []string
		for _, m := range matches {
			if line := strings.TrimSpace(m[1]); len(line) > minBulletChars {
				bullets = append(bullets, line)
			}
		}
		return bullets, nil
	}

	doc, err := analyzer.Analyze(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("failed to segment block into sentences: %w", err)
	}

	var bullets []string
	for _, sent := range doc.Sentences {
		sent = strings.TrimSpace(sent)
		if len(strings.Fields(sent)) >= minSentenceWords {
			bullets = append(bullets, sent)
		}
	}
	return bullets, nil
}
