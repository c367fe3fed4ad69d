// Package extraction segments normalized resume text into blocks and pulls
// structured fields (heading, roles, dates, bullets, skills) out of them.
package extraction

import (
	"regexp"
	"strings"
)

var (
	blockSeparator = regexp.MustCompile(`\n{2,}`)
	// DatePattern matches month-year dates such as "Jan 2019", "Sept. 2020" or "March 2021".
	DatePattern = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Sept|Oct|Nov|Dec)[a-z]*\.?\s+\d{4}`)
	// sectionHeader matches lines that only name a section, e.g. "Work Experience:" or
	// "Side Projects". A qualified singular line such as "Side project" is a title.
	sectionHeader = regexp.MustCompile(`(?i)^(?:(?:work |professional |relevant )?(?:experience|employment(?: history)?)|(?:personal |side |selected |key )?projects|project)\s*:?$`)
)

// Limits caps how much of the resume is carried into the payload.
type Limits struct {
	MaxExperienceBlocks  int
	MaxExperienceBullets int
	MaxProjectBullets    int
	MaxSkills            int
}

// DefaultLimits returns the standard caps: 5 roles, 5 bullets per role, 4 per project, 12 skills.
func DefaultLimits() Limits {
	return Limits{
		MaxExperienceBlocks:  5,
		MaxExperienceBullets: 5,
		MaxProjectBullets:    4,
		MaxSkills:            12,
	}
}

// SplitBlocks splits text on blank lines.
func SplitBlocks(text string) []string {
	return blockSeparator.Split(text, -1)
}

// ExperienceBlocks returns the blocks that look like work history, in source order.
// A block qualifies when it mentions "experience" or carries a month-year date.
func ExperienceBlocks(text string, maxBlocks int) []string {
	var blocks []string
	for _, block := range SplitBlocks(text) {
		if strings.Contains(strings.ToLower(block), "experience") || DatePattern.MatchString(block) {
			blocks = append(blocks, block)
		}
	}
	if maxBlocks > 0 && len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}
	return blocks
}

// ProjectBlocks returns the blocks that mention "project". No cap is applied.
func ProjectBlocks(text string) []string {
	var blocks []string
	for _, block := range SplitBlocks(text) {
		if strings.Contains(strings.ToLower(block), "project") {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// contentLines returns the non-empty lines of a block with bullet glyphs trimmed
// and leading section-header lines skipped.
func contentLines(block string) []string {
	var lines []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.Trim(line, " -•\t")
		if line == "" {
			continue
		}
		if len(lines) == 0 && sectionHeader.MatchString(line) {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
