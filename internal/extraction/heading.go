package extraction

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/types"
)

// Heading defaults
const (
	DefaultName     = "Name Surname"
	DefaultTitle    = "Automation QA Engineer"
	DefaultPhone    = "123-456-7890"
	DefaultEmail    = "namesurname@gmail.com"
	DefaultLinkedIn = "https://www.linkedin.com/in/namesurname/"
	DefaultGitHub   = "https://github.com/namesurname"
)

// titleWindow bounds how much text is analyzed for a job-title hint
const titleWindow = 2000

var (
	phonePattern = regexp.MustCompile(`\+?\d[\d\-()\s]{6,}\d`)
	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+(?:\.[\w-]+)+`)
	urlPattern   = regexp.MustCompile(`https?://\S+`)
	titleWords   = regexp.MustCompile(`(?i)\b(?:engineer|developer|manager|analyst|designer|scientist|architect|consultant|lead|tester)\b`)
)

var titleCaser = cases.Title(language.English)

// Heading builds the contact block from the first lines of the resume.
func Heading(ctx context.Context, analyzer nlp.Analyzer, text string) (types.Heading, error) {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	heading := types.Heading{
		Name:     DefaultName,
		Phone:    DefaultPhone,
		Email:    DefaultEmail,
		LinkedIn: DefaultLinkedIn,
		GitHub:   DefaultGitHub,
	}
	if len(lines) > 0 {
		heading.Name = orDefault(SimplifyWords(titleCaser.String(lines[0])), DefaultName)
	}

	// Phone numbers are only trusted in the top block; date ranges elsewhere look alike.
	blocks := SplitBlocks(text)
	if match := phonePattern.FindString(blocks[0]); match != "" {
		heading.Phone = strings.TrimSpace(whitespaceRuns.ReplaceAllString(match, " "))
	}

	for _, line := range lines {
		if match := emailPattern.FindString(line); match != "" {
			heading.Email = match
			break
		}
	}
	if link := findLink(lines, "linkedin"); link != "" {
		heading.LinkedIn = link
	}
	if link := findLink(lines, "github"); link != "" {
		heading.GitHub = link
	}

	title, err := inferTitle(ctx, analyzer, text, blocks[0])
	if err != nil {
		return types.Heading{}, err
	}
	heading.Title = title

	return heading, nil
}

func findLink(lines []string, keyword string) string {
	for _, line := range lines {
		if !strings.Contains(strings.ToLower(line), keyword) {
			continue
		}
		for _, url := range urlPattern.FindAllString(line, -1) {
			if strings.Contains(strings.ToLower(url), keyword) {
				return url
			}
		}
	}
	return ""
}

// inferTitle prefers an organisation/job-title entity, then a title-like line in the top block.
func inferTitle(ctx context.Context, analyzer nlp.Analyzer, text, topBlock string) (string, error) {
	window := text
	if runes := []rune(text); len(runes) > titleWindow {
		window = string(runes[:titleWindow])
	}

	doc, err := analyzer.Analyze(ctx, window)
	if err != nil {
		return "", fmt.Errorf("failed to analyze heading: %w", err)
	}
	for _, ent := range doc.Entities {
		label := strings.ToLower(ent.Label)
		if label == "job_title" || label == "org" {
			if title := SimplifyWords(ent.Text); title != "" {
				return title, nil
			}
		}
	}

	topLines := strings.Split(topBlock, "\n")
	for _, line := range topLines[min(1, len(topLines)):] {
		if titleWords.MatchString(line) {
			if title := SimplifyWords(line); title != "" {
				return title, nil
			}
		}
	}
	return DefaultTitle, nil
}
