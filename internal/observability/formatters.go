// Package observability provides logging and formatted output for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/rewriting"
	"github.com/jonathan/resumate/internal/scoring"
	"github.com/jonathan/resumate/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to n runes, ending in "..." when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// PrintKeywords outputs the detected industry and the ranked job vocabulary.
func (p *Printer) PrintKeywords(weights types.KeywordWeights, industry analysis.Industry) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Industry: %s\n\n", industry))

	if len(weights.Skills) > 0 {
		sb.WriteString("Skills:\n")
		sb.WriteString(listItems(weights.Skills))
	}
	if len(weights.Domains) > 0 {
		sb.WriteString("\nDomains:\n")
		sb.WriteString(listItems(weights.Domains))
	}

	p.printBox("JOB KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

func listItems(items []string) string {
	var sb strings.Builder
	count := min(len(items), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
	}
	return sb.String()
}

// PrintPayload outputs the heading, entries and bullets of a rewritten resume.
func (p *Printer) PrintPayload(payload *types.ResumePayload) {
	if payload == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s | %s\n", payload.Heading.Name, payload.Heading.Title))
	sb.WriteString(fmt.Sprintf("%s | %s\n\n", payload.Heading.Email, payload.Heading.Phone))

	for _, exp := range payload.Experiences {
		sb.WriteString(fmt.Sprintf("%s @ %s (%s - %s)\n", exp.Role, exp.Company, exp.Start, exp.End))
		writeBullets(&sb, exp.Bullets)
	}
	for _, proj := range payload.Projects {
		sb.WriteString(fmt.Sprintf("%s [%s]\n", proj.Name, proj.Stack))
		writeBullets(&sb, proj.Bullets)
	}
	sb.WriteString(fmt.Sprintf("Skills: %s", strings.Join(payload.Skills, ", ")))

	p.printBox("REWRITTEN RESUME", sb.String())
}

func writeBullets(sb *strings.Builder, bullets []types.Bullet) {
	for _, b := range bullets {
		marker := "•"
		if b.HasMetric {
			marker = "#"
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", marker, b.Text))
	}
	sb.WriteString("\n")
}

// PrintBalance outputs the result of the metric-density pass.
func (p *Printer) PrintBalance(result rewriting.BalanceResult) {
	if result.Total == 0 {
		return
	}

	lo, hi := rewriting.MetricBounds(result.Total)
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Metric bullets: %d / %d (target %d-%d)\n", result.Metric, result.Total, lo, hi))
	sb.WriteString(fmt.Sprintf("Promoted: %d\n", result.Promoted))
	sb.WriteString(fmt.Sprintf("Demoted:  %d", result.Demoted))

	p.printBox("METRIC BALANCE", sb.String())
}

// PrintReport outputs the ATS score with matched and missing keywords.
func (p *Printer) PrintReport(report scoring.Report) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("ATS score: %d\n\n", report.Score))

	if len(report.KeywordsMatched) > 0 {
		sb.WriteString("Matched:\n")
		sb.WriteString(listItems(report.KeywordsMatched))
	}
	if len(report.KeywordsMissing) > 0 {
		sb.WriteString("Missing:\n")
		sb.WriteString(listItems(report.KeywordsMissing))
	}
	if len(report.Transformations) > 0 {
		sb.WriteString("\nChanges:\n")
		for _, t := range report.Transformations {
			sb.WriteString(fmt.Sprintf("  ✓ %s\n", t))
		}
	}

	p.printBox("ATS REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
