package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resumate/internal/types"
)

// maxReportKeywords caps the matched and missing keyword lists
const maxReportKeywords = 30

// wordPattern matches words of four or more characters
var wordPattern = regexp.MustCompile(`\b\w{4,}\b`)

// stopWords are filler words long enough to pass wordPattern
var stopWords = map[string]bool{
	"about": true, "also": true, "been": true, "from": true, "have": true,
	"into": true, "looking": true, "must": true, "than": true, "that": true,
	"their": true, "them": true, "they": true, "this": true, "were": true,
	"what": true, "when": true, "which": true, "while": true, "will": true,
	"with": true, "would": true, "your": true, "ours": true, "there": true,
}

// DefaultTransformations are reported when no concrete change was detected
var DefaultTransformations = []string{
	"Rewrote bullets into ATS-friendly 'Solved X by Y, resulting in Z' structure",
	"Aligned skills and experience with job description keywords",
	"Generated a structured resume payload matching the target format",
}

// Report summarizes how a payload lines up against a job description
type Report struct {
	Score           int      `json:"ats_score"`
	KeywordsMatched []string `json:"keywords_matched"`
	KeywordsMissing []string `json:"keywords_missing"`
	Transformations []string `json:"transformations"`
}

// Report scores the payload and lists job keywords it covers and misses,
// along with the transformations that were applied.
func (s *Scorer) Report(payload *types.ResumePayload, jobText string, weights types.KeywordWeights) Report {
	payloadText := strings.ToLower(PayloadText(payload))
	jobLower := strings.ToLower(jobText)

	payloadCounts := wordCounts(payloadText)
	jobCounts := wordCounts(jobLower)

	matched, missing := []string{}, []string{}
	for word := range jobCounts {
		if payloadCounts[word] > 0 {
			matched = append(matched, word)
		} else {
			missing = append(missing, word)
		}
	}
	sortByCount(matched, payloadCounts)
	sortByCount(missing, jobCounts)

	return Report{
		Score:           s.Score(payload, jobText),
		KeywordsMatched: truncate(matched, maxReportKeywords),
		KeywordsMissing: truncate(missing, maxReportKeywords),
		Transformations: transformations(payload, payloadText, weights),
	}
}

func transformations(payload *types.ResumePayload, payloadText string, weights types.KeywordWeights) []string {
	if payload == nil {
		return append([]string(nil), DefaultTransformations...)
	}

	var out []string
	bullets := payload.AllBullets()
	if len(bullets) > 0 {
		out = append(out, fmt.Sprintf("Rewrote %d bullet points into ATS-friendly 'Solved X by Y, resulting in Z' structure", len(bullets)))
	}

	aligned := 0
	for _, skill := range weights.Skills {
		if skill != "" && strings.Contains(payloadText, strings.ToLower(skill)) {
			aligned++
		}
	}
	if aligned > 0 {
		out = append(out, fmt.Sprintf("Added %d job-relevant keywords to align with job description", aligned))
	}

	metrics := 0
	for _, b := range bullets {
		if b.HasMetric {
			metrics++
		}
	}
	if metrics > 0 {
		out = append(out, fmt.Sprintf("Included %d quantifiable metrics to demonstrate impact", metrics))
	}

	if len(out) == 0 {
		return append([]string(nil), DefaultTransformations...)
	}
	return out
}

// PayloadText flattens the visible text of a payload
func PayloadText(payload *types.ResumePayload) string {
	if payload == nil {
		return ""
	}
	parts := []string{payload.Heading.Name, payload.Heading.Title}
	for _, exp := range payload.Experiences {
		parts = append(parts, exp.Role, exp.Company)
		for _, b := range exp.Bullets {
			parts = append(parts, b.Text)
		}
	}
	parts = append(parts, payload.Skills...)
	for _, proj := range payload.Projects {
		parts = append(parts, proj.Name, proj.Stack)
		for _, b := range proj.Bullets {
			parts = append(parts, b.Text)
		}
	}
	parts = append(parts, payload.Education)
	parts = append(parts, payload.Certifications...)
	return strings.Join(parts, "\n")
}

func wordCounts(text string) map[string]int {
	counts := make(map[string]int)
	for _, w := range wordPattern.FindAllString(text, -1) {
		if !stopWords[w] {
			counts[w]++
		}
	}
	return counts
}

// sortByCount orders by descending count, then alphabetically
func sortByCount(words []string, counts map[string]int) {
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
}

func truncate(words []string, n int) []string {
	if len(words) > n {
		return words[:n]
	}
	return words
}
