package extraction

import (
	"regexp"
	"strings"
)

// DefaultEducation is used when no degree or university line is found
const DefaultEducation = "Engineer's Degree, Faculty of Electronics and Instrument Making"

// DefaultSkills is used when the resume has no skills block
var DefaultSkills = []string{"Java", "TypeScript", "SQL", "Selenium", "Cucumber"}

// DefaultCertifications is used when no certification line is found
var DefaultCertifications = []string{"Cloud Digital Leader - Google Cloud (Sep 2022 - Sep 2025)"}

var (
	skillSeparators = regexp.MustCompile(`[,|\n]`)
	// skillsLabel strips "Skills", "Technical Skills:" and similar leading labels
	skillsLabel      = regexp.MustCompile(`(?i)^[\w &/]*skills?\s*:?\s*`)
	educationPattern = regexp.MustCompile(`(?i)\b(?:Bachelor|Master|Engineer'?s Degree|B\.Sc|M\.Sc|Ph\.?D|University)[^\n]*`)
)

// Skills returns the comma/pipe separated items of the first block mentioning "skill",
// deduplicated in first-seen order and capped at maxSkills.
func Skills(text string, maxSkills int) []string {
	var section string
	for _, block := range SplitBlocks(text) {
		if strings.Contains(strings.ToLower(block), "skill") {
			section = block
			break
		}
	}
	if section == "" {
		return append([]string(nil), DefaultSkills...)
	}

	lines := strings.Split(section, "\n")
	for i, line := range lines {
		lines[i] = skillsLabel.ReplaceAllString(strings.TrimSpace(line), "")
	}

	seen := make(map[string]bool)
	var skills []string
	for _, item := range skillSeparators.Split(strings.Join(lines, "\n"), -1) {
		skill := SimplifyWords(item)
		if len(skill) <= 1 || seen[skill] {
			continue
		}
		seen[skill] = true
		skills = append(skills, skill)
	}

	if len(skills) == 0 {
		return append([]string(nil), DefaultSkills...)
	}
	if maxSkills > 0 && len(skills) > maxSkills {
		skills = skills[:maxSkills]
	}
	return skills
}

// Education returns the first degree/university mention, from the keyword to end of line.
func Education(text string) string {
	if match := strings.TrimSpace(educationPattern.FindString(text)); match != "" {
		return match
	}
	return DefaultEducation
}

// Certifications returns every line mentioning a certification.
func Certifications(text string) []string {
	var certs []string
	for _, line := range strings.Split(text, "\n") {
		if !strings.Contains(strings.ToLower(line), "cert") {
			continue
		}
		if cert := SimplifyWords(line); cert != "" {
			certs = append(certs, cert)
		}
	}
	if len(certs) == 0 {
		return append([]string(nil), DefaultCertifications...)
	}
	return certs
}
