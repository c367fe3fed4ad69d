package extraction

import "github.com/jonathan/resumate/internal/types"

// Placeholder values used when a field cannot be recovered from the text
const (
	DefaultRole     = "Automation QA Engineer"
	DefaultCompany  = "Company"
	DefaultLocation = "City, Country"
	DefaultStart    = "Jan 2020"
	DefaultEnd      = "Present"
)

// ParseExperience reads role, company and dates from an experience block.
// Bullets are left empty; they are filled in by the rewriter.
func ParseExperience(block string) types.Experience {
	lines := contentLines(block)

	exp := types.Experience{
		Role:     DefaultRole,
		Company:  DefaultCompany,
		Location: DefaultLocation,
		Start:    DefaultStart,
		End:      DefaultEnd,
	}
	if len(lines) > 0 {
		exp.Role = orDefault(SimplifyWords(lines[0]), DefaultRole)
	}
	if len(lines) > 1 {
		exp.Company = orDefault(SimplifyWords(lines[1]), DefaultCompany)
	}

	dates := DatePattern.FindAllString(block, -1)
	switch {
	case len(dates) >= 2:
		exp.Start, exp.End = dates[0], dates[len(dates)-1]
	case len(dates) == 1:
		exp.Start = dates[0]
	}

	return exp
}

// ParseProject reads the title, stack and timeline lines of a project block.
func ParseProject(block string) (types.Project, bool) {
	lines := contentLines(block)
	if len(lines) == 0 {
		return types.Project{}, false
	}

	proj := types.Project{Name: SimplifyWords(lines[0])}
	if len(lines) > 1 {
		proj.Stack = lines[1]
	}
	if len(lines) > 2 {
		proj.Timeline = lines[2]
	}
	return proj, proj.Name != ""
}

// PlaceholderExperience is emitted when no experience block yields bullets.
func PlaceholderExperience() types.Experience {
	return types.Experience{
		Role:     "Lead Automation QA Engineer",
		Company:  "Example Company",
		Location: DefaultLocation,
		Start:    DefaultStart,
		End:      DefaultEnd,
		Bullets: []types.Bullet{{
			Text:      "Solved flaky regression coverage by implementing deterministic API harness with Playwright, resulting in 63% faster certification cycle",
			HasMetric: true,
		}},
	}
}

// PlaceholderProject is emitted when no project block is found.
func PlaceholderProject() types.Project {
	return types.Project{
		Name:     "Gitlytics",
		Stack:    "Python, Flask, React, PostgreSQL, Docker, Celery, Redis",
		Timeline: "June 2020 -- Present",
		Bullets: []types.Bullet{{
			Text:      "Solved scattered repository insights by building aggregated GitHub analytics with Flask and Celery, resulting in 2x faster triage decisions",
			HasMetric: true,
		}},
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
