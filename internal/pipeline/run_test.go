package pipeline

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/extraction"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/nlp/nlptest"
	"github.com/jonathan/resumate/internal/rewriting"
	"github.com/jonathan/resumate/internal/types"
)

const fullResume = `Jane Doe
QA Engineer
jane@example.com | +1 555 123 4567

Skills: Go, Kafka, Selenium, Docker

Work Experience
Lead QA Engineer
Globex
Mar 2020 - Present
- Automated regression suites for payment flows within 3 weeks
- Migrated flaky checks onto contract tests
- Reduced release defects by 40%
- Built load harness covering checkout services

QA Engineer
Initech
Jan 2017 - Feb 2020
- Designed smoke tests for billing APIs
- Improved triage tooling across release trains

Projects
Gitlab Insights
Go, Postgres
2022
- Built dashboard summarising pipeline health
`

func newTestRunner(t *testing.T, opts RunOptions) *Runner {
	t.Helper()
	if opts.Analyzer == nil {
		opts.Analyzer = &nlptest.Analyzer{}
	}
	runner, err := NewRunner(opts)
	require.NoError(t, err)
	return runner
}

func TestNewRunner_RequiresAnalyzer(t *testing.T) {
	_, err := NewRunner(RunOptions{})
	assert.Error(t, err)
}

func TestRun_ExperienceScenario(t *testing.T) {
	resume := "Experience\nSenior Dev\nAcme Corp\nJan 2019 - Dec 2021\n- Built a dashboard that cut reporting time by 30%\n"
	job := "Looking for a developer skilled in dashboards and reporting."

	result, err := newTestRunner(t, RunOptions{}).Run(context.Background(), resume, job)
	require.NoError(t, err)

	require.Len(t, result.Payload.Experiences, 1)
	exp := result.Payload.Experiences[0]
	assert.Equal(t, "Senior Dev", exp.Role)
	assert.Equal(t, "Acme Corp", exp.Company)
	assert.Equal(t, "Jan 2019", exp.Start)
	assert.Equal(t, "Dec 2021", exp.End)
	require.Len(t, exp.Bullets, 1)
	assert.Contains(t, exp.Bullets[0].Text, "30%")
	assert.True(t, exp.Bullets[0].HasMetric)

	// no project section
	assert.Equal(t, []types.Project{extraction.PlaceholderProject()}, result.Payload.Projects)
}

func TestRun_PlaceholdersWhenNoSections(t *testing.T) {
	resume := "Jane Doe\nI like testing software and writing reports"

	result, err := newTestRunner(t, RunOptions{}).Run(context.Background(), resume, "QA role")
	require.NoError(t, err)

	assert.Equal(t, []types.Experience{extraction.PlaceholderExperience()}, result.Payload.Experiences)
	assert.Equal(t, []types.Project{extraction.PlaceholderProject()}, result.Payload.Projects)
	assert.Equal(t, extraction.DefaultSkills, result.Payload.Skills)
	assert.Equal(t, extraction.DefaultEducation, result.Payload.Education)
	assert.Equal(t, extraction.DefaultCertifications, result.Payload.Certifications)
	assert.Zero(t, result.Balance.Total)
}

func TestRun_FullResume(t *testing.T) {
	job := "Looking for a QA engineer for our multiplayer game studio"

	result, err := newTestRunner(t, RunOptions{}).Run(context.Background(), fullResume, job)
	require.NoError(t, err)
	payload := result.Payload

	assert.Equal(t, analysis.Gaming, result.Industry)
	assert.Equal(t, "Jane Doe", payload.Heading.Name)
	assert.Equal(t, "QA Engineer", payload.Heading.Title)
	assert.Equal(t, "jane@example.com", payload.Heading.Email)
	assert.Equal(t, "+1 555 123 4567", payload.Heading.Phone)
	assert.Equal(t, []string{"Go", "Kafka", "Selenium", "Docker"}, payload.Skills)

	require.Len(t, payload.Experiences, 2)
	assert.Equal(t, "Lead QA Engineer", payload.Experiences[0].Role)
	assert.Equal(t, "Globex", payload.Experiences[0].Company)
	assert.Equal(t, "Mar 2020", payload.Experiences[0].Start)
	assert.Equal(t, extraction.DefaultEnd, payload.Experiences[0].End)
	assert.Len(t, payload.Experiences[0].Bullets, 4)
	assert.Equal(t, "Initech", payload.Experiences[1].Company)
	assert.Equal(t, "Jan 2017", payload.Experiences[1].Start)
	assert.Equal(t, "Feb 2020", payload.Experiences[1].End)

	require.Len(t, payload.Projects, 1)
	assert.Equal(t, "Gitlab Insights", payload.Projects[0].Name)
	assert.Equal(t, "Go, Postgres", payload.Projects[0].Stack)
	assert.Equal(t, "2022", payload.Projects[0].Timeline)
	assert.Len(t, payload.Projects[0].Bullets, 1)

	for _, b := range payload.AllBullets() {
		assert.Regexp(t, types.BulletTemplatePattern, b.Text)
	}

	// 2 of 6 bullets carry a metric, one is promoted to reach half
	assert.Equal(t, 6, result.Balance.Total)
	assert.Equal(t, 3, result.Balance.Metric)
	assert.Equal(t, 1, result.Balance.Promoted)
	metric, total := 0, 0
	for _, exp := range payload.Experiences {
		for _, b := range exp.Bullets {
			total++
			if b.HasMetric {
				metric++
			}
		}
	}
	ratio := float64(metric) / float64(total)
	assert.GreaterOrEqual(t, ratio, 0.5)
	assert.LessOrEqual(t, ratio, 0.65)

	assert.NoError(t, payload.Validate())
}

func TestRun_Limits(t *testing.T) {
	runner := newTestRunner(t, RunOptions{Limits: extraction.Limits{
		MaxExperienceBlocks:  1,
		MaxExperienceBullets: 2,
		MaxProjectBullets:    1,
		MaxSkills:            2,
	}})

	result, err := runner.Run(context.Background(), fullResume, "")
	require.NoError(t, err)

	require.Len(t, result.Payload.Experiences, 1)
	assert.Len(t, result.Payload.Experiences[0].Bullets, 2)
	assert.Equal(t, []string{"Go", "Kafka"}, result.Payload.Skills)
	// empty job text falls back to the resume for industry detection
	assert.Equal(t, analysis.Finance, result.Industry)
}

var bulletSlots = regexp.MustCompile(`^Solved (.+?) by (.+), resulting in (.+)$`)

// assertNoRepeatedWords walks bullets in processing order and fails on any word
// reused from an earlier bullet or slot. Allowed: template connectives, the
// metric figure, a slot cut down to one word, and a bullet repeated whole.
func assertNoRepeatedWords(t *testing.T, bullets []types.Bullet) {
	t.Helper()
	seen := make(map[string]bool)
	record := func(words ...string) {
		for _, w := range words {
			seen[strings.ToLower(w)] = true
		}
	}

	for _, b := range bullets {
		m := bulletSlots.FindStringSubmatch(b.Text)
		if !assert.NotNil(t, m, "not a template bullet: %q", b.Text) {
			continue
		}
		slots := [][]string{strings.Fields(m[1]), strings.Fields(m[2]), strings.Fields(m[3])}
		pinned := make(map[string]bool)
		if b.HasMetric {
			for _, w := range strings.Fields(rewriting.ExtractMetric(m[3])) {
				pinned[strings.ToLower(w)] = true
			}
		}

		wholeRepeat := true
		for _, slot := range slots {
			for _, w := range slot {
				if !seen[strings.ToLower(w)] {
					wholeRepeat = false
				}
			}
		}

		connectives := [][]string{{"Solved"}, {"by"}, {"resulting", "in"}}
		for i, slot := range slots {
			record(connectives[i]...)
			if !wholeRepeat && len(slot) > 1 {
				for _, w := range slot {
					lower := strings.ToLower(w)
					assert.False(t, seen[lower] && !pinned[lower], "%q repeats %q", b.Text, w)
				}
			}
			record(slot...)
		}
	}
}

func TestRun_WordsDoNotRepeatAcrossBullets(t *testing.T) {
	jobs := []string{
		"",
		"Looking for a QA engineer for our multiplayer game studio",
		"Payments platform hiring a QA engineer for card and loan services",
	}

	for _, job := range jobs {
		t.Run(job, func(t *testing.T) {
			result, err := newTestRunner(t, RunOptions{}).Run(context.Background(), fullResume, job)
			require.NoError(t, err)
			assertNoRepeatedWords(t, result.Payload.AllBullets())
		})
	}
}

func TestRun_IndustryOverride(t *testing.T) {
	runner := newTestRunner(t, RunOptions{Industry: "Telecom"})

	result, err := runner.Run(context.Background(), fullResume, "Looking for a QA engineer for our multiplayer game studio")
	require.NoError(t, err)
	assert.Equal(t, analysis.Telecom, result.Industry)

	_, err = NewRunner(RunOptions{Analyzer: &nlptest.Analyzer{}, Industry: "agriculture"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown industry")
}

func TestRun_DeterministicAcrossRuns(t *testing.T) {
	runner := newTestRunner(t, RunOptions{})
	job := "Kafka platform team seeks testing engineer"

	first, err := runner.Run(context.Background(), fullResume, job)
	require.NoError(t, err)
	second, err := runner.Run(context.Background(), fullResume, job)
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, first.Payload, second.Payload)
	assert.Equal(t, first.Keywords, second.Keywords)
}

func TestRun_AnalyzerFailureIsFatal(t *testing.T) {
	cause := errors.New("model not loaded")
	runner := newTestRunner(t, RunOptions{Analyzer: &nlptest.Analyzer{Err: cause}})

	result, err := runner.Run(context.Background(), fullResume, "job")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, cause)

	var analyzerErr *nlp.AnalyzerError
	assert.True(t, errors.As(err, &analyzerErr))
}

func TestRun_ReportsProgress(t *testing.T) {
	var steps []string
	runner := newTestRunner(t, RunOptions{OnProgress: func(event ProgressEvent) {
		assert.NotEmpty(t, event.RunID)
		steps = append(steps, event.Step)
	}})

	_, err := runner.Run(context.Background(), fullResume, "")
	require.NoError(t, err)

	assert.Equal(t, []string{
		StepNormalize, StepHeading, StepKeywords, StepExperiences, StepBalance, StepProjects, StepSections,
	}, steps)
}

func TestAnalyzerFailure(t *testing.T) {
	cause := errors.New("boom")

	wrapped := analyzerFailure("heading", cause)
	var analyzerErr *nlp.AnalyzerError
	require.True(t, errors.As(wrapped, &analyzerErr))
	assert.Equal(t, "heading analysis failed", analyzerErr.Message)

	// an existing AnalyzerError is not wrapped twice
	again := analyzerFailure("keywords", wrapped)
	require.True(t, errors.As(again, &analyzerErr))
	assert.Equal(t, "heading analysis failed", analyzerErr.Message)
	assert.ErrorIs(t, again, cause)
}
