// Package pipeline orchestrates a single resume rewrite: normalize, extract,
// rewrite, balance and assemble the payload.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/extraction"
	"github.com/jonathan/resumate/internal/ingestion"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/rewriting"
	"github.com/jonathan/resumate/internal/types"
)

// Pipeline steps reported through ProgressCallback
const (
	StepNormalize   = "normalize"
	StepHeading     = "heading"
	StepKeywords    = "keywords"
	StepExperiences = "experiences"
	StepBalance     = "balance"
	StepProjects    = "projects"
	StepSections    = "sections"
)

// ProgressEvent represents a progress update during a run
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when a step completes
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for a Runner
type RunOptions struct {
	Analyzer nlp.Analyzer
	Limits   extraction.Limits
	// Industry, when set, names the target industry instead of detecting it
	Industry   string
	Logger     logrus.FieldLogger
	OnProgress ProgressCallback
}

// Result is the output of one run
type Result struct {
	RunID    uuid.UUID               `json:"run_id"`
	Payload  *types.ResumePayload    `json:"payload"`
	Industry analysis.Industry       `json:"industry"`
	Keywords types.KeywordWeights    `json:"keywords"`
	Balance  rewriting.BalanceResult `json:"balance"`
	Dropped  int                     `json:"dropped_words"`
}

// Runner executes rewrite runs. A Runner holds no per-run state and may be
// shared across goroutines when its analyzer is.
type Runner struct {
	analyzer   nlp.Analyzer
	limits     extraction.Limits
	industry   *analysis.Industry
	logger     logrus.FieldLogger
	onProgress ProgressCallback
}

// NewRunner creates a Runner, filling unset limits with the defaults.
func NewRunner(opts RunOptions) (*Runner, error) {
	if opts.Analyzer == nil {
		return nil, errors.New("pipeline: analyzer is required")
	}
	var industry *analysis.Industry
	if opts.Industry != "" {
		parsed, ok := analysis.ParseIndustry(opts.Industry)
		if !ok {
			return nil, fmt.Errorf("pipeline: unknown industry %q", opts.Industry)
		}
		industry = &parsed
	}
	if opts.Limits == (extraction.Limits{}) {
		opts.Limits = extraction.DefaultLimits()
	}
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}
	return &Runner{
		analyzer:   opts.Analyzer,
		limits:     opts.Limits,
		industry:   industry,
		logger:     opts.Logger,
		onProgress: opts.OnProgress,
	}, nil
}

// Run rewrites resumeText for jobText. Heuristic misses fall back to defaults;
// only analyzer failures are returned, as *nlp.AnalyzerError.
func (r *Runner) Run(ctx context.Context, resumeText, jobText string) (*Result, error) {
	runID := uuid.New()
	log := r.logger.WithField("run_id", runID.String())
	log.Info("starting rewrite run")

	resume := ingestion.Normalize(resumeText)
	job := ingestion.Normalize(jobText)
	r.emit(runID, StepNormalize, fmt.Sprintf("Normalized %d resume and %d job characters", len(resume), len(job)), nil)

	heading, err := extraction.Heading(ctx, r.analyzer, resume)
	if err != nil {
		return nil, analyzerFailure("heading", err)
	}
	skills := extraction.Skills(resume, r.limits.MaxSkills)
	r.emit(runID, StepHeading, "Extracted heading and skills", heading)

	reference := job
	if reference == "" {
		reference = resume
	}
	weights, err := analysis.ExtractKeywords(ctx, r.analyzer, reference)
	if err != nil {
		return nil, analyzerFailure("keywords", err)
	}
	industry := analysis.DetectIndustry(reference)
	if r.industry != nil {
		industry = *r.industry
	}
	log.WithFields(logrus.Fields{
		"industry": industry.String(),
		"skills":   len(weights.Skills),
		"domains":  len(weights.Domains),
	}).Debug("analyzed reference text")
	r.emit(runID, StepKeywords, fmt.Sprintf("Detected %s industry", industry), weights)

	rewriter := rewriting.NewRewriter(r.analyzer, weights, industry)
	ledger := rewriting.NewLedger()

	experiences, err := r.buildExperiences(ctx, resume, rewriter, ledger)
	if err != nil {
		return nil, err
	}
	r.emit(runID, StepExperiences, fmt.Sprintf("Rewrote %d experience entries", len(experiences)), nil)

	balance := rewriting.BalanceMetrics(experiences, industry, ledger)
	if len(experiences) == 0 {
		log.Debug("no experience block yielded bullets, using placeholder")
		experiences = []types.Experience{extraction.PlaceholderExperience()}
	}
	r.emit(runID, StepBalance, fmt.Sprintf("Promoted %d and demoted %d bullets", balance.Promoted, balance.Demoted), balance)

	projects, err := r.buildProjects(ctx, resume, rewriter, ledger)
	if err != nil {
		return nil, err
	}
	if len(projects) == 0 {
		log.Debug("no project block found, using placeholder")
		projects = []types.Project{extraction.PlaceholderProject()}
	}
	r.emit(runID, StepProjects, fmt.Sprintf("Rewrote %d projects", len(projects)), nil)

	payload := &types.ResumePayload{
		Heading:        heading,
		Experiences:    experiences,
		Skills:         skills,
		Projects:       projects,
		Education:      extraction.Education(resume),
		Certifications: extraction.Certifications(resume),
	}
	r.emit(runID, StepSections, "Assembled payload", nil)

	log.WithFields(logrus.Fields{
		"experiences": len(payload.Experiences),
		"projects":    len(payload.Projects),
		"bullets":     len(payload.AllBullets()),
		"dropped":     ledger.Dropped(),
	}).Info("rewrite run complete")

	return &Result{
		RunID:    runID,
		Payload:  payload,
		Industry: industry,
		Keywords: weights,
		Balance:  balance,
		Dropped:  ledger.Dropped(),
	}, nil
}

// buildExperiences rewrites every experience block that yields bullets.
// Bullets are capped before rewriting so dropped lines never touch the ledger.
func (r *Runner) buildExperiences(ctx context.Context, resume string, rewriter *rewriting.Rewriter, ledger *rewriting.Ledger) ([]types.Experience, error) {
	var experiences []types.Experience
	for _, block := range extraction.ExperienceBlocks(resume, r.limits.MaxExperienceBlocks) {
		raws, err := extraction.RawBullets(ctx, r.analyzer, block)
		if err != nil {
			return nil, analyzerFailure("experience bullets", err)
		}
		if len(raws) == 0 {
			continue
		}
		raws = capLines(raws, r.limits.MaxExperienceBullets)

		exp := extraction.ParseExperience(block)
		exp.Bullets, err = rewriteAll(ctx, rewriter, ledger, raws)
		if err != nil {
			return nil, analyzerFailure("experience bullets", err)
		}
		experiences = append(experiences, exp)
	}
	return experiences, nil
}

// buildProjects rewrites every project block. Projects without bullets are kept.
func (r *Runner) buildProjects(ctx context.Context, resume string, rewriter *rewriting.Rewriter, ledger *rewriting.Ledger) ([]types.Project, error) {
	var projects []types.Project
	for _, block := range extraction.ProjectBlocks(resume) {
		proj, ok := extraction.ParseProject(block)
		if !ok {
			continue
		}
		raws, err := extraction.RawBullets(ctx, r.analyzer, block)
		if err != nil {
			return nil, analyzerFailure("project bullets", err)
		}
		proj.Bullets, err = rewriteAll(ctx, rewriter, ledger, capLines(raws, r.limits.MaxProjectBullets))
		if err != nil {
			return nil, analyzerFailure("project bullets", err)
		}
		projects = append(projects, proj)
	}
	return projects, nil
}

func rewriteAll(ctx context.Context, rewriter *rewriting.Rewriter, ledger *rewriting.Ledger, raws []string) ([]types.Bullet, error) {
	bullets := make([]types.Bullet, 0, len(raws))
	for _, raw := range raws {
		bullet, err := rewriter.Rewrite(ctx, raw, ledger)
		if err != nil {
			return nil, err
		}
		bullets = append(bullets, bullet)
	}
	return bullets, nil
}

func capLines(lines []string, n int) []string {
	if n > 0 && len(lines) > n {
		return lines[:n]
	}
	return lines
}

func (r *Runner) emit(runID uuid.UUID, step, message string, content any) {
	if r.onProgress != nil {
		r.onProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

// analyzerFailure makes sure an analyzer error surfaces as *nlp.AnalyzerError.
func analyzerFailure(step string, err error) error {
	var analyzerErr *nlp.AnalyzerError
	if errors.As(err, &analyzerErr) {
		return fmt.Errorf("%s: %w", step, err)
	}
	return &nlp.AnalyzerError{Message: step + " analysis failed", Cause: err}
}
