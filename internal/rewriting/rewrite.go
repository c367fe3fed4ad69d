package rewriting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/extraction"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/types"
)

// Fallback phrases used when a slot cannot be filled from the raw bullet
const (
	DefaultProblem = "critical regression gaps"
	DefaultVerb    = "deploying automation"
	DefaultStack   = "Selenium"
)

const (
	// maxProblemChunks is how many noun phrases describe the problem
	maxProblemChunks = 2
	// maxStackSkills is how many keyword skills are named in the action
	maxStackSkills = 2
)

// Template connectives. They are always emitted and never deduplicated.
const (
	solvedWord    = "Solved"
	byWord        = "by"
	resultingWord = "resulting in"
	outcomeMarker = ", " + resultingWord + " "
)

// Rewriter rewrites raw bullets for one target vocabulary and industry.
type Rewriter struct {
	analyzer nlp.Analyzer
	weights  types.KeywordWeights
	industry analysis.Industry
}

// NewRewriter creates a Rewriter tailored to weights and industry.
func NewRewriter(analyzer nlp.Analyzer, weights types.KeywordWeights, industry analysis.Industry) *Rewriter {
	return &Rewriter{
		analyzer: analyzer,
		weights:  weights,
		industry: industry,
	}
}

// Rewrite turns one raw achievement line into a template bullet, consuming
// vocabulary from ledger. Identical inputs and ledger state give identical output.
func (r *Rewriter) Rewrite(ctx context.Context, raw string, ledger *Ledger) (types.Bullet, error) {
	doc, err := r.analyzer.Analyze(ctx, raw)
	if err != nil {
		return types.Bullet{}, fmt.Errorf("failed to analyze bullet %q: %w", raw, err)
	}

	problem := r.problem(doc)
	action := r.action(doc)
	metric := ExtractMetric(raw)
	outcome := metric
	if outcome == "" {
		outcome = r.industry.DefaultOutcome()
	}

	problem = SimplifyVocabulary(problem)
	action = SimplifyVocabulary(action)
	outcome = SimplifyVocabulary(outcome)

	ledger.Record(solvedWord)
	claimedProblem, problemUsed := ledger.ClaimSlot(problem)
	ledger.Record(byWord)
	claimedAction, actionUsed := ledger.ClaimSlot(action)
	ledger.Record(resultingWord)
	claimedOutcome, outcomeUsed := ledger.ClaimSlot(outcome, metric)

	text := compose(claimedProblem, claimedAction, claimedOutcome)
	// a bullet made only of used words is kept whole
	if problemUsed && actionUsed && outcomeUsed {
		text = compose(problem, action, outcome)
	}

	return types.Bullet{
		Text:      text,
		HasMetric: metric != "",
	}, nil
}

// problem joins the first two noun phrases of the bullet.
func (r *Rewriter) problem(doc *nlp.Document) string {
	chunks := doc.NounChunks
	if len(chunks) > maxProblemChunks {
		chunks = chunks[:maxProblemChunks]
	}
	if problem := extraction.SimplifyWords(strings.Join(chunks, " and ")); problem != "" {
		return problem
	}
	return DefaultProblem
}

// action is the bullet's leading verb, the top job skills and the industry context.
func (r *Rewriter) action(doc *nlp.Document) string {
	verb := doc.FirstVerbLemma()
	if verb == "" {
		verb = DefaultVerb
	}

	stack := DefaultStack
	if skills := r.weights.Skills; len(skills) > 0 {
		stack = strings.Join(skills[:min(len(skills), maxStackSkills)], ", ")
	}

	return fmt.Sprintf("%s with %s %s", verb, stack, r.industry.Context())
}

func compose(problem, action, outcome string) string {
	return fmt.Sprintf("%s %s %s %s%s%s", solvedWord, problem, byWord, action, outcomeMarker, outcome)
}

// withOutcome replaces the outcome clause of a composed bullet.
func withOutcome(text, outcome string) string {
	idx := strings.LastIndex(text, outcomeMarker)
	if idx < 0 {
		return strings.TrimRight(text, ".") + outcomeMarker + outcome
	}
	return text[:idx+len(outcomeMarker)] + outcome
}
