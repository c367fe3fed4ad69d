package rewriting

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/nlp/nlptest"
	"github.com/jonathan/resumate/internal/types"
)

// fixedAnalyzer returns the same document for every input
type fixedAnalyzer struct {
	doc *nlp.Document
}

func (f fixedAnalyzer) Analyze(context.Context, string) (*nlp.Document, error) {
	return f.doc, nil
}

func TestRewrite_MetricBullet(t *testing.T) {
	weights := types.KeywordWeights{Skills: []string{"Dashboard", "Reporting", "Developer"}}
	rewriter := NewRewriter(&nlptest.Analyzer{}, weights, analysis.General)

	bullet, err := rewriter.Rewrite(context.Background(), "Built a dashboard that cut reporting time by 30%", NewLedger())
	require.NoError(t, err)

	// "reporting" and "and" were consumed by the problem slot
	assert.Equal(t,
		"Solved a dashboard and reporting time by build with Dashboard, across web API journeys, resulting in 30%",
		bullet.Text,
	)
	assert.True(t, bullet.HasMetric)
	assert.Regexp(t, types.BulletTemplatePattern, bullet.Text)
}

func TestRewrite_QualitativeOutcome(t *testing.T) {
	rewriter := NewRewriter(&nlptest.Analyzer{}, types.KeywordWeights{}, analysis.Finance)

	bullet, err := rewriter.Rewrite(context.Background(), "Legacy payment gateway regressions everywhere", NewLedger())
	require.NoError(t, err)

	assert.Equal(t,
		"Solved Legacy payment gateway regressions everywhere by deploying automation with Selenium for online banking journeys, resulting in fewer failed transactions and clearer audit trails",
		bullet.Text,
	)
	assert.False(t, bullet.HasMetric)
}

func TestRewrite_Fallbacks(t *testing.T) {
	doc := &nlp.Document{Tokens: []nlp.Token{{Text: "quickly", POS: nlp.Adv, Lemma: "quickly"}}}
	rewriter := NewRewriter(fixedAnalyzer{doc: doc}, types.KeywordWeights{Skills: []string{"Go"}}, analysis.Telecom)

	bullet, err := rewriter.Rewrite(context.Background(), "cut costs by 40 percent", NewLedger())
	require.NoError(t, err)

	assert.Equal(t,
		"Solved critical regression gaps by deploying automation with Go across provisioning and billing APIs, resulting in 40 %",
		bullet.Text,
	)
	assert.True(t, bullet.HasMetric)
}

func TestRewrite_PlainVocabulary(t *testing.T) {
	doc := &nlp.Document{
		NounChunks: []string{"approximately 40 servers", "leveraged tooling", "a third chunk"},
		Tokens:     []nlp.Token{{Text: "utilized", POS: nlp.Verb, Lemma: "utilized"}},
	}
	rewriter := NewRewriter(fixedAnalyzer{doc: doc}, types.KeywordWeights{}, analysis.General)

	bullet, err := rewriter.Rewrite(context.Background(), "anything", NewLedger())
	require.NoError(t, err)

	assert.Equal(t,
		"Solved about 40 servers and used tooling by with Selenium across web API journeys, resulting in higher release reliability real-world usage",
		bullet.Text,
	)
}

func TestRewrite_LedgerAcrossBullets(t *testing.T) {
	weights := types.KeywordWeights{Skills: []string{"Dashboard", "Reporting"}}
	rewriter := NewRewriter(&nlptest.Analyzer{}, weights, analysis.General)
	ledger := NewLedger()
	raw := "Built a dashboard that cut reporting time by 30%"

	_, err := rewriter.Rewrite(context.Background(), raw, ledger)
	require.NoError(t, err)

	// exhausted slots keep their last word; the pinned metric survives
	second, err := rewriter.Rewrite(context.Background(), raw, ledger)
	require.NoError(t, err)
	assert.Equal(t, "Solved time by journeys, resulting in 30%", second.Text)
	assert.True(t, second.HasMetric)
	assert.Regexp(t, types.BulletTemplatePattern, second.Text)
}

func TestRewrite_FullyUsedBulletKeptWhole(t *testing.T) {
	rewriter := NewRewriter(&nlptest.Analyzer{}, types.KeywordWeights{}, analysis.General)
	ledger := NewLedger()
	raw := "Legacy payment gateway regressions everywhere"

	_, err := rewriter.Rewrite(context.Background(), raw, ledger)
	require.NoError(t, err)

	// no slot has a fresh word left, so nothing is dropped
	second, err := rewriter.Rewrite(context.Background(), raw, ledger)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(second.Text, ", resulting in higher release reliability in real-world usage"))
	assert.Contains(t, second.Text, " by deploying automation with Selenium across web and API journeys,")
	assert.Regexp(t, types.BulletTemplatePattern, second.Text)
}

func TestRewrite_Deterministic(t *testing.T) {
	weights := types.KeywordWeights{Skills: []string{"Kafka"}}
	rewriter := NewRewriter(&nlptest.Analyzer{}, weights, analysis.SaaS)
	raws := []string{
		"Migrated the billing service to Kafka within 3 months",
		"Designed tenant isolation tests for the subscription API",
	}

	run := func() []types.Bullet {
		ledger := NewLedger()
		var out []types.Bullet
		for _, raw := range raws {
			b, err := rewriter.Rewrite(context.Background(), raw, ledger)
			require.NoError(t, err)
			out = append(out, b)
		}
		return out
	}

	assert.Equal(t, run(), run())
}

func TestRewrite_AnalyzerFailure(t *testing.T) {
	cause := errors.New("tagger unavailable")
	rewriter := NewRewriter(&nlptest.Analyzer{Err: cause}, types.KeywordWeights{}, analysis.General)

	_, err := rewriter.Rewrite(context.Background(), "Built things", NewLedger())
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
}

func TestWithOutcome(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		outcome  string
		expected string
	}{
		{"replace", "Solved a by b, resulting in c d", "12% faster cycle", "Solved a by b, resulting in 12% faster cycle"},
		{"last marker wins", "Solved a, resulting in x by b, resulting in c", "z", "Solved a, resulting in x by b, resulting in z"},
		{"append when missing", "Solved a by b.", "z", "Solved a by b, resulting in z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, withOutcome(tt.text, tt.outcome))
		})
	}
}
