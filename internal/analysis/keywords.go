package analysis

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/types"
)

const (
	// maxSkillWeights is the number of top nouns kept as skill keywords
	maxSkillWeights = 8
	// maxDomainWeights is the number of top nouns kept as domain keywords
	maxDomainWeights = 12
	// minKeywordChars is the length a noun must exceed to count
	minKeywordChars = 2
)

var titleCaser = cases.Title(language.English)

// ExtractKeywords ranks the nouns of text by frequency. Ties keep first-occurrence order.
func ExtractKeywords(ctx context.Context, analyzer nlp.Analyzer, text string) (types.KeywordWeights, error) {
	doc, err := analyzer.Analyze(ctx, text)
	if err != nil {
		return types.KeywordWeights{}, fmt.Errorf("failed to analyze reference text: %w", err)
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range doc.Tokens {
		if !tok.IsNoun() || len(tok.Text) <= minKeywordChars {
			continue
		}
		lemma := strings.ToLower(tok.Lemma)
		if counts[lemma] == 0 {
			order = append(order, lemma)
		}
		counts[lemma]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	weights := types.KeywordWeights{
		Skills:  make([]string, 0, min(len(order), maxSkillWeights)),
		Domains: make([]string, 0, min(len(order), maxDomainWeights)),
	}
	for i, word := range order {
		if i < maxSkillWeights {
			weights.Skills = append(weights.Skills, titleCaser.String(word))
		}
		if i < maxDomainWeights {
			weights.Domains = append(weights.Domains, word)
		}
	}
	return weights, nil
}
