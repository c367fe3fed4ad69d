package nlp

import (
	"context"
	"strings"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
)

// auxLemmas are verbs the toolkit tags as VB* that behave as auxiliaries
var auxLemmas = map[string]bool{
	"be": true, "have": true, "do": true, "will": true, "shall": true,
	"may": true, "might": true, "can": true, "could": true, "would": true,
	"should": true, "must": true,
}

// ProseAnalyzer implements Analyzer with prose (tokens, tags, sentences, entities)
// and golem (English lemmas).
type ProseAnalyzer struct {
	lemmatizer *golem.Lemmatizer
}

// NewProseAnalyzer loads the English lemmatizer dictionary.
func NewProseAnalyzer() (*ProseAnalyzer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, &AnalyzerError{Message: "failed to load English lemmatizer", Cause: err}
	}
	return &ProseAnalyzer{lemmatizer: lemmatizer}, nil
}

// Analyze tags and segments text.
func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, &AnalyzerError{Message: "analysis cancelled", Cause: err}
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil, &AnalyzerError{Message: "failed to process text", Cause: err}
	}

	result := &Document{}

	for _, sent := range doc.Sentences() {
		if s := strings.TrimSpace(sent.Text); s != "" {
			result.Sentences = append(result.Sentences, s)
		}
	}

	proseTokens := doc.Tokens()
	result.Tokens = make([]Token, 0, len(proseTokens))
	for _, tok := range proseTokens {
		lemma := a.lemma(tok.Text)
		result.Tokens = append(result.Tokens, Token{
			Text:  tok.Text,
			Tag:   tok.Tag,
			POS:   coarsePOS(tok.Tag, lemma),
			Lemma: lemma,
		})
	}
	result.NounChunks = ChunkNouns(result.Tokens)

	for _, ent := range doc.Entities() {
		result.Entities = append(result.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}

	return result, nil
}

func (a *ProseAnalyzer) lemma(word string) string {
	lower := strings.ToLower(word)
	if lemma := a.lemmatizer.Lemma(lower); lemma != "" {
		return lemma
	}
	return lower
}

// coarsePOS maps a Penn Treebank tag to a coarse POS
func coarsePOS(tag, lemma string) POS {
	switch {
	case tag == "NN" || tag == "NNS":
		return Noun
	case tag == "NNP" || tag == "NNPS":
		return ProperNoun
	case tag == "MD":
		return Aux
	case strings.HasPrefix(tag, "VB"):
		if auxLemmas[lemma] {
			return Aux
		}
		return Verb
	case strings.HasPrefix(tag, "JJ"):
		return Adj
	case strings.HasPrefix(tag, "RB"):
		return Adv
	case tag == "DT" || tag == "PDT":
		return Det
	case tag == "CD":
		return Num
	case tag == "PRP" || tag == "PRP$" || tag == "WP" || tag == "WP$" || tag == "WDT":
		return Pron
	case tag == "IN" || tag == "TO":
		return Adp
	case tag == "CC":
		return Conj
	case strings.ContainsAny(tag, ".,:()#$`'"):
		return Punct
	}
	return Other
}
