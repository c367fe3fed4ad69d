// Package nlptest provides a deterministic, dictionary-driven nlp.Analyzer for tests.
package nlptest

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resumate/internal/nlp"
)

var sentenceBoundary = regexp.MustCompile(`[.!?](\s+|$)|\n+`)

// verbs maps inflected forms to lemmas
var verbs = map[string]string{
	"built": "build", "build": "build", "cut": "cut", "led": "lead", "lead": "lead",
	"reduced": "reduce", "improved": "improve", "automated": "automate", "designed": "design",
	"migrated": "migrate", "developed": "develop", "created": "create", "wrote": "write",
	"managed": "manage", "implemented": "implement", "shipped": "ship", "launched": "launch",
	"scaled": "scale", "optimized": "optimize", "deployed": "deploy",
}

var functionWords = map[string]nlp.POS{
	"a": nlp.Det, "an": nlp.Det, "the": nlp.Det, "this": nlp.Det,
	"that": nlp.Pron, "which": nlp.Pron, "i": nlp.Pron, "we": nlp.Pron, "it": nlp.Pron,
	"by": nlp.Adp, "with": nlp.Adp, "for": nlp.Adp, "in": nlp.Adp, "on": nlp.Adp,
	"of": nlp.Adp, "to": nlp.Adp, "from": nlp.Adp, "across": nlp.Adp, "at": nlp.Adp,
	"and": nlp.Conj, "or": nlp.Conj, "but": nlp.Conj,
	"is": nlp.Aux, "was": nlp.Aux, "are": nlp.Aux, "were": nlp.Aux, "be": nlp.Aux,
}

// Analyzer is a rule-based stand-in for a real tagger. Unknown words are nouns,
// capitalised words after the first position are proper nouns.
type Analyzer struct {
	// Entities is returned verbatim from every Analyze call
	Entities []nlp.Entity
	// Err, when set, is returned instead of a document
	Err error
}

// Analyze implements nlp.Analyzer.
func (a *Analyzer) Analyze(_ context.Context, text string) (*nlp.Document, error) {
	if a.Err != nil {
		return nil, a.Err
	}

	doc := &nlp.Document{Entities: a.Entities}
	for _, s := range sentenceBoundary.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			doc.Sentences = append(doc.Sentences, s)
		}
	}

	for i, raw := range strings.Fields(text) {
		word := strings.TrimFunc(raw, func(r rune) bool {
			return unicode.IsPunct(r) && r != '%'
		})
		if word == "" {
			doc.Tokens = append(doc.Tokens, nlp.Token{Text: raw, POS: nlp.Punct, Lemma: raw})
			continue
		}
		doc.Tokens = append(doc.Tokens, tag(word, i == 0))
	}
	doc.NounChunks = nlp.ChunkNouns(doc.Tokens)

	return doc, nil
}

func tag(word string, first bool) nlp.Token {
	lower := strings.ToLower(word)
	if lemma, ok := verbs[lower]; ok {
		return nlp.Token{Text: word, POS: nlp.Verb, Lemma: lemma}
	}
	if pos, ok := functionWords[lower]; ok {
		return nlp.Token{Text: word, POS: pos, Lemma: lower}
	}
	if unicode.IsDigit([]rune(word)[0]) {
		return nlp.Token{Text: word, POS: nlp.Num, Lemma: lower}
	}
	if strings.HasSuffix(lower, "ed") && len(lower) > 4 {
		return nlp.Token{Text: word, POS: nlp.Verb, Lemma: strings.TrimSuffix(lower, "ed")}
	}

	lemma := lower
	if strings.HasSuffix(lemma, "s") && !strings.HasSuffix(lemma, "ss") && len(lemma) > 3 {
		lemma = strings.TrimSuffix(lemma, "s")
	}
	if !first && unicode.IsUpper([]rune(word)[0]) {
		return nlp.Token{Text: word, POS: nlp.ProperNoun, Lemma: lemma}
	}
	return nlp.Token{Text: word, POS: nlp.Noun, Lemma: lemma}
}
