// Package nlp defines the shallow text-analysis capability the rewriter depends on:
// sentence segmentation, part-of-speech tagging with lemmas, noun chunks and entity hints.
package nlp

import "context"

// POS is a coarse, toolkit-independent part-of-speech tag.
type POS string

// Coarse part-of-speech tags.
const (
	Noun       POS = "NOUN"
	ProperNoun POS = "PROPN"
	Verb       POS = "VERB"
	Aux        POS = "AUX"
	Adj        POS = "ADJ"
	Adv        POS = "ADV"
	Det        POS = "DET"
	Num        POS = "NUM"
	Pron       POS = "PRON"
	Adp        POS = "ADP"
	Conj       POS = "CCONJ"
	Punct      POS = "PUNCT"
	Other      POS = "X"
)

// Token is a single word with its coarse tag and lemma
type Token struct {
	Text  string
	Tag   string // fine-grained toolkit tag, e.g. Penn Treebank "VBD"
	POS   POS
	Lemma string
}

// IsNoun reports whether the token is a common or proper noun
func (t Token) IsNoun() bool {
	return t.POS == Noun || t.POS == ProperNoun
}

// Entity is a named-entity hint
type Entity struct {
	Text  string
	Label string
}

// Document is the result of analyzing a piece of text.
type Document struct {
	Sentences  []string
	NounChunks []string
	Tokens     []Token
	Entities   []Entity
}

// Analyzer turns arbitrary text into a Document. Implementations must be safe
// for concurrent use; failures are fatal to the calling rewrite.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (*Document, error)
}

// FirstVerbLemma returns the lemma of the first VERB token, or "".
func (d *Document) FirstVerbLemma() string {
	for _, tok := range d.Tokens {
		if tok.POS == Verb {
			return tok.Lemma
		}
	}
	return ""
}
