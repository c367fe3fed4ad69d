package nlp

import "strings"

// chunkable tags may appear inside a base noun phrase
var chunkable = map[POS]bool{
	Det:        true,
	Adj:        true,
	Num:        true,
	Noun:       true,
	ProperNoun: true,
}

// ChunkNouns groups maximal runs of determiner/adjective/number/noun tokens into
// base noun phrases. A run is cut after its last noun; runs without a noun are dropped.
func ChunkNouns(tokens []Token) []string {
	var chunks []string
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		lastNoun := -1
		for i := start; i < end; i++ {
			if tokens[i].IsNoun() {
				lastNoun = i
			}
		}
		if lastNoun >= 0 {
			words := make([]string, 0, lastNoun-start+1)
			for i := start; i <= lastNoun; i++ {
				words = append(words, tokens[i].Text)
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		start = -1
	}

	for i, tok := range tokens {
		if chunkable[tok.POS] {
			// a determiner opens a new phrase even inside a run
			if tok.POS == Det && start >= 0 {
				flush(i)
			}
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(tokens))

	return chunks
}
