package rewriting

import (
	"strings"
)

// Ledger records every word already emitted during one rewrite run so later
// bullets do not repeat vocabulary. It is not safe for concurrent use; each
// run owns exactly one.
type Ledger struct {
	used    map[string]struct{}
	dropped int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{used: make(map[string]struct{})}
}

// Dropped returns how many tokens Claim has removed so far.
func (l *Ledger) Dropped() int {
	return l.dropped
}

// Record marks every word of phrase as used without filtering it.
func (l *Ledger) Record(phrase string) {
	for _, tok := range strings.Fields(phrase) {
		l.used[strings.ToLower(tok)] = struct{}{}
	}
}

// Claim removes from phrase every token already in the ledger and records the
// rest. Tokens of pinned are always kept. It returns "" when every token of
// phrase is already used.
func (l *Ledger) Claim(phrase string, pinned ...string) string {
	keep := make(map[string]bool)
	for _, p := range pinned {
		for _, tok := range strings.Fields(p) {
			keep[strings.ToLower(tok)] = true
		}
	}

	tokens := strings.Fields(phrase)
	fresh := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		lower := strings.ToLower(tok)
		if _, seen := l.used[lower]; seen && !keep[lower] {
			continue
		}
		// recorded immediately so a repeat inside phrase is dropped too
		l.used[lower] = struct{}{}
		fresh = append(fresh, tok)
	}

	if len(fresh) == 0 {
		return ""
	}
	l.dropped += len(tokens) - len(fresh)
	return strings.Join(fresh, " ")
}

// ClaimSlot is Claim for one template slot, which must never be empty. An
// exhausted slot keeps only the last word of phrase.
func (l *Ledger) ClaimSlot(phrase string, pinned ...string) (claimed string, exhausted bool) {
	if claimed = l.Claim(phrase, pinned...); claimed != "" {
		return claimed, false
	}
	return lastWord(phrase), true
}

func lastWord(phrase string) string {
	fields := strings.Fields(phrase)
	if len(fields) == 0 {
		return phrase
	}
	return fields[len(fields)-1]
}
