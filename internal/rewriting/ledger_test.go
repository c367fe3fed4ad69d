package rewriting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_Claim(t *testing.T) {
	ledger := NewLedger()

	assert.Equal(t, "Built the API gateway", ledger.Claim("Built the API gateway"))

	// case-insensitive; used words are removed, not replaced
	assert.Equal(t, "new cache", ledger.Claim("built THE new Api cache"))
	assert.Equal(t, 3, ledger.Dropped())

	// cache was recorded by the previous claim
	assert.Equal(t, "queue", ledger.Claim("CACHE queue"))
}

func TestLedger_ClaimAllUsed(t *testing.T) {
	ledger := NewLedger()
	ledger.Record("alpha beta")

	assert.Empty(t, ledger.Claim("Alpha  beta"))
	assert.Equal(t, 0, ledger.Dropped())
}

func TestLedger_ClaimSlot(t *testing.T) {
	tests := []struct {
		name      string
		recorded  string
		phrase    string
		pinned    []string
		expected  string
		exhausted bool
	}{
		{"fresh", "", "faster builds", nil, "faster builds", false},
		{"partly used", "faster", "faster builds", nil, "builds", false},
		{"exhausted keeps last word", "fewer failed transactions", "fewer failed transactions", nil, "transactions", true},
		{"pinned never exhausts", "12% faster cycle", "12% faster cycle", []string{"12%"}, "12%", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := NewLedger()
			ledger.Record(tt.recorded)

			claimed, exhausted := ledger.ClaimSlot(tt.phrase, tt.pinned...)
			assert.Equal(t, tt.expected, claimed)
			assert.Equal(t, tt.exhausted, exhausted)
		})
	}
}

func TestLedger_ClaimRepeatsWithinPhrase(t *testing.T) {
	ledger := NewLedger()
	assert.Equal(t, "test the", ledger.Claim("test the test"))
}

func TestLedger_ClaimPinned(t *testing.T) {
	ledger := NewLedger()
	ledger.Record("30% faster")

	assert.Equal(t, "30% builds", ledger.Claim("30% faster builds", "30%"))
}

func TestLedger_Record(t *testing.T) {
	ledger := NewLedger()
	ledger.Record("Solved")
	ledger.Record("resulting in")

	assert.Equal(t, "issues", ledger.Claim("in issues"))
	assert.Empty(t, ledger.Claim("SOLVED"))
}
