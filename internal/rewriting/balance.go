package rewriting

import (
	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/types"
)

// PromotedOutcome replaces the outcome of a bullet promoted to carry a metric
const (
	PromotedOutcome = "12% faster cycle"
	promotedMetric  = "12%"
)

// Metric-density bounds, in percent of experience bullets
const (
	minMetricPercent = 50
	maxMetricPercent = 65
)

// BalanceResult summarizes a BalanceMetrics pass
type BalanceResult struct {
	Total    int
	Metric   int
	Promoted int
	Demoted  int
}

// MetricBounds returns the inclusive range of metric bullets allowed among total.
// When the range is empty (e.g. 3 bullets) the minimum wins.
func MetricBounds(total int) (lo, hi int) {
	lo = (total*minMetricPercent + 99) / 100
	hi = max(lo, total*maxMetricPercent/100)
	return lo, hi
}

// BalanceMetrics brings the share of metric-bearing experience bullets into
// [50%, 65%]. Bullets are visited in experience/bullet order. A promoted bullet
// gets PromotedOutcome, a demoted one the industry's qualitative outcome, both
// claimed from ledger so they do not repeat earlier words. A bullet whose problem
// or action already states a figure is never demoted, so text and HasMetric
// always agree.
func BalanceMetrics(experiences []types.Experience, industry analysis.Industry, ledger *Ledger) BalanceResult {
	var result BalanceResult
	for _, exp := range experiences {
		for _, b := range exp.Bullets {
			result.Total++
			if b.HasMetric {
				result.Metric++
			}
		}
	}
	if result.Total == 0 {
		return result
	}

	lo, hi := MetricBounds(result.Total)
	for i := range experiences {
		bullets := experiences[i].Bullets
		for j := range bullets {
			switch {
			case result.Metric < lo && !bullets[j].HasMetric:
				outcome, _ := ledger.ClaimSlot(PromotedOutcome, promotedMetric)
				bullets[j].Text = withOutcome(bullets[j].Text, outcome)
				bullets[j].HasMetric = true
				result.Metric++
				result.Promoted++
			case result.Metric > hi && bullets[j].HasMetric && !HasMetric(withOutcome(bullets[j].Text, "")):
				outcome, _ := ledger.ClaimSlot(industry.DefaultOutcome())
				bullets[j].Text = withOutcome(bullets[j].Text, outcome)
				bullets[j].HasMetric = false
				result.Metric--
				result.Demoted++
			}
		}
	}
	return result
}
