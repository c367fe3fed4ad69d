package rewriting

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/types"
)

func makeBullets(flags ...bool) []types.Bullet {
	bullets := make([]types.Bullet, len(flags))
	for i, hasMetric := range flags {
		outcome := "steadier releases"
		if hasMetric {
			outcome = fmt.Sprintf("%d%% fewer bugs", 10+i)
		}
		bullets[i] = types.Bullet{
			Text:      fmt.Sprintf("Solved problem %d by action %d, resulting in %s", i, i, outcome),
			HasMetric: hasMetric,
		}
	}
	return bullets
}

func metricCount(experiences []types.Experience) (metric, total int) {
	for _, exp := range experiences {
		for _, b := range exp.Bullets {
			total++
			if b.HasMetric {
				metric++
			}
		}
	}
	return metric, total
}

func TestMetricBounds(t *testing.T) {
	tests := []struct {
		total int
		lo    int
		hi    int
	}{
		{0, 0, 0},
		{1, 1, 1},
		{2, 1, 1},
		{3, 2, 2},
		{4, 2, 2},
		{5, 3, 3},
		{10, 5, 6},
		{20, 10, 13},
		{25, 13, 16},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.total), func(t *testing.T) {
			lo, hi := MetricBounds(tt.total)
			assert.Equal(t, tt.lo, lo)
			assert.Equal(t, tt.hi, hi)
		})
	}
}

func TestBalanceMetrics_Promotes(t *testing.T) {
	experiences := []types.Experience{
		{Bullets: makeBullets(true, false)},
		{Bullets: makeBullets(false, false)},
	}

	result := BalanceMetrics(experiences, analysis.General, NewLedger())

	assert.Equal(t, BalanceResult{Total: 4, Metric: 2, Promoted: 1}, result)
	// the first metric-less bullet in order is promoted
	assert.True(t, experiences[0].Bullets[1].HasMetric)
	assert.Equal(t, "Solved problem 1 by action 1, resulting in 12% faster cycle", experiences[0].Bullets[1].Text)
	assert.False(t, experiences[1].Bullets[0].HasMetric)
}

func TestBalanceMetrics_Demotes(t *testing.T) {
	experiences := []types.Experience{
		{Bullets: makeBullets(true, true)},
		{Bullets: makeBullets(true, false)},
	}

	result := BalanceMetrics(experiences, analysis.Gaming, NewLedger())

	assert.Equal(t, BalanceResult{Total: 4, Metric: 2, Demoted: 1}, result)
	assert.False(t, experiences[0].Bullets[0].HasMetric)
	assert.Equal(t,
		"Solved problem 0 by action 0, resulting in smoother live sessions with fewer crash reports",
		experiences[0].Bullets[0].Text,
	)
	assert.True(t, experiences[0].Bullets[1].HasMetric)
}

func TestBalanceMetrics_ReplacementOutcomesDoNotRepeat(t *testing.T) {
	experiences := []types.Experience{{Bullets: makeBullets(true, true, true, true, true)}}

	result := BalanceMetrics(experiences, analysis.Finance, NewLedger())

	// 5 bullets allow at most 3 metrics
	assert.Equal(t, 2, result.Demoted)
	assert.Equal(t, "Solved problem 0 by action 0, resulting in fewer failed transactions and clearer audit trails", experiences[0].Bullets[0].Text)
	assert.Equal(t, "Solved problem 1 by action 1, resulting in trails", experiences[0].Bullets[1].Text)
}

func TestBalanceMetrics_KeepsFiguresOutsideOutcome(t *testing.T) {
	bullets := makeBullets(true, true, true)
	bullets[0].Text = "Solved 3 weeks of backlog by action 0, resulting in 10% fewer bugs"
	experiences := []types.Experience{{Bullets: bullets}}

	result := BalanceMetrics(experiences, analysis.General, NewLedger())

	// the first bullet still states a figure, so the second is demoted instead
	assert.Equal(t, 1, result.Demoted)
	assert.True(t, bullets[0].HasMetric)
	assert.False(t, bullets[1].HasMetric)
	assert.False(t, HasMetric(bullets[1].Text))
}

func TestBalanceMetrics_AlreadyBalanced(t *testing.T) {
	experiences := []types.Experience{{Bullets: makeBullets(true, false, true, false)}}
	before := append([]types.Bullet(nil), experiences[0].Bullets...)

	result := BalanceMetrics(experiences, analysis.General, NewLedger())

	assert.Equal(t, 0, result.Promoted+result.Demoted)
	assert.Equal(t, before, experiences[0].Bullets)
}

func TestBalanceMetrics_Empty(t *testing.T) {
	assert.Equal(t, BalanceResult{}, BalanceMetrics(nil, analysis.General, NewLedger()))
	assert.Equal(t, BalanceResult{}, BalanceMetrics([]types.Experience{{}}, analysis.General, NewLedger()))
}

func TestBalanceMetrics_RatioWithinBounds(t *testing.T) {
	for total := 4; total <= 25; total++ {
		for metric := 0; metric <= total; metric++ {
			flags := make([]bool, total)
			for i := 0; i < metric; i++ {
				flags[(i*7)%total] = true
			}
			// spread bullets over several experiences, max 5 each
			var experiences []types.Experience
			all := makeBullets(flags...)
			for start := 0; start < len(all); start += 5 {
				experiences = append(experiences, types.Experience{Bullets: all[start:min(start+5, len(all))]})
			}

			BalanceMetrics(experiences, analysis.General, NewLedger())

			got, n := metricCount(experiences)
			require.Equal(t, total, n)
			ratio := float64(got) / float64(n)
			assert.GreaterOrEqual(t, ratio, 0.5, "total=%d metric=%d", total, metric)
			assert.LessOrEqual(t, ratio, 0.65, "total=%d metric=%d", total, metric)

			for _, exp := range experiences {
				for _, b := range exp.Bullets {
					assert.Regexp(t, types.BulletTemplatePattern, b.Text)
					assert.Equal(t, b.HasMetric, HasMetric(b.Text), "flag and text disagree: %q", b.Text)
				}
			}
		}
	}
}
