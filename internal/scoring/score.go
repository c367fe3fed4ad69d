// Package scoring estimates how an applicant tracking system would rank a
// tailored résumé against a job description.
package scoring

import (
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/jonathan/resumate/internal/types"
)

// Score bounds and weights
const (
	MinScore = 80
	MaxScore = 95

	maxSkillPoints  = 15
	maxNoise        = 4
	emptyJobOverlap = 0.5
)

// Option configures a Scorer
type Option func(*Scorer)

// WithRand sets the noise source. Tests pass a seeded generator.
func WithRand(r *rand.Rand) Option {
	return func(s *Scorer) {
		s.rng = r
	}
}

// Scorer computes bounded ATS scores. It is safe for concurrent use.
type Scorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewScorer creates a scorer. Without WithRand it draws from the global source.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SkillOverlap returns the fraction of skills that appear (case-insensitively)
// in jobText. An empty job text yields 0.5; no skills yields 0.
func SkillOverlap(skills []string, jobText string) float64 {
	if strings.TrimSpace(jobText) == "" {
		return emptyJobOverlap
	}
	job := strings.ToLower(jobText)
	found := 0
	for _, skill := range skills {
		if skill != "" && strings.Contains(job, strings.ToLower(skill)) {
			found++
		}
	}
	return float64(found) / float64(max(1, len(skills)))
}

// BaseScore is the deterministic part of Score
func BaseScore(skills []string, jobText string) int {
	points := math.Floor(float64(min(maxSkillPoints, len(skills))) * SkillOverlap(skills, jobText))
	return MinScore + int(points)
}

// Score returns an integer in [MinScore, MaxScore]: the skill overlap base plus
// uniform noise in [0, 4].
func (s *Scorer) Score(payload *types.ResumePayload, jobText string) int {
	var skills []string
	if payload != nil {
		skills = payload.Skills
	}
	return clamp(BaseScore(skills, jobText) + s.noise())
}

func (s *Scorer) noise() int {
	if s.rng == nil {
		return rand.IntN(maxNoise + 1)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.IntN(maxNoise + 1)
}

func clamp(score int) int {
	return min(MaxScore, max(MinScore, score))
}
