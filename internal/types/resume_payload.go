// Package types provides type definitions for structured data used throughout the resume rewriter.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// BulletTemplatePattern is the canonical shape every rewritten bullet follows.
var BulletTemplatePattern = regexp.MustCompile(`^Solved .+ by .+, resulting in .+$`)

// Heading holds the contact block at the top of the resume
type Heading struct {
	Name     string `json:"name" validate:"required"`
	Title    string `json:"title" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Email    string `json:"email" validate:"required"`
	LinkedIn string `json:"linkedin" validate:"required"`
	GitHub   string `json:"github" validate:"required"`
}

// Bullet is one rewritten achievement line. HasMetric reports whether the
// outcome clause carries a quantitative figure.
type Bullet struct {
	Text      string `json:"text" validate:"required,bullet_template"`
	HasMetric bool   `json:"has_metric"`
}

// Experience is a single role held by the candidate
type Experience struct {
	Role     string   `json:"role" validate:"required"`
	Company  string   `json:"company" validate:"required"`
	Location string   `json:"location"`
	Start    string   `json:"start" validate:"required"`
	End      string   `json:"end" validate:"required"`
	Bullets  []Bullet `json:"bullets" validate:"max=5,dive"`
}

// Project is a side or portfolio project
type Project struct {
	Name     string   `json:"name" validate:"required"`
	Stack    string   `json:"stack"`
	Timeline string   `json:"timeline"`
	Bullets  []Bullet `json:"bullets" validate:"max=4,dive"`
}

// ResumePayload is the structured, read-only output of a rewrite run.
type ResumePayload struct {
	Heading        Heading      `json:"heading"`
	Experiences    []Experience `json:"experiences" validate:"min=1,dive"`
	Skills         []string     `json:"skills" validate:"max=12"`
	Projects       []Project    `json:"projects" validate:"min=1,dive"`
	Education      string       `json:"education"`
	Certifications []string     `json:"certifications"`
}

// KeywordWeights is the ranked vocabulary built from the reference text.
type KeywordWeights struct {
	Skills  []string `json:"skills"`
	Domains []string `json:"domains"`
}

// AllBullets returns every bullet in processing order: experiences first, then projects.
func (p *ResumePayload) AllBullets() []Bullet {
	var out []Bullet
	for _, exp := range p.Experiences {
		out = append(out, exp.Bullets...)
	}
	for _, proj := range p.Projects {
		out = append(out, proj.Bullets...)
	}
	return out
}

// Validate checks the payload's structural invariants using the validator.
func (p *ResumePayload) Validate() error {
	validate := validator.New()
	if err := validate.RegisterValidation("bullet_template", validateBulletTemplate); err != nil {
		return err
	}
	return validate.Struct(p)
}

func validateBulletTemplate(fl validator.FieldLevel) bool {
	return BulletTemplatePattern.MatchString(fl.Field().String())
}
