// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resumate/internal/extraction"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"`                           // Path to the resume document
	Job    string `json:"job,omitempty"`                              // Path to the job description
	JobURL string `json:"job_url,omitempty" validate:"omitempty,url"` // Job posting URL, fetched when no job file is given
	Out    string `json:"out,omitempty"`                              // Output path for the payload JSON

	// Limits; zero means the default
	MaxExperienceBlocks  int `json:"max_experience_blocks,omitempty" validate:"gte=0"`
	MaxExperienceBullets int `json:"max_experience_bullets,omitempty" validate:"gte=0,lte=5"`
	MaxProjectBullets    int `json:"max_project_bullets,omitempty" validate:"gte=0,lte=4"`
	MaxSkills            int `json:"max_skills,omitempty" validate:"gte=0,lte=12"`

	// Behavior
	Industry string `json:"industry,omitempty" validate:"omitempty,oneof=general finance ecommerce healthcare saas gaming telecom"` // Target industry; detected from the job text when empty
	Workers  int    `json:"workers,omitempty" validate:"gte=0,lte=64"`                                                              // Parallel rewrites in batch mode
	Verbose  bool   `json:"verbose,omitempty"`                                                                                      // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			rule := fe.Tag()
			if fe.Param() != "" {
				rule += "=" + fe.Param()
			}
			return fmt.Errorf("config error: '%s' fails '%s' (got %v)", jsonName(fe.StructField()), rule, fe.Value())
		}
		return fmt.Errorf("config error: %w", err)
	}

	// Validate file paths exist (if specified)
	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.Out == "" {
		result.Out = defaults.Out
	}
	if result.Industry == "" {
		result.Industry = defaults.Industry
	}

	// Int fields: use default if zero
	if result.MaxExperienceBlocks == 0 {
		result.MaxExperienceBlocks = defaults.MaxExperienceBlocks
	}
	if result.MaxExperienceBullets == 0 {
		result.MaxExperienceBullets = defaults.MaxExperienceBullets
	}
	if result.MaxProjectBullets == 0 {
		result.MaxProjectBullets = defaults.MaxProjectBullets
	}
	if result.MaxSkills == 0 {
		result.MaxSkills = defaults.MaxSkills
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Limits returns the extraction limits, with unset values taken from the defaults.
func (c *Config) Limits() extraction.Limits {
	defaults := extraction.DefaultLimits()
	pick := func(v, fallback int) int {
		if v > 0 {
			return v
		}
		return fallback
	}
	return extraction.Limits{
		MaxExperienceBlocks:  pick(c.MaxExperienceBlocks, defaults.MaxExperienceBlocks),
		MaxExperienceBullets: pick(c.MaxExperienceBullets, defaults.MaxExperienceBullets),
		MaxProjectBullets:    pick(c.MaxProjectBullets, defaults.MaxProjectBullets),
		MaxSkills:            pick(c.MaxSkills, defaults.MaxSkills),
	}
}

// jsonName maps a Config field to its JSON key for error messages
func jsonName(field string) string {
	f, ok := reflect.TypeOf(Config{}).FieldByName(field)
	if !ok {
		return field
	}
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" {
		return field
	}
	return name
}
