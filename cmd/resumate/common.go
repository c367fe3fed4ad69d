package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/config"
	"github.com/jonathan/resumate/internal/fetch"
	"github.com/jonathan/resumate/internal/ingestion"
)

// configEnvVar names the config file used when --config is not given
const configEnvVar = "RESUMATE_CONFIG"

// limitFlags are shared by commands that run the rewrite pipeline
type limitFlags struct {
	maxExperienceBlocks  int
	maxExperienceBullets int
	maxProjectBullets    int
	maxSkills            int
}

func (l *limitFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&l.maxExperienceBlocks, "max-experiences", 0, "Maximum experience entries (default 5)")
	cmd.Flags().IntVar(&l.maxExperienceBullets, "max-experience-bullets", 0, "Maximum bullets per experience (default 5)")
	cmd.Flags().IntVar(&l.maxProjectBullets, "max-project-bullets", 0, "Maximum bullets per project (default 4)")
	cmd.Flags().IntVar(&l.maxSkills, "max-skills", 0, "Maximum skills (default 12)")
}

// apply copies explicitly set limit flags over cfg
func (l *limitFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("max-experiences") {
		cfg.MaxExperienceBlocks = l.maxExperienceBlocks
	}
	if cmd.Flags().Changed("max-experience-bullets") {
		cfg.MaxExperienceBullets = l.maxExperienceBullets
	}
	if cmd.Flags().Changed("max-project-bullets") {
		cfg.MaxProjectBullets = l.maxProjectBullets
	}
	if cmd.Flags().Changed("max-skills") {
		cfg.MaxSkills = l.maxSkills
	}
}

// loadConfig reads the config file named by path or $RESUMATE_CONFIG.
// No file yields an empty config.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		path = os.Getenv(configEnvVar)
	}
	if path == "" {
		return config.Config{}, nil
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return *cfg, nil
}

// jobSource names where the job description comes from; the first non-empty field wins.
type jobSource struct {
	Inline string
	Path   string
	URL    string
}

// readJobText returns the job description, or "" when no source is given.
func readJobText(ctx context.Context, src jobSource) (string, error) {
	switch {
	case strings.TrimSpace(src.Inline) != "":
		return src.Inline, nil
	case src.Path != "":
		text, _, err := ingestion.IngestFromFile(src.Path)
		if err != nil {
			return "", fmt.Errorf("failed to read job description: %w", err)
		}
		return text, nil
	case src.URL != "":
		text, err := fetch.NewClient(nil).JobPosting(ctx, src.URL)
		if err != nil {
			return "", fmt.Errorf("failed to fetch job posting: %w", err)
		}
		return ingestion.Normalize(text), nil
	}
	return "", nil
}

// writeJSON writes v as indented JSON to path, or to stdout when path is "" or "-".
func writeJSON(path string, v any, stdout io.Writer) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" || path == "-" {
		_, err := fmt.Fprintln(stdout, string(jsonBytes))
		return err
	}

	outputDir := filepath.Dir(path)
	if outputDir != "" && outputDir != "." {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
