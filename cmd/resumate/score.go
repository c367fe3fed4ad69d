package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/analysis"
	"github.com/jonathan/resumate/internal/ingestion"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/scoring"
	"github.com/jonathan/resumate/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a rewritten resume payload against a job description",
	Long:  "Computes the ATS score of a payload JSON file along with matched and missing job keywords.",
	RunE:  runScore,
}

var (
	scorePayloadPath string
	scoreJob         string
	scoreJobURL      string
	scoreJobText     string
	scoreOut         string
)

func init() {
	scoreCmd.Flags().StringVarP(&scorePayloadPath, "payload", "p", "", "Path to ResumePayload JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJob, "job", "j", "", "Path to the job description")
	scoreCmd.Flags().StringVar(&scoreJobURL, "job-url", "", "URL of the job posting, fetched when --job is not given")
	scoreCmd.Flags().StringVar(&scoreJobText, "job-text", "", "Job description text (overrides --job)")
	scoreCmd.Flags().StringVarP(&scoreOut, "out", "o", "", "Path to output report JSON file (stdout when empty)")

	if err := scoreCmd.MarkFlagRequired("payload"); err != nil {
		panic(fmt.Sprintf("failed to mark payload flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	jobText, err := readJobText(cmd.Context(), jobSource{Inline: scoreJobText, Path: scoreJob, URL: scoreJobURL})
	if err != nil {
		return err
	}

	analyzer, err := nlp.NewProseAnalyzer()
	if err != nil {
		return err
	}

	report, err := scorePayloadFile(cmd.Context(), analyzer, scoring.NewScorer(), scorePayloadPath, jobText)
	if err != nil {
		return err
	}
	return writeJSON(scoreOut, report, cmd.OutOrStdout())
}

// scorePayloadFile reads a payload and reports it against jobText.
func scorePayloadFile(ctx context.Context, analyzer nlp.Analyzer, scorer *scoring.Scorer, path, jobText string) (scoring.Report, error) {
	payload, err := readPayload(path)
	if err != nil {
		return scoring.Report{}, err
	}

	weights, err := analysis.ExtractKeywords(ctx, analyzer, ingestion.Normalize(jobText))
	if err != nil {
		return scoring.Report{}, fmt.Errorf("failed to extract job keywords: %w", err)
	}

	return scorer.Report(payload, jobText, weights), nil
}

func readPayload(path string) (*types.ResumePayload, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}

	var payload types.ResumePayload
	if err := json.Unmarshal(content, &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal payload JSON: %w", err)
	}
	return &payload, nil
}
