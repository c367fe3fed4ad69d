package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/config"
	"github.com/jonathan/resumate/internal/ingestion"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/observability"
	"github.com/jonathan/resumate/internal/pipeline"
	"github.com/jonathan/resumate/internal/schemas"
	"github.com/jonathan/resumate/internal/scoring"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite",
	Short: "Rewrite a resume for a job description",
	Long: `Extracts the heading, experiences, projects, skills, education and certifications from a
resume (PDF, DOCX, HTML or plain text), rewrites every bullet into the "Solved X by Y, resulting in Z"
template using the job description's vocabulary, and writes the resulting payload as JSON.

Configuration can be loaded from a JSON file using --config (or $RESUMATE_CONFIG). Command-line
arguments override config file values.`,
	RunE: runRewrite,
}

var (
	rewriteConfigPath string
	rewriteResume     string
	rewriteJob        string
	rewriteJobURL     string
	rewriteJobText    string
	rewriteOut        string
	rewriteReport     string
	rewriteIndustry   string
	rewriteVerbose    bool
	rewriteLimits     limitFlags
)

func init() {
	rewriteCmd.Flags().StringVar(&rewriteConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	rewriteCmd.Flags().StringVarP(&rewriteResume, "resume", "r", "", "Path to the resume document")
	rewriteCmd.Flags().StringVarP(&rewriteJob, "job", "j", "", "Path to the job description")
	rewriteCmd.Flags().StringVar(&rewriteJobURL, "job-url", "", "URL of the job posting, fetched when --job is not given")
	rewriteCmd.Flags().StringVar(&rewriteJobText, "job-text", "", "Job description text (overrides --job)")
	rewriteCmd.Flags().StringVarP(&rewriteOut, "out", "o", "", "Path to output payload JSON file (stdout when empty)")
	rewriteCmd.Flags().StringVar(&rewriteReport, "report", "", "Path to output ATS report JSON file")
	rewriteCmd.Flags().StringVar(&rewriteIndustry, "industry", "", "Target industry (general, finance, ecommerce, healthcare, saas, gaming, telecom); detected when empty")
	rewriteCmd.Flags().BoolVarP(&rewriteVerbose, "verbose", "v", false, "Print detailed debug information")
	rewriteLimits.register(rewriteCmd)

	rootCmd.AddCommand(rewriteCmd)
}

// rewriteOptions is the fully resolved input of one rewrite
type rewriteOptions struct {
	ResumePath string
	JobText    string
	OutPath    string
	ReportPath string
	Config     config.Config
}

func runRewrite(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(rewriteConfigPath)
	if err != nil {
		return err
	}

	// Only override if the flag was explicitly set
	if cmd.Flags().Changed("resume") {
		cfg.Resume = rewriteResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = rewriteJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = rewriteJobURL
	}
	if cmd.Flags().Changed("out") {
		cfg.Out = rewriteOut
	}
	if cmd.Flags().Changed("industry") {
		cfg.Industry = rewriteIndustry
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = rewriteVerbose
	}
	rewriteLimits.apply(cmd, &cfg)

	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobText, err := readJobText(cmd.Context(), jobSource{Inline: rewriteJobText, Path: cfg.Job, URL: cfg.JobURL})
	if err != nil {
		return err
	}

	analyzer, err := nlp.NewProseAnalyzer()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Verbose, os.Stderr)

	return rewriteResumeFile(cmd.Context(), analyzer, logger, rewriteOptions{
		ResumePath: cfg.Resume,
		JobText:    jobText,
		OutPath:    cfg.Out,
		ReportPath: rewriteReport,
		Config:     cfg,
	}, cmd.OutOrStdout())
}

// rewriteResumeFile runs the pipeline on one resume file and writes the payload
// (and optionally the ATS report).
func rewriteResumeFile(ctx context.Context, analyzer nlp.Analyzer, logger logrus.FieldLogger, opts rewriteOptions, stdout io.Writer) error {
	resumeText, meta, err := ingestion.IngestFromFile(opts.ResumePath)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"source": meta.Source,
		"format": meta.Format,
		"chars":  meta.Chars,
		"hash":   meta.Hash,
	}).Debug("ingested resume")

	runner, err := pipeline.NewRunner(pipeline.RunOptions{
		Analyzer: analyzer,
		Limits:   opts.Config.Limits(),
		Industry: opts.Config.Industry,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	result, err := runner.Run(ctx, resumeText, opts.JobText)
	if err != nil {
		return fmt.Errorf("failed to rewrite resume: %w", err)
	}

	if err := result.Payload.Validate(); err != nil {
		return fmt.Errorf("generated payload is invalid: %w", err)
	}
	if err := schemas.ValidatePayload(result.Payload); err != nil {
		return fmt.Errorf("generated JSON does not validate against schema: %w", err)
	}

	if err := writeJSON(opts.OutPath, result.Payload, stdout); err != nil {
		return err
	}

	report := scoring.NewScorer().Report(result.Payload, opts.JobText, result.Keywords)
	if opts.ReportPath != "" {
		if err := writeJSON(opts.ReportPath, report, stdout); err != nil {
			return err
		}
	}

	// Summaries would corrupt JSON written to stdout
	if opts.OutPath == "" || opts.OutPath == "-" {
		return nil
	}

	if opts.Config.Verbose {
		printer := observability.NewPrinter(stdout)
		printer.PrintKeywords(result.Keywords, result.Industry)
		printer.PrintBalance(result.Balance)
		printer.PrintPayload(result.Payload)
		printer.PrintReport(report)
	}

	_, _ = fmt.Fprintf(stdout, "Successfully rewrote %d bullets (ATS score %d)\n", len(result.Payload.AllBullets()), report.Score)
	_, _ = fmt.Fprintf(stdout, "Output: %s\n", opts.OutPath)

	return nil
}
