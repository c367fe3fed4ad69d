package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resumate/internal/config"
	"github.com/jonathan/resumate/internal/ingestion"
	"github.com/jonathan/resumate/internal/nlp"
	"github.com/jonathan/resumate/internal/observability"
	"github.com/jonathan/resumate/internal/pipeline"
	"github.com/jonathan/resumate/internal/scoring"
)

// defaultWorkers bounds parallel rewrites when neither flag nor config sets it
const defaultWorkers = 4

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Rewrite every resume in a directory for one job description",
	Long: `Rewrites each resume document in --dir against the same job description, writing one
<name>.json payload per resume into --out-dir. Resumes that share a name, such as a.txt and a.pdf,
are written as a.txt.json and a.pdf.json. Documents that cannot be read are skipped.`,
	RunE: runBatch,
}

var (
	batchConfigPath string
	batchDir        string
	batchJob        string
	batchJobURL     string
	batchJobText    string
	batchOutDir     string
	batchWorkers    int
	batchIndustry   string
	batchVerbose    bool
	batchLimits     limitFlags
)

func init() {
	batchCmd.Flags().StringVar(&batchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	batchCmd.Flags().StringVarP(&batchDir, "dir", "d", "", "Directory of resume documents (required)")
	batchCmd.Flags().StringVarP(&batchJob, "job", "j", "", "Path to the job description")
	batchCmd.Flags().StringVar(&batchJobURL, "job-url", "", "URL of the job posting, fetched when --job is not given")
	batchCmd.Flags().StringVar(&batchJobText, "job-text", "", "Job description text (overrides --job)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out-dir", "o", "", "Directory for payload JSON files (required)")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "Parallel rewrites (default 4)")
	batchCmd.Flags().StringVar(&batchIndustry, "industry", "", "Target industry for every resume; detected when empty")
	batchCmd.Flags().BoolVarP(&batchVerbose, "verbose", "v", false, "Print detailed debug information")
	batchLimits.register(batchCmd)

	if err := batchCmd.MarkFlagRequired("dir"); err != nil {
		panic(fmt.Sprintf("failed to mark dir flag as required: %v", err))
	}
	if err := batchCmd.MarkFlagRequired("out-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark out-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(batchCmd)
}

// batchOptions is the fully resolved input of a batch run
type batchOptions struct {
	Dir     string
	OutDir  string
	JobText string
	Config  config.Config
}

// batchItem records the outcome for one resume
type batchItem struct {
	Name    string
	OutPath string
	Score   int
	Skipped string
}

func runBatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(batchConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = batchJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = batchJobURL
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = batchWorkers
	}
	if cmd.Flags().Changed("industry") {
		cfg.Industry = batchIndustry
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = batchVerbose
	}
	batchLimits.apply(cmd, &cfg)
	cfg = cfg.MergeWithDefaults(config.Config{Workers: defaultWorkers})
	if err := cfg.Validate(); err != nil {
		return err
	}

	jobText, err := readJobText(cmd.Context(), jobSource{Inline: batchJobText, Path: cfg.Job, URL: cfg.JobURL})
	if err != nil {
		return err
	}

	analyzer, err := nlp.NewProseAnalyzer()
	if err != nil {
		return err
	}
	logger := observability.NewLogger(cfg.Verbose, os.Stderr)

	items, err := rewriteBatch(cmd.Context(), analyzer, logger, batchOptions{
		Dir:     batchDir,
		OutDir:  batchOutDir,
		JobText: jobText,
		Config:  cfg,
	})
	if err != nil {
		return err
	}
	printBatchSummary(cmd.OutOrStdout(), items)
	return nil
}

// rewriteBatch rewrites every regular file in opts.Dir with at most
// opts.Config.Workers rewrites in flight. The first pipeline failure cancels the rest.
func rewriteBatch(ctx context.Context, analyzer nlp.Analyzer, logger logrus.FieldLogger, opts batchOptions) ([]batchItem, error) {
	entries, err := os.ReadDir(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read resume directory: %w", err)
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	runner, err := pipeline.NewRunner(pipeline.RunOptions{
		Analyzer: analyzer,
		Limits:   opts.Config.Limits(),
		Industry: opts.Config.Industry,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	scorer := scoring.NewScorer()

	var (
		mu    sync.Mutex
		items []batchItem
	)
	record := func(item batchItem) {
		mu.Lock()
		defer mu.Unlock()
		items = append(items, item)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Config.Workers))

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, entry.Name())
	}
	outNames := payloadNames(names)

	for _, name := range names {
		g.Go(func() error {
			path := filepath.Join(opts.Dir, name)
			text, meta, err := ingestion.IngestFromFile(path)
			if err != nil {
				var extractErr *ingestion.ExtractionError
				var formatErr *ingestion.UnsupportedFormatError
				if errors.As(err, &extractErr) || errors.As(err, &formatErr) {
					logger.WithField("file", name).WithError(err).Warn("skipping unreadable resume")
					record(batchItem{Name: name, Skipped: err.Error()})
					return nil
				}
				return fmt.Errorf("%s: %w", name, err)
			}
			logger.WithFields(logrus.Fields{
				"file":   name,
				"format": meta.Format,
				"hash":   meta.Hash,
			}).Debug("ingested resume")

			result, err := runner.Run(gctx, text, opts.JobText)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			if err := result.Payload.Validate(); err != nil {
				return fmt.Errorf("%s: generated payload is invalid: %w", name, err)
			}

			outPath := filepath.Join(opts.OutDir, outNames[name])
			if err := writeJSON(outPath, result.Payload, io.Discard); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			record(batchItem{
				Name:    name,
				OutPath: outPath,
				Score:   scorer.Score(result.Payload, opts.JobText),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

// payloadNames maps each resume file name to its payload file name. Resumes
// sharing a base name, such as a.txt and a.pdf, keep their extension.
func payloadNames(names []string) map[string]string {
	bases := make(map[string]int, len(names))
	for _, name := range names {
		bases[strings.TrimSuffix(name, filepath.Ext(name))]++
	}
	out := make(map[string]string, len(names))
	for _, name := range names {
		base := strings.TrimSuffix(name, filepath.Ext(name))
		if bases[base] > 1 {
			base = name
		}
		out[name] = base + ".json"
	}
	return out
}

func printBatchSummary(out io.Writer, items []batchItem) {
	rewritten := 0
	for _, item := range items {
		if item.Skipped != "" {
			_, _ = fmt.Fprintf(out, "  skipped  %s: %s\n", item.Name, item.Skipped)
			continue
		}
		rewritten++
		_, _ = fmt.Fprintf(out, "  %3d      %s -> %s\n", item.Score, item.Name, item.OutPath)
	}
	_, _ = fmt.Fprintf(out, "Rewrote %d of %d resumes\n", rewritten, len(items))
}
