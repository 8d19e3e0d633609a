package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"passat/internal/classify"
	"passat/internal/config"
	"passat/internal/database"
	"passat/internal/input"
	logpkg "passat/internal/log"
	"passat/internal/model"
	"passat/internal/pipeline"
	"passat/internal/report"
	"passat/internal/stats"
)

// NewAuditCmd creates the audit command.
func NewAuditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit [file...]",
		Short: "Audit password quality of one or more password lists",
		Long: `Audit reads line-oriented password lists and produces a statistical
security profile.

Each line may be "password", "user:password", or "user:hash:password"; only
the password component is analyzed. Values wrapped as $HEX[...] are decoded
first. Every password is classified by length, repeated value, character-class
shape pattern, charset/sequence taxonomy, and fuzzy dictionary category, and
the results are aggregated into frequency tables.

Examples:
  # Audit a dump file
  passat audit rockyou.txt

  # Read from stdin
  cat dump.txt | passat audit

  # Multiple files accumulate into one set of statistics
  passat audit dump1.txt dump2.txt

  # Letter-frequency analysis, custom dictionary, Markdown report
  passat audit -f -c wordlists/es.yaml --markdown -o report.md dump.txt

  # Skip fuzzy categorization for very large dumps
  passat audit --no-categories huge.txt`,
		Args: cobra.ArbitraryArgs,
		RunE: runAuditCmd,
	}

	// Classification flags
	cmd.Flags().BoolP("freq", "f", false,
		"Run frequency analysis for characters used")
	cmd.Flags().Bool("no-categories", false,
		"Don't perform fuzzy categorization, improves performance")
	cmd.Flags().StringP("categories", "c", "",
		fmt.Sprintf("Category dictionary file (.yaml/.yml/.json) for fuzzy matching (default %q)", config.DefaultDictionaryFile))
	cmd.Flags().IntP("workers", "w", config.DefaultWorkers,
		"Number of concurrent classification workers")

	// Error policy flags
	cmd.Flags().String("on-decode-error", string(config.DecodeSkip),
		`Policy for malformed $HEX[...] records: "skip" or "abort"`)
	cmd.Flags().BoolP("keep-going", "k", false,
		"Continue with remaining input files when one cannot be read")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write report to specified file path (creates directories if needed)")
	cmd.Flags().IntP("top", "n", config.DefaultTopLimit,
		"Number of rows per frequency table")

	// Persistence flags
	cmd.Flags().Bool("save", true,
		"Save the run report to the stats database for later comparison")
	cmd.Flags().String("db-dir", config.XDGDataDir(),
		"Directory holding the stats database")

	// Logging flags
	cmd.Flags().Bool("show-passwords", false,
		"Log plaintext passwords instead of masking them in verbose output")

	return cmd
}

// runAuditCmd executes the audit command.
func runAuditCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runAudit(ctx, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.Freq, err = cmd.Flags().GetBool("freq")
	if err != nil {
		return nil, err
	}

	cfg.NoCategories, err = cmd.Flags().GetBool("no-categories")
	if err != nil {
		return nil, err
	}

	dictPath, err := cmd.Flags().GetString("categories")
	if err != nil {
		return nil, err
	}
	if dictPath != "" {
		cfg.DictionaryPath = dictPath
		cfg.DictionaryExplicit = true
	}

	cfg.Workers, err = cmd.Flags().GetInt("workers")
	if err != nil {
		return nil, err
	}

	policy, err := cmd.Flags().GetString("on-decode-error")
	if err != nil {
		return nil, err
	}
	cfg.OnDecodeError = config.DecodePolicy(policy)

	cfg.KeepGoing, err = cmd.Flags().GetBool("keep-going")
	if err != nil {
		return nil, err
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.TopLimit, err = cmd.Flags().GetInt("top")
	if err != nil {
		return nil, err
	}

	cfg.Save, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.DBDir, err = cmd.Flags().GetString("db-dir")
	if err != nil {
		return nil, err
	}

	cfg.ShowPasswords, err = cmd.Flags().GetBool("show-passwords")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	if len(args) > 0 {
		cfg.Sources = args
	}

	return cfg, nil
}

// setupLogger creates the structured logger: text output to stderr with
// password masking unless explicitly disabled.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return logpkg.NewLogger(os.Stderr, level, cfg.ShowPasswords)
}

// runAudit executes the audit run.
func runAudit(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	resolver, categoriesEnabled, err := buildResolver(cfg, logger)
	if err != nil {
		return err
	}

	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewMaskStep(classify.NewMasker(classify.DefaultSymbols)),
		pipeline.NewTaxonomyStep(classify.DefaultTaxonomy()),
	)
	if resolver != nil {
		p.AddStep(pipeline.NewCategoryStep(resolver))
	}

	runAgg := stats.NewAggregator(cfg.Freq, categoriesEnabled)

	for _, name := range cfg.Sources {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := processSource(ctx, cfg, p, runAgg, categoriesEnabled, name, logger); err != nil {
			if cfg.KeepGoing && !errors.Is(err, context.Canceled) {
				logger.Error("source failed", "source", name, "error", err)
				fmt.Fprintf(os.Stderr, "Skipping %s: %v\n", name, err)
				continue
			}
			return err
		}
	}

	runReport := runAgg.Report()

	if err := outputReport(cfg, runReport); err != nil {
		return err
	}

	return saveRunReport(ctx, cfg, runReport, logger)
}

// buildResolver loads the category dictionary and constructs the fuzzy
// resolver. A missing default dictionary disables categorization; a missing
// explicitly requested one is an error.
func buildResolver(cfg *config.Config, logger *slog.Logger) (*classify.Resolver, bool, error) {
	if cfg.NoCategories {
		return nil, false, nil
	}

	dict, err := config.LoadDictionary(cfg.DictionaryPath)
	if err != nil {
		if errors.Is(err, config.ErrDictionaryNotFound) && !cfg.DictionaryExplicit {
			logger.Warn("category dictionary not found, fuzzy categorization disabled",
				"path", cfg.DictionaryPath,
			)
			return nil, false, nil
		}
		return nil, false, err
	}

	logger.Info("category dictionary loaded",
		"path", cfg.DictionaryPath,
		"words", dict.Len(),
	)
	return classify.NewResolver(dict.Words(), dict.Index()), true, nil
}

// processSource runs one input source through the pipeline into a fresh
// aggregator and merges it into runAgg on success, so failed sources never
// show up in the reported statistics.
func processSource(ctx context.Context, cfg *config.Config, p *pipeline.Pipeline, runAgg *stats.Aggregator, categoriesEnabled bool, name string, logger *slog.Logger) error {
	src, err := input.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if err := src.Close(); err != nil {
			logger.Warn("failed to close input", "source", name, "error", err)
		}
	}()

	fmt.Printf("Reading: %s\n", name)
	logger.Debug("opened input source", "source", name, "bytes", src.Size())

	opts := []pipeline.RunnerOption{
		pipeline.WithWorkers(cfg.Workers),
		pipeline.WithRunnerLogger(logger),
		pipeline.WithDecodePolicy(cfg.OnDecodeError),
	}

	var bar *progressbar.ProgressBar
	if !cfg.Verbose {
		bar = newProgressBar()
		opts = append(opts, pipeline.WithProgress(func(n int) {
			_ = bar.Add(n) //nolint:errcheck // Progress display is best effort
		}))
	}

	srcAgg := stats.NewAggregator(cfg.Freq, categoriesEnabled)

	runner := pipeline.NewRunner(p, opts...)
	runErr := runner.Run(ctx, src, srcAgg)

	if bar != nil {
		_ = bar.Finish() //nolint:errcheck // Progress display is best effort
		fmt.Fprintln(os.Stderr)
	}

	if runErr != nil {
		return fmt.Errorf("failed to process %s: %w", name, runErr)
	}

	runAgg.Merge(srcAgg)
	fmt.Printf("Processed %d lines (%d valid passwords)\n\n",
		srcAgg.LinesRead(), srcAgg.ValidPasswords())
	return nil
}

// newProgressBar creates a line-count spinner. Line totals are unknown up
// front (stdin, and files are streamed), so the bar shows throughput and
// count rather than completion.
func newProgressBar() *progressbar.ProgressBar {
	return progressbar.NewOptions64(-1,
		progressbar.OptionSetDescription("classifying"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("lines"),
		progressbar.OptionSpinnerType(14),
	)
}

// outputReport outputs the run report in the requested format.
func outputReport(cfg *config.Config, runReport *model.RunReport) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		// Reports contain plaintext passwords; owner-only permissions.
		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var w report.Writer
	switch {
	case cfg.JSONReport:
		w = report.NewJSONWriter(output, report.WithPrettyPrint())
	case cfg.MarkdownReport:
		w = report.NewMarkdownWriter(output, report.WithMarkdownTopLimit(cfg.TopLimit))
	default:
		w = report.NewSimpleWriter(output, report.WithTopLimit(cfg.TopLimit))
	}

	_, err := w.Write(runReport)
	return err
}

// saveRunReport persists the run report to the stats database if enabled.
func saveRunReport(ctx context.Context, cfg *config.Config, runReport *model.RunReport, logger *slog.Logger) error {
	if !cfg.Save {
		return nil
	}

	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open stats database: %w", err)
	}
	defer db.Close()

	id, err := db.SaveRun(ctx, runReport)
	if err != nil {
		return fmt.Errorf("failed to save run report: %w", err)
	}

	logger.Info("run report saved", "id", id, "db_dir", cfg.DBDir)
	fmt.Printf("Run saved as #%d (compare runs with: passat compare)\n", id)
	return nil
}
