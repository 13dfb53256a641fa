// Command docubuddy ranks the functions of a source tree by structural
// complexity.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	charmlog "github.com/charmbracelet/log"
	"github.com/docopt/docopt-go"

	"github.com/BenjaminWie/docu-buddy/analysis"
	"github.com/BenjaminWie/docu-buddy/config"
	"github.com/BenjaminWie/docu-buddy/db"
	"github.com/BenjaminWie/docu-buddy/output"
	"github.com/BenjaminWie/docu-buddy/parser"
	"github.com/BenjaminWie/docu-buddy/progress"
)

// Set by build flags (-ldflags "-X main.version=...").
var version = "dev"

const usage = `docubuddy ranks source functions by structural complexity.

Usage:
  docubuddy rank [<dir>] [options] [--exclude=<glob>...]
  docubuddy languages [options]
  docubuddy -h | --help
  docubuddy --version

Options:
  -h --help              Show this screen.
  --version              Show version.
  -c --config=<file>     Config file; docubuddy.toml and friends are searched otherwise.
  -f --format=<fmt>      Output format: text, json, yaml or markdown.
  -o --out=<file>        Write the report to a file instead of stdout.
  -n --limit=<n>         Number of functions to keep.
  -w --workers=<n>       Files processed concurrently.
  --max-files=<n>        Stop after this many source files.
  --max-depth=<n>        Do not descend more than this many directories.
  -r --reference=<tmpl>  Reference URL template or base URL.
  -e --exclude=<glob>    Exclude paths matching a doublestar glob.
  --no-content           Omit function bodies from the report.
  --store                Hand the ranking to SurrealDB.
  --no-color             Disable colored output.
  --progress             Show a progress bar.
  -v --verbose           Log skipped directories.
`

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run is the testable body of the command.
func run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	var answered bool
	p := &docopt.Parser{
		HelpHandler: func(err error, text string) {
			if err != nil {
				fmt.Fprintln(stderr, text)
				return
			}
			fmt.Fprintln(stdout, text)
			answered = true
		},
	}

	opts, err := p.ParseArgs(usage, argv, version)
	if err != nil {
		return exitUsage
	}
	if answered {
		return exitOK
	}

	verbose, _ := opts.Bool("--verbose")
	logger := newLogger(stderr, verbose)

	cfg, err := loadConfig(opts)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		return exitUsage
	}

	if isSet(opts, "languages") {
		reg, err := cfg.Registry()
		if err != nil {
			logger.Error("invalid configuration", "error", err)
			return exitUsage
		}
		if err := output.WriteLanguages(stdout, reg.Profiles()); err != nil {
			logger.Error("failed to list languages", "error", err)
			return exitError
		}
		return exitOK
	}

	dir := "."
	if s, ok := opts["<dir>"].(string); ok && s != "" {
		dir = s
	}
	withProgress, _ := opts.Bool("--progress")

	if err := rank(ctx, cfg, dir, withProgress, logger, stdout, stderr); err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			logger.Error("invalid arguments", "error", usageErr.err)
			return exitUsage
		}
		logger.Error("ranking failed", "error", err)
		return exitError
	}
	return exitOK
}

type usageError struct{ err error }

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// newLogger returns a slog logger backed by a charm handler on w.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	handler := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: false,
		Prefix:          "docubuddy",
	})
	if verbose {
		handler.SetLevel(charmlog.DebugLevel)
	}
	return slog.New(handler)
}

func isSet(opts docopt.Opts, key string) bool {
	v, _ := opts.Bool(key)
	return v
}

// loadConfig layers command-line flags over the config file and environment.
func loadConfig(opts docopt.Opts) (*config.Config, error) {
	path, _ := opts.String("--config")
	if path == "" {
		path = config.Find(".")
	}

	overrides := map[string]any{}
	for flag, key := range map[string]string{
		"--format":    "output.format",
		"--out":       "output.file",
		"--reference": "output.reference_template",
	} {
		if s, ok := opts[flag].(string); ok {
			overrides[key] = s
		}
	}
	for flag, key := range map[string]string{
		"--limit":     "scan.max_results",
		"--workers":   "scan.workers",
		"--max-files": "scan.max_files",
		"--max-depth": "scan.max_depth",
	} {
		s, ok := opts[flag].(string)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a number", flag, s)
		}
		overrides[key] = n
	}
	if isSet(opts, "--no-content") {
		overrides["scan.include_content"] = false
	}
	if isSet(opts, "--no-color") {
		overrides["output.color"] = false
	}
	if isSet(opts, "--store") {
		overrides["store.enabled"] = true
	}

	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}
	if excludes, ok := opts["--exclude"].([]string); ok {
		cfg.Scan.Exclude = append(cfg.Scan.Exclude, excludes...)
	}
	return cfg, nil
}

func rank(ctx context.Context, cfg *config.Config, dir string, withProgress bool, logger *slog.Logger, stdout, stderr io.Writer) error {
	format, err := output.ParseFormat(cfg.Output.Format)
	if err != nil {
		return &usageError{err}
	}
	reg, err := cfg.Registry()
	if err != nil {
		return &usageError{err}
	}
	pathFilter, err := cfg.Filter()
	if err != nil {
		return &usageError{err}
	}

	analyzer := &analysis.Analyzer{
		Parser:  parser.NewParser(reg),
		Metrics: analysis.NewMetricsAnalyzerWith(reg, cfg.Cache.Metrics),
		Filter:  pathFilter,
		Logger:  logger,
		Options: cfg.AnalysisOptions(),
	}
	if withProgress {
		analyzer.Progress = progress.NewTrackerTo(stderr, "ranking")
	}

	if cfg.Store.Enabled {
		store, err := db.NewSurrealDB(cfg.DBConfig())
		if err != nil {
			return err
		}
		analyzer.DB = store
		if err := analyzer.Initialize(ctx); err != nil {
			return fmt.Errorf("failed to initialize store: %w", err)
		}
	}

	logger.Info("ranking functions", "dir", dir, "workers", cfg.Scan.Workers, "limit", cfg.Scan.MaxResults)
	ranking, err := analyzer.AnalyzeDirectory(ctx, dir)
	if err != nil {
		return err
	}
	logger.Info("ranking complete",
		"functions", ranking.Summary.FunctionsAnalyzed,
		"ranked", len(ranking.Functions),
		"failed_files", ranking.Summary.FilesFailed,
		"metric_cache_hits", analyzer.Metrics.Hits(),
	)

	var formatter *output.Formatter
	if cfg.Output.File != "" {
		formatter, err = output.NewFormatter(format, cfg.Output.File, false)
		if err != nil {
			return err
		}
	} else {
		formatter = output.NewWriterFormatter(format, stdout, cfg.Output.Color)
	}
	if err := formatter.Write(ranking); err != nil {
		formatter.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := formatter.Close(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if cfg.Output.File != "" {
		logger.Info("report written", "path", cfg.Output.File)
	}
	return nil
}
