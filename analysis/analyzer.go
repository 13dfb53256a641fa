package analysis

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/BenjaminWie/docu-buddy/db"
	"github.com/BenjaminWie/docu-buddy/filter"
	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/parser"
	"github.com/BenjaminWie/docu-buddy/types"
)

// Options tune a scan.
type Options struct {
	// MaxResults bounds the ranking; <= 0 selects DefaultMaxResults.
	MaxResults int
	// Workers bounds concurrent file processing; <= 0 selects GOMAXPROCS.
	Workers int
	// MaxFiles stops the walk after this many source files; 0 is unlimited.
	MaxFiles int
	// MaxDepth prunes directories nested deeper than this below the root;
	// 0 is unlimited.
	MaxDepth int
	// IncludeContent copies each function body into the ranking.
	IncludeContent bool
	// ReferenceTemplate builds the per-function reference URL.
	ReferenceTemplate string
}

// Progress receives per-file notifications while a scan runs.
type Progress interface {
	Start(total int)
	Tick()
	Finish()
}

// Analyzer provides a high-level interface for ranking a source tree and
// handing the result to an optional store.
type Analyzer struct {
	DB       db.DB
	Parser   *parser.Parser
	Metrics  *MetricsAnalyzer
	Filter   *filter.Filter
	Logger   *slog.Logger
	Progress Progress
	Options  Options
}

// NewAnalyzer creates an Analyzer over the built-in languages.
func NewAnalyzer(opts Options) *Analyzer {
	reg := language.Default()
	return &Analyzer{
		Parser:  parser.NewParser(reg),
		Metrics: NewMetricsAnalyzerWith(reg, DefaultMetricsCacheSize),
		Logger:  slog.Default(),
		Options: opts,
	}
}

// Initialize prepares the store, if one is attached.
func (a *Analyzer) Initialize(ctx context.Context) error {
	if a.DB == nil {
		return nil
	}
	return a.DB.Initialize(ctx)
}

// AnalyzeDirectory ranks dir and hands the ranking to the store.
func (a *Analyzer) AnalyzeDirectory(ctx context.Context, dir string) (types.Ranking, error) {
	ranking, err := a.Rank(ctx, dir)
	if err != nil {
		return types.Ranking{}, fmt.Errorf("failed to analyze directory: %w", err)
	}

	if a.DB != nil {
		if err := a.DB.StoreRanking(ctx, ranking); err != nil {
			return ranking, fmt.Errorf("failed to store ranking: %w", err)
		}
	}

	return ranking, nil
}

// sourceFile is a file selected by the walk, in walk order.
type sourceFile struct {
	abs string
	rel string
}

// fileResult is the slot a worker fills for one sourceFile.
type fileResult struct {
	language  string
	functions []types.RankedResult
	types     int
	failed    bool
}

// Rank walks dir, scores every extracted function and returns the top
// functions by descending score. Files that cannot be read or decoded are
// logged and counted but never abort the run.
func (a *Analyzer) Rank(ctx context.Context, dir string) (types.Ranking, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return types.Ranking{}, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	files, summary, err := a.collect(ctx, root)
	if err != nil {
		return types.Ranking{}, err
	}

	slots, err := a.process(ctx, files)
	if err != nil {
		return types.Ranking{}, err
	}

	return a.merge(root, slots, summary), nil
}

func (a *Analyzer) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

func (a *Analyzer) parser() *parser.Parser {
	if a.Parser == nil {
		a.Parser = parser.NewParser(nil)
	}
	return a.Parser
}

func (a *Analyzer) metrics() *MetricsAnalyzer {
	if a.Metrics == nil {
		a.Metrics = NewMetricsAnalyzerWith(a.parser().Registry(), DefaultMetricsCacheSize)
	}
	return a.Metrics
}

// collect walks root in lexical order and returns the files that carry a
// known language. The root itself is never filtered.
func (a *Analyzer) collect(ctx context.Context, root string) ([]sourceFile, types.Summary, error) {
	var (
		files   []sourceFile
		summary types.Summary
	)
	log := a.logger()
	reg := a.parser().Registry()

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return fmt.Errorf("failed to walk directory: %w", err)
			}
			log.Warn("failed to read path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("failed to relativize %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if a.Filter.SkipDir(rel) {
				log.Debug("skipping directory", "path", rel)
				summary.DirectoriesPruned++
				return filepath.SkipDir
			}
			if a.Options.MaxDepth > 0 && strings.Count(rel, "/")+1 > a.Options.MaxDepth {
				log.Debug("skipping directory below max depth", "path", rel)
				summary.DirectoriesPruned++
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}

		if a.Filter.SkipFile(rel) {
			summary.FilesSkipped++
			return nil
		}
		switch reg.DetectLanguage(path) {
		case types.LanguageSkip, types.LanguageUnknown:
			summary.FilesSkipped++
			return nil
		}

		if a.Options.MaxFiles > 0 && len(files) >= a.Options.MaxFiles {
			log.Info("file limit reached, stopping walk", "max_files", a.Options.MaxFiles)
			return filepath.SkipAll
		}
		files = append(files, sourceFile{abs: path, rel: rel})
		return nil
	})
	if err != nil {
		return nil, summary, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}
	return files, summary, nil
}

// process analyzes files concurrently. Each worker writes only its own slot,
// so the slots keep walk order without further synchronization.
func (a *Analyzer) process(ctx context.Context, files []sourceFile) ([]fileResult, error) {
	workers := a.Options.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	if a.Progress != nil {
		a.Progress.Start(len(files))
		defer a.Progress.Finish()
	}

	metrics := a.metrics()
	slots := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, file := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			slots[i] = a.processFile(file, metrics)
			if a.Progress != nil {
				a.Progress.Tick()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slots, nil
}

func (a *Analyzer) processFile(file sourceFile, metricsAnalyzer *MetricsAnalyzer) fileResult {
	analysis, err := a.parser().ParseFile(file.abs)
	result := fileResult{language: analysis.Language}
	if err != nil {
		a.logger().Warn("failed to process file", "path", file.rel, "error", err)
		result.failed = true
		return result
	}

	result.types = analysis.Types
	fileURL := FileURL(file.abs)
	for _, fn := range analysis.Functions {
		metrics := metricsAnalyzer.Analyze(fn)
		ranked := types.RankedResult{
			FunctionName: fn.Name,
			FilePath:     file.rel,
			FileURL:      fileURL,
			ReferenceURL: ReferenceURL(a.Options.ReferenceTemplate, file.rel, fn.StartLine, fn.EndLine),
			StartLine:    fn.StartLine,
			EndLine:      fn.EndLine,
			Language:     fn.Language,
			TotalScore:   Score(metrics),
			Metrics:      metrics,
		}
		if a.Options.IncludeContent {
			ranked.FunctionContent = fn.Content
		}
		result.functions = append(result.functions, ranked)
	}
	return result
}

// merge concatenates the slots in walk order, ranks the functions and fills
// in the summary.
func (a *Analyzer) merge(root string, slots []fileResult, summary types.Summary) types.Ranking {
	var all []types.RankedResult
	languages := make(map[string]struct{})

	for _, slot := range slots {
		if slot.failed {
			summary.FilesFailed++
			continue
		}
		summary.FilesScanned++
		summary.TypesDeclared += slot.types
		if len(slot.functions) > 0 {
			languages[slot.language] = struct{}{}
		}
		all = append(all, slot.functions...)
	}
	summary.FunctionsAnalyzed = len(all)

	limit := a.Options.MaxResults
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	if len(all) > limit {
		summary.ResultsTruncatedAt = limit
	}
	ranked := Rank(all, limit)
	if ranked == nil {
		ranked = []types.RankedResult{}
	}

	summary.LanguagesFound = make([]string, 0, len(languages))
	for lang := range languages {
		summary.LanguagesFound = append(summary.LanguagesFound, lang)
	}
	sort.Strings(summary.LanguagesFound)

	resultFiles := make(map[string]struct{})
	for _, r := range ranked {
		resultFiles[r.FilePath] = struct{}{}
	}
	summary.ResultFiles = len(resultFiles)

	return types.Ranking{Root: root, Functions: ranked, Summary: summary}
}

// FileURL returns a file:// URL for an absolute path.
func FileURL(abs string) string {
	p := filepath.ToSlash(abs)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return "file://" + p
}

// ReferenceURL expands tmpl for a function span. The placeholders {path},
// {start} and {end} are substituted; a template without placeholders is a
// base URL and gets "<path>#L<start>-L<end>" appended. An empty template
// yields an empty URL.
func ReferenceURL(tmpl, rel string, start, end int) string {
	if tmpl == "" {
		return ""
	}
	if strings.Contains(tmpl, "{path}") || strings.Contains(tmpl, "{start}") || strings.Contains(tmpl, "{end}") {
		return strings.NewReplacer(
			"{path}", rel,
			"{start}", strconv.Itoa(start),
			"{end}", strconv.Itoa(end),
		).Replace(tmpl)
	}
	return fmt.Sprintf("%s%s#L%d-L%d", tmpl, rel, start, end)
}
