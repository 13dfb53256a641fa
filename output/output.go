// Package output renders a ranking as a text table, JSON, YAML or Markdown.
package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminWie/docu-buddy/types"
)

// ErrUnknownFormat is returned for format names ParseFormat does not know.
var ErrUnknownFormat = errors.New("unknown output format")

// Format represents an output format.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// Formats lists the supported formats.
var Formats = []Format{FormatText, FormatJSON, FormatYAML, FormatMarkdown}

// ParseFormat converts a string to a Format. The empty string selects text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Score thresholds for coloring text output.
const (
	HighScore   = 40.0
	MediumScore = 20.0
)

// Formatter handles output formatting.
type Formatter struct {
	format  Format
	writer  io.Writer
	file    *os.File
	colored bool
}

// NewFormatter creates a formatter writing to the file at output, or to
// stdout when output is empty. File output is never colored.
func NewFormatter(format Format, output string, colored bool) (*Formatter, error) {
	var writer io.Writer = os.Stdout
	var file *os.File

	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", output, err)
		}
		writer = f
		file = f
		colored = false
	}

	return &Formatter{
		format:  format,
		writer:  writer,
		file:    file,
		colored: colored,
	}, nil
}

// NewWriterFormatter creates a formatter writing to w.
func NewWriterFormatter(format Format, w io.Writer, colored bool) *Formatter {
	return &Formatter{format: format, writer: w, colored: colored}
}

// Close closes the formatter's writer if it's a file.
func (f *Formatter) Close() error {
	if f.file != nil {
		return f.file.Close()
	}
	return nil
}

// Format returns the configured format.
func (f *Formatter) Format() Format {
	return f.format
}

// Write renders ranking in the configured format.
func (f *Formatter) Write(ranking types.Ranking) error {
	switch f.format {
	case FormatJSON:
		encoder := json.NewEncoder(f.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(ranking)
	case FormatYAML:
		encoder := yaml.NewEncoder(f.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(ranking); err != nil {
			return err
		}
		return encoder.Close()
	case FormatMarkdown:
		return writeMarkdown(f.writer, ranking)
	case FormatText, "":
		return writeText(f.writer, ranking, f.colored)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, f.format)
	}
}

var headers = []string{"#", "Function", "Location", "Language", "Score", "CC", "Nest", "Len", "Params", "Cog", "Doc"}

func location(r types.RankedResult) string {
	return fmt.Sprintf("%s:%d-%d", r.FilePath, r.StartLine, r.EndLine)
}

func displayName(r types.RankedResult) string {
	if r.FunctionName == "" {
		return "<anonymous>"
	}
	return r.FunctionName
}

func row(i int, r types.RankedResult) []string {
	m := r.Metrics
	return []string{
		strconv.Itoa(i + 1),
		displayName(r),
		location(r),
		r.Language,
		strconv.FormatFloat(r.TotalScore, 'f', 2, 64),
		strconv.Itoa(m.CyclomaticComplexity),
		strconv.Itoa(m.NestingDepth),
		strconv.Itoa(m.FunctionLength),
		strconv.Itoa(m.ParameterCount),
		strconv.Itoa(m.CognitiveComplexity),
		fmt.Sprintf("%d/10", m.DocumentationScore),
	}
}

func scoreColor(score float64) *color.Color {
	switch {
	case score >= HighScore:
		return color.New(color.FgRed, color.Bold)
	case score >= MediumScore:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func writeText(w io.Writer, ranking types.Ranking, colored bool) error {
	title := fmt.Sprintf("Most complex functions in %s", ranking.Root)
	if colored {
		color.New(color.Bold, color.FgCyan).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)

	if len(ranking.Functions) == 0 {
		fmt.Fprintln(w, "No functions found.")
	} else {
		table := tablewriter.NewTable(w,
			tablewriter.WithConfig(tablewriter.Config{
				Header: tw.CellConfig{
					Alignment: tw.CellAlignment{Global: tw.AlignLeft},
					Formatting: tw.CellFormatting{
						AutoFormat: tw.On,
					},
				},
				Row: tw.CellConfig{
					Alignment: tw.CellAlignment{Global: tw.AlignLeft},
				},
			}),
			tablewriter.WithRendition(tw.Rendition{
				Borders: tw.Border{
					Left:   tw.Off,
					Right:  tw.Off,
					Top:    tw.Off,
					Bottom: tw.Off,
				},
				Settings: tw.Settings{
					Separators: tw.Separators{
						BetweenColumns: tw.Off,
					},
				},
			}),
		)

		table.Header(headers)
		for i, r := range ranking.Functions {
			cells := row(i, r)
			if colored {
				cells[4] = scoreColor(r.TotalScore).Sprint(cells[4])
			}
			if err := table.Append(cells); err != nil {
				return fmt.Errorf("failed to render row %d: %w", i+1, err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		if refs := references(ranking.Functions); len(refs) > 0 {
			fmt.Fprintln(w)
			for _, ref := range refs {
				fmt.Fprintln(w, ref)
			}
		}
	}

	fmt.Fprintln(w)
	writeSummaryText(w, ranking.Summary, colored)
	return nil
}

// references lists the file URL and reference URL of every ranked function
// that has either, keyed by rank.
func references(results []types.RankedResult) []string {
	var refs []string
	for i, r := range results {
		switch {
		case r.FileURL != "" && r.ReferenceURL != "":
			refs = append(refs, fmt.Sprintf("%3d. %s", i+1, r.FileURL), "     "+r.ReferenceURL)
		case r.FileURL != "":
			refs = append(refs, fmt.Sprintf("%3d. %s", i+1, r.FileURL))
		case r.ReferenceURL != "":
			refs = append(refs, fmt.Sprintf("%3d. %s", i+1, r.ReferenceURL))
		}
	}
	return refs
}

func summaryLines(s types.Summary) [][2]string {
	languages := strings.Join(s.LanguagesFound, ", ")
	if languages == "" {
		languages = "none"
	}
	lines := [][2]string{
		{"Files analyzed", strconv.Itoa(s.FilesScanned)},
		{"Files skipped", strconv.Itoa(s.FilesSkipped)},
		{"Files failed", strconv.Itoa(s.FilesFailed)},
		{"Directories pruned", strconv.Itoa(s.DirectoriesPruned)},
		{"Functions analyzed", strconv.Itoa(s.FunctionsAnalyzed)},
		{"Types declared", strconv.Itoa(s.TypesDeclared)},
		{"Languages found", languages},
		{"Files in ranking", strconv.Itoa(s.ResultFiles)},
	}
	if s.ResultsTruncatedAt > 0 {
		lines = append(lines, [2]string{"Ranking truncated at", strconv.Itoa(s.ResultsTruncatedAt)})
	}
	return lines
}

func writeSummaryText(w io.Writer, s types.Summary, colored bool) {
	if colored {
		color.New(color.Bold).Fprintln(w, "Summary")
	} else {
		fmt.Fprintln(w, "Summary")
	}
	fmt.Fprintln(w, strings.Repeat("-", len("Summary")))
	for _, l := range summaryLines(s) {
		fmt.Fprintf(w, "%-20s %s\n", l[0]+":", l[1])
	}
}

func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

func writeMarkdown(w io.Writer, ranking types.Ranking) error {
	fmt.Fprintf(w, "# Most complex functions in %s\n\n", escapeMarkdown(ranking.Root))

	if len(ranking.Functions) == 0 {
		fmt.Fprint(w, "No functions found.\n\n")
	} else {
		fmt.Fprintf(w, "| %s |\n", strings.Join(headers, " | "))
		seps := make([]string, len(headers))
		for i := range seps {
			seps[i] = "---"
		}
		fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))

		for i, r := range ranking.Functions {
			cells := row(i, r)
			for j := range cells {
				cells[j] = escapeMarkdown(cells[j])
			}
			if r.ReferenceURL != "" {
				cells[2] = fmt.Sprintf("[%s](%s)", cells[2], r.ReferenceURL)
			}
			fmt.Fprintf(w, "| %s |\n", strings.Join(cells, " | "))
		}
		fmt.Fprintln(w)
	}

	fmt.Fprint(w, "## Summary\n\n")
	for _, l := range summaryLines(ranking.Summary) {
		fmt.Fprintf(w, "- **%s:** %s\n", l[0], escapeMarkdown(l[1]))
	}
	return nil
}
