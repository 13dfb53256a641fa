package parser

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/types"
)

// ErrBinaryContent is returned for files that look like binary data.
var ErrBinaryContent = errors.New("binary content")

// binarySniffLen is how much of a file is inspected for NUL bytes.
const binarySniffLen = 8000

// Parser isolates function bodies from source text using each language's
// lexical patterns.
type Parser struct {
	registry *language.Registry
}

// NewParser creates a Parser backed by registry, or by the built-in
// languages when registry is nil.
func NewParser(registry *language.Registry) *Parser {
	if registry == nil {
		registry = language.Default()
	}
	return &Parser{
		registry: registry,
	}
}

// Registry returns the language registry used by the parser.
func (p *Parser) Registry() *language.Registry {
	return p.registry
}

// FileAnalysis represents the extraction results of a single file
type FileAnalysis struct {
	Path      string
	Language  string
	Functions []types.RawFunction
	Types     int
}

// ParseFile reads path and extracts its functions. Languages "skip" and
// "unknown" yield an empty analysis without reading the file.
func (p *Parser) ParseFile(path string) (FileAnalysis, error) {
	lang := p.registry.DetectLanguage(path)
	analysis := FileAnalysis{Path: path, Language: lang}
	if lang == types.LanguageSkip || lang == types.LanguageUnknown {
		return analysis, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return analysis, fmt.Errorf("failed to read %s: %w", path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return analysis, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	analysis.Functions = p.ExtractFunctions(text, lang)
	analysis.Types = p.CountTypes(text, lang)
	return analysis, nil
}

// Decode converts file bytes to text. Files containing NUL bytes near the
// start are rejected as binary; invalid UTF-8 sequences are dropped.
func Decode(data []byte) (string, error) {
	sniff := data
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) >= 0 {
		return "", ErrBinaryContent
	}
	return strings.ToValidUTF8(string(data), ""), nil
}

// ExtractFunctions returns the functions found in text, in source order.
// Unregistered languages yield nil.
func (p *Parser) ExtractFunctions(text, lang string) []types.RawFunction {
	profile, ok := p.registry.Lookup(lang)
	if !ok {
		return nil
	}
	return Extract(text, profile)
}

// CountTypes returns the number of lines in text declaring a type.
func (p *Parser) CountTypes(text, lang string) int {
	profile, ok := p.registry.Lookup(lang)
	if !ok {
		return 0
	}
	count := 0
	for _, line := range SplitLines(text) {
		if _, ok := profile.MatchType(line); ok {
			count++
		}
	}
	return count
}

// Extract isolates function bodies from text using lang's block mode.
//
// Brace mode ends a function once the running brace balance drops to zero
// after an opening brace has been seen. Indentation mode ends a function at
// the first non-blank line that is neither indented nor a continuation such
// as a decorator or another definition. Neither mode understands string or
// comment literals, so braces or dedents inside them can end a function
// early.
func Extract(text string, lang language.Language) []types.RawFunction {
	lines := SplitLines(text)
	var functions []types.RawFunction
	var current *functionBuilder
	balance := 0

	flush := func() {
		if current != nil {
			functions = append(functions, types.RawFunction{
				Name:      current.name,
				StartLine: current.startLine,
				EndLine:   current.endLine,
				Content:   strings.Join(current.lines, "\n"),
				Language:  current.language,
			})
			current = nil
		}
	}

	for i, line := range lines {
		lineNo := i + 1

		if name, _, ok := lang.MatchFunction(line); ok {
			flush()
			current = newFunctionBuilder(name, lang.Name(), lineNo, line)
			balance = BraceDelta(line)
			continue
		}
		if current == nil {
			continue
		}

		switch lang.BlockMode() {
		case language.ModeIndentation:
			if strings.TrimSpace(line) != "" && !IsIndented(line) && !lang.IsContinuation(line) {
				flush()
				continue
			}
			current.add(lineNo, line)
		default:
			current.add(lineNo, line)
			balance += BraceDelta(line)
			if balance <= 0 && current.sawOpen {
				flush()
			}
		}
	}

	flush()
	return functions
}
