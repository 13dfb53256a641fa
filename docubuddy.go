// Package docubuddy ranks the functions of a source tree by structural
// complexity so that expensive review can start with the hardest code.
//
// The engine works on lexical patterns only. A path filter prunes
// infrastructure directories, a language registry maps extensions to
// profiles, an extractor isolates function bodies by brace balance or
// indentation, and six metrics are combined into a single score. The top
// functions, 100 by default, are returned in descending score order.
package docubuddy

import (
	"context"

	"github.com/BenjaminWie/docu-buddy/analysis"
	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/parser"
	"github.com/BenjaminWie/docu-buddy/types"
)

// Rank scans dir with the built-in languages and returns the ranking.
func Rank(ctx context.Context, dir string, opts analysis.Options) (types.Ranking, error) {
	return analysis.NewAnalyzer(opts).Rank(ctx, dir)
}

// DetectLanguage returns the language tag for path: a built-in language
// name, "skip" or "unknown".
func DetectLanguage(path string) string {
	return language.DetectLanguage(path)
}

// ExtractFunctions isolates the functions of text written in lang.
func ExtractFunctions(text, lang string) []types.RawFunction {
	return parser.NewParser(nil).ExtractFunctions(text, lang)
}

// ComputeMetrics returns the six metrics of fn.
func ComputeMetrics(fn types.RawFunction) types.ComplexityMetrics {
	profile, _ := language.Default().Lookup(fn.Language)
	return analysis.ComputeMetrics(fn.Content, profile)
}

// Score returns the composite complexity score of m.
func Score(m types.ComplexityMetrics) float64 {
	return analysis.Score(m)
}
