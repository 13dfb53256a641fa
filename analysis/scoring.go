package analysis

import (
	"sort"

	"github.com/BenjaminWie/docu-buddy/types"
)

// DefaultMaxResults bounds the ranking when no limit is configured.
const DefaultMaxResults = 100

// Metric weights of the composite score.
const (
	WeightCyclomatic    = 3.0
	WeightNesting       = 2.5
	WeightLength        = 1.5
	WeightParameters    = 1.0
	WeightCognitive     = 2.0
	WeightDocumentation = 2.0
)

// Score combines the six metrics into a single complexity score. Length is
// scaled per ten lines and poor documentation adds up to WeightDocumentation.
func Score(m types.ComplexityMetrics) float64 {
	return float64(m.CyclomaticComplexity)*WeightCyclomatic +
		float64(m.NestingDepth)*WeightNesting +
		(float64(m.FunctionLength)/10)*WeightLength +
		float64(m.ParameterCount)*WeightParameters +
		float64(m.CognitiveComplexity)*WeightCognitive +
		(float64(10-m.DocumentationScore)/10)*WeightDocumentation
}

// Rank orders results by descending score, keeping encounter order for
// equal scores, and truncates to limit. A limit <= 0 selects
// DefaultMaxResults. The input slice is sorted in place.
func Rank(results []types.RankedResult, limit int) []types.RankedResult {
	if limit <= 0 {
		limit = DefaultMaxResults
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].TotalScore > results[j].TotalScore
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
