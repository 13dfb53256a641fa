package analysis

import (
	"strings"
	"unicode"

	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/parser"
	"github.com/BenjaminWie/docu-buddy/pattern"
	"github.com/BenjaminWie/docu-buddy/types"
)

// IndentUnit is the number of columns per nesting level in indentation mode.
const IndentUnit = 4

// Documentation score used when the ratio cannot be computed.
const DefaultDocumentationScore = 5

// fallbackLineComments are used when no language profile is available.
var fallbackLineComments = []string{"#", "//"}

// ComputeCyclomaticComplexity returns 1 plus one per whole-word branching
// keyword (case-insensitive) plus one per boolean operator.
func ComputeCyclomaticComplexity(content string, lang *language.Profile) int {
	if lang == nil {
		return 1
	}

	complexity := 1
	for _, kw := range lang.BranchingKeywords() {
		complexity += len(pattern.Default.Keyword(kw).FindAllStringIndex(content, -1))
	}
	if words := lang.BooleanWords(); len(words) > 0 {
		complexity += len(pattern.Default.AnyKeyword(words).FindAllStringIndex(content, -1))
	}
	for _, op := range lang.BooleanOperators() {
		complexity += strings.Count(content, op)
	}
	return complexity
}

// ComputeNestingDepth returns the deepest block level reached. Indentation
// languages measure leading whitespace in IndentUnit columns; all others
// track the running brace balance character by character, so a block opened
// and closed on one line still counts.
func ComputeNestingDepth(content string, lang *language.Profile) int {
	maxDepth := 0

	if lang != nil && lang.BlockMode() == language.ModeIndentation {
		for _, line := range parser.SplitLines(content) {
			trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
			if trimmed == "" {
				continue
			}
			maxDepth = max(maxDepth, (len(line)-len(trimmed))/IndentUnit)
		}
		return maxDepth
	}

	depth := 0
	for _, ch := range content {
		switch ch {
		case '{':
			depth++
			maxDepth = max(maxDepth, depth)
		case '}':
			depth--
		}
	}
	return maxDepth
}

// ComputeFunctionLength counts non-blank lines that do not start with a
// single-line comment marker.
func ComputeFunctionLength(content string, lang *language.Profile) int {
	markers := fallbackLineComments
	if lang != nil {
		markers = lang.LineComments()
	}

	count := 0
	for _, line := range parser.SplitLines(content) {
		stripped := strings.TrimSpace(line)
		if stripped == "" || hasAnyPrefix(stripped, markers) {
			continue
		}
		count++
	}
	return count
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// ComputeParameterCount counts the parameters in the first parenthesised
// group after the function name on the signature line. A receiver such as
// Python's self is not counted.
func ComputeParameterCount(content string, lang *language.Profile) int {
	if lang == nil {
		return 0
	}

	first, _, _ := strings.Cut(content, "\n")
	segment := first
	if name, nameEnd, ok := lang.MatchFunction(first); ok && name != "" {
		segment = first[nameEnd:]
	}

	params, ok := firstParenGroup(segment)
	if !ok {
		return 0
	}
	params = strings.TrimSpace(params)
	if params == "" {
		return 0
	}

	count := topLevelCommas(params) + 1
	if recv := lang.Receiver(); recv != "" && strings.Contains(params, recv) {
		count--
	}
	return max(0, count)
}

// firstParenGroup returns the text inside the first balanced parenthesised
// group of s. ok is false when s has no complete group.
func firstParenGroup(s string) (string, bool) {
	open := strings.IndexByte(s, '(')
	if open < 0 {
		return "", false
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return s[open+1 : i], true
			}
		}
	}
	return "", false
}

func topLevelCommas(s string) int {
	depth, commas := 0, 0
	for _, ch := range s {
		switch ch {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				commas++
			}
		}
	}
	return commas
}

// ComputeCognitiveComplexity scores control flow weighted by nesting.
//
// In indentation mode every line holding a nesting keyword opens a level and
// adds the new level. In brace mode a line containing { opens a level and one
// containing } closes one (never below zero); each branching keyword on the
// line then adds the current level plus one.
func ComputeCognitiveComplexity(content string, lang *language.Profile) int {
	if lang == nil {
		return 0
	}

	score := 0
	level := 0
	lines := parser.SplitLines(content)

	if lang.BlockMode() == language.ModeIndentation {
		keywords := lang.NestingKeywords()
		if len(keywords) == 0 {
			return 0
		}
		nesting := pattern.Default.AnyKeyword(keywords)
		for _, line := range lines {
			if nesting.MatchString(strings.TrimSpace(line)) {
				level++
				score += level
			}
		}
		return score
	}

	for _, line := range lines {
		if strings.Contains(line, "{") {
			level++
		}
		if strings.Contains(line, "}") {
			level = max(0, level-1)
		}
		stripped := strings.TrimSpace(line)
		for _, kw := range lang.BranchingKeywords() {
			if pattern.Default.Keyword(kw).MatchString(stripped) {
				score += level + 1
			}
		}
	}
	return score
}

// ComputeDocumentationScore maps the ratio of comment matches to non-blank
// lines onto 0, 2, 4, 6, 8 or 10. Without a profile or without non-blank
// lines it returns DefaultDocumentationScore.
func ComputeDocumentationScore(content string, lang *language.Profile) int {
	if lang == nil {
		return DefaultDocumentationScore
	}

	nonBlank := 0
	for _, line := range parser.SplitLines(content) {
		if strings.TrimSpace(line) != "" {
			nonBlank++
		}
	}
	if nonBlank == 0 {
		return DefaultDocumentationScore
	}

	comments := 0
	for _, re := range lang.CommentPatterns() {
		comments += len(re.FindAllStringIndex(content, -1))
	}

	ratio := float64(comments) / float64(nonBlank)
	switch {
	case ratio >= 0.3:
		return 10
	case ratio >= 0.2:
		return 8
	case ratio >= 0.15:
		return 6
	case ratio >= 0.1:
		return 4
	case ratio >= 0.05:
		return 2
	default:
		return 0
	}
}

// ComputeMetrics runs all six calculators over content.
func ComputeMetrics(content string, lang *language.Profile) types.ComplexityMetrics {
	return types.ComplexityMetrics{
		CyclomaticComplexity: ComputeCyclomaticComplexity(content, lang),
		NestingDepth:         ComputeNestingDepth(content, lang),
		FunctionLength:       ComputeFunctionLength(content, lang),
		ParameterCount:       ComputeParameterCount(content, lang),
		CognitiveComplexity:  ComputeCognitiveComplexity(content, lang),
		DocumentationScore:   ComputeDocumentationScore(content, lang),
	}
}
