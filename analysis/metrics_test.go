package analysis_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminWie/docu-buddy/analysis"
	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/types"
)

func profile(t *testing.T, name string) *language.Profile {
	t.Helper()
	p, ok := language.Default().Lookup(name)
	require.True(t, ok, "language %s not registered", name)
	return p
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestComputeMetrics(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		content string
		want    types.ComplexityMetrics
	}{
		{
			name: "single if without braces",
			lang: "java",
			content: lines(
				"public int sign(int x) {",
				"    if (x > 0) return 1;",
				"    return 0;",
				"}",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 2,
				NestingDepth:         1,
				FunctionLength:       4,
				ParameterCount:       1,
				CognitiveComplexity:  2,
				DocumentationScore:   0,
			},
		},
		{
			name: "python without branches",
			lang: "python",
			content: lines(
				"def add(self, a, b):",
				"    total = a + b",
				"    return total",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 1,
				NestingDepth:         1,
				FunctionLength:       3,
				ParameterCount:       2,
				CognitiveComplexity:  0,
				DocumentationScore:   0,
			},
		},
		{
			name: "python nested control flow",
			lang: "python",
			content: lines(
				"def check(value):",
				`    """Validate value."""`,
				"    if value and value > 0:",
				"        for item in range(value):",
				"            print(item)",
				"    return value",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 4,
				NestingDepth:         3,
				FunctionLength:       6,
				ParameterCount:       1,
				CognitiveComplexity:  3,
				DocumentationScore:   6,
			},
		},
		{
			name: "go with boolean operators",
			lang: "go",
			content: lines(
				"func pick(a, b int, ok bool) int {",
				"    if ok && a > b || a == 0 {",
				"        return a",
				"    }",
				"    for i := 0; i < b; i++ {",
				"        switch i {",
				"        case 1:",
				"            return i",
				"        }",
				"    }",
				"    return b",
				"}",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 7,
				NestingDepth:         3,
				FunctionLength:       12,
				ParameterCount:       3,
				CognitiveComplexity:  14,
				DocumentationScore:   0,
			},
		},
		{
			name: "go method receiver is not a parameter",
			lang: "go",
			content: lines(
				"func (s *Server) Start() error {",
				"    return nil",
				"}",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 1,
				NestingDepth:         1,
				FunctionLength:       3,
				ParameterCount:       0,
				CognitiveComplexity:  0,
				DocumentationScore:   0,
			},
		},
		{
			name: "keywords match whole words only",
			lang: "python",
			content: lines(
				"def shift(offset):",
				"    information = offset",
				"    return information",
			),
			want: types.ComplexityMetrics{
				CyclomaticComplexity: 1,
				NestingDepth:         1,
				FunctionLength:       3,
				ParameterCount:       1,
				CognitiveComplexity:  0,
				DocumentationScore:   0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analysis.ComputeMetrics(tt.content, profile(t, tt.lang))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeNestingDepth_SameLineBlock(t *testing.T) {
	content := lines(
		"void run() {",
		"    if (ok) { go(); }",
		"}",
	)
	assert.Equal(t, 2, analysis.ComputeNestingDepth(content, profile(t, "cpp")))
}

func TestComputeParameterCount(t *testing.T) {
	tests := []struct {
		name    string
		lang    string
		content string
		want    int
	}{
		{"no parameters", "go", "func run() {", 0},
		{"nested call in defaults", "python", "def f(a, b=g(1, 2), c):", 3},
		{"only self", "python", "def close(self):", 0},
		{"multi-line signature", "python", "def f(a,\n      b):", 0},
		{"whitespace only", "java", "void run(   ) {", 0},
		{"arrow function", "javascript", "const add = (a, b) => a + b;", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.ComputeParameterCount(tt.content, profile(t, tt.lang)))
		})
	}
}

func TestComputeDocumentationScore(t *testing.T) {
	goProfile := profile(t, "go")

	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"half commented", lines("func f() {", "// a", "// b", "}"), 10},
		{"one in five", lines("func f() {", "// one", "x := 1", "_ = x", "}"), 8},
		{"block comment counts once", lines("func f() {", "/* a", "b */", "}"), 8},
		{"one in eight", lines("func f() {", "// c", "a", "b", "c", "d", "e", "}"), 4},
		{"one in fifteen", "// c\n" + strings.Repeat("x\n", 14), 2},
		{"one in twenty five", "// c\n" + strings.Repeat("x\n", 24), 0},
		{"blank content", "\n   \n", analysis.DefaultDocumentationScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analysis.ComputeDocumentationScore(tt.content, goProfile))
		})
	}
}

func TestComputeFunctionLength_SkipsComments(t *testing.T) {
	content := lines(
		"def f():",
		"    # setup",
		"",
		"    return 1",
	)
	assert.Equal(t, 2, analysis.ComputeFunctionLength(content, profile(t, "python")))

	goContent := lines("func f() {", "    # not a comment in go", "}")
	assert.Equal(t, 3, analysis.ComputeFunctionLength(goContent, profile(t, "go")))
}

func TestComputeMetrics_UnknownLanguage(t *testing.T) {
	content := lines(
		"proc run() {",
		"  if x { y }",
		"  # note",
		"}",
	)
	got := analysis.ComputeMetrics(content, nil)

	assert.Equal(t, 1, got.CyclomaticComplexity)
	assert.Equal(t, 2, got.NestingDepth)
	assert.Equal(t, 3, got.FunctionLength)
	assert.Equal(t, 0, got.ParameterCount)
	assert.Equal(t, 0, got.CognitiveComplexity)
	assert.Equal(t, analysis.DefaultDocumentationScore, got.DocumentationScore)
}

func TestComputeMetrics_Bounds(t *testing.T) {
	inputs := []string{"", "   ", "\n\n", "}}}}", "{{{{", "def (", "if if if"}
	for _, reg := range language.Default().Profiles() {
		for _, in := range inputs {
			m := analysis.ComputeMetrics(in, reg)
			assert.GreaterOrEqual(t, m.CyclomaticComplexity, 1, "%s %q", reg.Name(), in)
			assert.GreaterOrEqual(t, m.NestingDepth, 0, "%s %q", reg.Name(), in)
			assert.GreaterOrEqual(t, m.FunctionLength, 0, "%s %q", reg.Name(), in)
			assert.GreaterOrEqual(t, m.ParameterCount, 0, "%s %q", reg.Name(), in)
			assert.GreaterOrEqual(t, m.CognitiveComplexity, 0, "%s %q", reg.Name(), in)
			assert.Contains(t, []int{0, 2, 4, 5, 6, 8, 10}, m.DocumentationScore, "%s %q", reg.Name(), in)
		}
	}
}
