package analysis_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BenjaminWie/docu-buddy/analysis"
	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/types"
)

func TestMetricsAnalyzer_Memoizes(t *testing.T) {
	m := analysis.NewMetricsAnalyzerWith(language.Default(), 16)
	fn := types.RawFunction{
		Name:     "f",
		Language: "go",
		Content:  "func f(a int) {\n    if a > 0 {\n    }\n}",
	}

	first := m.Analyze(fn)
	second := m.Analyze(fn)
	assert.Equal(t, first, second)
	assert.Equal(t, uint64(1), m.Hits())
	assert.Equal(t, 1, m.Len())

	fn.Language = "java"
	m.Analyze(fn)
	assert.Equal(t, uint64(1), m.Hits())
	assert.Equal(t, 2, m.Len())
}

func TestMetricsAnalyzer_Disabled(t *testing.T) {
	m := analysis.NewMetricsAnalyzerWith(nil, 0)
	fn := types.RawFunction{Language: "python", Content: "def f():\n    pass"}

	m.Analyze(fn)
	m.Analyze(fn)
	assert.Equal(t, uint64(0), m.Hits())
	assert.Equal(t, 0, m.Len())
}

func TestMetricsAnalyzer_UnknownLanguage(t *testing.T) {
	m := analysis.NewMetricsAnalyzer()
	got := m.Analyze(types.RawFunction{Language: "cobol", Content: "PERFORM X."})
	assert.Equal(t, 1, got.CyclomaticComplexity)
	assert.Equal(t, analysis.DefaultDocumentationScore, got.DocumentationScore)
}

func TestMetricsAnalyzer_Concurrent(t *testing.T) {
	m := analysis.NewMetricsAnalyzer()
	fn := types.RawFunction{Language: "go", Content: "func f() {\n}"}
	want := analysis.ComputeMetrics(fn.Content, profile(t, "go"))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, m.Analyze(fn))
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, m.Len())
}
