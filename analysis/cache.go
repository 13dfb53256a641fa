package analysis

import (
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/golang/groupcache/lru"

	"github.com/BenjaminWie/docu-buddy/language"
	"github.com/BenjaminWie/docu-buddy/types"
)

// DefaultMetricsCacheSize is the number of function bodies whose metrics are
// remembered by default.
const DefaultMetricsCacheSize = 4096

// MetricsAnalyzer computes metrics for extracted functions. Identical bodies
// in the same language, common in vendored or generated trees, are computed
// once and served from an LRU keyed by a content fingerprint.
type MetricsAnalyzer struct {
	registry *language.Registry
	mu       sync.Mutex
	cache    *lru.Cache
	hits     uint64
}

// NewMetricsAnalyzer returns an analyzer over the default registry with the
// default cache size.
func NewMetricsAnalyzer() *MetricsAnalyzer {
	return NewMetricsAnalyzerWith(language.Default(), DefaultMetricsCacheSize)
}

// NewMetricsAnalyzerWith returns an analyzer over reg. A size <= 0 disables
// memoization.
func NewMetricsAnalyzerWith(reg *language.Registry, size int) *MetricsAnalyzer {
	if reg == nil {
		reg = language.Default()
	}
	m := &MetricsAnalyzer{registry: reg}
	if size > 0 {
		m.cache = lru.New(size)
	}
	return m
}

// Analyze returns the metrics of fn. Functions in a language the registry
// does not know get the language-independent defaults.
func (m *MetricsAnalyzer) Analyze(fn types.RawFunction) types.ComplexityMetrics {
	profile, _ := m.registry.Lookup(fn.Language)
	if m.cache == nil {
		return ComputeMetrics(fn.Content, profile)
	}

	key := fingerprint(fn.Language, fn.Content)
	m.mu.Lock()
	if v, ok := m.cache.Get(key); ok {
		m.hits++
		m.mu.Unlock()
		return v.(types.ComplexityMetrics)
	}
	m.mu.Unlock()

	metrics := ComputeMetrics(fn.Content, profile)

	m.mu.Lock()
	m.cache.Add(key, metrics)
	m.mu.Unlock()
	return metrics
}

// Hits returns how many Analyze calls were served from the cache.
func (m *MetricsAnalyzer) Hits() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits
}

// Len returns the number of cached entries.
func (m *MetricsAnalyzer) Len() int {
	if m.cache == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cache.Len()
}

func fingerprint(lang, content string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(lang)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(content)
	return d.Sum64()
}
