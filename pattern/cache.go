package pattern

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// DefaultCacheSize bounds the number of compiled expressions kept by Default.
const DefaultCacheSize = 512

// Default is the process-wide cache used by language profiles and metric
// calculators.
var Default = NewCache(DefaultCacheSize)

// Cache caches compiled regular expressions keyed by their source text.
type Cache struct {
	cache *lru.Cache
	mu    sync.Mutex // lru.Cache is not safe for concurrent use, even for Get
}

// NewCache creates a Cache holding at most size expressions. A size of zero
// means no limit.
func NewCache(size int) *Cache {
	return &Cache{
		cache: lru.New(size),
	}
}

// Get returns the compiled expression for expr, if cached.
func (c *Cache) Get(expr string) (*regexp.Regexp, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.cache.Get(expr); ok {
		return val.(*regexp.Regexp), true
	}
	return nil, false
}

// Compile returns the compiled form of expr, compiling and caching it on a
// miss.
func (c *Cache) Compile(expr string) (*regexp.Regexp, error) {
	if re, ok := c.Get(expr); ok {
		return re, nil
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern %q: %w", expr, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	// Another goroutine may have compiled it meanwhile; keep the first.
	if val, ok := c.cache.Get(expr); ok {
		return val.(*regexp.Regexp), nil
	}
	c.cache.Add(expr, re)
	return re, nil
}

// MustCompile is like Compile but panics if expr cannot be compiled. It is
// meant for patterns defined in source.
func (c *Cache) MustCompile(expr string) *regexp.Regexp {
	re, err := c.Compile(expr)
	if err != nil {
		panic(err)
	}
	return re
}

// Keyword returns a case-insensitive whole-word matcher for keyword.
func (c *Cache) Keyword(keyword string) *regexp.Regexp {
	return c.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
}

// AnyKeyword returns a case-insensitive matcher for any of the given whole
// words.
func (c *Cache) AnyKeyword(keywords []string) *regexp.Regexp {
	quoted := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	return c.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// Len reports the number of cached expressions.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}

// Clear drops every cached expression.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}
