package language

import (
	"fmt"
	"sync"

	"github.com/BenjaminWie/docu-buddy/filter"
	"github.com/BenjaminWie/docu-buddy/pattern"
	"github.com/BenjaminWie/docu-buddy/types"
)

// Registry maps file extensions to language profiles. A Registry is
// immutable once built and safe for concurrent use.
type Registry struct {
	profiles []*Profile
	byName   map[string]*Profile
}

// NewRegistry compiles specs in order. Earlier specs win when extensions
// overlap.
func NewRegistry(cache *pattern.Cache, specs ...Spec) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Profile, len(specs))}
	for _, spec := range specs {
		p, err := spec.Compile(cache)
		if err != nil {
			return nil, err
		}
		if _, dup := r.byName[p.name]; dup {
			return nil, fmt.Errorf("language %s registered twice", p.name)
		}
		r.byName[p.name] = p
		r.profiles = append(r.profiles, p)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in languages.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(pattern.Default, Builtin()...)
		if err != nil {
			panic(fmt.Sprintf("built-in languages: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// WithSpecs returns a registry holding the profiles of r followed by the
// given specs.
func (r *Registry) WithSpecs(cache *pattern.Cache, specs ...Spec) (*Registry, error) {
	out := &Registry{
		profiles: append([]*Profile(nil), r.profiles...),
		byName:   make(map[string]*Profile, len(r.byName)+len(specs)),
	}
	for name, p := range r.byName {
		out.byName[name] = p
	}
	for _, spec := range specs {
		p, err := spec.Compile(cache)
		if err != nil {
			return nil, err
		}
		if _, dup := out.byName[p.name]; dup {
			return nil, fmt.Errorf("language %s registered twice", p.name)
		}
		out.byName[p.name] = p
		out.profiles = append(out.profiles, p)
	}
	return out, nil
}

// DetectLanguage returns the language tag for path: "skip" when the path
// filter rejects the file, the first profile whose extensions match, or
// "unknown".
func (r *Registry) DetectLanguage(path string) string {
	if filter.ShouldSkipFile(path) {
		return types.LanguageSkip
	}
	ext := filter.Extension(path)
	for _, p := range r.profiles {
		if p.hasExtension(ext) {
			return p.name
		}
	}
	return types.LanguageUnknown
}

// Lookup returns the profile registered under name.
func (r *Registry) Lookup(name string) (*Profile, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// Profiles returns the registered profiles in detection order.
func (r *Registry) Profiles() []*Profile {
	return append([]*Profile(nil), r.profiles...)
}

// DetectLanguage resolves path against the built-in registry.
func DetectLanguage(path string) string {
	return Default().DetectLanguage(path)
}
