package language

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/BenjaminWie/docu-buddy/filter"
	"github.com/BenjaminWie/docu-buddy/pattern"
)

// Mode selects how function bodies are delimited.
type Mode int

const (
	// ModeBrace delimits blocks with explicit { and }.
	ModeBrace Mode = iota
	// ModeIndentation delimits blocks by leading whitespace.
	ModeIndentation
)

func (m Mode) String() string {
	switch m {
	case ModeBrace:
		return "brace"
	case ModeIndentation:
		return "indentation"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "brace":
		return ModeBrace, nil
	case "indentation", "indent":
		return ModeIndentation, nil
	default:
		return 0, fmt.Errorf("unknown block mode %q", s)
	}
}

// Language is the capability set the scanner needs from a language.
type Language interface {
	Name() string
	Detect(path string) bool
	BlockMode() Mode
	MatchFunction(line string) (name string, nameEnd int, ok bool)
	IsContinuation(line string) bool
	BranchingKeywords() []string
	CommentPatterns() []*regexp.Regexp
}

// Profile is a compiled, immutable language description.
type Profile struct {
	name              string
	extensions        []string
	mode              Mode
	functionPattern   *regexp.Regexp
	typePattern       *regexp.Regexp
	branchingKeywords []string
	nestingKeywords   []string
	booleanWords      []string
	booleanOperators  []string
	commentPatterns   []*regexp.Regexp
	lineComments      []string
	receiver          string
	definitionPrefix  *regexp.Regexp
}

var _ Language = (*Profile)(nil)

// Spec is the uncompiled form of a Profile. Built-in languages and languages
// declared in configuration are both described by a Spec.
type Spec struct {
	Name              string   `koanf:"name"`
	Extensions        []string `koanf:"extensions"`
	Mode              string   `koanf:"mode"`
	FunctionPattern   string   `koanf:"function_pattern"`
	TypePattern       string   `koanf:"type_pattern"`
	BranchingKeywords []string `koanf:"branching_keywords"`
	NestingKeywords   []string `koanf:"nesting_keywords"`
	BooleanWords      []string `koanf:"boolean_words"`
	BooleanOperators  []string `koanf:"boolean_operators"`
	CommentPatterns   []string `koanf:"comment_patterns"`
	LineComments      []string `koanf:"line_comments"`
	Receiver          string   `koanf:"receiver"`
	// DefinitionPrefix marks lines that continue an indentation block at
	// column zero, such as another definition or a decorator.
	DefinitionPrefix string `koanf:"definition_prefix"`
}

// Compile validates s and compiles its patterns through cache.
func (s Spec) Compile(cache *pattern.Cache) (*Profile, error) {
	if cache == nil {
		cache = pattern.Default
	}
	name := strings.ToLower(strings.TrimSpace(s.Name))
	if name == "" {
		return nil, fmt.Errorf("language name is required")
	}
	if name == "skip" || name == "unknown" {
		return nil, fmt.Errorf("language name %q is reserved", name)
	}
	if len(s.Extensions) == 0 {
		return nil, fmt.Errorf("language %s: at least one extension is required", name)
	}
	if s.FunctionPattern == "" {
		return nil, fmt.Errorf("language %s: function pattern is required", name)
	}

	mode, err := ParseMode(s.Mode)
	if err != nil {
		return nil, fmt.Errorf("language %s: %w", name, err)
	}

	p := &Profile{
		name:              name,
		mode:              mode,
		branchingKeywords: append([]string(nil), s.BranchingKeywords...),
		nestingKeywords:   append([]string(nil), s.NestingKeywords...),
		booleanWords:      append([]string(nil), s.BooleanWords...),
		booleanOperators:  append([]string(nil), s.BooleanOperators...),
		lineComments:      append([]string(nil), s.LineComments...),
		receiver:          s.Receiver,
	}
	for _, ext := range s.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		p.extensions = append(p.extensions, ext)
	}

	if p.functionPattern, err = cache.Compile(s.FunctionPattern); err != nil {
		return nil, fmt.Errorf("language %s: %w", name, err)
	}
	if s.TypePattern != "" {
		if p.typePattern, err = cache.Compile(s.TypePattern); err != nil {
			return nil, fmt.Errorf("language %s: %w", name, err)
		}
	}
	for _, cp := range s.CommentPatterns {
		re, err := cache.Compile(cp)
		if err != nil {
			return nil, fmt.Errorf("language %s: %w", name, err)
		}
		p.commentPatterns = append(p.commentPatterns, re)
	}
	if s.DefinitionPrefix != "" {
		if p.definitionPrefix, err = cache.Compile(s.DefinitionPrefix); err != nil {
			return nil, fmt.Errorf("language %s: %w", name, err)
		}
	}
	return p, nil
}

// Name returns the language tag.
func (p *Profile) Name() string { return p.name }

// Extensions returns the recognised file extensions, lowercase with the dot.
func (p *Profile) Extensions() []string { return append([]string(nil), p.extensions...) }

// BlockMode returns how the language delimits blocks.
func (p *Profile) BlockMode() Mode { return p.mode }

// Detect reports whether path carries one of the profile's extensions.
func (p *Profile) Detect(path string) bool {
	return p.hasExtension(filter.Extension(path))
}

func (p *Profile) hasExtension(ext string) bool {
	for _, e := range p.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// MatchFunction reports whether line opens a function. The name is the first
// non-empty capture group and may be empty; nameEnd is the byte offset just
// past the name, or past the whole match when no group captured.
func (p *Profile) MatchFunction(line string) (name string, nameEnd int, ok bool) {
	loc := p.functionPattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return "", 0, false
	}
	for g := 1; 2*g+1 < len(loc); g++ {
		start, end := loc[2*g], loc[2*g+1]
		if start >= 0 && end > start {
			return line[start:end], end, true
		}
	}
	return "", loc[1], true
}

// MatchType reports whether line declares a type and returns its name.
func (p *Profile) MatchType(line string) (string, bool) {
	if p.typePattern == nil {
		return "", false
	}
	m := p.typePattern.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	for _, g := range m[1:] {
		if g != "" {
			return g, true
		}
	}
	return "", true
}

// IsContinuation reports whether a column-zero line keeps an indentation
// block open.
func (p *Profile) IsContinuation(line string) bool {
	return p.definitionPrefix != nil && p.definitionPrefix.MatchString(line)
}

// BranchingKeywords returns the control-flow vocabulary counted by the
// cyclomatic and cognitive calculators.
func (p *Profile) BranchingKeywords() []string { return p.branchingKeywords }

// NestingKeywords returns the control keywords that open a nesting level in
// indentation mode.
func (p *Profile) NestingKeywords() []string { return p.nestingKeywords }

// BooleanWords returns word-form boolean operators such as "and".
func (p *Profile) BooleanWords() []string { return p.booleanWords }

// BooleanOperators returns symbolic boolean operators such as "&&".
func (p *Profile) BooleanOperators() []string { return p.booleanOperators }

// CommentPatterns returns the matchers for comment spans.
func (p *Profile) CommentPatterns() []*regexp.Regexp { return p.commentPatterns }

// LineComments returns the single-line comment markers.
func (p *Profile) LineComments() []string { return p.lineComments }

// Receiver returns the implicit receiver parameter name, if any.
func (p *Profile) Receiver() string { return p.receiver }
