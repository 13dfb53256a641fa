package parser

import "strings"

// SplitLines normalises line endings and splits text into lines. A trailing
// newline yields a final empty line, so line numbers match an editor's.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

// BraceDelta returns the number of opening minus closing braces on line.
func BraceDelta(line string) int {
	return strings.Count(line, "{") - strings.Count(line, "}")
}

// IsIndented reports whether line starts with one block-indent unit: four
// spaces or a tab.
func IsIndented(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

// functionBuilder accumulates the lines of one function.
type functionBuilder struct {
	name      string
	language  string
	startLine int
	endLine   int
	lines     []string
	sawOpen   bool
}

func newFunctionBuilder(name, lang string, lineNo int, line string) *functionBuilder {
	return &functionBuilder{
		name:      name,
		language:  lang,
		startLine: lineNo,
		endLine:   lineNo,
		lines:     []string{line},
		sawOpen:   strings.Contains(line, "{"),
	}
}

func (b *functionBuilder) add(lineNo int, line string) {
	b.lines = append(b.lines, line)
	b.endLine = lineNo
	if !b.sawOpen && strings.Contains(line, "{") {
		b.sawOpen = true
	}
}
