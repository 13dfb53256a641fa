package language

var (
	cStyleComments   = []string{`//.*`, `/\*[\s\S]*?\*/`}
	cStyleKeywords   = []string{"if", "else", "for", "while", "switch", "case", "try", "catch"}
	logicalOperators = []string{"&&", "||"}
)

// Builtin returns the specs of the built-in languages in detection order.
func Builtin() []Spec {
	return []Spec{
		{
			Name:              "python",
			Extensions:        []string{".py"},
			Mode:              "indentation",
			FunctionPattern:   `^\s*def\s+(\w+)\s*\(`,
			TypePattern:       `^\s*class\s+(\w+)`,
			BranchingKeywords: []string{"if", "elif", "for", "while", "try", "except", "with"},
			NestingKeywords:   []string{"if", "for", "while", "try", "with"},
			BooleanWords:      []string{"and", "or"},
			CommentPatterns:   []string{`#.*`, `"""[\s\S]*?"""`, `'''[\s\S]*?'''`},
			LineComments:      []string{"#"},
			Receiver:          "self",
			DefinitionPrefix:  `^\s*(def|class|@)`,
		},
		{
			Name:              "java",
			Extensions:        []string{".java"},
			FunctionPattern:   `\b(?:public|private|protected)?\s*(?:static)?\s*\w+\s+(\w+)\s*\(`,
			TypePattern:       `\b(?:public|private)?\s*class\s+(\w+)`,
			BranchingKeywords: cStyleKeywords,
			BooleanOperators:  logicalOperators,
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:              "go",
			Extensions:        []string{".go"},
			FunctionPattern:   `\bfunc\s+(?:\(\w+\s+\*?\w+\)\s+)?(\w+)\s*\(`,
			TypePattern:       `\btype\s+(\w+)\s+struct`,
			BranchingKeywords: []string{"if", "for", "switch", "case", "select"},
			BooleanOperators:  logicalOperators,
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:              "csharp",
			Extensions:        []string{".cs"},
			FunctionPattern:   `\b(?:public|private|protected)?\s*(?:static)?\s*\w+\s+(\w+)\s*\(`,
			TypePattern:       `\b(?:public|private)?\s*class\s+(\w+)`,
			BranchingKeywords: cStyleKeywords,
			BooleanOperators:  logicalOperators,
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:              "cpp",
			Extensions:        []string{".cpp", ".cc", ".cxx", ".c", ".h", ".hpp"},
			FunctionPattern:   `\b\w+\s+(\w+)\s*\([^)]*\)\s*{`,
			TypePattern:       `\bclass\s+(\w+)`,
			BranchingKeywords: cStyleKeywords,
			BooleanWords:      []string{"and", "or"},
			BooleanOperators:  logicalOperators,
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:       "javascript",
			Extensions: []string{".js", ".jsx", ".mjs", ".cjs"},
			FunctionPattern: `^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*\(` +
				`|^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*=>|\w+\s*=>)`,
			TypePattern:       `\bclass\s+(\w+)`,
			BranchingKeywords: cStyleKeywords,
			BooleanOperators:  []string{"&&", "||", "??"},
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:       "typescript",
			Extensions: []string{".ts", ".tsx", ".mts", ".cts"},
			FunctionPattern: `^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)\s*[<(]` +
				`|^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*(?::[^=]+)?=\s*(?:async\s+)?(?:function\b|\([^)]*\)\s*(?::[^=]+)?=>|\w+\s*=>)`,
			TypePattern:       `\b(?:class|interface)\s+(\w+)`,
			BranchingKeywords: cStyleKeywords,
			BooleanOperators:  []string{"&&", "||", "??"},
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
		{
			Name:              "rust",
			Extensions:        []string{".rs"},
			FunctionPattern:   `^\s*(?:pub(?:\([^)]*\))?\s+)?(?:const\s+)?(?:async\s+)?(?:unsafe\s+)?(?:extern\s+"[^"]*"\s+)?fn\s+(\w+)`,
			TypePattern:       `\b(?:struct|enum|trait)\s+(\w+)`,
			BranchingKeywords: []string{"if", "else", "for", "while", "loop", "match"},
			BooleanOperators:  logicalOperators,
			CommentPatterns:   cStyleComments,
			LineComments:      []string{"//"},
		},
	}
}
