package types

// Language tags returned by language detection for files that carry no
// profile.
const (
	LanguageSkip    = "skip"
	LanguageUnknown = "unknown"
)

// RawFunction is a function body isolated by the extractor.
type RawFunction struct {
	Name      string `json:"name"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
	Content   string `json:"content"`
	Language  string `json:"language"`
}

// ComplexityMetrics holds the six structural metrics computed for a function.
type ComplexityMetrics struct {
	CyclomaticComplexity int `json:"cyclomatic_complexity" yaml:"cyclomatic_complexity"`
	NestingDepth         int `json:"nesting_depth" yaml:"nesting_depth"`
	FunctionLength       int `json:"function_length" yaml:"function_length"`
	ParameterCount       int `json:"parameter_count" yaml:"parameter_count"`
	CognitiveComplexity  int `json:"cognitive_complexity" yaml:"cognitive_complexity"`
	DocumentationScore   int `json:"documentation_score" yaml:"documentation_score"`
}

// RankedResult is one scored function in the final ranking.
type RankedResult struct {
	FunctionName    string            `json:"function_name" yaml:"function_name"`
	FilePath        string            `json:"file_path" yaml:"file_path"`
	FileURL         string            `json:"file_url" yaml:"file_url"`
	ReferenceURL    string            `json:"github_url" yaml:"github_url"`
	StartLine       int               `json:"start_line" yaml:"start_line"`
	EndLine         int               `json:"end_line" yaml:"end_line"`
	Language        string            `json:"language" yaml:"language"`
	TotalScore      float64           `json:"total_complexity_score" yaml:"total_complexity_score"`
	Metrics         ComplexityMetrics `json:"reason_for_complexity" yaml:"reason_for_complexity"`
	FunctionContent string            `json:"function_content,omitempty" yaml:"function_content,omitempty"`
}

// Summary describes a scan run.
type Summary struct {
	FilesScanned       int      `json:"files_scanned" yaml:"files_scanned"`
	FilesSkipped       int      `json:"files_skipped" yaml:"files_skipped"`
	FilesFailed        int      `json:"files_failed" yaml:"files_failed"`
	DirectoriesPruned  int      `json:"directories_pruned" yaml:"directories_pruned"`
	FunctionsAnalyzed  int      `json:"functions_analyzed" yaml:"functions_analyzed"`
	TypesDeclared      int      `json:"types_declared" yaml:"types_declared"`
	LanguagesFound     []string `json:"languages_found" yaml:"languages_found"`
	ResultFiles        int      `json:"result_files" yaml:"result_files"`
	ResultsTruncatedAt int      `json:"results_truncated_at,omitempty" yaml:"results_truncated_at,omitempty"`
}

// Ranking contains the complete result of a scan.
type Ranking struct {
	Root      string         `json:"root" yaml:"root"`
	Functions []RankedResult `json:"functions" yaml:"functions"`
	Summary   Summary        `json:"summary" yaml:"summary"`
}
