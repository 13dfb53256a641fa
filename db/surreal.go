package db

import (
	"context"
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/BenjaminWie/docu-buddy/schema"
	"github.com/BenjaminWie/docu-buddy/types"
)

type Config struct {
	URL       string
	Namespace string
	Database  string
	Username  string
	Password  string
}

// RankedFunction is the stored form of one ranked function.
type RankedFunction struct {
	ID                  *models.RecordID `json:"id,omitempty"`
	Root                string           `json:"root"`
	Rank                int              `json:"rank"`
	FunctionName        string           `json:"function_name"`
	FilePath            string           `json:"file_path"`
	FileURL             string           `json:"file_url"`
	ReferenceURL        string           `json:"github_url"`
	StartLine           int              `json:"start_line"`
	EndLine             int              `json:"end_line"`
	Language            string           `json:"language"`
	TotalScore          float64          `json:"total_complexity_score"`
	Cyclomatic          int              `json:"cyclomatic_complexity"`
	NestingDepth        int              `json:"nesting_depth"`
	FunctionLength      int              `json:"function_length"`
	ParameterCount      int              `json:"parameter_count"`
	CognitiveComplexity int              `json:"cognitive_complexity"`
	DocumentationScore  int              `json:"documentation_score"`
	FunctionContent     string           `json:"function_content,omitempty"`
}

// ScanSummary is the stored form of a run summary.
type ScanSummary struct {
	ID                *models.RecordID `json:"id,omitempty"`
	Root              string           `json:"root"`
	FilesScanned      int              `json:"files_scanned"`
	FilesSkipped      int              `json:"files_skipped"`
	FilesFailed       int              `json:"files_failed"`
	FunctionsAnalyzed int              `json:"functions_analyzed"`
	LanguagesFound    []string         `json:"languages_found"`
}

// NewRankedFunction converts the result at position rank (1-based).
func NewRankedFunction(root string, rank int, r types.RankedResult) RankedFunction {
	return RankedFunction{
		Root:                root,
		Rank:                rank,
		FunctionName:        r.FunctionName,
		FilePath:            r.FilePath,
		FileURL:             r.FileURL,
		ReferenceURL:        r.ReferenceURL,
		StartLine:           r.StartLine,
		EndLine:             r.EndLine,
		Language:            r.Language,
		TotalScore:          r.TotalScore,
		Cyclomatic:          r.Metrics.CyclomaticComplexity,
		NestingDepth:        r.Metrics.NestingDepth,
		FunctionLength:      r.Metrics.FunctionLength,
		ParameterCount:      r.Metrics.ParameterCount,
		CognitiveComplexity: r.Metrics.CognitiveComplexity,
		DocumentationScore:  r.Metrics.DocumentationScore,
		FunctionContent:     r.FunctionContent,
	}
}

// NewScanSummary converts the summary of ranking.
func NewScanSummary(ranking types.Ranking) ScanSummary {
	return ScanSummary{
		Root:              ranking.Root,
		FilesScanned:      ranking.Summary.FilesScanned,
		FilesSkipped:      ranking.Summary.FilesSkipped,
		FilesFailed:       ranking.Summary.FilesFailed,
		FunctionsAnalyzed: ranking.Summary.FunctionsAnalyzed,
		LanguagesFound:    ranking.Summary.LanguagesFound,
	}
}

type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

func NewSurrealDB(config Config) (*SurrealDB, error) {
	db, err := surrealdb.New(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SurrealDB{
		db:     db,
		config: config,
	}, nil
}

// Initialize selects the namespace, signs in and defines the tables.
func (s *SurrealDB) Initialize(ctx context.Context) error {
	if err := s.db.Use(s.config.Namespace, s.config.Database); err != nil {
		return fmt.Errorf("failed to set namespace/database: %w", err)
	}

	authData := &surrealdb.Auth{
		Username: s.config.Username,
		Password: s.config.Password,
	}
	token, err := s.db.SignIn(authData)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}

	if err := s.db.Authenticate(token); err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := schema.InitializeSchema(s.db); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	return nil
}

// StoreRanking replaces the stored ranking for the same root with ranking.
// The delete and every insert run in a single transaction.
func (s *SurrealDB) StoreRanking(ctx context.Context, ranking types.Ranking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	functions := make([]RankedFunction, 0, len(ranking.Functions))
	for i, fn := range ranking.Functions {
		functions = append(functions, NewRankedFunction(ranking.Root, i+1, fn))
	}

	results, err := surrealdb.Query[any](s.db, schema.StoreRankingQuery, map[string]interface{}{
		"root":      ranking.Root,
		"functions": functions,
		"summary":   NewScanSummary(ranking),
	})
	if err != nil {
		return fmt.Errorf("failed to store ranking for %s: %w", ranking.Root, err)
	}
	if err := checkResults(results); err != nil {
		return fmt.Errorf("failed to store ranking for %s: %w", ranking.Root, err)
	}

	return nil
}

// checkResults returns the first statement error in a query response.
func checkResults(results *[]surrealdb.QueryResult[any]) error {
	if results == nil {
		return nil
	}
	for i, r := range *results {
		if r.Status != "OK" {
			return fmt.Errorf("statement %d: %s: %v", i+1, r.Status, r.Result)
		}
	}
	return nil
}
