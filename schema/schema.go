package schema

import (
	"fmt"

	surrealdb "github.com/surrealdb/surrealdb.go"
)

// Table names used by the ranking store.
const (
	RankedFunctionsTable = "ranked_functions"
	ScanSummariesTable   = "scan_summaries"
)

// StoreRankingQuery replaces the ranking stored for $root with $functions and
// records $summary. It runs as one transaction, so a failed statement leaves
// the previous ranking in place.
const StoreRankingQuery = `BEGIN TRANSACTION;
DELETE ranked_functions WHERE root = $root;
FOR $fn IN $functions {
	CREATE ranked_functions CONTENT $fn;
};
CREATE scan_summaries CONTENT $summary;
COMMIT TRANSACTION;`

// Definitions returns the table definitions in execution order.
func Definitions() []string {
	return []string{
		// Ranked functions, one row per entry of the final list
		`DEFINE TABLE ranked_functions SCHEMAFULL;
		 DEFINE FIELD root ON ranked_functions TYPE string;
		 DEFINE FIELD rank ON ranked_functions TYPE int;
		 DEFINE FIELD function_name ON ranked_functions TYPE string;
		 DEFINE FIELD file_path ON ranked_functions TYPE string;
		 DEFINE FIELD file_url ON ranked_functions TYPE string;
		 DEFINE FIELD github_url ON ranked_functions TYPE string;
		 DEFINE FIELD start_line ON ranked_functions TYPE int;
		 DEFINE FIELD end_line ON ranked_functions TYPE int;
		 DEFINE FIELD language ON ranked_functions TYPE string;
		 DEFINE FIELD total_complexity_score ON ranked_functions TYPE float;
		 DEFINE FIELD cyclomatic_complexity ON ranked_functions TYPE int;
		 DEFINE FIELD nesting_depth ON ranked_functions TYPE int;
		 DEFINE FIELD function_length ON ranked_functions TYPE int;
		 DEFINE FIELD parameter_count ON ranked_functions TYPE int;
		 DEFINE FIELD cognitive_complexity ON ranked_functions TYPE int;
		 DEFINE FIELD documentation_score ON ranked_functions TYPE int;
		 DEFINE FIELD function_content ON ranked_functions TYPE option<string>;
		 DEFINE FIELD created_at ON ranked_functions TYPE datetime DEFAULT time::now();
		 DEFINE INDEX ranked_root ON ranked_functions FIELDS root;
		 DEFINE INDEX ranked_position ON ranked_functions FIELDS root, rank UNIQUE;`,

		// Run summaries
		`DEFINE TABLE scan_summaries SCHEMAFULL;
		 DEFINE FIELD root ON scan_summaries TYPE string;
		 DEFINE FIELD files_scanned ON scan_summaries TYPE int;
		 DEFINE FIELD files_skipped ON scan_summaries TYPE int;
		 DEFINE FIELD files_failed ON scan_summaries TYPE int;
		 DEFINE FIELD functions_analyzed ON scan_summaries TYPE int;
		 DEFINE FIELD languages_found ON scan_summaries TYPE array<string>;
		 DEFINE FIELD created_at ON scan_summaries TYPE datetime DEFAULT time::now();
		 DEFINE INDEX summary_root ON scan_summaries FIELDS root;`,
	}
}

// InitializeSchema sets up the tables and indexes for the ranking store.
func InitializeSchema(db *surrealdb.DB) error {
	for _, schema := range Definitions() {
		if _, err := surrealdb.Query[any](db, schema, map[string]interface{}{}); err != nil {
			return fmt.Errorf("schema initialization error: %w", err)
		}
	}

	return nil
}
