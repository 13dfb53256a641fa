package schema_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/BenjaminWie/docu-buddy/schema"
)

func TestDefinitions(t *testing.T) {
	defs := schema.Definitions()
	assert.Len(t, defs, 2)
	assert.Contains(t, defs[0], "DEFINE TABLE "+schema.RankedFunctionsTable)
	assert.Contains(t, defs[1], "DEFINE TABLE "+schema.ScanSummariesTable)

	for _, field := range []string{
		"function_name", "file_path", "file_url", "github_url", "start_line", "end_line",
		"language", "total_complexity_score", "cyclomatic_complexity", "nesting_depth",
		"function_length", "parameter_count", "cognitive_complexity", "documentation_score",
	} {
		assert.True(t, strings.Contains(defs[0], "DEFINE FIELD "+field+" ON ranked_functions"), field)
	}
}

func TestStoreRankingQuery(t *testing.T) {
	q := schema.StoreRankingQuery
	assert.True(t, strings.HasPrefix(q, "BEGIN TRANSACTION;"))
	assert.True(t, strings.HasSuffix(q, "COMMIT TRANSACTION;"))
	assert.Contains(t, q, "DELETE "+schema.RankedFunctionsTable+" WHERE root = $root")
	assert.Contains(t, q, "CREATE "+schema.RankedFunctionsTable+" CONTENT $fn")
	assert.Contains(t, q, "CREATE "+schema.ScanSummariesTable+" CONTENT $summary")

	// the delete must run inside the transaction, before any insert
	begin := strings.Index(q, "BEGIN")
	del := strings.Index(q, "DELETE")
	create := strings.Index(q, "CREATE")
	assert.Less(t, begin, del)
	assert.Less(t, del, create)
}
