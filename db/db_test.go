package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BenjaminWie/docu-buddy/db"
	"github.com/BenjaminWie/docu-buddy/types"
)

func TestMockDB(t *testing.T) {
	ctx := context.Background()
	mock := db.NewMockDB()
	var store db.DB = mock

	require.NoError(t, store.Initialize(ctx))
	ranking := types.Ranking{Root: "repo", Functions: []types.RankedResult{{FunctionName: "f"}}}
	require.NoError(t, store.StoreRanking(ctx, ranking))

	stored := mock.Rankings()
	require.Len(t, stored, 1)
	assert.Equal(t, "f", stored[0].Functions[0].FunctionName)
}

func TestMockDB_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	mock := &db.MockDB{
		InitializeFunc:   func(context.Context) error { return boom },
		StoreRankingFunc: func(context.Context, types.Ranking) error { return boom },
	}

	assert.ErrorIs(t, mock.Initialize(ctx), boom)
	assert.ErrorIs(t, mock.StoreRanking(ctx, types.Ranking{}), boom)
	assert.Empty(t, mock.Rankings())
}

func TestNewRankedFunction(t *testing.T) {
	r := types.RankedResult{
		FunctionName: "parse",
		FilePath:     "pkg/parse.go",
		FileURL:      "file:///repo/pkg/parse.go",
		ReferenceURL: "https://example.com/pkg/parse.go#L3-L9",
		StartLine:    3,
		EndLine:      9,
		Language:     "go",
		TotalScore:   21.5,
		Metrics: types.ComplexityMetrics{
			CyclomaticComplexity: 3,
			NestingDepth:         2,
			FunctionLength:       7,
			ParameterCount:       1,
			CognitiveComplexity:  4,
			DocumentationScore:   0,
		},
	}

	rec := db.NewRankedFunction("repo", 1, r)
	assert.Nil(t, rec.ID)
	assert.Equal(t, "repo", rec.Root)
	assert.Equal(t, 1, rec.Rank)
	assert.Equal(t, "parse", rec.FunctionName)
	assert.Equal(t, "pkg/parse.go", rec.FilePath)
	assert.Equal(t, 21.5, rec.TotalScore)
	assert.Equal(t, 3, rec.Cyclomatic)
	assert.Equal(t, 2, rec.NestingDepth)
	assert.Equal(t, 7, rec.FunctionLength)
	assert.Equal(t, 1, rec.ParameterCount)
	assert.Equal(t, 4, rec.CognitiveComplexity)
	assert.Equal(t, 0, rec.DocumentationScore)
}

func TestNewScanSummary(t *testing.T) {
	ranking := types.Ranking{
		Root: "/repo",
		Summary: types.Summary{
			FilesScanned:      4,
			FilesSkipped:      2,
			FilesFailed:       1,
			FunctionsAnalyzed: 9,
			LanguagesFound:    []string{"go", "python"},
		},
	}

	assert.Equal(t, db.ScanSummary{
		Root:              "/repo",
		FilesScanned:      4,
		FilesSkipped:      2,
		FilesFailed:       1,
		FunctionsAnalyzed: 9,
		LanguagesFound:    []string{"go", "python"},
	}, db.NewScanSummary(ranking))
}
