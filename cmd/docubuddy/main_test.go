package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/BenjaminWie/docu-buddy/types"
)

const demoDir = "testdata/demo"

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := execute(t, "--version")
	assert.Equal(t, exitOK, code)
	assert.Equal(t, version, strings.TrimSpace(stdout))
}

func TestRun_Help(t *testing.T) {
	code, stdout, _ := execute(t, "--help")
	assert.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "Usage:")
	assert.Contains(t, stdout, "docubuddy rank")
}

func TestRun_BadArguments(t *testing.T) {
	code, _, _ := execute(t, "frobnicate")
	assert.Equal(t, exitUsage, code)
}

func TestRun_Languages(t *testing.T) {
	code, stdout, _ := execute(t, "languages")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "python")
	assert.Contains(t, stdout, "rust")
}

func TestRun_LanguagesConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "docubuddy.toml")
	require.NoError(t, os.WriteFile(cfg, []byte(
		"[[languages]]\nname = \"lua\"\nextensions = [\".lua\"]\nfunction_pattern = '^\\s*function\\s+(\\w+)'\n",
	), 0o644))

	code, stdout, stderr := execute(t, "languages", "--config="+cfg)
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "lua")
	assert.Contains(t, stdout, "python")
}

func TestRun_RankJSON(t *testing.T) {
	code, stdout, stderr := execute(t, "rank", demoDir, "--format=json", "--no-color")
	require.Equal(t, exitOK, code, stderr)

	var ranking types.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranking))

	require.Len(t, ranking.Functions, 8)
	assert.Equal(t, "Classify", ranking.Functions[0].FunctionName)
	assert.Equal(t, "example.go", ranking.Functions[0].FilePath)
	assert.NotEmpty(t, ranking.Functions[0].FunctionContent)
	for i, fn := range ranking.Functions {
		assert.NotContains(t, fn.FilePath, "node_modules")
		if i > 0 {
			assert.GreaterOrEqual(t, ranking.Functions[i-1].TotalScore, fn.TotalScore)
		}
	}

	assert.Equal(t, 2, ranking.Summary.FilesScanned)
	assert.Equal(t, 1, ranking.Summary.FilesSkipped)
	assert.Equal(t, 1, ranking.Summary.DirectoriesPruned)
	assert.Equal(t, 2, ranking.Summary.TypesDeclared)
	assert.Equal(t, []string{"go", "python"}, ranking.Summary.LanguagesFound)
	assert.Contains(t, stderr, "ranking complete")
}

func TestRun_RankFlags(t *testing.T) {
	code, stdout, stderr := execute(t, "rank", demoDir,
		"-f", "yaml",
		"-n", "3",
		"--no-content",
		"--reference=https://github.com/o/r/blob/main/",
		"--exclude=scripts/**",
	)
	require.Equal(t, exitOK, code, stderr)

	var ranking types.Ranking
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &ranking))
	require.Len(t, ranking.Functions, 3)
	assert.Equal(t, 3, ranking.Summary.ResultsTruncatedAt)
	assert.Equal(t, 7, ranking.Summary.FunctionsAnalyzed)
	for _, fn := range ranking.Functions {
		assert.Empty(t, fn.FunctionContent)
		assert.Equal(t, "go", fn.Language)
		assert.True(t, strings.HasPrefix(fn.ReferenceURL, "https://github.com/o/r/blob/main/example.go#L"), fn.ReferenceURL)
	}
}

func TestRun_RankText(t *testing.T) {
	code, stdout, stderr := execute(t, "rank", demoDir, "--no-color", "--progress")
	require.Equal(t, exitOK, code, stderr)
	assert.Contains(t, stdout, "Classify")
	assert.Contains(t, stdout, "summarize")
	assert.Contains(t, stdout, "Functions analyzed:")
}

func TestRun_RankToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.md")
	code, stdout, stderr := execute(t, "rank", demoDir, "--format=markdown", "--out="+out)
	require.Equal(t, exitOK, code, stderr)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| 1 | Classify |")
	assert.Contains(t, stderr, "report written")
}

func TestRun_RankConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "docubuddy.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[scan]\nmax_results = 1\n\n[output]\nformat = \"json\"\n"), 0o644))

	code, stdout, stderr := execute(t, "rank", demoDir, "--config="+cfg)
	require.Equal(t, exitOK, code, stderr)

	var ranking types.Ranking
	require.NoError(t, json.Unmarshal([]byte(stdout), &ranking))
	require.Len(t, ranking.Functions, 1)
	assert.Equal(t, "Classify", ranking.Functions[0].FunctionName)
}

func TestRun_RankErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"unknown format", []string{"rank", demoDir, "--format=xml"}, exitUsage},
		{"bad limit", []string{"rank", demoDir, "--limit=many"}, exitUsage},
		{"negative workers", []string{"rank", demoDir, "--workers=-1"}, exitUsage},
		{"bad exclude", []string{"rank", demoDir, "--exclude=[a"}, exitUsage},
		{"missing config", []string{"rank", demoDir, "--config=" + filepath.Join(t.TempDir(), "none.toml")}, exitUsage},
		{"missing dir", []string{"rank", filepath.Join(t.TempDir(), "missing")}, exitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := execute(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}
