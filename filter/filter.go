// Package filter decides which directories and files of a codebase are
// infrastructure rather than source and must not be scanned.
package filter

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

var skipDirs = toSet(
	".git", ".svn", ".hg", ".bzr", "node_modules", "bower_components", "vendor",
	"packages", ".gradle", ".maven", "target", "build", "bin", "obj", "out", ".vscode",
	".idea", ".eclipse", "__pycache__", ".pytest_cache", ".mypy_cache", "venv", "env",
	".env", "virtualenv", "dist", "coverage", ".nyc_output", "logs", "log", "tmp",
	"temp", ".docker", "docker-compose", ".terraform", ".aws", "migrations", "assets",
	"static", "public", "resources", "docs", "documentation", "wiki", "test", "tests",
	"spec", "specs", ".settings", ".metadata",
)

var skipFiles = toSet(
	"package.json", "package-lock.json", "yarn.lock", "pom.xml", "build.gradle",
	"settings.gradle", "gradle.properties", "build.xml", "ivy.xml", "makefile",
	"cmake", "cmakecache.txt", "requirements.txt", "pipfile", "pipfile.lock",
	"poetry.lock", "composer.json", "composer.lock", "gemfile", "gemfile.lock",
	".gitignore", ".gitattributes", ".gitmodules", ".dockerignore", "dockerfile",
	"readme.md", "readme.txt", "readme.rst", "license", "license.txt", "license.md",
	"changelog.md", "changelog.txt", "contributing.md", "code_of_conduct.md",
	".editorconfig", ".eslintrc", ".prettierrc", "tsconfig.json", "jsconfig.json",
	".babelrc", "webpack.config.js", ".travis.yml", ".circleci", "appveyor.yml",
	"jenkinsfile", ".github", "schema.sql", "seeds.sql", "todo.txt", "notes.txt",
	"manifest.mf", "meta-inf",
)

var skipExtensions = toSet(
	".md", ".txt", ".rst", ".pdf", ".doc", ".docx", ".json", ".xml", ".yaml",
	".yml", ".ini", ".cfg", ".conf", ".properties", ".env", ".local", ".png",
	".jpg", ".jpeg", ".gif", ".svg", ".ico", ".bmp", ".mp3", ".mp4", ".avi",
	".mov", ".wav", ".zip", ".tar", ".gz", ".7z", ".rar", ".exe", ".dll", ".so",
	".dylib", ".jar", ".war", ".ear", ".db", ".sqlite", ".sqlite3", ".mdb",
	".log", ".tmp", ".temp", ".cache", ".pem", ".key", ".crt", ".cert", ".g4",
	".sh", ".bash", ".zsh", ".fish", ".bat", ".cmd", ".ps1", ".psm1", ".lock",
)

func toSet(items ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// baseName returns the last element of p, ignoring trailing separators of
// either style.
func baseName(p string) string {
	p = strings.TrimRight(p, `/\`)
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return p
}

// ShouldSkipDirectory reports whether a directory is infrastructure: a
// version-control, dependency, build, IDE, cache, environment, test, docs or
// assets folder, or any hidden directory.
func ShouldSkipDirectory(dir string) bool {
	name := baseName(dir)
	if _, ok := skipDirs[name]; ok {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// ShouldSkipFile reports whether a file is a build manifest, lock file,
// license, readme or CI config, or carries a non-source extension.
func ShouldSkipFile(file string) bool {
	name := strings.ToLower(baseName(file))
	if _, ok := skipFiles[name]; ok {
		return true
	}
	_, ok := skipExtensions[Extension(name)]
	return ok
}

// Extension returns the lowercase final suffix of a file name, including the
// dot. Names whose only dot is leading (".bashrc") or trailing ("notes.")
// have no extension.
func Extension(file string) string {
	name := baseName(file)
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i:])
}

// Filter combines the fixed deny-sets with user supplied exclude globs.
// Globs use doublestar syntax and are matched against slash separated paths
// relative to the scan root.
type Filter struct {
	excludes []string
}

// New validates the exclude globs and returns a Filter.
func New(excludes []string) (*Filter, error) {
	patterns := make([]string, 0, len(excludes))
	for _, pattern := range excludes {
		pattern = strings.TrimSpace(filepath.ToSlash(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
		patterns = append(patterns, pattern)
	}
	return &Filter{excludes: patterns}, nil
}

// SkipDir reports whether the directory at rel should be pruned.
func (f *Filter) SkipDir(rel string) bool {
	return ShouldSkipDirectory(rel) || f.excluded(rel)
}

// SkipFile reports whether the file at rel should be ignored.
func (f *Filter) SkipFile(rel string) bool {
	return ShouldSkipFile(rel) || f.excluded(rel)
}

// Excludes returns the configured exclude globs.
func (f *Filter) Excludes() []string {
	return append([]string(nil), f.excludes...)
}

func (f *Filter) excluded(rel string) bool {
	if f == nil || len(f.excludes) == 0 {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range f.excludes {
		// Patterns were validated in New, so Match cannot fail.
		if matched, _ := doublestar.Match(pattern, rel); matched {
			return true
		}
	}
	return false
}
