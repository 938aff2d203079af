package collect

import (
	"path"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// defaultExcludeDirs are directory names skipped in any position of a path.
var defaultExcludeDirs = []string{
	"node_modules", "target", "dist", "build", ".git",
	"__pycache__", ".venv", "venv", ".next", ".turbo",
}

// defaultSkipFiles are generated files excluded by basename.
var defaultSkipFiles = []string{
	"vite-env.d.ts", "auto-imports.d.ts", "components.d.ts",
}

// Filter decides which relative paths belong in a review. It combines the
// excluded directory list, the generated-file skip list, and the repository's
// .gitignore when one exists at the root.
type Filter struct {
	excludeDirs map[string]bool
	skipFiles   map[string]bool
	gitignore   *ignore.GitIgnore
}

// NewFilter builds a Filter rooted at root. Empty slices fall back to the
// defaults. A missing or unreadable .gitignore is not an error.
func NewFilter(root string, excludeDirs, skipFiles []string) *Filter {
	if len(excludeDirs) == 0 {
		excludeDirs = defaultExcludeDirs
	}
	if len(skipFiles) == 0 {
		skipFiles = defaultSkipFiles
	}

	f := &Filter{
		excludeDirs: make(map[string]bool, len(excludeDirs)),
		skipFiles:   make(map[string]bool, len(skipFiles)),
	}
	for _, d := range excludeDirs {
		f.excludeDirs[d] = true
	}
	for _, name := range skipFiles {
		f.skipFiles[name] = true
	}

	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		f.gitignore = gi
	}
	return f
}

// Include reports whether the slash-separated relative path rel survives all
// three exclusion layers. Every path segment is checked against the excluded
// directory set, so a file literally named "dist" is dropped too.
func (f *Filter) Include(rel string) bool {
	for _, seg := range strings.Split(rel, "/") {
		if f.excludeDirs[seg] {
			return false
		}
	}
	if f.skipFiles[path.Base(rel)] {
		return false
	}
	if f.gitignore != nil && f.gitignore.MatchesPath(rel) {
		return false
	}
	return true
}
