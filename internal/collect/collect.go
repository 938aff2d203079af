package collect

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

// File is one source file selected for review. Path is relative to the
// collection root and slash-separated.
type File struct {
	Path     string
	Content  string
	Language string
}

// langByExt maps extensions to the language names used in code fences and
// the bundle manifest.
var langByExt = map[string]string{
	".ts":    "typescript",
	".tsx":   "tsx",
	".js":    "javascript",
	".jsx":   "jsx",
	".mjs":   "javascript",
	".cjs":   "javascript",
	".rs":    "rust",
	".go":    "go",
	".py":    "python",
	".rb":    "ruby",
	".java":  "java",
	".kt":    "kotlin",
	".swift": "swift",
	".c":     "c",
	".h":     "c",
	".cpp":   "cpp",
	".cs":    "csharp",
	".php":   "php",
	".sh":    "bash",
	".sql":   "sql",
	".html":  "html",
	".css":   "css",
	".scss":  "scss",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".md":    "markdown",
}

// LanguageFor returns the language name for a path. Unknown extensions fall
// back to the bare extension without the dot.
func LanguageFor(p string) string {
	ext := strings.ToLower(path.Ext(p))
	if lang, ok := langByExt[ext]; ok {
		return lang
	}
	return strings.TrimPrefix(ext, ".")
}

// Collect globs patterns under root and returns the surviving files sorted
// by path. Patterns are evaluated in order and a path is kept by the first
// pattern that matches it. Unreadable and non-UTF-8 files are skipped
// silently; a malformed pattern is an error.
func Collect(root string, patterns []string, filter *Filter) ([]File, error) {
	fsys := os.DirFS(root)

	seen := make(map[string]bool)
	var files []File
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		for _, rel := range matches {
			if seen[rel] {
				continue
			}
			seen[rel] = true

			if filter != nil && !filter.Include(rel) {
				continue
			}
			info, err := fs.Stat(fsys, rel)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			data, err := fs.ReadFile(fsys, rel)
			if err != nil || !utf8.Valid(data) {
				continue
			}
			files = append(files, File{
				Path:     rel,
				Content:  string(data),
				Language: LanguageFor(rel),
			})
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}
