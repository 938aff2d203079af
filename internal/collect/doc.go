// Package collect discovers the source files that go into a codebase review.
//
// [Collect] expands doublestar glob patterns against a root directory,
// deduplicates overlapping matches (first pattern wins), and returns files
// sorted by path so downstream payloads are deterministic. Binary and
// otherwise non-UTF-8 files are skipped without error.
//
// [Filter] layers three exclusion mechanisms: a set of directory names
// (node_modules, target, dist, ...), a basename skip list for generated
// files, and the repository's own .gitignore when present at the root.
package collect
