// Revet reviews codebases and pull requests with an OpenAI-compatible model.
//
// It bundles source files or assembles PR diffs, sends them for review, and
// renders the result as Markdown, JSON, a GitHub issue, or a PR comment,
// with deterministic exit codes suitable for CI gating.
//
// Usage:
//
//	revet review codebase             # structured review of the current tree
//	revet review codebase --freeform  # narrative review instead of JSON
//	revet review codebase --publish   # file the review as a GitHub issue
//	revet review pr 42 --publish      # review a pull request and comment on it
//	revet check                       # verify credentials and connectivity
//	revet init                        # generate a GitHub Actions workflow
//
// See https://github.com/revetci/revet for full documentation.
package main
