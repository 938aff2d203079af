// Package output formats review reports for display or publishing.
//
// Two formats are supported:
//   - markdown: the GitHub issue/comment body (default)
//   - json: the structured review result as indented JSON
//
// Use [GetWriter] to obtain a [Writer] for a format string, or [WriteReport]
// to route a report to a file or stdout. [Render] returns the markdown body
// as a string for the publish path, and [IssueTitle] derives the matching
// issue title from the severity counts.
package output
