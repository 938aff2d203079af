package output

import (
	"fmt"
	"strings"

	"github.com/revetci/revet/internal/review"
)

// renderFreeform wraps the model's narrative audit in the issue body frame.
func renderFreeform(report *review.Report) string {
	return fmt.Sprintf(`## Full Codebase Review

**Scope:** %d files (%s characters)
**Model:** %s

---

%s

---
*Automated review powered by %s*`,
		report.Files, GroupDigits(report.Chars), report.Model,
		strings.TrimSpace(report.Raw), report.Model)
}

// renderDiff wraps the model's PR review in the comment body frame.
func renderDiff(report *review.Report) string {
	return fmt.Sprintf("## AI Code Review\n\n%s\n\n---\n*Powered by %s*",
		strings.TrimSpace(report.Raw), report.Model)
}

// IssueTitle derives the GitHub issue title for a report. Structured reviews
// lead with the worst severity present; freeform reviews get a fixed title.
func IssueTitle(report *review.Report) string {
	if report.Result == nil {
		return "🔍 Full Codebase Review"
	}
	c := review.CountBySeverity(report.Result.Improvements)
	switch {
	case c.Critical > 0:
		return fmt.Sprintf("🔴 Code Review: %d critical, %d high priority issues", c.Critical, c.High)
	case c.High > 0:
		return fmt.Sprintf("🟠 Code Review: %d high priority issues found", c.High)
	default:
		return fmt.Sprintf("🟢 Code Review: %d improvements identified", c.Total())
	}
}
