package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/revetci/revet/internal/review"
)

// MarkdownWriter outputs the report as the GitHub-flavored markdown body.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, report *review.Report) error {
	body, err := Render(report)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, body)
	return err
}

var severityIcons = map[review.Severity]string{
	review.SeverityCritical: "🔴",
	review.SeverityHigh:     "🟠",
	review.SeverityMedium:   "🟡",
	review.SeverityLow:      "🟢",
}

var categoryIcons = map[review.Category]string{
	review.CategorySecurity:        "🔒",
	review.CategoryPerformance:     "⚡",
	review.CategoryQuality:         "✨",
	review.CategoryArchitecture:    "🏗️",
	review.CategoryMaintainability: "🔧",
}

var effortLabels = map[review.Effort]string{
	review.EffortTrivial: "~1h",
	review.EffortSmall:   "~4h",
	review.EffortMedium:  "~1d",
	review.EffortLarge:   "~1w",
}

// renderStructured builds the issue body for a structured review: scope
// header, severity summary table, prose sections, then improvements grouped
// by severity with the model's order preserved inside each group. An enum
// value without a display label is a rendering error, not a blank cell.
func renderStructured(report *review.Report) (string, error) {
	res := report.Result
	counts := review.CountBySeverity(res.Improvements)

	lines := []string{
		"## 🔍 Structured Codebase Review",
		"",
		fmt.Sprintf("**Scope:** %d files (%s characters)", report.Files, GroupDigits(report.Chars)),
		fmt.Sprintf("**Model:** %s", report.Model),
		fmt.Sprintf("**Risk Score:** %d/100", res.RiskScore),
		"",
		"---",
		"",
		"### 📊 Summary",
		"",
		"| Critical | High | Medium | Low |",
		"|:--------:|:----:|:------:|:---:|",
		fmt.Sprintf("| %d | %d | %d | %d |", counts.Critical, counts.High, counts.Medium, counts.Low),
		"",
		fmt.Sprintf("**Top Priority:** %s", res.TopPriority),
		"",
		"---",
		"",
		"### 🏗️ Architecture",
		"",
		res.ArchitectureNotes,
		"",
		"### 🔒 Security Posture",
		"",
		res.SecurityPosture,
		"",
		"---",
		"",
		"### 📋 Improvements",
		"",
	}

	grouped := make(map[review.Severity][]review.Improvement)
	for _, imp := range res.Improvements {
		grouped[imp.Severity] = append(grouped[imp.Severity], imp)
	}

	for _, sev := range review.Severities {
		items := grouped[sev]
		if len(items) == 0 {
			continue
		}
		icon, ok := severityIcons[sev]
		if !ok {
			return "", fmt.Errorf("no display label for severity %q", sev)
		}

		lines = append(lines,
			fmt.Sprintf("#### %s %s (%d)", icon, titleWord(string(sev)), len(items)),
			"")

		for _, item := range items {
			catIcon, ok := categoryIcons[item.Category]
			if !ok {
				return "", fmt.Errorf("no display label for category %q", item.Category)
			}
			effort, ok := effortLabels[item.Effort]
			if !ok {
				return "", fmt.Errorf("no display label for effort %q", item.Effort)
			}

			lines = append(lines,
				fmt.Sprintf("- [ ] **`%s`** %s", item.ID, item.Title),
				fmt.Sprintf("  - %s %s · `%s` · %s", catIcon, titleWord(string(item.Category)), item.File, effort),
				fmt.Sprintf("  - **Problem:** %s", item.Problem),
				fmt.Sprintf("  - **Solution:** %s", item.Solution),
				"")
		}
	}

	lines = append(lines,
		"---",
		"",
		fmt.Sprintf("*Automated review powered by %s with structured output*", report.Model))

	return strings.Join(lines, "\n"), nil
}
