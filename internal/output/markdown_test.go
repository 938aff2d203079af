package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/revetci/revet/internal/review"
)

func structuredReport() *review.Report {
	return &review.Report{
		Mode:  review.ModeStructured,
		Model: "gpt-5.2-codex-medium",
		Files: 2,
		Chars: 1234,
		Result: &review.ReviewResult{
			Improvements: []review.Improvement{
				{
					ID:       "SEC-001",
					File:     "src/auth.ts",
					Severity: review.SeverityCritical,
					Category: review.CategorySecurity,
					Title:    "Token stored in localStorage",
					Problem:  "Readable by injected scripts.",
					Solution: "Use an httpOnly cookie.",
					Effort:   review.EffortSmall,
				},
			},
			ArchitectureNotes: "Solid layering.",
			SecurityPosture:   "One critical exposure.",
			TopPriority:       "Fix token storage.",
			RiskScore:         70,
		},
	}
}

func TestRenderStructured_FullBody(t *testing.T) {
	got, err := Render(structuredReport())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	want := strings.Join([]string{
		"## 🔍 Structured Codebase Review",
		"",
		"**Scope:** 2 files (1,234 characters)",
		"**Model:** gpt-5.2-codex-medium",
		"**Risk Score:** 70/100",
		"",
		"---",
		"",
		"### 📊 Summary",
		"",
		"| Critical | High | Medium | Low |",
		"|:--------:|:----:|:------:|:---:|",
		"| 1 | 0 | 0 | 0 |",
		"",
		"**Top Priority:** Fix token storage.",
		"",
		"---",
		"",
		"### 🏗️ Architecture",
		"",
		"Solid layering.",
		"",
		"### 🔒 Security Posture",
		"",
		"One critical exposure.",
		"",
		"---",
		"",
		"### 📋 Improvements",
		"",
		"#### 🔴 Critical (1)",
		"",
		"- [ ] **`SEC-001`** Token stored in localStorage",
		"  - 🔒 Security · `src/auth.ts` · ~4h",
		"  - **Problem:** Readable by injected scripts.",
		"  - **Solution:** Use an httpOnly cookie.",
		"",
		"---",
		"",
		"*Automated review powered by gpt-5.2-codex-medium with structured output*",
	}, "\n")

	if got != want {
		t.Errorf("body mismatch:\ngot:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestRenderStructured_GroupsBySeverity(t *testing.T) {
	rep := structuredReport()
	rep.Result.Improvements = []review.Improvement{
		{ID: "A", File: "a.ts", Severity: review.SeverityLow, Category: review.CategoryQuality,
			Title: "first low", Problem: "p", Solution: "s", Effort: review.EffortTrivial},
		{ID: "B", File: "b.ts", Severity: review.SeverityCritical, Category: review.CategorySecurity,
			Title: "first critical", Problem: "p", Solution: "s", Effort: review.EffortLarge},
		{ID: "C", File: "c.ts", Severity: review.SeverityHigh, Category: review.CategoryPerformance,
			Title: "only high", Problem: "p", Solution: "s", Effort: review.EffortMedium},
		{ID: "D", File: "d.ts", Severity: review.SeverityCritical, Category: review.CategoryArchitecture,
			Title: "second critical", Problem: "p", Solution: "s", Effort: review.EffortSmall},
	}

	got, err := Render(rep)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	if !strings.Contains(got, "#### 🔴 Critical (2)") {
		t.Error("missing critical section with count 2")
	}
	if !strings.Contains(got, "#### 🟠 High (1)") {
		t.Error("missing high section")
	}
	if !strings.Contains(got, "#### 🟢 Low (1)") {
		t.Error("missing low section")
	}
	if strings.Contains(got, "Medium (") {
		t.Error("empty severities should not get a section")
	}

	// Sections run most severe first; items keep their original order
	// inside a section.
	critical := strings.Index(got, "#### 🔴 Critical")
	high := strings.Index(got, "#### 🟠 High")
	low := strings.Index(got, "#### 🟢 Low")
	if !(critical < high && high < low) {
		t.Errorf("section order wrong: critical=%d high=%d low=%d", critical, high, low)
	}
	b := strings.Index(got, "first critical")
	d := strings.Index(got, "second critical")
	if !(critical < b && b < d && d < high) {
		t.Error("items inside the critical section should keep their original order")
	}
}

func TestRenderStructured_UnknownEnums(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*review.Improvement)
	}{
		{"severity", func(i *review.Improvement) { i.Severity = "urgent" }},
		{"category", func(i *review.Improvement) { i.Category = "vibes" }},
		{"effort", func(i *review.Improvement) { i.Effort = "weekend" }},
	}
	for _, tt := range tests {
		rep := structuredReport()
		tt.mutate(&rep.Result.Improvements[0])
		_, err := Render(rep)
		if err == nil {
			t.Errorf("%s: Render accepted an unknown enum value", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), "no display label") {
			t.Errorf("%s: error = %v", tt.name, err)
		}
	}
}

func TestMarkdownWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := &MarkdownWriter{}
	if err := w.Write(&buf, structuredReport()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "## 🔍 Structured Codebase Review\n") {
		t.Error("missing heading")
	}
	if !strings.HasSuffix(out, "with structured output*\n") {
		t.Error("body should end with the footer and a newline")
	}
}

func TestGetWriter(t *testing.T) {
	for _, format := range []string{"markdown", "md"} {
		w, err := GetWriter(format)
		if err != nil {
			t.Fatalf("GetWriter(%q) error: %v", format, err)
		}
		if _, ok := w.(*MarkdownWriter); !ok {
			t.Errorf("GetWriter(%q) = %T, want *MarkdownWriter", format, w)
		}
	}

	w, err := GetWriter("json")
	if err != nil {
		t.Fatalf("GetWriter(json) error: %v", err)
	}
	if _, ok := w.(*JSONWriter); !ok {
		t.Errorf("GetWriter(json) = %T, want *JSONWriter", w)
	}

	for _, format := range []string{"text", "sarif", "yaml", ""} {
		if _, err := GetWriter(format); err == nil {
			t.Errorf("GetWriter(%q) should fail", format)
		}
	}
}

func TestGroupDigits(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{5, "5"},
		{999, "999"},
		{1000, "1,000"},
		{120000, "120,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := GroupDigits(tt.n); got != tt.want {
			t.Errorf("GroupDigits(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
