package review

// Mode selects the review flavor, which determines the prompt, the output
// token ceiling, and whether the reply is parsed as structured JSON.
type Mode string

const (
	// ModeStructured reviews a codebase bundle and demands the JSON contract.
	ModeStructured Mode = "structured"
	// ModeFreeform reviews a codebase bundle as narrative markdown.
	ModeFreeform Mode = "freeform"
	// ModeDiff reviews a pull request diff.
	ModeDiff Mode = "diff"
)

// maxTokensFor returns the completion token ceiling for a mode. Structured
// reviews need room for the full JSON payload; diff reviews stay short.
func maxTokensFor(mode Mode) int {
	switch mode {
	case ModeStructured:
		return 8000
	case ModeDiff:
		return 2000
	default:
		return 4000
	}
}

const structuredPrompt = `You are an expert code reviewer. Analyze this codebase and provide actionable improvements.

**Your task:**
1. Identify concrete improvements (security, performance, quality, architecture)
2. Prioritize by severity (critical > high > medium > low)
3. Provide specific file references and actionable solutions
4. Estimate effort for each fix

Be thorough but practical - every improvement should be implementable.

**IMPORTANT: Respond with valid JSON only, no markdown, no explanation. Use this exact structure:**

{
  "improvements": [
    {
      "id": "SEC-001",
      "file": "path/to/file.rs",
      "line_hint": "function_name or ~line 42",
      "severity": "critical|high|medium|low",
      "category": "security|performance|quality|architecture|maintainability",
      "title": "Short title under 80 chars",
      "problem": "What's wrong and why it matters",
      "solution": "How to fix it",
      "effort": "trivial|small|medium|large"
    }
  ],
  "architecture_notes": "Brief assessment of overall architecture",
  "security_posture": "Overall security assessment",
  "top_priority": "The single most important thing to fix first and why",
  "risk_score": 65
}

---

**Files to review:**

The files below are provided in structured XML format with metadata:
- ` + "`<file_manifest>`" + ` lists all files with index, path, language, and line count
- Each ` + "`<file>`" + ` contains ` + "`<metadata>`" + ` (path, language, component type, stats) and ` + "`<content>`" + `
- Component types: backend-command, backend-core, bridge, frontend-component, frontend-hook, frontend-store, frontend-core

When referencing issues, use the file path from metadata.

`

const freeformPrompt = `You are an expert code reviewer performing a full codebase audit.

Perform a comprehensive review covering:

## Architecture Assessment
Evaluate the overall structure, separation of concerns, and design patterns.

## Security Audit
Look for vulnerabilities: injection risks, unsafe IPC, credential handling, input validation gaps.

## Code Quality Issues
Identify bugs, logic errors, type safety issues, and potential runtime failures.

## Performance Concerns
Spot inefficiencies, memory leaks, unnecessary re-renders, or blocking operations.

## Technical Debt
Note areas that need refactoring, outdated patterns, or missing error handling.

## Recommendations
Prioritized list of improvements, from critical to nice-to-have.

Be thorough but actionable. Reference specific files and line patterns where possible.

---

**Codebase:**

`

const diffPrompt = `You are an expert code reviewer.

Review this Pull Request diff and provide:

## Summary
A brief 2-3 sentence summary of what this PR changes.

## Issues Found
List any bugs, security concerns, or design problems. Be specific with file:line references where possible.
If none found, say "No significant issues found."

## Suggestions
Optional improvements for code quality, performance, or maintainability.
Only include if genuinely helpful - don't nitpick.

## Verdict
One of:
- **LGTM** - Ready to merge
- **Minor Changes** - Approve with suggestions
- **Needs Work** - Blocking issues to address

Be constructive and focused. Prioritize correctness over style.

---

**Diff:**

`

// BuildPrompt assembles the final prompt for a mode. Content is appended
// verbatim after the template's delimiter; the templates tell the model to
// treat everything past it as the material under review, so no escaping is
// done.
func BuildPrompt(mode Mode, content string) string {
	switch mode {
	case ModeStructured:
		return structuredPrompt + content + "\n"
	case ModeDiff:
		return diffPrompt + "```diff\n" + content + "\n```\n"
	default:
		return freeformPrompt + content + "\n"
	}
}
