package redact

import (
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for common secret shapes. Matches are
// replaced wholesale, key name included, so a partial leak cannot survive
// in surrounding text.
var secretPatterns = []*regexp.Regexp{
	// Cloud provider credentials
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)(aws[_-]?secret[_-]?access[_-]?key)\s*[:=]\s*["']?([A-Za-z0-9/+=]{40})["']?`),
	regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
	// Model provider keys
	regexp.MustCompile(`sk-ant-[A-Za-z0-9_-]{20,}`),
	regexp.MustCompile(`sk-[A-Za-z0-9]{20,}`),
	// Forge and chat tokens
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9_]{36,}`),
	regexp.MustCompile(`xox[bporas]-[A-Za-z0-9-]{10,}`),
	// Connection strings with inline credentials
	regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb(\+srv)?|redis|amqp)://[^\s:@/]+:[^\s@/]+@`),
	// Bearer tokens and JWTs
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_-]{10,}\.eyJ[A-Za-z0-9_-]{10,}\.[A-Za-z0-9_-]{10,}`),
	// Private key blocks
	regexp.MustCompile(`-----BEGIN\s+(RSA\s+|EC\s+|OPENSSH\s+)?PRIVATE KEY-----`),
	// Generic assignments of key material
	regexp.MustCompile(`(?i)(api[_-]?key|apikey|api[_-]?secret)\s*[:=]\s*["']?([A-Za-z0-9/+=_-]{20,})["']?`),
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
	regexp.MustCompile(`(?i)(key|secret|token)\s*[:=]\s*["']?[0-9a-f]{32,}["']?`),
}

// Secrets replaces every pattern match in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// ShouldRedactPath reports whether a slash-separated path matches any of
// the configured glob patterns. Globs use the same doublestar syntax as
// file collection, so ** crosses directories and also matches files at the
// root.
func ShouldRedactPath(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Content prepares one file's content for bundling. A path matching the
// policy loses its entire content; everything else gets the pattern pass.
func Content(content, path string, redactPaths []string) string {
	if ShouldRedactPath(path, redactPaths) {
		return placeholder + " (file content redacted by path policy)\n"
	}
	return Secrets(content)
}
