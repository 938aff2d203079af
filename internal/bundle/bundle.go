package bundle

import (
	"fmt"
	"strings"

	"github.com/revetci/revet/internal/collect"
)

// Format selects how files are serialized into the model payload.
type Format string

const (
	// FormatPlain emits one fenced code block per file.
	FormatPlain Format = "plain"
	// FormatAnnotated emits an XML manifest followed by per-file blocks with
	// metadata, for structured reviews that need file indexes and components.
	FormatAnnotated Format = "annotated"
)

// Bundle is the serialized payload plus accounting for scope reporting.
type Bundle struct {
	Text     string
	Total    int // files offered to the builder
	Embedded int // files whose full content made it into Text
	Omitted  int // files dropped once the budget was hit
}

// Build serializes files into a single payload no larger than maxBytes plus
// a short truncation marker. Files are consumed in the given order; the
// first file whose block would push the payload past the budget stops the
// loop, and a marker records how many files were left out.
func Build(files []collect.File, maxBytes int, format Format) Bundle {
	if format == FormatAnnotated {
		return buildAnnotated(files, maxBytes)
	}
	return buildPlain(files, maxBytes)
}

func buildPlain(files []collect.File, maxBytes int) Bundle {
	var b strings.Builder
	embedded := 0
	for i, f := range files {
		block := fmt.Sprintf("### %s\n```%s\n%s\n```\n\n", f.Path, f.Language, f.Content)
		if b.Len()+len(block) > maxBytes {
			fmt.Fprintf(&b, "\n... (truncated: %d more files)", len(files)-i)
			break
		}
		b.WriteString(block)
		embedded++
	}
	return Bundle{
		Text:     b.String(),
		Total:    len(files),
		Embedded: embedded,
		Omitted:  len(files) - embedded,
	}
}

func buildAnnotated(files []collect.File, maxBytes int) Bundle {
	var b strings.Builder

	// The manifest lists every file, including ones the budget later drops,
	// so the model knows the full scope. It counts toward the budget.
	b.WriteString("<file_manifest>\n")
	for i, f := range files {
		fmt.Fprintf(&b, "  <file index=\"%d\" path=\"%s\" lang=\"%s\" lines=\"%d\" />\n",
			i+1, f.Path, f.Language, countLines(f.Content))
	}
	b.WriteString("</file_manifest>\n")

	embedded := 0
	for i, f := range files {
		block := annotatedBlock(f, i+1, len(files))
		if b.Len()+len(block) > maxBytes {
			fmt.Fprintf(&b, "\n... truncated (%d files remaining)", len(files)-i)
			break
		}
		b.WriteString(block)
		embedded++
	}
	return Bundle{
		Text:     b.String(),
		Total:    len(files),
		Embedded: embedded,
		Omitted:  len(files) - embedded,
	}
}

func annotatedBlock(f collect.File, index, total int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "\n<file index=\"%d\" total=\"%d\">\n", index, total)
	b.WriteString("  <metadata>\n")
	fmt.Fprintf(&b, "    <path>%s</path>\n", f.Path)
	fmt.Fprintf(&b, "    <language>%s</language>\n", f.Language)
	fmt.Fprintf(&b, "    <component>%s</component>\n", componentFor(f.Path, f.Language))
	fmt.Fprintf(&b, "    <lines>%d</lines>\n", countLines(f.Content))
	fmt.Fprintf(&b, "    <characters>%d</characters>\n", len(f.Content))
	b.WriteString("  </metadata>\n")
	b.WriteString("  <content>\n")
	b.WriteString(f.Content)
	b.WriteString("\n  </content>\n")
	b.WriteString("</file>\n")
	return b.String()
}

// backendLangs are languages classified as backend code in the manifest.
var backendLangs = map[string]bool{
	"rust":   true,
	"go":     true,
	"python": true,
	"ruby":   true,
	"java":   true,
	"kotlin": true,
	"c":      true,
	"cpp":    true,
	"csharp": true,
	"php":    true,
}

// componentFor classifies a file for the annotated manifest from its path
// segments and language.
func componentFor(path, lang string) string {
	switch {
	case strings.Contains(path, "commands"):
		return "backend-command"
	case backendLangs[lang]:
		return "backend-core"
	case strings.Contains(path, "bridge"):
		return "bridge"
	case strings.Contains(path, "components"):
		return "frontend-component"
	case strings.Contains(path, "hooks"):
		return "frontend-hook"
	case strings.Contains(path, "stores"):
		return "frontend-store"
	default:
		return "frontend-core"
	}
}

// countLines matches the line accounting used in the manifest: empty content
// has zero lines and a trailing newline does not add one.
func countLines(s string) int {
	if s == "" {
		return 0
	}
	n := strings.Count(s, "\n")
	if !strings.HasSuffix(s, "\n") {
		n++
	}
	return n
}
