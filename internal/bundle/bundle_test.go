package bundle

import (
	"fmt"
	"strings"
	"testing"

	"github.com/revetci/revet/internal/collect"
	"github.com/stretchr/testify/require"
)

// plainBlockLen is the serialized size of a plain block for a given file.
func plainBlockLen(f collect.File) int {
	return len(fmt.Sprintf("### %s\n```%s\n%s\n```\n\n", f.Path, f.Language, f.Content))
}

func TestBuildPlain_BudgetCutoff(t *testing.T) {
	// Each block is exactly 50 bytes: 29 bytes of framing for a 4-char path
	// with a "typescript" language tag, plus 21 bytes of content.
	a := collect.File{Path: "a.ts", Language: "typescript", Content: strings.Repeat("x", 21)}
	b := collect.File{Path: "b.ts", Language: "typescript", Content: strings.Repeat("y", 21)}
	require.Equal(t, 50, plainBlockLen(a))
	require.Equal(t, 50, plainBlockLen(b))

	got := Build([]collect.File{a, b}, 60, FormatPlain)

	require.Equal(t, 2, got.Total)
	require.Equal(t, 1, got.Embedded)
	require.Equal(t, 1, got.Omitted)
	require.True(t, strings.HasPrefix(got.Text, "### a.ts\n"))
	require.NotContains(t, got.Text, "### b.ts")
	require.True(t, strings.HasSuffix(got.Text, "\n... (truncated: 1 more files)"))
}

func TestBuildPlain_AllFit(t *testing.T) {
	files := []collect.File{
		{Path: "a.ts", Language: "typescript", Content: "let a = 1;"},
		{Path: "b.ts", Language: "typescript", Content: "let b = 2;"},
	}

	got := Build(files, 10000, FormatPlain)

	require.Equal(t, 2, got.Embedded)
	require.Equal(t, 0, got.Omitted)
	require.NotContains(t, got.Text, "truncated")
	require.Contains(t, got.Text, "### a.ts\n```typescript\nlet a = 1;\n```\n\n")
	require.Contains(t, got.Text, "### b.ts\n```typescript\nlet b = 2;\n```\n\n")
}

func TestBuildPlain_OutputIsPrefixOfLargerBudget(t *testing.T) {
	files := []collect.File{
		{Path: "a.ts", Language: "typescript", Content: strings.Repeat("x", 21)},
		{Path: "b.ts", Language: "typescript", Content: strings.Repeat("y", 21)},
		{Path: "c.ts", Language: "typescript", Content: strings.Repeat("z", 21)},
	}

	small := Build(files, 60, FormatPlain)
	large := Build(files, 10000, FormatPlain)

	marker := fmt.Sprintf("\n... (truncated: %d more files)", small.Omitted)
	prefix := strings.TrimSuffix(small.Text, marker)
	require.NotEqual(t, small.Text, prefix, "small build should carry a marker")
	require.True(t, strings.HasPrefix(large.Text, prefix))
}

func TestBuildPlain_NeverExceedsBudgetPlusMarker(t *testing.T) {
	files := []collect.File{
		{Path: "a.ts", Language: "typescript", Content: strings.Repeat("x", 40)},
		{Path: "b.ts", Language: "typescript", Content: strings.Repeat("y", 40)},
		{Path: "c.ts", Language: "typescript", Content: strings.Repeat("z", 40)},
	}

	for _, budget := range []int{0, 10, 60, 100, 150, 500} {
		got := Build(files, budget, FormatPlain)
		marker := fmt.Sprintf("\n... (truncated: %d more files)", got.Omitted)
		limit := budget
		if got.Omitted > 0 {
			limit += len(marker)
		}
		require.LessOrEqual(t, len(got.Text), limit, "budget %d", budget)
	}
}

func TestBuildPlain_FirstFileTooLarge(t *testing.T) {
	files := []collect.File{
		{Path: "huge.ts", Language: "typescript", Content: strings.Repeat("x", 1000)},
	}

	got := Build(files, 100, FormatPlain)

	require.Equal(t, 0, got.Embedded)
	require.Equal(t, 1, got.Omitted)
	require.Equal(t, "\n... (truncated: 1 more files)", got.Text)
}

func TestBuildAnnotated_ManifestListsAllFiles(t *testing.T) {
	files := []collect.File{
		{Path: "src/app.ts", Language: "typescript", Content: "line1\nline2\nline3"},
		{Path: "src/big.ts", Language: "typescript", Content: strings.Repeat("x", 5000)},
	}

	got := Build(files, 600, FormatAnnotated)

	// The manifest covers both files even though the second is omitted.
	require.Contains(t, got.Text, `<file index="1" path="src/app.ts" lang="typescript" lines="3" />`)
	require.Contains(t, got.Text, `<file index="2" path="src/big.ts" lang="typescript" lines="1" />`)
	require.Equal(t, 1, got.Embedded)
	require.Equal(t, 1, got.Omitted)
	require.True(t, strings.HasSuffix(got.Text, "\n... truncated (1 files remaining)"))
}

func TestBuildAnnotated_BlockLayout(t *testing.T) {
	files := []collect.File{
		{Path: "src/app.ts", Language: "typescript", Content: "const x = 1;"},
	}

	got := Build(files, 10000, FormatAnnotated)

	want := "<file_manifest>\n" +
		"  <file index=\"1\" path=\"src/app.ts\" lang=\"typescript\" lines=\"1\" />\n" +
		"</file_manifest>\n" +
		"\n<file index=\"1\" total=\"1\">\n" +
		"  <metadata>\n" +
		"    <path>src/app.ts</path>\n" +
		"    <language>typescript</language>\n" +
		"    <component>frontend-core</component>\n" +
		"    <lines>1</lines>\n" +
		"    <characters>12</characters>\n" +
		"  </metadata>\n" +
		"  <content>\nconst x = 1;\n  </content>\n" +
		"</file>\n"
	require.Equal(t, want, got.Text)
}

func TestComponentFor(t *testing.T) {
	tests := []struct {
		path string
		lang string
		want string
	}{
		{"src-tauri/src/commands/files.rs", "rust", "backend-command"},
		{"core/engine.rs", "rust", "backend-core"},
		{"internal/server/handler.go", "go", "backend-core"},
		{"scripts/bridge.mjs", "javascript", "bridge"},
		{"src/components/Button.tsx", "tsx", "frontend-component"},
		{"src/hooks/useAuth.ts", "typescript", "frontend-hook"},
		{"src/stores/session.ts", "typescript", "frontend-store"},
		{"src/main.tsx", "tsx", "frontend-core"},
	}
	for _, tt := range tests {
		if got := componentFor(tt.path, tt.lang); got != tt.want {
			t.Errorf("componentFor(%q, %q) = %q, want %q", tt.path, tt.lang, got, tt.want)
		}
	}
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		content string
		want    int
	}{
		{"", 0},
		{"one line", 1},
		{"one line\n", 1},
		{"a\nb", 2},
		{"a\nb\n", 2},
		{"\n", 1},
	}
	for _, tt := range tests {
		if got := countLines(tt.content); got != tt.want {
			t.Errorf("countLines(%q) = %d, want %d", tt.content, got, tt.want)
		}
	}
}
