package collect

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFilter_ExcludedDirs(t *testing.T) {
	f := NewFilter(t.TempDir(), nil, nil)

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/main.ts", true},
		{"node_modules/react/index.js", false},
		{"pkg/node_modules/left-pad/index.js", false},
		{"target/debug/main.rs", false},
		{"dist", false},
		{"src/dist.ts", true},
		{".git/config", false},
		{"app/__pycache__/mod.py", false},
	}

	for _, tt := range tests {
		if got := f.Include(tt.rel); got != tt.want {
			t.Errorf("Include(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestFilter_SkipFiles(t *testing.T) {
	f := NewFilter(t.TempDir(), nil, nil)

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/vite-env.d.ts", false},
		{"auto-imports.d.ts", false},
		{"src/components.d.ts", false},
		{"src/components.ts", true},
		{"src/env.d.ts", true},
	}

	for _, tt := range tests {
		if got := f.Include(tt.rel); got != tt.want {
			t.Errorf("Include(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestFilter_Gitignore(t *testing.T) {
	root := t.TempDir()
	gitignore := "*.log\ngenerated/\n"
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		t.Fatal(err)
	}

	f := NewFilter(root, nil, nil)

	tests := []struct {
		rel  string
		want bool
	}{
		{"src/main.go", true},
		{"debug.log", false},
		{"logs/app.log", false},
		{"generated/schema.ts", false},
	}

	for _, tt := range tests {
		if got := f.Include(tt.rel); got != tt.want {
			t.Errorf("Include(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestFilter_NoGitignore(t *testing.T) {
	f := NewFilter(t.TempDir(), nil, nil)
	if !f.Include("anything.go") {
		t.Error("Include should pass ordinary paths when no .gitignore exists")
	}
}

func TestFilter_CustomLists(t *testing.T) {
	f := NewFilter(t.TempDir(), []string{"vendor"}, []string{"schema.gen.go"})

	if f.Include("vendor/lib/lib.go") {
		t.Error("custom excluded dir should be dropped")
	}
	if !f.Include("node_modules/x.js") {
		t.Error("defaults should not apply when custom lists are given")
	}
	if f.Include("api/schema.gen.go") {
		t.Error("custom skip file should be dropped")
	}
}
