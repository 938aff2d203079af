package github

import (
	"fmt"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// truncationMarker is appended when an assembled diff exceeds its budget.
const truncationMarker = "\n\n... (diff truncated due to size)"

// FilterFiles returns the files whose names pass the include filter. A nil
// filter keeps everything.
func FilterFiles(files []PRFile, include func(string) bool) []PRFile {
	if include == nil {
		return files
	}
	var kept []PRFile
	for _, f := range files {
		if include(f.Filename) {
			kept = append(kept, f)
		}
	}
	return kept
}

// AssembleDiff builds a reviewable unified diff from PR files. Files without
// a patch get a placeholder. The result is cut at maxBytes before the marker
// is appended, so the budget bounds the content, not the final string.
func AssembleDiff(files []PRFile, maxBytes int) string {
	var parts []string
	for _, f := range files {
		patch := f.Patch
		if patch == "" {
			patch = "(binary or empty file)"
		}
		header := fmt.Sprintf("--- a/%s\n+++ b/%s\n", f.Filename, f.Filename)
		parts = append(parts, header+patch)
	}

	diff := strings.Join(parts, "\n\n")
	if len(diff) > maxBytes {
		diff = diff[:maxBytes] + truncationMarker
	}
	return diff
}

// DiffStats counts added and deleted lines across the patches of the given
// files. Patches that fail to parse are skipped.
func DiffStats(files []PRFile) (added, deleted int) {
	for _, f := range files {
		if f.Patch == "" {
			continue
		}
		raw := fmt.Sprintf("diff --git a/%s b/%s\n--- a/%s\n+++ b/%s\n%s\n",
			f.Filename, f.Filename, f.Filename, f.Filename, f.Patch)
		parsed, _, err := gitdiff.Parse(strings.NewReader(raw))
		if err != nil {
			continue
		}
		for _, pf := range parsed {
			for _, frag := range pf.TextFragments {
				for _, line := range frag.Lines {
					switch line.Op {
					case gitdiff.OpAdd:
						added++
					case gitdiff.OpDelete:
						deleted++
					}
				}
			}
		}
	}
	return added, deleted
}
