package output

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/revetci/revet/internal/review"
)

// Writer writes a report in a specific format.
type Writer interface {
	Write(w io.Writer, report *review.Report) error
}

// GetWriter returns a writer for the specified format.
func GetWriter(format string) (Writer, error) {
	switch format {
	case "markdown", "md":
		return &MarkdownWriter{}, nil
	case "json":
		return &JSONWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// WriteReport writes the report to the specified output (file path or stdout).
func WriteReport(report *review.Report, format, outPath string) error {
	writer, err := GetWriter(format)
	if err != nil {
		return err
	}

	var w io.Writer
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	} else {
		w = os.Stdout
	}

	return writer.Write(w, report)
}

// Render produces the markdown body for a report, exactly as it would be
// published to GitHub. Structured reports render the full improvement
// breakdown; diff reports render the PR comment; anything else renders the
// freeform audit body.
func Render(report *review.Report) (string, error) {
	switch {
	case report.Result != nil:
		return renderStructured(report)
	case report.Mode == review.ModeDiff:
		return renderDiff(report), nil
	default:
		return renderFreeform(report), nil
	}
}

// GroupDigits formats n with comma separators every three digits.
func GroupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}
	if len(s) > 3 {
		var b strings.Builder
		lead := len(s) % 3
		if lead > 0 {
			b.WriteString(s[:lead])
		}
		for i := lead; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// titleWord uppercases the first letter of an enum value for display.
func titleWord(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
