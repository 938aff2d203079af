package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/revetci/revet/internal/review"
)

// JSONWriter outputs the structured review result as indented JSON.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, report *review.Report) error {
	if report.Result == nil {
		return fmt.Errorf("json output requires a structured review")
	}
	data, err := json.MarshalIndent(report.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	_, err = fmt.Fprintln(w)
	return err
}
